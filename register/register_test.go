package register_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/nrdiv/register"
)

// sampleUnsigned returns boundary values plus random values in [0, 2^n-1].
func sampleUnsigned(rng *rand.Rand, n int) []uint64 {
	m := register.Mask(n)
	vals := []uint64{0, 1, m, m >> 1, ((m >> 1) + 1) & m}
	for i := 0; i < 32; i++ {
		vals = append(vals, rng.Uint64()&m)
	}

	return vals
}

// TestNew_Width verifies width validation at construction.
func TestNew_Width(t *testing.T) {
	for _, w := range []int{-1, 0, 65, 128} {
		_, err := register.New(w)
		assert.ErrorIs(t, err, register.ErrInvalidWidth, "width %d must be rejected", w)
	}
	for _, w := range []int{1, 8, 64} {
		r, err := register.New(w)
		require.NoError(t, err)
		assert.Equal(t, w, r.Width())
		assert.Equal(t, uint64(0), r.Uint64(), "new register must be cleared")
	}
}

// TestSetGet_RoundTrip checks Set(v); Uint64() == v for every width.
func TestSetGet_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for n := 1; n <= register.MaxWidth; n++ {
		r, err := register.New(n)
		require.NoError(t, err)
		for _, v := range sampleUnsigned(rng, n) {
			r.Set(v)
			require.Equal(t, v, r.Uint64(), "n=%d v=%d", n, v)
		}
	}
}

// TestSetGet_Exhaustive covers every value for small widths.
func TestSetGet_Exhaustive(t *testing.T) {
	for n := 1; n <= 10; n++ {
		r, err := register.New(n)
		require.NoError(t, err)
		for v := uint64(0); v <= register.Mask(n); v++ {
			r.Set(v)
			require.Equal(t, v, r.Uint64(), "n=%d", n)
		}
	}
}

// TestSet_Truncates verifies silent wraparound on overflow.
func TestSet_Truncates(t *testing.T) {
	r, err := register.New(4)
	require.NoError(t, err)

	r.Set(0x1D) // 1_1101
	assert.Equal(t, uint64(0xD), r.Uint64())
	assert.Equal(t, "1101", r.String())

	r.SetInt64(-1)
	assert.Equal(t, uint64(0xF), r.Uint64())
}

// TestInt64_SignedDecode checks SetInt64(v); Int64() == v over the signed range.
func TestInt64_SignedDecode(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for n := 1; n <= register.MaxWidth; n++ {
		r, err := register.New(n)
		require.NoError(t, err)

		lo := -(int64(1) << uint(n-1))
		hi := int64(register.Mask(n - 1))
		vals := []int64{lo, hi, 0, -1}
		for i := 0; i < 32; i++ {
			vals = append(vals, lo+int64(rng.Uint64()&register.Mask(n)))
		}
		for _, v := range vals {
			r.SetInt64(v)
			require.Equal(t, v, r.Int64(), "n=%d v=%d", n, v)
		}
	}
}

// TestInt64_Formula compares Int64 against the textbook decode for small widths.
func TestInt64_Formula(t *testing.T) {
	for n := 1; n <= 10; n++ {
		r, err := register.New(n)
		require.NoError(t, err)
		half := int64(1) << uint(n-1)
		full := int64(1) << uint(n)
		for v := uint64(0); v <= register.Mask(n); v++ {
			r.Set(v)
			want := (int64(v)+half)%full - half
			require.Equal(t, want, r.Int64(), "n=%d v=%d", n, v)
			require.Equal(t, v, r.Uint64())
		}
	}
}

// TestBitAccess covers bounds and value checks on cell access.
func TestBitAccess(t *testing.T) {
	r, err := register.New(8)
	require.NoError(t, err)
	r.Set(0x55)

	for i := 0; i < 8; i++ {
		b, err := r.Bit(i)
		require.NoError(t, err)
		assert.Equal(t, uint8((i+1)&1), b, "bit %d of 0x55", i)
	}

	_, err = r.Bit(-1)
	assert.ErrorIs(t, err, register.ErrIndexOutOfRange)
	_, err = r.Bit(8)
	assert.ErrorIs(t, err, register.ErrIndexOutOfRange)

	assert.ErrorIs(t, r.SetBit(8, 1), register.ErrIndexOutOfRange)
	assert.ErrorIs(t, r.SetBit(-1, 0), register.ErrIndexOutOfRange)
	assert.ErrorIs(t, r.SetBit(0, 2), register.ErrInvalidBitValue)
	assert.Equal(t, uint64(0x55), r.Uint64(), "failed writes must not change the register")

	require.NoError(t, r.SetBit(7, 1))
	assert.Equal(t, uint64(0xD5), r.Uint64())
	assert.Equal(t, uint8(1), r.MSB())

	require.NoError(t, r.Flip(0))
	assert.Equal(t, uint64(0xD4), r.Uint64())
	assert.ErrorIs(t, r.Flip(9), register.ErrIndexOutOfRange)
}

// TestShifts checks logical shift semantics against integer shifts.
func TestShifts(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, n := range []int{1, 3, 8, 13, 32, 63, 64} {
		r, err := register.New(n)
		require.NoError(t, err)
		for _, v := range sampleUnsigned(rng, n) {
			for _, k := range []int{0, 1, 2, n - 1, n, n + 3} {
				r.Set(v)
				r.ShiftLeft(k)
				want := uint64(0)
				if k < 64 {
					want = (v << uint(k)) & register.Mask(n)
				}
				require.Equal(t, want, r.Uint64(), "n=%d v=%d <<%d", n, v, k)

				r.Set(v)
				r.ShiftRight(k)
				want = 0
				if k < 64 {
					want = v >> uint(k)
				}
				require.Equal(t, want, r.Uint64(), "n=%d v=%d >>%d", n, v, k)
			}
		}
	}
}

// TestShiftRight_NoSignExtension ensures a negative value shifts in zeros.
func TestShiftRight_NoSignExtension(t *testing.T) {
	r, err := register.New(8)
	require.NoError(t, err)
	r.SetInt64(-128) // 10000000
	r.ShiftRight(1)
	assert.Equal(t, "01000000", r.String())
	assert.Equal(t, int64(64), r.Int64())

	r.ShiftLeft(-2)
	assert.Equal(t, "01000000", r.String(), "negative shift is a no-op")
}

// TestField covers sub-field reads and writes used by the divider.
func TestField(t *testing.T) {
	r, err := register.New(8)
	require.NoError(t, err)
	r.Set(0xA5) // 1010_0101

	hi, err := r.Field(4, 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xA), hi)

	require.NoError(t, r.SetField(4, 4, 0x3F))
	assert.Equal(t, uint64(0xF5), r.Uint64(), "only the field bits are written")

	_, err = r.Field(6, 4)
	assert.ErrorIs(t, err, register.ErrIndexOutOfRange)
	assert.ErrorIs(t, r.SetField(-1, 2, 0), register.ErrIndexOutOfRange)
	_, err = r.Field(0, 0)
	assert.ErrorIs(t, err, register.ErrIndexOutOfRange)
}

// TestBitsAndClone verifies that copies never alias the register cells.
func TestBitsAndClone(t *testing.T) {
	r, err := register.New(4)
	require.NoError(t, err)
	r.Set(0b0110)

	bits := r.Bits()
	assert.Equal(t, []uint8{0, 1, 1, 0}, bits)
	bits[0] = 1
	assert.Equal(t, uint64(0b0110), r.Uint64())

	c := r.Clone()
	require.NoError(t, c.SetBit(3, 1))
	assert.Equal(t, uint64(0b0110), r.Uint64())
	assert.Equal(t, uint64(0b1110), c.Uint64())
}
