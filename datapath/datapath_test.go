package datapath_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/nrdiv/adder"
	"github.com/katalvlaran/nrdiv/datapath"
	"github.com/katalvlaran/nrdiv/register"
)

// loadOperands builds the register pair that makes a datapath compute a + b + cin.
// cin = 0 is an add (op = 1, divisor = b); cin = 1 is a subtract
// (op = 0, divisor = ^b so that the mux hands b to the adder).
func loadOperands(t *testing.T, n int, a, b uint64, cin uint8, low uint64) (acc, div *register.Register, op uint8) {
	t.Helper()
	acc, err := register.New(2 * n)
	require.NoError(t, err)
	div, err = register.New(n)
	require.NoError(t, err)

	require.NoError(t, acc.SetField(0, n, low))
	require.NoError(t, acc.SetField(n, n, a))
	op = 1 - cin
	if op == 1 {
		div.Set(b)
	} else {
		div.Set(adder.Not(n, b))
	}

	return acc, div, op
}

type addCase struct {
	n    int
	a, b uint64
	cin  uint8
	low  uint64
}

// runBoth executes tc on both datapaths and checks them against RippleAdd.
func runBoth(t *testing.T, tc addCase) {
	t.Helper()
	wantSum, wantCarry, err := adder.RippleAdd(tc.n, tc.a, tc.b, tc.cin)
	require.NoError(t, err)

	var accs []uint64
	for _, dp := range []datapath.Datapath{datapath.WordParallel{}, datapath.BitSerial{}} {
		acc, div, op := loadOperands(t, tc.n, tc.a, tc.b, tc.cin, tc.low)
		ticks := 0
		sum, carry, err := dp.Add(acc, div, op, func(int) { ticks++ })
		require.NoError(t, err)
		require.Equal(t, wantSum, sum, "%s n=%d %d+%d+%d", dp.Name(), tc.n, tc.a, tc.b, tc.cin)
		require.Equal(t, wantCarry, carry, "%s n=%d carry", dp.Name(), tc.n)
		require.Equal(t, dp.TicksPerCycle(tc.n), ticks, "%s tick count", dp.Name())

		low, err := acc.Field(0, tc.n)
		require.NoError(t, err)
		require.Equal(t, tc.low, low, "%s must not touch the lower half", dp.Name())
		accs = append(accs, acc.Uint64())
	}
	require.Equal(t, accs[0], accs[1], "register contents must match")
}

// TestDatapaths_EquivalentExhaustive compares both datapaths on every operand for small widths.
func TestDatapaths_EquivalentExhaustive(t *testing.T) {
	for n := 1; n <= 5; n++ {
		m := register.Mask(n)
		for a := uint64(0); a <= m; a++ {
			for b := uint64(0); b <= m; b++ {
				for cin := uint8(0); cin <= 1; cin++ {
					runBoth(t, addCase{n: n, a: a, b: b, cin: cin, low: (a ^ b) & m})
				}
			}
		}
	}
}

// TestDatapaths_EquivalentSampled compares both datapaths on random operands up to width 32.
func TestDatapaths_EquivalentSampled(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for n := 1; n <= 32; n++ {
		m := register.Mask(n)
		for i := 0; i < 50; i++ {
			runBoth(t, addCase{
				n:   n,
				a:   rng.Uint64() & m,
				b:   rng.Uint64() & m,
				cin: uint8(i & 1),
				low: rng.Uint64() & m,
			})
		}
		runBoth(t, addCase{n: n, a: m, b: m, cin: 1, low: m})
		runBoth(t, addCase{n: n, a: m, b: 1, cin: 0})
	}
}

// TestBitSerial_SubCycleOrder checks that sub-cycles walk from LSB to MSB
// and that each tick leaves exactly the bits written so far updated.
func TestBitSerial_SubCycleOrder(t *testing.T) {
	// upper = 0111 (7), divisor = 0001, op = 1 → 7 + 1 = 1000
	acc, err := register.New(8)
	require.NoError(t, err)
	acc.Set(0x70)
	div, err := register.New(4)
	require.NoError(t, err)
	div.Set(1)

	var seen []string
	var order []int
	sum, carry, err := datapath.BitSerial{}.Add(acc, div, 1, func(j int) {
		order = append(order, j)
		seen = append(seen, acc.String())
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(8), sum)
	assert.Equal(t, uint8(0), carry)
	assert.Equal(t, []int{0, 1, 2, 3}, order)
	assert.Equal(t, []string{"01100000", "01000000", "00000000", "10000000"}, seen)
}

// TestDatapath_Errors verifies operand validation.
func TestDatapath_Errors(t *testing.T) {
	acc, err := register.New(6)
	require.NoError(t, err)
	div, err := register.New(4)
	require.NoError(t, err)
	good, err := register.New(8)
	require.NoError(t, err)

	for _, dp := range []datapath.Datapath{datapath.WordParallel{}, datapath.BitSerial{}} {
		_, _, err = dp.Add(acc, div, 1, nil)
		assert.ErrorIs(t, err, datapath.ErrWidthMismatch, dp.Name())
		_, _, err = dp.Add(good, div, 2, nil)
		assert.ErrorIs(t, err, datapath.ErrInvalidOp, dp.Name())
	}
}

// TestByName resolves canonical names and rejects others.
func TestByName(t *testing.T) {
	for _, name := range datapath.Names() {
		dp, err := datapath.ByName(name)
		require.NoError(t, err)
		assert.Equal(t, name, dp.Name())
	}
	_, err := datapath.ByName("carry-lookahead")
	assert.ErrorIs(t, err, datapath.ErrUnknownDatapath)
}

// TestMux covers the operand multiplexer and carry-in selection.
func TestMux(t *testing.T) {
	assert.Equal(t, uint8(1), datapath.Mux(1, 1))
	assert.Equal(t, uint8(0), datapath.Mux(1, 0))
	assert.Equal(t, uint8(0), datapath.Mux(0, 1))
	assert.Equal(t, uint8(1), datapath.Mux(0, 0))
	assert.Equal(t, uint8(0), datapath.CarryIn(1))
	assert.Equal(t, uint8(1), datapath.CarryIn(0))
}

func benchmarkDatapath(b *testing.B, dp datapath.Datapath, n int) {
	acc, _ := register.New(2 * n)
	div, _ := register.New(n)
	div.Set(0x5A5A5A5A)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = dp.Add(acc, div, uint8(i&1), nil)
	}
}

func BenchmarkWordParallel32(b *testing.B) { benchmarkDatapath(b, datapath.WordParallel{}, 32) }

func BenchmarkBitSerial32(b *testing.B) { benchmarkDatapath(b, datapath.BitSerial{}, 32) }
