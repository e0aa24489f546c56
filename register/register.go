package register

import (
	"fmt"
	"strings"
)

// MaxWidth is the widest register the integer views can represent.
const MaxWidth = 64

// Register is a fixed-width array of single-bit cells, LSB at index 0.
// The zero value is not usable; construct with New.
type Register struct {
	cells []uint8
}

// New returns a cleared register of the given width.
// Returns ErrInvalidWidth if width is outside [1, MaxWidth].
func New(width int) (*Register, error) {
	if width < 1 || width > MaxWidth {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWidth, width)
	}

	return &Register{cells: make([]uint8, width)}, nil
}

// Width returns the number of cells. It never changes after New.
func (r *Register) Width() int { return len(r.cells) }

// Mask returns 2^width - 1 for width in [0, 64].
func Mask(width int) uint64 {
	if width >= MaxWidth {
		return ^uint64(0)
	}

	return uint64(1)<<uint(width) - 1
}

// Set stores v mod 2^Width(), LSB into cell 0.
// Bits of v above the register width are dropped without error.
func (r *Register) Set(v uint64) {
	for i := range r.cells {
		r.cells[i] = uint8(v >> uint(i) & 1)
	}
}

// SetInt64 stores the two's-complement pattern of v, truncated to Width() bits.
func (r *Register) SetInt64(v int64) { r.Set(uint64(v)) }

// Uint64 returns the cells read as an unsigned integer.
func (r *Register) Uint64() uint64 {
	var v uint64
	for i, b := range r.cells {
		v |= uint64(b) << uint(i)
	}

	return v
}

// Int64 returns the cells read as a two's-complement integer:
// (Uint64() + 2^(n-1)) mod 2^n - 2^(n-1).
func (r *Register) Int64() int64 {
	v := r.Uint64()
	n := len(r.cells)
	if n == MaxWidth || r.cells[n-1] == 0 {
		return int64(v)
	}

	return int64(v) - int64(1)<<uint(n)
}

// Bit returns cell i.
// Returns ErrIndexOutOfRange if i is outside [0, Width()).
func (r *Register) Bit(i int) (uint8, error) {
	if i < 0 || i >= len(r.cells) {
		return 0, fmt.Errorf("%w: bit %d of %d", ErrIndexOutOfRange, i, len(r.cells))
	}

	return r.cells[i], nil
}

// SetBit stores b in cell i.
// Returns ErrIndexOutOfRange for a bad index, ErrInvalidBitValue when b is not 0 or 1.
func (r *Register) SetBit(i int, b uint8) error {
	if i < 0 || i >= len(r.cells) {
		return fmt.Errorf("%w: bit %d of %d", ErrIndexOutOfRange, i, len(r.cells))
	}
	if b > 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidBitValue, b)
	}
	r.cells[i] = b

	return nil
}

// MSB returns the most significant cell, the sign bit under the signed view.
func (r *Register) MSB() uint8 { return r.cells[len(r.cells)-1] }

// Flip inverts cell i.
func (r *Register) Flip(i int) error {
	b, err := r.Bit(i)
	if err != nil {
		return err
	}

	return r.SetBit(i, 1-b)
}

// ShiftLeft moves every cell k places toward the MSB.
// The top k cells are discarded and k zero cells enter at index 0.
// k >= Width() clears the register; k <= 0 leaves it unchanged.
func (r *Register) ShiftLeft(k int) {
	n := len(r.cells)
	switch {
	case k <= 0:
		return
	case k >= n:
		clear(r.cells)
		return
	}
	copy(r.cells[k:], r.cells[:n-k])
	clear(r.cells[:k])
}

// ShiftRight moves every cell k places toward the LSB.
// The bottom k cells are discarded and k zero cells enter at the MSB end.
func (r *Register) ShiftRight(k int) {
	n := len(r.cells)
	switch {
	case k <= 0:
		return
	case k >= n:
		clear(r.cells)
		return
	}
	copy(r.cells[:n-k], r.cells[k:])
	clear(r.cells[n-k:])
}

// Field reads width contiguous cells starting at lo as an unsigned integer.
// Returns ErrIndexOutOfRange if [lo, lo+width) is not inside the register.
func (r *Register) Field(lo, width int) (uint64, error) {
	if err := r.checkField(lo, width); err != nil {
		return 0, err
	}
	var v uint64
	for i := 0; i < width; i++ {
		v |= uint64(r.cells[lo+i]) << uint(i)
	}

	return v, nil
}

// SetField writes the low width bits of v into cells [lo, lo+width).
// Cells outside the field are untouched.
func (r *Register) SetField(lo, width int, v uint64) error {
	if err := r.checkField(lo, width); err != nil {
		return err
	}
	for i := 0; i < width; i++ {
		r.cells[lo+i] = uint8(v >> uint(i) & 1)
	}

	return nil
}

func (r *Register) checkField(lo, width int) error {
	if lo < 0 || width < 1 || width > MaxWidth || lo+width > len(r.cells) {
		return fmt.Errorf("%w: field [%d,%d) of %d", ErrIndexOutOfRange, lo, lo+width, len(r.cells))
	}

	return nil
}

// Bits returns a copy of the cells, LSB first.
func (r *Register) Bits() []uint8 {
	out := make([]uint8, len(r.cells))
	copy(out, r.cells)

	return out
}

// Clone returns an independent register with the same width and contents.
func (r *Register) Clone() *Register {
	return &Register{cells: r.Bits()}
}

// String renders the cells MSB first, e.g. "00001101".
func (r *Register) String() string {
	var sb strings.Builder
	sb.Grow(len(r.cells))
	for i := len(r.cells) - 1; i >= 0; i-- {
		sb.WriteByte('0' + r.cells[i])
	}

	return sb.String()
}
