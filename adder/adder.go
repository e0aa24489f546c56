// Package adder provides the gate-level arithmetic primitives of the divider:
// a half adder, a full adder built from two half adders, and an n-bit
// ripple-carry adder built from full adders.
//
// RippleAdd is the only arithmetic operator in the simulator. Subtraction is
// always expressed as addition of the one's complement with a carry-in of 1.
//
// Bits are uint8 values 0 or 1. The single-bit primitives assume valid bits
// (they are the inner loop of every simulated clock tick); RippleAdd validates
// its width and carry-in because it is called with caller-supplied operands.
package adder

import (
	"errors"
	"fmt"
)

// MaxWidth is the widest adder representable with uint64 operands.
const MaxWidth = 64

var (
	// ErrInvalidWidth indicates an adder width outside [1, MaxWidth].
	ErrInvalidWidth = errors.New("adder: width must be in [1, 64]")

	// ErrInvalidBit indicates a carry-in other than 0 or 1.
	ErrInvalidBit = errors.New("adder: carry-in must be 0 or 1")
)

// xor is built from AND/OR/NOT the way the gate netlist draws it.
func xor(a, b uint8) uint8 {
	return a&(1-b) | (1-a)&b
}

// HalfAdder returns (a XOR b, a AND b).
func HalfAdder(a, b uint8) (sum, carry uint8) {
	return xor(a, b), a & b
}

// FullAdder chains two half adders:
//
//	(s1, c1) = HalfAdder(a, b)
//	(s2, c2) = HalfAdder(s1, cin)
//	result   = (s2, c1 OR c2)
func FullAdder(a, b, cin uint8) (sum, carry uint8) {
	s1, c1 := HalfAdder(a, b)
	s2, c2 := HalfAdder(s1, cin)

	return s2, c1 | c2
}

// RippleAdd adds the low n bits of a and b plus cin by running FullAdder
// from bit 0 to bit n-1 and threading the carry.
// Returns the n-bit sum and the carry out of bit n-1.
//
// Complexity: O(n) full-adder evaluations.
func RippleAdd(n int, a, b uint64, cin uint8) (sum uint64, carry uint8, err error) {
	if n < 1 || n > MaxWidth {
		return 0, 0, fmt.Errorf("%w: got %d", ErrInvalidWidth, n)
	}
	if cin > 1 {
		return 0, 0, fmt.Errorf("%w: got %d", ErrInvalidBit, cin)
	}

	carry = cin
	for i := 0; i < n; i++ {
		var s uint8
		s, carry = FullAdder(uint8(a>>uint(i)&1), uint8(b>>uint(i)&1), carry)
		sum |= uint64(s) << uint(i)
	}

	return sum, carry, nil
}

// Not returns the one's complement of the low n bits of v.
func Not(n int, v uint64) uint64 {
	if n >= MaxWidth {
		return ^v
	}

	return ^v & (uint64(1)<<uint(n) - 1)
}
