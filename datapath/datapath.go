// Package datapath implements the two interchangeable adder datapaths the
// division controller drives once per outer cycle.
//
// What
//
//   - WordParallel: one n-bit combinational add per cycle (n full adders,
//     one clock tick).
//   - BitSerial: the same add spread over n sub-cycles on a single full adder,
//     carry held in a flip-flop between sub-cycles (one full adder, n ticks).
//
// Both compute
//
//	acc[n:2n] ← acc[n:2n] + Mux(op, divisor) + (1 - op)
//
// and return the n-bit sum with the carry out of the top bit. For every input
// the two produce identical (sum, carry) and identical register contents;
// that equivalence is the core correctness property of the simulator.
//
// Operands
//
//	acc      2n-bit dividend/remainder register; its upper half is operand A
//	         and receives the sum.
//	divisor  n-bit divisor register; Mux selects it (op = 1, add) or its
//	         one's complement (op = 0, subtract with carry-in 1).
package datapath

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/nrdiv/register"
)

// Canonical datapath names, accepted by ByName.
const (
	NameWordParallel = "word-parallel"
	NameBitSerial    = "bit-serial"
)

var (
	// ErrUnknownDatapath indicates ByName was given an unrecognized name.
	ErrUnknownDatapath = errors.New("datapath: unknown datapath")

	// ErrWidthMismatch indicates acc is not exactly twice the divisor width.
	ErrWidthMismatch = errors.New("datapath: accumulator must be twice the divisor width")

	// ErrInvalidOp indicates an op value other than 0 or 1.
	ErrInvalidOp = errors.New("datapath: op must be 0 or 1")
)

// TickFunc observes the end of one clock tick inside an add.
// WordParallel fires it once with tick 0; BitSerial fires it after every sub-cycle.
type TickFunc func(tick int)

// Datapath performs one controller cycle's add.
type Datapath interface {
	// Name returns the canonical name (NameWordParallel or NameBitSerial).
	Name() string

	// TicksPerCycle returns how many clock ticks one Add occupies for a
	// divisor of the given width.
	TicksPerCycle(width int) int

	// Add computes upper(acc) + Mux(op, divisor) + (1-op), writes the sum
	// into the upper half of acc and returns it with the carry out.
	// tick may be nil.
	Add(acc, divisor *register.Register, op uint8, tick TickFunc) (sum uint64, carry uint8, err error)
}

// Mux is the operand-B multiplexer for one bit:
// op = 1 passes the divisor bit (add), op = 0 passes its complement (subtract).
func Mux(op, bit uint8) uint8 {
	if op == 1 {
		return bit
	}

	return 1 - bit
}

// CarryIn returns the adder carry-in for op: 0 when adding, 1 when subtracting.
func CarryIn(op uint8) uint8 { return 1 - op }

// ByName resolves a datapath by its canonical name.
func ByName(name string) (Datapath, error) {
	switch name {
	case NameWordParallel:
		return WordParallel{}, nil
	case NameBitSerial:
		return BitSerial{}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownDatapath, name)
}

// Names lists the canonical datapath names.
func Names() []string { return []string{NameWordParallel, NameBitSerial} }

// checkOperands validates register widths and op.
func checkOperands(acc, divisor *register.Register, op uint8) (int, error) {
	n := divisor.Width()
	if acc.Width() != 2*n {
		return 0, fmt.Errorf("%w: acc %d, divisor %d", ErrWidthMismatch, acc.Width(), n)
	}
	if op > 1 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidOp, op)
	}

	return n, nil
}
