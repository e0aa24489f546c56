// Package register models a fixed-width hardware register as an array of
// single-bit cells.
//
// What
//
//   - A Register owns exactly Width() cells; cell 0 is the least significant bit.
//   - Every cell holds 0 or 1. SetBit rejects anything else with ErrInvalidBitValue.
//   - Bit and SetBit are bounds-checked and return ErrIndexOutOfRange instead of panicking.
//   - Set stores v mod 2^Width(). Overflowing values are truncated silently,
//     exactly like a physical register latching the low wires of a wider bus.
//     This is the one place where out-of-range input is not an error.
//   - ShiftLeft / ShiftRight are logical shifts: cells pushed off one end are
//     lost and zeros come in at the other end. There is no rotate and no
//     sign extension.
//   - Uint64 and Int64 read the same cells as unsigned and two's-complement
//     integers respectively.
//
// Usage
//
//	r, err := register.New(8)
//	if err != nil {
//		// ErrInvalidWidth
//	}
//	r.SetInt64(-3)          // cells: 11111101
//	r.Int64()               // -3
//	r.Uint64()              // 253
//	r.ShiftLeft(1)          // 11111010
//	b, _ := r.Bit(0)        // 0
//
// Widths
//
//	1 ≤ width ≤ 64. Integer views use uint64/int64 so a register never holds
//	more bits than a machine word can carry.
//
// Concurrency
//
//	A Register is not safe for concurrent mutation. The divider gives every
//	run its own registers, so no locking is needed on the hot path.
package register
