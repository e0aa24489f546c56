// SPDX-License-Identifier: MIT

// Package divider is a cycle-accurate controller for non-restoring signed
// division of a 2n-bit dividend by an n-bit divisor.
//
// What
//
//   - Loads a State: n-bit Divisor, 2n-bit Dividend (upper half is the
//     partial remainder), two sign flip-flops, n-bit Quotient and Remainder.
//   - Runs exactly n outer cycles. Each cycle samples both signs, shifts the
//     dividend left by one, then adds the divisor to the upper half when the
//     signs differ and subtracts it when they agree. The add itself is
//     delegated to a datapath.Datapath (word-parallel or bit-serial).
//   - Records one quotient bit per cycle, MSB first:
//     q[n-1-i] = 1 - (signDividend XOR signDivisor), with signDividend
//     sampled before the shift.
//   - Finishes with the correction step: the quotient code is converted to
//     two's complement (flip MSB, shift left, shift in 1) and, when the final
//     partial remainder sign differs from the dividend sign, both quotient
//     and remainder are adjusted by one divisor step.
//   - Folds a remainder of exactly ±divisor into the quotient (exact
//     division of a negative dividend). WithRawCorrection disables this.
//
// Result
//
//	Quotient and Remainder follow truncating division: the quotient rounds
//	toward zero and the remainder takes the dividend's sign, so
//	dividend = Quotient·divisor + Remainder with |Remainder| < |divisor|.
//	This holds whenever the truncated quotient fits n signed bits; otherwise
//	Result.Overflow is set and the registers hold wrapped values.
//
// Tracing
//
//	WithTrace installs a hook that receives an Event before and after each
//	shift, after each bit-serial sub-cycle, and after each add. The hook runs
//	synchronously on the calling goroutine.
//
// Usage
//
//	res, err := divider.Divide(4, 13, 3)
//	// res.Quotient == 4, res.Remainder == 1
//
//	res, err = divider.Divide(8, -1000, 77,
//		divider.WithDatapath(datapath.BitSerial{}),
//		divider.WithTrace(func(ev divider.Event) { /* ... */ }),
//	)
//
// Errors
//
//   - ErrInvalidWidth      width outside [1, 32].
//   - ErrDivisionByZero    divisor == 0, reported before any cycle runs.
//   - ErrValueOutOfRange   operand does not fit its register.
//   - ErrOptionViolation   nil datapath or unknown quotient rule.
//   - ErrStateUsed         State.Run called twice.
//
// Complexity
//
//	Time: O(n²) bit operations (n cycles × n-bit ripple add).
//	Memory: O(n) register cells.
package divider
