package divider

import "errors"

// Sentinel errors for the division controller.
// Every message is prefixed with "divider:"; match with errors.Is.
// Operand validation reports every violated precondition at once
// (combined with multierr), so one error may match several sentinels.
var (
	// ErrInvalidWidth indicates an operand width outside [1, MaxWidth].
	ErrInvalidWidth = errors.New("divider: width must be in [1, 32]")

	// ErrDivisionByZero indicates a zero divisor. It is detected before any
	// register is loaded.
	ErrDivisionByZero = errors.New("divider: division by zero")

	// ErrValueOutOfRange indicates a dividend that does not fit 2·width signed
	// bits or a divisor that does not fit width signed bits.
	ErrValueOutOfRange = errors.New("divider: value out of range")

	// ErrOptionViolation indicates an invalid Option (nil datapath, unknown rule).
	ErrOptionViolation = errors.New("divider: invalid option supplied")

	// ErrStateUsed indicates Run was called twice on the same State.
	ErrStateUsed = errors.New("divider: state already ran")
)
