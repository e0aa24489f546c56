package register

import "errors"

// Sentinel errors for register construction and cell access.
// Callers branch on them with errors.Is; context is attached with %w.
var (
	// ErrInvalidWidth indicates a width outside [1, MaxWidth].
	ErrInvalidWidth = errors.New("register: width must be in [1, 64]")

	// ErrIndexOutOfRange indicates a bit index outside [0, Width()).
	ErrIndexOutOfRange = errors.New("register: index out of range")

	// ErrInvalidBitValue indicates an attempt to store something other than 0 or 1 in a cell.
	ErrInvalidBitValue = errors.New("register: bit value must be 0 or 1")
)
