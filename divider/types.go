package divider

import (
	"fmt"

	"github.com/katalvlaran/nrdiv/register"
)

// MaxWidth is the widest divisor supported; the 2·width dividend register
// must fit a 64-bit word.
const MaxWidth = 32

// State is the complete register file of one division.
// It is created by NewState, mutated in place by Run and never shared:
// every division owns a fresh State.
type State struct {
	// Width is the divisor, quotient and remainder width n.
	Width int

	// Divisor holds the n-bit divisor for the whole run.
	Divisor *register.Register

	// Dividend is 2n bits wide. Its upper half is the partial remainder,
	// and it holds the final remainder after the last cycle.
	Dividend *register.Register

	// SignDivisorFF and SignDividendFF latch the operand signs before the
	// first cycle; the correction step compares against them.
	SignDivisorFF  *register.Register
	SignDividendFF *register.Register

	// Quotient collects one quotient bit per cycle, MSB first.
	Quotient *register.Register

	// Remainder is written only by the correction step.
	Remainder *register.Register

	dividend, divisor int64
	used              bool
}

// Correction records which adjustment the terminal correction applied.
type Correction int

const (
	// CorrectionNone means the final remainder already had the dividend's sign.
	CorrectionNone Correction = iota
	// CorrectionIncrement means quotient+1 and remainder-divisor.
	CorrectionIncrement
	// CorrectionDecrement means quotient-1 and remainder+divisor.
	CorrectionDecrement
)

// String returns "none", "increment" or "decrement".
func (c Correction) String() string {
	switch c {
	case CorrectionNone:
		return "none"
	case CorrectionIncrement:
		return "increment"
	case CorrectionDecrement:
		return "decrement"
	}

	return fmt.Sprintf("Correction(%d)", int(c))
}

// Result is the outcome of one division.
type Result struct {
	// Quotient and Remainder are the signed n-bit results.
	Quotient  int64
	Remainder int64

	// Datapath names the adder datapath that ran.
	Datapath string

	// Cycles is the number of outer cycles (always Width).
	Cycles int

	// Ticks is the number of clock ticks spent in the cycle loop:
	// Cycles × Datapath.TicksPerCycle(Width).
	Ticks int

	// Correction is the sign correction applied after the loop.
	Correction Correction

	// RemainderFixed reports that the zero-remainder fix-up fired
	// (exact division of a negative dividend).
	RemainderFixed bool

	// Overflow reports that the truncated quotient does not fit Width signed
	// bits. Quotient and Remainder are then the wrapped register contents.
	Overflow bool
}

// QuotientRule selects how a cycle's quotient bit is derived.
type QuotientRule int

const (
	// QuotientFromSigns sets bit n-1-i to 1 - (signDividend XOR signDivisor),
	// using the dividend sign sampled before the cycle's shift.
	QuotientFromSigns QuotientRule = iota

	// QuotientFromCarry sets bit n-1-i to 1 - (carry XOR signDivisor) using
	// the adder's carry out. It does not produce the truncated quotient for
	// all inputs and is kept for comparison only.
	QuotientFromCarry
)

// String returns "signs" or "carry".
func (q QuotientRule) String() string {
	switch q {
	case QuotientFromSigns:
		return "signs"
	case QuotientFromCarry:
		return "carry"
	}

	return fmt.Sprintf("QuotientRule(%d)", int(q))
}

// Bit returns the quotient bit for one cycle.
func (q QuotientRule) Bit(signDividend, signDivisor, carry uint8) uint8 {
	if q == QuotientFromCarry {
		return 1 - (carry ^ signDivisor)
	}

	return 1 - (signDividend ^ signDivisor)
}

func (q QuotientRule) valid() bool {
	return q == QuotientFromSigns || q == QuotientFromCarry
}

// EventKind identifies the point in a cycle where an Event was taken.
type EventKind int

const (
	// EventPreShift is taken at the start of a cycle, before the left shift.
	EventPreShift EventKind = iota
	// EventPostShift is taken right after the left shift.
	EventPostShift
	// EventSubCycle is taken after each bit-serial sub-cycle.
	EventSubCycle
	// EventAdd is taken after the cycle's add has been written back.
	EventAdd
)

// String returns the kebab-case name used in traces.
func (k EventKind) String() string {
	switch k {
	case EventPreShift:
		return "pre-shift"
	case EventPostShift:
		return "post-shift"
	case EventSubCycle:
		return "sub-cycle"
	case EventAdd:
		return "add"
	}

	return fmt.Sprintf("EventKind(%d)", int(k))
}

// MarshalText encodes the kind by name in JSON and YAML traces.
func (k EventKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText parses a name produced by MarshalText.
func (k *EventKind) UnmarshalText(b []byte) error {
	for c := EventPreShift; c <= EventAdd; c++ {
		if c.String() == string(b) {
			*k = c
			return nil
		}
	}

	return fmt.Errorf("divider: unknown event kind %q", b)
}

// Event is one trace sample of the dividend register.
type Event struct {
	// Cycle is the outer cycle index, 0-based.
	Cycle int `json:"cycle" yaml:"cycle"`

	// SubCycle is the bit-serial sub-cycle index, or -1 outside sub-cycles.
	SubCycle int `json:"sub_cycle" yaml:"sub_cycle"`

	// Kind tells where in the cycle the sample was taken.
	Kind EventKind `json:"kind" yaml:"kind"`

	// Dividend is the dividend register read as a signed 2n-bit integer.
	Dividend int64 `json:"dividend" yaml:"dividend"`

	// Op is the cycle's operation (1 add, 0 subtract); valid for sub-cycle and add events.
	Op uint8 `json:"op" yaml:"op"`

	// Carry and QuotientBit are valid for add events.
	Carry       uint8 `json:"carry" yaml:"carry"`
	QuotientBit uint8 `json:"quotient_bit" yaml:"quotient_bit"`
}
