package divider

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/katalvlaran/nrdiv/datapath"
	"github.com/katalvlaran/nrdiv/register"
)

// Divide simulates the divider on one operand pair and returns the signed
// quotient and remainder with run statistics.
//
// Errors:
//   - ErrInvalidWidth     width outside [1, MaxWidth].
//   - ErrDivisionByZero   divisor == 0.
//   - ErrValueOutOfRange  dividend outside 2·width bits or divisor outside width bits.
//   - ErrOptionViolation  invalid Option.
//
// Several input errors may be reported together; check with errors.Is.
func Divide(width int, dividend, divisor int64, opts ...Option) (*Result, error) {
	st, err := NewState(width, dividend, divisor)
	if err != nil {
		return nil, err
	}

	return st.Run(opts...)
}

// NewState validates the operands and loads a fresh register file:
// divisor and dividend registers, the two sign flip-flops, and cleared
// quotient and remainder registers.
func NewState(width int, dividend, divisor int64) (*State, error) {
	if err := ValidateOperands(width, dividend, divisor); err != nil {
		return nil, err
	}

	st := &State{Width: width, dividend: dividend, divisor: divisor}
	regs := []struct {
		dst   **register.Register
		width int
	}{
		{&st.Divisor, width},
		{&st.Dividend, 2 * width},
		{&st.SignDivisorFF, 1},
		{&st.SignDividendFF, 1},
		{&st.Quotient, width},
		{&st.Remainder, width},
	}
	for _, r := range regs {
		reg, err := register.New(r.width)
		if err != nil {
			return nil, err
		}
		*r.dst = reg
	}

	st.Divisor.SetInt64(divisor)
	st.Dividend.SetInt64(dividend)
	st.SignDivisorFF.Set(uint64(st.Divisor.MSB()))
	st.SignDividendFF.Set(uint64(st.Dividend.MSB()))

	return st, nil
}

// ValidateOperands checks every input precondition and returns all
// violations combined, or nil.
func ValidateOperands(width int, dividend, divisor int64) error {
	if width < 1 || width > MaxWidth {
		// ranges are meaningless without a width
		err := fmt.Errorf("%w: got %d", ErrInvalidWidth, width)
		if divisor == 0 {
			err = multierr.Append(err, ErrDivisionByZero)
		}
		return err
	}

	var errs error
	if divisor == 0 {
		errs = multierr.Append(errs, ErrDivisionByZero)
	}
	if !fits(dividend, 2*width) {
		errs = multierr.Append(errs, fmt.Errorf("%w: dividend %d does not fit %d bits", ErrValueOutOfRange, dividend, 2*width))
	}
	if !fits(divisor, width) {
		errs = multierr.Append(errs, fmt.Errorf("%w: divisor %d does not fit %d bits", ErrValueOutOfRange, divisor, width))
	}

	return errs
}

// fits reports whether v is representable as a bits-wide two's-complement value.
func fits(v int64, bits int) bool {
	if bits >= 64 {
		return true
	}
	lim := int64(1) << uint(bits-1)

	return v >= -lim && v < lim
}

// Run drives the n outer cycles and the correction step.
// A State runs once; a second call returns ErrStateUsed.
func (st *State) Run(opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if st.used {
		return nil, ErrStateUsed
	}
	st.used = true

	r := &run{
		st:    st,
		opts:  o,
		n:     st.Width,
		log:   o.Logger.WithField("datapath", o.Datapath.Name()),
		debug: debugEnabled(o.Logger),
	}
	if r.debug {
		r.log.WithFields(logrus.Fields{
			"width":    st.Width,
			"dividend": st.dividend,
			"divisor":  st.divisor,
			"rule":     o.Rule,
		}).Debug("divide")
	}

	for i := 0; i < r.n; i++ {
		if err := r.cycle(i); err != nil {
			return nil, err
		}
	}

	res := &Result{
		Datapath: o.Datapath.Name(),
		Cycles:   r.n,
		Ticks:    r.n * o.Datapath.TicksPerCycle(r.n),
		Overflow: !fits(truncQuotient(st.dividend, st.divisor), r.n),
	}
	if err := r.correct(res); err != nil {
		return nil, err
	}
	res.Quotient = st.Quotient.Int64()
	res.Remainder = st.Remainder.Int64()

	if r.debug {
		r.log.WithFields(logrus.Fields{
			"quotient":   res.Quotient,
			"remainder":  res.Remainder,
			"correction": res.Correction,
			"overflow":   res.Overflow,
		}).Debug("done")
	}

	return res, nil
}

// truncQuotient is Go's truncating division; the divisor is never zero here.
func truncQuotient(dividend, divisor int64) int64 {
	return dividend / divisor
}

// run owns the mutable state of one division while it executes.
type run struct {
	st    *State
	opts  Options
	n     int
	log   logrus.FieldLogger
	debug bool
}

func (r *run) emit(ev Event) {
	if r.opts.traced {
		r.opts.OnEvent(ev)
	}
}

// cycle performs outer cycle i: sample signs, shift, add or subtract,
// place the quotient bit.
func (r *run) cycle(i int) error {
	st, n := r.st, r.n

	signDivisor := st.Divisor.MSB()
	signDividend := st.Dividend.MSB()

	r.emit(Event{Cycle: i, SubCycle: -1, Kind: EventPreShift, Dividend: st.Dividend.Int64()})
	st.Dividend.ShiftLeft(1)
	r.emit(Event{Cycle: i, SubCycle: -1, Kind: EventPostShift, Dividend: st.Dividend.Int64()})

	// 1 = signs differ = add; 0 = signs agree = subtract
	op := signDivisor ^ signDividend

	var tick datapath.TickFunc
	if r.opts.traced && r.opts.Datapath.TicksPerCycle(n) > 1 {
		tick = func(j int) {
			r.emit(Event{Cycle: i, SubCycle: j, Kind: EventSubCycle, Dividend: st.Dividend.Int64(), Op: op})
		}
	}
	_, carry, err := r.opts.Datapath.Add(st.Dividend, st.Divisor, op, tick)
	if err != nil {
		return fmt.Errorf("divider: cycle %d: %w", i, err)
	}

	qbit := r.opts.Rule.Bit(signDividend, signDivisor, carry)
	if err = st.Quotient.SetBit(n-1-i, qbit); err != nil {
		return fmt.Errorf("divider: cycle %d: %w", i, err)
	}

	r.emit(Event{
		Cycle:       i,
		SubCycle:    -1,
		Kind:        EventAdd,
		Dividend:    st.Dividend.Int64(),
		Op:          op,
		Carry:       carry,
		QuotientBit: qbit,
	})
	if r.debug {
		r.log.WithFields(logrus.Fields{
			"cycle":    i,
			"op":       op,
			"carry":    carry,
			"qbit":     qbit,
			"dividend": st.Dividend.String(),
		}).Debug("cycle")
	}

	return nil
}
