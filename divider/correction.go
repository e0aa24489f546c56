package divider

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/nrdiv/adder"
)

// correct turns the raw per-cycle quotient code and partial remainder into
// the truncated quotient and remainder:
//
//  1. Remainder ← upper half of Dividend.
//  2. flip the quotient MSB, shift left, shift a 1 into the LSB.
//  3. if the final remainder sign differs from the latched dividend sign:
//     same as the divisor sign → q+1, Remainder -= Divisor;
//     otherwise               → q-1, Remainder += Divisor.
//  4. zero-remainder fix-up (unless RawCorrection): a remainder of exactly
//     +divisor or -divisor is folded into the quotient and cleared.
//
// All arithmetic goes through the ripple adder.
func (r *run) correct(res *Result) error {
	st, n := r.st, r.n

	upper, err := st.Dividend.Field(n, n)
	if err != nil {
		return fmt.Errorf("divider: correction: %w", err)
	}
	st.Remainder.Set(upper)

	if err = st.Quotient.Flip(n - 1); err != nil {
		return fmt.Errorf("divider: correction: %w", err)
	}
	st.Quotient.ShiftLeft(1)
	if err = st.Quotient.SetBit(0, 1); err != nil {
		return fmt.Errorf("divider: correction: %w", err)
	}

	signDivisor := st.SignDivisorFF.MSB()
	finalSign := st.Dividend.MSB()
	if finalSign != st.SignDividendFF.MSB() {
		if finalSign == signDivisor {
			res.Correction = CorrectionIncrement
		} else {
			res.Correction = CorrectionDecrement
		}
		if err = r.adjust(res.Correction == CorrectionIncrement); err != nil {
			return err
		}
	}

	if !r.opts.RawCorrection && st.Remainder.Uint64() != 0 {
		// remainder - divisor when the signs agree, remainder + divisor otherwise
		inc := st.Remainder.MSB() == signDivisor
		b, cin := st.Divisor.Uint64(), uint8(0)
		if inc {
			b, cin = adder.Not(n, b), 1
		}
		probe, _, err := adder.RippleAdd(n, st.Remainder.Uint64(), b, cin)
		if err != nil {
			return fmt.Errorf("divider: correction: %w", err)
		}
		if probe == 0 {
			if err = r.adjust(inc); err != nil {
				return err
			}
			res.RemainderFixed = true
		}
	}

	if r.debug {
		r.log.WithFields(logrus.Fields{
			"correction":      res.Correction,
			"remainder_fixed": res.RemainderFixed,
			"quotient":        st.Quotient.String(),
			"remainder":       st.Remainder.String(),
		}).Debug("correction")
	}

	return nil
}

// adjust applies one quotient step with the matching remainder update:
// inc → q+1, remainder-divisor; otherwise q-1, remainder+divisor.
func (r *run) adjust(inc bool) error {
	st, n := r.st, r.n
	mask := adder.Not(n, 0)

	// q+1 is q + 0 + carry-in; q-1 is q + all-ones.
	qb, qc := uint64(0), uint8(1)
	// remainder-divisor is remainder + ^divisor + 1.
	rb, rc := adder.Not(n, st.Divisor.Uint64()), uint8(1)
	if !inc {
		qb, qc = mask, 0
		rb, rc = st.Divisor.Uint64(), 0
	}

	q, _, err := adder.RippleAdd(n, st.Quotient.Uint64(), qb, qc)
	if err != nil {
		return fmt.Errorf("divider: correction: %w", err)
	}
	rem, _, err := adder.RippleAdd(n, st.Remainder.Uint64(), rb, rc)
	if err != nil {
		return fmt.Errorf("divider: correction: %w", err)
	}
	st.Quotient.Set(q)
	st.Remainder.Set(rem)

	return nil
}
