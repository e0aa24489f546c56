package verify

import (
	"fmt"

	"github.com/katalvlaran/nrdiv/adder"
	"github.com/katalvlaran/nrdiv/datapath"
	"github.com/katalvlaran/nrdiv/register"
)

// CompareDatapaths computes a + b + cin on the upper half of a 2·width-bit
// accumulator with both datapaths and checks that they agree with each
// other and with adder.RippleAdd on sum, carry and the full register.
// cin = 1 is presented as a subtract of ^b, cin = 0 as an add of b.
func CompareDatapaths(width int, a, b uint64, cin uint8) error {
	want, wantCarry, err := adder.RippleAdd(width, a, b, cin)
	if err != nil {
		return err
	}

	op := 1 - cin
	divisor := b
	if op == 0 {
		divisor = adder.Not(width, b)
	}

	var regs []string
	for _, dp := range []datapath.Datapath{datapath.WordParallel{}, datapath.BitSerial{}} {
		acc, err := register.New(2 * width)
		if err != nil {
			return err
		}
		div, err := register.New(width)
		if err != nil {
			return err
		}
		if err = acc.SetField(width, width, a); err != nil {
			return err
		}
		div.Set(divisor)

		sum, carry, err := dp.Add(acc, div, op, nil)
		if err != nil {
			return fmt.Errorf("verify: %s: %w", dp.Name(), err)
		}
		if sum != want || carry != wantCarry {
			return fmt.Errorf("%w: %s width %d: %#x+%#x+%d = (%#x, %d), want (%#x, %d)",
				ErrMismatch, dp.Name(), width, a, b, cin, sum, carry, want, wantCarry)
		}
		regs = append(regs, acc.String())
	}
	if regs[0] != regs[1] {
		return fmt.Errorf("%w: registers differ: %s vs %s", ErrMismatch, regs[0], regs[1])
	}

	return nil
}
