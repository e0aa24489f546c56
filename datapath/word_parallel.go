package datapath

import (
	"github.com/katalvlaran/nrdiv/adder"
	"github.com/katalvlaran/nrdiv/register"
)

// WordParallel adds the whole upper word in one tick with an n-bit ripple adder.
type WordParallel struct{}

// Name implements Datapath.
func (WordParallel) Name() string { return NameWordParallel }

// TicksPerCycle implements Datapath: one tick per add.
func (WordParallel) TicksPerCycle(int) int { return 1 }

// Add implements Datapath.
func (WordParallel) Add(acc, divisor *register.Register, op uint8, tick TickFunc) (uint64, uint8, error) {
	n, err := checkOperands(acc, divisor, op)
	if err != nil {
		return 0, 0, err
	}

	// mux: divisor or its one's complement
	b := divisor.Uint64()
	if op == 0 {
		b = adder.Not(n, b)
	}
	a, err := acc.Field(n, n)
	if err != nil {
		return 0, 0, err
	}

	sum, carry, err := adder.RippleAdd(n, a, b, CarryIn(op))
	if err != nil {
		return 0, 0, err
	}
	if err = acc.SetField(n, n, sum); err != nil {
		return 0, 0, err
	}
	if tick != nil {
		tick(0)
	}

	return sum, carry, nil
}
