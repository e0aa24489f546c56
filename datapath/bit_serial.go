package datapath

import (
	"github.com/katalvlaran/nrdiv/adder"
	"github.com/katalvlaran/nrdiv/register"
)

// BitSerial reuses a single full adder for n sub-cycles.
// Sub-cycle j reads acc[n+j] and divisor[j], adds them with the carry
// latched from sub-cycle j-1 (the op carry-in for j = 0) and writes the
// sum bit back into acc[n+j]. Neither operand is ever materialized as a word.
type BitSerial struct{}

// Name implements Datapath.
func (BitSerial) Name() string { return NameBitSerial }

// TicksPerCycle implements Datapath: one tick per bit.
func (BitSerial) TicksPerCycle(width int) int { return width }

// Add implements Datapath.
func (BitSerial) Add(acc, divisor *register.Register, op uint8, tick TickFunc) (uint64, uint8, error) {
	n, err := checkOperands(acc, divisor, op)
	if err != nil {
		return 0, 0, err
	}

	carry := CarryIn(op)
	for j := 0; j < n; j++ {
		a, err := acc.Bit(n + j)
		if err != nil {
			return 0, 0, err
		}
		d, err := divisor.Bit(j)
		if err != nil {
			return 0, 0, err
		}

		var s uint8
		s, carry = adder.FullAdder(a, Mux(op, d), carry)
		if err = acc.SetBit(n+j, s); err != nil {
			return 0, 0, err
		}
		if tick != nil {
			tick(j)
		}
	}

	sum, err := acc.Field(n, n)
	if err != nil {
		return 0, 0, err
	}

	return sum, carry, nil
}
