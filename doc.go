// Package nrdiv is a register-transfer-level simulator of a non-restoring
// signed binary divider.
//
// What is nrdiv?
//
//	A cycle-accurate model of the circuit that divides a 2n-bit two's-complement
//	dividend by an n-bit divisor in n clock cycles of shift and add-or-subtract,
//	followed by a quotient-correction step:
//		• register/  fixed-width bit registers with logical shifts
//		• adder/     half adder, full adder, n-bit ripple-carry adder
//		• datapath/  word-parallel and bit-serial adder datapaths
//		• divider/   the controller: cycles, quotient bits, correction, trace hook
//		• trace/     trace recorder, table rendering, YAML/JSON export
//		• verify/    reference division, parallel sweeps, rule comparison
//		• cmd/nrdiv  command-line driver
//
// Quick example:
//
//	res, err := divider.Divide(4, 13, 3)
//	// res.Quotient == 4, res.Remainder == 1
//
//	res, err = divider.Divide(4, -13, 3, divider.WithDatapath(datapath.BitSerial{}))
//	// res.Quotient == -4, res.Remainder == -1, res.Ticks == 16
//
// Results follow truncating division (quotient toward zero, remainder with
// the dividend's sign) whenever the quotient fits n signed bits.
//
//	go install github.com/katalvlaran/nrdiv/cmd/nrdiv@latest
package nrdiv
