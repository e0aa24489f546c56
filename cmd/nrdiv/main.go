// Command nrdiv runs the non-restoring divider simulator from the shell.
//
//	nrdiv divide 4 13 3
//	nrdiv trace --datapath bit-serial --format yaml -- 4 -13 3
//	nrdiv verify 6
//	nrdiv verify 32 --samples 100000 --workers 8
//
// Negative operands must follow "--" so they are not read as flags.
// Persistent flags can also be set through NRDIV_* environment variables
// (NRDIV_DEBUG, NRDIV_DATAPATH) or a YAML file passed with --config.
package main

func main() {
	Execute()
}
