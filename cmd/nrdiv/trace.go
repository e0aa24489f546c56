package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/nrdiv/trace"
)

func init() {
	TraceCmd.Flags().String("format", "table", "output format: table, yaml or json")
	RootCmd.AddCommand(TraceCmd)
}

var TraceCmd = &cobra.Command{
	Use:          "trace WIDTH DIVIDEND DIVISOR",
	Short:        "print the dividend register cycle by cycle",
	Args:         cobra.ExactArgs(3),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		width, dividend, divisor, err := parseOperands(args)
		if err != nil {
			return err
		}

		opts, err := dividerOptions()
		if err != nil {
			return err
		}

		run, err := trace.Capture(width, dividend, divisor, opts...)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch format := viper.GetString("format"); format {
		case "table":
			if err := trace.RenderTable(out, width, run.Events); err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "quotient=%d remainder=%d correction=%s\n",
				run.Outcome.Quotient, run.Outcome.Remainder, run.Outcome.Correction)
			return err
		case "yaml":
			return trace.WriteYAML(out, run)
		case "json":
			return trace.WriteJSON(out, run)
		default:
			return errors.Errorf("unknown format %q", format)
		}
	},
}
