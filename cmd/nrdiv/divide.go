package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/nrdiv/divider"
)

func init() {
	DivideCmd.Flags().Bool("raw", false, "skip the zero-remainder fix-up")
	DivideCmd.Flags().Bool("carry-rule", false, "derive quotient bits from the adder carry")
	RootCmd.AddCommand(DivideCmd)
}

var DivideCmd = &cobra.Command{
	Use:          "divide WIDTH DIVIDEND DIVISOR",
	Short:        "divide once and print quotient and remainder",
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
		if viper.GetBool("raw") {
			opts = append(opts, divider.WithRawCorrection())
		}
		if viper.GetBool("carry-rule") {
			opts = append(opts, divider.WithQuotientRule(divider.QuotientFromCarry))
		}

		res, err := divider.Divide(width, dividend, divisor, opts...)
		if err != nil {
			return err
		}
		if res.Overflow {
			log.Warnf("quotient of %d/%d does not fit %d bits; result is wrapped", dividend, divisor, width)
		}

		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.SetStyle(table.StyleLight)
		t.AppendRows([]table.Row{
			{"width", width},
			{"dividend", dividend},
			{"divisor", divisor},
			{"datapath", res.Datapath},
			{"quotient", res.Quotient},
			{"remainder", res.Remainder},
			{"correction", res.Correction.String()},
			{"remainder fixed", res.RemainderFixed},
			{"overflow", res.Overflow},
			{"cycles", res.Cycles},
			{"ticks", res.Ticks},
		})
		t.Render()

		return nil
	},
}
