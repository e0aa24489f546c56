package main

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/nrdiv/datapath"
	"github.com/katalvlaran/nrdiv/verify"
)

func init() {
	VerifyCmd.Flags().Int("samples", 0, "random inputs to check; 0 checks every input")
	VerifyCmd.Flags().Int("workers", 0, "concurrent jobs; 0 uses GOMAXPROCS")
	VerifyCmd.Flags().Int64("seed", 1, "random seed for --samples")
	VerifyCmd.Flags().Int("adds", 0, "random raw adds to compare between the datapaths")
	VerifyCmd.Flags().Bool("rules", false, "count inputs where the carry quotient rule diverges")
	VerifyCmd.Flags().Int("show", 10, "mismatches to list")
	RootCmd.AddCommand(VerifyCmd)
}

var VerifyCmd = &cobra.Command{
	Use:          "verify WIDTH",
	Short:        "check the divider against integer division",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		width, err := strconv.Atoi(args[0])
		if err != nil {
			return errors.Wrapf(err, "invalid width %q", args[0])
		}

		if viper.GetBool("rules") {
			rep, err := verify.CompareRules(ctx, width)
			if err != nil {
				return err
			}
			printReport(cmd, rep)
			return nil
		}

		if adds := viper.GetInt("adds"); adds > 0 {
			if err := compareAdds(width, adds, viper.GetInt64("seed")); err != nil {
				return err
			}
			log.Infof("%d raw adds agree on both datapaths", adds)
		}

		cfg := verify.Config{
			Width:   width,
			Samples: viper.GetInt("samples"),
			Seed:    viper.GetInt64("seed"),
			Workers: viper.GetInt("workers"),
			Logger:  log.StandardLogger(),
		}
		if viper.IsSet("datapath") {
			dp, err := datapath.ByName(viper.GetString("datapath"))
			if err != nil {
				return err
			}
			cfg.Datapaths = []datapath.Datapath{dp}
		}

		rep, err := verify.Sweep(ctx, cfg)
		if err != nil {
			return err
		}
		printReport(cmd, rep)

		if rep.Err() != nil {
			return errors.Wrapf(verify.ErrMismatch, "%d of %d inputs", len(rep.Mismatches), rep.Checked)
		}

		return nil
	},
}

func compareAdds(width, adds int, seed int64) error {
	rng := rand.New(rand.NewSource(seed))
	mask := uint64(1)<<uint(width) - 1
	for i := 0; i < adds; i++ {
		a, b := rng.Uint64()&mask, rng.Uint64()&mask
		if err := verify.CompareDatapaths(width, a, b, uint8(rng.Intn(2))); err != nil {
			return err
		}
	}

	return nil
}

func printReport(cmd *cobra.Command, rep *verify.Report) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "width %d: %d inputs checked, %d mismatches\n", rep.Width, rep.Checked, len(rep.Mismatches))
	if len(rep.Mismatches) == 0 {
		return
	}

	show := min(max(viper.GetInt("show"), 0), len(rep.Mismatches))
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"source", "dividend", "divisor", "quotient", "remainder", "want q", "want r"})
	for _, m := range rep.Mismatches[:show] {
		t.AppendRow(table.Row{m.Source, m.Dividend, m.Divisor, m.GotQuotient, m.GotRemainder, m.WantQuotient, m.WantRemainder})
	}
	t.Render()
}
