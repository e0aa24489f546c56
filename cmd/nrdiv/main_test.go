package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/nrdiv/datapath"
	"github.com/katalvlaran/nrdiv/divider"
	"github.com/katalvlaran/nrdiv/trace"
	"github.com/katalvlaran/nrdiv/verify"
)

// execute runs the command tree with fresh flags and viper state and
// returns what it wrote to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	resetFlags(RootCmd)

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(io.Discard)
	RootCmd.SetArgs(args)
	err := RootCmd.Execute()

	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestDivideCmd(t *testing.T) {
	out, err := execute(t, "divide", "4", "13", "3")
	require.NoError(t, err)
	assert.Regexp(t, `quotient\s+│\s+4\s`, out)
	assert.Regexp(t, `remainder\s+│\s+1\s`, out)
	assert.Regexp(t, `datapath\s+│\s+word-parallel`, out)

	out, err = execute(t, "divide", "--datapath", "bit-serial", "--", "4", "-13", "3")
	require.NoError(t, err)
	assert.Regexp(t, `quotient\s+│\s+-4\s`, out)
	assert.Regexp(t, `ticks\s+│\s+16\s`, out)

	out, err = execute(t, "divide", "--raw", "--", "4", "-56", "-8")
	require.NoError(t, err)
	assert.Regexp(t, `remainder\s+│\s+-8\s`, out)

	out, err = execute(t, "divide", "--carry-rule", "4", "13", "3")
	require.NoError(t, err)
	assert.Regexp(t, `quotient\s+│\s+6\s`, out)
}

func TestDivideCmd_Errors(t *testing.T) {
	_, err := execute(t, "divide", "4", "13", "0")
	assert.ErrorIs(t, err, divider.ErrDivisionByZero)

	_, err = execute(t, "divide", "4", "x", "3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid dividend")

	_, err = execute(t, "divide", "--datapath", "carry-save", "4", "13", "3")
	assert.ErrorIs(t, err, datapath.ErrUnknownDatapath)

	_, err = execute(t, "divide", "4", "13")
	assert.Error(t, err)
}

func TestDivideCmd_Environment(t *testing.T) {
	t.Setenv("NRDIV_DATAPATH", "bit-serial")
	out, err := execute(t, "divide", "4", "13", "3")
	require.NoError(t, err)
	assert.Regexp(t, `datapath\s+│\s+bit-serial`, out)
}

func TestDivideCmd_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nrdiv.yaml")
	require.NoError(t, os.WriteFile(path, []byte("datapath: bit-serial\n"), 0o600))

	out, err := execute(t, "--config", path, "divide", "4", "13", "3")
	require.NoError(t, err)
	assert.Regexp(t, `datapath\s+│\s+bit-serial`, out)

	_, err = execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "divide", "4", "13", "3")
	assert.Error(t, err)
}

func TestTraceCmd(t *testing.T) {
	out, err := execute(t, "trace", "4", "13", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "quotient=4 remainder=1 correction=decrement")
	assert.Equal(t, 4, strings.Count(out, "pre-shift"))

	out, err = execute(t, "trace", "--format", "json", "--", "4", "-13", "3")
	require.NoError(t, err)
	run, err := trace.ReadJSON(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, int64(-4), run.Outcome.Quotient)
	assert.Equal(t, int64(-1), run.Outcome.Remainder)
	assert.Len(t, run.Events, 12)

	out, err = execute(t, "trace", "--format", "yaml", "--datapath", "bit-serial", "4", "13", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "kind: sub-cycle")

	_, err = execute(t, "trace", "--format", "xml", "4", "13", "3")
	assert.Error(t, err)
}

func TestVerifyCmd(t *testing.T) {
	out, err := execute(t, "verify", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "width 4: 1073 inputs checked, 0 mismatches")

	out, err = execute(t, "verify", "--samples", "1000", "--adds", "200", "--workers", "2", "16")
	require.NoError(t, err)
	assert.Contains(t, out, "width 16: 1000 inputs checked, 0 mismatches")

	out, err = execute(t, "verify", "--datapath", "bit-serial", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "137 inputs checked")

	out, err = execute(t, "verify", "--rules", "--show", "3", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "1073 inputs checked, 945 mismatches")
	assert.Contains(t, out, "SOURCE")

	_, err = execute(t, "verify", "20")
	assert.ErrorIs(t, err, verify.ErrInvalidConfig)
}
