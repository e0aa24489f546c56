package main

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/nrdiv/datapath"
	"github.com/katalvlaran/nrdiv/divider"
)

var RootCmd = &cobra.Command{
	Use:   "nrdiv",
	Short: "non-restoring signed division simulator",
	Long:  "cycle-accurate simulator of a non-restoring signed divider with word-parallel and bit-serial datapaths",

	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
}

func init() {
	RootCmd.PersistentFlags().Bool("debug", false, "log every divider cycle")
	RootCmd.PersistentFlags().String("config", "", "YAML config file")
	RootCmd.PersistentFlags().String("datapath", datapath.NameWordParallel,
		"adder datapath: "+strings.Join(datapath.Names(), " or "))
}

func setup(cmd *cobra.Command) error {
	viper.SetEnvPrefix("nrdiv")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return errors.Wrap(err, "failed to bind flags")
	}

	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		viper.SetConfigType("yaml")
		if err := viper.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "failed to load config file %s", configFile)
		}
	}

	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	log.SetOutput(cmd.ErrOrStderr())
	if viper.GetBool("debug") {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}

	return nil
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		log.WithError(err).Fatal("cannot execute command")
	}
}

// dividerOptions builds the divider options shared by every subcommand.
func dividerOptions() ([]divider.Option, error) {
	dp, err := datapath.ByName(viper.GetString("datapath"))
	if err != nil {
		return nil, err
	}

	return []divider.Option{
		divider.WithDatapath(dp),
		divider.WithLogger(log.StandardLogger()),
	}, nil
}

// parseOperands reads WIDTH DIVIDEND DIVISOR.
func parseOperands(args []string) (width int, dividend, divisor int64, err error) {
	width, err = strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, 0, errors.Wrapf(err, "invalid width %q", args[0])
	}
	dividend, err = strconv.ParseInt(args[1], 0, 64)
	if err != nil {
		return 0, 0, 0, errors.Wrapf(err, "invalid dividend %q", args[1])
	}
	divisor, err = strconv.ParseInt(args[2], 0, 64)
	if err != nil {
		return 0, 0, 0, errors.Wrapf(err, "invalid divisor %q", args[2])
	}

	return width, dividend, divisor, nil
}
