package cmd

import (
	"io"
	"strings"

	"cosmossdk.io/log"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix = "SWAPSIM"

	flagConfig       = "config"
	flagLogLevel     = "log-level"
	flagLogFormat    = "log-format"
	flagMetricsAddr  = "metrics-addr"
	flagPrintMetrics = "print-metrics"
)

// NewRootCmd creates the swapsim root command. Settings resolve from flags,
// then SWAPSIM_* environment variables, then the optional --config file.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "swapsim",
		Short: "Constant-product pool simulator",
		Long: `swapsim replays liquidity and trading scenarios against the tokenswap
keeper on an in-memory store and reports the resulting pool state.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())
			return loadConfig(v, cmd.Flags())
		},
	}

	rootCmd.PersistentFlags().String(flagConfig, "", "config file (yaml, toml or json)")
	rootCmd.PersistentFlags().String(flagLogLevel, zerolog.InfoLevel.String(), "log level (trace|debug|info|warn|error)")
	rootCmd.PersistentFlags().String(flagLogFormat, "plain", "log format (plain|json)")

	rootCmd.AddCommand(
		newRunCmd(v),
		newQuoteCmd(),
	)

	return rootCmd
}

func loadConfig(v *viper.Viper, flags *pflag.FlagSet) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return err
	}

	if path := v.GetString(flagConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return err
		}
	}
	return nil
}

// newLogger builds the process logger from the configured level and format.
func newLogger(w io.Writer, level, format string) (log.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	opts := []log.Option{log.LevelOption(lvl)}
	if format == "json" {
		opts = append(opts, log.OutputJSONOption())
	} else {
		opts = append(opts, log.ColorOption(false))
	}
	return log.NewLogger(w, opts...), nil
}
