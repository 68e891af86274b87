package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rpgo/networth-projector/internal/calculation"
	"github.com/rpgo/networth-projector/internal/config"
	"github.com/rpgo/networth-projector/internal/logging"
	"github.com/rpgo/networth-projector/internal/output"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	flagConfig    string
	flagLogLevel  string
	flagLogFormat string
)

// app is what every subcommand needs once settings are resolved.
type app struct {
	settings *config.Settings
	logger   zerolog.Logger
	engine   *calculation.Engine
	parser   *config.InputParser
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "networth",
		Short:         "Household net worth projector",
		Long:          "Project a household's net worth year by year and stress it with Monte Carlo market shocks.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Settings file (yaml, json or toml); NETWORTH_* env vars override it")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error); overrides settings")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format (console, json); overrides settings")

	rootCmd.AddCommand(
		newSimulateCmd(),
		newMonteCarloCmd(),
		newServeCmd(),
		newExampleCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func main() {
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loadApp() (*app, error) {
	settings, err := config.LoadSettings(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagLogLevel != "" {
		settings.Log.Level = flagLogLevel
	}
	if flagLogFormat != "" {
		settings.Log.Format = flagLogFormat
	}

	logger, err := logging.New(settings.Log.Level, settings.Log.Format, os.Stderr)
	if err != nil {
		return nil, err
	}

	assumptions, err := settings.Assumptions()
	if err != nil {
		return nil, err
	}

	engine := calculation.NewEngine(assumptions)
	engine.SetLogger(logging.NewAdapter(logger))

	return &app{
		settings: settings,
		logger:   logger,
		engine:   engine,
		parser:   config.NewInputParser(assumptions),
	}, nil
}

// emit writes the report to stdout, or to a timestamped file under outDir when set.
func emit(w io.Writer, logger zerolog.Logger, format, outDir string, report *output.Report) error {
	f, err := output.GetFormatterByName(format)
	if err != nil {
		return err
	}
	if outDir != "" {
		name, err := output.WriteFormatted(f, report, outDir)
		if err != nil {
			return fmt.Errorf("failed to write %s report: %w", f.Name(), err)
		}
		logger.Info().Str("file", name).Str("format", f.Name()).Msg("report written")
		return nil
	}
	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "networth %s\n", version)
		},
	}
}
