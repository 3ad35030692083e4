package main

import (
	"context"
	"os"

	"github.com/fatih/color"
	"github.com/gabrielchua/descriptive-theory/internal/pipeline"
	"github.com/gabrielchua/descriptive-theory/internal/setup"
	"github.com/gabrielchua/descriptive-theory/internal/setup/logger"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Global flag values.
var (
	verbose bool
	noColor bool
)

// backend is what the subcommands drive.
type backend struct {
	runner    pipeline.Runner
	guardrail pipeline.Guardrail
	model     string
}

// newBackend wires the real pipeline; tests replace it.
var newBackend = func(ctx context.Context) (*backend, func(), error) {
	cfg := setup.LoadConfig()
	processLogger := log.Logger

	deps, err := setup.Wire(ctx, cfg, &processLogger)
	if err != nil {
		return nil, nil, err
	}

	return &backend{
		runner:    deps.Pipeline,
		guardrail: deps.Guardrails,
		model:     deps.Model,
	}, deps.Close, nil
}

var rootCmd = &cobra.Command{
	Use:   "simplify",
	Short: "Rewrite medical reports in plain language",
	Long: `simplify checks that a text is a medical report and rewrites it in plain
English or Chinese for patients. It uses the same pipeline as the HTTP API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		_ = godotenv.Load()
		cfg := setup.LoadConfig()

		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = logger.New(logLevel(cfg.LogLevel), cfg.LogFormat)

		if noColor {
			color.NoColor = true
		}
	},
}

// logLevel keeps the CLI quiet unless LOG_LEVEL is set or --verbose is given.
func logLevel(configured string) string {
	switch {
	case verbose:
		return zerolog.DebugLevel.String()
	case os.Getenv("LOG_LEVEL") == "":
		return zerolog.WarnLevel.String()
	default:
		return configured
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(classifyCmd)
}
