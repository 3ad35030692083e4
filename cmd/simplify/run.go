package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/gabrielchua/descriptive-theory/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	runLanguage string
	runStream   bool
	runFile     string
)

var runCmd = &cobra.Command{
	Use:   "run [text]",
	Short: "Simplify a medical report",
	Long: `Simplify a medical report given as arguments, with --file, or on stdin.
Exits with 2 when the text is not medical and 3 when the completion service is unavailable.`,
	RunE: runSimplify,
}

func init() {
	runCmd.Flags().StringVarP(&runLanguage, "language", "l", string(models.LanguageEnglish), "reply language: english or chinese")
	runCmd.Flags().BoolVarP(&runStream, "stream", "s", false, "print the rewrite as it is generated")
	runCmd.Flags().StringVarP(&runFile, "file", "f", "", "read the report from a file (- for stdin)")
}

func runSimplify(cmd *cobra.Command, args []string) error {
	text, err := readText(cmd, runFile, args)
	if err != nil {
		return exitError(ExitError, "%v", err)
	}

	language, err := models.ParseLanguage(runLanguage)
	if err != nil {
		return exitErrorFor(err)
	}

	b, cleanup, err := newBackend(cmd.Context())
	if err != nil {
		return exitError(ExitError, "setup failed: %v", err)
	}
	defer cleanup()

	log.Debug().Str("model", b.model).Bool("stream", runStream).Msg("Simplifying report")

	req := models.SimplifyRequest{
		Text:     text,
		Language: language,
		Channel:  models.ChannelCLI,
	}

	w := cmd.OutOrStdout()
	dim := color.New(color.Faint)

	if !runStream {
		result, err := b.runner.Run(cmd.Context(), req)
		if err != nil {
			return exitErrorFor(err)
		}
		_, _ = fmt.Fprintln(w, result.SimplifiedText)
		_, _ = dim.Fprintf(cmd.ErrOrStderr(), "request %s, %s\n", result.RequestID, result.Duration.Round(time.Millisecond))
		return nil
	}

	chunks, err := b.runner.Stream(cmd.Context(), req)
	if err != nil {
		return exitErrorFor(err)
	}

	for chunk, err := range chunks {
		if err != nil {
			_, _ = fmt.Fprintln(w)
			return exitErrorFor(err)
		}
		_, _ = fmt.Fprint(w, chunk)
	}
	_, _ = fmt.Fprintln(w)

	return nil
}
