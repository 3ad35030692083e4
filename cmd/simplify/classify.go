package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gabrielchua/descriptive-theory/internal/models"
	"github.com/spf13/cobra"
)

var classifyFile string

var classifyCmd = &cobra.Command{
	Use:   "classify [text]",
	Short: "Check whether a text is a medical report",
	Long:  `Print the guardrail verdict: 1 for medical text, 0 otherwise. Exits with 2 on 0.`,
	RunE:  runClassify,
}

func init() {
	classifyCmd.Flags().StringVarP(&classifyFile, "file", "f", "", "read the text from a file (- for stdin)")
}

func runClassify(cmd *cobra.Command, args []string) error {
	text, err := readText(cmd, classifyFile, args)
	if err != nil {
		return exitError(ExitError, "%v", err)
	}

	check := models.SimplifyRequest{Text: text}
	if err := check.Validate(0); err != nil {
		return exitErrorFor(err)
	}

	b, cleanup, err := newBackend(cmd.Context())
	if err != nil {
		return exitError(ExitError, "setup failed: %v", err)
	}
	defer cleanup()

	result, err := b.guardrail.ValidateInput(cmd.Context(), text)
	if err != nil {
		return exitErrorFor(err)
	}

	w := cmd.OutOrStdout()
	if result.IsMedical {
		_, _ = fmt.Fprintf(w, "%d %s\n", int(result.Verdict), color.New(color.FgGreen).Sprint(result.Verdict.String()))
		return nil
	}

	_, _ = fmt.Fprintf(w, "%d %s\n", int(result.Verdict), color.New(color.FgRed).Sprint(result.Verdict.String()))
	return &exitCodeError{code: ExitNotMedical}
}
