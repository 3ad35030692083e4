package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// readText returns the positional arguments joined, or the contents of file ("-" is stdin).
func readText(cmd *cobra.Command, file string, args []string) (string, error) {
	if file == "" && len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if file == "" || file == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", file, err)
	}
	return string(data), nil
}
