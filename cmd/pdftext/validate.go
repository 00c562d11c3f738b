// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdftext/internal/convert"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check the structure of a PDF with pdfcpu",
	Long: `Validate runs pdfcpu's relaxed validation over a PDF and prints its page
count. Without an argument it checks the configured input file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := viper.GetString("input")
		if len(args) == 1 {
			path = args[0]
		}
		return validate(cmd.OutOrStdout(), path, viper.GetBool("strict"))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validate(w io.Writer, path string, strict bool) error {
	n, err := checkFile(path)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		if strict {
			return &exitError{code: validateExitCode(err), err: err}
		}
		return nil
	}
	fmt.Fprintf(w, "valid: %s (%d pages)\n", path, n)
	return nil
}

// validateExitCode classifies a validation failure with the exit statuses
// extract uses: a missing file is not-found, other file errors are I/O.
func validateExitCode(err error) int {
	var pathErr *fs.PathError
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return exitNotFound
	case errors.As(err, &pathErr):
		return exitIO
	default:
		return exitParse
	}
}

func checkFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return convert.NewValidator().Check(f)
}
