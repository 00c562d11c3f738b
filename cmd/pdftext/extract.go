// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/pdftext/internal/convert"
	"github.com/pdiddy/pdftext/pkg/types"
)

// Exit statuses used with --strict.
const (
	exitConfig   = 1
	exitNotFound = 2
	exitParse    = 3
	exitIO       = 4
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Write the text of the input PDF to the output file",
	Long: `Extract opens the input PDF, reads the text of every page through the
selected backend, and writes the pages to the output file, each followed by
the separator. The text and a "Saved to <output>" line are printed to stdout.
The output file is only written when every page was read.`,
	Args: cobra.NoArgs,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

// exitError carries a process exit status out of a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func runExtract(cmd *cobra.Command, args []string) error {
	return extractWith(cmd.OutOrStdout(), viper.GetViper(), convert.NewOpener, logger)
}

// extractWith builds the configuration from v and runs extract. Invalid
// settings follow the same exit policy as extraction failures.
func extractWith(w io.Writer, v *viper.Viper, newOpener func(types.ExtractionConfig) (convert.Opener, error), log *zap.Logger) error {
	cfg, err := configFrom(v)
	if err != nil {
		return fail(w, cfg, exitConfig, err)
	}
	return extract(w, cfg, newOpener, log)
}

// extract runs one extraction and applies the exit policy: failures print
// "Error: <message>" and only become a non-zero exit with cfg.Strict.
func extract(w io.Writer, cfg types.ExtractionConfig, newOpener func(types.ExtractionConfig) (convert.Opener, error), log *zap.Logger) error {
	opener, err := newOpener(cfg)
	if err != nil {
		return fail(w, cfg, exitConfig, err)
	}

	ext, err := convert.Extract(opener, cfg, log)
	if err != nil {
		log.Debug("extraction failed", zap.String("kind", string(convert.KindOf(err))), zap.Error(err))
		return fail(w, cfg, exitCode(err), err)
	}

	convert.Report(w, ext, cfg.Quiet)
	return nil
}

func fail(w io.Writer, cfg types.ExtractionConfig, code int, err error) error {
	convert.ReportError(w, err)
	if cfg.Strict {
		return &exitError{code: code, err: err}
	}
	return nil
}

// exitCode maps an extraction error to its --strict exit status.
func exitCode(err error) int {
	switch convert.KindOf(err) {
	case convert.KindNotFound:
		return exitNotFound
	case convert.KindParse:
		return exitParse
	case convert.KindIO:
		return exitIO
	default:
		return exitConfig
	}
}

// configFrom builds the extraction configuration from v, validating the
// backend and normalization names. The returned configuration carries Strict
// and Quiet even when err is non-nil.
func configFrom(v *viper.Viper) (types.ExtractionConfig, error) {
	cfg := types.ExtractionConfig{
		InputPath:             v.GetString("input"),
		OutputPath:            v.GetString("output"),
		Separator:             unescape(v.GetString("separator")),
		TrimTrailingSeparator: v.GetBool("trim_trailing_separator"),
		Validate:              v.GetBool("validate"),
		Quiet:                 v.GetBool("quiet"),
		Strict:                v.GetBool("strict"),
		PdftotextImage:        v.GetString("pdftotext_image"),
	}

	var err error
	if cfg.Backend, err = convert.ParseBackend(v.GetString("backend")); err != nil {
		return cfg, err
	}
	if cfg.Normalize, err = convert.ParseNormalization(v.GetString("normalize")); err != nil {
		return cfg, err
	}
	if cfg.InputPath == "" || cfg.OutputPath == "" {
		return cfg, fmt.Errorf("input and output paths must not be empty")
	}
	return cfg, nil
}

// unescape interprets Go escape sequences such as \n and \f so separators
// can be passed from a shell. Values that do not parse are used verbatim.
func unescape(s string) string {
	if u, err := strconv.Unquote(`"` + s + `"`); err == nil {
		return u
	}
	return s
}
