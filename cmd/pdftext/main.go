// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdftext CLI, which writes the text
// of a PDF to a plain-text file and echoes it to stdout.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/pdftext/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built from --verbose before any command runs.
var logger = zap.NewNop()

// rootCmd extracts with the effective configuration when run without a
// subcommand, so a bare invocation behaves like the original script.
var rootCmd = &cobra.Command{
	Use:   "pdftext",
	Short: "Extract the text of a PDF into a plain-text file",
	Long: `pdftext reads a PDF page by page, writes the text of every page followed
by a page-break marker to a text file, and echoes the text to stdout.

Without flags it reads "../std guide.pdf" and writes "pdf_content.txt",
both relative to the directory holding the pdftext binary. Failures print
"Error: <message>" and exit 0 unless --strict is set.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(viper.GetBool("verbose"))
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		logger = l
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Info("using config file", zap.String("path", f))
		}
		return nil
	},
	RunE: runExtract,
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := types.DefaultExtractionConfig(programDir())
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./pdftext.yaml or ~/.config/pdftext/pdftext.yaml)")
	flags.BoolP("verbose", "v", false, "log per-page progress to stderr")
	flags.StringP("input", "i", defaults.InputPath, "PDF to read")
	flags.StringP("output", "o", defaults.OutputPath, "text file to write (created or truncated)")
	flags.StringP("backend", "b", string(defaults.Backend), "PDF backend: ledongthuc, rscpdf or pdftotext")
	flags.String("separator", defaults.Separator, `text appended after every page; escapes such as \n and \f are interpreted`)
	flags.Bool("trim-trailing-separator", false, "drop the separator after the last page")
	flags.String("normalize", string(defaults.Normalize), "Unicode normalization: none, nfc or nfkc")
	flags.Bool("validate", false, "check PDF structure with pdfcpu before extracting")
	flags.BoolP("quiet", "q", false, "do not echo the extracted text")
	flags.Bool("strict", false, "exit non-zero on failure (2 not found, 3 parse error, 4 I/O error)")
	flags.String("pdftotext-image", defaults.PdftotextImage, "container image for the pdftotext backend")

	for key, flag := range configFlags {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}
}

// configFlags maps viper keys to the persistent flags that set them.
var configFlags = map[string]string{
	"verbose":                 "verbose",
	"input":                   "input",
	"output":                  "output",
	"backend":                 "backend",
	"separator":               "separator",
	"trim_trailing_separator": "trim-trailing-separator",
	"normalize":               "normalize",
	"validate":                "validate",
	"quiet":                   "quiet",
	"strict":                  "strict",
	"pdftotext_image":         "pdftotext-image",
}

// configName is the only file name searched for. Matching by exact name keeps
// viper from picking up the extensionless pdftext binary in the same directory.
const configName = "pdftext.yaml"

func initConfig() {
	viper.SetEnvPrefix("PDFTEXT")
	viper.AutomaticEnv()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if err := readConfig(viper.GetViper(), cfgFile, configDirs()); err != nil {
		fmt.Fprintln(os.Stderr, "warning: reading config:", err)
	}
}

// configDirs lists the directories searched for pdftext.yaml, in order.
func configDirs() []string {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "pdftext"))
	}
	return dirs
}

// readConfig loads cfgFile into v, or the first pdftext.yaml found in dirs
// when cfgFile is empty. Finding no config file is not an error.
func readConfig(v *viper.Viper, cfgFile string, dirs []string) error {
	if cfgFile == "" {
		cfgFile = findConfigFile(dirs)
		if cfgFile == "" {
			return nil
		}
	}
	v.SetConfigFile(cfgFile)
	return v.ReadInConfig()
}

func findConfigFile(dirs []string) string {
	for _, dir := range dirs {
		path := filepath.Join(dir, configName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// programDir returns the directory of the running binary, resolving
// symlinks. It falls back to the working directory.
func programDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

func main() {
	err := rootCmd.Execute()
	_ = logger.Sync()
	if err == nil {
		return
	}

	var exit *exitError
	if errors.As(err, &exit) {
		os.Exit(exit.code)
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
