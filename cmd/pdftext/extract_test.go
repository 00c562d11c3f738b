// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/pdftext/internal/convert"
	"github.com/pdiddy/pdftext/internal/pdftest"
	"github.com/pdiddy/pdftext/pkg/types"
)

// testConfig lays out a program directory under a temp root, mirroring
// backend/ next to "std guide.pdf", and returns the default configuration.
func testConfig(t *testing.T) types.ExtractionConfig {
	t.Helper()
	progDir := filepath.Join(t.TempDir(), "backend")
	require.NoError(t, os.Mkdir(progDir, 0o755))
	return types.DefaultExtractionConfig(progDir)
}

func TestExtractCommand_Success(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.InputPath, pdftest.Build("Hello", "World"), 0o644))

	var out bytes.Buffer
	err := extract(&out, cfg, convert.NewOpener, zap.NewNop())
	require.NoError(t, err)

	written, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, string(written)+"\n\n\nSaved to "+cfg.OutputPath+"\n", out.String())
	assert.Contains(t, out.String(), "Hello")
	assert.Contains(t, out.String(), "--- PAGE BREAK ---")
}

func TestExtractCommand_Quiet(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.InputPath, pdftest.Build("Hello"), 0o644))
	cfg.Quiet = true

	var out bytes.Buffer
	require.NoError(t, extract(&out, cfg, convert.NewOpener, zap.NewNop()))
	assert.Equal(t, "\n\nSaved to "+cfg.OutputPath+"\n", out.String())
}

func TestExtractCommand_Failures(t *testing.T) {
	brokenOpener := func(types.ExtractionConfig) (convert.Opener, error) {
		return nil, errors.New("no container runtime available")
	}

	tests := []struct {
		name      string
		input     []byte // nil leaves the input missing
		newOpener func(types.ExtractionConfig) (convert.Opener, error)
		strict    bool
		wantLine  string
		wantCode  int
	}{
		{
			name:      "missing input exits zero",
			newOpener: convert.NewOpener,
			wantLine:  "Error: open ",
		},
		{
			name:      "missing input strict",
			newOpener: convert.NewOpener,
			strict:    true,
			wantLine:  "Error: open ",
			wantCode:  exitNotFound,
		},
		{
			name:      "not a PDF exits zero",
			input:     []byte("just some text"),
			newOpener: convert.NewOpener,
			wantLine:  "Error: ",
		},
		{
			name:      "not a PDF strict",
			input:     []byte("just some text"),
			newOpener: convert.NewOpener,
			strict:    true,
			wantLine:  "Error: ",
			wantCode:  exitParse,
		},
		{
			name:      "backend unavailable strict",
			input:     pdftest.Build("x"),
			newOpener: brokenOpener,
			strict:    true,
			wantLine:  "Error: no container runtime available",
			wantCode:  exitConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Strict = tt.strict
			if tt.input != nil {
				require.NoError(t, os.WriteFile(cfg.InputPath, tt.input, 0o644))
			}

			var out bytes.Buffer
			err := extract(&out, cfg, tt.newOpener, zap.NewNop())

			assert.True(t, strings.HasPrefix(out.String(), tt.wantLine), "got %q", out.String())
			assert.Equal(t, 1, strings.Count(out.String(), "\n"), "exactly one line is printed")

			if tt.wantCode == 0 {
				assert.NoError(t, err)
			} else {
				var exit *exitError
				require.ErrorAs(t, err, &exit)
				assert.Equal(t, tt.wantCode, exit.code)
			}

			_, statErr := os.Stat(cfg.OutputPath)
			assert.ErrorIs(t, statErr, fs.ErrNotExist)
		})
	}
}

func TestExtractWith_InvalidConfig(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		strict   bool
		wantLine string
	}{
		{name: "unknown backend", key: "backend", value: "pypdf2", wantLine: "Error: unknown backend"},
		{name: "unknown backend strict", key: "backend", value: "pypdf2", strict: true, wantLine: "Error: unknown backend"},
		{name: "unknown normalization", key: "normalize", value: "nfd", wantLine: "Error: unknown normalization"},
		{name: "empty output strict", key: "output", value: "", strict: true, wantLine: "Error: input and output paths must not be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			require.NoError(t, os.WriteFile(cfg.InputPath, pdftest.Build("x"), 0o644))

			v := viper.New()
			v.Set("input", cfg.InputPath)
			v.Set("output", cfg.OutputPath)
			v.Set("strict", tt.strict)
			v.Set(tt.key, tt.value)

			opened := false
			newOpener := func(c types.ExtractionConfig) (convert.Opener, error) {
				opened = true
				return convert.NewOpener(c)
			}

			var out bytes.Buffer
			err := extractWith(&out, v, newOpener, zap.NewNop())

			assert.True(t, strings.HasPrefix(out.String(), tt.wantLine), "got %q", out.String())
			assert.Equal(t, 1, strings.Count(out.String(), "\n"), "exactly one line is printed")
			assert.False(t, opened, "no backend is built for an invalid configuration")

			if tt.strict {
				var exit *exitError
				require.ErrorAs(t, err, &exit)
				assert.Equal(t, exitConfig, exit.code)
			} else {
				assert.NoError(t, err)
			}

			_, statErr := os.Stat(cfg.OutputPath)
			assert.ErrorIs(t, statErr, fs.ErrNotExist)
		})
	}
}

func TestExtractWith_Success(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.InputPath, pdftest.Build("Hello"), 0o644))

	v := viper.New()
	v.Set("input", cfg.InputPath)
	v.Set("output", cfg.OutputPath)
	v.Set("separator", `\f`)
	v.Set("quiet", true)

	var out bytes.Buffer
	require.NoError(t, extractWith(&out, v, convert.NewOpener, zap.NewNop()))
	assert.Equal(t, "\n\nSaved to "+cfg.OutputPath+"\n", out.String())

	written, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(written), "\f"))
}

func TestReadConfig(t *testing.T) {
	binary := []byte("\x7fELF\x02\x01\x01\x00\x00\x00\x1b[0m")

	t.Run("binary next to config name is ignored", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "pdftext"), binary, 0o755))

		v := viper.New()
		require.NoError(t, readConfig(v, "", []string{dir}))
		assert.Empty(t, v.ConfigFileUsed())
	})

	t.Run("pdftext.yaml beside the binary is read", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "pdftext"), binary, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "pdftext.yaml"), []byte("backend: rscpdf\nstrict: true\n"), 0o644))

		v := viper.New()
		require.NoError(t, readConfig(v, "", []string{dir}))
		assert.Equal(t, filepath.Join(dir, "pdftext.yaml"), v.ConfigFileUsed())
		assert.Equal(t, "rscpdf", v.GetString("backend"))
		assert.True(t, v.GetBool("strict"))
	})

	t.Run("first directory wins", func(t *testing.T) {
		first, second := t.TempDir(), t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(first, "pdftext.yaml"), []byte("backend: pdftotext\n"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(second, "pdftext.yaml"), []byte("backend: rscpdf\n"), 0o644))

		v := viper.New()
		require.NoError(t, readConfig(v, "", []string{filepath.Join(first, "missing"), first, second}))
		assert.Equal(t, "pdftotext", v.GetString("backend"))
	})

	t.Run("explicit file that does not parse", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		require.NoError(t, os.WriteFile(path, []byte("backend: [unclosed\n"), 0o644))

		assert.Error(t, readConfig(viper.New(), path, nil))
	})
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitNotFound, exitCode(convert.ErrNotFound))
	assert.Equal(t, exitParse, exitCode(convert.ErrParse))
	assert.Equal(t, exitIO, exitCode(convert.ErrIO))
	assert.Equal(t, exitConfig, exitCode(errors.New("other")))
}

func TestConfigFrom(t *testing.T) {
	base := func() *viper.Viper {
		v := viper.New()
		v.Set("input", "/data/std guide.pdf")
		v.Set("output", "/data/backend/pdf_content.txt")
		v.Set("separator", types.DefaultSeparator)
		return v
	}

	t.Run("defaults", func(t *testing.T) {
		cfg, err := configFrom(base())
		require.NoError(t, err)
		assert.Equal(t, types.BackendLedongthuc, cfg.Backend)
		assert.Equal(t, types.NormalizeNone, cfg.Normalize)
		assert.Equal(t, types.DefaultSeparator, cfg.Separator)
		assert.False(t, cfg.Strict)
	})

	t.Run("escaped separator", func(t *testing.T) {
		v := base()
		v.Set("separator", `\f`)
		v.Set("backend", "RSCPDF")
		v.Set("normalize", "nfkc")
		v.Set("strict", true)
		cfg, err := configFrom(v)
		require.NoError(t, err)
		assert.Equal(t, "\f", cfg.Separator)
		assert.Equal(t, types.BackendRscPDF, cfg.Backend)
		assert.Equal(t, types.NormalizeNFKC, cfg.Normalize)
		assert.True(t, cfg.Strict)
	})

	t.Run("unknown backend", func(t *testing.T) {
		v := base()
		v.Set("backend", "pypdf2")
		v.Set("strict", true)
		cfg, err := configFrom(v)
		assert.ErrorContains(t, err, "unknown backend")
		assert.True(t, cfg.Strict, "exit policy survives a bad setting")
	})

	t.Run("unknown normalization", func(t *testing.T) {
		v := base()
		v.Set("normalize", "nfd")
		_, err := configFrom(v)
		assert.ErrorContains(t, err, "unknown normalization")
	})

	t.Run("empty output", func(t *testing.T) {
		v := base()
		v.Set("output", "")
		_, err := configFrom(v)
		assert.ErrorContains(t, err, "must not be empty")
	})
}

func TestUnescape(t *testing.T) {
	tests := []struct{ in, want string }{
		{`\n\n--- PAGE BREAK ---\n\n`, types.DefaultSeparator},
		{`\f`, "\f"},
		{"already\nreal", "already\nreal"},
		{`say "hi"`, `say "hi"`},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, unescape(tt.in), tt.in)
	}
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	good := pdftest.WriteFile(t, dir, "good.pdf", "a", "b")
	bad := filepath.Join(dir, "bad.pdf")
	require.NoError(t, os.WriteFile(bad, []byte("garbage"), 0o644))

	var out bytes.Buffer
	require.NoError(t, validate(&out, good, true))
	assert.Equal(t, "valid: "+good+" (2 pages)\n", out.String())

	out.Reset()
	require.NoError(t, validate(&out, bad, false))
	assert.True(t, strings.HasPrefix(out.String(), "Error: "))

	out.Reset()
	err := validate(&out, bad, true)
	var exit *exitError
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, exitParse, exit.code)

	out.Reset()
	missing := filepath.Join(dir, "missing.pdf")
	require.NoError(t, validate(&out, missing, false))
	assert.True(t, strings.HasPrefix(out.String(), "Error: open "))

	out.Reset()
	err = validate(&out, missing, true)
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, exitNotFound, exit.code)
}

func TestValidateExitCode(t *testing.T) {
	assert.Equal(t, exitNotFound, validateExitCode(&fs.PathError{Op: "open", Path: "x", Err: fs.ErrNotExist}))
	assert.Equal(t, exitIO, validateExitCode(&fs.PathError{Op: "open", Path: "x", Err: fs.ErrPermission}))
	assert.Equal(t, exitParse, validateExitCode(errors.New("validating PDF: corrupt xref")))
}

func TestNewLogger(t *testing.T) {
	quiet, err := newLogger(false)
	require.NoError(t, err)
	assert.False(t, quiet.Core().Enabled(zap.InfoLevel))
	assert.True(t, quiet.Core().Enabled(zap.WarnLevel))

	verbose, err := newLogger(true)
	require.NoError(t, err)
	assert.True(t, verbose.Core().Enabled(zap.DebugLevel))
}
