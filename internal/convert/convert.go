// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert extracts the text of a PDF page by page through a
// pluggable backend and writes the joined result to a text file.
package convert

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/pdiddy/pdftext/pkg/types"
)

// Document is an opened PDF whose pages can be read in order.
type Document interface {
	// NumPages returns the number of pages in the document.
	NumPages() int

	// PageText returns the plain text of page n, counting from 1.
	PageText(n int) (string, error)
}

// Opener turns the raw bytes of a PDF into a Document. Different backends
// (ledongthuc, rscpdf, pdftotext) implement this interface.
type Opener interface {
	// Name returns the backend name used in configuration and logs.
	Name() string

	// Open parses the PDF readable from r, which holds size bytes.
	Open(r io.ReaderAt, size int64) (Document, error)
}

// Extract reads the PDF at cfg.InputPath through o, joins every page's text
// with cfg.Separator after each page, and writes the result to
// cfg.OutputPath. The output file is written only once every page has been
// read, so a failed run never creates or truncates it.
//
// Failures are returned as *Error classified as not-found, parse-error or
// io-error.
func Extract(o Opener, cfg types.ExtractionConfig, log *zap.Logger) (*types.Extraction, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("input", cfg.InputPath), zap.String("backend", o.Name()))

	f, err := os.Open(cfg.InputPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newError(KindNotFound, cfg.InputPath, err)
		}
		return nil, newError(KindIO, cfg.InputPath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, newError(KindIO, cfg.InputPath, err)
	}
	if info.IsDir() {
		return nil, newError(KindIO, cfg.InputPath, fmt.Errorf("%s is a directory", cfg.InputPath))
	}

	if cfg.Validate {
		n, err := NewValidator().Check(f)
		if err != nil {
			return nil, newError(KindParse, cfg.InputPath, err)
		}
		log.Debug("validated", zap.Int("pages", n))
	}

	start := time.Now()
	pages, err := readPages(o, f, info.Size(), cfg.Normalize, log)
	if err != nil {
		return nil, newError(KindParse, cfg.InputPath, err)
	}

	text := JoinPages(pages, cfg.Separator, cfg.TrimTrailingSeparator)
	if err := os.WriteFile(cfg.OutputPath, []byte(text), 0o644); err != nil {
		return nil, newError(KindIO, cfg.OutputPath, fmt.Errorf("writing %s: %w", cfg.OutputPath, err))
	}

	log.Info("extracted",
		zap.Int("pages", len(pages)),
		zap.Int("bytes", len(text)),
		zap.String("output", cfg.OutputPath),
		zap.Duration("elapsed", time.Since(start)))

	return &types.Extraction{
		InputPath:  cfg.InputPath,
		OutputPath: cfg.OutputPath,
		Backend:    o.Name(),
		Pages:      pages,
		Text:       text,
	}, nil
}

// readPages opens the document and collects the text of every page in
// order. Backends that panic on malformed input are reported as errors.
func readPages(o Opener, r io.ReaderAt, size int64, form types.Normalization, log *zap.Logger) (pages []string, err error) {
	defer func() {
		if p := recover(); p != nil {
			pages = nil
			err = fmt.Errorf("%s: malformed PDF: %v", o.Name(), p)
		}
	}()

	doc, err := o.Open(r, size)
	if err != nil {
		return nil, err
	}

	n := doc.NumPages()
	pages = make([]string, 0, n)
	for i := 1; i <= n; i++ {
		start := time.Now()
		text, err := doc.PageText(i)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		text = Normalize(strings.ToValidUTF8(text, "\uFFFD"), form)
		log.Debug("page extracted",
			zap.Int("page", i),
			zap.Int("chars", utf8.RuneCountInString(text)),
			zap.Duration("elapsed", time.Since(start)))
		pages = append(pages, text)
	}
	return pages, nil
}

// JoinPages appends sep after every page. With trimTrailing the separator
// after the last page is dropped.
func JoinPages(pages []string, sep string, trimTrailing bool) string {
	var b strings.Builder
	for _, p := range pages {
		b.WriteString(p)
		b.WriteString(sep)
	}
	s := b.String()
	if trimTrailing && len(pages) > 0 {
		s = strings.TrimSuffix(s, sep)
	}
	return s
}
