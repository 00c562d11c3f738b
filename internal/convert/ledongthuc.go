// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/pdftext/pkg/types"
)

// LedongthucOpener reads PDFs with github.com/ledongthuc/pdf. Only the
// embedded text layer is extracted; scanned pages come back empty.
type LedongthucOpener struct{}

// NewLedongthucOpener returns the default backend.
func NewLedongthucOpener() *LedongthucOpener {
	return &LedongthucOpener{}
}

func (o *LedongthucOpener) Name() string { return string(types.BackendLedongthuc) }

func (o *LedongthucOpener) Open(r io.ReaderAt, size int64) (Document, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("reading PDF: %w", err)
	}
	return &ledongthucDocument{reader: reader}, nil
}

type ledongthucDocument struct {
	reader *pdf.Reader
}

func (d *ledongthucDocument) NumPages() int { return d.reader.NumPage() }

func (d *ledongthucDocument) PageText(n int) (string, error) {
	p := d.reader.Page(n)
	if p.V.IsNull() {
		return "", nil
	}

	// Font resource names are scoped to the page, so /F1 on one page need
	// not be /F1 on the next.
	fonts := make(map[string]*pdf.Font)
	for _, name := range p.Fonts() {
		f := p.Font(name)
		fonts[name] = &f
	}

	text, err := p.GetPlainText(fonts)
	if err != nil {
		return "", fmt.Errorf("extracting text: %w", err)
	}
	return text, nil
}
