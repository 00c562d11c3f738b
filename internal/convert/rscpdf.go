// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"
	"math"
	"strings"

	"rsc.io/pdf"

	"github.com/pdiddy/pdftext/pkg/types"
)

const (
	// lineTolerance is the fraction of the font size the baseline may move
	// before a new line starts.
	lineTolerance = 0.5

	// wordGap is the fraction of the font size a horizontal gap must exceed
	// before a space is inserted.
	wordGap = 0.2
)

// RscOpener reads PDFs with rsc.io/pdf, which returns positioned glyphs
// rather than text runs. Lines and words are rebuilt from glyph positions.
type RscOpener struct{}

// NewRscOpener returns the rscpdf backend.
func NewRscOpener() *RscOpener {
	return &RscOpener{}
}

func (o *RscOpener) Name() string { return string(types.BackendRscPDF) }

func (o *RscOpener) Open(r io.ReaderAt, size int64) (Document, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("reading PDF: %w", err)
	}
	return &rscDocument{reader: reader}, nil
}

type rscDocument struct {
	reader *pdf.Reader
}

func (d *rscDocument) NumPages() int { return d.reader.NumPage() }

func (d *rscDocument) PageText(n int) (string, error) {
	p := d.reader.Page(n)
	if p.V.IsNull() {
		return "", nil
	}
	return joinGlyphs(p.Content().Text), nil
}

// joinGlyphs concatenates glyphs in content-stream order, starting a new
// line when the baseline moves and inserting a space across wide gaps.
func joinGlyphs(glyphs []pdf.Text) string {
	var b strings.Builder
	var prev pdf.Text
	lastSpace := true
	for i, g := range glyphs {
		if i > 0 {
			size := math.Max(prev.FontSize, g.FontSize)
			switch {
			case math.Abs(g.Y-prev.Y) > size*lineTolerance:
				b.WriteByte('\n')
				lastSpace = true
			case !lastSpace && g.S != " " && g.X-(prev.X+prev.W) > g.FontSize*wordGap:
				b.WriteByte(' ')
			}
		}
		b.WriteString(g.S)
		if g.S != "" {
			lastSpace = strings.HasSuffix(g.S, " ")
		}
		prev = g
	}
	return b.String()
}
