// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/pdftext/internal/container"
	"github.com/pdiddy/pdftext/pkg/types"
)

// pdftotextArgs make poppler's pdftotext read the PDF from stdin and write
// UTF-8 text to stdout. The image entrypoint is expected to be pdftotext.
var pdftotextArgs = []string{"-enc", "UTF-8", "-", "-"}

// pageFeed is the form feed pdftotext writes after every page.
const pageFeed = "\f"

// PdftotextOpener converts PDFs by piping them through a pdftotext
// container image. It depends on a container.Runtime (docker or podman)
// injected at construction time.
type PdftotextOpener struct {
	runtime container.Runtime
	image   string
}

// NewPdftotextOpener creates a backend that runs image through rt. It
// verifies that the image exists locally before returning.
func NewPdftotextOpener(rt container.Runtime, image string) (*PdftotextOpener, error) {
	if image == "" {
		image = types.DefaultPdftotextImage
	}
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("pdftotext image not available in %s: %w", rt.Name(), err)
	}
	return &PdftotextOpener{runtime: rt, image: image}, nil
}

func (o *PdftotextOpener) Name() string { return string(types.BackendPdftotext) }

// Open runs the whole document through the container once; pages are then
// served from the split output.
func (o *PdftotextOpener) Open(r io.ReaderAt, size int64) (Document, error) {
	var out bytes.Buffer
	if err := o.runtime.Run(o.image, pdftotextArgs, io.NewSectionReader(r, 0, size), &out); err != nil {
		return nil, fmt.Errorf("converting with pdftotext: %w", err)
	}
	return splitPages(out.String()), nil
}

// pagedText is a Document backed by text already split into pages.
type pagedText []string

func (p pagedText) NumPages() int { return len(p) }

func (p pagedText) PageText(n int) (string, error) {
	if n < 1 || n > len(p) {
		return "", fmt.Errorf("page %d out of range (document has %d)", n, len(p))
	}
	return p[n-1], nil
}

// splitPages splits pdftotext output on form feeds. The feed after the last
// page leaves an empty trailing element, which is dropped.
func splitPages(out string) pagedText {
	pages := strings.Split(out, pageFeed)
	if pages[len(pages)-1] == "" {
		pages = pages[:len(pages)-1]
	}
	return pagedText(pages)
}
