// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the configuration and result records shared between
// the extraction stage and the CLI.
package types

import "path/filepath"

// Extraction is the record of a completed extraction run.
type Extraction struct {
	// InputPath is the PDF that was read.
	InputPath string `json:"input" yaml:"input"`

	// OutputPath is the text file that was written.
	OutputPath string `json:"output" yaml:"output"`

	// Backend is the name of the library that produced the page text.
	Backend string `json:"backend" yaml:"backend"`

	// Pages holds each page's text in document order.
	Pages []string `json:"pages" yaml:"pages"`

	// Text is the joined output, exactly as written to OutputPath.
	Text string `json:"text" yaml:"text"`
}

// PageCount returns the number of pages extracted.
func (e Extraction) PageCount() int {
	return len(e.Pages)
}

// DefaultInputPath returns <programDir>/../std guide.pdf.
func DefaultInputPath(programDir string) string {
	return filepath.Join(programDir, "..", DefaultInputName)
}

// DefaultOutputPath returns <programDir>/pdf_content.txt.
func DefaultOutputPath(programDir string) string {
	return filepath.Join(programDir, DefaultOutputName)
}
