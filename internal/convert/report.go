// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"

	"github.com/pdiddy/pdftext/pkg/types"
)

// Report prints the extracted text, a blank line, and the confirmation
// naming the output file. With quiet only the confirmation is printed.
func Report(w io.Writer, ext *types.Extraction, quiet bool) {
	if !quiet {
		fmt.Fprintln(w, ext.Text)
	}
	fmt.Fprintf(w, "\n\nSaved to %s\n", ext.OutputPath)
}

// ReportError prints the single failure line.
func ReportError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}
