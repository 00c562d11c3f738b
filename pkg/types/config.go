// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Backend identifies the PDF library used to read page text.
type Backend string

const (
	BackendLedongthuc Backend = "ledongthuc"
	BackendRscPDF     Backend = "rscpdf"
	BackendPdftotext  Backend = "pdftotext"
)

// Backends lists every supported backend in the order they are documented.
var Backends = []Backend{BackendLedongthuc, BackendRscPDF, BackendPdftotext}

// Normalization selects a Unicode normalization form applied to page text.
type Normalization string

const (
	NormalizeNone Normalization = "none"
	NormalizeNFC  Normalization = "nfc"
	NormalizeNFKC Normalization = "nfkc"
)

const (
	// DefaultInputName is the document read when no input is configured,
	// resolved one directory above the program directory.
	DefaultInputName = "std guide.pdf"

	// DefaultOutputName is the text file written into the program directory.
	DefaultOutputName = "pdf_content.txt"

	// DefaultSeparator follows every page's text in the output.
	DefaultSeparator = "\n\n--- PAGE BREAK ---\n\n"

	// DefaultPdftotextImage is the container image used by the pdftotext backend.
	DefaultPdftotextImage = "pdftotext:latest"
)

// ExtractionConfig holds settings for a single extraction run.
type ExtractionConfig struct {
	// InputPath is the PDF to read.
	InputPath string `json:"input" yaml:"input"`

	// OutputPath is the text file to write. It is created or truncated.
	OutputPath string `json:"output" yaml:"output"`

	// Backend selects the PDF library (default ledongthuc).
	Backend Backend `json:"backend" yaml:"backend"`

	// Separator is appended after each page's text.
	Separator string `json:"separator" yaml:"separator"`

	// TrimTrailingSeparator drops the separator after the last page.
	TrimTrailingSeparator bool `json:"trim_trailing_separator" yaml:"trim_trailing_separator"`

	// Normalize applies a Unicode normalization form to each page (default none).
	Normalize Normalization `json:"normalize" yaml:"normalize"`

	// Validate runs a structural check of the PDF before extraction.
	Validate bool `json:"validate" yaml:"validate"`

	// Quiet suppresses echoing the extracted text to stdout.
	Quiet bool `json:"quiet" yaml:"quiet"`

	// Strict makes failures exit with a non-zero status.
	Strict bool `json:"strict" yaml:"strict"`

	// PdftotextImage is the container image for the pdftotext backend.
	PdftotextImage string `json:"pdftotext_image" yaml:"pdftotext_image"`
}

// DefaultExtractionConfig returns the configuration that reproduces the
// fixed-path behavior, with paths resolved against programDir.
func DefaultExtractionConfig(programDir string) ExtractionConfig {
	return ExtractionConfig{
		InputPath:      DefaultInputPath(programDir),
		OutputPath:     DefaultOutputPath(programDir),
		Backend:        BackendLedongthuc,
		Separator:      DefaultSeparator,
		Normalize:      NormalizeNone,
		PdftotextImage: DefaultPdftotextImage,
	}
}
