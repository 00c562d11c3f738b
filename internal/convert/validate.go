// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Validator checks PDF structure with pdfcpu before any text is read.
type Validator struct{}

// NewValidator returns a relaxed validator. pdfcpu's per-user config
// directory is disabled so that validation never writes to $HOME.
func NewValidator() *Validator {
	api.DisableConfigDir()
	return &Validator{}
}

// config returns a fresh configuration per call; pdfcpu records the
// running command on it.
func (v *Validator) config() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// Check validates the PDF readable from rs and returns its page count.
// rs is rewound before each pass and left at an unspecified offset.
func (v *Validator) Check(rs io.ReadSeeker) (n int, err error) {
	defer func() {
		if p := recover(); p != nil {
			n, err = 0, fmt.Errorf("validating PDF: %v", p)
		}
	}()

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	if err := api.Validate(rs, v.config()); err != nil {
		return 0, fmt.Errorf("validating PDF: %w", err)
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	n, err = api.PageCount(rs, v.config())
	if err != nil {
		return 0, fmt.Errorf("counting pages: %w", err)
	}
	return n, nil
}
