// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"strings"

	"github.com/pdiddy/pdftext/internal/container"
	"github.com/pdiddy/pdftext/pkg/types"
)

// ParseBackend validates a backend name. The empty string selects the default.
func ParseBackend(s string) (types.Backend, error) {
	b := types.Backend(strings.ToLower(strings.TrimSpace(s)))
	if b == "" {
		return types.BackendLedongthuc, nil
	}
	for _, known := range types.Backends {
		if b == known {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown backend %q (want one of %v)", s, types.Backends)
}

// detectRuntime is swapped out in tests.
var detectRuntime = container.DetectRuntime

// NewOpener returns the backend named by cfg.Backend. The pdftotext backend
// needs a working container runtime and a local image.
func NewOpener(cfg types.ExtractionConfig) (Opener, error) {
	b, err := ParseBackend(string(cfg.Backend))
	if err != nil {
		return nil, err
	}

	switch b {
	case types.BackendRscPDF:
		return NewRscOpener(), nil
	case types.BackendPdftotext:
		rt, err := detectRuntime()
		if err != nil {
			return nil, err
		}
		return NewPdftotextOpener(rt, cfg.PdftotextImage)
	default:
		return NewLedongthucOpener(), nil
	}
}
