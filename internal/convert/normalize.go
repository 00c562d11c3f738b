// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/pdftext/pkg/types"
)

// ParseNormalization validates a normalization name. The empty string means none.
func ParseNormalization(s string) (types.Normalization, error) {
	switch n := types.Normalization(strings.ToLower(strings.TrimSpace(s))); n {
	case "", types.NormalizeNone:
		return types.NormalizeNone, nil
	case types.NormalizeNFC, types.NormalizeNFKC:
		return n, nil
	default:
		return "", fmt.Errorf("unknown normalization %q (want none, nfc or nfkc)", s)
	}
}

// Normalize applies the given Unicode normalization form to s.
func Normalize(s string, form types.Normalization) string {
	switch form {
	case types.NormalizeNFC:
		return norm.NFC.String(s)
	case types.NormalizeNFKC:
		return norm.NFKC.String(s)
	default:
		return s
	}
}
