// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract locates the human-visible title on a PDF's first page.
package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sqodarbaskoro/Name2Pdf/pkg/types"
)

// Sentinel errors for the three extraction failure modes. Backends wrap
// underlying causes with %w so the batch layer can classify with errors.Is.
var (
	ErrUnreadable = errors.New("unreadable PDF")
	ErrNoPages    = errors.New("document has no pages")
	ErrNoTitle    = errors.New("no title line found")
)

// TitleSource extracts the visible title from the first page of a PDF.
// Different backends (native parser, pdftotext) implement this interface.
type TitleSource interface {
	// Title returns the title candidate for the PDF at path, or one of
	// ErrUnreadable, ErrNoPages, ErrNoTitle (possibly wrapped).
	Title(path string) (string, error)
}

// New returns the TitleSource for the configured backend.
func New(backend types.ExtractBackend) (TitleSource, error) {
	switch backend {
	case types.BackendNative, "":
		return NativeSource{}, nil
	case types.BackendPdftotext:
		return NewPdftotextSource(), nil
	default:
		return nil, fmt.Errorf("unknown extraction backend %q", backend)
	}
}

// TitleFromText splits first-page text into lines and scans them for a
// title. Used by backends whose output is newline-separated.
func TitleFromText(text string) (string, error) {
	return TitleFromLines(strings.Split(text, "\n"))
}

// TitleFromLines scans first-page text lines for a title, top to bottom.
// The first line containing the substring "title" (case-insensitive) marks
// the spot, and the next non-empty line is the title candidate. Returns
// ErrNoTitle when no marker line or no following line exists.
func TitleFromLines(lines []string) (string, error) {
	for i, line := range lines {
		if !strings.Contains(strings.ToLower(line), "title") {
			continue
		}
		for _, next := range lines[i+1:] {
			if candidate := strings.TrimSpace(next); candidate != "" {
				return candidate, nil
			}
		}
		return "", fmt.Errorf("%w: nothing follows the title line", ErrNoTitle)
	}
	return "", ErrNoTitle
}
