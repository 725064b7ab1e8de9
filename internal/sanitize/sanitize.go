// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sanitize turns extracted title text into filesystem-safe names.
package sanitize

import (
	"strings"

	"github.com/sqodarbaskoro/Name2Pdf/pkg/types"
)

// Fallback is used when sanitization leaves nothing of the title.
const Fallback = "Untitled"

// pdfExt is appended to every generated filename.
const pdfExt = ".pdf"

// illegal is the character set removed from titles. Covers Windows and
// Unix; control characters are removed as well.
const illegal = `/\:*?"<>|`

// BaseName returns a filesystem-safe base name (no extension) for title.
// Illegal and control characters are removed, leading/trailing spaces and
// dots are trimmed, and the result is truncated to maxLen runes. An empty
// result becomes Fallback. Pure: same input, same output.
func BaseName(title string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = types.DefaultMaxNameLength
	}

	var b strings.Builder
	for _, r := range title {
		if r < 0x20 || r == 0x7f || strings.ContainsRune(illegal, r) {
			continue
		}
		b.WriteRune(r)
	}

	s := strings.Trim(b.String(), " .")

	if runes := []rune(s); len(runes) > maxLen {
		s = strings.TrimRight(string(runes[:maxLen]), " .")
	}

	if s == "" {
		return Fallback
	}
	return s
}

// FileName returns the full candidate filename for title: the sanitized
// base plus the ".pdf" extension. The base is truncated so the whole name
// fits within maxLen (default 255).
func FileName(title string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = types.DefaultMaxNameLength
	}
	return BaseName(title, maxLen-len(pdfExt)) + pdfExt
}
