// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// NativeSource parses the PDF in-process and reads plain text from page 1
// only. No external tools required.
type NativeSource struct{}

// Title implements TitleSource.
func (NativeSource) Title(path string) (title string, err error) {
	// The parser panics on some malformed files; surface those as
	// ErrUnreadable like any other parse failure.
	defer func() {
		if r := recover(); r != nil {
			title = ""
			err = fmt.Errorf("%w: %s: parser panic: %v", ErrUnreadable, path, r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	defer f.Close()

	if reader.NumPage() == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoPages, path)
	}

	page := reader.Page(1)
	if page.V.IsNull() {
		return "", fmt.Errorf("%w: %s", ErrNoPages, path)
	}

	rows, err := page.GetTextByRow()
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}

	// Each visual row becomes one line for the title scan.
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		var b strings.Builder
		for _, word := range row.Content {
			b.WriteString(word.S)
		}
		lines = append(lines, b.String())
	}

	return TitleFromLines(lines)
}
