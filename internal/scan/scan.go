// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan discovers PDF files in an input directory.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PDFs returns the absolute paths of all regular files in dir with a .pdf
// extension (case-insensitive). The scan is non-recursive and the result is
// ordered lexicographically by filename, so batch output is deterministic.
// An invalid input directory is an error.
func PDFs(dir string) ([]string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving input directory %s: %w", dir, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("reading input directory %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input path %s is not a directory", abs)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("reading input directory %s: %w", abs, err)
	}

	// os.ReadDir returns entries sorted by filename.
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		paths = append(paths, filepath.Join(abs, entry.Name()))
	}
	return paths, nil
}
