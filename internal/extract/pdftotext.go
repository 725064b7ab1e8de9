// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

const binPdftotext = "pdftotext"

// runner abstracts command execution for testing.
type runner interface {
	LookPath(file string) (string, error)
	Run(name string, args []string, stdout, stderr *bytes.Buffer) error
}

// osRunner is the production runner backed by os/exec.
type osRunner struct{}

func (osRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osRunner) Run(name string, args []string, stdout, stderr *bytes.Buffer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// PdftotextSource extracts first-page text by shelling out to poppler's
// pdftotext. Useful for PDFs the native parser cannot handle (scanned
// layouts aside, poppler copes with far more encodings).
type PdftotextSource struct {
	run runner
}

// NewPdftotextSource creates a pdftotext-backed TitleSource.
func NewPdftotextSource() PdftotextSource {
	return PdftotextSource{run: osRunner{}}
}

// Title implements TitleSource. Only the first page is rendered
// (-f 1 -l 1); later pages never influence the result.
func (s PdftotextSource) Title(path string) (string, error) {
	if _, err := s.run.LookPath(binPdftotext); err != nil {
		return "", fmt.Errorf("%w: pdftotext not found on PATH: %v", ErrUnreadable, err)
	}

	var stdout, stderr bytes.Buffer
	args := []string{"-f", "1", "-l", "1", "-layout", path, "-"}
	if err := s.run.Run(binPdftotext, args, &stdout, &stderr); err != nil {
		if strings.Contains(stderr.String(), "Wrong page range") {
			return "", fmt.Errorf("%w: %s", ErrNoPages, path)
		}
		return "", fmt.Errorf("%w: %s: pdftotext: %v: %s", ErrUnreadable, path, err, strings.TrimSpace(stderr.String()))
	}

	return TitleFromText(stdout.String())
}
