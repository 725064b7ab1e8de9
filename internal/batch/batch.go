// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch runs the rename pipeline over a directory of PDF files:
// extract title, sanitize, resolve collisions, rename or copy.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sqodarbaskoro/Name2Pdf/internal/extract"
	"github.com/sqodarbaskoro/Name2Pdf/internal/resolve"
	"github.com/sqodarbaskoro/Name2Pdf/internal/sanitize"
	"github.com/sqodarbaskoro/Name2Pdf/internal/scan"
	"github.com/sqodarbaskoro/Name2Pdf/pkg/types"
)

// Run processes every PDF in cfg.InputDir in scan order and returns the
// full RunReport. Per-file failures are recorded and never abort the run;
// only an invalid input directory or an uncreatable output directory is
// fatal, reported before any file is touched.
//
// Cancellation is cooperative and checked between files: on a cancelled
// ctx the report holds the outcomes accumulated so far and the context
// error is returned alongside it.
func Run(ctx context.Context, src extract.TitleSource, cfg types.RenameConfig, obs Observer, w io.Writer) (types.RunReport, error) {
	files, err := scan.PDFs(cfg.InputDir)
	if err != nil {
		return types.RunReport{}, err
	}

	inDir, err := filepath.Abs(cfg.InputDir)
	if err != nil {
		return types.RunReport{}, fmt.Errorf("resolving input directory: %w", err)
	}

	outDir := cfg.OutputDir
	if outDir == "" {
		outDir = inDir
	}
	if outDir, err = filepath.Abs(outDir); err != nil {
		return types.RunReport{}, fmt.Errorf("resolving output directory: %w", err)
	}
	inPlace := outDir == inDir

	if !inPlace {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return types.RunReport{}, fmt.Errorf("creating output directory %s: %w", outDir, err)
		}
	}

	report := types.RunReport{
		InputDir:  inDir,
		OutputDir: outDir,
		InPlace:   inPlace,
		StartedAt: time.Now(),
	}

	claims := resolve.NewClaims()
	var runErr error

	for i, path := range files {
		if err := ctx.Err(); err != nil {
			fmt.Fprintf(w, "stopped: %d of %d file(s) processed\n", i, len(files))
			runErr = err
			break
		}

		outcome := processFile(src, path, outDir, inPlace, cfg.MaxNameLength, claims)
		report.Outcomes = append(report.Outcomes, outcome)
		printOutcome(w, outcome)
		if obs != nil {
			obs.OnFile(i+1, len(files), outcome)
		}
	}

	report.FinishedAt = time.Now()
	report.Finalize()

	s := report.Summary
	fmt.Fprintf(w, "\nBatch summary: %d renamed, %d copied, %d skipped, %d failed (total: %d)\n",
		s.Renamed, s.Copied, s.Skipped, s.Failed, s.Total())

	return report, runErr
}

// processFile runs the pipeline for a single source file. Every failure is
// captured in the returned Outcome.
func processFile(src extract.TitleSource, path, outDir string, inPlace bool, maxLen int, claims *resolve.Claims) types.Outcome {
	outcome := types.Outcome{Source: path}

	title, err := src.Title(path)
	if err != nil {
		return failed(outcome, err)
	}
	outcome.Title = title

	name := sanitize.FileName(title, maxLen)

	// Already correctly named: keep the file and claim its name so a
	// later file cannot take it.
	if inPlace && filepath.Base(path) == name {
		claims.Claim(path)
		outcome.Dest = path
		outcome.Status = types.StatusSkipped
		return outcome
	}

	dest, err := claims.Resolve(outDir, name)
	if err != nil {
		return failed(outcome, err)
	}
	outcome.Dest = dest

	if inPlace {
		if err := os.Rename(path, dest); err != nil {
			return failed(outcome, err)
		}
		outcome.Status = types.StatusRenamed
		return outcome
	}

	if err := copyFile(path, dest); err != nil {
		return failed(outcome, err)
	}
	outcome.Status = types.StatusCopied
	return outcome
}

// failed fills in the failure fields, classifying err into an ErrorKind.
func failed(outcome types.Outcome, err error) types.Outcome {
	outcome.Dest = ""
	outcome.Status = types.StatusFailed
	outcome.ErrorKind = classify(err)
	outcome.ErrorMsg = err.Error()
	return outcome
}

func classify(err error) types.ErrorKind {
	switch {
	case errors.Is(err, extract.ErrNoPages):
		return types.ErrKindNoPages
	case errors.Is(err, extract.ErrNoTitle):
		return types.ErrKindNoTitleFound
	case errors.Is(err, extract.ErrUnreadable):
		return types.ErrKindUnreadablePDF
	case errors.Is(err, resolve.ErrExhausted):
		return types.ErrKindCollisionExhausted
	default:
		return types.ErrKindFilesystemFault
	}
}

// copyFile copies src to dest via a temporary file in the destination
// directory, renamed into place on success. A failed copy leaves no
// partial file behind.
func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".name2pdf-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		return fmt.Errorf("copying to %s: %w", dest, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpName, dest); err != nil {
		return fmt.Errorf("placing %s: %w", dest, err)
	}
	return nil
}

// printOutcome writes one status line per file.
func printOutcome(w io.Writer, o types.Outcome) {
	name := filepath.Base(o.Source)
	switch o.Status {
	case types.StatusRenamed:
		fmt.Fprintf(w, "renamed: %s -> %s\n", name, filepath.Base(o.Dest))
	case types.StatusCopied:
		fmt.Fprintf(w, "copied:  %s -> %s\n", name, filepath.Base(o.Dest))
	case types.StatusSkipped:
		fmt.Fprintf(w, "skipped: %s (already named)\n", name)
	case types.StatusFailed:
		fmt.Fprintf(w, "failed:  %s (%s)\n", name, o.ErrorMsg)
	}
}
