// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/sqodarbaskoro/Name2Pdf/internal/extract"
	"github.com/sqodarbaskoro/Name2Pdf/pkg/types"
)

// fakeSource maps source basenames to canned titles or errors, standing in
// for a real PDF parser.
type fakeSource struct {
	titles map[string]string
	errs   map[string]error
}

func (f fakeSource) Title(path string) (string, error) {
	base := filepath.Base(path)
	if err, ok := f.errs[base]; ok {
		return "", err
	}
	if title, ok := f.titles[base]; ok {
		return title, nil
	}
	return "", extract.ErrNoTitle
}

func writePDF(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("%PDF-"+name), 0o644); err != nil {
		t.Fatal(err)
	}
}

func dirNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func TestRun_InPlaceRename(t *testing.T) {
	dir := t.TempDir()
	writePDF(t, dir, "a.pdf")
	writePDF(t, dir, "b.pdf")

	src := fakeSource{titles: map[string]string{
		"a.pdf": "Pump Manual",
		"b.pdf": "Valve Manual",
	}}

	var out bytes.Buffer
	report, err := Run(context.Background(), src, types.RenameConfig{InputDir: dir}, nil, &out)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := report.Summary; got.Renamed != 2 || got.Failed != 0 {
		t.Fatalf("summary = %+v, want 2 renamed", got)
	}
	if !report.InPlace {
		t.Error("expected in-place mode when no output dir is set")
	}

	// File count unchanged, only names differ.
	want := []string{"Pump Manual.pdf", "Valve Manual.pdf"}
	got := dirNames(t, dir)
	if len(got) != len(want) {
		t.Fatalf("dir = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("dir[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if !strings.Contains(out.String(), "renamed: a.pdf -> Pump Manual.pdf") {
		t.Errorf("missing status line in output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Batch summary: 2 renamed") {
		t.Errorf("missing summary line in output:\n%s", out.String())
	}
}

func TestRun_CopyMode(t *testing.T) {
	inDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "renamed")
	writePDF(t, inDir, "doc.pdf")

	src := fakeSource{titles: map[string]string{"doc.pdf": "Annual Report"}}

	var out bytes.Buffer
	cfg := types.RenameConfig{InputDir: inDir, OutputDir: outDir}
	report, err := Run(context.Background(), src, cfg, nil, &out)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if report.Summary.Copied != 1 {
		t.Fatalf("summary = %+v, want 1 copied", report.Summary)
	}

	// Source untouched; output directory created and populated.
	if got := dirNames(t, inDir); len(got) != 1 || got[0] != "doc.pdf" {
		t.Errorf("source dir = %v, want [doc.pdf]", got)
	}
	if got := dirNames(t, outDir); len(got) != 1 || got[0] != "Annual Report.pdf" {
		t.Errorf("output dir = %v, want [Annual Report.pdf]", got)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "Annual Report.pdf"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "%PDF-doc.pdf" {
		t.Errorf("copied bytes = %q, want source bytes", data)
	}
}

func TestRun_OneFailureDoesNotAbort(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"a.pdf", "b.pdf", "c.pdf", "d.pdf", "e.pdf"} {
		writePDF(t, dir, n)
	}

	src := fakeSource{
		titles: map[string]string{
			"a.pdf": "Alpha",
			"b.pdf": "Bravo",
			"d.pdf": "Delta",
			"e.pdf": "Echo",
		},
		errs: map[string]error{"c.pdf": extract.ErrUnreadable},
	}

	var out bytes.Buffer
	report, err := Run(context.Background(), src, types.RenameConfig{InputDir: dir}, nil, &out)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := report.Summary; got.Succeeded() != 4 || got.Failed != 1 {
		t.Fatalf("summary = %+v, want 4 succeeded / 1 failed", got)
	}

	var failedOutcome *types.Outcome
	for i := range report.Outcomes {
		if report.Outcomes[i].Status == types.StatusFailed {
			failedOutcome = &report.Outcomes[i]
		}
	}
	if failedOutcome == nil {
		t.Fatal("no failed outcome recorded")
	}
	if failedOutcome.ErrorKind != types.ErrKindUnreadablePDF {
		t.Errorf("error kind = %q, want %q", failedOutcome.ErrorKind, types.ErrKindUnreadablePDF)
	}
	if filepath.Base(failedOutcome.Source) != "c.pdf" {
		t.Errorf("failed source = %q, want c.pdf", failedOutcome.Source)
	}
}

func TestRun_CollisionSuffixes(t *testing.T) {
	dir := t.TempDir()
	writePDF(t, dir, "x.pdf")
	writePDF(t, dir, "y.pdf")
	writePDF(t, dir, "z.pdf")

	src := fakeSource{titles: map[string]string{
		"x.pdf": "Report",
		"y.pdf": "Report",
		"z.pdf": "Report",
	}}

	var out bytes.Buffer
	report, err := Run(context.Background(), src, types.RenameConfig{InputDir: dir}, nil, &out)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Summary.Renamed != 3 {
		t.Fatalf("summary = %+v, want 3 renamed", report.Summary)
	}

	want := []string{"Report (1).pdf", "Report (2).pdf", "Report.pdf"}
	got := dirNames(t, dir)
	for i := range want {
		if i >= len(got) || got[i] != want[i] {
			t.Fatalf("dir = %v, want %v", got, want)
		}
	}

	// Claim order follows scan order: x.pdf got the bare name.
	if filepath.Base(report.Outcomes[0].Dest) != "Report.pdf" {
		t.Errorf("first dest = %q, want Report.pdf", report.Outcomes[0].Dest)
	}
}

func TestRun_SkipAlreadyNamed(t *testing.T) {
	dir := t.TempDir()
	writePDF(t, dir, "Kept.pdf")
	writePDF(t, dir, "other.pdf")

	src := fakeSource{titles: map[string]string{
		"Kept.pdf":  "Kept",
		"other.pdf": "Kept",
	}}

	var out bytes.Buffer
	report, err := Run(context.Background(), src, types.RenameConfig{InputDir: dir}, nil, &out)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := report.Summary; got.Skipped != 1 || got.Renamed != 1 {
		t.Fatalf("summary = %+v, want 1 skipped / 1 renamed", got)
	}

	// The skip claims the name, so the second file gets a suffix.
	want := []string{"Kept (1).pdf", "Kept.pdf"}
	got := dirNames(t, dir)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("dir = %v, want %v", got, want)
		}
	}
}

func TestRun_NoTitleRecorded(t *testing.T) {
	dir := t.TempDir()
	writePDF(t, dir, "blank.pdf")

	var out bytes.Buffer
	report, err := Run(context.Background(), fakeSource{}, types.RenameConfig{InputDir: dir}, nil, &out)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if report.Summary.Failed != 1 {
		t.Fatalf("summary = %+v, want 1 failed", report.Summary)
	}
	if kind := report.Outcomes[0].ErrorKind; kind != types.ErrKindNoTitleFound {
		t.Errorf("error kind = %q, want %q", kind, types.ErrKindNoTitleFound)
	}
	// The original file keeps its name.
	if got := dirNames(t, dir); len(got) != 1 || got[0] != "blank.pdf" {
		t.Errorf("dir = %v, want [blank.pdf]", got)
	}
}

func TestRun_Cancellation(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"a.pdf", "b.pdf", "c.pdf", "d.pdf"} {
		writePDF(t, dir, n)
	}

	src := fakeSource{titles: map[string]string{
		"a.pdf": "One", "b.pdf": "Two", "c.pdf": "Three", "d.pdf": "Four",
	}}

	ctx, cancel := context.WithCancel(context.Background())
	obs := ObserverFunc(func(index, total int, _ types.Outcome) {
		if index == 2 {
			cancel()
		}
	})

	var out bytes.Buffer
	report, err := Run(ctx, src, types.RenameConfig{InputDir: dir}, obs, &out)
	if err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}

	if len(report.Outcomes) != 2 {
		t.Fatalf("got %d outcomes, want 2", len(report.Outcomes))
	}

	// Files after the stop point are untouched.
	got := dirNames(t, dir)
	for _, name := range []string{"One.pdf", "Two.pdf", "c.pdf", "d.pdf"} {
		found := false
		for _, g := range got {
			if g == name {
				found = true
			}
		}
		if !found {
			t.Errorf("dir = %v, missing %q", got, name)
		}
	}
}

func TestRun_ObserverSequence(t *testing.T) {
	dir := t.TempDir()
	writePDF(t, dir, "a.pdf")
	writePDF(t, dir, "b.pdf")

	src := fakeSource{titles: map[string]string{"a.pdf": "One", "b.pdf": "Two"}}

	var events []int
	var totals []int
	obs := ObserverFunc(func(index, total int, _ types.Outcome) {
		events = append(events, index)
		totals = append(totals, total)
	})

	var out bytes.Buffer
	if _, err := Run(context.Background(), src, types.RenameConfig{InputDir: dir}, obs, &out); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(events) != 2 || events[0] != 1 || events[1] != 2 {
		t.Errorf("indices = %v, want [1 2]", events)
	}
	for _, total := range totals {
		if total != 2 {
			t.Errorf("totals = %v, want all 2", totals)
		}
	}
}

func TestRun_InvalidInputDir(t *testing.T) {
	var out bytes.Buffer
	cfg := types.RenameConfig{InputDir: filepath.Join(t.TempDir(), "missing")}
	if _, err := Run(context.Background(), fakeSource{}, cfg, nil, &out); err == nil {
		t.Error("expected error for invalid input directory")
	}
}
