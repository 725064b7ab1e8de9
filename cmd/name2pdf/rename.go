package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sqodarbaskoro/Name2Pdf/internal/batch"
	"github.com/sqodarbaskoro/Name2Pdf/internal/extract"
	"github.com/sqodarbaskoro/Name2Pdf/internal/history"
	"github.com/sqodarbaskoro/Name2Pdf/pkg/types"
)

var renameCmd = &cobra.Command{
	Use:   "rename <input-dir>",
	Short: "Rename every PDF in a folder after its first-page title",
	Long: `Rename scans input-dir (non-recursively) for PDF files, extracts the
visible title from each file's first page, and renames the file after it.
With --output the files are copied into a separate directory instead and
the originals are left untouched. A file whose title cannot be extracted
is reported and skipped over; it never aborts the batch.

Interrupting the run (Ctrl-C) stops it cleanly between files.`,
	Args: cobra.ExactArgs(1),
	RunE: runRename,
}

func init() {
	renameCmd.Flags().String("output", "", "copy renamed files into this directory instead of renaming in place")
	renameCmd.Flags().String("backend", "", "extraction backend: native or pdftotext (default native)")
	renameCmd.Flags().Int("max-name-length", 0, "maximum generated filename length (default 255)")
	renameCmd.Flags().Bool("no-history", false, "do not record this run in the history database")

	rootCmd.AddCommand(renameCmd)
}

func runRename(cmd *cobra.Command, args []string) error {
	outputDir, _ := cmd.Flags().GetString("output")
	backend, _ := cmd.Flags().GetString("backend")
	if backend == "" {
		backend = viper.GetString("settings.backend")
	}
	maxLen, _ := cmd.Flags().GetInt("max-name-length")
	if maxLen == 0 {
		maxLen = viper.GetInt("settings.max_filename_length")
	}
	noHistory, _ := cmd.Flags().GetBool("no-history")

	cfg := types.RenameConfig{
		InputDir:      args[0],
		OutputDir:     outputDir,
		Backend:       types.ExtractBackend(backend),
		MaxNameLength: maxLen,
	}

	src, err := extract.New(cfg.Backend)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, runErr := batch.Run(ctx, src, cfg, nil, os.Stdout)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		// Batch-fatal: invalid input or output directory, nothing processed.
		return runErr
	}

	if recordHistory(noHistory) {
		if err := record(cmd.Context(), report); err != nil {
			fmt.Fprintf(os.Stderr, "warning: history not recorded: %v\n", err)
		}
	}

	if runErr != nil {
		return runErr
	}
	if report.Summary.HasFailures() {
		return fmt.Errorf("%d file(s) failed", report.Summary.Failed)
	}
	return nil
}

func recordHistory(noHistory bool) bool {
	return !noHistory && viper.GetBool("settings.record_history")
}

// record persists the run report in the history database.
func record(ctx context.Context, report types.RunReport) error {
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := history.NewStore(types.HistoryConfig{
		HistoryDir: viper.GetString("settings.history_dir"),
	})
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.RecordRun(ctx, report)
	return err
}
