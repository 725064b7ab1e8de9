package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sqodarbaskoro/Name2Pdf/internal/history"
	"github.com/sqodarbaskoro/Name2Pdf/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or export past rename runs",
	Long: `History reads the local run database and prints past batch runs, newest
first. With --run it shows one run's per-file outcomes; with --export it
dumps the full history as YAML or JSON to stdout.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 0, "maximum number of runs to list (default 20)")
	historyCmd.Flags().Int64("run", 0, "show the per-file outcomes of one run ID")
	historyCmd.Flags().String("export", "", "export the full history: yaml or json")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(types.HistoryConfig{
		HistoryDir: viper.GetString("settings.history_dir"),
	})
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()

	if format, _ := cmd.Flags().GetString("export"); format != "" {
		switch format {
		case "yaml":
			return store.ExportYAML(ctx, os.Stdout)
		case "json":
			return store.ExportJSON(ctx, os.Stdout)
		default:
			return fmt.Errorf("unknown export format %q (want yaml or json)", format)
		}
	}

	if runID, _ := cmd.Flags().GetInt64("run"); runID != 0 {
		run, err := store.GetRun(ctx, runID)
		if err != nil {
			return err
		}
		printRun(run)
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.ListRuns(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	for _, run := range runs {
		s := run.Report.Summary
		mode := "copy"
		if run.Report.InPlace {
			mode = "in-place"
		}
		fmt.Printf("#%d  %s  %s  %s: %d renamed, %d copied, %d skipped, %d failed\n",
			run.ID, run.Report.StartedAt.Local().Format("2006-01-02 15:04"),
			mode, run.Report.InputDir,
			s.Renamed, s.Copied, s.Skipped, s.Failed)
	}
	return nil
}

func printRun(run history.Run) {
	fmt.Printf("Run #%d  %s -> %s\n", run.ID, run.Report.InputDir, run.Report.OutputDir)
	for _, o := range run.Report.Outcomes {
		switch o.Status {
		case types.StatusFailed:
			fmt.Printf("  failed:  %s (%s: %s)\n", filepath.Base(o.Source), o.ErrorKind, o.ErrorMsg)
		case types.StatusSkipped:
			fmt.Printf("  skipped: %s\n", filepath.Base(o.Source))
		default:
			fmt.Printf("  %s: %s -> %s\n", o.Status, filepath.Base(o.Source), filepath.Base(o.Dest))
		}
	}
}
