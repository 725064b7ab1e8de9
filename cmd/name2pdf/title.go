package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sqodarbaskoro/Name2Pdf/internal/extract"
	"github.com/sqodarbaskoro/Name2Pdf/pkg/types"
)

var titleCmd = &cobra.Command{
	Use:   "title <file.pdf> [more.pdf...]",
	Short: "Print the visible first-page title of one or more PDFs",
	Long: `Title extracts and prints the first-page title of each given PDF without
renaming anything. Useful for checking what a rename run would produce.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTitle,
}

func init() {
	titleCmd.Flags().String("backend", "", "extraction backend: native or pdftotext (default native)")

	rootCmd.AddCommand(titleCmd)
}

func runTitle(cmd *cobra.Command, args []string) error {
	backend, _ := cmd.Flags().GetString("backend")
	if backend == "" {
		backend = viper.GetString("settings.backend")
	}

	src, err := extract.New(types.ExtractBackend(backend))
	if err != nil {
		return err
	}

	failures := 0
	for _, path := range args {
		title, err := src.Title(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed:  %s (%v)\n", filepath.Base(path), err)
			failures++
			continue
		}
		fmt.Printf("%s: %s\n", filepath.Base(path), title)
	}

	if failures > 0 {
		return fmt.Errorf("%d file(s) failed", failures)
	}
	return nil
}
