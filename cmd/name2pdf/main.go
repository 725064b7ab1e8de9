// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the name2pdf CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the name2pdf CLI.
var rootCmd = &cobra.Command{
	Use:   "name2pdf",
	Short: "Rename PDF files after the visible title on their first page",
	Long: `name2pdf scans a folder of PDF files, reads the first page of each one,
and renames (or copies) the file after the human-visible title printed
below the document's "Title" line. Name collisions are resolved with
numeric suffixes, and every run is recorded in a local history database.

Each operation is a subcommand: rename runs a batch over a folder, title
inspects a single file, and history lists or exports past runs.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./name2pdf.yaml or ~/.config/name2pdf/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("name2pdf")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "name2pdf"))
		}
	}

	viper.SetEnvPrefix("NAME2PDF")
	viper.AutomaticEnv()

	viper.SetDefault("settings.backend", "native")
	viper.SetDefault("settings.max_filename_length", 255)
	viper.SetDefault("settings.history_dir", defaultHistoryDir())
	viper.SetDefault("settings.record_history", true)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// defaultHistoryDir places the history database under the user config
// directory, falling back to the working directory.
func defaultHistoryDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".name2pdf"
	}
	return filepath.Join(home, ".config", "name2pdf", "history")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
