package main

import (
	"github.com/lucasew/fdb/internal/app"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <file.sqlite>",
	Short: "Write every tracked path into a SQLite database",
	Args:  cobra.ExactArgs(1),
	RunE:  runAction(app.Export),
}

var importCmd = &cobra.Command{
	Use:   "import <file.sqlite>...",
	Short: "Merge paths from SQLite databases written by export",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAction(app.Import),
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
