package main

import (
	"github.com/lucasew/fdb/internal/app"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <path>...",
	Short: "Record a visit to each path",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAction(app.Add),
}

func init() {
	rootCmd.AddCommand(addCmd)
}
