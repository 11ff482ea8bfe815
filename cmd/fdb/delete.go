package main

import (
	"github.com/lucasew/fdb/internal/app"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <path>...",
	Aliases: []string{"rm"},
	Short:   "Forget the given paths (exact match)",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runAction(app.Delete),
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
