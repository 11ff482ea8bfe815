package main

import (
	"github.com/lucasew/fdb/internal/app"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:     "init",
	Aliases: []string{"initialize"},
	Short:   "Create an empty database, replacing any existing one",
	Args:    cobra.NoArgs,
	RunE:    runAction(app.Initialize),
}

func init() {
	rootCmd.AddCommand(initCmd)
}
