package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lucasew/fdb/internal/app"
	"github.com/lucasew/fdb/internal/errutil"
	"github.com/lucasew/fdb/internal/lock"
	"github.com/lucasew/fdb/internal/rank"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "fdb",
	Short: "A frecency database for directory navigation",
	Long: `fdb records visited paths and ranks them by frecency, a score combining
how often and how recently each path was visited. Shell helpers call it to
add the current directory and to jump to the best match for a pattern.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogging()
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		for _, line := range errutil.Causes(err) {
			if _, printErr := fmt.Fprintln(os.Stderr, "fdb:", line); printErr != nil {
				errutil.ReportError(printErr, "Failed to print error to stderr")
				break
			}
		}
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringP("db-path", "i", "~/.z", "Database file (.yaml/.yml for YAML, .zst suffix for zstd)")
	flags.Int("history-size", 600, "Maximum number of paths to keep (0 for unlimited)")
	flags.BoolP("unlimited", "u", false, "Don't limit the size of the database")
	flags.StringP("sort-by", "s", rank.Frecency, "Sort method: "+strings.Join(rank.Names(), "|"))
	flags.Duration("lock-interval", lock.DefaultInterval, "Delay between attempts to take the database lock")
	flags.Duration("lock-timeout", 0, "Give up waiting for the database lock after this long (0 waits forever)")
	flags.CountP("verbose", "v", "Increase log verbosity (repeatable)")
	flags.Bool("quiet", false, "Suppress all logging")

	mustBindPFlag("db-path", flags.Lookup("db-path"))
	mustBindPFlag("history-size", flags.Lookup("history-size"))
	mustBindPFlag("unlimited", flags.Lookup("unlimited"))
	mustBindPFlag("sort-by", flags.Lookup("sort-by"))
	mustBindPFlag("lock-interval", flags.Lookup("lock-interval"))
	mustBindPFlag("lock-timeout", flags.Lookup("lock-timeout"))
	mustBindPFlag("verbose", flags.Lookup("verbose"))
	mustBindPFlag("quiet", flags.Lookup("quiet"))
}

func initConfig() {
	viper.SetEnvPrefix("FDB")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func mustBindPFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("failed to bind flag %s: %v", key, err))
	}
}

func initLogging() {
	level := slog.LevelWarn
	switch {
	case viper.GetBool("quiet"):
		level = slog.Level(100)
	case viper.GetInt("verbose") == 1:
		level = slog.LevelInfo
	case viper.GetInt("verbose") >= 2:
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// loadConfig resolves flags and FDB_* environment variables into an app.Config.
func loadConfig() (app.Config, error) {
	dbPath, err := app.ExpandHome(viper.GetString("db-path"))
	if err != nil {
		return app.Config{}, err
	}

	raw := strings.TrimSpace(viper.GetString("history-size"))
	historySize, err := strconv.Atoi(raw)
	if err != nil {
		return app.Config{}, fmt.Errorf("%w: history size %q is not a number", app.ErrConfig, raw)
	}
	if viper.GetBool("unlimited") {
		historySize = 0
	}

	cfg := app.Config{
		DBPath:       dbPath,
		HistorySize:  historySize,
		SortBy:       viper.GetString("sort-by"),
		LockInterval: viper.GetDuration("lock-interval"),
		LockTimeout:  viper.GetDuration("lock-timeout"),
		Now:          time.Now,
	}
	slog.Debug("Configuration loaded", "db_path", cfg.DBPath, "history_size", cfg.HistorySize, "sort_by", cfg.SortBy)
	return cfg, nil
}

// runAction is the RunE body shared by every action subcommand.
func runAction(action app.Action) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return app.Run(cmd.Context(), cfg, action, args, cmd.OutOrStdout())
	}
}
