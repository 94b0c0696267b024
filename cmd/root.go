package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/CristiGvl/picoMaint/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgPath string
	debug   bool

	// Loaded in PersistentPreRunE
	cfg *config.Config

	// Version info populated from main
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets build-time version information.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   config.AppName,
	Short: "Disk usage and cleanup for Linux workstations",
	Long: `picomaint - disk usage analysis and cleanup.

Reports mounted filesystem usage, large home folders and hardware
temperatures, sizes reclaimable caches and logs, and clears them on request.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(debug)

		loaded, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func setupLogging(debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s) built %s\n", config.AppName, appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Show detailed operation logs")

	// Register all subcommands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mountsCmd)
	rootCmd.AddCommand(foldersCmd)
	rootCmd.AddCommand(tempsCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(systemCmd)
	rootCmd.AddCommand(versionCmd)
}
