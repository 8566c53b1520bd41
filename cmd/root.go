package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-time-tracker/internal/codec"
	"github.com/Tiliavir/trivial-time-tracker/internal/config"
	"github.com/Tiliavir/trivial-time-tracker/internal/storage"
	"github.com/Tiliavir/trivial-time-tracker/internal/tracker"
)

var (
	rootFile    string
	rootConfig  string
	rootVerbose bool
)

// Set up by loadEnvironment before any subcommand runs.
var (
	cfg       config.Config
	logFormat codec.Format
	tt        *tracker.Tracker
)

var rootCmd = &cobra.Command{
	Use:   "ttt",
	Short: "Trivial Time Tracker – a minimal CLI time tracker",
	Long: `ttt is a single-binary, file-based command-line time tracker.
Activities are stored one per line in a human-readable text log,
by default ~/.ttt/activities.log.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadEnvironment,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&rootFile, "file", "f", "", "Activity log (overrides the config file and TTT_FILE)")
	pf.StringVar(&rootConfig, "config", "", "Config file (default ~/.ttt/config.yaml)")
	pf.BoolVarP(&rootVerbose, "verbose", "v", false, "Log debug messages to stderr")

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(changeCmd)
	rootCmd.AddCommand(cancelCmd)
	rootCmd.AddCommand(continueCmd)
	rootCmd.AddCommand(currentCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(lastCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(sanityCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(outlookCmd)
}

// loadEnvironment installs the logger, reads the config and opens the
// activity log for the subcommand.
func loadEnvironment(cmd *cobra.Command, args []string) error {
	level := slog.LevelWarn
	if rootVerbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	path := rootConfig
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	c, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg = c

	f, err := cfg.Format()
	if err != nil {
		return err
	}
	f.Logger = logger
	logFormat = f

	file := rootFile
	if file == "" {
		file = cfg.File
	}
	if file == "" {
		p, err := storage.DefaultPath()
		if err != nil {
			return err
		}
		file = p
	}
	slog.Debug("using activity log", "path", file, "precision", cfg.Precision)
	tt = tracker.New(file, logFormat)
	return nil
}
