// Package commands implements the listview command line.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agiangrant/listview/config"
	"github.com/agiangrant/listview/internal/logging"
	"github.com/agiangrant/listview/internal/session"
)

var (
	// Global flags
	cfgFile string
	verbose bool
	debug   bool

	// Global logger
	logger *logging.Logger
)

// Version is set by the main package at startup.
var Version = "dev"

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "listview",
		Short: "Drive a virtualized scroll list headlessly",
		Long: `listview ` + Version + `
Runs a recycling scroll list against a frame loop without a window.

Region settings come from listview.toml (see 'listview config init').
Every command prints the region state as the loop advances.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.NewLogger(cmd.ErrOrStderr())
			logging.SetGlobalLevel(logging.LevelFor(verbose, debug))
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", config.FileName, "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug output")

	rootCmd.Version = Version

	rootCmd.AddCommand(newSimulateCmd())
	rootCmd.AddCommand(newScrollToCmd())
	rootCmd.AddCommand(newSnapCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// GetLogger returns the global logger, creating a default one when a
// command runs outside of Execute.
func GetLogger() *logging.Logger {
	if logger == nil {
		logger = logging.NewDefaultCLILogger()
	}
	return logger
}

// openSession loads the configuration and builds a session from it.
func openSession(mutate func(*config.Config)) (*session.Session, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if mutate != nil {
		mutate(&cfg)
	}
	s, err := session.New(cfg, GetLogger())
	if err != nil {
		return nil, err
	}
	GetLogger().Debug().Str("config", cfgFile).Msg("session opened")
	return s, nil
}

// trace steps s for up to frames frames, printing a snapshot every
// `every` frames and once at the end. It stops early once s is idle.
func trace(cmd *cobra.Command, s *session.Session, frames, every int, dt float32) {
	out := cmd.OutOrStdout()
	every = max(1, every)
	for i := 1; i <= frames; i++ {
		s.Step(1, dt)
		if i%every == 0 {
			fmt.Fprintln(out, s.Snapshot())
		}
		if s.Idle() {
			break
		}
	}
	fmt.Fprintf(out, "final %s\n", s.Snapshot())
}
