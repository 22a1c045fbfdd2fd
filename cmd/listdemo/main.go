// Command listdemo shows a listview region in a desktop window.
package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/agiangrant/listview/config"
	"github.com/agiangrant/listview/internal/logging"
	"github.com/agiangrant/listview/internal/session"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgFile string
		debug   bool
	)

	cmd := &cobra.Command{
		Use:          "listdemo",
		Short:        "Show a recycling scroll list in a window",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewDefaultCLILogger()
			logging.SetGlobalLevel(logging.LevelFor(true, debug))

			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			s, err := session.New(cfg, logger)
			if err != nil {
				return err
			}
			defer s.Close()

			ebiten.SetWindowSize(int(cfg.View.Width), int(cfg.View.Height)+statusHeight)
			ebiten.SetWindowTitle("listview")
			logger.Info().
				Int("items", cfg.List.TotalCount).
				Str("direction", cfg.List.Direction).
				Msg("starting demo")
			return ebiten.RunGame(newGame(s))
		},
	}

	cmd.Flags().StringVarP(&cfgFile, "config", "c", config.FileName, "Configuration file path")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug output")

	return cmd
}
