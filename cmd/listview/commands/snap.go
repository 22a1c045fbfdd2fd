package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agiangrant/listview/config"
	"github.com/agiangrant/listview/scroll"
)

func newSnapCmd() *cobra.Command {
	var (
		steps     int
		immediate bool
		frames    int
	)

	cmd := &cobra.Command{
		Use:   "snap",
		Short: "Page through the list one line at a time",
		Long: `Enable snapping and step the list by whole lines, as page
controls do. Negative --steps page backward. Each page prints the page dot
that became current.`,
		Example: `  listview snap --steps 3
  listview snap --steps -1 --immediate`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(func(c *config.Config) { c.Snap.Enable = true })
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			dots := scroll.NewPageDots(s.Region, 0)
			defer dots.Close()
			dots.OnChange = func(d int) { fmt.Fprintf(out, "page %d/%d\n", d, dots.Count()) }

			forward := steps > 0
			dt := float32(1.0 / 60)
			for i := 0; i < abs(steps); i++ {
				s.Region.ScrollGrid(forward, immediate)
				s.Settle(frames, dt)
			}
			fmt.Fprintf(out, "final %s nearest=%d\n", s.Snapshot(), s.Region.SnapNearestIndex())
			return nil
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 1, "Lines to page; negative pages backward")
	cmd.Flags().BoolVar(&immediate, "immediate", false, "Page without animating")
	cmd.Flags().IntVar(&frames, "frames", 600, "Maximum frames per page")

	return cmd
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
