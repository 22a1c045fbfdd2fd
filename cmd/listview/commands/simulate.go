package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agiangrant/listview/config"
	"github.com/agiangrant/listview/retained"
)

func newSimulateCmd() *cobra.Command {
	var (
		distance float32
		dragFor  int
		velocity float32
		wheel    float32
		frames   int
		every    int
		fps      int
		total    int
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Fling, drag or wheel the list and trace it to rest",
		Long: `Simulate user input against the list and print the region state.

Input, applied in this order when several are given:
  --velocity  set an initial speed in px/s along the scroll axis
  --drag      drag the content by this many px over --drag-frames frames
  --wheel     send one wheel notch of this many units

Negative values move toward later items.`,
		Example: `  listview simulate --drag -600 --drag-frames 6
  listview simulate --velocity -4000 --every 10
  listview simulate --wheel -3 -c grid.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(func(c *config.Config) {
				if total >= 0 {
					c.List.TotalCount = total
				}
			})
			if err != nil {
				return err
			}
			defer s.Close()

			dt := 1 / float32(max(1, fps))
			axis := s.Region.Direction().Axis()
			fmt.Fprintf(cmd.OutOrStdout(), "start %s\n", s.Snapshot())

			if velocity != 0 {
				s.Region.SetVelocity(velocity)
			}
			if distance != 0 {
				from := retained.Vec2{X: s.Config.View.Width / 2, Y: s.Config.View.Height / 2}
				to := from.Add(retained.Vec2{}.With(axis, distance))
				s.Fling(from, to, dragFor, dt)
			}
			if wheel != 0 {
				s.Wheel(retained.Vec2{}.With(retained.AxisY, wheel))
			}

			trace(cmd, s, frames, every, dt)
			return nil
		},
	}

	cmd.Flags().Float32Var(&distance, "drag", 0, "Drag distance in px")
	cmd.Flags().IntVar(&dragFor, "drag-frames", 5, "Frames the drag takes")
	cmd.Flags().Float32Var(&velocity, "velocity", 0, "Initial velocity in px/s")
	cmd.Flags().Float32Var(&wheel, "wheel", 0, "Wheel delta")
	cmd.Flags().IntVar(&frames, "frames", 600, "Maximum frames to run")
	cmd.Flags().IntVar(&every, "every", 30, "Print state every N frames")
	cmd.Flags().IntVar(&fps, "fps", 60, "Simulated frame rate")
	cmd.Flags().IntVar(&total, "total", -1, "Override the item count")

	return cmd
}
