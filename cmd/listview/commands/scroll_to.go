package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agiangrant/listview/config"
	"github.com/agiangrant/listview/scroll"
)

func newScrollToCmd() *cobra.Command {
	var (
		immediate bool
		speed     float32
		bounce    string
		frames    int
		every     int
		stopAfter int
	)

	cmd := &cobra.Command{
		Use:   "scroll-to INDEX",
		Short: "Move the list to an item and trace the move",
		Long: `Scroll the item at INDEX into view.

Animated moves play the ramp-up, traversal and settle phases chosen by the
bounce type and print each state change. For loop lists INDEX counts items
forward from the first shown item.`,
		Example: `  listview scroll-to 40
  listview scroll-to 40 --bounce both --speed 3000
  listview scroll-to 80 --immediate`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[0], err)
			}

			s, err := openSession(func(c *config.Config) {
				if bounce != "" {
					c.List.Bounce = bounce
				}
			})
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			s.Region.OnStateChanged(func(st scroll.MoveState) {
				fmt.Fprintf(out, "state %s window=[%d,%d)\n", st, s.Region.ItemStart(), s.Region.ItemEnd())
			})

			fmt.Fprintf(out, "start %s\n", s.Snapshot())
			s.Region.ScrollToView(index, !immediate, speed)

			dt := float32(1.0 / 60)
			if stopAfter > 0 {
				s.Step(stopAfter, dt)
				s.Region.StopMovement(3, true)
			}
			trace(cmd, s, frames, every, dt)
			return nil
		},
	}

	cmd.Flags().BoolVar(&immediate, "immediate", false, "Jump without animating")
	cmd.Flags().Float32Var(&speed, "speed", scroll.DefaultMoveSpeed, "Traversal speed in px/s")
	cmd.Flags().StringVar(&bounce, "bounce", "", "Bounce type (custom, only-start, only-end, both)")
	cmd.Flags().IntVar(&frames, "frames", 1200, "Maximum frames to run")
	cmd.Flags().IntVar(&every, "every", 60, "Print state every N frames")
	cmd.Flags().IntVar(&stopAfter, "stop-after", 0, "Interrupt the move after N frames")

	return cmd
}
