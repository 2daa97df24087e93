package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bottells/replay"
)

func newDescribeCmd(c *cli) *cobra.Command {
	var (
		viewer string
		turn   int
	)
	cmd := &cobra.Command{
		Use:   "describe [spec.json]",
		Short: "Show what one viewer perceives on a turn",
		Long: `Replays a TurnSpec and prints the intel view of one viewer, one line per
visible tell. Without --turn the last turn of the spec is shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if viewer == "" {
				return fmt.Errorf("--viewer is required")
			}
			tape, err := c.generate(cmd, args)
			if err != nil {
				return err
			}
			if turn == 0 && len(tape.Events) > 0 {
				turn = tape.Events[len(tape.Events)-1].Turn
			}

			out := cmd.OutOrStdout()
			shown := 0
			for _, e := range tape.Events {
				if e.Type != replay.EventViewerProjection || e.Turn != turn {
					continue
				}
				payload, _ := e.Value.AsMap()["payload"].(map[string]any)
				if payload["viewerId"] != viewer {
					continue
				}
				line := fmt.Sprintf("turn %d  %v: %v", turn, payload["empireId"], payload["description"])
				if emotion, ok := payload["emotion"].(string); ok {
					line += " (" + emotion + ")"
				}
				if payload["perceivedTruth"] == true {
					line += " [bluff seen through]"
				}
				fmt.Fprintln(out, line)
				shown++
			}
			if shown == 0 {
				fmt.Fprintf(out, "turn %d  nothing visible to %s\n", turn, viewer)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&viewer, "viewer", "", "Viewing empire id (required)")
	cmd.Flags().IntVar(&turn, "turn", 0, "Turn to show (default: last)")
	return cmd
}
