package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"bottells/perception"
	"bottells/signal"
)

func newOddsCmd(c *cli) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "odds",
		Short: "Print bluff-detection odds per archetype and intel tier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := perception.NewEngine(c.table, nil)
			rows := engine.Odds(c.cfg.ResearchBonus)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), oddsJSON(rows))
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprint(tw, "ARCHETYPE")
			for _, tier := range signal.AllIntelLevels() {
				fmt.Fprintf(tw, "\t%s", tier)
			}
			fmt.Fprintln(tw, "\tMIN TIER")
			for _, row := range rows {
				fmt.Fprint(tw, row.Archetype)
				for _, tier := range signal.AllIntelLevels() {
					fmt.Fprintf(tw, "\t%3.0f%%", row.ByTier[tier]*100)
				}
				fmt.Fprintf(tw, "\t%s\n", row.MinimumTier)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print odds as JSON")
	return cmd
}

func oddsJSON(rows []perception.OddsRow) []map[string]any {
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		byTier := make(map[string]float64, len(row.ByTier))
		for tier, p := range row.ByTier {
			byTier[tier.String()] = p
		}
		out = append(out, map[string]any{
			"archetype":   row.Archetype.String(),
			"minimumTier": row.MinimumTier.String(),
			"odds":        byTier,
		})
	}
	return out
}
