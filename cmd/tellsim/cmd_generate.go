package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bottells/dice"
	"bottells/replay"
)

func newGenerateCmd(c *cli) *cobra.Command {
	var decode bool
	cmd := &cobra.Command{
		Use:   "generate [spec.json]",
		Short: "Replay a turn spec and print the resulting tape",
		Long: `Reads a TurnSpec (from the file argument, or stdin when it is omitted or "-"),
plays every turn and prints the wire tape as JSON. With --decode each event's
envelope is printed as plain JSON instead of base64.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tape, err := c.generate(cmd, args)
			if err != nil {
				return err
			}
			if decode {
				return writeDecoded(cmd.OutOrStdout(), tape)
			}
			return writeJSON(cmd.OutOrStdout(), replay.ToWireTurnTape(tape))
		},
	}
	cmd.Flags().BoolVar(&decode, "decode", false, "Print decoded envelopes instead of base64")
	return cmd
}

func (c *cli) generate(cmd *cobra.Command, args []string) (*replay.TurnTape, error) {
	spec, err := readSpec(cmd, args)
	if err != nil {
		return nil, err
	}
	if spec.Seed == 0 {
		spec.Seed = c.cfg.Seed
	}
	if spec.Seed == 0 {
		seed, err := dice.NewSeed()
		if err != nil {
			return nil, err
		}
		spec.Seed = seed
	}
	c.logger.Info("replaying turn spec",
		zap.String("game", spec.GameID),
		zap.Int64("seed", spec.Seed),
		zap.Int("bots", len(spec.Bots)),
		zap.Int("turns", len(spec.Turns)),
	)
	return replay.GenerateTurnTape(cmd.Context(), spec,
		replay.WithLogger(c.logger),
		replay.WithTable(c.table),
		replay.WithMaxParallel(c.cfg.MaxParallel),
	)
}

func readSpec(cmd *cobra.Command, args []string) (replay.TurnSpec, error) {
	var (
		spec replay.TurnSpec
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return spec, fmt.Errorf("read turn spec: %w", err)
	}
	if err := json.Unmarshal(data, &spec); err != nil {
		return spec, fmt.Errorf("parse turn spec: %w", err)
	}
	return spec, nil
}

func writeDecoded(w io.Writer, tape *replay.TurnTape) error {
	events := make([]map[string]any, 0, len(tape.Events))
	for _, e := range tape.Events {
		env, err := replay.DecodeEvent(e.EnvelopeB64)
		if err != nil {
			return err
		}
		events = append(events, env.AsMap())
	}
	return writeJSON(w, map[string]any{
		"tapeVersion": tape.TapeVersion,
		"gameId":      tape.GameID,
		"seed":        tape.Seed,
		"events":      events,
	})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
