// Command tellsim runs scripted bot-tell games and previews bluff-detection
// odds.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"bottells/archetype"
)

type cli struct {
	logger  *zap.Logger
	verbose bool
	cfg     Config
	table   *archetype.Table
}

func newRootCmd() *cobra.Command {
	c := &cli{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "tellsim",
		Short:         "Simulate bot tells, bluffs and intel-gated perception",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			if c.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			c.logger = logger

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			c.cfg = cfg

			c.table = archetype.Default()
			if cfg.PolicyFile != "" {
				table, err := archetype.LoadFile(cfg.PolicyFile)
				if err != nil {
					return err
				}
				c.table = table
				c.logger.Info("loaded policy overrides", zap.String("path", cfg.PolicyFile))
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.logger.Sync()
		},
	}

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().String("policy-file", "", "Archetype policy overrides, YAML or JSON (or set TELLSIM_POLICY_FILE)")
	root.PersistentFlags().Int64("seed", 0, "Master seed when the spec has none (or set TELLSIM_SEED)")
	root.PersistentFlags().Int("max-parallel", 0, "Bots evaluated concurrently per turn (or set TELLSIM_MAX_PARALLEL)")
	root.PersistentFlags().Int("research-bonus", 0, "Observer research bonus for odds (or set TELLSIM_RESEARCH_BONUS)")

	root.AddCommand(newGenerateCmd(c))
	root.AddCommand(newOddsCmd(c))
	root.AddCommand(newDescribeCmd(c))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
