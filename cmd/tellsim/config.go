package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"
)

// Config is read from the environment; flags set on the command line win.
type Config struct {
	PolicyFile    string `env:"TELLSIM_POLICY_FILE"`
	Seed          int64  `env:"TELLSIM_SEED"`
	MaxParallel   int    `env:"TELLSIM_MAX_PARALLEL" envDefault:"8"`
	ResearchBonus int    `env:"TELLSIM_RESEARCH_BONUS" envDefault:"0"`
}

func loadConfig(cmd *cobra.Command) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	flags := cmd.Flags()
	var err error
	if flags.Changed("policy-file") {
		cfg.PolicyFile, err = flags.GetString("policy-file")
	}
	if err == nil && flags.Changed("seed") {
		cfg.Seed, err = flags.GetInt64("seed")
	}
	if err == nil && flags.Changed("max-parallel") {
		cfg.MaxParallel, err = flags.GetInt("max-parallel")
	}
	if err == nil && flags.Changed("research-bonus") {
		cfg.ResearchBonus, err = flags.GetInt("research-bonus")
	}
	if err != nil {
		return cfg, fmt.Errorf("read flags: %w", err)
	}

	if cfg.MaxParallel < 1 {
		return cfg, fmt.Errorf("max parallel must be >= 1, got %d", cfg.MaxParallel)
	}
	if cfg.ResearchBonus < 0 {
		return cfg, fmt.Errorf("research bonus must be >= 0, got %d", cfg.ResearchBonus)
	}
	return cfg, nil
}
