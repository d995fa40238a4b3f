package cli

import (
	"errors"
	"fmt"

	"github.com/nao1215/sqlcsv/internal/config"
	"github.com/spf13/cobra"
)

// resolveSettings layers defaults, the config file, the environment and
// finally any flag the user set explicitly.
func resolveSettings(cmd *cobra.Command, flags *queryFlagValues, lookupEnv func(string) (string, bool)) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if flags.configPath != "" {
		cfg, err = config.Load(flags.configPath)
		if err != nil {
			return cfg, fmt.Errorf("%w: failed to load %s: %w", ErrUsage, flags.configPath, err)
		}
	} else {
		cfg, err = config.Load(config.ConfigFileName)
		if err != nil && !errors.Is(err, config.ErrConfigNotFound) {
			return cfg, fmt.Errorf("%w: failed to load %s: %w", ErrUsage, config.ConfigFileName, err)
		}
	}

	cfg, err = cfg.ApplyEnv(lookupEnv)
	if err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrUsage, err)
	}

	f := cmd.Flags()
	if f.Changed("batch-size") {
		cfg.BatchSize = flags.batchSize
	}
	if f.Changed("no-header") {
		cfg.NoHeader = flags.noHeader
	}
	if f.Changed("pragma") {
		cfg.Pragmas = flags.pragmas
	}
	if f.Changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if flags.verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}
