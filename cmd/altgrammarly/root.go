package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/varunmitra/altgrammarly/internal/config"
	"github.com/varunmitra/altgrammarly/internal/logging"
)

// rootOptions holds global flags for all commands.
type rootOptions struct {
	configPath string
	envFile    string
	useMock    bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "altgrammarly",
		Short:        "Rewrite selected text with an LLM",
		Long:         "Correct, shorten, rephrase, formalize or soften text through a hosted or local LLM, retrying with exponential backoff.",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config.yaml")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before configuration")
	cmd.PersistentFlags().BoolVar(&opts.useMock, "mock", false, "use the mock adapter instead of a real LLM backend")

	cmd.AddCommand(newRunCommand(opts))
	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newOperationsCommand())
	cmd.AddCommand(newModelsCommand(opts))
	cmd.AddCommand(newCheckCommand(opts))
	cmd.AddCommand(newBenchCommand(opts))

	return cmd
}

// load reads the dotenv file and configuration, then installs the logger.
func (o *rootOptions) load() (config.Config, *slog.Logger, error) {
	if err := config.LoadDotEnv(o.envFile); err != nil {
		return config.Config{}, nil, err
	}
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	if o.useMock {
		cfg.Provider = config.ProviderMock
	}

	logger := logging.Configure(logging.Options{Level: cfg.LogLevel, JSON: cfg.LogJSON})
	return cfg, logger, nil
}
