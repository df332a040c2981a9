package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quoteboard/internal/platform/config"
	"github.com/jsamuelsen/quoteboard/internal/platform/logging"
)

// envProfile selects the config profile when --profile is not given.
const envProfile = "APP_ENVIRONMENT"

// commandContext carries what every subcommand needs after flag parsing.
type commandContext struct {
	profile string
	cfg     *config.Config
	logger  *slog.Logger
}

func newRootCommand() *cobra.Command {
	cc := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "quoteboard",
		Short:         "Anonymous quote board with AI moderation",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return cc.load()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cc.profile, "profile", "p", defaultProfile(),
		"Config profile loaded from configs/<profile>.yaml")

	rootCmd.AddCommand(newServeCommand(cc))
	rootCmd.AddCommand(newMigrateCommand(cc))

	return rootCmd
}

func defaultProfile() string {
	if p := os.Getenv(envProfile); p != "" {
		return p
	}

	return "local"
}

// load reads and validates configuration, then installs the process logger.
func (cc *commandContext) load() error {
	cfg, err := config.Load(cc.profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	cc.cfg = cfg
	cc.logger = logger

	return nil
}
