package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quoteboard/internal/adapters/store"
)

func newMigrateCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the content tables or collections and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd.Context(), cc)
		},
	}
}

func runMigrate(ctx context.Context, cc *commandContext) error {
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := store.Open(ctx, cc.cfg.Store)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	defer func() {
		if closeErr := s.Close(ctx); closeErr != nil {
			cc.logger.Error("closing store", slog.Any("error", closeErr))
		}
	}()

	if err := s.Migrate(ctx); err != nil {
		return fmt.Errorf("migrating store: %w", err)
	}

	cc.logger.Info("store migrated",
		slog.String("driver", cc.cfg.Store.Driver),
		slog.String("store", s.Name()),
	)

	return nil
}
