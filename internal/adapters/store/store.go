// Package store selects and opens the configured content store backend.
package store

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jsamuelsen/quoteboard/internal/adapters/store/mongostore"
	"github.com/jsamuelsen/quoteboard/internal/adapters/store/sqlstore"
	"github.com/jsamuelsen/quoteboard/internal/platform/config"
	"github.com/jsamuelsen/quoteboard/internal/ports"
)

// Store is a content store that can report its health.
type Store interface {
	ports.ContentStore
	ports.HealthChecker
}

var (
	_ Store = (*sqlstore.Store)(nil)
	_ Store = (*mongostore.Store)(nil)
)

// Open connects to the backend named by cfg.Driver. When a credentials file
// is configured its trimmed contents replace cfg.DSN.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	dsn, err := resolveDSN(cfg)
	if err != nil {
		return nil, err
	}

	var s Store

	switch cfg.Driver {
	case "sqlite", "mysql":
		s, err = openSQL(ctx, sqlstore.Dialect(cfg.Driver), dsn)
	case "mongo":
		s, err = openMongo(ctx, dsn, cfg.Project)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}

	if err != nil {
		return nil, err
	}

	return s, nil
}

func openSQL(ctx context.Context, dialect sqlstore.Dialect, dsn string) (Store, error) {
	s, err := sqlstore.Open(ctx, dialect, dsn)
	if err != nil {
		return nil, err
	}

	return s, nil
}

func openMongo(ctx context.Context, uri, database string) (Store, error) {
	s, err := mongostore.Open(ctx, uri, database)
	if err != nil {
		return nil, err
	}

	return s, nil
}

func resolveDSN(cfg config.StoreConfig) (string, error) {
	if cfg.CredentialsFile == "" {
		return cfg.DSN, nil
	}

	raw, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return "", fmt.Errorf("reading store credentials file: %w", err)
	}

	dsn := strings.TrimSpace(string(raw))
	if dsn == "" {
		return "", fmt.Errorf("store credentials file %s is empty", cfg.CredentialsFile)
	}

	return dsn, nil
}
