package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jarvishq/jarvis/pkg/history"
)

// NewHistoryStore creates a history store based on the URL scheme:
// redis:// and rediss:// select Redis, postgres:// and postgresql://
// select PostgreSQL, anything else falls back to the in-memory store.
func NewHistoryStore(ctx context.Context, logger *slog.Logger, databaseURL string) history.Store {
	switch {
	case strings.HasPrefix(databaseURL, "redis://"), strings.HasPrefix(databaseURL, "rediss://"):
		store, err := history.NewRedisStore(databaseURL)
		if err != nil {
			panic(fmt.Errorf("failed to create Redis history store: %w", err))
		}

		return store
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		store, err := history.NewPostgresStore(ctx, logger, databaseURL)
		if err != nil {
			panic(fmt.Errorf("failed to create Postgres history store: %w", err))
		}

		return store
	default:
		return history.NewMemoryStore()
	}
}
