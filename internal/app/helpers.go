package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/muhtegaralfikri/bbi-backend/internal/cli"
	"github.com/muhtegaralfikri/bbi-backend/internal/config"
	"github.com/muhtegaralfikri/bbi-backend/internal/db"
)

// connectPool loads the environment and config, then opens a database pool
// bound to a timeout context. The caller owns cancel and pool.Close.
func connectPool(timeout time.Duration, envLoader *cli.EnvLoader) (context.Context, context.CancelFunc, *db.Pool, *config.Config, error) {
	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		cancel()
		return nil, nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return ctx, cancel, pool, cfg, nil
}
