package main

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/config"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/factory"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/store"
)

// openStore builds the store from STAY_ environment config, honoring the
// --db and --dsn flag overrides. Used by the subcommands that touch the
// database directly instead of going through a running service.
func openStore(ctx context.Context, log zerolog.Logger) (store.Store, *config.Config, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, nil, err
	}
	if dbPathFlag != "" {
		cfg.DBDriver = "sqlite"
		cfg.SQLitePath = dbPathFlag
	}
	if dsnFlag != "" {
		cfg.DBDriver = "postgres"
		cfg.PostgresDSN = dsnFlag
	}
	st, err := factory.NewStore(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return st, cfg, nil
}
