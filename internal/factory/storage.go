package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/config"
	storepkg "github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/store"
	storepg "github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/store/postgres"
	storelite "github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/store/sqlite"
)

// bootstrapTimeout bounds schema creation so a wedged database fails startup
// instead of hanging it.
const bootstrapTimeout = 30 * time.Second

// NewStore returns the store.Store selected by cfg.DBDriver.
// The schema bootstrap runs synchronously: callers seed the catalog right
// after this returns, so the tables must already exist.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storepkg.Store, error) {
	bootstrapCtx, cancel := context.WithTimeout(ctx, bootstrapTimeout)
	defer cancel()

	switch cfg.DBDriver {
	case "sqlite":
		db, err := storelite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := storelite.Bootstrap(bootstrapCtx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite bootstrap failed: %w", err)
		}
		log.Debug().Str("driver", cfg.DBDriver).Str("path", cfg.SQLitePath).Msg("store bootstrap completed")
		return storelite.NewWithDB(db), nil

	case "postgres":
		dsn := cfg.PostgresDSN
		if dsn == "" {
			return nil, fmt.Errorf("STAY_POSTGRES_DSN is required when DB_DRIVER=postgres")
		}
		db, err := storepg.Open(dsn)
		if err != nil {
			return nil, err
		}
		if err := storepg.Bootstrap(bootstrapCtx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("postgres bootstrap failed: %w", err)
		}
		log.Debug().Str("driver", cfg.DBDriver).Msg("store bootstrap completed")
		return storepg.NewWithDB(db), nil

	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}
