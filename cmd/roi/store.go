package main

import (
	"context"
	"database/sql"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Simplici0/roicalc/internal/db"
	"github.com/Simplici0/roicalc/internal/migrations"
	"github.com/Simplici0/roicalc/internal/seed"
)

// openDatabase opens the configured SQLite file, migrating and seeding it when enabled.
func openDatabase(ctx context.Context, migrate, runSeed bool) (*sql.DB, error) {
	database, err := db.Open(cfg.Store.DBPath)
	if err != nil {
		return nil, err
	}

	if migrate {
		if err := migrations.Up(database); err != nil {
			database.Close()
			return nil, err
		}
	}

	if runSeed {
		stats, err := seed.Run(ctx, database, seed.Config{
			AdminEmail:    cfg.Admin.Email,
			AdminPassword: cfg.Admin.Password,
		})
		if err != nil {
			database.Close()
			return nil, eris.Wrap(err, "run startup seed")
		}
		zap.L().Info("seed complete", zap.Int("inserts", stats.Inserts))
	}

	return database, nil
}
