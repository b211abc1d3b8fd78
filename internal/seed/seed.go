package seed

import (
	"context"
	"database/sql"

	"github.com/rotisserie/eris"
	"golang.org/x/crypto/bcrypt"

	"github.com/Simplici0/roicalc/internal/roi"
	"github.com/Simplici0/roicalc/internal/scenario"
)

// DemoScenarioTitle is the title of the scenario seeded from the default profile.
const DemoScenarioTitle = "Demo: default firm profile"

// Config contains the values required by startup seed.
type Config struct {
	AdminEmail    string
	AdminPassword string
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run executes the startup seed in an idempotent way.
func Run(ctx context.Context, db *sql.DB, cfg Config) (Stats, error) {
	stats := Stats{}

	if err := seedAdmin(ctx, db, cfg.AdminEmail, cfg.AdminPassword, &stats); err != nil {
		return Stats{}, err
	}
	if err := ensureDemoScenario(ctx, scenario.NewStore(db), cfg.AdminEmail, &stats); err != nil {
		return Stats{}, err
	}

	return stats, nil
}

func seedAdmin(ctx context.Context, db *sql.DB, email, password string, stats *Stats) error {
	if email == "" || password == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return eris.Wrap(err, "seed: hash admin password")
	}

	res, err := db.ExecContext(ctx, `
		INSERT INTO users (email, password_hash) VALUES (?, ?)
		ON CONFLICT(email) DO NOTHING
	`, email, string(hash))
	if err != nil {
		return eris.Wrap(err, "seed: insert admin user")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "seed: admin rows affected")
	}
	stats.Inserts += int(affected)
	return nil
}

func ensureDemoScenario(ctx context.Context, store *scenario.Store, createdBy string, stats *Stats) error {
	n, err := store.Count(ctx, DemoScenarioTitle)
	if err != nil {
		return eris.Wrap(err, "seed: check demo scenario")
	}
	if n > 0 {
		return nil
	}

	profile := roi.DefaultProfile()
	if _, err := store.Save(ctx, scenario.Scenario{
		Title:     DemoScenarioTitle,
		Notes:     "Seeded from the calculator defaults.",
		CreatedBy: createdBy,
		Profile:   profile,
		Result:    roi.Compute(profile),
	}); err != nil {
		return eris.Wrap(err, "seed: insert demo scenario")
	}
	stats.Inserts++
	return nil
}
