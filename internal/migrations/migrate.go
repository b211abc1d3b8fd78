package migrations

import (
	"database/sql"
	"embed"

	"github.com/pressly/goose/v3"
	"github.com/rotisserie/eris"
)

const sqliteDialect = "sqlite3"

//go:embed sql/*.sql
var migrationsFS embed.FS

// Up runs all pending SQL migrations embedded in the binary.
func Up(db *sql.DB) error {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(sqliteDialect); err != nil {
		return eris.Wrap(err, "migrations: set goose dialect")
	}

	if err := goose.Up(db, "sql"); err != nil {
		return eris.Wrap(err, "migrations: run goose up")
	}

	return nil
}

// Version returns the current schema version.
func Version(db *sql.DB) (int64, error) {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect(sqliteDialect); err != nil {
		return 0, eris.Wrap(err, "migrations: set goose dialect")
	}

	version, err := goose.GetDBVersion(db)
	if err != nil {
		return 0, eris.Wrap(err, "migrations: read version")
	}
	return version, nil
}
