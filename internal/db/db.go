package db

import (
	"database/sql"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// Open opens a SQLite database, sets recommended pragmas, and validates connectivity.
func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, eris.Wrap(err, "db: open sqlite database")
	}

	if _, err := db.Exec(`
		PRAGMA journal_mode = WAL;
		PRAGMA foreign_keys = ON;
		PRAGMA busy_timeout = 5000;
	`); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "db: set sqlite pragmas")
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "db: ping sqlite database")
	}

	return db, nil
}
