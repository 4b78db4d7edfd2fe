package db

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

var db *sql.DB

var ErrNotInitialized = errors.New("archive database is not initialized")

// Init opens the archive at path and creates the schema. The archive is
// write-once per run; nothing is ever loaded back into a competition.
func Init(path string) error {
	var err error
	db, err = sql.Open("sqlite3", path)
	if err != nil {
		return err
	}
	// sqlite allows a single writer; serialize archive writes from concurrent
	// sessions through one connection.
	db.SetMaxOpenConns(1)

	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		duration INTEGER NOT NULL,
		frozen BOOLEAN NOT NULL,
		finished_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS standings (
		run_id TEXT NOT NULL,
		rank INTEGER NOT NULL,
		team TEXT NOT NULL,
		solved INTEGER NOT NULL,
		penalty INTEGER NOT NULL,
		PRIMARY KEY(run_id, rank),
		FOREIGN KEY(run_id) REFERENCES runs(id)
	);

	CREATE TABLE IF NOT EXISTS submissions (
		run_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		team TEXT NOT NULL,
		problem TEXT NOT NULL,
		status TEXT NOT NULL,
		minute INTEGER NOT NULL,
		PRIMARY KEY(run_id, seq),
		FOREIGN KEY(run_id) REFERENCES runs(id)
	);
	`

	if _, err = db.Exec(schema); err != nil {
		db.Close()
		db = nil
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Close closes the archive. Closing an archive that was never opened is a
// no-op.
func Close() error {
	if db == nil {
		return nil
	}
	err := db.Close()
	db = nil
	if err != nil {
		return fmt.Errorf("close archive: %w", err)
	}
	return nil
}

func handle() (*sql.DB, error) {
	if db == nil {
		return nil, ErrNotInitialized
	}
	return db, nil
}
