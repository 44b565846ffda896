// Package db persists assessment runs in a local sqlite database so past
// analyses can be listed and re-exported. Each run stores its full input
// (matrix, mapped pixels, pixel area) alongside the computed report, both
// as JSON documents; the inputs are sufficient to reproduce the report
// exactly since the engine is deterministic.
package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

type DB struct {
	*sql.DB
}

// NewDB opens (creating if needed) the assessment database at path and
// ensures the schema exists.
func NewDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS assessments (
			id                TEXT PRIMARY KEY,
			label             TEXT,
			classes           INTEGER NOT NULL,
			pixel_area        DOUBLE NOT NULL,
			total_pixels      BIGINT NOT NULL,
			overall_accuracy  DOUBLE NOT NULL,
			input_json        TEXT NOT NULL,
			report_json       TEXT NOT NULL,
			created_at        TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_assessments_created_at
			ON assessments(created_at);
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &DB{db}, nil
}
