// Package sqlite keeps a catalog of extraction runs and their records.
// The records table carries a uniqueness constraint over the full row,
// so re-running over the same archive cannot duplicate output across
// runs.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/chainsift/pkg/chainsift/store"
)

// Store implements store.Store on a SQLite catalog.
type Store struct {
	db       *sql.DB
	runID    string
	inserted int64
}

// Open opens the catalog with WAL mode enabled, initializes the schema,
// and registers a run row for runID.
func Open(ctx context.Context, path, runID string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at) VALUES (?, ?)`,
		runID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("register run %s: %w", runID, err)
	}

	return &Store{db: db, runID: runID}, nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id          TEXT PRIMARY KEY,
		started_at  TEXT NOT NULL,
		finished_at TEXT,
		records     INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS records (
		company_id     TEXT NOT NULL,
		company_name   TEXT NOT NULL,
		contract_id    TEXT NOT NULL,
		effective_date TEXT NOT NULL,
		sentence       TEXT NOT NULL,
		run_id         TEXT NOT NULL REFERENCES runs(id),
		UNIQUE (company_id, company_name, contract_id, effective_date, sentence)
	);

	CREATE INDEX IF NOT EXISTS idx_records_company ON records(company_id);
	`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// AppendBatch inserts one company's records inside a transaction.
// Rows already present from an earlier run are ignored.
func (s *Store) AppendBatch(ctx context.Context, recs []store.Record) error {
	if len(recs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO records
		(company_id, company_name, contract_id, effective_date, sentence, run_id)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range recs {
		res, err := stmt.ExecContext(ctx,
			r.CompanyID, r.CompanyName, r.ContractID, r.EffectiveDate, r.Sentence, s.runID)
		if err != nil {
			return fmt.Errorf("insert record for %s: %w", r.CompanyID, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			s.inserted += n
		}
	}
	return tx.Commit()
}

// Close stamps the run row with its final count and closes the
// database.
func (s *Store) Close() error {
	_, err := s.db.Exec(
		`UPDATE runs SET finished_at = ?, records = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339), s.inserted, s.runID)
	if cerr := s.db.Close(); err == nil {
		err = cerr
	}
	return err
}

// RunRecords reports how many records a run inserted, for tests and
// reporting.
func (s *Store) RunRecords(ctx context.Context, runID string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM records WHERE run_id = ?`, runID).Scan(&n)
	return n, err
}
