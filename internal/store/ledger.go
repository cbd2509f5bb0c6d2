// Package store provides a SQLite-backed ledger of resolved generations.
//
// The ledger is reporting infrastructure, not the unit of durability: the
// per-session state file owns correctness, the ledger feeds the cross-session
// `sessions` and `summary` views. Every write here is best effort.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Ledger records every successfully resolved generation.
type Ledger struct {
	db *sql.DB
}

// Open opens or creates the ledger database at the given path.
func Open(dbPath string) (*Ledger, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating ledger dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening ledger db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Ledger{db: db}, nil
}

// Close closes the ledger database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Path returns the default ledger location under the cache dir.
func Path(cacheDir string) string {
	return filepath.Join(cacheDir, "ledger.db")
}

// Resolution is one successfully accounted generation.
type Resolution struct {
	GenerationID  string
	SessionID     string
	Model         string
	Provider      string
	Cost          float64
	CacheDiscount float64
	ResolvedAt    time.Time
}

// RecordResolution stores a resolution. Re-recording the same generation id
// replaces the previous row, so replays cannot inflate the rollups.
func (l *Ledger) RecordResolution(r Resolution) error {
	_, err := l.db.Exec(`INSERT OR REPLACE INTO resolutions
		(generation_id, session_id, model, provider, cost, cache_discount, resolved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.GenerationID, r.SessionID, r.Model, r.Provider, r.Cost, r.CacheDiscount,
		r.ResolvedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// SessionRollup aggregates one session's resolved generations.
type SessionRollup struct {
	SessionID     string
	Events        int
	Cost          float64
	CacheDiscount float64
	LastModel     string
	LastAt        time.Time
}

// SessionRollups returns per-session aggregates, most recent first.
func (l *Ledger) SessionRollups() ([]SessionRollup, error) {
	rows, err := l.db.Query(`SELECT
		session_id, COUNT(*), SUM(cost), SUM(cache_discount), MAX(resolved_at)
		FROM resolutions GROUP BY session_id ORDER BY MAX(resolved_at) DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var rollups []SessionRollup
	for rows.Next() {
		var r SessionRollup
		var lastAt string
		if err := rows.Scan(&r.SessionID, &r.Events, &r.Cost, &r.CacheDiscount, &lastAt); err != nil {
			return nil, err
		}
		r.LastAt, _ = time.Parse(time.RFC3339, lastAt)
		rollups = append(rollups, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range rollups {
		var model string
		err := l.db.QueryRow(`SELECT model FROM resolutions
			WHERE session_id = ? ORDER BY resolved_at DESC LIMIT 1`,
			rollups[i].SessionID).Scan(&model)
		if err == nil {
			rollups[i].LastModel = model
		}
	}

	return rollups, nil
}

// ModelRollup aggregates resolved generations per model slug.
type ModelRollup struct {
	Model  string
	Events int
	Cost   float64
}

// ModelRollups returns per-model aggregates, costliest first.
func (l *Ledger) ModelRollups() ([]ModelRollup, error) {
	rows, err := l.db.Query(`SELECT model, COUNT(*), SUM(cost)
		FROM resolutions GROUP BY model ORDER BY SUM(cost) DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var rollups []ModelRollup
	for rows.Next() {
		var r ModelRollup
		if err := rows.Scan(&r.Model, &r.Events, &r.Cost); err != nil {
			return nil, err
		}
		rollups = append(rollups, r)
	}
	return rollups, rows.Err()
}

// Totals returns the all-time event count, cost, and cache discount.
func (l *Ledger) Totals() (events int, cost, discount float64, err error) {
	err = l.db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(cost), 0), COALESCE(SUM(cache_discount), 0)
		FROM resolutions`).Scan(&events, &cost, &discount)
	return events, cost, discount, err
}
