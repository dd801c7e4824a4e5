// Package journal keeps a local SQLite record of generation runs and their events.
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	guildevents "github.com/Black-And-White-Club/discord-guild-generator/app/events/guild"
	_ "modernc.org/sqlite"
)

// Run statuses. A run that never reached generation-finished stays incomplete.
const (
	StatusIncomplete = "incomplete"
	StatusFinished   = "finished"
)

const (
	kindStarted  = "guildGenerate"
	kindFinished = "guildGenerated"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id      TEXT PRIMARY KEY,
	guild_id    TEXT NOT NULL,
	reason      TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL,
	started_at  TIMESTAMP NOT NULL,
	finished_at TIMESTAMP
);
CREATE INDEX IF NOT EXISTS runs_guild_started ON runs (guild_id, started_at DESC);

CREATE TABLE IF NOT EXISTS events (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      TEXT NOT NULL,
	kind        TEXT NOT NULL,
	entity_type TEXT NOT NULL DEFAULT '',
	entity_id   TEXT NOT NULL DEFAULT '',
	entity_name TEXT NOT NULL DEFAULT '',
	parent_id   TEXT NOT NULL DEFAULT '',
	occurred_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS events_run ON events (run_id, id);

CREATE TABLE IF NOT EXISTS requests (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	guild_id     TEXT NOT NULL,
	requested_by TEXT NOT NULL,
	layout_path  TEXT NOT NULL DEFAULT '',
	reason       TEXT NOT NULL DEFAULT '',
	requested_at TIMESTAMP NOT NULL
);
`

// Run is one row of history.
type Run struct {
	RunID      string     `json:"run_id"`
	GuildID    string     `json:"guild_id"`
	Reason     string     `json:"reason"`
	Status     string     `json:"status"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Events     int        `json:"events"`
}

// Store is the journal database.
type Store struct {
	db *sql.DB
}

// Open creates or opens the journal at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("journal path cannot be empty")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	// SQLite serializes writers anyway; one connection avoids SQLITE_BUSY between handlers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure journal: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate journal: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores one lifecycle event. generation-started opens the run row and
// generation-finished closes it; every event is appended to the run's log.
func (s *Store) Record(ctx context.Context, e guildevents.GuildGenerationEvent) error {
	if e.RunID == "" {
		return errors.New("event has no run id")
	}
	at := e.OccurredAt.UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin journal transaction: %w", err)
	}
	defer tx.Rollback()

	switch e.Kind {
	case kindStarted:
		_, err = tx.ExecContext(ctx,
			`INSERT INTO runs (run_id, guild_id, reason, status, started_at) VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT(run_id) DO NOTHING`,
			e.RunID, e.GuildID, e.Reason, StatusIncomplete, at)
	case kindFinished:
		_, err = tx.ExecContext(ctx,
			`UPDATE runs SET status = ?, finished_at = ? WHERE run_id = ?`,
			StatusFinished, at, e.RunID)
	}
	if err != nil {
		return fmt.Errorf("failed to update run %s: %w", e.RunID, err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO events (run_id, kind, entity_type, entity_id, entity_name, parent_id, occurred_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.RunID, e.Kind, e.EntityType, e.EntityID, e.EntityName, e.ParentID, at); err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return tx.Commit()
}

// RecordRequest stores an accepted /generate request.
func (s *Store) RecordRequest(ctx context.Context, r guildevents.GuildGenerationRequestedEvent) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO requests (guild_id, requested_by, layout_path, reason, requested_at) VALUES (?, ?, ?, ?, ?)`,
		r.GuildID, r.RequestedBy, r.LayoutPath, r.Reason, r.RequestedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert request: %w", err)
	}
	return nil
}

// Runs lists the most recent runs first. An empty guildID lists every guild.
func (s *Store) Runs(ctx context.Context, guildID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.run_id, r.guild_id, r.reason, r.status, r.started_at, r.finished_at,
		       (SELECT COUNT(*) FROM events e WHERE e.run_id = r.run_id)
		FROM runs r
		WHERE (? = '' OR r.guild_id = ?)
		ORDER BY r.started_at DESC, r.rowid DESC
		LIMIT ?`, guildID, guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run      Run
			finished sql.NullTime
		)
		if err := rows.Scan(&run.RunID, &run.GuildID, &run.Reason, &run.Status, &run.StartedAt, &finished, &run.Events); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if finished.Valid {
			t := finished.Time
			run.FinishedAt = &t
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Events returns a run's event log in emission order.
func (s *Store) Events(ctx context.Context, runID string) ([]guildevents.GuildGenerationEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.kind, e.entity_type, e.entity_id, e.entity_name, e.parent_id, e.occurred_at,
		       COALESCE(r.guild_id, ''), COALESCE(r.reason, '')
		FROM events e LEFT JOIN runs r ON r.run_id = e.run_id
		WHERE e.run_id = ?
		ORDER BY e.id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var out []guildevents.GuildGenerationEvent
	for rows.Next() {
		e := guildevents.GuildGenerationEvent{RunID: runID}
		if err := rows.Scan(&e.Kind, &e.EntityType, &e.EntityID, &e.EntityName, &e.ParentID, &e.OccurredAt, &e.GuildID, &e.Reason); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
