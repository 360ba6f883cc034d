// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/gigbook/internal/gig"
)

const (
	bucketUpcoming = "upcoming"
	bucketPast     = "past"
)

// SQLite implements gig.Repository using SQLite.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// LoadSession returns the session's gigs, or an empty store for an unknown
// session. Upcoming and past keep their saved order.
func (s *SQLite) LoadSession(ctx context.Context, sessionID string) (*gig.Store, error) {
	query := `
		SELECT id, name, gig_date, gig_time, income, bucket
		FROM gigs
		WHERE session_id = ?
		ORDER BY bucket, position
	`

	rows, err := s.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying gigs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var upcoming, past []gig.Gig
	for rows.Next() {
		var (
			g      gig.Gig
			bucket string
		)
		if err := rows.Scan(&g.ID, &g.Name, &g.Date, &g.Time, &g.Income, &bucket); err != nil {
			return nil, fmt.Errorf("scanning gig: %w", err)
		}
		switch bucket {
		case bucketPast:
			past = append(past, g)
		default:
			upcoming = append(upcoming, g)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating gigs: %w", err)
	}

	return gig.RestoreStore(upcoming, past), nil
}

// SaveSession replaces the session's gigs with the store's in one transaction.
func (s *SQLite) SaveSession(ctx context.Context, sessionID string, store *gig.Store) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := s.now().UTC().Format(time.RFC3339)
	_, err = tx.ExecContext(ctx, `
		INSERT INTO sessions (id, created_at, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET updated_at = excluded.updated_at
	`, sessionID, now, now)
	if err != nil {
		return fmt.Errorf("upserting session: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM gigs WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("clearing gigs: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO gigs (session_id, id, name, gig_date, gig_time, income, bucket, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	insert := func(bucket string, gigs []gig.Gig) error {
		for i, g := range gigs {
			_, err := stmt.ExecContext(ctx, sessionID, g.ID, g.Name, g.Date, g.Time, g.Income, bucket, i)
			if err != nil {
				return fmt.Errorf("inserting gig %q: %w", g.Name, err)
			}
		}
		return nil
	}
	if err := insert(bucketUpcoming, store.Upcoming()); err != nil {
		return err
	}
	if err := insert(bucketPast, store.Past()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// ListSessions returns all session IDs.
func (s *SQLite) ListSessions(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM sessions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return ids, nil
}

// IdleSessions returns the sessions whose last save is older than cutoff.
func (s *SQLite) IdleSessions(ctx context.Context, cutoff time.Time) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM sessions WHERE updated_at < ? ORDER BY id`,
		cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("querying idle sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return ids, nil
}

// DeleteSession removes a session and its gigs.
func (s *SQLite) DeleteSession(ctx context.Context, sessionID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM gigs WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("deleting gigs: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, sessionID); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}
