package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS sessions (
			id         TEXT PRIMARY KEY,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS gigs (
			session_id TEXT NOT NULL REFERENCES sessions(id),
			id         TEXT NOT NULL,
			name       TEXT NOT NULL DEFAULT '',
			gig_date   TEXT NOT NULL,
			gig_time   TEXT NOT NULL,
			income     TEXT NOT NULL DEFAULT '',
			bucket     TEXT NOT NULL CHECK(bucket IN ('upcoming', 'past')),
			position   INTEGER NOT NULL,
			PRIMARY KEY (session_id, id)
		);

		CREATE INDEX IF NOT EXISTS idx_gigs_session ON gigs(session_id, bucket, position);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating gig tables: %w", err)
	}

	return nil
}
