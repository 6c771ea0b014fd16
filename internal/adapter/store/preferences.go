package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// Preferences is a durable key-value store for the session's user
// preferences (unit, theme, last-viewed city). Each write replaces the
// whole value for its key; readers never see a partial write.
type Preferences struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPreferences creates a preference store backed by db.
func NewPreferences(db *DB, logger *slog.Logger) *Preferences {
	return &Preferences{db: db.db, logger: logger}
}

// Get returns the stored value for key and whether it was present.
func (p *Preferences) Get(key string) (string, bool, error) {
	var value string
	err := p.db.QueryRow(`SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get preference %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (p *Preferences) Set(key, value string) error {
	_, err := p.db.Exec(
		`INSERT INTO preferences (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set preference %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (p *Preferences) Delete(key string) error {
	if _, err := p.db.Exec(`DELETE FROM preferences WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete preference %q: %w", key, err)
	}
	return nil
}
