package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// Favorites is a durable, ordered, size-bounded list of favorite city
// names, most-recently-added first. Every mutation rewrites the whole
// list inside a transaction, so readers never observe a partial write.
type Favorites struct {
	db     *sql.DB
	max    int
	logger *slog.Logger
}

// NewFavorites creates a favorites store capped at max entries.
func NewFavorites(db *DB, max int, logger *slog.Logger) *Favorites {
	return &Favorites{db: db.db, max: max, logger: logger}
}

// List returns the persisted favorites in most-recent-first order.
func (f *Favorites) List() ([]string, error) {
	return loadList(f.db.QueryRow(`SELECT list FROM favorites WHERE id = 1`))
}

// Add prepends name and truncates to the cap. Empty, whitespace-only,
// and already-present names are no-ops.
func (f *Favorites) Add(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	return f.mutate(func(list []string) []string {
		if slices.Contains(list, name) {
			return list
		}
		list = append([]string{name}, list...)
		if len(list) > f.max {
			list = list[:f.max]
		}
		return list
	})
}

// Remove filters out exact matches of name.
func (f *Favorites) Remove(name string) error {
	return f.mutate(func(list []string) []string {
		return slices.DeleteFunc(list, func(s string) bool { return s == name })
	})
}

// Clear empties the list.
func (f *Favorites) Clear() error {
	return f.mutate(func([]string) []string { return nil })
}

// mutate applies fn to the current list and persists the result
// atomically.
func (f *Favorites) mutate(fn func([]string) []string) error {
	tx, err := f.db.Begin()
	if err != nil {
		return fmt.Errorf("begin favorites tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	list, err := loadList(tx.QueryRow(`SELECT list FROM favorites WHERE id = 1`))
	if err != nil {
		return err
	}

	next := fn(list)
	if next == nil {
		next = []string{}
	}

	encoded, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode favorites: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO favorites (id, list) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET list = excluded.list`,
		string(encoded),
	)
	if err != nil {
		return fmt.Errorf("write favorites: %w", err)
	}

	return tx.Commit()
}

func loadList(row *sql.Row) ([]string, error) {
	var raw string
	err := row.Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read favorites: %w", err)
	}

	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("decode favorites: %w", err)
	}
	return list, nil
}
