// Package sqlite provides a SQLite-backed TTL cache for raw catalog search
// responses, keyed by (country, query). Stored results are pre-admission, so
// a cache hit never changes filtering behavior.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // driver registration

	"github.com/ewilliams-labs/moodquiz/internal/core/domain"
	"github.com/ewilliams-labs/moodquiz/internal/core/ports"
)

const defaultTTL = 15 * time.Minute

// Cache implements the search-cache port on SQLite.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// compile-time interface assertion
var _ ports.SearchCache = (*Cache)(nil)

// NewCache opens (or creates) the cache database and runs the schema
// migration. A non-positive ttl falls back to the default.
func NewCache(storagePath string, ttl time.Duration) (*Cache, error) {
	if ttl <= 0 {
		ttl = defaultTTL
	}

	db, err := sql.Open("sqlite3", storagePath+"?_journal=WAL&_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlite cache: open: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("sqlite cache: ping: %w", err)
	}

	cache := &Cache{db: db, ttl: ttl, now: time.Now}
	if err := cache.migrate(); err != nil {
		return nil, fmt.Errorf("sqlite cache: migration failed: %w", err)
	}
	return cache, nil
}

// Close releases the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

func (c *Cache) migrate() error {
	_, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS searches (
			country    TEXT NOT NULL,
			query      TEXT NOT NULL,
			payload    TEXT NOT NULL,
			fetched_at INTEGER NOT NULL,
			PRIMARY KEY (country, query)
		)
	`)
	return err
}

// Get returns the cached results for (country, query) when present and
// fresh. Expired or missing entries report ok=false without error.
func (c *Cache) Get(ctx context.Context, country, query string) ([]domain.Candidate, bool, error) {
	row := c.db.QueryRowContext(ctx,
		"SELECT payload, fetched_at FROM searches WHERE country = ? AND query = ?",
		country, query,
	)

	var payload string
	var fetchedAt int64
	if err := row.Scan(&payload, &fetchedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("sqlite cache: read: %w", err)
	}

	if c.now().Sub(time.Unix(fetchedAt, 0)) > c.ttl {
		return nil, false, nil
	}

	var results []domain.Candidate
	if err := json.Unmarshal([]byte(payload), &results); err != nil {
		return nil, false, fmt.Errorf("sqlite cache: decode payload: %w", err)
	}
	return results, true, nil
}

// Put upserts the raw results for (country, query).
func (c *Cache) Put(ctx context.Context, country, query string, results []domain.Candidate) error {
	payload, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("sqlite cache: encode payload: %w", err)
	}

	_, err = c.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO searches (country, query, payload, fetched_at) VALUES (?, ?, ?, ?)",
		country, query, string(payload), c.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("sqlite cache: write: %w", err)
	}
	return nil
}

// Purge removes expired rows. The background worker calls this periodically
// so the file does not grow without bound.
func (c *Cache) Purge(ctx context.Context) (int64, error) {
	cutoff := c.now().Add(-c.ttl).Unix()
	res, err := c.db.ExecContext(ctx, "DELETE FROM searches WHERE fetched_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("sqlite cache: purge: %w", err)
	}
	return res.RowsAffected()
}
