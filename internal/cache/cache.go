// Package cache stores extraction results keyed by source content hash, so
// repeated runs and watch-mode regenerations only reparse files whose
// content actually changed. Lookups go through an in-memory tier first and
// fall back to a sqlite database on disk. The cache is strictly an
// optimization: every failure path degrades to direct extraction.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/maypok86/otter"

	"contextmap/internal/parsers"
)

const memoryCapacity = 4096

// Entry is one cached extraction outcome. ParseError is "" for files that
// parsed cleanly.
type Entry struct {
	Exports    parsers.Exports `json:"exports"`
	ParseError string          `json:"parse_error,omitempty"`
}

// Cache is a two-tier extraction cache. Not safe for concurrent use; the
// generator drives it from a single goroutine.
type Cache struct {
	mem otter.Cache[string, []byte]
	db  *sql.DB
}

// Key derives the cache key for one source text. The dialect is part of
// the key because the same bytes parse differently under each grammar.
func Key(content []byte, dialect parsers.Dialect) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:]) + ":" + string(dialect)
}

// Open creates or opens the cache database at location, creating parent
// directories as needed.
func Open(location string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(location), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", location)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS extractions (
			key        TEXT PRIMARY KEY,
			payload    BLOB NOT NULL,
			created_at TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}

	mem, err := otter.MustBuilder[string, []byte](memoryCapacity).Build()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to build memory cache: %w", err)
	}

	return &Cache{mem: mem, db: db}, nil
}

// Get returns the cached entry for key, promoting disk hits into the
// memory tier.
func (c *Cache) Get(key string) (*Entry, bool) {
	payload, ok := c.mem.Get(key)
	if !ok {
		row := c.db.QueryRow(`SELECT payload FROM extractions WHERE key = ?`, key)
		if err := row.Scan(&payload); err != nil {
			return nil, false
		}
		c.mem.Set(key, payload)
	}

	entry := &Entry{}
	if err := json.Unmarshal(payload, entry); err != nil {
		return nil, false
	}
	return entry, true
}

// Put stores an entry in both tiers. Storage errors are swallowed; the
// result has already been computed and the run must not fail over caching.
func (c *Cache) Put(key string, entry *Entry) {
	payload, err := json.Marshal(entry)
	if err != nil {
		return
	}

	c.mem.Set(key, payload)
	c.db.Exec(
		`INSERT OR REPLACE INTO extractions (key, payload, created_at) VALUES (?, ?, ?)`,
		key, payload, time.Now().UTC().Format(time.RFC3339),
	)
}

// Close releases both tiers.
func (c *Cache) Close() error {
	c.mem.Close()
	return c.db.Close()
}
