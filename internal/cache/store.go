// Package cache implements the persistent scan-result cache for Traycer.
//
// It uses SQLite to store serialized per-file analysis results, keyed by
// file identity (absolute path + modification time). The store is
// size-bounded: when the total payload size crosses the configured ceiling,
// the least-recently-accessed entries are evicted in a single batch down to
// a low-water mark. A small in-process LRU keeps hot payloads in memory so
// repeated hits within one server process skip the payload read.
package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// ErrInvalidConfig reports a configuration the store refuses to start with.
// This is the only error class that aborts engine construction.
var ErrInvalidConfig = errors.New("cache: invalid config")

// ─── Config ──────────────────────────────────────────────────────────────────

// Config holds cache store configuration.
type Config struct {
	// Path is the location of the SQLite store file.
	Path string `json:"path"`
	// MaxBytes is the hard ceiling on the sum of entry payload sizes.
	MaxBytes int64 `json:"max_bytes"`
	// LowWaterBytes is the size the store is trimmed down to when a write
	// pushes the total past MaxBytes. Must be below MaxBytes.
	LowWaterBytes int64 `json:"low_water_bytes"`
	// HotEntries caps the in-process payload LRU. Zero uses the default.
	HotEntries int `json:"hot_entries"`
}

// DefaultConfig returns the default cache configuration: a cache.db file
// in the working directory with a 100MB ceiling.
func DefaultConfig() Config {
	return Config{
		Path:          "cache.db",
		MaxBytes:      100 * 1024 * 1024,
		LowWaterBytes: 90 * 1024 * 1024,
		HotEntries:    1024,
	}
}

func (c Config) validate() error {
	if c.Path == "" {
		return fmt.Errorf("%w: empty store path", ErrInvalidConfig)
	}
	if c.MaxBytes <= 0 {
		return fmt.Errorf("%w: max bytes must be positive, got %d", ErrInvalidConfig, c.MaxBytes)
	}
	if c.LowWaterBytes <= 0 || c.LowWaterBytes >= c.MaxBytes {
		return fmt.Errorf("%w: low-water mark %d must be between 0 and max bytes %d",
			ErrInvalidConfig, c.LowWaterBytes, c.MaxBytes)
	}
	if c.HotEntries < 0 {
		return fmt.Errorf("%w: hot entries must not be negative, got %d", ErrInvalidConfig, c.HotEntries)
	}
	return nil
}

// ─── Store ───────────────────────────────────────────────────────────────────

// Store is the persistent LRU cache backed by SQLite.
type Store struct {
	db  *sql.DB
	cfg Config
	hot *lru.Cache[string, []byte]

	// mu serializes writes and access-time bumps. SQLite is a single-writer
	// store; funneling writers here keeps concurrent Sets from contending on
	// the driver's busy handler.
	mu sync.Mutex

	// lastTick guarantees strictly increasing access timestamps even when
	// two operations land in the same nanosecond, so LRU ordering always
	// reflects call order.
	lastTick int64
}

// New opens (or creates) the store at cfg.Path and runs migrations.
// An unreadable or malformed store file is discarded and recreated empty;
// corruption never propagates to the caller.
func New(cfg Config) (*Store, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.HotEntries == 0 {
		cfg.HotEntries = DefaultConfig().HotEntries
	}

	db, err := open(cfg.Path)
	if err != nil {
		// Malformed store: reset to empty rather than failing the engine.
		_ = os.Remove(cfg.Path)
		db, err = open(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("cache: open store: %w", err)
		}
	}

	hot, err := lru.New[string, []byte](cfg.HotEntries)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cache: hot layer: %w", err)
	}

	return &Store{db: db, cfg: cfg, hot: hot}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}

	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, err
	}

	// synchronous=FULL: a Set must be durable before it returns.
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = FULL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("pragma %q: %w", p, err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS entries (
			key           TEXT PRIMARY KEY,
			payload       BLOB    NOT NULL,
			size          INTEGER NOT NULL,
			last_accessed INTEGER NOT NULL,
			created_at    INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_entries_last_accessed ON entries(last_accessed);
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration: %w", err)
	}

	return db, nil
}

// nowNano returns a strictly increasing timestamp. Callers must hold mu.
func (s *Store) nowNano() int64 {
	now := time.Now().UnixNano()
	if now <= s.lastTick {
		now = s.lastTick + 1
	}
	s.lastTick = now
	return now
}

// ─── Get / Set ───────────────────────────────────────────────────────────────

// Get looks up a payload by exact key. On a hit the entry's last-accessed
// timestamp is bumped — that bump is the LRU signal. Storage errors are
// reported as a miss: the cache is never a correctness dependency.
func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`UPDATE entries SET last_accessed = ? WHERE key = ?`, s.nowNano(), key)
	if err != nil {
		return nil, false
	}
	if n, err := res.RowsAffected(); err != nil || n == 0 {
		return nil, false
	}

	if payload, ok := s.hot.Get(key); ok {
		return payload, true
	}

	var payload []byte
	if err := s.db.QueryRow(`SELECT payload FROM entries WHERE key = ?`, key).Scan(&payload); err != nil {
		return nil, false
	}
	s.hot.Add(key, payload)
	return payload, true
}

// Set inserts or overwrites the entry for key, then enforces the size
// ceiling: if the total payload size exceeds MaxBytes, the least-recently
// accessed entries are deleted in one batch until the store is at or below
// LowWaterBytes. Insert and eviction commit atomically.
func (s *Store) Set(key string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowNano()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("cache: begin set: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(
		`INSERT OR REPLACE INTO entries (key, payload, size, last_accessed, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		key, payload, int64(len(payload)), now, now,
	); err != nil {
		return fmt.Errorf("cache: insert %q: %w", key, err)
	}

	evicted, err := evictTx(tx, s.cfg.MaxBytes, s.cfg.LowWaterBytes)
	if err != nil {
		return fmt.Errorf("cache: evict: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("cache: commit set: %w", err)
	}

	s.hot.Add(key, payload)
	for _, k := range evicted {
		if k != key {
			s.hot.Remove(k)
		}
	}
	return nil
}

// evictTx trims the store to lowWater when the total size exceeds maxBytes.
// Victims are chosen strictly ascending by last_accessed, ties broken by
// insertion order (rowid). Returns the evicted keys.
func evictTx(tx *sql.Tx, maxBytes, lowWater int64) ([]string, error) {
	var total int64
	if err := tx.QueryRow(`SELECT COALESCE(SUM(size), 0) FROM entries`).Scan(&total); err != nil {
		return nil, err
	}
	if total <= maxBytes {
		return nil, nil
	}

	rows, err := tx.Query(`SELECT key, size FROM entries ORDER BY last_accessed ASC, rowid ASC`)
	if err != nil {
		return nil, err
	}

	var victims []string
	for rows.Next() && total > lowWater {
		var key string
		var size int64
		if err := rows.Scan(&key, &size); err != nil {
			_ = rows.Close()
			return nil, err
		}
		victims = append(victims, key)
		total -= size
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(victims) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(victims))
	args := make([]any, len(victims))
	for i, k := range victims {
		args[i] = k
	}
	query := fmt.Sprintf(`DELETE FROM entries WHERE key IN (%s)`, placeholders[:len(placeholders)-1])
	if _, err := tx.Exec(query, args...); err != nil {
		return nil, err
	}
	return victims, nil
}

// ─── Maintenance ─────────────────────────────────────────────────────────────

// Stats reports the resident entry count and total payload size.
func (s *Store) Stats() (entries int, totalBytes int64, err error) {
	row := s.db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(size), 0) FROM entries`)
	if err := row.Scan(&entries, &totalBytes); err != nil {
		return 0, 0, fmt.Errorf("cache: stats: %w", err)
	}
	return entries, totalBytes, nil
}

// Clear removes every entry from the store and the hot layer.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM entries`); err != nil {
		return fmt.Errorf("cache: clear: %w", err)
	}
	s.hot.Purge()
	return nil
}

// MaxBytes reports the configured size ceiling.
func (s *Store) MaxBytes() int64 { return s.cfg.MaxBytes }

// Path reports the store file location.
func (s *Store) Path() string { return s.cfg.Path }
