package translation

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store persists translations across runs
type Store interface {
	Lookup(key string) (string, bool, error)
	Save(key, srcTag, tgtTag, translation string) error
}

// SQLiteStore is a Store backed by a SQLite database file
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens or creates the cache database at path
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create cache directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	// Single connection keeps :memory: databases shared and writes serialized
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS translations (
		cache_key   TEXT PRIMARY KEY,
		src_tag     TEXT NOT NULL,
		tgt_tag     TEXT NOT NULL,
		translation TEXT NOT NULL,
		created_at  INTEGER NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to create translations table: %w", err)
	}
	return nil
}

// Lookup returns a stored translation
func (s *SQLiteStore) Lookup(key string) (string, bool, error) {
	var translation string
	err := s.db.QueryRow(`SELECT translation FROM translations WHERE cache_key = ?`, key).Scan(&translation)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup translation: %w", err)
	}
	return translation, true, nil
}

// Save upserts a translation
func (s *SQLiteStore) Save(key, srcTag, tgtTag, translation string) error {
	_, err := s.db.Exec(`INSERT INTO translations (cache_key, src_tag, tgt_tag, translation, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET translation = excluded.translation`,
		key, srcTag, tgtTag, translation, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("save translation: %w", err)
	}
	return nil
}

// Count returns the number of stored translations
func (s *SQLiteStore) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM translations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count translations: %w", err)
	}
	return n, nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
