// SPDX-License-Identifier: Apache-2.0

package requestcache

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/LukeTonin/finance/internal/utils"
)

// sqliteBackend stores responses in a single-table sqlite database at
// the cache path.
type sqliteBackend struct {
	db *sql.DB
}

func newSQLiteBackend(path string) (*sqliteBackend, error) {
	if err := utils.MakeDir(filepath.Dir(path)); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("error opening the cache database: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS responses (key TEXT PRIMARY KEY, data BLOB NOT NULL)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("error initialising the cache database: %w", err)
	}

	return &sqliteBackend{db: db}, nil
}

func (s *sqliteBackend) Get(key string) ([]byte, bool) {
	var data []byte
	if err := s.db.QueryRow(`SELECT data FROM responses WHERE key = ?`, key).Scan(&data); err != nil {
		return nil, false
	}
	return data, true
}

func (s *sqliteBackend) Set(key string, data []byte) {
	s.db.Exec(`INSERT INTO responses (key, data) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET data = excluded.data`, key, data)
}

func (s *sqliteBackend) Delete(key string) {
	s.db.Exec(`DELETE FROM responses WHERE key = ?`, key)
}

// Close releases the underlying database handle.
func (s *sqliteBackend) Close() error {
	return s.db.Close()
}
