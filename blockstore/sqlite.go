package blockstore

import (
	"database/sql"
	"fmt"

	"github.com/ipfs/go-cid"

	_ "modernc.org/sqlite"
)

// SQLite is a content-addressed store backed by a SQLite database, for hosts
// that need actor state to survive the process.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) a SQLite-backed store at path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS blocks (
		cid TEXT PRIMARY KEY,
		data BLOB NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating table: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Put stores data under its derived content address. Re-inserting existing
// content is a no-op: same bytes, same address, same row.
func (s *SQLite) Put(mhCode uint64, mhSize int, codec uint64, data []byte) (cid.Cid, error) {
	c, err := addressOf(mhCode, mhSize, codec, data)
	if err != nil {
		return cid.Undef, err
	}

	if _, err := s.db.Exec(
		"INSERT OR REPLACE INTO blocks (cid, data) VALUES (?, ?)",
		c.String(), data,
	); err != nil {
		return cid.Undef, fmt.Errorf("storing block: %w", err)
	}
	return c, nil
}

// Get returns the block stored under c, if any.
func (s *SQLite) Get(c cid.Cid) ([]byte, bool, error) {
	var data []byte
	err := s.db.QueryRow("SELECT data FROM blocks WHERE cid = ?", c.String()).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("querying block: %w", err)
	}
	return data, true, nil
}

// Has reports whether a block exists under c.
func (s *SQLite) Has(c cid.Cid) (bool, error) {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM blocks WHERE cid = ?", c.String()).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("querying block: %w", err)
	}
	return true, nil
}
