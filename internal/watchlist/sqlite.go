package watchlist

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/danijuhaeni22/idx-signal-web/internal/api"
)

// SQLiteStore persists the watchlist to a SQLite database. Position is a
// decreasing sequence so the newest entry sorts first.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite watchlist opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS watchlist (
		ticker   TEXT PRIMARY KEY,
		position INTEGER NOT NULL
	)`)
	return err
}

func (s *SQLiteStore) Add(ticker string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.list()
	if err != nil {
		return err
	}
	next, changed := insert(list, ticker)
	if !changed {
		return nil
	}

	// next[0] is the new ticker; give it a position ahead of all others.
	_, err = s.db.Exec(`INSERT OR IGNORE INTO watchlist (ticker, position)
		VALUES (?, (SELECT COALESCE(MIN(position), 0) - 1 FROM watchlist))`, next[0])
	if err != nil {
		return err
	}

	// Enforce the cap by dropping everything past the newest MaxEntries.
	_, err = s.db.Exec(`DELETE FROM watchlist WHERE ticker IN (
		SELECT ticker FROM watchlist ORDER BY position ASC LIMIT -1 OFFSET ?)`, MaxEntries)
	return err
}

func (s *SQLiteStore) Remove(ticker string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.list()
	if err != nil {
		return err
	}
	if _, changed := drop(list, ticker); !changed {
		return nil
	}
	_, err = s.db.Exec(`DELETE FROM watchlist WHERE ticker = ?`, api.NormalizeTicker(ticker))
	return err
}

func (s *SQLiteStore) List() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list()
}

func (s *SQLiteStore) list() ([]string, error) {
	rows, err := s.db.Query(`SELECT ticker FROM watchlist ORDER BY position ASC LIMIT ?`, MaxEntries)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite watchlist")
	return s.db.Close()
}
