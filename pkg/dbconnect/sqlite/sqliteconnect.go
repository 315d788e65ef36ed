package sqlite

import (
	"database/sql"
	"fmt"
	"sync"

	"sellsheet_api/config"
	_ "modernc.org/sqlite"
)

const MemoryPath = ":memory:"

// SQLiteDatabase is the local store used for dry runs and tests.
type SQLiteDatabase struct {
	path string
	db   *sql.DB
	mu   sync.Mutex
}

func NewSQLiteConnector(path string) *SQLiteDatabase {
	if path == "" {
		path = MemoryPath
	}
	return &SQLiteDatabase{path: path}
}

func (s *SQLiteDatabase) Driver() string {
	return config.DriverSQLite
}

func (s *SQLiteDatabase) Connect() (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db, nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", s.path, err)
	}
	// каждое соединение к :memory: видит свою базу
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	s.db = db
	return s.db, nil
}

func (s *SQLiteDatabase) Ping() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return fmt.Errorf("database connection is not established")
	}
	return s.db.Ping()
}

func (s *SQLiteDatabase) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
