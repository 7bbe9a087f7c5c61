package store

import (
	"database/sql"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLStore is the SQLite-backed Store implementation.
type SQLStore struct {
	DB *sql.DB
}

func NewSQLStore(dataSourceName string) (*SQLStore, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	// A single connection keeps transactions serialized and avoids
	// SQLITE_BUSY under concurrent bookings.
	db.SetMaxOpenConns(1)

	return &SQLStore{DB: db}, nil
}

func (s *SQLStore) InitSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'user',
		instagram TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS time_slots (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		time TEXT NOT NULL,
		service TEXT NOT NULL,
		is_available INTEGER NOT NULL DEFAULT 1,
		is_booked INTEGER NOT NULL DEFAULT 0,
		booking_id TEXT,
		created_at DATETIME NOT NULL,
		UNIQUE(date, time, service)
	);

	CREATE TABLE IF NOT EXISTS bookings (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		customer_name TEXT NOT NULL,
		customer_email TEXT NOT NULL,
		customer_phone TEXT NOT NULL DEFAULT '',
		service TEXT NOT NULL,
		date TEXT NOT NULL,
		time TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS reviews (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		booking_id TEXT NOT NULL UNIQUE,
		customer_name TEXT NOT NULL,
		rating INTEGER NOT NULL,
		comment TEXT NOT NULL DEFAULT '',
		service TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at DATETIME NOT NULL,
		approved_at DATETIME
	);

	CREATE TABLE IF NOT EXISTS media (
		id TEXT PRIMARY KEY,
		filename TEXT NOT NULL UNIQUE,
		original_name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT 'general',
		media_type TEXT NOT NULL,
		url TEXT NOT NULL,
		uploaded_at DATETIME NOT NULL
	);
	`
	_, err := s.DB.Exec(query)
	return err
}

func (s *SQLStore) Close() error {
	return s.DB.Close()
}

// isUniqueViolation detects SQLite unique-constraint failures so callers
// can report them as ErrConflict.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
