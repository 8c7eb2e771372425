package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// NewSQLite opens a single-connection SQLite pool at path.
// Use ":memory:" for a throwaway database.
func NewSQLite(path string) (*Database, error) {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// one writer at a time, and keeps ":memory:" bound to a single database
	db.SetMaxOpenConns(1)

	return verify(db)
}
