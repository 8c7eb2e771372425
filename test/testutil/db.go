package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
)

// NewMetadataDB creates an empty schema on the TEST_DB_DSN server for a single test.
// The schema is dropped when the test ends, so tests never see each other's relations.
func NewMetadataDB(t testing.TB) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Fatal("TEST_DB_DSN env-var not set")
	}
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		t.Fatalf("parse DSN %q: %v", dsn, err)
	}

	schema := fmt.Sprintf("metadata_%d", time.Now().UnixNano())
	cfg.DBName = ""
	server, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		t.Fatalf("open server connection: %v", err)
	}
	if _, err := server.Exec("CREATE DATABASE " + schema); err != nil {
		_ = server.Close()
		t.Fatalf("create schema %s: %v", schema, err)
	}

	cfg.DBName = schema
	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		_, _ = server.Exec("DROP DATABASE " + schema)
		_ = server.Close()
		t.Fatalf("open schema %s: %v", schema, err)
	}

	t.Cleanup(func() {
		_ = db.Close()
		if _, err := server.Exec("DROP DATABASE " + schema); err != nil {
			t.Logf("drop schema %s: %v", schema, err)
		}
		_ = server.Close()
	})
	return db
}
