package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

const pingTimeout = 5 * time.Second

// Database is the pool behind the relation and metadata stores, MariaDB or SQLite.
type Database struct {
	*sql.DB
}

// New opens the MariaDB pool configured by cfg and checks the server answers.
func New(cfg MariaDbConfig) (*Database, error) {
	pool, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, err
	}

	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return verify(pool)
}

// verify pings pool and closes it when the store is unreachable.
func verify(pool *sql.DB) (*Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := pool.PingContext(ctx); err != nil {
		if cErr := pool.Close(); cErr != nil {
			return nil, fmt.Errorf("store unreachable: %w (close: %v)", err, cErr)
		}
		return nil, fmt.Errorf("store unreachable: %w", err)
	}
	return &Database{pool}, nil
}
