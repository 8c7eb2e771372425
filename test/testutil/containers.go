package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"

	"github.com/fhuszti/medias-metadata-go/internal/logger"
)

const mariaDBRootPassword = "root"

// Container is a disposable service backing the integration suite.
type Container struct {
	// Endpoint is a MariaDB DSN or a Redis host:port, reachable from the tests.
	Endpoint string
	Cleanup  func()
}

// StartMariaDBContainer runs the server the relation and metadata tables are migrated into.
// The DSN enables multiStatements so migrations can run as-is.
func StartMariaDBContainer() (*Container, error) {
	return startContainer("mariadb", &dockertest.RunOptions{
		Repository: "mariadb",
		Tag:        "10.11",
		Env:        []string{"MARIADB_ROOT_PASSWORD=" + mariaDBRootPassword},
	}, func(r *dockertest.Resource) (string, error) {
		dsn := fmt.Sprintf("root:%s@(localhost:%s)/mysql?multiStatements=true", mariaDBRootPassword, r.GetPort("3306/tcp"))
		db, err := sql.Open("mysql", dsn)
		if err != nil {
			return "", err
		}
		defer func() { _ = db.Close() }()
		return dsn, db.Ping()
	})
}

// StartRedisContainer runs the Redis shared by the preload queue and the page invalidator.
func StartRedisContainer() (*Container, error) {
	return startContainer("redis", &dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7",
	}, func(r *dockertest.Resource) (string, error) {
		addr := "localhost:" + r.GetPort("6379/tcp")
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		defer func() { _ = rdb.Close() }()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return addr, rdb.Ping(ctx).Err()
	})
}

func startContainer(name string, opts *dockertest.RunOptions, ready func(*dockertest.Resource) (string, error)) (*Container, error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("could not connect to docker: %w", err)
	}

	resource, err := pool.RunWithOptions(opts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return nil, fmt.Errorf("could not start %s container: %w", name, err)
	}

	var endpoint string
	if err := pool.Retry(func() error {
		e, err := ready(resource)
		if err != nil {
			return err
		}
		endpoint = e
		return nil
	}); err != nil {
		_ = pool.Purge(resource)
		return nil, fmt.Errorf("%s did not become ready: %w", name, err)
	}

	return &Container{
		Endpoint: endpoint,
		Cleanup: func() {
			if err := pool.Purge(resource); err != nil {
				logger.Warnf(context.Background(), "could not purge %s container: %v", name, err)
			}
		},
	}, nil
}
