package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	// Switch to a temp directory to avoid loading a real .env
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("could not get working directory: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("could not chdir to temp dir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(origDir); err != nil {
			t.Fatalf("could not chdir back to original dir: %v", err)
		}
	})
}

func requiredEnv() map[string]string {
	return map[string]string{
		"MARIADB_DSN":               "user:pass@tcp(localhost:3306)/db",
		"MARIADB_MAX_OPEN_CONN":     "10",
		"MARIADB_MAX_IDLE_CONNS":    "5",
		"MARIADB_CONN_MAX_LIFETIME": "30",
		"SERVER_PORT":               "8080",
		"REDIS_ADDR":                "localhost:6379",
		"METADATA_API_BASE_URL":     "https://api.example.com/v2",
	}
}

func TestLoad_Success(t *testing.T) {
	chdirTemp(t)

	reqs := requiredEnv()
	for k, v := range reqs {
		t.Setenv(k, v)
	}
	t.Setenv("METADATA_API_PARAMS", "partner_id=42&fields=title")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.StoreDriver != StoreMariaDB {
		t.Errorf("StoreDriver: expected %q, got %q", StoreMariaDB, cfg.StoreDriver)
	}
	if cfg.MariaDBDSN != reqs["MARIADB_DSN"] {
		t.Errorf("MariaDBDSN: expected %q, got %q", reqs["MARIADB_DSN"], cfg.MariaDBDSN)
	}
	if cfg.MaxOpenConns != 10 {
		t.Errorf("MaxOpenConns: expected %d, got %d", 10, cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime != 30*time.Second {
		t.Errorf("ConnMaxLifetime: expected %v, got %v", 30*time.Second, cfg.ConnMaxLifetime)
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort: expected %d, got %d", 8080, cfg.ServerPort)
	}
	if cfg.MetadataAPIParams.Get("partner_id") != "42" {
		t.Errorf("MetadataAPIParams: unexpected %v", cfg.MetadataAPIParams)
	}

	// defaults
	if cfg.FetchTimeout != 10*time.Second {
		t.Errorf("FetchTimeout: expected 10s, got %v", cfg.FetchTimeout)
	}
	if cfg.WorkerConcurrency != 10 {
		t.Errorf("WorkerConcurrency: expected 10, got %d", cfg.WorkerConcurrency)
	}
	if cfg.InvalidationMode != InvalidationRedis {
		t.Errorf("InvalidationMode: expected %q, got %q", InvalidationRedis, cfg.InvalidationMode)
	}
	if cfg.RefreshMaxAge != 24*time.Hour {
		t.Errorf("RefreshMaxAge: expected 24h, got %v", cfg.RefreshMaxAge)
	}

	mc := cfg.MariaDB()
	if mc.DSN != reqs["MARIADB_DSN"] || mc.MaxIdleConns != 5 || mc.ConnMaxLifetime != 30*time.Second {
		t.Errorf("MariaDB(): unexpected %+v", mc)
	}
	if cfg.SQLite().Path != "medias-metadata.db" {
		t.Errorf("SQLite(): expected default path, got %q", cfg.SQLite().Path)
	}
}

func TestLoad_SQLiteSkipsMariaDBKeys(t *testing.T) {
	chdirTemp(t)

	for k, v := range requiredEnv() {
		if strings.HasPrefix(k, "MARIADB_") {
			continue
		}
		t.Setenv(k, v)
	}
	for _, k := range []string{"MARIADB_DSN", "MARIADB_MAX_OPEN_CONN", "MARIADB_MAX_IDLE_CONNS", "MARIADB_CONN_MAX_LIFETIME"} {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/meta.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.StoreDriver != StoreSQLite || cfg.SQLitePath != "/tmp/meta.db" {
		t.Errorf("unexpected store settings %q %q", cfg.StoreDriver, cfg.SQLitePath)
	}
}

func TestLoad_MissingRequiredVars(t *testing.T) {
	for missing := range requiredEnv() {
		t.Run(missing, func(t *testing.T) {
			chdirTemp(t)

			// Set all except the missing key
			for k, v := range requiredEnv() {
				if k == missing {
					t.Setenv(k, "")
					if err := os.Unsetenv(k); err != nil {
						t.Fatalf("could not unset key %s in env: %v", k, err)
					}
				} else {
					t.Setenv(k, v)
				}
			}

			cfg, err := Load()
			if err == nil {
				t.Fatalf("expected error for missing %s, got nil", missing)
			}
			if want := missing + " is required"; err.Error() != want {
				t.Errorf("error = %q; want %q", err.Error(), want)
			}
			if cfg != nil {
				t.Errorf("expected cfg nil on error, got %#v", cfg)
			}
		})
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"STORE_DRIVER":          "postgres",
		"INVALIDATION_MODE":     "carrier-pigeon",
		"METADATA_API_BASE_URL": "not a url",
		"WORKER_CONCURRENCY":    "0",
		"METADATA_API_PARAMS":   "%zz",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			chdirTemp(t)
			for k, v := range requiredEnv() {
				t.Setenv(k, v)
			}
			t.Setenv(key, val)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", key, val)
			}
		})
	}
}

func TestLoad_HTTPInvalidationRequiresURL(t *testing.T) {
	chdirTemp(t)
	for k, v := range requiredEnv() {
		t.Setenv(k, v)
	}
	t.Setenv("INVALIDATION_MODE", "http")
	t.Setenv("INVALIDATION_URL", "")
	_ = os.Unsetenv("INVALIDATION_URL")

	_, err := Load()
	if err == nil || err.Error() != "INVALIDATION_URL is required" {
		t.Fatalf("expected INVALIDATION_URL is required, got %v", err)
	}
}
