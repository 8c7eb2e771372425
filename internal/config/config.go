package config

import (
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/fhuszti/medias-metadata-go/internal/db"
	"github.com/fhuszti/medias-metadata-go/internal/validation"
)

const (
	StoreMariaDB = db.DriverMariaDB
	StoreSQLite  = db.DriverSQLite

	InvalidationRedis = "redis"
	InvalidationHTTP  = "http"
	InvalidationNone  = "none"
)

type Settings struct {
	StoreDriver     string `validate:"oneof=mariadb sqlite"`
	MariaDBDSN      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	SQLitePath      string

	ServerPort  int `validate:"gt=0,lte=65535"`
	MetricsPort int `validate:"gte=0,lte=65535"`

	RedisAddr     string `validate:"required"`
	RedisPassword string

	// PEM encoded RS256 key; the API runs without auth when empty.
	JWTPublicKey string

	MetadataAPIBaseURL string `validate:"required,url"`
	MetadataAPIParams  url.Values
	MetadataAPIToken   string
	FetchTimeout       time.Duration `validate:"gt=0"`
	FetchRateLimit     float64       `validate:"gt=0"`
	FetchRateBurst     int           `validate:"gt=0"`
	FetchMaxBytes      int64         `validate:"gt=0"`

	WorkerConcurrency int `validate:"gt=0"`

	InvalidationMode      string `validate:"oneof=redis http none"`
	InvalidationChannel   string
	InvalidationKeyPrefix string
	InvalidationURL       string `validate:"omitempty,url"`
	InvalidationToken     string

	RefreshMaxAge      time.Duration `validate:"gt=0"`
	MarkupMediaPattern string
}

func setDefaults() {
	viper.SetDefault("STORE_DRIVER", StoreMariaDB)
	viper.SetDefault("SQLITE_PATH", "medias-metadata.db")
	viper.SetDefault("METRICS_PORT", 9090)
	viper.SetDefault("FETCH_TIMEOUT", 10)
	viper.SetDefault("FETCH_RATE_LIMIT", 10.0)
	viper.SetDefault("FETCH_RATE_BURST", 20)
	viper.SetDefault("FETCH_MAX_BYTES", 2*1024*1024)
	viper.SetDefault("WORKER_CONCURRENCY", 10)
	viper.SetDefault("INVALIDATION_MODE", InvalidationRedis)
	viper.SetDefault("INVALIDATION_CHANNEL", "page_cache:invalidate")
	viper.SetDefault("INVALIDATION_KEY_PREFIX", "page_cache:")
	viper.SetDefault("REFRESH_MAX_AGE", 24*60*60)
}

func Load() (*Settings, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found; proceeding with OS environment variables")
	}

	viper.AutomaticEnv()
	setDefaults()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	driver := strings.ToLower(viper.GetString("STORE_DRIVER"))
	if driver == StoreMariaDB {
		for _, key := range []string{"MARIADB_DSN", "MARIADB_MAX_OPEN_CONN", "MARIADB_MAX_IDLE_CONNS", "MARIADB_CONN_MAX_LIFETIME"} {
			if !viper.IsSet(key) {
				return nil, fmt.Errorf("%s is required", key)
			}
		}
	}
	for _, key := range []string{"SERVER_PORT", "REDIS_ADDR", "METADATA_API_BASE_URL"} {
		if !viper.IsSet(key) {
			return nil, fmt.Errorf("%s is required", key)
		}
	}

	if strings.ToLower(viper.GetString("INVALIDATION_MODE")) == InvalidationHTTP && !viper.IsSet("INVALIDATION_URL") {
		return nil, fmt.Errorf("INVALIDATION_URL is required")
	}

	params, err := url.ParseQuery(viper.GetString("METADATA_API_PARAMS"))
	if err != nil {
		return nil, fmt.Errorf("METADATA_API_PARAMS is not a valid query string: %w", err)
	}

	s := &Settings{
		StoreDriver:     driver,
		MariaDBDSN:      viper.GetString("MARIADB_DSN"),
		MaxOpenConns:    viper.GetInt("MARIADB_MAX_OPEN_CONN"),
		MaxIdleConns:    viper.GetInt("MARIADB_MAX_IDLE_CONNS"),
		ConnMaxLifetime: time.Duration(viper.GetInt("MARIADB_CONN_MAX_LIFETIME")) * time.Second,
		SQLitePath:      viper.GetString("SQLITE_PATH"),

		ServerPort:  viper.GetInt("SERVER_PORT"),
		MetricsPort: viper.GetInt("METRICS_PORT"),

		RedisAddr:     viper.GetString("REDIS_ADDR"),
		RedisPassword: viper.GetString("REDIS_PASSWORD"),

		JWTPublicKey: strings.ReplaceAll(viper.GetString("JWT_PUBLIC_KEY"), `\n`, "\n"),

		MetadataAPIBaseURL: viper.GetString("METADATA_API_BASE_URL"),
		MetadataAPIParams:  params,
		MetadataAPIToken:   viper.GetString("METADATA_API_TOKEN"),
		FetchTimeout:       time.Duration(viper.GetInt("FETCH_TIMEOUT")) * time.Second,
		FetchRateLimit:     viper.GetFloat64("FETCH_RATE_LIMIT"),
		FetchRateBurst:     viper.GetInt("FETCH_RATE_BURST"),
		FetchMaxBytes:      viper.GetInt64("FETCH_MAX_BYTES"),

		WorkerConcurrency: viper.GetInt("WORKER_CONCURRENCY"),

		InvalidationMode:      strings.ToLower(viper.GetString("INVALIDATION_MODE")),
		InvalidationChannel:   viper.GetString("INVALIDATION_CHANNEL"),
		InvalidationKeyPrefix: viper.GetString("INVALIDATION_KEY_PREFIX"),
		InvalidationURL:       viper.GetString("INVALIDATION_URL"),
		InvalidationToken:     viper.GetString("INVALIDATION_TOKEN"),

		RefreshMaxAge:      time.Duration(viper.GetInt("REFRESH_MAX_AGE")) * time.Second,
		MarkupMediaPattern: viper.GetString("MARKUP_MEDIA_PATTERN"),
	}

	if err := validation.ValidateStruct(s); err != nil {
		js, _ := validation.ErrorsToJson(err)
		return nil, fmt.Errorf("invalid configuration: %s", js)
	}
	return s, nil
}

func (s *Settings) MariaDB() db.MariaDbConfig {
	return db.MariaDbConfig{
		DSN:             s.MariaDBDSN,
		MaxOpenConns:    s.MaxOpenConns,
		MaxIdleConns:    s.MaxIdleConns,
		ConnMaxLifetime: s.ConnMaxLifetime,
	}
}

func (s *Settings) SQLite() db.SQLiteConfig {
	return db.SQLiteConfig{Path: s.SQLitePath}
}
