package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fhuszti/medias-metadata-go/internal/config"
	"github.com/fhuszti/medias-metadata-go/internal/db"
	"github.com/fhuszti/medias-metadata-go/internal/logger"
	"github.com/fhuszti/medias-metadata-go/internal/migration"
	"github.com/fhuszti/medias-metadata-go/internal/repository/sqlite"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	if cfg.StoreDriver == config.StoreSQLite {
		database, err := db.NewSQLite(cfg.SQLitePath)
		if err != nil {
			return fmt.Errorf("failed to connect to db: %w", err)
		}
		defer func() { _ = database.Close() }()

		if err := sqlite.ApplySchema(ctx, database.DB); err != nil {
			return err
		}
		logger.Info(ctx, "✅  SQLite schema applied successfully")
		return nil
	}

	mc := cfg.MariaDB()
	mc.DSN = withMultiStatements(mc.DSN)
	database, err := db.Open(db.DriverMariaDB, mc, db.SQLiteConfig{})
	if err != nil {
		return fmt.Errorf("failed to connect to db: %w", err)
	}
	defer func() { _ = database.Close() }()

	if err := migration.MigrateUp(ctx, database.DB); err != nil {
		return fmt.Errorf("migration up failed: %w", err)
	}
	logger.Info(ctx, "✅  Migrations applied successfully")
	return nil
}

func withMultiStatements(dsn string) string {
	if strings.Contains(dsn, "multiStatements=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&multiStatements=true"
	}
	return dsn + "?multiStatements=true"
}
