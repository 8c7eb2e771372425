package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fhuszti/medias-metadata-go/internal/config"
	"github.com/fhuszti/medias-metadata-go/internal/db"
	"github.com/fhuszti/medias-metadata-go/internal/repository"
)

var rootCmd = &cobra.Command{
	Use:   "metadatactl",
	Short: "Maintenance commands for the media metadata cache",
	Long:  `Applies migrations, refreshes outdated metadata and prunes rows no page references anymore.`,

	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openStores loads the configuration and connects to the configured store.
// The returned func closes the connection.
func openStores(ctx context.Context) (*config.Settings, repository.Stores, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, repository.Stores{}, nil, fmt.Errorf("configuration error: %w", err)
	}

	database, err := db.Open(cfg.StoreDriver, cfg.MariaDB(), cfg.SQLite())
	if err != nil {
		return nil, repository.Stores{}, nil, fmt.Errorf("failed to connect to db: %w", err)
	}
	closeFn := func() { _ = database.Close() }

	stores, err := repository.NewStores(ctx, cfg.StoreDriver, database.DB)
	if err != nil {
		closeFn()
		return nil, repository.Stores{}, nil, err
	}
	return cfg, stores, closeFn, nil
}
