package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fhuszti/medias-metadata-go/internal/logger"
	"github.com/fhuszti/medias-metadata-go/internal/task"
	metadataSvc "github.com/fhuszti/medias-metadata-go/internal/usecase/metadata"
)

var refreshMaxAge time.Duration

var refreshBacklogCmd = &cobra.Command{
	Use:   "refresh-backlog",
	Short: "Queue a preload for every referenced media with missing or outdated metadata",
	RunE:  runRefreshBacklog,
}

func init() {
	rootCmd.AddCommand(refreshBacklogCmd)
	refreshBacklogCmd.Flags().DurationVar(&refreshMaxAge, "max-age", 0, "Override REFRESH_MAX_AGE (e.g. 12h)")
}

func runRefreshBacklog(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, stores, closeFn, err := openStores(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	maxAge := cfg.RefreshMaxAge
	if refreshMaxAge > 0 {
		maxAge = refreshMaxAge
	}

	dispatcher := task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword, cfg.FetchTimeout+30*time.Second)
	defer func() { _ = dispatcher.Close() }()

	svc := metadataSvc.NewBacklogRefresher(stores.Relations, dispatcher, maxAge, time.Now)
	n, err := svc.RefreshBacklog(ctx)
	if err != nil {
		return fmt.Errorf("backlog refresh failed: %w", err)
	}
	logger.Infof(ctx, "✅  Queued %d new preload(s)", n)
	return nil
}
