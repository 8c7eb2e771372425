package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fhuszti/medias-metadata-go/internal/logger"
	metadataSvc "github.com/fhuszti/medias-metadata-go/internal/usecase/metadata"
)

var pruneOrphansCmd = &cobra.Command{
	Use:   "prune-orphans",
	Short: "Delete metadata rows no relation references",
	RunE:  runPruneOrphans,
}

func init() {
	rootCmd.AddCommand(pruneOrphansCmd)
}

func runPruneOrphans(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	_, stores, closeFn, err := openStores(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	n, err := metadataSvc.NewOrphanPruner(stores.Metadata).PruneOrphans(ctx)
	if err != nil {
		return fmt.Errorf("prune failed: %w", err)
	}
	logger.Infof(ctx, "✅  Pruned %d orphaned row(s)", n)
	return nil
}
