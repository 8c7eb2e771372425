package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/fhuszti/medias-metadata-go/internal/repository"
	"github.com/fhuszti/medias-metadata-go/internal/validation"
)

var showCmd = &cobra.Command{
	Use:   "show <media_id>",
	Short: "Print the relations and cached metadata of one media ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if !validation.IsMediaID(args[0]) {
		return fmt.Errorf("media ID %q is not valid", args[0])
	}

	_, stores, closeFn, err := openStores(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	return show(ctx, cmd.OutOrStdout(), stores, args[0])
}

func show(ctx context.Context, w io.Writer, stores repository.Stores, mediaID string) error {
	rels, err := stores.Relations.ListByMediaID(ctx, mediaID)
	if err != nil {
		return err
	}
	m, err := stores.Metadata.GetByMediaID(ctx, mediaID)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "media %s\n", mediaID)
	fmt.Fprintf(w, "relations (%d):\n", len(rels))
	for _, r := range rels {
		owner := "-"
		if r.EntityType != nil && r.EntityID != nil {
			owner = fmt.Sprintf("%s #%d", *r.EntityType, *r.EntityID)
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", r.Path, owner, r.Created.Format(time.RFC3339))
	}
	if m == nil {
		fmt.Fprintln(w, "metadata: not cached")
		return nil
	}
	fmt.Fprintf(w, "metadata (updated %s):\n%s\n", m.Updated.Format(time.RFC3339), m.Value)
	return nil
}
