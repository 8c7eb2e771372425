package metadata

import (
	"sort"
	"strings"

	"github.com/fhuszti/medias-metadata-go/internal/model"
)

// dedupeIDs trims, drops blanks and keeps the first occurrence of every ID.
func dedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// staleIDs returns the media IDs related to the path that are no longer present, sorted.
func staleIDs(existing []model.MediaRelation, current []string) []string {
	keep := make(map[string]struct{}, len(current))
	for _, id := range current {
		keep[id] = struct{}{}
	}
	seen := make(map[string]struct{}, len(existing))
	var out []string
	for _, rel := range existing {
		if _, ok := keep[rel.MediaID]; ok {
			continue
		}
		if _, ok := seen[rel.MediaID]; ok {
			continue
		}
		seen[rel.MediaID] = struct{}{}
		out = append(out, rel.MediaID)
	}
	sort.Strings(out)
	return out
}

func relationPaths(rels []model.MediaRelation) []string {
	seen := make(map[string]struct{}, len(rels))
	out := make([]string, 0, len(rels))
	for _, rel := range rels {
		if _, ok := seen[rel.Path]; ok {
			continue
		}
		seen[rel.Path] = struct{}{}
		out = append(out, rel.Path)
	}
	sort.Strings(out)
	return out
}
