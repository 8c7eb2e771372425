package discovery

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/fhuszti/medias-metadata-go/internal/logger"
	"github.com/fhuszti/medias-metadata-go/internal/port"
	"github.com/fhuszti/medias-metadata-go/internal/validation"
)

// DefaultMarkupPattern matches embeds such as <div data-media-id="0_abc123">.
const DefaultMarkupPattern = `data-media-id="([^"]+)"`

// Registry invokes its discoverers in registration order and unions their results.
type Registry struct {
	discoverers []port.Discoverer
}

var _ port.Discoverer = (*Registry)(nil)

func NewRegistry(ds ...port.Discoverer) *Registry {
	return &Registry{discoverers: ds}
}

func (r *Registry) Register(d port.Discoverer) {
	r.discoverers = append(r.discoverers, d)
}

// RegisterMediaIDs returns the de-duplicated union of every discoverer's media IDs,
// in first-seen order. IDs that are not valid media IDs are logged and dropped.
// Any discoverer failure aborts the whole discovery so callers never reconcile a partial set.
func (r *Registry) RegisterMediaIDs(ctx context.Context, in port.DiscoveryInput) ([]string, error) {
	seen := map[string]struct{}{}
	var out []string
	for i, d := range r.discoverers {
		ids, err := d.RegisterMediaIDs(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("discoverer #%d failed for path %q: %w", i, in.Path, err)
		}
		for _, id := range ids {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			if !validation.IsMediaID(id) {
				logger.Warnf(ctx, "dropping invalid media ID %q discovered on path %q", id, in.Path)
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out, nil
}

// Func adapts a plain function to port.Discoverer.
type Func func(ctx context.Context, in port.DiscoveryInput) ([]string, error)

func (f Func) RegisterMediaIDs(ctx context.Context, in port.DiscoveryInput) ([]string, error) {
	return f(ctx, in)
}

// Reported returns the media IDs the host already resolved for the path.
func Reported() port.Discoverer {
	return Func(func(_ context.Context, in port.DiscoveryInput) ([]string, error) {
		return in.MediaIDs, nil
	})
}

// MarkupDiscoverer extracts media IDs from the rendered markup of the path.
type MarkupDiscoverer struct {
	re *regexp.Regexp
}

var _ port.Discoverer = (*MarkupDiscoverer)(nil)

// NewMarkupDiscoverer compiles pattern, which must hold exactly one capture group.
// An empty pattern falls back to DefaultMarkupPattern.
func NewMarkupDiscoverer(pattern string) (*MarkupDiscoverer, error) {
	if pattern == "" {
		pattern = DefaultMarkupPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid markup media pattern: %w", err)
	}
	if re.NumSubexp() != 1 {
		return nil, fmt.Errorf("markup media pattern must have exactly one capture group, got %d", re.NumSubexp())
	}
	return &MarkupDiscoverer{re: re}, nil
}

func (d *MarkupDiscoverer) RegisterMediaIDs(_ context.Context, in port.DiscoveryInput) ([]string, error) {
	if in.Markup == "" {
		return nil, nil
	}
	matches := d.re.FindAllStringSubmatch(in.Markup, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out, nil
}
