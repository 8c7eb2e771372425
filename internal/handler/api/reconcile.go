package api

import (
	"encoding/json"
	"net/http"

	"github.com/fhuszti/medias-metadata-go/internal/logger"
	"github.com/fhuszti/medias-metadata-go/internal/port"
)

type ReconcileRequest struct {
	Path       string   `json:"path" validate:"required,canonical_path"`
	EntityType *string  `json:"entity_type" validate:"omitempty,min=1,max=64"`
	EntityID   *int64   `json:"entity_id" validate:"omitempty,gt=0"`
	MediaIDs   []string `json:"media_ids" validate:"omitempty,max=1000,dive,media_id"`
	Markup     string   `json:"markup"`
}

// ReconcileResponse carries the cached metadata of the path's media; media IDs listed in
// Queued have no cached value yet.
type ReconcileResponse struct {
	Metadata map[string]json.RawMessage `json:"metadata"`
	Queued   []string                   `json:"queued"`
}

func newReconcileResponse(out port.ReconcileOutput) ReconcileResponse {
	resp := ReconcileResponse{
		Metadata: make(map[string]json.RawMessage, len(out.Metadata)),
		Queued:   out.Queued,
	}
	for id, m := range out.Metadata {
		if m != nil && len(m.Value) > 0 {
			resp.Metadata[id] = m.Value
		}
	}
	if resp.Queued == nil {
		resp.Queued = []string{}
	}
	return resp
}

// ReconcileHandler is called when a path is viewed: it registers the media IDs found on it
// and returns whatever metadata is already cached.
func ReconcileHandler(svc port.PathRegistrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ReconcileRequest
		if !decodeRequest(w, r, &req) {
			return
		}

		out, err := svc.RegisterPath(r.Context(), port.DiscoveryInput{
			Path:       req.Path,
			EntityType: req.EntityType,
			EntityID:   req.EntityID,
			MediaIDs:   req.MediaIDs,
			Markup:     req.Markup,
		})
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "Could not reconcile path", err)
			return
		}

		w.Header().Set("Cache-Control", "no-store")
		RespondJSON(w, http.StatusOK, newReconcileResponse(out))
		logger.Infof(r.Context(), "✅  Reconciled path %s (%d cached, %d queued)", req.Path, len(out.Metadata), len(out.Queued))
	}
}
