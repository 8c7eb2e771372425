package api

import (
	"errors"
	"net/http"

	"github.com/fhuszti/medias-metadata-go/internal/api_context"
	"github.com/fhuszti/medias-metadata-go/internal/logger"
	"github.com/fhuszti/medias-metadata-go/internal/port"
	"github.com/fhuszti/medias-metadata-go/internal/usecase/metadata"
)

type EntitySavedRequest struct {
	Path     string   `json:"path" validate:"required,canonical_path"`
	MediaIDs []string `json:"media_ids" validate:"omitempty,max=1000,dive,media_id"`
	Markup   string   `json:"markup"`
	IsNew    bool     `json:"is_new"`
}

// EntitySavedHandler runs after an entity is created or updated.
func EntitySavedHandler(svc port.EntityLifecycle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entityType, entityID, ok := api_context.EntityFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "entity type and ID are required", nil)
			return
		}

		var req EntitySavedRequest
		if !decodeRequest(w, r, &req) {
			return
		}

		out, err := svc.EntitySaved(r.Context(), port.EntitySavedInput{
			EntityType: entityType,
			EntityID:   entityID,
			Path:       req.Path,
			MediaIDs:   req.MediaIDs,
			Markup:     req.Markup,
			IsNew:      req.IsNew,
		})
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "Could not save entity relations", err)
			return
		}

		RespondJSON(w, http.StatusOK, newReconcileResponse(out))
		logger.Infof(r.Context(), "✅  Saved relations of %s #%d on %s", entityType, entityID, req.Path)
	}
}

// EntityDeletedHandler drops every relation owned by the entity.
func EntityDeletedHandler(svc port.EntityLifecycle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entityType, entityID, ok := api_context.EntityFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "entity type and ID are required", nil)
			return
		}

		if err := svc.EntityDeleted(r.Context(), entityType, entityID); err != nil {
			if errors.Is(err, metadata.ErrEntityIDResolutionFailed) {
				WriteError(w, http.StatusBadRequest, "Could not resolve entity", err)
				return
			}
			WriteError(w, http.StatusInternalServerError, "Failed to delete entity relations", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
		logger.Infof(r.Context(), "✅  Deleted relations of %s #%d", entityType, entityID)
	}
}
