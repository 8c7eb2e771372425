package api

import (
	"errors"
	"net/http"

	"github.com/fhuszti/medias-metadata-go/internal/api_context"
	"github.com/fhuszti/medias-metadata-go/internal/logger"
	"github.com/fhuszti/medias-metadata-go/internal/port"
	"github.com/fhuszti/medias-metadata-go/internal/usecase/metadata"
)

func GetMetadataHandler(renderer port.HTTPRenderer, svc port.MetadataGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.MediaIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "media ID is required", nil)
			return
		}

		raw, etag, err := renderer.RenderMetadata(r.Context(), svc, id)
		if err != nil {
			if errors.Is(err, metadata.ErrMetadataNotFound) {
				WriteError(w, http.StatusNotFound, "Metadata not found", nil)
				return
			}
			WriteError(w, http.StatusInternalServerError, "Could not get metadata", err)
			return
		}

		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "public, max-age=300")
		if match := r.Header.Get("If-None-Match"); match == etag {
			w.WriteHeader(http.StatusNotModified)
			logger.Infof(r.Context(), "✅  Returning cached metadata of media %q", id)
			return
		}

		RespondRawJSON(w, http.StatusOK, raw)
		logger.Infof(r.Context(), "✅  Successfully returned metadata of media %q", id)
	}
}
