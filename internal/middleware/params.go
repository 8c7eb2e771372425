package middleware

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fhuszti/medias-metadata-go/internal/api_context"
	"github.com/fhuszti/medias-metadata-go/internal/handler/api"
	"github.com/fhuszti/medias-metadata-go/internal/validation"
)

var entityTypePattern = regexp.MustCompile(`^[a-z][a-z0-9_]{0,63}$`)

func WithMediaID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, "mediaID")
			if id == "" {
				api.WriteError(w, http.StatusBadRequest, "media ID is required", nil)
				return
			}
			if !validation.IsMediaID(id) {
				api.WriteError(w, http.StatusBadRequest, fmt.Sprintf("media ID %q is not valid", id), nil)
				return
			}

			// stash it in context and call the real handler
			ctx := context.WithValue(r.Context(), api_context.MediaIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithEntity resolves the {entityType}/{entityID} URL params.
func WithEntity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			typ := chi.URLParam(r, "entityType")
			if !entityTypePattern.MatchString(typ) {
				api.WriteError(w, http.StatusBadRequest, fmt.Sprintf("entity type %q is not valid", typ), nil)
				return
			}
			rawID := chi.URLParam(r, "entityID")
			id, err := strconv.ParseInt(rawID, 10, 64)
			if err != nil || id <= 0 {
				api.WriteError(w, http.StatusBadRequest, fmt.Sprintf("entity ID %q is not valid", rawID), nil)
				return
			}

			ctx := context.WithValue(r.Context(), api_context.EntityTypeKey, typ)
			ctx = context.WithValue(ctx, api_context.EntityIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
