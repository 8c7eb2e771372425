package api

import (
	"fmt"
	"net/http"
)

// NotFoundHandler answers unknown routes with the same error envelope as the handlers.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		RespondJSON(w, http.StatusNotFound, ErrorResponse{Error: "This endpoint does not exist"})
	}
}

func MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		RespondJSON(w, http.StatusMethodNotAllowed, ErrorResponse{
			Error: fmt.Sprintf("Method %s is not allowed on %s", r.Method, r.URL.Path),
		})
	}
}
