package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// MetadataAPI is a fake media API answering GET /media/{id} with a small JSON document.
type MetadataAPI struct {
	*httptest.Server

	mu    sync.Mutex
	calls map[string]int
	// Failing media IDs answer 500.
	Failing map[string]bool
}

func StartMetadataAPI() *MetadataAPI {
	api := &MetadataAPI{calls: map[string]int{}, Failing: map[string]bool{}}
	api.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/media/")

		api.mu.Lock()
		api.calls[id]++
		failing := api.Failing[id]
		api.mu.Unlock()

		if failing {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"id":%q,"title":"Media %s"}`, id, id)
	}))
	return api
}

// Calls returns how many times the media ID was fetched.
func (a *MetadataAPI) Calls(id string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls[id]
}
