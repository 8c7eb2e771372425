package invalidator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fhuszti/medias-metadata-go/internal/port"
)

// HTTPInvalidator posts the paths as a Message to a host endpoint.
type HTTPInvalidator struct {
	url    string
	token  string
	client *http.Client
}

var _ port.Invalidator = (*HTTPInvalidator)(nil)

func NewHTTP(url, token string, client *http.Client) *HTTPInvalidator {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &HTTPInvalidator{url: url, token: token, client: client}
}

func (h *HTTPInvalidator) Invalidate(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	body, err := json.Marshal(Message{Paths: paths})
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("invalidation request failed: %w", err)
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("invalidation endpoint answered HTTP %d", resp.StatusCode)
	}
	return nil
}
