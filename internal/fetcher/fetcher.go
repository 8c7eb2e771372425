package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/fhuszti/medias-metadata-go/internal/port"
	"github.com/fhuszti/medias-metadata-go/internal/usecase/metadata"
)

// Config holds configuration for the metadata API client.
type Config struct {
	BaseURL   string
	Params    url.Values
	Token     string
	Timeout   time.Duration
	RateLimit rate.Limit
	RateBurst int
	MaxBytes  int64
	UserAgent string
}

// DefaultConfig returns the production defaults, BaseURL aside.
func DefaultConfig() Config {
	return Config{
		Timeout:   10 * time.Second,
		RateLimit: rate.Limit(10),
		RateBurst: 20,
		MaxBytes:  2 * 1024 * 1024,
		UserAgent: "medias-metadata/1.0",
	}
}

// HTTPFetcher makes a single GET per media ID against the metadata API.
type HTTPFetcher struct {
	cfg     Config
	client  *http.Client
	limiter *rate.Limiter
}

// compile-time check: *HTTPFetcher must satisfy port.MetadataFetcher
var _ port.MetadataFetcher = (*HTTPFetcher)(nil)

func New(cfg Config, client *http.Client) *HTTPFetcher {
	if client == nil {
		client = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	d := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = d.Timeout
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = d.RateLimit
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = d.RateBurst
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = d.MaxBytes
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = d.UserAgent
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &HTTPFetcher{
		cfg:     cfg,
		client:  client,
		limiter: rate.NewLimiter(cfg.RateLimit, cfg.RateBurst),
	}
}

// Fetch returns the raw JSON document describing the media.
// Transport failures and non-2xx answers wrap metadata.ErrDownloadFailed,
// bodies that are not JSON wrap metadata.ErrDecodeFailed.
func (f *HTTPFetcher) Fetch(ctx context.Context, mediaID string) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", metadata.ErrDownloadFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint(mediaID), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", metadata.ErrDownloadFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	if f.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+f.cfg.Token)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", metadata.ErrDownloadFailed, err)
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: media %q: HTTP %d", metadata.ErrDownloadFailed, mediaID, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", metadata.ErrDownloadFailed, err)
	}
	if int64(len(data)) > f.cfg.MaxBytes {
		return nil, fmt.Errorf("%w: media %q: body exceeds %d bytes", metadata.ErrDecodeFailed, mediaID, f.cfg.MaxBytes)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: media %q: body is not valid JSON", metadata.ErrDecodeFailed, mediaID)
	}

	return json.RawMessage(data), nil
}

func (f *HTTPFetcher) endpoint(mediaID string) string {
	q := url.Values{}
	for k, vs := range f.cfg.Params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("format", "json")
	return f.cfg.BaseURL + "/media/" + url.PathEscape(mediaID) + "?" + q.Encode()
}
