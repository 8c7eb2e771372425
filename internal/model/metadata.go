package model

import (
	"encoding/json"
	"time"
)

// Metadata is the cached document returned by the external media API for one media ID.
// Value is kept verbatim.
type Metadata struct {
	MediaID string          `json:"media_id"`
	Value   json.RawMessage `json:"value"`
	Created time.Time       `json:"created"`
	Updated time.Time       `json:"updated"`
}

// SatisfiesRequest reports whether the cached row was refreshed at or after requestedAt (unix seconds).
func (m *Metadata) SatisfiesRequest(requestedAt int64) bool {
	return m != nil && m.Updated.Unix() >= requestedAt
}

// PreloadItem asks for up-to-date metadata of one media ID.
type PreloadItem struct {
	MediaID     string `json:"media_id"`
	RequestedAt int64  `json:"requested_at"`
}
