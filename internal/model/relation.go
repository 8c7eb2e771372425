package model

import "time"

// MediaRelation records that a media ID appears on a canonical path.
type MediaRelation struct {
	MediaID    string    `json:"media_id"`
	Path       string    `json:"path"`
	EntityType *string   `json:"entity_type,omitempty"`
	EntityID   *int64    `json:"entity_id,omitempty"`
	Created    time.Time `json:"created"`
}
