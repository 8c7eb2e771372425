package metadata

import "errors"

var (
	ErrStoreWriteFailed         = errors.New("metadata: store write failed")
	ErrDownloadFailed           = errors.New("metadata: download failed")
	ErrDecodeFailed             = errors.New("metadata: decode failed")
	ErrEntityIDResolutionFailed = errors.New("metadata: entity id could not be resolved")
	ErrMetadataNotFound         = errors.New("metadata: not found")
)
