package storage

import (
	"context"
	"io"
	"time"
)

// ObjectStore defines the low-level operations a storage backend must
// support. Implementations live in the s3 and memory subpackages.
type ObjectStore interface {
	// Put writes an object under the given key.
	Put(ctx context.Context, key string, body io.Reader, contentType string) error

	// PresignGet returns a read-scoped signed URL valid for the given duration.
	PresignGet(ctx context.Context, key string, expires time.Duration) (string, error)

	// PresignPut returns a write-scoped signed URL valid for the given duration.
	PresignPut(ctx context.Context, key, contentType string, expires time.Duration) (string, error)

	// Delete removes an object. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// FileInput describes a file spooled to the local filesystem, waiting to
// be pushed to the object store. TempPath is removed by the gateway on
// every upload path, success or failure.
type FileInput struct {
	TempPath     string
	OriginalName string
	ContentType  string
	Size         int64
}

// UploadResult holds the outcome of a successful upload. Key is the only
// field that must be persisted for later retrieval.
type UploadResult struct {
	Key          string `json:"key"`
	URL          string `json:"url"`
	OriginalName string `json:"original_name"`
	Size         int64  `json:"size"`
	ContentType  string `json:"content_type"`
}
