package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	apperrors "github.com/souravcsewala/ads-ecom-backend/pkg/errors"
)

// TTL bounds and default for write-scoped presigned URLs, and the default
// TTL for read-scoped ones, all in seconds.
const (
	MinUploadTTL       int64 = 60
	MaxUploadTTL       int64 = 3600
	DefaultUploadTTL   int64 = 300
	DefaultDownloadTTL int64 = 3600
)

// ClampTTL bounds a requested upload TTL to [MinUploadTTL, MaxUploadTTL].
func ClampTTL(ttlSeconds int64) int64 {
	if ttlSeconds < MinUploadTTL {
		return MinUploadTTL
	}
	if ttlSeconds > MaxUploadTTL {
		return MaxUploadTTL
	}
	return ttlSeconds
}

// Gateway is the only component that talks to the object store. It owns
// key generation, reference resolution, temp-file cleanup and the
// soft-failure policy for the read path.
type Gateway struct {
	store  ObjectStore
	bucket string
	region string
	logger *slog.Logger
	remove func(string) error
}

// NewGateway constructs a gateway over the given backend.
func NewGateway(store ObjectStore, bucket, region string, logger *slog.Logger) *Gateway {
	return &Gateway{
		store:  store,
		bucket: bucket,
		region: region,
		logger: logger,
		remove: os.Remove,
	}
}

// PublicURL returns the permanent bucket URL for a key.
func (g *Gateway) PublicURL(key string) string {
	return BuildPublicURL(g.bucket, g.region, key)
}

// Upload pushes one spooled file to the store under a freshly generated
// key. The temp file is removed exactly once whether the upload succeeds
// or fails. Transport failures surface as an upload error carrying the
// underlying message.
func (g *Gateway) Upload(ctx context.Context, file FileInput, folder string) (*UploadResult, error) {
	defer g.cleanup(ctx, file.TempPath)

	key, err := NewObjectKey(SanitizeFolder(folder), file.OriginalName)
	if err != nil {
		return nil, apperrors.UploadFailed(err)
	}

	f, err := os.Open(file.TempPath)
	if err != nil {
		return nil, apperrors.UploadFailed(fmt.Errorf("open spooled file: %w", err))
	}
	defer f.Close()

	if err := g.store.Put(ctx, key, f, file.ContentType); err != nil {
		return nil, apperrors.UploadFailed(err)
	}

	return &UploadResult{
		Key:          key,
		URL:          g.PublicURL(key),
		OriginalName: file.OriginalName,
		Size:         file.Size,
		ContentType:  file.ContentType,
	}, nil
}

// UploadMany uploads all files concurrently. If any upload fails the whole
// operation fails with the individual errors joined, but every file's temp
// copy is still cleaned up by its own Upload call.
func (g *Gateway) UploadMany(ctx context.Context, files []FileInput, folder string) ([]*UploadResult, error) {
	results := make([]*UploadResult, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func(i int, file FileInput) {
			defer wg.Done()
			results[i], errs[i] = g.Upload(ctx, file, folder)
		}(i, file)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, apperrors.UploadFailed(err)
	}
	return results, nil
}

// SignedDownloadURL resolves a stored reference and returns a read-scoped
// signed URL valid for ttlSeconds (DefaultDownloadTTL when non-positive).
// An empty resolved key returns empty without touching the store. Signing
// failures are logged and degrade to empty; this method never fails, and
// callers must treat empty as "no media" or "temporarily unavailable."
func (g *Gateway) SignedDownloadURL(ctx context.Context, reference string, ttlSeconds int64) string {
	key := ExtractKey(reference)
	if key == "" {
		return ""
	}
	if ttlSeconds <= 0 {
		ttlSeconds = DefaultDownloadTTL
	}

	url, err := g.store.PresignGet(ctx, key, time.Duration(ttlSeconds)*time.Second)
	if err != nil {
		g.logger.WarnContext(ctx, "failed to sign download url",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return ""
	}
	return url
}

// SignedUploadURL returns a write-scoped signed URL for direct
// client-to-store upload. A non-positive TTL falls back to
// DefaultUploadTTL; explicit values are clamped to
// [MinUploadTTL, MaxUploadTTL].
func (g *Gateway) SignedUploadURL(ctx context.Context, key, contentType string, ttlSeconds int64) (string, int64, error) {
	if ttlSeconds <= 0 {
		ttlSeconds = DefaultUploadTTL
	}
	effective := ClampTTL(ttlSeconds)
	url, err := g.store.PresignPut(ctx, key, contentType, time.Duration(effective)*time.Second)
	if err != nil {
		return "", 0, apperrors.UploadFailed(err)
	}
	return url, effective, nil
}

// Delete resolves the reference and removes the object. Empty references
// and already-absent keys are no-ops.
func (g *Gateway) Delete(ctx context.Context, reference string) error {
	key := ExtractKey(reference)
	if key == "" {
		return nil
	}
	return g.store.Delete(ctx, key)
}

// cleanup removes a spooled temp file. Runs on every upload exit path.
func (g *Gateway) cleanup(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := g.remove(path); err != nil && !os.IsNotExist(err) {
		g.logger.WarnContext(ctx, "failed to remove temp file",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
	}
}
