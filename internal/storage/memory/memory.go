package memory

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// objectEntry stores metadata about an uploaded object.
type objectEntry struct {
	Key         string
	ContentType string
	Size        int64
}

// Store is an in-memory object store backend. It keeps metadata only (no
// object bytes) and issues deterministic signed URLs, which makes it useful
// for local development and tests.
type Store struct {
	mu      sync.RWMutex
	objects map[string]*objectEntry
	baseURL string
}

// New creates an in-memory store. Signed URLs are issued under baseURL.
func New(baseURL string) *Store {
	return &Store{
		objects: make(map[string]*objectEntry),
		baseURL: baseURL,
	}
}

// Put records the object's metadata, consuming the body to mirror real
// backend behavior.
func (s *Store) Put(_ context.Context, key string, body io.Reader, contentType string) error {
	n, err := io.Copy(io.Discard, body)
	if err != nil {
		return fmt.Errorf("memory put %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = &objectEntry{Key: key, ContentType: contentType, Size: n}
	return nil
}

// PresignGet returns a deterministic signed URL of the form
// {baseURL}/{key}?ttl={seconds}.
func (s *Store) PresignGet(_ context.Context, key string, expires time.Duration) (string, error) {
	return fmt.Sprintf("%s/%s?ttl=%d", s.baseURL, key, int64(expires.Seconds())), nil
}

// PresignPut returns a deterministic write-scoped signed URL.
func (s *Store) PresignPut(_ context.Context, key, _ string, expires time.Duration) (string, error) {
	return fmt.Sprintf("%s/%s?put=1&ttl=%d", s.baseURL, key, int64(expires.Seconds())), nil
}

// Delete removes the object's metadata. Absent keys are not an error.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// Has reports whether an object was stored under the key.
func (s *Store) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok
}
