package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/souravcsewala/ads-ecom-backend/pkg/errors"
)

// stubStore is a scriptable backend for gateway tests.
type stubStore struct {
	mu sync.Mutex

	putErr     error
	presignErr error
	deleteErr  error

	putKeys     []string
	presignGets []time.Duration
	presignPuts []time.Duration
	deleteKeys  []string
}

func (s *stubStore) Put(_ context.Context, key string, body io.Reader, _ string) error {
	if _, err := io.Copy(io.Discard, body); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putKeys = append(s.putKeys, key)
	return s.putErr
}

func (s *stubStore) PresignGet(_ context.Context, key string, expires time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.presignGets = append(s.presignGets, expires)
	if s.presignErr != nil {
		return "", s.presignErr
	}
	return "https://stub-signed/" + key, nil
}

func (s *stubStore) PresignPut(_ context.Context, key, _ string, expires time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.presignPuts = append(s.presignPuts, expires)
	if s.presignErr != nil {
		return "", s.presignErr
	}
	return "https://stub-signed/put/" + key, nil
}

func (s *stubStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteKeys = append(s.deleteKeys, key)
	return s.deleteErr
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// removeCounter tracks how many times each path was removed.
type removeCounter struct {
	mu     sync.Mutex
	counts map[string]int
}

func newRemoveCounter() *removeCounter {
	return &removeCounter{counts: make(map[string]int)}
}

func (r *removeCounter) remove(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[path]++
	return os.Remove(path)
}

func (r *removeCounter) count(path string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[path]
}

func spoolTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestGatewayUploadSuccessCleansUpOnce(t *testing.T) {
	store := &stubStore{}
	g := NewGateway(store, "my-bucket", "us-east-1", testLogger())

	counter := newRemoveCounter()
	g.remove = counter.remove

	path := spoolTempFile(t, "logo.png", "fake image bytes")
	result, err := g.Upload(context.Background(), FileInput{
		TempPath:     path,
		OriginalName: "logo.png",
		ContentType:  "image/png",
		Size:         16,
	}, "demo")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.Key, "demo/"))
	assert.Equal(t, "logo.png", result.OriginalName)
	assert.Equal(t, BuildPublicURL("my-bucket", "us-east-1", result.Key), result.URL)

	assert.Equal(t, 1, counter.count(path))
	assert.NoFileExists(t, path)
}

func TestGatewayUploadFailureCleansUpOnce(t *testing.T) {
	store := &stubStore{putErr: errors.New("connection reset")}
	g := NewGateway(store, "my-bucket", "us-east-1", testLogger())

	counter := newRemoveCounter()
	g.remove = counter.remove

	path := spoolTempFile(t, "logo.png", "fake image bytes")
	_, err := g.Upload(context.Background(), FileInput{
		TempPath:     path,
		OriginalName: "logo.png",
		ContentType:  "image/png",
	}, "demo")
	require.Error(t, err)

	assert.ErrorIs(t, err, apperrors.ErrUploadFailed)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Equal(t, 1, counter.count(path))
}

func TestGatewayUploadSanitizesFolder(t *testing.T) {
	store := &stubStore{}
	g := NewGateway(store, "my-bucket", "us-east-1", testLogger())

	counter := newRemoveCounter()
	g.remove = counter.remove

	path := spoolTempFile(t, "f.png", "x")
	result, err := g.Upload(context.Background(), FileInput{
		TempPath:     path,
		OriginalName: "f.png",
		ContentType:  "image/png",
	}, "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.Key, "uploads/"))
}

func TestGatewayUploadManyAllSucceed(t *testing.T) {
	store := &stubStore{}
	g := NewGateway(store, "my-bucket", "us-east-1", testLogger())

	counter := newRemoveCounter()
	g.remove = counter.remove

	files := []FileInput{
		{TempPath: spoolTempFile(t, "a.png", "a"), OriginalName: "a.png", ContentType: "image/png"},
		{TempPath: spoolTempFile(t, "b.png", "b"), OriginalName: "b.png", ContentType: "image/png"},
		{TempPath: spoolTempFile(t, "c.png", "c"), OriginalName: "c.png", ContentType: "image/png"},
	}

	results, err := g.UploadMany(context.Background(), files, "batch")
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, file := range files {
		assert.True(t, strings.HasPrefix(results[i].Key, "batch/"))
		assert.Equal(t, file.OriginalName, results[i].OriginalName)
		assert.Equal(t, 1, counter.count(file.TempPath))
	}
}

func TestGatewayUploadManyFailureStillCleansUpEveryFile(t *testing.T) {
	store := &stubStore{putErr: errors.New("bucket unavailable")}
	g := NewGateway(store, "my-bucket", "us-east-1", testLogger())

	counter := newRemoveCounter()
	g.remove = counter.remove

	files := []FileInput{
		{TempPath: spoolTempFile(t, "a.png", "a"), OriginalName: "a.png", ContentType: "image/png"},
		{TempPath: spoolTempFile(t, "b.png", "b"), OriginalName: "b.png", ContentType: "image/png"},
	}

	_, err := g.UploadMany(context.Background(), files, "batch")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUploadFailed)

	for _, file := range files {
		assert.Equal(t, 1, counter.count(file.TempPath))
	}
}

func TestGatewaySignedDownloadURL(t *testing.T) {
	t.Run("empty reference skips store", func(t *testing.T) {
		store := &stubStore{}
		g := NewGateway(store, "my-bucket", "us-east-1", testLogger())

		assert.Empty(t, g.SignedDownloadURL(context.Background(), "", 3600))
		assert.Empty(t, store.presignGets)
	})

	t.Run("foreign url skips store", func(t *testing.T) {
		store := &stubStore{}
		g := NewGateway(store, "my-bucket", "us-east-1", testLogger())

		assert.Empty(t, g.SignedDownloadURL(context.Background(), "https://cdn.example.com/x.png", 3600))
		assert.Empty(t, store.presignGets)
	})

	t.Run("signing failure degrades to empty", func(t *testing.T) {
		store := &stubStore{presignErr: errors.New("signer down")}
		g := NewGateway(store, "my-bucket", "us-east-1", testLogger())

		assert.Empty(t, g.SignedDownloadURL(context.Background(), "a/b.png", 3600))
	})

	t.Run("default ttl applied", func(t *testing.T) {
		store := &stubStore{}
		g := NewGateway(store, "my-bucket", "us-east-1", testLogger())

		url := g.SignedDownloadURL(context.Background(), "a/b.png", 0)
		assert.Equal(t, "https://stub-signed/a/b.png", url)
		require.Len(t, store.presignGets, 1)
		assert.Equal(t, time.Duration(DefaultDownloadTTL)*time.Second, store.presignGets[0])
	})
}

func TestGatewaySignedUploadURLClampsTTL(t *testing.T) {
	tests := []struct {
		requested int64
		effective int64
	}{
		{10, 60},
		{300, 300},
		{10000, 3600},
	}

	for _, tt := range tests {
		store := &stubStore{}
		g := NewGateway(store, "my-bucket", "us-east-1", testLogger())

		url, effective, err := g.SignedUploadURL(context.Background(), "uploads/x.png", "image/png", tt.requested)
		require.NoError(t, err)
		assert.NotEmpty(t, url)
		assert.Equal(t, tt.effective, effective)
		require.Len(t, store.presignPuts, 1)
		assert.Equal(t, time.Duration(tt.effective)*time.Second, store.presignPuts[0])
	}
}

func TestGatewaySignedUploadURLDefaultsOmittedTTL(t *testing.T) {
	store := &stubStore{}
	g := NewGateway(store, "my-bucket", "us-east-1", testLogger())

	_, effective, err := g.SignedUploadURL(context.Background(), "uploads/x.png", "image/png", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultUploadTTL, effective)
	require.Len(t, store.presignPuts, 1)
	assert.Equal(t, time.Duration(DefaultUploadTTL)*time.Second, store.presignPuts[0])
}

func TestGatewayDelete(t *testing.T) {
	store := &stubStore{}
	g := NewGateway(store, "my-bucket", "us-east-1", testLogger())

	require.NoError(t, g.Delete(context.Background(), ""))
	assert.Empty(t, store.deleteKeys)

	require.NoError(t, g.Delete(context.Background(), "https://my-bucket.s3.us-east-1.amazonaws.com/a/b.png"))
	assert.Equal(t, []string{"a/b.png"}, store.deleteKeys)
}
