package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souravcsewala/ads-ecom-backend/internal/storage"
	apperrors "github.com/souravcsewala/ads-ecom-backend/pkg/errors"
)

func newTestUploadService() (*UploadService, *storage.Gateway) {
	gateway, _ := newTestGateway()
	return NewUploadService(gateway, newTestLogger()), gateway
}

func TestUploadSingle_RejectsUnsupportedType(t *testing.T) {
	svc, _ := newTestUploadService()

	_, err := svc.UploadSingle(context.Background(), storage.FileInput{
		TempPath:     "/tmp/unused",
		OriginalName: "malware.exe",
		ContentType:  "application/x-msdownload",
		Size:         100,
	}, "uploads")

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestUploadSingle_RejectsOversizedFile(t *testing.T) {
	svc, _ := newTestUploadService()

	_, err := svc.UploadSingle(context.Background(), storage.FileInput{
		TempPath:     "/tmp/unused",
		OriginalName: "huge.mp4",
		ContentType:  "video/mp4",
		Size:         MaxUploadSize + 1,
	}, "uploads")

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestUploadSingle_Success(t *testing.T) {
	svc, _ := newTestUploadService()

	result, err := svc.UploadSingle(context.Background(), storage.FileInput{
		TempPath:     spoolFile(t, "banner.png", "png-bytes"),
		OriginalName: "banner.png",
		ContentType:  "image/png",
		Size:         9,
	}, "uploads")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.Key, "uploads/"))
	assert.True(t, strings.HasSuffix(result.Key, "-banner.png"))
}

func TestUploadBatch_OneBadFileRejectsAll(t *testing.T) {
	svc, _ := newTestUploadService()

	files := []storage.FileInput{
		{TempPath: spoolFile(t, "a.png", "x"), OriginalName: "a.png", ContentType: "image/png", Size: 1},
		{TempPath: "/tmp/unused", OriginalName: "b.pdf", ContentType: "application/pdf", Size: 1},
	}

	_, err := svc.UploadBatch(context.Background(), files, "uploads")

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestUploadDemoContent_ImageSizeLimit(t *testing.T) {
	svc, _ := newTestUploadService()

	_, err := svc.UploadDemoContent(context.Background(), storage.FileInput{
		TempPath:     "/tmp/unused",
		OriginalName: "demo.png",
		ContentType:  "image/png",
		Size:         MaxDemoImageSize + 1,
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestUploadDemoContent_VideoGetsLargerLimit(t *testing.T) {
	svc, _ := newTestUploadService()

	result, err := svc.UploadDemoContent(context.Background(), storage.FileInput{
		TempPath:     spoolFile(t, "demo.mp4", "mp4-bytes"),
		OriginalName: "demo.mp4",
		ContentType:  "video/mp4",
		Size:         MaxDemoImageSize + 1, // over the image limit, fine for video
	})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.Key, "demo-content/videos/"))
}

func TestUploadBrandAssets_AcceptsZipUnderUserFolder(t *testing.T) {
	svc, _ := newTestUploadService()

	results, err := svc.UploadBrandAssets(context.Background(), []storage.FileInput{
		{TempPath: spoolFile(t, "kit.zip", "zip-bytes"), OriginalName: "kit.zip", ContentType: "application/zip", Size: 9},
	}, "u-1")

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, strings.HasPrefix(results[0].Key, "brand-assets/u-1/"))
}

func TestPresign_ClampsExpiryAndReturnsKey(t *testing.T) {
	svc, gateway := newTestUploadService()

	result, err := svc.Presign(context.Background(), PresignInput{
		FileName:  "new logo.png",
		FileType:  "image/png",
		Folder:    "uploads",
		ExpiresIn: 10, // below the minimum, clamped up
	})

	require.NoError(t, err)
	assert.Equal(t, int64(storage.MinUploadTTL), result.ExpiresIn)
	assert.True(t, strings.HasPrefix(result.Key, "uploads/"))
	assert.NotContains(t, result.Key, " ")
	assert.Contains(t, result.UploadURL, "put=1")
	assert.Equal(t, gateway.PublicURL(result.Key), result.FileURL)
}

func TestPresign_DefaultsOmittedExpiry(t *testing.T) {
	svc, _ := newTestUploadService()

	result, err := svc.Presign(context.Background(), PresignInput{
		FileName: "logo.png",
		FileType: "image/png",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(storage.DefaultUploadTTL), result.ExpiresIn)
}

func TestPresign_SanitizesFolder(t *testing.T) {
	svc, _ := newTestUploadService()

	tests := []struct {
		folder string
		prefix string
	}{
		{"", "uploads/"},
		{"\\demo\\", "demo/"},
		{"/brand-assets/", "brand-assets/"},
	}

	for _, tt := range tests {
		result, err := svc.Presign(context.Background(), PresignInput{
			FileName: "logo.png",
			FileType: "image/png",
			Folder:   tt.folder,
		})

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(result.Key, tt.prefix), "folder %q produced key %q", tt.folder, result.Key)
		assert.NotContains(t, result.Key, "\\")
	}
}

func TestPresign_RequiresFileName(t *testing.T) {
	svc, _ := newTestUploadService()

	_, err := svc.Presign(context.Background(), PresignInput{FileType: "image/png"})

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
