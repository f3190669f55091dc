package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractKey(t *testing.T) {
	tests := []struct {
		name      string
		reference string
		want      string
	}{
		{
			name:      "empty reference",
			reference: "",
			want:      "",
		},
		{
			name:      "plain key returned verbatim",
			reference: "portfolio/abc-logo.png",
			want:      "portfolio/abc-logo.png",
		},
		{
			name:      "full https url",
			reference: "https://my-bucket.s3.us-east-1.amazonaws.com/team/images/photo.jpg",
			want:      "team/images/photo.jpg",
		},
		{
			name:      "full http url",
			reference: "http://my-bucket.s3.us-east-1.amazonaws.com/a/b.png",
			want:      "a/b.png",
		},
		{
			name:      "foreign url without marker",
			reference: "https://cdn.example.com/a/b.png",
			want:      "",
		},
		{
			name:      "non-url string without marker",
			reference: "not-a-url-no-marker",
			want:      "not-a-url-no-marker",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractKey(tt.reference))
		})
	}
}

func TestExtractKeyIdempotent(t *testing.T) {
	keys := []string{
		"uploads/file.png",
		"demo-content/videos/clip.mp4",
		"k",
	}
	for _, k := range keys {
		assert.Equal(t, k, ExtractKey(ExtractKey(k)))
	}
}

func TestBuildPublicURLRoundTrip(t *testing.T) {
	keys := []string{
		"portfolio/abc-logo.png",
		"team/images/photo with spaces.jpg",
		"brand-assets/42/archive.zip",
	}
	for _, k := range keys {
		url := BuildPublicURL("my-bucket", "us-east-1", k)
		assert.Equal(t, k, ExtractKey(url))
	}

	assert.Empty(t, BuildPublicURL("my-bucket", "us-east-1", ""))
}

func TestSanitizeFolder(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "uploads"},
		{"///", "uploads"},
		{"demo", "demo"},
		{"/demo/", "demo"},
		{"demo\\content", "demo/content"},
		{"\\demo\\content\\", "demo/content"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFolder(tt.in))
	}
}

func TestNewObjectKey(t *testing.T) {
	key, err := NewObjectKey("demo", "logo.png")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, "demo/"))
	assert.True(t, strings.HasSuffix(key, "-logo.png"))

	// 32 random bytes hex-encoded is 64 characters.
	middle := strings.TrimSuffix(strings.TrimPrefix(key, "demo/"), "-logo.png")
	assert.Len(t, middle, 64)

	other, err := NewObjectKey("demo", "logo.png")
	require.NoError(t, err)
	assert.NotEqual(t, key, other)
}

func TestNewPresignKey(t *testing.T) {
	key, err := NewPresignKey("user-uploads", "my photo.jpg")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, "user-uploads/"))
	assert.True(t, strings.HasSuffix(key, "-my-photo.jpg"))
	assert.NotContains(t, key, " ")

	middle := strings.TrimSuffix(strings.TrimPrefix(key, "user-uploads/"), "-my-photo.jpg")
	assert.Len(t, middle, 24)
}
