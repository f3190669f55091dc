package domain

import "time"

// Demo content type constants.
const (
	DemoContentTypeImage = "image"
	DemoContentTypeVideo = "video"
)

// DemoContent represents a sample ad shown to prospective customers. The
// *Key fields hold object store keys; the *URL fields are legacy fallbacks
// for rows created before key-based storage.
type DemoContent struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	ContentType  string    `json:"content_type"`
	Category     string    `json:"category,omitempty"`
	Description  string    `json:"description,omitempty"`
	ImageKey     string    `json:"image_key,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	VideoKey     string    `json:"video_key,omitempty"`
	VideoURL     string    `json:"video_url,omitempty"`
	ThumbnailKey string    `json:"thumbnail_key,omitempty"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidDemoContentTypes returns all valid demo content types.
func ValidDemoContentTypes() []string {
	return []string{DemoContentTypeImage, DemoContentTypeVideo}
}

// IsValidDemoContentType checks if a content type string is valid.
func IsValidDemoContentType(contentType string) bool {
	for _, t := range ValidDemoContentTypes() {
		if t == contentType {
			return true
		}
	}
	return false
}
