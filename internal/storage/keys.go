package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// publicHostMarker separates the bucket host from the object key in a
// public S3 URL.
const publicHostMarker = ".amazonaws.com/"

// DefaultFolder is used when a caller-supplied folder sanitizes to empty.
const DefaultFolder = "uploads"

// ExtractKey normalizes a stored media reference into a canonical object
// key. An empty reference yields an empty key. A full HTTP(S) URL yields
// everything after the bucket host marker, or empty when the marker is
// absent (foreign or malformed URL). Anything else is already a key and is
// returned verbatim. It never fails; an empty result means "no media."
func ExtractKey(reference string) string {
	if reference == "" {
		return ""
	}
	if strings.HasPrefix(reference, "http://") || strings.HasPrefix(reference, "https://") {
		idx := strings.Index(reference, publicHostMarker)
		if idx < 0 {
			return ""
		}
		return reference[idx+len(publicHostMarker):]
	}
	return reference
}

// BuildPublicURL returns the permanent bucket URL for a key, or empty for
// an empty key. The URL is non-expiring and not necessarily public-readable;
// it is kept for backward compatibility and debugging, never for serving.
func BuildPublicURL(bucket, region, key string) string {
	if key == "" {
		return ""
	}
	return fmt.Sprintf("https://%s.s3.%s%s%s", bucket, region, publicHostMarker, key)
}

// SanitizeFolder normalizes a caller-supplied folder: backslashes become
// forward slashes, leading and trailing slashes are stripped, and an empty
// result falls back to DefaultFolder.
func SanitizeFolder(folder string) string {
	folder = strings.ReplaceAll(folder, "\\", "/")
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return DefaultFolder
	}
	return folder
}

// NewObjectKey generates a collision-resistant key for an uploaded file as
// {folder}/{hex(32 random bytes)}-{originalName}. The folder must already
// be sanitized.
func NewObjectKey(folder, originalName string) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate object key: %w", err)
	}
	return fmt.Sprintf("%s/%s-%s", folder, hex.EncodeToString(buf), originalName), nil
}

// NewPresignKey generates a shorter key for direct client uploads as
// {folder}/{hex(12 random bytes)}-{fileName}, with spaces in the file name
// replaced by dashes.
func NewPresignKey(folder, fileName string) (string, error) {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate presign key: %w", err)
	}
	fileName = strings.ReplaceAll(fileName, " ", "-")
	return fmt.Sprintf("%s/%s-%s", folder, hex.EncodeToString(buf), fileName), nil
}
