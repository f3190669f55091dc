package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/souravcsewala/ads-ecom-backend/internal/storage"
	apperrors "github.com/souravcsewala/ads-ecom-backend/pkg/errors"
)

// Upload size limits in bytes.
const (
	MaxUploadSize     = 50 << 20  // general uploads
	MaxDemoImageSize  = 10 << 20  // demo content images
	MaxDemoVideoSize  = 100 << 20 // demo content videos
	MaxBrandAssetSize = 100 << 20 // brand asset files, zip included
)

// brandAssetsFolder prefixes per-user brand asset uploads.
const brandAssetsFolder = "brand-assets"

var imageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

var videoContentTypes = map[string]bool{
	"video/mp4":       true,
	"video/webm":      true,
	"video/quicktime": true,
}

var archiveContentTypes = map[string]bool{
	"application/zip":              true,
	"application/x-zip-compressed": true,
}

// UploadService implements the business logic for direct file uploads and
// presigned upload URLs.
type UploadService struct {
	gateway *storage.Gateway
	logger  *slog.Logger
}

// NewUploadService creates a new upload service.
func NewUploadService(gateway *storage.Gateway, logger *slog.Logger) *UploadService {
	return &UploadService{
		gateway: gateway,
		logger:  logger,
	}
}

// PresignInput holds the parameters for requesting a presigned upload URL.
type PresignInput struct {
	FileName  string
	FileType  string
	Folder    string
	ExpiresIn int64
}

// PresignResult is the response for a presigned upload request. UploadURL
// accepts the PUT; FileURL is where the object will be readable afterwards.
type PresignResult struct {
	UploadURL string `json:"upload_url"`
	FileURL   string `json:"file_url"`
	Key       string `json:"key"`
	ExpiresIn int64  `json:"expires_in"`
}

// UploadSingle stores one image or video file of up to 50MB.
func (s *UploadService) UploadSingle(ctx context.Context, file storage.FileInput, folder string) (*storage.UploadResult, error) {
	if err := validateMediaFile(file, MaxUploadSize); err != nil {
		return nil, err
	}
	return s.gateway.Upload(ctx, file, folder)
}

// UploadBatch stores multiple image or video files concurrently. All files
// are validated up front; one oversized file rejects the whole batch.
func (s *UploadService) UploadBatch(ctx context.Context, files []storage.FileInput, folder string) ([]*storage.UploadResult, error) {
	if len(files) == 0 {
		return nil, apperrors.InvalidInput("at least one file is required")
	}
	for _, file := range files {
		if err := validateMediaFile(file, MaxUploadSize); err != nil {
			return nil, err
		}
	}
	return s.gateway.UploadMany(ctx, files, folder)
}

// UploadDemoContent stores one demo content asset with content-type
// specific size limits.
func (s *UploadService) UploadDemoContent(ctx context.Context, file storage.FileInput) (*storage.UploadResult, error) {
	switch {
	case imageContentTypes[file.ContentType]:
		if file.Size > MaxDemoImageSize {
			return nil, apperrors.InvalidInput("demo image exceeds the 10MB limit")
		}
		return s.gateway.Upload(ctx, file, demoImagesFolder)
	case videoContentTypes[file.ContentType]:
		if file.Size > MaxDemoVideoSize {
			return nil, apperrors.InvalidInput("demo video exceeds the 100MB limit")
		}
		return s.gateway.Upload(ctx, file, demoVideosFolder)
	default:
		return nil, apperrors.InvalidInput("demo content must be an image or video file")
	}
}

// UploadBrandAssets stores a customer's brand kit files under their own
// folder. Images, videos and zip archives are accepted up to 100MB each.
func (s *UploadService) UploadBrandAssets(ctx context.Context, files []storage.FileInput, userID string) ([]*storage.UploadResult, error) {
	if len(files) == 0 {
		return nil, apperrors.InvalidInput("at least one file is required")
	}
	for _, file := range files {
		if !imageContentTypes[file.ContentType] && !videoContentTypes[file.ContentType] && !archiveContentTypes[file.ContentType] {
			return nil, apperrors.InvalidInput(fmt.Sprintf("unsupported brand asset type %q", file.ContentType))
		}
		if file.Size > MaxBrandAssetSize {
			return nil, apperrors.InvalidInput(fmt.Sprintf("%s exceeds the 100MB limit", file.OriginalName))
		}
	}
	return s.gateway.UploadMany(ctx, files, brandAssetsFolder+"/"+userID)
}

// Presign issues a presigned PUT URL so clients can upload directly to the
// object store.
func (s *UploadService) Presign(ctx context.Context, input PresignInput) (*PresignResult, error) {
	if input.FileName == "" {
		return nil, apperrors.InvalidInput("file name is required")
	}
	if input.FileType == "" {
		return nil, apperrors.InvalidInput("file type is required")
	}

	key, err := storage.NewPresignKey(storage.SanitizeFolder(input.Folder), input.FileName)
	if err != nil {
		return nil, fmt.Errorf("generate upload key: %w", err)
	}

	uploadURL, expiresIn, err := s.gateway.SignedUploadURL(ctx, key, input.FileType, input.ExpiresIn)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "presigned upload url issued",
		slog.String("key", key),
		slog.Int64("expires_in", expiresIn),
	)

	return &PresignResult{
		UploadURL: uploadURL,
		FileURL:   s.gateway.PublicURL(key),
		Key:       key,
		ExpiresIn: expiresIn,
	}, nil
}

func validateMediaFile(file storage.FileInput, maxSize int64) error {
	if !imageContentTypes[file.ContentType] && !videoContentTypes[file.ContentType] {
		return apperrors.InvalidInput(fmt.Sprintf("unsupported file type %q", file.ContentType))
	}
	if file.Size > maxSize {
		return apperrors.InvalidInput(fmt.Sprintf("%s exceeds the upload size limit", file.OriginalName))
	}
	return nil
}
