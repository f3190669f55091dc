package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/souravcsewala/ads-ecom-backend/internal/domain"
	"github.com/souravcsewala/ads-ecom-backend/internal/media"
	"github.com/souravcsewala/ads-ecom-backend/internal/repository"
	"github.com/souravcsewala/ads-ecom-backend/internal/storage"
	apperrors "github.com/souravcsewala/ads-ecom-backend/pkg/errors"
)

// Object store folders for demo content assets.
const (
	demoImagesFolder     = "demo-content/images"
	demoVideosFolder     = "demo-content/videos"
	demoThumbnailsFolder = "demo-content/thumbnails"
)

// DemoContentService implements the business logic for demo content.
type DemoContentService struct {
	demoRepo repository.DemoContentRepository
	gateway  *storage.Gateway
	signer   *media.Signer
	logger   *slog.Logger
}

// NewDemoContentService creates a new demo content service.
func NewDemoContentService(
	demoRepo repository.DemoContentRepository,
	gateway *storage.Gateway,
	signer *media.Signer,
	logger *slog.Logger,
) *DemoContentService {
	return &DemoContentService{
		demoRepo: demoRepo,
		gateway:  gateway,
		signer:   signer,
		logger:   logger,
	}
}

// CreateDemoContentInput holds the parameters for creating demo content.
type CreateDemoContentInput struct {
	Title        string
	ContentType  string
	Category     string
	Description  string
	DisplayOrder int
}

// UpdateDemoContentInput holds the parameters for updating demo content.
// Nil fields are left unchanged.
type UpdateDemoContentInput struct {
	Title        *string
	Category     *string
	Description  *string
	DisplayOrder *int
	IsActive     *bool
}

// DemoContentFiles bundles the uploads accompanying demo content. Image
// content needs Image; video content needs Video and optionally Thumbnail.
type DemoContentFiles struct {
	Image     *storage.FileInput
	Video     *storage.FileInput
	Thumbnail *storage.FileInput
}

// ListPublic returns active demo content with signed media URLs.
func (s *DemoContentService) ListPublic(ctx context.Context, contentType string) ([]domain.DemoContent, error) {
	if contentType != "" && !domain.IsValidDemoContentType(contentType) {
		return nil, apperrors.InvalidInput("content type must be image or video")
	}
	items, err := s.demoRepo.List(ctx, repository.DemoContentFilter{ContentType: contentType, ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	return s.signer.DemoContentViews(ctx, items), nil
}

// ListAll returns every demo content item for the admin panel, signed.
func (s *DemoContentService) ListAll(ctx context.Context, contentType string) ([]domain.DemoContent, error) {
	if contentType != "" && !domain.IsValidDemoContentType(contentType) {
		return nil, apperrors.InvalidInput("content type must be image or video")
	}
	items, err := s.demoRepo.List(ctx, repository.DemoContentFilter{ContentType: contentType})
	if err != nil {
		return nil, err
	}
	return s.signer.DemoContentViews(ctx, items), nil
}

// Get returns a single demo content item with its media URLs signed.
func (s *DemoContentService) Get(ctx context.Context, id string) (*domain.DemoContent, error) {
	item, err := s.demoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := s.signer.DemoContentView(ctx, *item)
	return &view, nil
}

// Create uploads the content files and stores a new demo content item.
func (s *DemoContentService) Create(ctx context.Context, input CreateDemoContentInput, files DemoContentFiles) (*domain.DemoContent, error) {
	if input.Title == "" {
		return nil, apperrors.InvalidInput("title is required")
	}
	if !domain.IsValidDemoContentType(input.ContentType) {
		return nil, apperrors.InvalidInput("content type must be image or video")
	}

	now := time.Now().UTC()
	item := &domain.DemoContent{
		ID:           uuid.New().String(),
		Title:        input.Title,
		ContentType:  input.ContentType,
		Category:     input.Category,
		Description:  input.Description,
		DisplayOrder: input.DisplayOrder,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	switch input.ContentType {
	case domain.DemoContentTypeImage:
		if files.Image == nil {
			return nil, apperrors.InvalidInput("image file is required for image content")
		}
		result, err := s.gateway.Upload(ctx, *files.Image, demoImagesFolder)
		if err != nil {
			return nil, err
		}
		item.ImageKey = result.Key
	case domain.DemoContentTypeVideo:
		if files.Video == nil {
			return nil, apperrors.InvalidInput("video file is required for video content")
		}
		result, err := s.gateway.Upload(ctx, *files.Video, demoVideosFolder)
		if err != nil {
			return nil, err
		}
		item.VideoKey = result.Key

		if files.Thumbnail != nil {
			thumb, err := s.gateway.Upload(ctx, *files.Thumbnail, demoThumbnailsFolder)
			if err != nil {
				return nil, err
			}
			item.ThumbnailKey = thumb.Key
		}
	}

	if err := s.demoRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create demo content: %w", err)
	}

	s.logger.InfoContext(ctx, "demo content created",
		slog.String("item_id", item.ID),
		slog.String("content_type", item.ContentType),
	)

	view := s.signer.DemoContentView(ctx, *item)
	return &view, nil
}

// Update applies partial changes. New files replace the stored keys; the
// replaced objects are deleted best-effort.
func (s *DemoContentService) Update(ctx context.Context, id string, input UpdateDemoContentInput, files DemoContentFiles) (*domain.DemoContent, error) {
	item, err := s.demoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		item.Title = *input.Title
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.DisplayOrder != nil {
		item.DisplayOrder = *input.DisplayOrder
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}

	var replacedKeys []string

	if files.Image != nil && item.ContentType == domain.DemoContentTypeImage {
		result, err := s.gateway.Upload(ctx, *files.Image, demoImagesFolder)
		if err != nil {
			return nil, err
		}
		replacedKeys = append(replacedKeys, item.ImageKey)
		item.ImageKey = result.Key
		item.ImageURL = ""
	}
	if files.Video != nil && item.ContentType == domain.DemoContentTypeVideo {
		result, err := s.gateway.Upload(ctx, *files.Video, demoVideosFolder)
		if err != nil {
			return nil, err
		}
		replacedKeys = append(replacedKeys, item.VideoKey)
		item.VideoKey = result.Key
		item.VideoURL = ""
	}
	if files.Thumbnail != nil && item.ContentType == domain.DemoContentTypeVideo {
		result, err := s.gateway.Upload(ctx, *files.Thumbnail, demoThumbnailsFolder)
		if err != nil {
			return nil, err
		}
		replacedKeys = append(replacedKeys, item.ThumbnailKey)
		item.ThumbnailKey = result.Key
		item.ThumbnailURL = ""
	}

	if err := s.demoRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update demo content: %w", err)
	}

	for _, key := range replacedKeys {
		if key == "" {
			continue
		}
		if err := s.gateway.Delete(ctx, key); err != nil {
			s.logger.WarnContext(ctx, "failed to delete replaced demo content object",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
	}

	view := s.signer.DemoContentView(ctx, *item)
	return &view, nil
}

// Delete marks a demo content item inactive.
func (s *DemoContentService) Delete(ctx context.Context, id string) error {
	return s.demoRepo.SoftDelete(ctx, id)
}
