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

// portfolioFolder is the object store folder for portfolio images.
const portfolioFolder = "portfolio"

// PortfolioService implements the business logic for portfolio items.
type PortfolioService struct {
	portfolioRepo repository.PortfolioRepository
	gateway       *storage.Gateway
	signer        *media.Signer
	logger        *slog.Logger
}

// NewPortfolioService creates a new portfolio service.
func NewPortfolioService(
	portfolioRepo repository.PortfolioRepository,
	gateway *storage.Gateway,
	signer *media.Signer,
	logger *slog.Logger,
) *PortfolioService {
	return &PortfolioService{
		portfolioRepo: portfolioRepo,
		gateway:       gateway,
		signer:        signer,
		logger:        logger,
	}
}

// CreatePortfolioInput holds the parameters for creating a portfolio item.
type CreatePortfolioInput struct {
	Title        string
	Category     string
	Description  string
	DisplayOrder int
}

// UpdatePortfolioInput holds the parameters for updating a portfolio item.
// Nil fields are left unchanged.
type UpdatePortfolioInput struct {
	Title        *string
	Category     *string
	Description  *string
	DisplayOrder *int
	IsActive     *bool
}

// ListPublic returns active portfolio items with signed image URLs.
func (s *PortfolioService) ListPublic(ctx context.Context) ([]domain.PortfolioItem, error) {
	items, err := s.portfolioRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	return s.signer.PortfolioItemViews(ctx, items), nil
}

// ListAll returns every portfolio item for the admin panel, signed.
func (s *PortfolioService) ListAll(ctx context.Context) ([]domain.PortfolioItem, error) {
	items, err := s.portfolioRepo.List(ctx, false)
	if err != nil {
		return nil, err
	}
	return s.signer.PortfolioItemViews(ctx, items), nil
}

// Get returns a single portfolio item with its image URL signed.
func (s *PortfolioService) Get(ctx context.Context, id string) (*domain.PortfolioItem, error) {
	item, err := s.portfolioRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := s.signer.PortfolioItemView(ctx, *item)
	return &view, nil
}

// Create uploads the image and stores a new portfolio item.
func (s *PortfolioService) Create(ctx context.Context, input CreatePortfolioInput, image storage.FileInput) (*domain.PortfolioItem, error) {
	if input.Title == "" {
		return nil, apperrors.InvalidInput("title is required")
	}
	if image.TempPath == "" {
		return nil, apperrors.InvalidInput("image file is required")
	}

	result, err := s.gateway.Upload(ctx, image, portfolioFolder)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item := &domain.PortfolioItem{
		ID:           uuid.New().String(),
		Title:        input.Title,
		Category:     input.Category,
		Description:  input.Description,
		ImageKey:     result.Key,
		DisplayOrder: input.DisplayOrder,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.portfolioRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create portfolio item: %w", err)
	}

	s.logger.InfoContext(ctx, "portfolio item created",
		slog.String("item_id", item.ID),
		slog.String("image_key", item.ImageKey),
	)

	view := s.signer.PortfolioItemView(ctx, *item)
	return &view, nil
}

// Update applies partial changes. When a new image is supplied the old one
// is replaced and deleted best-effort.
func (s *PortfolioService) Update(ctx context.Context, id string, input UpdatePortfolioInput, image *storage.FileInput) (*domain.PortfolioItem, error) {
	item, err := s.portfolioRepo.GetByID(ctx, id)
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

	oldKey := ""
	if image != nil {
		result, err := s.gateway.Upload(ctx, *image, portfolioFolder)
		if err != nil {
			return nil, err
		}
		oldKey = item.ImageKey
		item.ImageKey = result.Key
		item.ImageURL = ""
	}

	if err := s.portfolioRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update portfolio item: %w", err)
	}

	if oldKey != "" {
		if err := s.gateway.Delete(ctx, oldKey); err != nil {
			s.logger.WarnContext(ctx, "failed to delete replaced portfolio image",
				slog.String("key", oldKey),
				slog.String("error", err.Error()),
			)
		}
	}

	view := s.signer.PortfolioItemView(ctx, *item)
	return &view, nil
}

// Delete marks a portfolio item inactive. The stored image is kept so the
// item can be reactivated.
func (s *PortfolioService) Delete(ctx context.Context, id string) error {
	return s.portfolioRepo.SoftDelete(ctx, id)
}
