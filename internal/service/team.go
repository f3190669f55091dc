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

// teamImagesFolder is the object store folder for team member photos.
const teamImagesFolder = "team/images"

// TeamService implements the business logic for team members.
type TeamService struct {
	teamRepo repository.TeamRepository
	gateway  *storage.Gateway
	signer   *media.Signer
	logger   *slog.Logger
}

// NewTeamService creates a new team service.
func NewTeamService(
	teamRepo repository.TeamRepository,
	gateway *storage.Gateway,
	signer *media.Signer,
	logger *slog.Logger,
) *TeamService {
	return &TeamService{
		teamRepo: teamRepo,
		gateway:  gateway,
		signer:   signer,
		logger:   logger,
	}
}

// CreateTeamMemberInput holds the parameters for adding a team member.
type CreateTeamMemberInput struct {
	Name         string
	Position     string
	Bio          string
	LinkedInURL  string
	DisplayOrder int
}

// UpdateTeamMemberInput holds the parameters for updating a team member.
// Nil fields are left unchanged.
type UpdateTeamMemberInput struct {
	Name         *string
	Position     *string
	Bio          *string
	LinkedInURL  *string
	DisplayOrder *int
	IsActive     *bool
}

// ListPublic returns active team members with signed photo URLs.
func (s *TeamService) ListPublic(ctx context.Context) ([]domain.TeamMember, error) {
	members, err := s.teamRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	return s.signer.TeamMemberViews(ctx, members), nil
}

// ListAll returns every team member for the admin panel, signed.
func (s *TeamService) ListAll(ctx context.Context) ([]domain.TeamMember, error) {
	members, err := s.teamRepo.List(ctx, false)
	if err != nil {
		return nil, err
	}
	return s.signer.TeamMemberViews(ctx, members), nil
}

// Get returns a single team member with the photo URL signed.
func (s *TeamService) Get(ctx context.Context, id string) (*domain.TeamMember, error) {
	member, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := s.signer.TeamMemberView(ctx, *member)
	return &view, nil
}

// Create adds a team member. The photo is optional.
func (s *TeamService) Create(ctx context.Context, input CreateTeamMemberInput, image *storage.FileInput) (*domain.TeamMember, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidInput("name is required")
	}
	if input.Position == "" {
		return nil, apperrors.InvalidInput("position is required")
	}

	imageKey := ""
	if image != nil {
		result, err := s.gateway.Upload(ctx, *image, teamImagesFolder)
		if err != nil {
			return nil, err
		}
		imageKey = result.Key
	}

	now := time.Now().UTC()
	member := &domain.TeamMember{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Position:     input.Position,
		Bio:          input.Bio,
		ImageKey:     imageKey,
		LinkedInURL:  input.LinkedInURL,
		DisplayOrder: input.DisplayOrder,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.teamRepo.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("create team member: %w", err)
	}

	s.logger.InfoContext(ctx, "team member created",
		slog.String("member_id", member.ID),
	)

	view := s.signer.TeamMemberView(ctx, *member)
	return &view, nil
}

// Update applies partial changes. When a new photo is supplied the old one
// is replaced and deleted best-effort.
func (s *TeamService) Update(ctx context.Context, id string, input UpdateTeamMemberInput, image *storage.FileInput) (*domain.TeamMember, error) {
	member, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		member.Name = *input.Name
	}
	if input.Position != nil {
		member.Position = *input.Position
	}
	if input.Bio != nil {
		member.Bio = *input.Bio
	}
	if input.LinkedInURL != nil {
		member.LinkedInURL = *input.LinkedInURL
	}
	if input.DisplayOrder != nil {
		member.DisplayOrder = *input.DisplayOrder
	}
	if input.IsActive != nil {
		member.IsActive = *input.IsActive
	}

	oldKey := ""
	if image != nil {
		result, err := s.gateway.Upload(ctx, *image, teamImagesFolder)
		if err != nil {
			return nil, err
		}
		oldKey = member.ImageKey
		member.ImageKey = result.Key
		member.ImageURL = ""
	}

	if err := s.teamRepo.Update(ctx, member); err != nil {
		return nil, fmt.Errorf("update team member: %w", err)
	}

	if oldKey != "" {
		if err := s.gateway.Delete(ctx, oldKey); err != nil {
			s.logger.WarnContext(ctx, "failed to delete replaced team photo",
				slog.String("key", oldKey),
				slog.String("error", err.Error()),
			)
		}
	}

	view := s.signer.TeamMemberView(ctx, *member)
	return &view, nil
}

// Delete marks a team member inactive.
func (s *TeamService) Delete(ctx context.Context, id string) error {
	return s.teamRepo.SoftDelete(ctx, id)
}
