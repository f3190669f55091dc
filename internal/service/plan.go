package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/souravcsewala/ads-ecom-backend/internal/domain"
	"github.com/souravcsewala/ads-ecom-backend/internal/repository"
	apperrors "github.com/souravcsewala/ads-ecom-backend/pkg/errors"
)

// PlanService implements the business logic for advertising plans.
type PlanService struct {
	planRepo repository.PlanRepository
	logger   *slog.Logger
}

// NewPlanService creates a new plan service.
func NewPlanService(planRepo repository.PlanRepository, logger *slog.Logger) *PlanService {
	return &PlanService{
		planRepo: planRepo,
		logger:   logger,
	}
}

// CreatePlanInput holds the parameters for creating a plan.
type CreatePlanInput struct {
	PlanType     string
	PlanName     string
	Price        float64
	Description  string
	Features     []string
	CTA          string
	DisplayOrder int
}

// UpdatePlanInput holds the parameters for updating a plan. Nil fields are
// left unchanged.
type UpdatePlanInput struct {
	PlanName     *string
	Price        *float64
	Description  *string
	Features     []string
	CTA          *string
	IsActive     *bool
	DisplayOrder *int
}

// ListPublic returns active plans, optionally filtered by plan type.
func (s *PlanService) ListPublic(ctx context.Context, planType string) ([]domain.Plan, error) {
	if planType != "" && !domain.IsValidPlanType(planType) {
		return nil, apperrors.InvalidInput("plan type must be image or video")
	}
	return s.planRepo.List(ctx, repository.PlanFilter{PlanType: planType, ActiveOnly: true})
}

// GetPublic returns a single active plan. Inactive plans read as not found.
func (s *PlanService) GetPublic(ctx context.Context, id string) (*domain.Plan, error) {
	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !plan.IsActive {
		return nil, apperrors.NotFound("plan", id)
	}
	return plan, nil
}

// ListAll returns every plan, active or not, for the admin panel.
func (s *PlanService) ListAll(ctx context.Context, planType string) ([]domain.Plan, error) {
	if planType != "" && !domain.IsValidPlanType(planType) {
		return nil, apperrors.InvalidInput("plan type must be image or video")
	}
	return s.planRepo.List(ctx, repository.PlanFilter{PlanType: planType})
}

// Get returns a single plan regardless of active state.
func (s *PlanService) Get(ctx context.Context, id string) (*domain.Plan, error) {
	return s.planRepo.GetByID(ctx, id)
}

// Create adds a new plan.
func (s *PlanService) Create(ctx context.Context, input CreatePlanInput) (*domain.Plan, error) {
	if !domain.IsValidPlanType(input.PlanType) {
		return nil, apperrors.InvalidInput("plan type must be image or video")
	}
	if input.PlanName == "" {
		return nil, apperrors.InvalidInput("plan name is required")
	}
	if input.Price < 0 {
		return nil, apperrors.InvalidInput("price cannot be negative")
	}

	features := input.Features
	if features == nil {
		features = []string{}
	}

	now := time.Now().UTC()
	plan := &domain.Plan{
		ID:           uuid.New().String(),
		PlanType:     input.PlanType,
		PlanName:     input.PlanName,
		Price:        input.Price,
		Description:  input.Description,
		Features:     features,
		CTA:          input.CTA,
		IsActive:     true,
		DisplayOrder: input.DisplayOrder,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("create plan: %w", err)
	}

	s.logger.InfoContext(ctx, "plan created",
		slog.String("plan_id", plan.ID),
		slog.String("plan_type", plan.PlanType),
	)

	return plan, nil
}

// Update applies partial changes to a plan.
func (s *PlanService) Update(ctx context.Context, id string, input UpdatePlanInput) (*domain.Plan, error) {
	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.PlanName != nil {
		plan.PlanName = *input.PlanName
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperrors.InvalidInput("price cannot be negative")
		}
		plan.Price = *input.Price
	}
	if input.Description != nil {
		plan.Description = *input.Description
	}
	if input.Features != nil {
		plan.Features = input.Features
	}
	if input.CTA != nil {
		plan.CTA = *input.CTA
	}
	if input.IsActive != nil {
		plan.IsActive = *input.IsActive
	}
	if input.DisplayOrder != nil {
		plan.DisplayOrder = *input.DisplayOrder
	}

	if err := s.planRepo.Update(ctx, plan); err != nil {
		return nil, fmt.Errorf("update plan: %w", err)
	}

	return plan, nil
}

// Delete marks a plan inactive. Existing orders keep their plan snapshot, so
// rows are never removed.
func (s *PlanService) Delete(ctx context.Context, id string) error {
	if err := s.planRepo.SoftDelete(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "plan deactivated",
		slog.String("plan_id", id),
	)

	return nil
}
