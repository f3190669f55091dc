package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/souravcsewala/ads-ecom-backend/internal/domain"
	"github.com/souravcsewala/ads-ecom-backend/internal/repository"
	apperrors "github.com/souravcsewala/ads-ecom-backend/pkg/errors"
)

// --- Mock Plan Repository ---

type mockPlanRepository struct {
	mock.Mock
}

func (m *mockPlanRepository) Create(ctx context.Context, plan *domain.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *mockPlanRepository) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plan), args.Error(1)
}

func (m *mockPlanRepository) List(ctx context.Context, filter repository.PlanFilter) ([]domain.Plan, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Plan), args.Error(1)
}

func (m *mockPlanRepository) Update(ctx context.Context, plan *domain.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *mockPlanRepository) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestPlanService(planRepo *mockPlanRepository) *PlanService {
	return NewPlanService(planRepo, newTestLogger())
}

func TestGetPublicPlan_InactiveReadsAsNotFound(t *testing.T) {
	planRepo := new(mockPlanRepository)
	svc := newTestPlanService(planRepo)
	ctx := context.Background()

	planRepo.On("GetByID", ctx, "p-1").Return(&domain.Plan{ID: "p-1", IsActive: false}, nil)

	plan, err := svc.GetPublic(ctx, "p-1")

	assert.Nil(t, plan)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListPublicPlans_FiltersActiveByType(t *testing.T) {
	planRepo := new(mockPlanRepository)
	svc := newTestPlanService(planRepo)
	ctx := context.Background()

	planRepo.On("List", ctx, repository.PlanFilter{PlanType: domain.PlanTypeVideo, ActiveOnly: true}).
		Return([]domain.Plan{{ID: "p-1", PlanType: domain.PlanTypeVideo}}, nil)

	plans, err := svc.ListPublic(ctx, domain.PlanTypeVideo)

	require.NoError(t, err)
	assert.Len(t, plans, 1)
	planRepo.AssertExpectations(t)
}

func TestListPublicPlans_RejectsUnknownType(t *testing.T) {
	svc := newTestPlanService(new(mockPlanRepository))

	_, err := svc.ListPublic(context.Background(), "carousel")

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCreatePlan_Defaults(t *testing.T) {
	planRepo := new(mockPlanRepository)
	svc := newTestPlanService(planRepo)
	ctx := context.Background()

	planRepo.On("Create", ctx, mock.AnythingOfType("*domain.Plan")).Return(nil)

	plan, err := svc.Create(ctx, CreatePlanInput{
		PlanType: domain.PlanTypeImage,
		PlanName: "Starter",
		Price:    99.0,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, plan.ID)
	assert.True(t, plan.IsActive)
	assert.NotNil(t, plan.Features)
	planRepo.AssertExpectations(t)
}

func TestCreatePlan_NegativePrice(t *testing.T) {
	svc := newTestPlanService(new(mockPlanRepository))

	_, err := svc.Create(context.Background(), CreatePlanInput{
		PlanType: domain.PlanTypeImage,
		PlanName: "Starter",
		Price:    -1,
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestUpdatePlan_PartialChanges(t *testing.T) {
	planRepo := new(mockPlanRepository)
	svc := newTestPlanService(planRepo)
	ctx := context.Background()

	existing := &domain.Plan{ID: "p-1", PlanName: "Starter", Price: 99.0, IsActive: true}
	planRepo.On("GetByID", ctx, "p-1").Return(existing, nil)
	planRepo.On("Update", ctx, mock.AnythingOfType("*domain.Plan")).Return(nil)

	plan, err := svc.Update(ctx, "p-1", UpdatePlanInput{
		PlanName: strPtr("Starter Plus"),
		IsActive: boolPtr(false),
	})

	require.NoError(t, err)
	assert.Equal(t, "Starter Plus", plan.PlanName)
	assert.False(t, plan.IsActive)
	assert.Equal(t, 99.0, plan.Price)
	planRepo.AssertExpectations(t)
}
