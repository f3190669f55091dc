package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/souravcsewala/ads-ecom-backend/internal/domain"
	apperrors "github.com/souravcsewala/ads-ecom-backend/pkg/errors"
)

// --- Mock Meeting Request Repository ---

type mockMeetingRequestRepository struct {
	mock.Mock
}

func (m *mockMeetingRequestRepository) Create(ctx context.Context, request *domain.MeetingRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *mockMeetingRequestRepository) GetByID(ctx context.Context, id string) (*domain.MeetingRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MeetingRequest), args.Error(1)
}

func (m *mockMeetingRequestRepository) List(ctx context.Context, status string) ([]domain.MeetingRequest, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.MeetingRequest), args.Error(1)
}

func (m *mockMeetingRequestRepository) Update(ctx context.Context, request *domain.MeetingRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *mockMeetingRequestRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestMeetingRequestService(repo *mockMeetingRequestRepository) *MeetingRequestService {
	return NewMeetingRequestService(repo, newTestEventProducer(), newTestLogger())
}

func validMeetingRequestInput() CreateMeetingRequestInput {
	return CreateMeetingRequestInput{
		Name:          "Alice Smith",
		Email:         "alice@example.com",
		ContactNumber: "+1234567890",
		PreferredDate: "2026-09-15",
		PreferredTime: "14:00",
		Message:       "Interested in video ads",
	}
}

func TestCreateMeetingRequest_Success(t *testing.T) {
	repo := new(mockMeetingRequestRepository)
	svc := newTestMeetingRequestService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*domain.MeetingRequest")).Return(nil)

	request, err := svc.Create(ctx, validMeetingRequestInput())

	require.NoError(t, err)
	assert.NotEmpty(t, request.ID)
	assert.Equal(t, domain.MeetingRequestStatusPending, request.Status)
	repo.AssertExpectations(t)
}

func TestCreateMeetingRequest_InvalidEmail(t *testing.T) {
	svc := newTestMeetingRequestService(new(mockMeetingRequestRepository))

	input := validMeetingRequestInput()
	input.Email = "not-an-email"

	_, err := svc.Create(context.Background(), input)

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCreateMeetingRequest_MissingSchedule(t *testing.T) {
	svc := newTestMeetingRequestService(new(mockMeetingRequestRepository))

	input := validMeetingRequestInput()
	input.PreferredDate = ""

	_, err := svc.Create(context.Background(), input)

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestUpdateMeetingRequest_StatusAndNotes(t *testing.T) {
	repo := new(mockMeetingRequestRepository)
	svc := newTestMeetingRequestService(repo)
	ctx := context.Background()

	existing := &domain.MeetingRequest{ID: "mr-1", Status: domain.MeetingRequestStatusPending}
	repo.On("GetByID", ctx, "mr-1").Return(existing, nil)
	repo.On("Update", ctx, mock.AnythingOfType("*domain.MeetingRequest")).Return(nil)

	request, err := svc.Update(ctx, "mr-1", UpdateMeetingRequestInput{
		Status:     strPtr(domain.MeetingRequestStatusConfirmed),
		AdminNotes: strPtr("call booked for Monday"),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.MeetingRequestStatusConfirmed, request.Status)
	assert.Equal(t, "call booked for Monday", request.AdminNotes)
}

func TestUpdateMeetingRequest_InvalidStatus(t *testing.T) {
	repo := new(mockMeetingRequestRepository)
	svc := newTestMeetingRequestService(repo)
	ctx := context.Background()

	existing := &domain.MeetingRequest{ID: "mr-1", Status: domain.MeetingRequestStatusPending}
	repo.On("GetByID", ctx, "mr-1").Return(existing, nil)

	_, err := svc.Update(ctx, "mr-1", UpdateMeetingRequestInput{Status: strPtr("archived")})

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
