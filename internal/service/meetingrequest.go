package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/souravcsewala/ads-ecom-backend/internal/domain"
	"github.com/souravcsewala/ads-ecom-backend/internal/event"
	"github.com/souravcsewala/ads-ecom-backend/internal/repository"
	apperrors "github.com/souravcsewala/ads-ecom-backend/pkg/errors"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// MeetingRequestService implements the business logic for public call
// requests.
type MeetingRequestService struct {
	requestRepo repository.MeetingRequestRepository
	producer    *event.Producer
	logger      *slog.Logger
}

// NewMeetingRequestService creates a new meeting request service.
func NewMeetingRequestService(
	requestRepo repository.MeetingRequestRepository,
	producer *event.Producer,
	logger *slog.Logger,
) *MeetingRequestService {
	return &MeetingRequestService{
		requestRepo: requestRepo,
		producer:    producer,
		logger:      logger,
	}
}

// CreateMeetingRequestInput holds the parameters submitted from the public
// contact form.
type CreateMeetingRequestInput struct {
	Name          string
	Email         string
	ContactNumber string
	PreferredDate string
	PreferredTime string
	Message       string
}

// UpdateMeetingRequestInput holds the fields an admin can change. Nil
// fields are left unchanged.
type UpdateMeetingRequestInput struct {
	Status     *string
	AdminNotes *string
}

// Create stores a call request and publishes a meeting_request.created
// event so admins get notified. Publish failures are logged only.
func (s *MeetingRequestService) Create(ctx context.Context, input CreateMeetingRequestInput) (*domain.MeetingRequest, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidInput("name is required")
	}
	if !emailPattern.MatchString(input.Email) {
		return nil, apperrors.InvalidInput("a valid email is required")
	}
	if input.ContactNumber == "" {
		return nil, apperrors.InvalidInput("contact number is required")
	}
	if input.PreferredDate == "" || input.PreferredTime == "" {
		return nil, apperrors.InvalidInput("preferred date and time are required")
	}

	now := time.Now().UTC()
	request := &domain.MeetingRequest{
		ID:            uuid.New().String(),
		Name:          input.Name,
		Email:         input.Email,
		ContactNumber: input.ContactNumber,
		PreferredDate: input.PreferredDate,
		PreferredTime: input.PreferredTime,
		Message:       input.Message,
		Status:        domain.MeetingRequestStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("create meeting request: %w", err)
	}

	if err := s.producer.PublishMeetingRequestCreated(ctx, request); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish meeting_request.created event",
			slog.String("request_id", request.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "meeting request created",
		slog.String("request_id", request.ID),
	)

	return request, nil
}

// Get returns a single meeting request.
func (s *MeetingRequestService) Get(ctx context.Context, id string) (*domain.MeetingRequest, error) {
	return s.requestRepo.GetByID(ctx, id)
}

// List returns meeting requests, optionally filtered by status.
func (s *MeetingRequestService) List(ctx context.Context, status string) ([]domain.MeetingRequest, error) {
	if status != "" && !domain.IsValidMeetingRequestStatus(status) {
		return nil, apperrors.InvalidInput("invalid meeting request status")
	}
	return s.requestRepo.List(ctx, status)
}

// Update applies admin changes to a meeting request.
func (s *MeetingRequestService) Update(ctx context.Context, id string, input UpdateMeetingRequestInput) (*domain.MeetingRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Status != nil {
		if !domain.IsValidMeetingRequestStatus(*input.Status) {
			return nil, apperrors.InvalidInput("invalid meeting request status")
		}
		request.Status = *input.Status
	}
	if input.AdminNotes != nil {
		request.AdminNotes = *input.AdminNotes
	}

	if err := s.requestRepo.Update(ctx, request); err != nil {
		return nil, fmt.Errorf("update meeting request: %w", err)
	}

	return request, nil
}

// Delete removes a meeting request.
func (s *MeetingRequestService) Delete(ctx context.Context, id string) error {
	return s.requestRepo.Delete(ctx, id)
}
