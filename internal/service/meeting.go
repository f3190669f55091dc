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

// MeetingService implements the business logic for scheduled meetings.
type MeetingService struct {
	meetingRepo repository.MeetingRepository
	logger      *slog.Logger
}

// NewMeetingService creates a new meeting service.
func NewMeetingService(meetingRepo repository.MeetingRepository, logger *slog.Logger) *MeetingService {
	return &MeetingService{
		meetingRepo: meetingRepo,
		logger:      logger,
	}
}

// CreateMeetingInput holds the parameters for scheduling a meeting.
type CreateMeetingInput struct {
	CustomerID  string
	Title       string
	Description string
	Date        string
	Time        string
	Duration    int
	Timezone    string
	MeetingLink string
}

// UpdateMeetingInput holds the parameters for updating a meeting. Nil
// fields are left unchanged.
type UpdateMeetingInput struct {
	Title       *string
	Description *string
	Date        *string
	Time        *string
	Duration    *int
	Timezone    *string
	MeetingLink *string
	Status      *string
}

// UpdateMeetingNotesInput holds the note fields an admin can edit.
type UpdateMeetingNotesInput struct {
	PreNotes     *string
	PostNotes    *string
	GeneralNotes *string
}

// Create schedules a meeting with a customer. Missing duration and
// timezone fall back to defaults.
func (s *MeetingService) Create(ctx context.Context, input CreateMeetingInput) (*domain.Meeting, error) {
	if input.CustomerID == "" {
		return nil, apperrors.InvalidInput("customer id is required")
	}
	if input.Title == "" {
		return nil, apperrors.InvalidInput("title is required")
	}
	if input.Date == "" || input.Time == "" {
		return nil, apperrors.InvalidInput("date and time are required")
	}

	duration := input.Duration
	if duration <= 0 {
		duration = domain.DefaultMeetingDuration
	}
	timezone := input.Timezone
	if timezone == "" {
		timezone = domain.DefaultMeetingTimezone
	}

	now := time.Now().UTC()
	meeting := &domain.Meeting{
		ID:          uuid.New().String(),
		CustomerID:  input.CustomerID,
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		Time:        input.Time,
		Duration:    duration,
		Timezone:    timezone,
		MeetingLink: input.MeetingLink,
		Status:      domain.MeetingStatusScheduled,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.meetingRepo.Create(ctx, meeting); err != nil {
		return nil, fmt.Errorf("create meeting: %w", err)
	}

	s.logger.InfoContext(ctx, "meeting scheduled",
		slog.String("meeting_id", meeting.ID),
		slog.String("customer_id", meeting.CustomerID),
	)

	return meeting, nil
}

// Get returns a single meeting.
func (s *MeetingService) Get(ctx context.Context, id string) (*domain.Meeting, error) {
	return s.meetingRepo.GetByID(ctx, id)
}

// List returns meetings matching the filter.
func (s *MeetingService) List(ctx context.Context, filter repository.MeetingFilter) ([]domain.Meeting, error) {
	if filter.Status != "" && !domain.IsValidMeetingStatus(filter.Status) {
		return nil, apperrors.InvalidInput("invalid meeting status")
	}
	return s.meetingRepo.List(ctx, filter)
}

// Update applies partial changes to a meeting.
func (s *MeetingService) Update(ctx context.Context, id string, input UpdateMeetingInput) (*domain.Meeting, error) {
	meeting, err := s.meetingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		meeting.Title = *input.Title
	}
	if input.Description != nil {
		meeting.Description = *input.Description
	}
	if input.Date != nil {
		meeting.Date = *input.Date
	}
	if input.Time != nil {
		meeting.Time = *input.Time
	}
	if input.Duration != nil {
		if *input.Duration <= 0 {
			return nil, apperrors.InvalidInput("duration must be positive")
		}
		meeting.Duration = *input.Duration
	}
	if input.Timezone != nil {
		meeting.Timezone = *input.Timezone
	}
	if input.MeetingLink != nil {
		meeting.MeetingLink = *input.MeetingLink
	}
	if input.Status != nil {
		if !domain.IsValidMeetingStatus(*input.Status) {
			return nil, apperrors.InvalidInput("invalid meeting status")
		}
		meeting.Status = *input.Status
	}

	if err := s.meetingRepo.Update(ctx, meeting); err != nil {
		return nil, fmt.Errorf("update meeting: %w", err)
	}

	return meeting, nil
}

// UpdateNotes edits the meeting's note fields.
func (s *MeetingService) UpdateNotes(ctx context.Context, id string, input UpdateMeetingNotesInput) (*domain.Meeting, error) {
	meeting, err := s.meetingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.PreNotes != nil {
		meeting.PreNotes = *input.PreNotes
	}
	if input.PostNotes != nil {
		meeting.PostNotes = *input.PostNotes
	}
	if input.GeneralNotes != nil {
		meeting.GeneralNotes = *input.GeneralNotes
	}

	if err := s.meetingRepo.Update(ctx, meeting); err != nil {
		return nil, fmt.Errorf("update meeting notes: %w", err)
	}

	return meeting, nil
}

// Delete removes a meeting.
func (s *MeetingService) Delete(ctx context.Context, id string) error {
	return s.meetingRepo.Delete(ctx, id)
}
