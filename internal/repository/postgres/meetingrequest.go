package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/souravcsewala/ads-ecom-backend/internal/domain"
	apperrors "github.com/souravcsewala/ads-ecom-backend/pkg/errors"
)

const meetingRequestColumns = "id, name, email, contact_number, preferred_date, preferred_time, message, status, admin_notes, created_at, updated_at"

// MeetingRequestRepository implements repository.MeetingRequestRepository using PostgreSQL.
type MeetingRequestRepository struct {
	pool DBTX
}

// NewMeetingRequestRepository creates a new PostgreSQL-backed meeting request repository.
func NewMeetingRequestRepository(pool DBTX) *MeetingRequestRepository {
	return &MeetingRequestRepository{pool: pool}
}

// Create inserts a new meeting request into the database.
func (r *MeetingRequestRepository) Create(ctx context.Context, m *domain.MeetingRequest) error {
	query := `
		INSERT INTO meeting_requests (id, name, email, contact_number, preferred_date, preferred_time, message, status, admin_notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.pool.Exec(ctx, query,
		m.ID,
		m.Name,
		m.Email,
		m.ContactNumber,
		m.PreferredDate,
		m.PreferredTime,
		m.Message,
		m.Status,
		m.AdminNotes,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert meeting request: %w", err)
	}

	return nil
}

// GetByID retrieves a meeting request by its ID.
func (r *MeetingRequestRepository) GetByID(ctx context.Context, id string) (*domain.MeetingRequest, error) {
	query := fmt.Sprintf("SELECT %s FROM meeting_requests WHERE id = $1", meetingRequestColumns)

	var m domain.MeetingRequest
	err := r.pool.QueryRow(ctx, query, id).Scan(meetingRequestFields(&m)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan meeting request: %w", err)
	}

	return &m, nil
}

// List returns meeting requests newest first, optionally filtered by status.
func (r *MeetingRequestRepository) List(ctx context.Context, status string) ([]domain.MeetingRequest, error) {
	query := fmt.Sprintf("SELECT %s FROM meeting_requests", meetingRequestColumns)
	args := []any{}

	if status != "" {
		args = append(args, status)
		query += " WHERE status = $1"
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list meeting requests: %w", err)
	}
	defer rows.Close()

	var requests []domain.MeetingRequest
	for rows.Next() {
		var m domain.MeetingRequest
		if err := rows.Scan(meetingRequestFields(&m)...); err != nil {
			return nil, fmt.Errorf("scan meeting request row: %w", err)
		}
		requests = append(requests, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meeting request rows: %w", err)
	}

	if requests == nil {
		requests = []domain.MeetingRequest{}
	}

	return requests, nil
}

// Update modifies an existing meeting request in the database.
func (r *MeetingRequestRepository) Update(ctx context.Context, m *domain.MeetingRequest) error {
	m.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE meeting_requests
		SET name = $1, email = $2, contact_number = $3, preferred_date = $4, preferred_time = $5,
		    message = $6, status = $7, admin_notes = $8, updated_at = $9
		WHERE id = $10`

	ct, err := r.pool.Exec(ctx, query,
		m.Name,
		m.Email,
		m.ContactNumber,
		m.PreferredDate,
		m.PreferredTime,
		m.Message,
		m.Status,
		m.AdminNotes,
		m.UpdatedAt,
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("update meeting request: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("meeting request", m.ID)
	}

	return nil
}

// Delete removes a meeting request from the database by its ID.
func (r *MeetingRequestRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM meeting_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete meeting request: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("meeting request", id)
	}

	return nil
}

// meetingRequestFields returns scan destinations matching meetingRequestColumns.
func meetingRequestFields(m *domain.MeetingRequest) []any {
	return []any{
		&m.ID,
		&m.Name,
		&m.Email,
		&m.ContactNumber,
		&m.PreferredDate,
		&m.PreferredTime,
		&m.Message,
		&m.Status,
		&m.AdminNotes,
		&m.CreatedAt,
		&m.UpdatedAt,
	}
}
