package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/souravcsewala/ads-ecom-backend/internal/domain"
	"github.com/souravcsewala/ads-ecom-backend/internal/repository"
	apperrors "github.com/souravcsewala/ads-ecom-backend/pkg/errors"
)

const meetingColumns = "id, customer_id, title, description, date, time, duration, timezone, meeting_link, status, pre_notes, post_notes, general_notes, created_at, updated_at"

// MeetingRepository implements repository.MeetingRepository using PostgreSQL.
type MeetingRepository struct {
	pool DBTX
}

// NewMeetingRepository creates a new PostgreSQL-backed meeting repository.
func NewMeetingRepository(pool DBTX) *MeetingRepository {
	return &MeetingRepository{pool: pool}
}

// Create inserts a new meeting into the database.
func (r *MeetingRepository) Create(ctx context.Context, m *domain.Meeting) error {
	query := `
		INSERT INTO meetings (id, customer_id, title, description, date, time, duration, timezone, meeting_link, status, pre_notes, post_notes, general_notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.pool.Exec(ctx, query,
		m.ID,
		m.CustomerID,
		m.Title,
		m.Description,
		m.Date,
		m.Time,
		m.Duration,
		m.Timezone,
		m.MeetingLink,
		m.Status,
		m.PreNotes,
		m.PostNotes,
		m.GeneralNotes,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert meeting: %w", err)
	}

	return nil
}

// GetByID retrieves a meeting by its ID.
func (r *MeetingRepository) GetByID(ctx context.Context, id string) (*domain.Meeting, error) {
	query := fmt.Sprintf("SELECT %s FROM meetings WHERE id = $1", meetingColumns)

	var m domain.Meeting
	err := r.pool.QueryRow(ctx, query, id).Scan(meetingFields(&m)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan meeting: %w", err)
	}

	return &m, nil
}

// List returns meetings matching the filter, soonest first. Upcoming and
// past compare the meeting date against today.
func (r *MeetingRepository) List(ctx context.Context, filter repository.MeetingFilter) ([]domain.Meeting, error) {
	query := fmt.Sprintf("SELECT %s FROM meetings WHERE 1=1", meetingColumns)
	args := []any{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	today := time.Now().UTC().Format("2006-01-02")
	if filter.Upcoming {
		args = append(args, today)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if filter.Past {
		args = append(args, today)
		query += fmt.Sprintf(" AND date < $%d", len(args))
	}

	query += " ORDER BY date ASC, time ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	defer rows.Close()

	var meetings []domain.Meeting
	for rows.Next() {
		var m domain.Meeting
		if err := rows.Scan(meetingFields(&m)...); err != nil {
			return nil, fmt.Errorf("scan meeting row: %w", err)
		}
		meetings = append(meetings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meeting rows: %w", err)
	}

	if meetings == nil {
		meetings = []domain.Meeting{}
	}

	return meetings, nil
}

// Update modifies an existing meeting in the database.
func (r *MeetingRepository) Update(ctx context.Context, m *domain.Meeting) error {
	m.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE meetings
		SET customer_id = $1, title = $2, description = $3, date = $4, time = $5,
		    duration = $6, timezone = $7, meeting_link = $8, status = $9,
		    pre_notes = $10, post_notes = $11, general_notes = $12, updated_at = $13
		WHERE id = $14`

	ct, err := r.pool.Exec(ctx, query,
		m.CustomerID,
		m.Title,
		m.Description,
		m.Date,
		m.Time,
		m.Duration,
		m.Timezone,
		m.MeetingLink,
		m.Status,
		m.PreNotes,
		m.PostNotes,
		m.GeneralNotes,
		m.UpdatedAt,
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("update meeting: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("meeting", m.ID)
	}

	return nil
}

// Delete removes a meeting from the database by its ID.
func (r *MeetingRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM meetings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete meeting: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("meeting", id)
	}

	return nil
}

// meetingFields returns scan destinations matching meetingColumns.
func meetingFields(m *domain.Meeting) []any {
	return []any{
		&m.ID,
		&m.CustomerID,
		&m.Title,
		&m.Description,
		&m.Date,
		&m.Time,
		&m.Duration,
		&m.Timezone,
		&m.MeetingLink,
		&m.Status,
		&m.PreNotes,
		&m.PostNotes,
		&m.GeneralNotes,
		&m.CreatedAt,
		&m.UpdatedAt,
	}
}
