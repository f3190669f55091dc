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

const teamColumns = "id, name, position, bio, image_key, image_url, linkedin_url, display_order, is_active, created_at, updated_at"

// TeamRepository implements repository.TeamRepository using PostgreSQL.
type TeamRepository struct {
	pool DBTX
}

// NewTeamRepository creates a new PostgreSQL-backed team repository.
func NewTeamRepository(pool DBTX) *TeamRepository {
	return &TeamRepository{pool: pool}
}

// Create inserts a new team member into the database.
func (r *TeamRepository) Create(ctx context.Context, m *domain.TeamMember) error {
	query := `
		INSERT INTO team_members (id, name, position, bio, image_key, image_url, linkedin_url, display_order, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.pool.Exec(ctx, query,
		m.ID,
		m.Name,
		m.Position,
		m.Bio,
		m.ImageKey,
		m.ImageURL,
		m.LinkedInURL,
		m.DisplayOrder,
		m.IsActive,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert team member: %w", err)
	}

	return nil
}

// GetByID retrieves a team member by their ID.
func (r *TeamRepository) GetByID(ctx context.Context, id string) (*domain.TeamMember, error) {
	query := fmt.Sprintf("SELECT %s FROM team_members WHERE id = $1", teamColumns)

	var m domain.TeamMember
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&m.ID,
		&m.Name,
		&m.Position,
		&m.Bio,
		&m.ImageKey,
		&m.ImageURL,
		&m.LinkedInURL,
		&m.DisplayOrder,
		&m.IsActive,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan team member: %w", err)
	}

	return &m, nil
}

// List returns team members ordered by display order.
func (r *TeamRepository) List(ctx context.Context, activeOnly bool) ([]domain.TeamMember, error) {
	query := fmt.Sprintf("SELECT %s FROM team_members", teamColumns)
	if activeOnly {
		query += " WHERE is_active = true"
	}
	query += " ORDER BY display_order ASC, created_at DESC"

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	defer rows.Close()

	var members []domain.TeamMember
	for rows.Next() {
		var m domain.TeamMember
		if err := rows.Scan(
			&m.ID,
			&m.Name,
			&m.Position,
			&m.Bio,
			&m.ImageKey,
			&m.ImageURL,
			&m.LinkedInURL,
			&m.DisplayOrder,
			&m.IsActive,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan team member row: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate team member rows: %w", err)
	}

	if members == nil {
		members = []domain.TeamMember{}
	}

	return members, nil
}

// Update modifies an existing team member in the database.
func (r *TeamRepository) Update(ctx context.Context, m *domain.TeamMember) error {
	m.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE team_members
		SET name = $1, position = $2, bio = $3, image_key = $4, image_url = $5,
		    linkedin_url = $6, display_order = $7, is_active = $8, updated_at = $9
		WHERE id = $10`

	ct, err := r.pool.Exec(ctx, query,
		m.Name,
		m.Position,
		m.Bio,
		m.ImageKey,
		m.ImageURL,
		m.LinkedInURL,
		m.DisplayOrder,
		m.IsActive,
		m.UpdatedAt,
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("update team member: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("team member", m.ID)
	}

	return nil
}

// SoftDelete marks a team member inactive without removing the row.
func (r *TeamRepository) SoftDelete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE team_members SET is_active = false, updated_at = $1 WHERE id = $2`,
		time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("soft delete team member: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("team member", id)
	}

	return nil
}
