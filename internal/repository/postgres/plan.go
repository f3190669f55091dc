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

const planColumns = "id, plan_type, plan_name, price, description, features, cta, is_active, display_order, created_at, updated_at"

// PlanRepository implements repository.PlanRepository using PostgreSQL.
// Features are stored as a JSONB array.
type PlanRepository struct {
	pool DBTX
}

// NewPlanRepository creates a new PostgreSQL-backed plan repository.
func NewPlanRepository(pool DBTX) *PlanRepository {
	return &PlanRepository{pool: pool}
}

// Create inserts a new plan into the database.
func (r *PlanRepository) Create(ctx context.Context, p *domain.Plan) error {
	query := `
		INSERT INTO plans (id, plan_type, plan_name, price, description, features, cta, is_active, display_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.pool.Exec(ctx, query,
		p.ID,
		p.PlanType,
		p.PlanName,
		p.Price,
		p.Description,
		p.Features,
		p.CTA,
		p.IsActive,
		p.DisplayOrder,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert plan: %w", err)
	}

	return nil
}

// GetByID retrieves a plan by its ID.
func (r *PlanRepository) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	query := fmt.Sprintf("SELECT %s FROM plans WHERE id = $1", planColumns)

	var p domain.Plan
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.PlanType,
		&p.PlanName,
		&p.Price,
		&p.Description,
		&p.Features,
		&p.CTA,
		&p.IsActive,
		&p.DisplayOrder,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan plan: %w", err)
	}

	return &p, nil
}

// List returns plans matching the filter, ordered by display order.
func (r *PlanRepository) List(ctx context.Context, filter repository.PlanFilter) ([]domain.Plan, error) {
	query := fmt.Sprintf("SELECT %s FROM plans WHERE 1=1", planColumns)
	args := []any{}

	if filter.ActiveOnly {
		query += " AND is_active = true"
	}
	if filter.PlanType != "" {
		args = append(args, filter.PlanType)
		query += fmt.Sprintf(" AND plan_type = $%d", len(args))
	}
	query += " ORDER BY display_order ASC, created_at ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var plans []domain.Plan
	for rows.Next() {
		var p domain.Plan
		if err := rows.Scan(
			&p.ID,
			&p.PlanType,
			&p.PlanName,
			&p.Price,
			&p.Description,
			&p.Features,
			&p.CTA,
			&p.IsActive,
			&p.DisplayOrder,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan plan row: %w", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plan rows: %w", err)
	}

	if plans == nil {
		plans = []domain.Plan{}
	}

	return plans, nil
}

// Update modifies an existing plan in the database.
func (r *PlanRepository) Update(ctx context.Context, p *domain.Plan) error {
	p.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE plans
		SET plan_type = $1, plan_name = $2, price = $3, description = $4, features = $5,
		    cta = $6, is_active = $7, display_order = $8, updated_at = $9
		WHERE id = $10`

	ct, err := r.pool.Exec(ctx, query,
		p.PlanType,
		p.PlanName,
		p.Price,
		p.Description,
		p.Features,
		p.CTA,
		p.IsActive,
		p.DisplayOrder,
		p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("update plan: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("plan", p.ID)
	}

	return nil
}

// SoftDelete marks a plan inactive without removing the row.
func (r *PlanRepository) SoftDelete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE plans SET is_active = false, updated_at = $1 WHERE id = $2`,
		time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("soft delete plan: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("plan", id)
	}

	return nil
}
