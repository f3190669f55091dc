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

const portfolioColumns = "id, title, category, description, image_key, image_url, display_order, is_active, created_at, updated_at"

// PortfolioRepository implements repository.PortfolioRepository using PostgreSQL.
type PortfolioRepository struct {
	pool DBTX
}

// NewPortfolioRepository creates a new PostgreSQL-backed portfolio repository.
func NewPortfolioRepository(pool DBTX) *PortfolioRepository {
	return &PortfolioRepository{pool: pool}
}

// Create inserts a new portfolio item into the database.
func (r *PortfolioRepository) Create(ctx context.Context, p *domain.PortfolioItem) error {
	query := `
		INSERT INTO portfolio_items (id, title, category, description, image_key, image_url, display_order, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		p.ID,
		p.Title,
		p.Category,
		p.Description,
		p.ImageKey,
		p.ImageURL,
		p.DisplayOrder,
		p.IsActive,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert portfolio item: %w", err)
	}

	return nil
}

// GetByID retrieves a portfolio item by its ID.
func (r *PortfolioRepository) GetByID(ctx context.Context, id string) (*domain.PortfolioItem, error) {
	query := fmt.Sprintf("SELECT %s FROM portfolio_items WHERE id = $1", portfolioColumns)

	var p domain.PortfolioItem
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Title,
		&p.Category,
		&p.Description,
		&p.ImageKey,
		&p.ImageURL,
		&p.DisplayOrder,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan portfolio item: %w", err)
	}

	return &p, nil
}

// List returns portfolio items ordered by display order.
func (r *PortfolioRepository) List(ctx context.Context, activeOnly bool) ([]domain.PortfolioItem, error) {
	query := fmt.Sprintf("SELECT %s FROM portfolio_items", portfolioColumns)
	if activeOnly {
		query += " WHERE is_active = true"
	}
	query += " ORDER BY display_order ASC, created_at DESC"

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list portfolio items: %w", err)
	}
	defer rows.Close()

	var items []domain.PortfolioItem
	for rows.Next() {
		var p domain.PortfolioItem
		if err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.Category,
			&p.Description,
			&p.ImageKey,
			&p.ImageURL,
			&p.DisplayOrder,
			&p.IsActive,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan portfolio row: %w", err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate portfolio rows: %w", err)
	}

	if items == nil {
		items = []domain.PortfolioItem{}
	}

	return items, nil
}

// Update modifies an existing portfolio item in the database.
func (r *PortfolioRepository) Update(ctx context.Context, p *domain.PortfolioItem) error {
	p.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE portfolio_items
		SET title = $1, category = $2, description = $3, image_key = $4, image_url = $5,
		    display_order = $6, is_active = $7, updated_at = $8
		WHERE id = $9`

	ct, err := r.pool.Exec(ctx, query,
		p.Title,
		p.Category,
		p.Description,
		p.ImageKey,
		p.ImageURL,
		p.DisplayOrder,
		p.IsActive,
		p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("update portfolio item: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("portfolio item", p.ID)
	}

	return nil
}

// SoftDelete marks a portfolio item inactive without removing the row.
func (r *PortfolioRepository) SoftDelete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE portfolio_items SET is_active = false, updated_at = $1 WHERE id = $2`,
		time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("soft delete portfolio item: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("portfolio item", id)
	}

	return nil
}
