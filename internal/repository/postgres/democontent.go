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

const demoContentColumns = "id, title, content_type, category, description, image_key, image_url, video_key, video_url, thumbnail_key, thumbnail_url, display_order, is_active, created_at, updated_at"

// DemoContentRepository implements repository.DemoContentRepository using PostgreSQL.
type DemoContentRepository struct {
	pool DBTX
}

// NewDemoContentRepository creates a new PostgreSQL-backed demo content repository.
func NewDemoContentRepository(pool DBTX) *DemoContentRepository {
	return &DemoContentRepository{pool: pool}
}

// Create inserts a new demo content item into the database.
func (r *DemoContentRepository) Create(ctx context.Context, d *domain.DemoContent) error {
	query := `
		INSERT INTO demo_content (id, title, content_type, category, description, image_key, image_url, video_key, video_url, thumbnail_key, thumbnail_url, display_order, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.pool.Exec(ctx, query,
		d.ID,
		d.Title,
		d.ContentType,
		d.Category,
		d.Description,
		d.ImageKey,
		d.ImageURL,
		d.VideoKey,
		d.VideoURL,
		d.ThumbnailKey,
		d.ThumbnailURL,
		d.DisplayOrder,
		d.IsActive,
		d.CreatedAt,
		d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert demo content: %w", err)
	}

	return nil
}

// GetByID retrieves a demo content item by its ID.
func (r *DemoContentRepository) GetByID(ctx context.Context, id string) (*domain.DemoContent, error) {
	query := fmt.Sprintf("SELECT %s FROM demo_content WHERE id = $1", demoContentColumns)

	var d domain.DemoContent
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&d.ID,
		&d.Title,
		&d.ContentType,
		&d.Category,
		&d.Description,
		&d.ImageKey,
		&d.ImageURL,
		&d.VideoKey,
		&d.VideoURL,
		&d.ThumbnailKey,
		&d.ThumbnailURL,
		&d.DisplayOrder,
		&d.IsActive,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan demo content: %w", err)
	}

	return &d, nil
}

// List returns demo content matching the filter, ordered by display order.
func (r *DemoContentRepository) List(ctx context.Context, filter repository.DemoContentFilter) ([]domain.DemoContent, error) {
	query := fmt.Sprintf("SELECT %s FROM demo_content WHERE 1=1", demoContentColumns)
	args := []any{}

	if filter.ActiveOnly {
		query += " AND is_active = true"
	}
	if filter.ContentType != "" {
		args = append(args, filter.ContentType)
		query += fmt.Sprintf(" AND content_type = $%d", len(args))
	}
	query += " ORDER BY display_order ASC, created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list demo content: %w", err)
	}
	defer rows.Close()

	var items []domain.DemoContent
	for rows.Next() {
		var d domain.DemoContent
		if err := rows.Scan(
			&d.ID,
			&d.Title,
			&d.ContentType,
			&d.Category,
			&d.Description,
			&d.ImageKey,
			&d.ImageURL,
			&d.VideoKey,
			&d.VideoURL,
			&d.ThumbnailKey,
			&d.ThumbnailURL,
			&d.DisplayOrder,
			&d.IsActive,
			&d.CreatedAt,
			&d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan demo content row: %w", err)
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate demo content rows: %w", err)
	}

	if items == nil {
		items = []domain.DemoContent{}
	}

	return items, nil
}

// Update modifies an existing demo content item in the database.
func (r *DemoContentRepository) Update(ctx context.Context, d *domain.DemoContent) error {
	d.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE demo_content
		SET title = $1, content_type = $2, category = $3, description = $4,
		    image_key = $5, image_url = $6, video_key = $7, video_url = $8,
		    thumbnail_key = $9, thumbnail_url = $10, display_order = $11,
		    is_active = $12, updated_at = $13
		WHERE id = $14`

	ct, err := r.pool.Exec(ctx, query,
		d.Title,
		d.ContentType,
		d.Category,
		d.Description,
		d.ImageKey,
		d.ImageURL,
		d.VideoKey,
		d.VideoURL,
		d.ThumbnailKey,
		d.ThumbnailURL,
		d.DisplayOrder,
		d.IsActive,
		d.UpdatedAt,
		d.ID,
	)
	if err != nil {
		return fmt.Errorf("update demo content: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("demo content", d.ID)
	}

	return nil
}

// SoftDelete marks a demo content item inactive without removing the row.
func (r *DemoContentRepository) SoftDelete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE demo_content SET is_active = false, updated_at = $1 WHERE id = $2`,
		time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("soft delete demo content: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("demo content", id)
	}

	return nil
}
