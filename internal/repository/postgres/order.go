package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/souravcsewala/ads-ecom-backend/internal/domain"
	apperrors "github.com/souravcsewala/ads-ecom-backend/pkg/errors"
	"github.com/souravcsewala/ads-ecom-backend/pkg/pagination"
)

const orderColumns = "id, customer_id, customer_name, customer_email, customer_phone, plan_type, plan_name, plan_price, ad_type, number_of_ads, brand_assets_link, brand_assets_keys, meeting_interest, meeting_date, meeting_time, status, payment_status, delivery_deadline, completed_date, created_at, updated_at"

// OrderRepository implements repository.OrderRepository using PostgreSQL.
// Ads live in the order_ads table; brand asset keys are a JSONB array.
type OrderRepository struct {
	pool DBTX
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool DBTX) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create inserts an order together with its ads in one transaction.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO orders (id, customer_id, customer_name, customer_email, customer_phone, plan_type, plan_name, plan_price, ad_type, number_of_ads, brand_assets_link, brand_assets_keys, meeting_interest, meeting_date, meeting_time, status, payment_status, delivery_deadline, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`

	_, err = tx.Exec(ctx, query,
		o.ID,
		o.CustomerID,
		o.CustomerName,
		o.CustomerEmail,
		o.CustomerPhone,
		o.PlanType,
		o.PlanName,
		o.PlanPrice,
		o.AdType,
		o.NumberOfAds,
		o.BrandAssetsLink,
		o.BrandAssetsKeys,
		o.MeetingInterest,
		o.MeetingDate,
		o.MeetingTime,
		o.Status,
		o.PaymentStatus,
		o.DeliveryDeadline,
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	adQuery := `
		INSERT INTO order_ads (id, order_id, ad_number, reference_image_url, reference_image_key, product_page_url, specific_instructions)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	for _, ad := range o.Ads {
		_, err = tx.Exec(ctx, adQuery,
			ad.ID,
			o.ID,
			ad.AdNumber,
			ad.ReferenceImageURL,
			ad.ReferenceImageKey,
			ad.ProductPageURL,
			ad.SpecificInstructions,
		)
		if err != nil {
			return fmt.Errorf("insert order ad %d: %w", ad.AdNumber, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// GetByID retrieves an order with its ads.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := fmt.Sprintf("SELECT %s FROM orders WHERE id = $1", orderColumns)

	var o domain.Order
	err := r.pool.QueryRow(ctx, query, id).Scan(orderFields(&o)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}

	ads, err := r.listAds(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Ads = ads

	return &o, nil
}

// ListByCustomer returns a customer's orders with their ads, newest first.
func (r *OrderRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	query := fmt.Sprintf("SELECT %s FROM orders WHERE customer_id = $1 ORDER BY created_at DESC", orderColumns)

	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list customer orders: %w", err)
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		ads, err := r.listAds(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Ads = ads
	}

	return orders, nil
}

// List returns a page of all orders, newest first. Ads are loaded per order.
func (r *OrderRepository) List(ctx context.Context, params pagination.Params) ([]domain.Order, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, count(*) OVER() AS total_count
		FROM orders
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, orderColumns)

	rows, err := r.pool.Query(ctx, query, params.PerPage, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	var total int
	for rows.Next() {
		var o domain.Order
		fields := append(orderFields(&o), &total)
		if err := rows.Scan(fields...); err != nil {
			return nil, 0, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate order rows: %w", err)
	}

	for i := range orders {
		ads, err := r.listAds(ctx, orders[i].ID)
		if err != nil {
			return nil, 0, err
		}
		orders[i].Ads = ads
	}

	if orders == nil {
		orders = []domain.Order{}
	}

	return orders, total, nil
}

// UpdateStatus changes the order status, stamping completed_date when given.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id, status string, completedDate *time.Time) error {
	query := `
		UPDATE orders
		SET status = $1, completed_date = COALESCE($2, completed_date), updated_at = $3
		WHERE id = $4`

	ct, err := r.pool.Exec(ctx, query, status, completedDate, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("order", id)
	}

	return nil
}

// UpdatePaymentStatus changes the payment status.
func (r *OrderRepository) UpdatePaymentStatus(ctx context.Context, id, status string) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE orders SET payment_status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("order", id)
	}

	return nil
}

// Delete removes an order; order_ads rows cascade.
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("order", id)
	}

	return nil
}

// Stats aggregates dashboard counters in a single query. Revenue is the sum
// of plan_price * number_of_ads over paid orders.
func (r *OrderRepository) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	query := `
		SELECT
			count(*) AS total_orders,
			count(*) FILTER (WHERE status = 'pending') AS pending_orders,
			count(*) FILTER (WHERE status = 'completed') AS completed_orders,
			COALESCE(sum(plan_price * number_of_ads) FILTER (WHERE payment_status = 'paid'), 0) AS total_revenue
		FROM orders`

	var s domain.DashboardStats
	err := r.pool.QueryRow(ctx, query).Scan(
		&s.TotalOrders,
		&s.PendingOrders,
		&s.CompletedOrders,
		&s.TotalRevenue,
	)
	if err != nil {
		return nil, fmt.Errorf("aggregate order stats: %w", err)
	}

	return &s, nil
}

// listAds returns an order's ads ordered by ad number.
func (r *OrderRepository) listAds(ctx context.Context, orderID string) ([]domain.OrderAd, error) {
	query := `
		SELECT id, ad_number, reference_image_url, reference_image_key, product_page_url, specific_instructions
		FROM order_ads
		WHERE order_id = $1
		ORDER BY ad_number ASC`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order ads: %w", err)
	}
	defer rows.Close()

	var ads []domain.OrderAd
	for rows.Next() {
		var ad domain.OrderAd
		if err := rows.Scan(
			&ad.ID,
			&ad.AdNumber,
			&ad.ReferenceImageURL,
			&ad.ReferenceImageKey,
			&ad.ProductPageURL,
			&ad.SpecificInstructions,
		); err != nil {
			return nil, fmt.Errorf("scan order ad row: %w", err)
		}
		ads = append(ads, ad)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order ad rows: %w", err)
	}

	if ads == nil {
		ads = []domain.OrderAd{}
	}

	return ads, nil
}

// orderFields returns scan destinations matching orderColumns.
func orderFields(o *domain.Order) []any {
	return []any{
		&o.ID,
		&o.CustomerID,
		&o.CustomerName,
		&o.CustomerEmail,
		&o.CustomerPhone,
		&o.PlanType,
		&o.PlanName,
		&o.PlanPrice,
		&o.AdType,
		&o.NumberOfAds,
		&o.BrandAssetsLink,
		&o.BrandAssetsKeys,
		&o.MeetingInterest,
		&o.MeetingDate,
		&o.MeetingTime,
		&o.Status,
		&o.PaymentStatus,
		&o.DeliveryDeadline,
		&o.CompletedDate,
		&o.CreatedAt,
		&o.UpdatedAt,
	}
}

// scanOrders drains rows whose columns match orderColumns.
func scanOrders(rows pgx.Rows) ([]domain.Order, error) {
	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(orderFields(&o)...); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	if orders == nil {
		orders = []domain.Order{}
	}

	return orders, nil
}
