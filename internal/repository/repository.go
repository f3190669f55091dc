package repository

import (
	"context"
	"time"

	"github.com/souravcsewala/ads-ecom-backend/internal/domain"
	"github.com/souravcsewala/ads-ecom-backend/pkg/pagination"
)

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create inserts a new user into the store.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique identifier.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListByRole returns a page of users holding the given role, newest first.
	ListByRole(ctx context.Context, role string, params pagination.Params) ([]domain.User, int, error)

	// Update modifies an existing user in the store.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user from the store by their identifier.
	Delete(ctx context.Context, id string) error

	// CountAll returns the total number of user-role accounts.
	CountAll(ctx context.Context) (int64, error)
}

// PlanFilter narrows plan listings.
type PlanFilter struct {
	PlanType   string
	ActiveOnly bool
}

// PlanRepository defines the interface for plan persistence operations.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.Plan) error
	GetByID(ctx context.Context, id string) (*domain.Plan, error)

	// List returns plans matching the filter, ordered by display order.
	List(ctx context.Context, filter PlanFilter) ([]domain.Plan, error)

	Update(ctx context.Context, plan *domain.Plan) error

	// SoftDelete marks a plan inactive without removing the row.
	SoftDelete(ctx context.Context, id string) error
}

// PortfolioRepository defines the interface for portfolio persistence operations.
type PortfolioRepository interface {
	Create(ctx context.Context, item *domain.PortfolioItem) error
	GetByID(ctx context.Context, id string) (*domain.PortfolioItem, error)
	List(ctx context.Context, activeOnly bool) ([]domain.PortfolioItem, error)
	Update(ctx context.Context, item *domain.PortfolioItem) error
	SoftDelete(ctx context.Context, id string) error
}

// TeamRepository defines the interface for team member persistence operations.
type TeamRepository interface {
	Create(ctx context.Context, member *domain.TeamMember) error
	GetByID(ctx context.Context, id string) (*domain.TeamMember, error)
	List(ctx context.Context, activeOnly bool) ([]domain.TeamMember, error)
	Update(ctx context.Context, member *domain.TeamMember) error
	SoftDelete(ctx context.Context, id string) error
}

// DemoContentFilter narrows demo content listings.
type DemoContentFilter struct {
	ContentType string
	ActiveOnly  bool
}

// DemoContentRepository defines the interface for demo content persistence operations.
type DemoContentRepository interface {
	Create(ctx context.Context, item *domain.DemoContent) error
	GetByID(ctx context.Context, id string) (*domain.DemoContent, error)
	List(ctx context.Context, filter DemoContentFilter) ([]domain.DemoContent, error)
	Update(ctx context.Context, item *domain.DemoContent) error
	SoftDelete(ctx context.Context, id string) error
}

// OrderRepository defines the interface for order persistence operations.
type OrderRepository interface {
	// Create inserts an order together with its ads in one transaction.
	Create(ctx context.Context, order *domain.Order) error

	// GetByID retrieves an order with its ads.
	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// ListByCustomer returns a customer's orders, newest first.
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)

	// List returns a page of all orders, newest first.
	List(ctx context.Context, params pagination.Params) ([]domain.Order, int, error)

	// UpdateStatus changes the order status. A nil completedDate leaves the
	// completion stamp untouched.
	UpdateStatus(ctx context.Context, id, status string, completedDate *time.Time) error

	// UpdatePaymentStatus changes the payment status.
	UpdatePaymentStatus(ctx context.Context, id, status string) error

	// Delete removes an order and its ads.
	Delete(ctx context.Context, id string) error

	// Stats aggregates dashboard counters. Revenue covers paid orders only.
	Stats(ctx context.Context) (*domain.DashboardStats, error)
}

// MeetingFilter narrows meeting listings.
type MeetingFilter struct {
	Status   string
	Upcoming bool
	Past     bool
}

// MeetingRepository defines the interface for meeting persistence operations.
type MeetingRepository interface {
	Create(ctx context.Context, meeting *domain.Meeting) error
	GetByID(ctx context.Context, id string) (*domain.Meeting, error)
	List(ctx context.Context, filter MeetingFilter) ([]domain.Meeting, error)
	Update(ctx context.Context, meeting *domain.Meeting) error
	Delete(ctx context.Context, id string) error
}

// MeetingRequestRepository defines the interface for meeting request persistence operations.
type MeetingRequestRepository interface {
	Create(ctx context.Context, request *domain.MeetingRequest) error
	GetByID(ctx context.Context, id string) (*domain.MeetingRequest, error)

	// List returns requests newest first, optionally filtered by status.
	List(ctx context.Context, status string) ([]domain.MeetingRequest, error)

	Update(ctx context.Context, request *domain.MeetingRequest) error
	Delete(ctx context.Context, id string) error
}

// ResetTokenStore holds hashed password-reset tokens with expiry.
type ResetTokenStore interface {
	// Save stores a token hash for a user with the given TTL.
	Save(ctx context.Context, tokenHash, userID string, ttl time.Duration) error

	// Consume resolves a token hash to a user ID and invalidates it.
	// Unknown or expired hashes return an error.
	Consume(ctx context.Context, tokenHash string) (string, error)
}
