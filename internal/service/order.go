package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/souravcsewala/ads-ecom-backend/internal/domain"
	"github.com/souravcsewala/ads-ecom-backend/internal/event"
	"github.com/souravcsewala/ads-ecom-backend/internal/repository"
	apperrors "github.com/souravcsewala/ads-ecom-backend/pkg/errors"
	"github.com/souravcsewala/ads-ecom-backend/pkg/pagination"
)

// OrderService implements the business logic for orders.
type OrderService struct {
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	producer  *event.Producer
	logger    *slog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	producer *event.Producer,
	logger *slog.Logger,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		producer:  producer,
		logger:    logger,
	}
}

// OrderAdInput describes one ad slot on a new order.
type OrderAdInput struct {
	AdNumber             int
	ReferenceImageURL    string
	ReferenceImageKey    string
	ProductPageURL       string
	SpecificInstructions string
}

// CreateOrderInput holds the parameters for placing an order. CustomerID is
// empty for guest checkout.
type CreateOrderInput struct {
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	PlanType        string
	PlanName        string
	PlanPrice       float64
	AdType          string
	NumberOfAds     int
	BrandAssetsLink string
	BrandAssetsKeys []string
	Ads             []OrderAdInput
	MeetingInterest string
	MeetingDate     string
	MeetingTime     string
}

// Create validates and places an order, then publishes an order.created
// event. Publish failures are logged; the order stands regardless.
func (s *OrderService) Create(ctx context.Context, input CreateOrderInput, customerID *string) (*domain.Order, error) {
	if input.CustomerName == "" {
		return nil, apperrors.InvalidInput("customer name is required")
	}
	if input.CustomerEmail == "" {
		return nil, apperrors.InvalidInput("customer email is required")
	}
	if !domain.IsValidOrderPlanType(input.PlanType) {
		return nil, apperrors.InvalidInput("plan type must be standard or custom")
	}
	if input.PlanName == "" {
		return nil, apperrors.InvalidInput("plan name is required")
	}
	if input.PlanPrice < 0 {
		return nil, apperrors.InvalidInput("plan price cannot be negative")
	}
	if !domain.IsValidAdType(input.AdType) {
		return nil, apperrors.InvalidInput("ad type must be image or video")
	}
	if input.NumberOfAds <= 0 {
		return nil, apperrors.InvalidInput("number of ads must be positive")
	}
	if len(input.Ads) == 0 {
		return nil, apperrors.InvalidInput("at least one ad is required")
	}
	if len(input.Ads) != input.NumberOfAds {
		return nil, apperrors.InvalidInput(fmt.Sprintf("expected %d ads, got %d", input.NumberOfAds, len(input.Ads)))
	}

	seen := make(map[int]bool, len(input.Ads))
	for _, ad := range input.Ads {
		if ad.AdNumber < 1 || ad.AdNumber > input.NumberOfAds {
			return nil, apperrors.InvalidInput(fmt.Sprintf("ad number %d out of range 1..%d", ad.AdNumber, input.NumberOfAds))
		}
		if seen[ad.AdNumber] {
			return nil, apperrors.InvalidInput(fmt.Sprintf("duplicate ad number %d", ad.AdNumber))
		}
		seen[ad.AdNumber] = true
		if ad.ProductPageURL == "" {
			return nil, apperrors.InvalidInput(fmt.Sprintf("product page url is required for ad %d", ad.AdNumber))
		}
	}

	meetingInterest := input.MeetingInterest
	if meetingInterest == "" {
		meetingInterest = domain.MeetingInterestNo
	}
	if meetingInterest != domain.MeetingInterestYes && meetingInterest != domain.MeetingInterestNo {
		return nil, apperrors.InvalidInput("meeting interest must be yes or no")
	}
	meetingDate, meetingTime := "", ""
	if meetingInterest == domain.MeetingInterestYes {
		if input.MeetingDate == "" || input.MeetingTime == "" {
			return nil, apperrors.InvalidInput("meeting date and time are required when meeting interest is yes")
		}
		meetingDate, meetingTime = input.MeetingDate, input.MeetingTime
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:               uuid.New().String(),
		CustomerID:       customerID,
		CustomerName:     input.CustomerName,
		CustomerEmail:    input.CustomerEmail,
		CustomerPhone:    input.CustomerPhone,
		PlanType:         input.PlanType,
		PlanName:         input.PlanName,
		PlanPrice:        input.PlanPrice,
		AdType:           input.AdType,
		NumberOfAds:      input.NumberOfAds,
		BrandAssetsLink:  input.BrandAssetsLink,
		BrandAssetsKeys:  input.BrandAssetsKeys,
		MeetingInterest:  meetingInterest,
		MeetingDate:      meetingDate,
		MeetingTime:      meetingTime,
		Status:           domain.OrderStatusPending,
		PaymentStatus:    domain.PaymentStatusPending,
		DeliveryDeadline: now.Add(domain.DeliveryWindow),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	for _, ad := range input.Ads {
		order.Ads = append(order.Ads, domain.OrderAd{
			ID:                   uuid.New().String(),
			AdNumber:             ad.AdNumber,
			ReferenceImageURL:    ad.ReferenceImageURL,
			ReferenceImageKey:    ad.ReferenceImageKey,
			ProductPageURL:       ad.ProductPageURL,
			SpecificInstructions: ad.SpecificInstructions,
		})
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := s.producer.PublishOrderCreated(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.created event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order created",
		slog.String("order_id", order.ID),
		slog.Bool("guest", order.IsGuest()),
		slog.Int("number_of_ads", order.NumberOfAds),
	)

	return order, nil
}

// MyOrders returns the authenticated customer's orders, newest first.
func (s *OrderService) MyOrders(ctx context.Context, customerID string) ([]domain.Order, error) {
	return s.orderRepo.ListByCustomer(ctx, customerID)
}

// Get returns an order visible to its owner or any admin. Guest orders are
// admin-only.
func (s *OrderService) Get(ctx context.Context, id, actorID, actorRole string) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actorRole != domain.RoleAdmin {
		if order.CustomerID == nil || *order.CustomerID != actorID {
			return nil, apperrors.Forbidden("you do not have access to this order")
		}
	}

	return order, nil
}

// List returns a page of all orders for the admin panel.
func (s *OrderService) List(ctx context.Context, params pagination.Params) (*pagination.Result[domain.Order], error) {
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	result := pagination.NewResult(orders, total, params)
	return &result, nil
}

// UpdateStatus changes an order's status. Completion stamps the completed
// date and a status_changed event is published on every transition.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	if !domain.IsValidOrderStatus(status) {
		return nil, apperrors.InvalidInput("invalid order status")
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldStatus := order.Status

	var completedDate *time.Time
	if status == domain.OrderStatusCompleted {
		now := time.Now().UTC()
		completedDate = &now
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, status, completedDate); err != nil {
		return nil, err
	}
	order.Status = status
	if completedDate != nil {
		order.CompletedDate = completedDate
	}

	if err := s.producer.PublishOrderStatusChanged(ctx, order, oldStatus); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.status_changed event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order status updated",
		slog.String("order_id", order.ID),
		slog.String("old_status", oldStatus),
		slog.String("new_status", status),
	)

	return order, nil
}

// UpdatePaymentStatus changes an order's payment status.
func (s *OrderService) UpdatePaymentStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	if !domain.IsValidPaymentStatus(status) {
		return nil, apperrors.InvalidInput("invalid payment status")
	}

	if err := s.orderRepo.UpdatePaymentStatus(ctx, id, status); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "order payment status updated",
		slog.String("order_id", order.ID),
		slog.String("payment_status", status),
	)

	return order, nil
}

// Delete removes an order and its ads.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	return s.orderRepo.Delete(ctx, id)
}

// DashboardStats combines order aggregates with the customer count.
func (s *OrderService) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	stats, err := s.orderRepo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("order stats: %w", err)
	}

	users, err := s.userRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	stats.TotalUsers = users

	return stats, nil
}
