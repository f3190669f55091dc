package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/souravcsewala/ads-ecom-backend/internal/domain"
	pkgkafka "github.com/souravcsewala/ads-ecom-backend/pkg/kafka"
)

// Kafka topic constants for platform events. The notification consumer
// turns these into customer and admin emails.
const (
	TopicUserRegistered         = "adsecom.user.registered"
	TopicPasswordResetRequested = "adsecom.user.password_reset_requested"
	TopicOrderCreated           = "adsecom.order.created"
	TopicOrderStatusChanged     = "adsecom.order.status_changed"
	TopicMeetingRequestCreated  = "adsecom.meeting_request.created"
)

// Aggregate type constants.
const (
	AggregateTypeUser           = "user"
	AggregateTypeOrder          = "order"
	AggregateTypeMeetingRequest = "meeting_request"
)

// Source identifier for events originating from this service.
const Source = "ads-ecom-backend"

// UserRegisteredData is the payload for a user.registered event.
type UserRegisteredData struct {
	ID       string `json:"id"`
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// PasswordResetRequestedData is the payload for a password_reset_requested
// event. Token is the raw reset token the notification consumer embeds in
// the email link; only its hash is stored server side.
type PasswordResetRequestedData struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

// OrderCreatedData is the payload for an order.created event.
type OrderCreatedData struct {
	OrderID          string    `json:"order_id"`
	CustomerName     string    `json:"customer_name"`
	CustomerEmail    string    `json:"customer_email"`
	PlanName         string    `json:"plan_name"`
	PlanPrice        float64   `json:"plan_price"`
	AdType           string    `json:"ad_type"`
	NumberOfAds      int       `json:"number_of_ads"`
	IsGuest          bool      `json:"is_guest"`
	DeliveryDeadline time.Time `json:"delivery_deadline"`
}

// OrderStatusChangedData is the payload for an order.status_changed event.
type OrderStatusChangedData struct {
	OrderID       string `json:"order_id"`
	CustomerEmail string `json:"customer_email"`
	OldStatus     string `json:"old_status"`
	NewStatus     string `json:"new_status"`
}

// MeetingRequestCreatedData is the payload for a meeting_request.created event.
type MeetingRequestCreatedData struct {
	RequestID     string `json:"request_id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	PreferredDate string `json:"preferred_date"`
	PreferredTime string `json:"preferred_time"`
}

// Producer publishes platform events to Kafka. Publish failures are the
// caller's to log; none of them should fail an HTTP request.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishUserRegistered publishes a user.registered event.
func (p *Producer) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	data := UserRegisteredData{
		ID:       user.ID,
		FullName: user.FullName,
		Email:    user.Email,
		Role:     user.Role,
	}
	return p.publish(ctx, TopicUserRegistered, user.ID, AggregateTypeUser, data)
}

// PublishPasswordResetRequested publishes a password_reset_requested event.
func (p *Producer) PublishPasswordResetRequested(ctx context.Context, user *domain.User, token string) error {
	data := PasswordResetRequestedData{
		UserID: user.ID,
		Email:  user.Email,
		Token:  token,
	}
	return p.publish(ctx, TopicPasswordResetRequested, user.ID, AggregateTypeUser, data)
}

// PublishOrderCreated publishes an order.created event.
func (p *Producer) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	data := OrderCreatedData{
		OrderID:          order.ID,
		CustomerName:     order.CustomerName,
		CustomerEmail:    order.CustomerEmail,
		PlanName:         order.PlanName,
		PlanPrice:        order.PlanPrice,
		AdType:           order.AdType,
		NumberOfAds:      order.NumberOfAds,
		IsGuest:          order.IsGuest(),
		DeliveryDeadline: order.DeliveryDeadline,
	}
	return p.publish(ctx, TopicOrderCreated, order.ID, AggregateTypeOrder, data)
}

// PublishOrderStatusChanged publishes an order.status_changed event.
func (p *Producer) PublishOrderStatusChanged(ctx context.Context, order *domain.Order, oldStatus string) error {
	data := OrderStatusChangedData{
		OrderID:       order.ID,
		CustomerEmail: order.CustomerEmail,
		OldStatus:     oldStatus,
		NewStatus:     order.Status,
	}
	return p.publish(ctx, TopicOrderStatusChanged, order.ID, AggregateTypeOrder, data)
}

// PublishMeetingRequestCreated publishes a meeting_request.created event.
func (p *Producer) PublishMeetingRequestCreated(ctx context.Context, request *domain.MeetingRequest) error {
	data := MeetingRequestCreatedData{
		RequestID:     request.ID,
		Name:          request.Name,
		Email:         request.Email,
		PreferredDate: request.PreferredDate,
		PreferredTime: request.PreferredTime,
	}
	return p.publish(ctx, TopicMeetingRequestCreated, request.ID, AggregateTypeMeetingRequest, data)
}

func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) error {
	event, err := pkgkafka.NewEvent(topic, aggregateID, aggregateType, Source, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	return nil
}
