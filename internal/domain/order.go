package domain

import "time"

// Order status constants.
const (
	OrderStatusPending    = "pending"
	OrderStatusInProgress = "in_progress"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// Payment status constants.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// Order plan type constants. Standard orders reference a published plan;
// custom orders carry negotiated pricing.
const (
	OrderPlanTypeStandard = "standard"
	OrderPlanTypeCustom   = "custom"
)

// Ad type constants.
const (
	AdTypeImage = "image"
	AdTypeVideo = "video"
)

// Meeting interest constants.
const (
	MeetingInterestYes = "yes"
	MeetingInterestNo  = "no"
)

// DeliveryWindow is how long after order placement delivery is promised.
const DeliveryWindow = 5 * 24 * time.Hour

// Order represents a placed ad production order. CustomerID is nil for
// guest orders.
type Order struct {
	ID               string    `json:"id"`
	CustomerID       *string   `json:"customer_id"`
	CustomerName     string    `json:"customer_name"`
	CustomerEmail    string    `json:"customer_email"`
	CustomerPhone    string    `json:"customer_phone,omitempty"`
	PlanType         string    `json:"plan_type"`
	PlanName         string    `json:"plan_name"`
	PlanPrice        float64   `json:"plan_price"`
	AdType           string    `json:"ad_type"`
	NumberOfAds      int       `json:"number_of_ads"`
	BrandAssetsLink  string    `json:"brand_assets_link"`
	BrandAssetsKeys  []string  `json:"brand_assets_keys,omitempty"`
	Ads              []OrderAd `json:"ads"`
	MeetingInterest  string    `json:"meeting_interest,omitempty"`
	MeetingDate      string    `json:"meeting_date,omitempty"`
	MeetingTime      string    `json:"meeting_time,omitempty"`
	Status           string    `json:"status"`
	PaymentStatus    string    `json:"payment_status"`
	DeliveryDeadline time.Time `json:"delivery_deadline"`
	CompletedDate    *time.Time `json:"completed_date,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// OrderAd is a single ad slot inside an order. AdNumber runs 1..NumberOfAds.
type OrderAd struct {
	ID                   string `json:"id"`
	AdNumber             int    `json:"ad_number"`
	ReferenceImageURL    string `json:"reference_image_url"`
	ReferenceImageKey    string `json:"reference_image_key,omitempty"`
	ProductPageURL       string `json:"product_page_url"`
	SpecificInstructions string `json:"specific_instructions,omitempty"`
}

// IsGuest reports whether the order was placed without an account.
func (o *Order) IsGuest() bool {
	return o.CustomerID == nil
}

// ValidOrderStatuses returns all valid order statuses.
func ValidOrderStatuses() []string {
	return []string{
		OrderStatusPending,
		OrderStatusInProgress,
		OrderStatusCompleted,
		OrderStatusCancelled,
	}
}

// IsValidOrderStatus checks if a status string is valid.
func IsValidOrderStatus(status string) bool {
	for _, s := range ValidOrderStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// ValidPaymentStatuses returns all valid payment statuses.
func ValidPaymentStatuses() []string {
	return []string{
		PaymentStatusPending,
		PaymentStatusPaid,
		PaymentStatusFailed,
		PaymentStatusRefunded,
	}
}

// IsValidPaymentStatus checks if a payment status string is valid.
func IsValidPaymentStatus(status string) bool {
	for _, s := range ValidPaymentStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// IsValidOrderPlanType checks if an order plan type string is valid.
func IsValidOrderPlanType(planType string) bool {
	return planType == OrderPlanTypeStandard || planType == OrderPlanTypeCustom
}

// IsValidAdType checks if an ad type string is valid.
func IsValidAdType(adType string) bool {
	return adType == AdTypeImage || adType == AdTypeVideo
}

// DashboardStats aggregates order and user counts for the admin dashboard.
// Revenue counts paid orders only.
type DashboardStats struct {
	TotalOrders     int64   `json:"total_orders"`
	PendingOrders   int64   `json:"pending_orders"`
	CompletedOrders int64   `json:"completed_orders"`
	TotalUsers      int64   `json:"total_users"`
	TotalRevenue    float64 `json:"total_revenue"`
}
