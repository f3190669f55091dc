package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/souravcsewala/ads-ecom-backend/internal/service"
	"github.com/souravcsewala/ads-ecom-backend/pkg/httputil"
	"github.com/souravcsewala/ads-ecom-backend/pkg/middleware"
	"github.com/souravcsewala/ads-ecom-backend/pkg/pagination"
	"github.com/souravcsewala/ads-ecom-backend/pkg/validator"
)

// OrderHandler handles HTTP requests for order endpoints.
type OrderHandler struct {
	service *service.OrderService
	logger  *slog.Logger
}

// NewOrderHandler creates a new order HTTP handler.
func NewOrderHandler(svc *service.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{service: svc, logger: logger}
}

// --- Request DTOs ---

// OrderAdRequest is one ad slot in an order request.
type OrderAdRequest struct {
	AdNumber             int    `json:"ad_number" validate:"required,min=1"`
	ReferenceImageURL    string `json:"reference_image_url" validate:"omitempty,url"`
	ReferenceImageKey    string `json:"reference_image_key"`
	ProductPageURL       string `json:"product_page_url" validate:"required,url"`
	SpecificInstructions string `json:"specific_instructions" validate:"omitempty,max=2000"`
}

// CreateOrderRequest is the JSON request body for placing an order.
type CreateOrderRequest struct {
	CustomerName    string           `json:"customer_name" validate:"required,min=1,max=200"`
	CustomerEmail   string           `json:"customer_email" validate:"required,email"`
	CustomerPhone   string           `json:"customer_phone" validate:"omitempty,max=20"`
	PlanType        string           `json:"plan_type" validate:"required,oneof=standard custom"`
	PlanName        string           `json:"plan_name" validate:"required,min=1,max=200"`
	PlanPrice       float64          `json:"plan_price" validate:"gte=0"`
	AdType          string           `json:"ad_type" validate:"required,oneof=image video"`
	NumberOfAds     int              `json:"number_of_ads" validate:"required,min=1"`
	BrandAssetsLink string           `json:"brand_assets_link" validate:"omitempty,url"`
	BrandAssetsKeys []string         `json:"brand_assets_keys"`
	Ads             []OrderAdRequest `json:"ads" validate:"required,min=1,dive"`
	MeetingInterest string           `json:"meeting_interest" validate:"omitempty,oneof=yes no"`
	MeetingDate     string           `json:"meeting_date"`
	MeetingTime     string           `json:"meeting_time"`
}

// UpdateOrderStatusRequest is the JSON request body for status changes.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdatePaymentStatusRequest is the JSON request body for payment status changes.
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required"`
}

// --- Handlers ---

// Create handles POST /api/v1/orders. Works for both authenticated
// customers and guests; an authenticated request attaches the customer ID.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	var customerID *string
	if id := middleware.UserIDFromContext(r.Context()); id != "" {
		customerID = &id
	}

	ads := make([]service.OrderAdInput, 0, len(req.Ads))
	for _, ad := range req.Ads {
		ads = append(ads, service.OrderAdInput{
			AdNumber:             ad.AdNumber,
			ReferenceImageURL:    ad.ReferenceImageURL,
			ReferenceImageKey:    ad.ReferenceImageKey,
			ProductPageURL:       ad.ProductPageURL,
			SpecificInstructions: ad.SpecificInstructions,
		})
	}

	order, err := h.service.Create(r.Context(), service.CreateOrderInput{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		PlanType:        req.PlanType,
		PlanName:        req.PlanName,
		PlanPrice:       req.PlanPrice,
		AdType:          req.AdType,
		NumberOfAds:     req.NumberOfAds,
		BrandAssetsLink: req.BrandAssetsLink,
		BrandAssetsKeys: req.BrandAssetsKeys,
		Ads:             ads,
		MeetingInterest: req.MeetingInterest,
		MeetingDate:     req.MeetingDate,
		MeetingTime:     req.MeetingTime,
	}, customerID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: order})
}

// MyOrders handles GET /api/v1/orders/my
func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		writeUnauthenticated(w)
		return
	}

	orders, err := h.service.MyOrders(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: orders})
}

// Get handles GET /api/v1/orders/{id}
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.Get(
		r.Context(),
		chi.URLParam(r, "id"),
		middleware.UserIDFromContext(r.Context()),
		middleware.RoleFromContext(r.Context()),
	)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: order})
}

// --- Admin handlers ---

// List handles GET /api/v1/admin/orders
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context(), pagination.FromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// UpdateStatus handles PATCH /api/v1/admin/orders/{id}/status
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: order})
}

// UpdatePaymentStatus handles PATCH /api/v1/admin/orders/{id}/payment-status
func (h *OrderHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdatePaymentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	order, err := h.service.UpdatePaymentStatus(r.Context(), chi.URLParam(r, "id"), req.PaymentStatus)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: order})
}

// Delete handles DELETE /api/v1/admin/orders/{id}
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id, "status": "deleted"}})
}

// DashboardStats handles GET /api/v1/admin/dashboard/stats
func (h *OrderHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.DashboardStats(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: stats})
}
