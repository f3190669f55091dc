package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/souravcsewala/ads-ecom-backend/internal/service"
	"github.com/souravcsewala/ads-ecom-backend/pkg/httputil"
	"github.com/souravcsewala/ads-ecom-backend/pkg/validator"
)

// PlanHandler handles HTTP requests for plan endpoints.
type PlanHandler struct {
	service *service.PlanService
	logger  *slog.Logger
}

// NewPlanHandler creates a new plan HTTP handler.
func NewPlanHandler(svc *service.PlanService, logger *slog.Logger) *PlanHandler {
	return &PlanHandler{service: svc, logger: logger}
}

// --- Request DTOs ---

// CreatePlanRequest is the JSON request body for creating a plan.
type CreatePlanRequest struct {
	PlanType     string   `json:"plan_type" validate:"required,oneof=image video"`
	PlanName     string   `json:"plan_name" validate:"required,min=1,max=200"`
	Price        float64  `json:"price" validate:"gte=0"`
	Description  string   `json:"description" validate:"omitempty,max=2000"`
	Features     []string `json:"features"`
	CTA          string   `json:"cta" validate:"omitempty,max=100"`
	DisplayOrder int      `json:"display_order"`
}

// UpdatePlanRequest is the JSON request body for updating a plan.
type UpdatePlanRequest struct {
	PlanName     *string  `json:"plan_name" validate:"omitempty,min=1,max=200"`
	Price        *float64 `json:"price" validate:"omitempty,gte=0"`
	Description  *string  `json:"description" validate:"omitempty,max=2000"`
	Features     []string `json:"features"`
	CTA          *string  `json:"cta" validate:"omitempty,max=100"`
	IsActive     *bool    `json:"is_active"`
	DisplayOrder *int     `json:"display_order"`
}

// --- Public handlers ---

// ListPublic handles GET /api/v1/plans
func (h *PlanHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	plans, err := h.service.ListPublic(r.Context(), r.URL.Query().Get("plan_type"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: plans})
}

// GetPublic handles GET /api/v1/plans/{id}
func (h *PlanHandler) GetPublic(w http.ResponseWriter, r *http.Request) {
	plan, err := h.service.GetPublic(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: plan})
}

// --- Admin handlers ---

// ListAll handles GET /api/v1/admin/plans
func (h *PlanHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	plans, err := h.service.ListAll(r.Context(), r.URL.Query().Get("plan_type"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: plans})
}

// Create handles POST /api/v1/admin/plans
func (h *PlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePlanRequest
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

	plan, err := h.service.Create(r.Context(), service.CreatePlanInput{
		PlanType:     req.PlanType,
		PlanName:     req.PlanName,
		Price:        req.Price,
		Description:  req.Description,
		Features:     req.Features,
		CTA:          req.CTA,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: plan})
}

// Update handles PUT /api/v1/admin/plans/{id}
func (h *PlanHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdatePlanRequest
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

	plan, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), service.UpdatePlanInput{
		PlanName:     req.PlanName,
		Price:        req.Price,
		Description:  req.Description,
		Features:     req.Features,
		CTA:          req.CTA,
		IsActive:     req.IsActive,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: plan})
}

// Delete handles DELETE /api/v1/admin/plans/{id}
func (h *PlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id, "status": "deleted"}})
}
