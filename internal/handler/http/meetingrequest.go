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

// MeetingRequestHandler handles HTTP requests for public call requests.
type MeetingRequestHandler struct {
	service *service.MeetingRequestService
	logger  *slog.Logger
}

// NewMeetingRequestHandler creates a new meeting request HTTP handler.
func NewMeetingRequestHandler(svc *service.MeetingRequestService, logger *slog.Logger) *MeetingRequestHandler {
	return &MeetingRequestHandler{service: svc, logger: logger}
}

// --- Request DTOs ---

// CreateMeetingRequestRequest is the JSON request body for the public
// contact form.
type CreateMeetingRequestRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=200"`
	Email         string `json:"email" validate:"required,email"`
	ContactNumber string `json:"contact_number" validate:"required,max=20"`
	PreferredDate string `json:"preferred_date" validate:"required"`
	PreferredTime string `json:"preferred_time" validate:"required"`
	Message       string `json:"message" validate:"omitempty,max=2000"`
}

// UpdateMeetingRequestRequest is the JSON request body for admin updates.
type UpdateMeetingRequestRequest struct {
	Status     *string `json:"status"`
	AdminNotes *string `json:"admin_notes" validate:"omitempty,max=5000"`
}

// --- Handlers ---

// Create handles POST /api/v1/meeting-requests (public).
func (h *MeetingRequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMeetingRequestRequest
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

	request, err := h.service.Create(r.Context(), service.CreateMeetingRequestInput{
		Name:          req.Name,
		Email:         req.Email,
		ContactNumber: req.ContactNumber,
		PreferredDate: req.PreferredDate,
		PreferredTime: req.PreferredTime,
		Message:       req.Message,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: request})
}

// List handles GET /api/v1/admin/meeting-requests
func (h *MeetingRequestHandler) List(w http.ResponseWriter, r *http.Request) {
	requests, err := h.service.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: requests})
}

// Get handles GET /api/v1/admin/meeting-requests/{id}
func (h *MeetingRequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	request, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: request})
}

// Update handles PATCH /api/v1/admin/meeting-requests/{id}
func (h *MeetingRequestHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateMeetingRequestRequest
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

	request, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), service.UpdateMeetingRequestInput{
		Status:     req.Status,
		AdminNotes: req.AdminNotes,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: request})
}

// Delete handles DELETE /api/v1/admin/meeting-requests/{id}
func (h *MeetingRequestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id, "status": "deleted"}})
}
