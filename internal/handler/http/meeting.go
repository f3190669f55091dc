package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/souravcsewala/ads-ecom-backend/internal/repository"
	"github.com/souravcsewala/ads-ecom-backend/internal/service"
	"github.com/souravcsewala/ads-ecom-backend/pkg/httputil"
	"github.com/souravcsewala/ads-ecom-backend/pkg/validator"
)

// MeetingHandler handles HTTP requests for scheduled meeting endpoints.
type MeetingHandler struct {
	service *service.MeetingService
	logger  *slog.Logger
}

// NewMeetingHandler creates a new meeting HTTP handler.
func NewMeetingHandler(svc *service.MeetingService, logger *slog.Logger) *MeetingHandler {
	return &MeetingHandler{service: svc, logger: logger}
}

// --- Request DTOs ---

// CreateMeetingRequest is the JSON request body for scheduling a meeting.
type CreateMeetingRequest struct {
	CustomerID  string `json:"customer_id" validate:"required"`
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	Date        string `json:"date" validate:"required"`
	Time        string `json:"time" validate:"required"`
	Duration    int    `json:"duration" validate:"omitempty,min=1"`
	Timezone    string `json:"timezone" validate:"omitempty,max=50"`
	MeetingLink string `json:"meeting_link" validate:"omitempty,url"`
}

// UpdateMeetingRequest is the JSON request body for updating a meeting.
type UpdateMeetingRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Duration    *int    `json:"duration" validate:"omitempty,min=1"`
	Timezone    *string `json:"timezone" validate:"omitempty,max=50"`
	MeetingLink *string `json:"meeting_link" validate:"omitempty,url"`
	Status      *string `json:"status"`
}

// UpdateMeetingNotesRequest is the JSON request body for editing notes.
type UpdateMeetingNotesRequest struct {
	PreNotes     *string `json:"pre_notes" validate:"omitempty,max=5000"`
	PostNotes    *string `json:"post_notes" validate:"omitempty,max=5000"`
	GeneralNotes *string `json:"general_notes" validate:"omitempty,max=5000"`
}

// --- Handlers ---

// Create handles POST /api/v1/admin/meetings
func (h *MeetingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMeetingRequest
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

	meeting, err := h.service.Create(r.Context(), service.CreateMeetingInput{
		CustomerID:  req.CustomerID,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Duration:    req.Duration,
		Timezone:    req.Timezone,
		MeetingLink: req.MeetingLink,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: meeting})
}

// List handles GET /api/v1/admin/meetings with status, upcoming and past
// query filters.
func (h *MeetingHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.MeetingFilter{
		Status:   q.Get("status"),
		Upcoming: q.Get("upcoming") == "true",
		Past:     q.Get("past") == "true",
	}

	meetings, err := h.service.List(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: meetings})
}

// Get handles GET /api/v1/admin/meetings/{id}
func (h *MeetingHandler) Get(w http.ResponseWriter, r *http.Request) {
	meeting, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: meeting})
}

// Update handles PUT /api/v1/admin/meetings/{id}
func (h *MeetingHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateMeetingRequest
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

	meeting, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), service.UpdateMeetingInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Duration:    req.Duration,
		Timezone:    req.Timezone,
		MeetingLink: req.MeetingLink,
		Status:      req.Status,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: meeting})
}

// UpdateNotes handles PATCH /api/v1/admin/meetings/{id}/notes
func (h *MeetingHandler) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	var req UpdateMeetingNotesRequest
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

	meeting, err := h.service.UpdateNotes(r.Context(), chi.URLParam(r, "id"), service.UpdateMeetingNotesInput{
		PreNotes:     req.PreNotes,
		PostNotes:    req.PostNotes,
		GeneralNotes: req.GeneralNotes,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: meeting})
}

// Delete handles DELETE /api/v1/admin/meetings/{id}
func (h *MeetingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id, "status": "deleted"}})
}
