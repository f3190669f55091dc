package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/souravcsewala/ads-ecom-backend/internal/service"
	"github.com/souravcsewala/ads-ecom-backend/pkg/httputil"
)

// TeamHandler handles HTTP requests for team member endpoints.
type TeamHandler struct {
	service *service.TeamService
	logger  *slog.Logger
}

// NewTeamHandler creates a new team HTTP handler.
func NewTeamHandler(svc *service.TeamService, logger *slog.Logger) *TeamHandler {
	return &TeamHandler{service: svc, logger: logger}
}

// ListPublic handles GET /api/v1/team
func (h *TeamHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.ListPublic(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: members})
}

// ListAll handles GET /api/v1/admin/team
func (h *TeamHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.ListAll(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: members})
}

// Get handles GET /api/v1/team/{id}
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	member, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: member})
}

// Create handles POST /api/v1/admin/team (multipart/form-data).
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxContentFormMemory); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "failed to parse multipart form: " + err.Error()},
		})
		return
	}

	displayOrder, err := formInt(r, "display_order", 0)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	image, err := optionalFormFile(r, "image")
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	member, err := h.service.Create(r.Context(), service.CreateTeamMemberInput{
		Name:         r.FormValue("name"),
		Position:     r.FormValue("position"),
		Bio:          r.FormValue("bio"),
		LinkedInURL:  r.FormValue("linkedin_url"),
		DisplayOrder: displayOrder,
	}, image)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: member})
}

// Update handles PUT /api/v1/admin/team/{id} (multipart/form-data).
func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxContentFormMemory); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "failed to parse multipart form: " + err.Error()},
		})
		return
	}

	displayOrder, err := formIntPtr(r, "display_order")
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	isActive, err := formBoolPtr(r, "is_active")
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	image, err := optionalFormFile(r, "image")
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	member, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), service.UpdateTeamMemberInput{
		Name:         formStringPtr(r, "name"),
		Position:     formStringPtr(r, "position"),
		Bio:          formStringPtr(r, "bio"),
		LinkedInURL:  formStringPtr(r, "linkedin_url"),
		DisplayOrder: displayOrder,
		IsActive:     isActive,
	}, image)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: member})
}

// Delete handles DELETE /api/v1/admin/team/{id}
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id, "status": "deleted"}})
}
