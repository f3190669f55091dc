package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/souravcsewala/ads-ecom-backend/internal/service"
	"github.com/souravcsewala/ads-ecom-backend/pkg/httputil"
)

// maxContentFormMemory bounds in-memory multipart parsing for content
// management uploads.
const maxContentFormMemory = 32 << 20

// PortfolioHandler handles HTTP requests for portfolio endpoints.
type PortfolioHandler struct {
	service *service.PortfolioService
	logger  *slog.Logger
}

// NewPortfolioHandler creates a new portfolio HTTP handler.
func NewPortfolioHandler(svc *service.PortfolioService, logger *slog.Logger) *PortfolioHandler {
	return &PortfolioHandler{service: svc, logger: logger}
}

// ListPublic handles GET /api/v1/portfolio
func (h *PortfolioHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListPublic(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: items})
}

// ListAll handles GET /api/v1/admin/portfolio
func (h *PortfolioHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListAll(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: items})
}

// Get handles GET /api/v1/portfolio/{id}
func (h *PortfolioHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: item})
}

// Create handles POST /api/v1/admin/portfolio (multipart/form-data).
func (h *PortfolioHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	image, err := formFile(r, "image")
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	item, err := h.service.Create(r.Context(), service.CreatePortfolioInput{
		Title:        r.FormValue("title"),
		Category:     r.FormValue("category"),
		Description:  r.FormValue("description"),
		DisplayOrder: displayOrder,
	}, *image)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: item})
}

// Update handles PUT /api/v1/admin/portfolio/{id} (multipart/form-data).
func (h *PortfolioHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	item, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), service.UpdatePortfolioInput{
		Title:        formStringPtr(r, "title"),
		Category:     formStringPtr(r, "category"),
		Description:  formStringPtr(r, "description"),
		DisplayOrder: displayOrder,
		IsActive:     isActive,
	}, image)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: item})
}

// Delete handles DELETE /api/v1/admin/portfolio/{id}
func (h *PortfolioHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id, "status": "deleted"}})
}
