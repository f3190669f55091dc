package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/souravcsewala/ads-ecom-backend/internal/service"
	"github.com/souravcsewala/ads-ecom-backend/pkg/httputil"
)

// maxDemoFormMemory bounds in-memory multipart parsing for demo content,
// which can carry video files.
const maxDemoFormMemory = 64 << 20

// DemoContentHandler handles HTTP requests for demo content endpoints.
type DemoContentHandler struct {
	service *service.DemoContentService
	logger  *slog.Logger
}

// NewDemoContentHandler creates a new demo content HTTP handler.
func NewDemoContentHandler(svc *service.DemoContentService, logger *slog.Logger) *DemoContentHandler {
	return &DemoContentHandler{service: svc, logger: logger}
}

// ListPublic handles GET /api/v1/demo-content
func (h *DemoContentHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListPublic(r.Context(), r.URL.Query().Get("content_type"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: items})
}

// ListAll handles GET /api/v1/admin/demo-content
func (h *DemoContentHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListAll(r.Context(), r.URL.Query().Get("content_type"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: items})
}

// Get handles GET /api/v1/demo-content/{id}
func (h *DemoContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: item})
}

// Create handles POST /api/v1/admin/demo-content (multipart/form-data).
// Image content carries an "image" part; video content carries "video" and
// optionally "thumbnail".
func (h *DemoContentHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxDemoFormMemory); err != nil {
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

	files, err := h.demoFiles(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	item, err := h.service.Create(r.Context(), service.CreateDemoContentInput{
		Title:        r.FormValue("title"),
		ContentType:  r.FormValue("content_type"),
		Category:     r.FormValue("category"),
		Description:  r.FormValue("description"),
		DisplayOrder: displayOrder,
	}, files)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: item})
}

// Update handles PUT /api/v1/admin/demo-content/{id} (multipart/form-data).
func (h *DemoContentHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxDemoFormMemory); err != nil {
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
	files, err := h.demoFiles(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	item, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), service.UpdateDemoContentInput{
		Title:        formStringPtr(r, "title"),
		Category:     formStringPtr(r, "category"),
		Description:  formStringPtr(r, "description"),
		DisplayOrder: displayOrder,
		IsActive:     isActive,
	}, files)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: item})
}

// Delete handles DELETE /api/v1/admin/demo-content/{id}
func (h *DemoContentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id, "status": "deleted"}})
}

func (h *DemoContentHandler) demoFiles(r *http.Request) (service.DemoContentFiles, error) {
	image, err := optionalFormFile(r, "image")
	if err != nil {
		return service.DemoContentFiles{}, err
	}
	video, err := optionalFormFile(r, "video")
	if err != nil {
		return service.DemoContentFiles{}, err
	}
	thumbnail, err := optionalFormFile(r, "thumbnail")
	if err != nil {
		return service.DemoContentFiles{}, err
	}
	return service.DemoContentFiles{Image: image, Video: video, Thumbnail: thumbnail}, nil
}
