package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/souravcsewala/ads-ecom-backend/internal/service"
	"github.com/souravcsewala/ads-ecom-backend/pkg/httputil"
	"github.com/souravcsewala/ads-ecom-backend/pkg/middleware"
	"github.com/souravcsewala/ads-ecom-backend/pkg/validator"
)

// maxUploadFormMemory bounds in-memory multipart parsing for the generic
// upload endpoints. Larger parts spill to disk.
const maxUploadFormMemory = 64 << 20

// UploadHandler handles HTTP requests for file upload endpoints.
type UploadHandler struct {
	service *service.UploadService
	logger  *slog.Logger
}

// NewUploadHandler creates a new upload HTTP handler.
func NewUploadHandler(svc *service.UploadService, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{service: svc, logger: logger}
}

// PresignRequest is the JSON request body for a presigned upload URL.
type PresignRequest struct {
	FileName  string `json:"file_name" validate:"required,min=1,max=500"`
	FileType  string `json:"file_type" validate:"required,min=1,max=200"`
	Folder    string `json:"folder" validate:"omitempty,max=200"`
	ExpiresIn int64  `json:"expires_in"`
}

// Single handles POST /api/v1/uploads (multipart/form-data).
func (h *UploadHandler) Single(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, service.MaxUploadSize+(1<<20))

	if err := r.ParseMultipartForm(maxUploadFormMemory); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "failed to parse multipart form: " + err.Error()},
		})
		return
	}

	file, err := formFile(r, "file")
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	result, err := h.service.UploadSingle(r.Context(), *file, r.FormValue("folder"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: result})
}

// Batch handles POST /api/v1/uploads/batch (multipart/form-data, repeated
// "files" parts).
func (h *UploadHandler) Batch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadFormMemory); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "failed to parse multipart form: " + err.Error()},
		})
		return
	}

	files, err := formFiles(r, "files")
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	results, err := h.service.UploadBatch(r.Context(), files, r.FormValue("folder"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: results})
}

// DemoContent handles POST /api/v1/admin/uploads/demo-content.
func (h *UploadHandler) DemoContent(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, service.MaxDemoVideoSize+(1<<20))

	if err := r.ParseMultipartForm(maxUploadFormMemory); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "failed to parse multipart form: " + err.Error()},
		})
		return
	}

	file, err := formFile(r, "file")
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	result, err := h.service.UploadDemoContent(r.Context(), *file)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: result})
}

// BrandAssets handles POST /api/v1/uploads/brand-assets. Files land under
// the authenticated customer's own folder.
func (h *UploadHandler) BrandAssets(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		writeUnauthenticated(w)
		return
	}

	if err := r.ParseMultipartForm(maxUploadFormMemory); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "failed to parse multipart form: " + err.Error()},
		})
		return
	}

	files, err := formFiles(r, "files")
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	results, err := h.service.UploadBrandAssets(r.Context(), files, userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: results})
}

// Presign handles POST /api/v1/uploads/presign.
func (h *UploadHandler) Presign(w http.ResponseWriter, r *http.Request) {
	var req PresignRequest
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

	result, err := h.service.Presign(r.Context(), service.PresignInput{
		FileName:  req.FileName,
		FileType:  req.FileType,
		Folder:    req.Folder,
		ExpiresIn: req.ExpiresIn,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}
