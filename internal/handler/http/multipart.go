package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"

	"github.com/souravcsewala/ads-ecom-backend/internal/storage"
	apperrors "github.com/souravcsewala/ads-ecom-backend/pkg/errors"
)

// spoolFormFile copies one multipart part to a temp file and describes it as
// a storage input. The storage gateway removes the temp file after upload.
func spoolFormFile(file multipart.File, header *multipart.FileHeader) (*storage.FileInput, error) {
	tmp, err := os.CreateTemp("", "upload-*")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("spool upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &storage.FileInput{
		TempPath:     tmp.Name(),
		OriginalName: header.Filename,
		ContentType:  contentType,
		Size:         header.Size,
	}, nil
}

// formFile extracts a required file field from a parsed multipart request.
func formFile(r *http.Request, field string) (*storage.FileInput, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, apperrors.InvalidInput(field + " file is required")
		}
		return nil, apperrors.InvalidInput("invalid " + field + " file: " + err.Error())
	}
	defer file.Close()

	return spoolFormFile(file, header)
}

// optionalFormFile extracts a file field, returning nil when absent.
func optionalFormFile(r *http.Request, field string) (*storage.FileInput, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, apperrors.InvalidInput("invalid " + field + " file: " + err.Error())
	}
	defer file.Close()

	return spoolFormFile(file, header)
}

// formStringPtr returns the form value as a pointer, or nil when the field
// was not submitted. Distinguishes "clear this field" from "leave it alone".
func formStringPtr(r *http.Request, field string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	values, ok := r.MultipartForm.Value[field]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

// formIntPtr parses an optional integer form field.
func formIntPtr(r *http.Request, field string) (*int, error) {
	s := formStringPtr(r, field)
	if s == nil {
		return nil, nil
	}
	n, err := strconv.Atoi(*s)
	if err != nil {
		return nil, apperrors.InvalidInput(field + " must be an integer")
	}
	return &n, nil
}

// formBoolPtr parses an optional boolean form field.
func formBoolPtr(r *http.Request, field string) (*bool, error) {
	s := formStringPtr(r, field)
	if s == nil {
		return nil, nil
	}
	b, err := strconv.ParseBool(*s)
	if err != nil {
		return nil, apperrors.InvalidInput(field + " must be a boolean")
	}
	return &b, nil
}

// formInt parses an integer form field with a fallback default.
func formInt(r *http.Request, field string, def int) (int, error) {
	v := r.FormValue(field)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, apperrors.InvalidInput(field + " must be an integer")
	}
	return n, nil
}

// formFiles extracts every file uploaded under a repeated field name.
func formFiles(r *http.Request, field string) ([]storage.FileInput, error) {
	if r.MultipartForm == nil || len(r.MultipartForm.File[field]) == 0 {
		return nil, apperrors.InvalidInput("at least one " + field + " file is required")
	}

	var inputs []storage.FileInput
	cleanup := func() {
		for _, in := range inputs {
			os.Remove(in.TempPath)
		}
	}

	for _, header := range r.MultipartForm.File[field] {
		file, err := header.Open()
		if err != nil {
			cleanup()
			return nil, apperrors.InvalidInput("invalid " + field + " file: " + err.Error())
		}
		input, err := spoolFormFile(file, header)
		file.Close()
		if err != nil {
			cleanup()
			return nil, err
		}
		inputs = append(inputs, *input)
	}

	return inputs, nil
}
