package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFound_WrapsSentinel(t *testing.T) {
	err := NotFound("plan", "p-1")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
	assert.Contains(t, err.Error(), "plan with id p-1 not found")
}

func TestAlreadyExists_Message(t *testing.T) {
	err := AlreadyExists("user", "email", "a@b.c")

	assert.True(t, errors.Is(err, ErrAlreadyExists))
	assert.Equal(t, http.StatusConflict, HTTPStatus(err))
	assert.Contains(t, err.Message, `email "a@b.c"`)
}

func TestUploadFailed_PreservesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := UploadFailed(cause)

	assert.True(t, errors.Is(err, ErrUploadFailed))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(err))
	assert.Contains(t, err.Message, "connection reset")
}

func TestHTTPStatus_WrappedSentinels(t *testing.T) {
	wrapped := fmt.Errorf("load profile: %w", ErrForbidden)
	assert.Equal(t, http.StatusForbidden, HTTPStatus(wrapped))

	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestHTTPStatus_AppErrorTakesPrecedence(t *testing.T) {
	err := fmt.Errorf("outer: %w", Unauthorized("invalid email or password"))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(err))
}
