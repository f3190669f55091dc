package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okValidator(claims *Claims) TokenValidator {
	return func(token string) (*Claims, error) {
		if token != "good-token" {
			return nil, errors.New("bad token")
		}
		return claims, nil
	}
}

func claimsEcho() (http.Handler, *Claims) {
	captured := &Claims{}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.UserID = UserIDFromContext(r.Context())
		captured.Email = EmailFromContext(r.Context())
		captured.Role = RoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	return handler, captured
}

func TestAuth_MissingHeader(t *testing.T) {
	next, _ := claimsEcho()
	handler := Auth(okValidator(nil))(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuth_MalformedHeader(t *testing.T) {
	next, _ := claimsEcho()
	handler := Auth(okValidator(nil))(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "good-token")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuth_InvalidToken(t *testing.T) {
	next, _ := claimsEcho()
	handler := Auth(okValidator(nil))(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuth_ValidToken_InjectsClaims(t *testing.T) {
	next, captured := claimsEcho()
	handler := Auth(okValidator(&Claims{UserID: "u-1", Email: "a@b.c", Role: "admin"}))(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "u-1", captured.UserID)
	assert.Equal(t, "a@b.c", captured.Email)
	assert.Equal(t, "admin", captured.Role)
}

func TestOptionalAuth_AnonymousPassesThrough(t *testing.T) {
	next, captured := claimsEcho()
	handler := OptionalAuth(okValidator(&Claims{UserID: "u-1"}))(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, captured.UserID)
}

func TestOptionalAuth_InvalidTokenStillRejected(t *testing.T) {
	next, _ := claimsEcho()
	handler := OptionalAuth(okValidator(nil))(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequireRole_Forbidden(t *testing.T) {
	next, _ := claimsEcho()
	handler := Auth(okValidator(&Claims{UserID: "u-1", Role: "user"}))(RequireRole("admin")(next))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRequireRole_Allowed(t *testing.T) {
	next, _ := claimsEcho()
	handler := Auth(okValidator(&Claims{UserID: "u-1", Role: "admin"}))(RequireRole("admin")(next))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}
