package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "s3cret" {
		t.Error("hash should not equal plaintext")
	}
	if !CheckPassword(hash, "s3cret") {
		t.Error("expected matching password to verify")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("expected wrong password to fail")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-key"), time.Hour)
	userID := uuid.New()

	token, err := issuer.Issue(userID, "junior")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Subject != userID.String() {
		t.Errorf("expected subject %s, got %s", userID, claims.Subject)
	}
	if claims.Role != "junior" {
		t.Errorf("expected role junior, got %s", claims.Role)
	}
}

func TestVerifyRejectsForeignKey(t *testing.T) {
	issuer := NewTokenIssuer([]byte("key-a"), time.Hour)
	other := NewTokenIssuer([]byte("key-b"), time.Hour)

	token, err := issuer.Issue(uuid.New(), "senior")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := other.Verify(token); err == nil {
		t.Error("expected verification to fail with a different signing key")
	}
}

func TestJWTMiddlewareSetsContext(t *testing.T) {
	key := []byte("test-key")
	issuer := NewTokenIssuer(key, time.Hour)
	userID := uuid.New()
	token, err := issuer.Issue(userID, "senior")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := JWTMiddleware(JWTConfig{SigningKey: key})(func(c echo.Context) error {
		ctx := c.Request().Context()
		if got := UserIDFromContext(ctx); got != userID.String() {
			t.Errorf("expected user id %s, got %s", userID, got)
		}
		if got := RoleFromContext(ctx); got != "senior" {
			t.Errorf("expected role senior, got %s", got)
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestJWTMiddlewareRejectsMissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := JWTMiddleware(JWTConfig{SigningKey: []byte("k")})(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	err := handler(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func roleContext(role string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := context.WithValue(req.Context(), UserRoleKey, role)
	req = req.WithContext(ctx)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestRequireRole(t *testing.T) {
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	if err := RequireRole("junior")(next)(roleContext("junior")); err != nil {
		t.Errorf("junior should access junior routes: %v", err)
	}
	if err := RequireRole("senior")(next)(roleContext("junior")); err == nil {
		t.Error("junior should not access senior routes")
	}
	// Senior passes every check.
	if err := RequireRole("junior")(next)(roleContext("senior")); err != nil {
		t.Errorf("senior should pass all role checks: %v", err)
	}
}
