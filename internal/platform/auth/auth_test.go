package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cliniq/cliniq/internal/platform/apperr"
)

func TestIssueAndVerifyToken(t *testing.T) {
	svc := NewService("test-secret")

	token, expiresAt, err := svc.IssueToken("alice")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if time.Until(expiresAt) < 11*time.Hour {
		t.Errorf("expected expiry ~12h out, got %v", expiresAt)
	}

	claims, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.Username != "alice" {
		t.Errorf("expected username alice, got %s", claims.Username)
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	svc := NewService("test-secret")
	token, _, err := svc.IssueToken("alice")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	other := NewService("other-secret")
	if _, err := other.VerifyToken(token); err == nil {
		t.Fatal("expected verification to fail with wrong secret")
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	svc := NewService("test-secret")
	svc.now = func() time.Time { return time.Now().Add(-24 * time.Hour) }

	token, _, err := svc.IssueToken("alice")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if _, err := svc.VerifyToken(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func loginContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestLoginSuccess(t *testing.T) {
	h := NewHandler(NewService("test-secret"))
	c, rec := loginContext(t, `{"username":"alice","password":"secret"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Success bool          `json:"success"`
		Data    loginResponse `json:"data"`
		Message string        `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Error("expected success true")
	}
	if resp.Data.Token == "" {
		t.Error("expected token in response")
	}
	if resp.Data.Username != "alice" {
		t.Errorf("expected username alice, got %s", resp.Data.Username)
	}
}

func TestLoginShortPassword(t *testing.T) {
	h := NewHandler(NewService("test-secret"))
	c, _ := loginContext(t, `{"username":"alice","password":"ab"}`)

	err := h.Login(c)
	verr, ok := apperr.AsValidation(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %T (%v)", err, err)
	}
	if verr.Fields[0].Field != "password" {
		t.Errorf("expected password field error, got %s", verr.Fields[0].Field)
	}
}

func TestLoginMissingUsername(t *testing.T) {
	h := NewHandler(NewService("test-secret"))
	c, _ := loginContext(t, `{"username":"  ","password":"secret"}`)

	err := h.Login(c)
	if _, ok := apperr.AsValidation(err); !ok {
		t.Fatalf("expected ValidationError, got %T (%v)", err, err)
	}
}

func TestRequireAuth(t *testing.T) {
	svc := NewService("test-secret")
	token, _, err := svc.IssueToken("alice")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	handler := func(c echo.Context) error {
		if c.Get("username").(string) != "alice" {
			t.Error("expected username in context")
		}
		return c.String(http.StatusOK, "ok")
	}
	h := RequireAuth(svc)(handler)

	e := echo.New()

	// Valid token
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error with valid token: %v", err)
	}

	// Missing header
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	err = h(e.NewContext(req, rec))
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for missing header, got %v", err)
	}

	// Garbage token
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer garbage")
	rec = httptest.NewRecorder()
	err = h(e.NewContext(req, rec))
	httpErr, ok = err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for garbage token, got %v", err)
	}
}
