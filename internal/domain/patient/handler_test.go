package patient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/cliniq/cliniq/internal/platform/apperr"
)

func jsonContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandlerCreatePatient(t *testing.T) {
	h := NewHandler(NewService(newMockRepo()))
	c, rec := jsonContext(http.MethodPost, "/api/patients", `{"name":"Jane Doe","phone":"555-0101"}`)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp struct {
		Success bool    `json:"success"`
		Data    Patient `json:"data"`
		Message string  `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != "Patient created successfully" {
		t.Errorf("unexpected message: %s", resp.Message)
	}
	if resp.Data.Phone == nil || *resp.Data.Phone != "555-0101" {
		t.Errorf("unexpected phone: %v", resp.Data.Phone)
	}
}

func TestHandlerCreatePatientValidation(t *testing.T) {
	h := NewHandler(NewService(newMockRepo()))
	c, _ := jsonContext(http.MethodPost, "/api/patients", `{"name":"Jane","email":"bad"}`)

	err := h.Create(c)
	if _, ok := apperr.AsValidation(err); !ok {
		t.Fatalf("expected ValidationError, got %T (%v)", err, err)
	}
}

func TestHandlerGetPatientNotFound(t *testing.T) {
	h := NewHandler(NewService(newMockRepo()))
	c, rec := jsonContext(http.MethodGet, "/api/patients/7", "")
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := h.Get(c); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHandlerDeletePatient(t *testing.T) {
	h := NewHandler(NewService(newMockRepo()))

	c, _ := jsonContext(http.MethodPost, "/api/patients", `{"name":"Jane Doe"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}

	c, rec := jsonContext(http.MethodDelete, "/api/patients/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != "Patient deleted successfully" {
		t.Errorf("unexpected message: %s", resp.Message)
	}
}

func TestHandlerDeletePatientWithVisits(t *testing.T) {
	repo := newMockRepo()
	repo.delErr = apperr.ErrForeignKey
	h := NewHandler(NewService(repo))

	c, _ := jsonContext(http.MethodDelete, "/api/patients/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")

	err := h.Delete(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
