package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/userdir/user-directory/internal/core/domain"
	"github.com/userdir/user-directory/internal/core/service"
	"github.com/userdir/user-directory/internal/infrastructure/memory"
	"github.com/userdir/user-directory/internal/pkg/config"
)

type fixedGeodataClient struct {
	geo domain.Geodata
	err error
}

func (c *fixedGeodataClient) GetByZipCode(context.Context, string) (*domain.Geodata, error) {
	if c.err != nil {
		return nil, c.err
	}
	geo := c.geo
	return &geo, nil
}

func newTestRouter(geo *fixedGeodataClient) *echo.Echo {
	cfg := &config.Config{}
	repo := memory.NewUserRepository()
	users := service.NewUserService(repo, geo, zerolog.Nop())
	return NewRouter(cfg, users, nil, nil, zerolog.Nop())
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v (body %q)", err, rec.Body.String())
	}
	return resp
}

// Full lifecycle through the real router: create, read, update, delete, 404.
func TestRouter_UserLifecycle(t *testing.T) {
	e := newTestRouter(&fixedGeodataClient{
		geo: domain.Geodata{Latitude: 40.7505, Longitude: -73.9965, Timezone: "UTC-5"},
	})

	// Create
	rec := doJSON(e, http.MethodPost, "/users", `{"name":"John Doe","zipCode":"10001"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("create: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	created := decode(t, rec)
	data := created["data"].(map[string]any)
	id, _ := data["id"].(string)
	if id == "" {
		t.Fatal("create must assign an id")
	}
	if data["timezone"] != "UTC-5" {
		t.Errorf("expected timezone UTC-5, got %v", data["timezone"])
	}
	if data["latitude"] != 40.7505 || data["longitude"] != -73.9965 {
		t.Errorf("unexpected coordinates: %v, %v", data["latitude"], data["longitude"])
	}

	// Read back
	rec = doJSON(e, http.MethodGet, "/users/"+id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", rec.Code)
	}
	got := decode(t, rec)["data"].(map[string]any)
	if got["id"] != id || got["name"] != "John Doe" || got["zipCode"] != "10001" {
		t.Errorf("get returned a different record: %+v", got)
	}

	// Update name only: geodata preserved
	rec = doJSON(e, http.MethodPatch, "/users/"+id, `{"name":"John Updated"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("patch: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	updated := decode(t, rec)["data"].(map[string]any)
	if updated["name"] != "John Updated" || updated["timezone"] != "UTC-5" {
		t.Errorf("unexpected patch result: %+v", updated)
	}

	// List contains exactly one user
	rec = doJSON(e, http.MethodGet, "/users", "")
	list := decode(t, rec)["data"].([]any)
	if len(list) != 1 {
		t.Fatalf("expected 1 user in list, got %d", len(list))
	}

	// Delete, then the record is gone
	rec = doJSON(e, http.MethodDelete, "/users/"+id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}
	deleted := decode(t, rec)["data"].(map[string]any)
	if deleted["deleted"] != true {
		t.Errorf("expected deleted=true, got %v", deleted)
	}

	rec = doJSON(e, http.MethodGet, "/users/"+id, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", rec.Code)
	}
	notFound := decode(t, rec)
	if notFound["success"] != false || notFound["code"] != "NOT_FOUND" {
		t.Errorf("unexpected error envelope: %+v", notFound)
	}

	// Second delete reports not found
	rec = doJSON(e, http.MethodDelete, "/users/"+id, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", rec.Code)
	}
}

func TestRouter_Create_ValidationErrorEnvelope(t *testing.T) {
	e := newTestRouter(&fixedGeodataClient{})

	rec := doJSON(e, http.MethodPost, "/users", `{"name":"","zipCode":"invalid"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	resp := decode(t, rec)
	if resp["code"] != "VALIDATION_ERROR" {
		t.Errorf("unexpected code %v", resp["code"])
	}
	details, ok := resp["details"].([]any)
	if !ok || len(details) != 2 {
		t.Fatalf("expected 2 detail entries, got %v", resp["details"])
	}
}

func TestRouter_Create_GeodataDown_ServiceUnavailable(t *testing.T) {
	e := newTestRouter(&fixedGeodataClient{
		err: &domain.ExternalServiceError{Service: "openweather", Message: "unable to fetch location data for ZIP code 10001"},
	})

	rec := doJSON(e, http.MethodPost, "/users", `{"name":"John Doe","zipCode":"10001"}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	resp := decode(t, rec)
	if resp["code"] != "EXTERNAL_SERVICE_ERROR" {
		t.Errorf("unexpected code %v", resp["code"])
	}

	// Nothing was persisted.
	rec = doJSON(e, http.MethodGet, "/users", "")
	list := decode(t, rec)["data"].([]any)
	if len(list) != 0 {
		t.Errorf("expected empty store after failed create, got %d users", len(list))
	}
}

func TestRouter_UnknownRoute_NotFoundEnvelope(t *testing.T) {
	e := newTestRouter(&fixedGeodataClient{})

	rec := doJSON(e, http.MethodGet, "/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	resp := decode(t, rec)
	if resp["success"] != false || resp["code"] != "NOT_FOUND" {
		t.Errorf("unexpected envelope: %+v", resp)
	}
}

func TestRouter_HealthProbes(t *testing.T) {
	e := newTestRouter(&fixedGeodataClient{})

	rec := doJSON(e, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", rec.Code)
	}

	// No mongo and no redis configured: ready unconditionally.
	rec = doJSON(e, http.MethodGet, "/ready", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("ready: expected 200, got %d", rec.Code)
	}
}
