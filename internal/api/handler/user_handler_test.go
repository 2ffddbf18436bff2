package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/userdir/user-directory/internal/core/domain"
	"github.com/userdir/user-directory/internal/core/ports"
)

type stubUserService struct {
	createFn func(ctx context.Context, input ports.CreateUserInput) (*domain.User, error)
	getFn    func(ctx context.Context, id string) (*domain.User, error)
	listFn   func(ctx context.Context) ([]domain.User, error)
	updateFn func(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error)
	deleteFn func(ctx context.Context, id string) (bool, error)
}

func (s *stubUserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, input)
}

func (s *stubUserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) List(ctx context.Context) ([]domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) Update(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, id, input)
}

func (s *stubUserService) Delete(ctx context.Context, id string) (bool, error) {
	return s.deleteFn(ctx, id)
}

func sampleUser() *domain.User {
	now := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	return &domain.User{
		ID:        "user-1",
		Name:      "John Doe",
		ZipCode:   "10001",
		Latitude:  40.7505,
		Longitude: -73.9965,
		Timezone:  "UTC-5",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

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

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func TestUserHandler_Create_Success(t *testing.T) {
	stub := &stubUserService{
		createFn: func(_ context.Context, input ports.CreateUserInput) (*domain.User, error) {
			if input.Name != "John Doe" || input.ZipCode != "10001" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return sampleUser(), nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newContext(t, http.MethodPost, "/users", `{"name":"John Doe","zipCode":"10001"}`)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	resp := decodeEnvelope(t, rec)
	if resp["success"] != true {
		t.Error("expected success envelope")
	}
	if resp["message"] != "User created successfully" {
		t.Errorf("unexpected message %v", resp["message"])
	}
	data := resp["data"].(map[string]any)
	if data["id"] != "user-1" || data["timezone"] != "UTC-5" {
		t.Errorf("unexpected data payload: %+v", data)
	}
}

func TestUserHandler_Create_InvalidZip_FailsValidation(t *testing.T) {
	stub := &stubUserService{
		createFn: func(context.Context, ports.CreateUserInput) (*domain.User, error) {
			t.Fatal("service must not be called for invalid input")
			return nil, nil
		},
	}
	handler := NewUserHandler(stub)

	c, _ := newContext(t, http.MethodPost, "/users", `{"name":"John Doe","zipCode":"invalid"}`)
	err := handler.Create(c)

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Fields) != 1 || ve.Fields[0].Path != "zipCode" {
		t.Errorf("unexpected details: %+v", ve.Fields)
	}
}

func TestUserHandler_Create_MalformedBody(t *testing.T) {
	handler := NewUserHandler(&stubUserService{})

	c, _ := newContext(t, http.MethodPost, "/users", "not-json")
	err := handler.Create(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestUserHandler_Get_Success(t *testing.T) {
	stub := &stubUserService{
		getFn: func(_ context.Context, id string) (*domain.User, error) {
			if id != "user-1" {
				t.Fatalf("unexpected id %q", id)
			}
			return sampleUser(), nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newContext(t, http.MethodGet, "/users/user-1", "")
	c.SetParamNames("id")
	c.SetParamValues("user-1")

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeEnvelope(t, rec)
	if resp["message"] != "User retrieved successfully" {
		t.Errorf("unexpected message %v", resp["message"])
	}
}

func TestUserHandler_Get_UnknownID(t *testing.T) {
	stub := &stubUserService{
		getFn: func(context.Context, string) (*domain.User, error) { return nil, nil },
	}
	handler := NewUserHandler(stub)

	c, _ := newContext(t, http.MethodGet, "/users/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := handler.Get(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserHandler_List_Success(t *testing.T) {
	stub := &stubUserService{
		listFn: func(context.Context) ([]domain.User, error) {
			return []domain.User{*sampleUser()}, nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newContext(t, http.MethodGet, "/users", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	resp := decodeEnvelope(t, rec)
	users, ok := resp["data"].([]any)
	if !ok || len(users) != 1 {
		t.Fatalf("expected 1 user in data, got %v", resp["data"])
	}
}

func TestUserHandler_Update_EmptyPatchAccepted(t *testing.T) {
	called := false
	stub := &stubUserService{
		updateFn: func(_ context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
			called = true
			if input.Name != nil || input.ZipCode != nil {
				t.Fatalf("empty body must yield empty input, got %+v", input)
			}
			return sampleUser(), nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newContext(t, http.MethodPatch, "/users/user-1", `{}`)
	c.SetParamNames("id")
	c.SetParamValues("user-1")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("service must be called for an empty patch")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_Update_UnknownID(t *testing.T) {
	stub := &stubUserService{
		updateFn: func(context.Context, string, ports.UpdateUserInput) (*domain.User, error) {
			return nil, nil
		},
	}
	handler := NewUserHandler(stub)

	c, _ := newContext(t, http.MethodPatch, "/users/missing", `{"name":"New Name"}`)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := handler.Update(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserHandler_Delete_Success(t *testing.T) {
	stub := &stubUserService{
		deleteFn: func(context.Context, string) (bool, error) { return true, nil },
	}
	handler := NewUserHandler(stub)

	c, rec := newContext(t, http.MethodDelete, "/users/user-1", "")
	c.SetParamNames("id")
	c.SetParamValues("user-1")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	resp := decodeEnvelope(t, rec)
	data := resp["data"].(map[string]any)
	if data["deleted"] != true {
		t.Errorf("expected deleted=true, got %v", data)
	}
}

func TestUserHandler_Delete_UnknownID(t *testing.T) {
	stub := &stubUserService{
		deleteFn: func(context.Context, string) (bool, error) { return false, nil },
	}
	handler := NewUserHandler(stub)

	c, _ := newContext(t, http.MethodDelete, "/users/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := handler.Delete(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
