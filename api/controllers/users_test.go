package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	usersvc "github.com/marioskal/eshop-backend/internal/users"
	"github.com/marioskal/eshop-backend/pkg/enums"
	pkgerrors "github.com/marioskal/eshop-backend/pkg/errors"
	"github.com/marioskal/eshop-backend/pkg/logger"
	"github.com/marioskal/eshop-backend/pkg/pagination"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

type stubUserService struct {
	created   *usersvc.CreateUserInput
	getErr    error
	listInput *usersvc.ListFilter
}

func (s *stubUserService) CreateUser(ctx context.Context, input usersvc.CreateUserInput) (*usersvc.UserDTO, error) {
	s.created = &input
	return &usersvc.UserDTO{UUID: "u-1", Username: input.Username, Role: input.Role, IsActive: true}, nil
}

func (s *stubUserService) GetByUUID(ctx context.Context, userUUID string) (*usersvc.UserDTO, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return &usersvc.UserDTO{UUID: userUUID}, nil
}

func (s *stubUserService) ListUsers(ctx context.Context, filter usersvc.ListFilter, req pagination.Request) (*pagination.Page[usersvc.UserDTO], error) {
	s.listInput = &filter
	return &pagination.Page[usersvc.UserDTO]{Content: []usersvc.UserDTO{}}, nil
}

func (s *stubUserService) UpdateUser(ctx context.Context, userUUID string, input usersvc.UpdateUserInput) (*usersvc.UserDTO, error) {
	panic("unimplemented")
}

func (s *stubUserService) DeleteUser(ctx context.Context, userUUID string) error {
	panic("unimplemented")
}

func TestUserCreate(t *testing.T) {
	logg := testLogger()

	t.Run("success", func(t *testing.T) {
		stub := &stubUserService{}
		body := `{"username":"Ops@Example.com","password":"secret-pass","role":"ADMIN_USER"}`
		req := httptest.NewRequest(http.MethodPost, "/admin/v1/users", strings.NewReader(body))
		rec := httptest.NewRecorder()

		UserCreate(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.created == nil {
			t.Fatal("expected CreateUser to be invoked")
		}
		if stub.created.Username != "ops@example.com" {
			t.Fatalf("expected lowercased username, got %q", stub.created.Username)
		}
		if stub.created.Role != enums.RoleAdmin {
			t.Fatalf("expected admin role, got %q", stub.created.Role)
		}
	})

	t.Run("invalid role", func(t *testing.T) {
		stub := &stubUserService{}
		body := `{"username":"ops@example.com","password":"secret-pass","role":"WIZARD"}`
		req := httptest.NewRequest(http.MethodPost, "/admin/v1/users", strings.NewReader(body))
		rec := httptest.NewRecorder()

		UserCreate(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if stub.created != nil {
			t.Fatal("expected CreateUser not to be invoked")
		}
	})

	t.Run("short password rejected", func(t *testing.T) {
		body := `{"username":"ops@example.com","password":"short","role":"ADMIN_USER"}`
		req := httptest.NewRequest(http.MethodPost, "/admin/v1/users", strings.NewReader(body))
		rec := httptest.NewRecorder()

		UserCreate(&stubUserService{}, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("nil service", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/admin/v1/users", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()

		UserCreate(nil, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}

func TestUserDetailNotFound(t *testing.T) {
	stub := &stubUserService{getErr: pkgerrors.NotFoundf("User", "uuid", "missing")}

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("userUuid", "missing")
	ctx := context.WithValue(context.Background(), chi.RouteCtxKey, routeCtx)
	req := httptest.NewRequest(http.MethodGet, "/admin/v1/users/missing", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	UserDetail(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found code, got %q", envelope.Error.Code)
	}
}

func TestUserListFilters(t *testing.T) {
	stub := &stubUserService{}
	req := httptest.NewRequest(http.MethodGet, "/admin/v1/users?username=car&role=ADMIN_USER&is_active=true", nil)
	rec := httptest.NewRecorder()

	UserList(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.listInput == nil {
		t.Fatal("expected ListUsers to be invoked")
	}
	if stub.listInput.Username == nil || *stub.listInput.Username != "car" {
		t.Fatal("expected username filter to be forwarded")
	}
	if stub.listInput.Role == nil || *stub.listInput.Role != "ADMIN_USER" {
		t.Fatal("expected role filter to be forwarded")
	}
	if stub.listInput.IsActive == nil || !*stub.listInput.IsActive {
		t.Fatal("expected is_active filter to be forwarded")
	}
}
