package worker

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"worksite/backend/foundation/web"
	"worksite/backend/internal/auth"
	"worksite/backend/internal/entity"
	"worksite/backend/internal/repository/postgres/worker"
)

type stubWorker struct {
	detail  entity.Worker
	gotByID int
}

func (s *stubWorker) GetById(ctx context.Context, id int) (entity.Worker, error) {
	s.gotByID = id
	return s.detail, nil
}

func (s *stubWorker) GetList(ctx context.Context, filter worker.Filter) ([]worker.GetListResponse, int, error) {
	return nil, 0, nil
}

func (s *stubWorker) GetDetailById(ctx context.Context, id int) (worker.GetDetailByIdResponse, error) {
	return worker.GetDetailByIdResponse{}, nil
}

func (s *stubWorker) Create(ctx context.Context, request worker.CreateRequest) (worker.CreateResponse, error) {
	return worker.CreateResponse{}, nil
}

func (s *stubWorker) UpdateColumns(ctx context.Context, request worker.UpdateRequest) error {
	return nil
}

func (s *stubWorker) Deactivate(ctx context.Context, id int) error {
	return nil
}

func withClaims(claims auth.Claims) web.Middleware {
	return func(handler web.Handler) web.Handler {
		return func(c *web.Context) error {
			c.Ctx = context.WithValue(c.Ctx, auth.Key, claims)
			return handler(c)
		}
	}
}

func strPtr(s string) *string { return &s }

func TestMe(t *testing.T) {
	gin.SetMode(gin.TestMode)

	stub := &stubWorker{
		detail: entity.Worker{
			FullName:   strPtr("Juan Perez"),
			NationalID: strPtr("30123456"),
			Role:       strPtr(auth.RoleWorker),
			Active:     true,
		},
	}
	stub.detail.ID = 7

	controller := NewController(stub)

	app := web.NewApp()
	app.Get("/worker/me", controller.Me, withClaims(auth.Claims{UserId: 7, Role: auth.RoleWorker}))

	req := httptest.NewRequest(http.MethodGet, "/worker/me", nil)
	w := httptest.NewRecorder()

	app.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}
	if stub.gotByID != 7 {
		t.Errorf("looked up worker %d, want 7", stub.gotByID)
	}
	if !strings.Contains(w.Body.String(), "30123456") {
		t.Errorf("body missing national_id: %s", w.Body.String())
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Errorf("body leaks password field: %s", w.Body.String())
	}
}

func TestMeWithoutClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)

	controller := NewController(&stubWorker{})

	app := web.NewApp()
	app.Get("/worker/me", controller.Me)

	req := httptest.NewRequest(http.MethodGet, "/worker/me", nil)
	w := httptest.NewRecorder()

	app.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}
