package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"worksite/backend/foundation/web"
	"worksite/backend/internal/auth"
	"worksite/backend/internal/commands"
	"worksite/backend/internal/repository/postgres/worker"
)

func testApp(t *testing.T, a *auth.Auth) *web.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ok := func(c *web.Context) error {
		return c.Respond(map[string]interface{}{"status": true}, http.StatusOK)
	}

	app := web.NewApp()
	app.Post("/any-role", ok, Authenticate(a))
	app.Post("/admin-only", ok, Authenticate(a, auth.RoleAdmin))

	return app
}

func TestAuthenticate(t *testing.T) {
	secret := "test-secret"
	a := auth.New(secret)
	app := testApp(t, a)

	accessToken, _, err := commands.GenToken(worker.AuthClaims{ID: 7, NationalID: "30123456", Role: auth.RoleWorker}, secret)
	if err != nil {
		t.Fatalf("GenToken() error = %v", err)
	}

	t.Run("worker token passes unrestricted route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/any-role", nil)
		req.Header.Set("authorization", "Bearer "+accessToken)
		w := httptest.NewRecorder()

		app.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
		}
	})

	t.Run("worker token rejected on restricted route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/admin-only", nil)
		req.Header.Set("authorization", "Bearer "+accessToken)
		w := httptest.NewRecorder()

		app.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
		}
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/any-role", nil)
		w := httptest.NewRecorder()

		app.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/any-role", nil)
		req.Header.Set("authorization", "Bearer not-a-token")
		w := httptest.NewRecorder()

		app.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})
}
