package auth_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/saulo-duarte/examhub/internal/auth"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := auth.GetUserClaimsFromContext(r.Context())
		if err != nil {
			http.Error(w, "no claims", http.StatusInternalServerError)
			return
		}
		w.Header().Set("X-User", claims.UserID)
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthMiddleware(t *testing.T) {
	os.Setenv("JWT_SECRET", testSecret)
	auth.Init()

	access, _ := auth.GenerateJWT(testUserID, "USER", time.Minute)
	refresh, _ := auth.GenerateRefreshJWT(testUserID, time.Minute)

	tests := []struct {
		name   string
		setup  func(r *http.Request)
		status int
	}{
		{name: "no token", setup: func(r *http.Request) {}, status: http.StatusUnauthorized},
		{name: "garbage token", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, status: http.StatusUnauthorized},
		{name: "refresh token", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+refresh) }, status: http.StatusUnauthorized},
		{name: "bearer header", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+access) }, status: http.StatusNoContent},
		{name: "cookie", setup: func(r *http.Request) { r.AddCookie(&http.Cookie{Name: auth.AccessCookieName, Value: access}) }, status: http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()

			auth.AuthMiddleware(okHandler()).ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.status == http.StatusNoContent && rec.Header().Get("X-User") != testUserID {
				t.Errorf("claims not propagated, X-User = %q", rec.Header().Get("X-User"))
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	guarded := auth.RequireRole("ADMIN")(okHandler())

	t.Run("NoClaims", func(t *testing.T) {
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("WrongRole", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(auth.ContextWithClaims(req.Context(), &auth.Claims{UserID: testUserID, Role: "USER"}))
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}
	})

	t.Run("Admin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(auth.ContextWithClaims(req.Context(), &auth.Claims{UserID: testUserID, Role: "ADMIN"}))
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", rec.Code)
		}
	})
}
