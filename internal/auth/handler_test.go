package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	service, _ := newTestService()
	if _, err := service.EnsureAdmin(context.Background(), "admin@example.com", "password", 1); err != nil {
		t.Fatalf("seed: %v", err)
	}

	h := NewHandler(service)
	r := gin.New()
	r.POST("/auth/login", h.Login)

	protected := r.Group("/auth", func(c *gin.Context) {
		claims, err := service.Authenticate(c.Request.Context(), c.GetHeader("X-Token"))
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Set("claims", claims)
		c.Set("userID", claims.UserID)
		c.Next()
	})
	protected.GET("/me", h.Me)
	protected.POST("/logout", h.Logout)
	return r, service
}

func login(t *testing.T, r *gin.Engine, email, password string) *httptest.ResponseRecorder {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginSuccess(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := login(t, r, "admin@example.com", "password")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}
	if resp.User.Password != "" {
		t.Fatal("password hash leaked in response")
	}
}

func TestLoginFailures(t *testing.T) {
	r, _ := setupTestRouter(t)

	if w := login(t, r, "admin@example.com", "nope"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
	if w := login(t, r, "", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestMeAndLogout(t *testing.T) {
	r, _ := setupTestRouter(t)

	var resp struct {
		Token string `json:"token"`
	}
	_ = json.Unmarshal(login(t, r, "admin@example.com", "password").Body.Bytes(), &resp)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("X-Token", resp.Token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var me struct {
		RestaurantID int64 `json:"restaurant_id"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &me)
	if me.RestaurantID != 1 {
		t.Fatalf("expected restaurant 1, got %d", me.RestaurantID)
	}

	req = httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("X-Token", resp.Token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("X-Token", resp.Token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 after logout, got %d", w.Code)
	}
}
