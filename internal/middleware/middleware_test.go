package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"menuapp/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func newAuthService(t *testing.T) (*auth.Service, string) {
	t.Helper()

	svc := auth.NewService(
		auth.NewInMemoryUserRepository(),
		auth.NewTokenManager("test-secret-key-for-testing-only", time.Hour),
		auth.NewMemoryDenylist(),
		zerolog.Nop(),
	)
	if _, err := svc.EnsureAdmin(context.Background(), "admin@example.com", "password", 1); err != nil {
		t.Fatalf("seed: %v", err)
	}
	token, _, err := svc.Login(context.Background(), "admin@example.com", "password")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	return svc, token
}

func newRouter(svc *auth.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AuthMiddleware(svc))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userID":    c.GetString("userID"),
			"userEmail": c.GetString("userEmail"),
		})
	})
	return router
}

// TestAuthMiddleware_MissingAuthHeader tests the middleware with missing Authorization header
func TestAuthMiddleware_MissingAuthHeader(t *testing.T) {
	svc, _ := newAuthService(t)
	router := newRouter(svc)

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

// TestAuthMiddleware_InvalidAuthFormat tests the middleware with invalid Bearer format
func TestAuthMiddleware_InvalidAuthFormat(t *testing.T) {
	svc, _ := newAuthService(t)
	router := newRouter(svc)

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "InvalidFormat")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

// TestAuthMiddleware_InvalidToken tests the middleware with an invalid token
func TestAuthMiddleware_InvalidToken(t *testing.T) {
	svc, _ := newAuthService(t)
	router := newRouter(svc)

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer invalid_token_xyz")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

// TestAuthMiddleware_ValidToken tests the middleware with a valid token
func TestAuthMiddleware_ValidToken(t *testing.T) {
	svc, token := newAuthService(t)
	router := newRouter(svc)

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestAuthMiddleware_QueryToken(t *testing.T) {
	svc, token := newAuthService(t)
	router := newRouter(svc)

	req := httptest.NewRequest("GET", "/test?token="+token, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestAuthMiddleware_RevokedToken(t *testing.T) {
	svc, token := newAuthService(t)
	router := newRouter(svc)

	claims, err := svc.Authenticate(context.Background(), token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if err := svc.Logout(context.Background(), claims); err != nil {
		t.Fatalf("logout: %v", err)
	}

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, tc := range []struct {
		role string
		want int
	}{
		{auth.RoleAdmin, http.StatusOK},
		{"RESTAURANT", http.StatusForbidden},
		{"", http.StatusForbidden},
	} {
		router := gin.New()
		router.Use(func(c *gin.Context) {
			if tc.role != "" {
				c.Set("userRole", tc.role)
			}
			c.Next()
		}, RequireRole(auth.RoleAdmin))
		router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))
		if w.Code != tc.want {
			t.Errorf("role %q: expected status %d, got %d", tc.role, tc.want, w.Code)
		}
	}
}

func TestRestaurantScope(t *testing.T) {
	svc, token := newAuthService(t)

	router := gin.New()
	router.Use(AuthMiddleware(svc), RestaurantScope(svc))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"restaurantID": c.GetInt64("restaurantID")})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte(`"restaurantID":1`)) {
		t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
	}

	if _, err := svc.Register(context.Background(), "Solo", "solo@example.com", "pw", auth.RoleAdmin); err != nil {
		t.Fatalf("register: %v", err)
	}
	soloToken, _, _ := svc.Login(context.Background(), "solo@example.com", "pw")

	req = httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+soloToken)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status 403 for unlinked user, got %d", w.Code)
	}
}

func TestRequestLoggerAndRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	log := zerolog.New(&buf)

	router := gin.New()
	router.Use(RequestLogger(log), Recovery(log))
	router.GET("/boom", func(c *gin.Context) { panic("boom") })

	req := httptest.NewRequest("GET", "/boom", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}
	if w.Header().Get(RequestIDHeader) != "req-1" {
		t.Fatalf("request id not propagated")
	}
	if !bytes.Contains(buf.Bytes(), []byte("recovered from panic")) || !bytes.Contains(buf.Bytes(), []byte(`"status":500`)) {
		t.Fatalf("unexpected log output: %s", buf.String())
	}
}
