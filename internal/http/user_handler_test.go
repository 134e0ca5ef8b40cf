package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"launchpath/internal/service"
)

func setupUserRouter(userSvc *service.UserService, jwtSvc *service.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewUserHandler(zap.NewNop(), userSvc, jwtSvc)
	r.POST("/users", h.CreateUser)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/refresh", h.RefreshToken)
	r.POST("/auth/logout", h.Logout)
	return r
}

func performRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	return performAuthed(r, method, path, "", body)
}

func performAuthed(r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

type tokensResponse struct {
	Tokens service.TokenPair `json:"tokens"`
}

func TestUserHandlerCreateUser_Success(t *testing.T) {
	svc := service.NewUserService(zap.NewNop(), newMemStore(), nil)
	r := setupUserRouter(svc, nil)

	rec := performRequest(r, http.MethodPost, "/users", map[string]string{
		"email":        "user@example.com",
		"display_name": "Test",
		"password":     "long enough",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}
	if bytes.Contains(rec.Body.Bytes(), []byte("password")) {
		t.Fatalf("password hash must not be serialized: %s", rec.Body.String())
	}
}

func TestUserHandlerCreateUser_InvalidRequest(t *testing.T) {
	svc := service.NewUserService(zap.NewNop(), newMemStore(), nil)
	r := setupUserRouter(svc, nil)

	rec := performRequest(r, http.MethodPost, "/users", map[string]string{
		"email":    "not-an-email",
		"password": "long enough",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	rec = performRequest(r, http.MethodPost, "/users", map[string]string{
		"email":    "user@example.com",
		"password": "short",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for weak password, got %d", rec.Code)
	}
}

func TestUserHandlerLogin_RefreshAndLogout(t *testing.T) {
	svc := service.NewUserService(zap.NewNop(), newMemStore(), nil)
	jwtSvc := service.NewJWTService("secret", 15*time.Minute, time.Hour, nil)
	r := setupUserRouter(svc, jwtSvc)

	performRequest(r, http.MethodPost, "/users", map[string]string{"email": "user@example.com", "password": "long enough"})

	rec := performRequest(r, http.MethodPost, "/auth/login", map[string]string{"email": "user@example.com", "password": "wrong one"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}

	rec = performRequest(r, http.MethodPost, "/auth/login", map[string]string{"email": "user@example.com", "password": "long enough"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var login tokensResponse
	decode(t, rec, &login)
	if login.Tokens.AccessToken == "" || login.Tokens.RefreshToken == "" {
		t.Fatalf("expected token pair, got %+v", login.Tokens)
	}

	rec = performRequest(r, http.MethodPost, "/auth/refresh", map[string]string{"refresh_token": login.Tokens.RefreshToken})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected refresh 200, got %d", rec.Code)
	}
	var refreshed tokensResponse
	decode(t, rec, &refreshed)

	// el refresh token anterior queda rotado
	rec = performRequest(r, http.MethodPost, "/auth/refresh", map[string]string{"refresh_token": login.Tokens.RefreshToken})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected reused refresh token to fail, got %d", rec.Code)
	}

	rec = performRequest(r, http.MethodPost, "/auth/logout", map[string]string{"refresh_token": refreshed.Tokens.RefreshToken})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected logout 204, got %d", rec.Code)
	}
	rec = performRequest(r, http.MethodPost, "/auth/refresh", map[string]string{"refresh_token": refreshed.Tokens.RefreshToken})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected revoked refresh token to fail, got %d", rec.Code)
	}
}

func TestUserHandlerLogin_RateLimited(t *testing.T) {
	svc := service.NewUserService(zap.NewNop(), newMemStore(), service.NewMemoryLoginRateLimiter(time.Minute, 1))
	r := setupUserRouter(svc, service.NewJWTService("secret", 0, 0, nil))

	body := map[string]string{"email": "user@example.com", "password": "whatever1"}
	if rec := performRequest(r, http.MethodPost, "/auth/login", body); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
	if rec := performRequest(r, http.MethodPost, "/auth/login", body); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", rec.Code)
	}
}
