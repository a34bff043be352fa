package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/claytonfaria/userapi/internal/apperrors"
	"github.com/claytonfaria/userapi/internal/auth"
	"github.com/claytonfaria/userapi/internal/logger"
	"github.com/claytonfaria/userapi/internal/middleware"
	usermodel "github.com/claytonfaria/userapi/internal/models/user"
	"github.com/claytonfaria/userapi/internal/storage"
)

const testSecret = "test-secret-key"

func newTestRouter(store storage.UserStore, requestTimeout time.Duration) http.Handler {
	jwtManager := auth.NewJWTManager(testSecret, 24*time.Hour)
	validator := auth.NewStaticValidator("claytonfaria")

	authHandler := NewAuthHandler(validator, jwtManager)
	userHandler := NewUserHandler(store)
	healthHandler := NewHealthHandler(nil)
	authMW := middleware.NewAuthMiddleware(jwtManager)

	return NewRouter(authHandler, userHandler, healthHandler, authMW, requestTimeout, logger.New("test"))
}

func testToken(t *testing.T) string {
	t.Helper()
	token, _, err := auth.NewJWTManager(testSecret, 24*time.Hour).GenerateToken("claytonfaria")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestLogin_Success(t *testing.T) {
	router := newTestRouter(storage.NewMemoryStore(), 10*time.Second)

	rec := doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "claytonfaria",
		"password": "anything",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body usermodel.AuthBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.AccessToken == "" {
		t.Error("expected a non-empty access_token")
	}
	if body.TokenType != "bearer" {
		t.Errorf("expected token_type 'bearer', got '%s'", body.TokenType)
	}
}

func TestLogin_WrongCredentials(t *testing.T) {
	router := newTestRouter(storage.NewMemoryStore(), 10*time.Second)

	rec := doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "anyone_else",
		"password": "anything",
	})

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestLogin_MissingCredentials(t *testing.T) {
	router := newTestRouter(storage.NewMemoryStore(), 10*time.Second)

	rec := doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "claytonfaria",
	})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing password, got %d", rec.Code)
	}
}

func TestLogin_IssuedTokenOpensProtectedRoutes(t *testing.T) {
	router := newTestRouter(storage.NewMemoryStore(), 10*time.Second)

	rec := doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "claytonfaria",
		"password": "x",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d", rec.Code)
	}

	var body usermodel.AuthBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	rec = doJSON(t, router, http.MethodGet, "/users", body.AccessToken, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 listing users with issued token, got %d", rec.Code)
	}
}

func TestRegister_EchoesInput(t *testing.T) {
	router := newTestRouter(storage.NewMemoryStore(), 10*time.Second)

	rec := doJSON(t, router, http.MethodPost, "/auth/register", "", map[string]string{
		"email":    "new@example.com",
		"password": "hunter2",
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["email"] != "new@example.com" || body["password"] != "hunter2" {
		t.Errorf("expected echoed input, got %v", body)
	}
}

func TestProtectedRoute_NoHeader(t *testing.T) {
	store := storage.NewMemoryStore()
	router := newTestRouter(store, 10*time.Second)

	rec := doJSON(t, router, http.MethodGet, "/users", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without Authorization header, got %d", rec.Code)
	}
}

func TestUnknownRoute_Fallback(t *testing.T) {
	router := newTestRouter(storage.NewMemoryStore(), 10*time.Second)

	rec := doJSON(t, router, http.MethodGet, "/nope", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 fallback, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(storage.NewMemoryStore(), 10*time.Second)

	rec := doJSON(t, router, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestCORS_Preflight(t *testing.T) {
	router := newTestRouter(storage.NewMemoryStore(), 10*time.Second)

	req := httptest.NewRequest(http.MethodOptions, "/users", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 for preflight, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("expected permissive Allow-Origin header")
	}
}

// slowStore blocks until the request context expires, simulating a
// store operation outliving the request deadline.
type slowStore struct {
	storage.UserStore
}

func (s *slowStore) List(ctx context.Context) ([]*usermodel.User, error) {
	<-ctx.Done()
	return nil, apperrors.NewStoreError("list users", ctx.Err())
}

func TestRequestTimeout_Maps408(t *testing.T) {
	router := newTestRouter(&slowStore{storage.NewMemoryStore()}, 20*time.Millisecond)

	rec := doJSON(t, router, http.MethodGet, "/users", testToken(t), nil)
	if rec.Code != http.StatusRequestTimeout {
		t.Errorf("expected 408 when the store exceeds the deadline, got %d", rec.Code)
	}
}
