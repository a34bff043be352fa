package handlers

import (
	"net/http"
	"time"

	"github.com/claytonfaria/userapi/internal/logger"
	"github.com/claytonfaria/userapi/internal/middleware"
)

// NewRouter assembles the HTTP surface: public auth routes, the users
// resource behind the bearer gate, and a health endpoint. The returned
// handler carries the full middleware chain (CORS, tracing, per-request
// timeout).
func NewRouter(
	authHandler *AuthHandler,
	userHandler *UserHandler,
	healthHandler *HealthHandler,
	authMW *middleware.AuthMiddleware,
	requestTimeout time.Duration,
	log *logger.Logger,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.HandleFunc("POST /auth/register", authHandler.Register)

	mux.Handle("GET /users", authMW.RequireAuth(http.HandlerFunc(userHandler.List)))
	mux.Handle("POST /users", authMW.RequireAuth(http.HandlerFunc(userHandler.Create)))
	mux.Handle("GET /users/{id}", authMW.RequireAuth(http.HandlerFunc(userHandler.Get)))
	mux.Handle("PUT /users/{id}", authMW.RequireAuth(http.HandlerFunc(userHandler.Update)))
	mux.Handle("DELETE /users/{id}", authMW.RequireAuth(http.HandlerFunc(userHandler.Delete)))

	mux.HandleFunc("GET /healthz", healthHandler.Health)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "Not available")
	})

	var handler http.Handler = mux
	handler = middleware.Timeout(requestTimeout)(handler)
	handler = middleware.Trace(log)(handler)
	handler = middleware.CORS(handler)

	return handler
}
