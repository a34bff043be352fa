package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/claytonfaria/userapi/internal/apperrors"
	"github.com/claytonfaria/userapi/internal/auth"
	"github.com/claytonfaria/userapi/internal/logger"
)

type contextKey string

const SubjectKey contextKey = "subject"

// AuthMiddleware gates resource routes behind a bearer token.
type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	log        *logger.Logger
}

func NewAuthMiddleware(jwtManager *auth.JWTManager) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		log:        logger.New("auth-middleware"),
	}
}

// RequireAuth rejects requests before they reach the store: a missing
// or malformed Authorization header is a 400, a token that fails
// verification is a 401.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, apperrors.ErrMissingCredentials)
			return
		}

		token := authHeader
		if strings.HasPrefix(authHeader, "Bearer ") {
			token = authHeader[7:]
		}

		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			m.log.Error("Invalid token: %v", err)
			writeError(w, apperrors.ErrInvalidToken)
			return
		}

		ctx := context.WithValue(r.Context(), SubjectKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSubject returns the authenticated identity stored by RequireAuth.
func GetSubject(ctx context.Context) string {
	if subject, ok := ctx.Value(SubjectKey).(string); ok {
		return subject
	}
	return ""
}

func writeError(w http.ResponseWriter, err error) {
	status, message := apperrors.Status(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
