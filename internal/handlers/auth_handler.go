package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/claytonfaria/userapi/internal/apperrors"
	"github.com/claytonfaria/userapi/internal/auth"
	"github.com/claytonfaria/userapi/internal/logger"
	usermodel "github.com/claytonfaria/userapi/internal/models/user"
)

type AuthHandler struct {
	validator  auth.CredentialValidator
	jwtManager *auth.JWTManager
	log        *logger.Logger
}

func NewAuthHandler(validator auth.CredentialValidator, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{
		validator:  validator,
		jwtManager: jwtManager,
		log:        logger.New("auth-handler"),
	}
}

// Login exchanges credentials for a signed bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req usermodel.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondAppError(w, apperrors.ErrMissingCredentials)
		return
	}

	if req.Email == "" || req.Password == "" {
		respondAppError(w, apperrors.ErrMissingCredentials)
		return
	}

	subject, err := h.validator.Authenticate(req.Email, req.Password)
	if err != nil {
		respondAppError(w, err)
		return
	}

	token, _, err := h.jwtManager.GenerateToken(subject)
	if err != nil {
		h.log.Error("Failed to generate token: %v", err)
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, usermodel.NewAuthBody(token))
}

// Register echoes the submitted credentials. There is no account store
// behind it yet.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req usermodel.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondAppError(w, apperrors.ErrMissingCredentials)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"email":    req.Email,
		"password": req.Password,
	})
}
