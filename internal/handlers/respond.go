package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/claytonfaria/userapi/internal/apperrors"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondAppError maps a domain error to its status code and canned
// message. Anything outside the closed error set comes out as an
// opaque 500.
func respondAppError(w http.ResponseWriter, err error) {
	status, message := apperrors.Status(err)
	respondError(w, status, message)
}
