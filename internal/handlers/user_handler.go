package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/claytonfaria/userapi/internal/apperrors"
	"github.com/claytonfaria/userapi/internal/logger"
	usermodel "github.com/claytonfaria/userapi/internal/models/user"
	"github.com/claytonfaria/userapi/internal/storage"
)

type UserHandler struct {
	store storage.UserStore
	log   *logger.Logger
}

func NewUserHandler(store storage.UserStore) *UserHandler {
	return &UserHandler{
		store: store,
		log:   logger.New("user-handler"),
	}
}

// handleStoreError logs driver failures before masking them; everything
// in the closed error set passes through to the mapping table.
func (h *UserHandler) handleStoreError(w http.ResponseWriter, err error) {
	var storeErr *apperrors.StoreError
	if errors.As(err, &storeErr) {
		h.log.Error("Store failure: %v", storeErr)
	}
	respondAppError(w, err)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	// Pagination parameters are accepted but not yet applied to the
	// result set.
	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", 30)
	h.log.Debug("Listing users (page=%d per_page=%d)", page, perPage)

	users, err := h.store.List(r.Context())
	if err != nil {
		h.handleStoreError(w, err)
		return
	}

	if users == nil {
		users = []*usermodel.User{}
	}

	respondJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	u, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.handleStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, u)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req usermodel.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.FirstName == "" {
		respondError(w, http.StatusBadRequest, "first_name is required")
		return
	}
	if req.LastName == "" {
		respondError(w, http.StatusBadRequest, "last_name is required")
		return
	}
	if req.Gender == "" {
		respondError(w, http.StatusBadRequest, "gender is required")
		return
	}

	u, err := h.store.Create(r.Context(), &req)
	if err != nil {
		h.handleStoreError(w, err)
		return
	}

	h.log.Debug("Created user %d", u.ID)
	respondJSON(w, http.StatusCreated, u)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req usermodel.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	u, err := h.store.Update(r.Context(), id, &req)
	if err != nil {
		h.handleStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, u)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		h.handleStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, key string, defaultValue int) int {
	if value := r.URL.Query().Get(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil && intVal > 0 {
			return intVal
		}
	}
	return defaultValue
}
