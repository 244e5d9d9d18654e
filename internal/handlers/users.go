package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/alfagnish/userapi/internal/events"
	"github.com/alfagnish/userapi/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// UsersHandler provides the user CRUD and search endpoints.
type UsersHandler struct {
	store *store.Store
	hub   *events.Hub
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(st *store.Store, hub *events.Hub) *UsersHandler {
	return &UsersHandler{store: st, hub: hub}
}

// Routes registers the user routes on the given chi router. The literal
// /search route is registered alongside /{id}; chi matches it first.
func (h *UsersHandler) Routes(r chi.Router) {
	r.Get("/", h.ListUsers)
	r.Post("/", h.CreateUser)
	r.Get("/search", h.SearchUsers)
	r.Get("/{id}", h.GetUser)
	r.Put("/{id}", h.UpdateUser)
	r.Delete("/{id}", h.DeleteUser)
}

// ListUsers returns all users in insertion order.
func (h *UsersHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users := h.store.List()
	WriteSuccess(w, http.StatusOK,
		fmt.Sprintf("Retrieved %d users successfully", len(users)),
		map[string]interface{}{"users": users, "count": len(users)})
}

// GetUser returns a single user by id.
func (h *UsersHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	u, err := h.store.Get(id)
	if err != nil {
		h.storeError(w, id, err)
		return
	}

	WriteSuccess(w, http.StatusOK, "User retrieved successfully",
		map[string]interface{}{"user": u})
}

// CreateUser creates a new user from the JSON body.
func (h *UsersHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	p, ok := decodePatch(w, r)
	if !ok {
		return
	}

	u, err := h.store.Create(p)
	if err != nil {
		h.storeError(w, 0, err)
		return
	}

	h.hub.Publish(events.UserCreated, u)
	WriteSuccess(w, http.StatusCreated, "User created successfully",
		map[string]interface{}{"user": u})
}

// UpdateUser applies a partial patch to an existing user.
func (h *UsersHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	p, ok := decodePatch(w, r)
	if !ok {
		return
	}

	u, err := h.store.Update(id, p)
	if err != nil {
		h.storeError(w, id, err)
		return
	}

	h.hub.Publish(events.UserUpdated, u)
	WriteSuccess(w, http.StatusOK, "User updated successfully",
		map[string]interface{}{"user": u})
}

// DeleteUser removes a user by id.
func (h *UsersHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	u, err := h.store.Delete(id)
	if err != nil {
		h.storeError(w, id, err)
		return
	}

	h.hub.Publish(events.UserDeleted, u)
	WriteSuccess(w, http.StatusOK, "User deleted successfully",
		map[string]interface{}{"deleted_user": u})
}

// SearchUsers returns users whose name, email, or position contains the q
// parameter as a case-insensitive substring.
func (h *UsersHandler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	if !r.URL.Query().Has("q") {
		WriteFailure(w, http.StatusBadRequest, "Search query parameter 'q' is required")
		return
	}
	query := r.URL.Query().Get("q")

	users := h.store.Search(query)
	WriteSuccess(w, http.StatusOK,
		fmt.Sprintf("Found %d users matching '%s'", len(users), query),
		map[string]interface{}{"query": query, "users": users, "count": len(users)})
}

// userID parses the {id} path parameter. A non-integer or non-positive
// segment is reported as 404, matching the unknown-route behaviour.
func userID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		WriteFailure(w, http.StatusNotFound, "Resource not found")
		return 0, false
	}
	return id, true
}

// decodePatch reads a user patch from the request body. The request must
// declare a JSON content type. Unknown JSON fields (including id and
// created_at) are ignored silently.
func decodePatch(w http.ResponseWriter, r *http.Request) (store.Patch, bool) {
	if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		WriteFailure(w, http.StatusBadRequest, "Request must contain JSON data")
		return store.Patch{}, false
	}

	var p store.Patch
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		WriteFailure(w, http.StatusBadRequest, "Request must contain JSON data")
		return store.Patch{}, false
	}
	return p, true
}

// storeError maps a store error onto the HTTP status policy.
func (h *UsersHandler) storeError(w http.ResponseWriter, id int, err error) {
	var verr *store.ValidationError
	switch {
	case errors.As(err, &verr):
		WriteFailure(w, http.StatusBadRequest, "Validation failed", verr.Messages...)
	case errors.Is(err, store.ErrNotFound):
		WriteFailure(w, http.StatusNotFound, fmt.Sprintf("User with ID %d not found", id))
	case errors.Is(err, store.ErrEmailExists):
		WriteFailure(w, http.StatusConflict, "User with this email already exists")
	default:
		logrus.WithError(err).Error("unexpected store error")
		WriteFailure(w, http.StatusInternalServerError, "Internal server error")
	}
}
