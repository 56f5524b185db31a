package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"server/internal/domain"
	"server/internal/middleware"
)

type creationsResponse struct {
	Success   bool              `json:"success"`
	Creations []domain.Creation `json:"creations"`
}

type likeResponse struct {
	Success         bool             `json:"success"`
	UpdatedCreation *domain.Creation `json:"updatedCreation"`
}

// GetUserCreations returns the caller's own creations, newest first.
func (a *App) GetUserCreations(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		a.fail(w, domain.AuthError("missing user context"))
		return
	}

	creations, err := a.Creations.ListByUser(r.Context(), user.ID, domain.ListOptions{})
	if err != nil {
		a.fail(w, err)
		return
	}
	if creations == nil {
		creations = []domain.Creation{}
	}
	a.json(w, http.StatusOK, creationsResponse{Success: true, Creations: creations})
}

// GetPublicCreations returns the published community feed, paginated.
func (a *App) GetPublicCreations(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserFromContext(r.Context()); !ok {
		a.fail(w, domain.AuthError("missing user context"))
		return
	}

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 20)

	creations, err := a.Creations.ListPublic(r.Context(), page, limit)
	if err != nil {
		a.fail(w, err)
		return
	}
	if creations == nil {
		creations = []domain.Creation{}
	}
	a.json(w, http.StatusOK, creationsResponse{Success: true, Creations: creations})
}

// LikeCreation toggles the caller's like on a creation.
func (a *App) LikeCreation(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		a.fail(w, domain.AuthError("missing user context"))
		return
	}

	creationID, err := strconv.ParseInt(chi.URLParam(r, "creationId"), 10, 64)
	if err != nil {
		a.fail(w, domain.ValidationError("creationId", "creationId must be an integer"))
		return
	}

	updated, err := a.Creations.ToggleLike(r.Context(), user.ID, creationID)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, likeResponse{Success: true, UpdatedCreation: updated})
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
