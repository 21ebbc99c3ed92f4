package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/PIGAsHIT/audiophile-proof/internal/api/middleware"
	"github.com/PIGAsHIT/audiophile-proof/internal/domain/entities"
)

// FavoriteUsecase defines the saved-track operations used by the handler.
type FavoriteUsecase interface {
	Add(ctx context.Context, favorite *entities.Favorite) (bool, error)
	List(ctx context.Context, userID string) ([]*entities.Favorite, error)
	Remove(ctx context.Context, userID, trackID string) error
	IsFavorited(ctx context.Context, userID, trackID string) (bool, error)
}

// HistoryUsecase serves a user's recent searches.
type HistoryUsecase interface {
	History(ctx context.Context, userID string) ([]entities.HistoryItem, error)
}

// UserHandler handles the authenticated per-user surface: favorites and
// search history.
type UserHandler struct {
	favorites FavoriteUsecase
	history   HistoryUsecase
}

// NewUserHandler creates a new user handler.
func NewUserHandler(favorites FavoriteUsecase, history HistoryUsecase) *UserHandler {
	return &UserHandler{
		favorites: favorites,
		history:   history,
	}
}

type favoriteRequest struct {
	TrackID    string `json:"track_id"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	CoverURL   string `json:"cover_url"`
	SpotifyURL string `json:"spotify_url"`
}

// AddFavorite handles POST /user/favorites
func (h *UserHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var payload favoriteRequest
	if err := decodeJSONBody(r, &payload); err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, "invalid request payload")
		return
	}
	if strings.TrimSpace(payload.TrackID) == "" {
		respondWithError(w, http.StatusUnprocessableEntity, "track_id is required")
		return
	}

	added, err := h.favorites.Add(r.Context(), &entities.Favorite{
		UserID:     user.ID,
		TrackID:    payload.TrackID,
		Title:      payload.Title,
		Artist:     payload.Artist,
		CoverURL:   payload.CoverURL,
		SpotifyURL: payload.SpotifyURL,
	})
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	status := "exists"
	if added {
		status = "added"
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": status})
}

// ListFavorites handles GET /user/favorites
func (h *UserHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	favorites, err := h.favorites.List(r.Context(), user.ID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	if favorites == nil {
		favorites = []*entities.Favorite{}
	}

	respondWithJSON(w, http.StatusOK, favorites)
}

// RemoveFavorite handles DELETE /user/favorites/{track_id}
func (h *UserHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	if err := h.favorites.Remove(r.Context(), user.ID, r.PathValue("track_id")); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// CheckFavorite handles GET /user/favorites/check/{track_id}
func (h *UserHandler) CheckFavorite(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	favorited, err := h.favorites.IsFavorited(r.Context(), user.ID, r.PathValue("track_id"))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"is_favorited": favorited})
}

// History handles GET /user/history
func (h *UserHandler) History(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	items, err := h.history.History(r.Context(), user.ID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	if items == nil {
		items = []entities.HistoryItem{}
	}

	respondWithJSON(w, http.StatusOK, items)
}
