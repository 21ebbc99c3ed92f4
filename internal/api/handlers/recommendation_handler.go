package handlers

import (
	"context"
	"net/http"

	"github.com/PIGAsHIT/audiophile-proof/internal/domain/entities"
)

// RecommendationUsecase defines the recommendation pipeline entrypoint.
type RecommendationUsecase interface {
	Recommend(ctx context.Context, brand, model string, userID *string) (*entities.TrackRecommendation, error)
}

// IdentityResolver decodes an Authorization header into a user without
// failing the request.
type IdentityResolver interface {
	ResolveOptional(ctx context.Context, authorization string) *entities.User
}

// RecommendationHandler handles headphone-to-track searches.
type RecommendationHandler struct {
	recommendations RecommendationUsecase
	identity        IdentityResolver
}

// NewRecommendationHandler creates a new recommendation handler.
func NewRecommendationHandler(recommendations RecommendationUsecase, identity IdentityResolver) *RecommendationHandler {
	return &RecommendationHandler{
		recommendations: recommendations,
		identity:        identity,
	}
}

type recommendRequest struct {
	Brand string `json:"brand"`
	Model string `json:"model"`
}

// Recommend handles POST /recommend. The endpoint is public; a bearer
// token, when present and valid, only tags the audit trail so the search
// shows up in that user's history.
func (h *RecommendationHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var payload recommendRequest
	if err := decodeJSONBody(r, &payload); err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, "invalid request payload")
		return
	}

	var userID *string
	if h.identity != nil {
		if user := h.identity.ResolveOptional(r.Context(), r.Header.Get("Authorization")); user != nil {
			userID = &user.ID
		}
	}

	rec, err := h.recommendations.Recommend(r.Context(), payload.Brand, payload.Model, userID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, rec)
}
