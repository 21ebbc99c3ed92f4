package handlers

import (
	"context"
	"net/http"

	"github.com/PIGAsHIT/audiophile-proof/internal/api/middleware"
	apperrors "github.com/PIGAsHIT/audiophile-proof/pkg/errors"
)

// AuthUsecase defines the account operations used by the handler.
type AuthUsecase interface {
	Register(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (string, error)
}

// AuthHandler handles registration and token issuance.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload registerRequest
	if err := decodeJSONBody(r, &payload); err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, "invalid request payload")
		return
	}

	if err := h.auth.Register(r.Context(), payload.Email, payload.Password); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"msg": "Created successfully",
	})
}

// Token handles POST /auth/token. Credentials arrive as an OAuth2
// password-grant form with the email in the username field. Failed
// logins answer 400, not 401, so browser clients never trigger a basic
// auth prompt.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid form payload")
		return
	}

	email := r.PostFormValue("username")
	password := r.PostFormValue("password")

	token, err := h.auth.Login(r.Context(), email, password)
	if err != nil {
		if apperrors.TypeOf(err) == apperrors.ErrorTypeUnauthorized {
			respondWithError(w, http.StatusBadRequest, "Incorrect email or password")
			return
		}
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Me handles GET /auth/users/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"id":    user.ID,
		"email": user.Email,
	})
}
