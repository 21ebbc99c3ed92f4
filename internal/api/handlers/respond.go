package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/PIGAsHIT/audiophile-proof/pkg/errors"
)

func decodeJSONBody(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"detail": message,
	})
}

// respondWithServiceError maps an application error onto an HTTP status.
// The AppError message is the response detail; the wrapped cause stays
// server-side.
func respondWithServiceError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondWithError(w, statusForErrorType(appErr.Type), appErr.Message)
}

func statusForErrorType(t apperrors.ErrorType) int {
	switch t {
	case apperrors.ErrorTypeValidation:
		return http.StatusUnprocessableEntity
	case apperrors.ErrorTypeConflict:
		return http.StatusBadRequest
	case apperrors.ErrorTypeUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrorTypeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
