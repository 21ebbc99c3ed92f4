package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PIGAsHIT/audiophile-proof/internal/api/handlers"
	"github.com/PIGAsHIT/audiophile-proof/internal/api/middleware"
	"github.com/PIGAsHIT/audiophile-proof/internal/domain/entities"
	apperrors "github.com/PIGAsHIT/audiophile-proof/pkg/errors"
)

type stubAuthService struct {
	registered  map[string]string
	loginToken  string
	registerErr error
	loginErr    error
}

func newStubAuthService() *stubAuthService {
	return &stubAuthService{registered: map[string]string{}, loginToken: "token-123"}
}

func (s *stubAuthService) Register(ctx context.Context, email, password string) error {
	if s.registerErr != nil {
		return s.registerErr
	}
	s.registered[email] = password
	return nil
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, error) {
	if s.loginErr != nil {
		return "", s.loginErr
	}
	return s.loginToken, nil
}

func TestAuthHandler_Register_Success(t *testing.T) {
	service := newStubAuthService()
	handler := handlers.NewAuthHandler(service)

	body := `{"email":"alice@example.com","password":"s3cret"}`
	req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Register(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "Created successfully", response["msg"])
	assert.Contains(t, service.registered, "alice@example.com")
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	service := newStubAuthService()
	service.registerErr = apperrors.NewConflictError("Email already registered")
	handler := handlers.NewAuthHandler(service)

	body := `{"email":"alice@example.com","password":"s3cret"}`
	req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Register(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "Email already registered", response["detail"])
}

func TestAuthHandler_Register_InvalidEmail(t *testing.T) {
	service := newStubAuthService()
	service.registerErr = apperrors.NewValidationError("email is not valid")
	handler := handlers.NewAuthHandler(service)

	body := `{"email":"nope","password":"s3cret"}`
	req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Register(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAuthHandler_Register_MalformedBody(t *testing.T) {
	handler := handlers.NewAuthHandler(newStubAuthService())

	req := httptest.NewRequest("POST", "/auth/register", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	handler.Register(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func tokenRequest(email, password string) *http.Request {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)
	req := httptest.NewRequest("POST", "/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestAuthHandler_Token_Success(t *testing.T) {
	service := newStubAuthService()
	handler := handlers.NewAuthHandler(service)

	w := httptest.NewRecorder()
	handler.Token(w, tokenRequest("alice@example.com", "s3cret"))

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "token-123", response["access_token"])
	assert.Equal(t, "bearer", response["token_type"])
}

func TestAuthHandler_Token_BadCredentials(t *testing.T) {
	service := newStubAuthService()
	service.loginErr = apperrors.NewUnauthorizedError("Incorrect email or password")
	handler := handlers.NewAuthHandler(service)

	w := httptest.NewRecorder()
	handler.Token(w, tokenRequest("alice@example.com", "wrong"))

	// Login failures answer 400, not 401.
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "Incorrect email or password", response["detail"])
}

func TestAuthHandler_Me(t *testing.T) {
	handler := handlers.NewAuthHandler(newStubAuthService())

	req := httptest.NewRequest("GET", "/auth/users/me", nil)
	req = req.WithContext(middleware.WithUser(req.Context(), &entities.User{
		ID:    "u1",
		Email: "alice@example.com",
	}))
	w := httptest.NewRecorder()

	handler.Me(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "u1", response["id"])
	assert.Equal(t, "alice@example.com", response["email"])
}

func TestAuthHandler_Me_NoUser(t *testing.T) {
	handler := handlers.NewAuthHandler(newStubAuthService())

	w := httptest.NewRecorder()
	handler.Me(w, httptest.NewRequest("GET", "/auth/users/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
