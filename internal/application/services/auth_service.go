package services

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/PIGAsHIT/audiophile-proof/internal/domain/entities"
	"github.com/PIGAsHIT/audiophile-proof/internal/domain/repositories"
	"github.com/PIGAsHIT/audiophile-proof/pkg/config"
	apperrors "github.com/PIGAsHIT/audiophile-proof/pkg/errors"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AuthService handles registration, credential verification and token
// issuance. Tokens are HS256 JWTs with the user email as subject.
type AuthService struct {
	users  repositories.UserRepository
	secret []byte
	expiry time.Duration
}

// NewAuthService creates a new auth service.
func NewAuthService(users repositories.UserRepository, cfg *config.AuthConfig) *AuthService {
	return &AuthService{
		users:  users,
		secret: []byte(cfg.JWTSecret),
		expiry: cfg.TokenExpiry,
	}
}

// Register creates a new account. A duplicate email surfaces as a
// conflict from the repository; a malformed email is a validation error.
func (s *AuthService) Register(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if !emailPattern.MatchString(email) {
		return apperrors.NewValidationError("email is not valid")
	}
	if password == "" {
		return apperrors.NewValidationError("password is required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.NewInternalError("failed to hash password", err)
	}

	return s.users.Create(ctx, &entities.User{
		ID:             uuid.New().String(),
		Email:          email,
		HashedPassword: string(hashed),
		CreatedAt:      time.Now().UTC(),
	})
}

// Login verifies credentials and issues a signed token. Unknown emails
// and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", apperrors.NewUnauthorizedError("Incorrect email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return "", apperrors.NewUnauthorizedError("Incorrect email or password")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.Email,
		ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", apperrors.NewInternalError("failed to sign token", err)
	}
	return token, nil
}

// ResolveToken validates a bearer token and loads the user it names.
func (s *AuthService) ResolveToken(ctx context.Context, tokenString string) (*entities.User, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.NewUnauthorizedError("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return nil, apperrors.NewUnauthorizedError("invalid token")
	}

	user, err := s.users.GetByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid token")
	}
	return user, nil
}

// ResolveOptional decodes a bearer Authorization header without failing
// the request: every decode or lookup error collapses to nil. Used only
// for tagging audit events with an identity, never for authorization.
func (s *AuthService) ResolveOptional(ctx context.Context, authorization string) *entities.User {
	token, ok := strings.CutPrefix(authorization, "Bearer ")
	if !ok {
		return nil
	}
	user, err := s.ResolveToken(ctx, token)
	if err != nil {
		return nil
	}
	return user
}
