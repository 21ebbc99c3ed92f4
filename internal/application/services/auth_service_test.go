package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PIGAsHIT/audiophile-proof/internal/domain/entities"
	"github.com/PIGAsHIT/audiophile-proof/pkg/config"
	apperrors "github.com/PIGAsHIT/audiophile-proof/pkg/errors"
)

type memUserRepo struct {
	byEmail map[string]*entities.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: map[string]*entities.User{}}
}

func (m *memUserRepo) Create(ctx context.Context, user *entities.User) error {
	if _, ok := m.byEmail[user.Email]; ok {
		return apperrors.NewConflictError("Email already registered")
	}
	m.byEmail[user.Email] = user
	return nil
}

func (m *memUserRepo) GetByID(ctx context.Context, id string) (*entities.User, error) {
	for _, user := range m.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperrors.NewNotFoundError("user not found")
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	user, ok := m.byEmail[email]
	if !ok {
		return nil, apperrors.NewNotFoundError("user not found")
	}
	return user, nil
}

func newAuthService() (*AuthService, *memUserRepo) {
	repo := newMemUserRepo()
	svc := NewAuthService(repo, &config.AuthConfig{
		JWTSecret:   "test-secret",
		TokenExpiry: 30 * time.Minute,
	})
	return svc, repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, repo := newAuthService()
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice@example.com", "s3cret"))
	require.Len(t, repo.byEmail, 1)
	assert.NotEqual(t, "s3cret", repo.byEmail["alice@example.com"].HashedPassword)

	token, err := svc.Login(ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice@example.com", "s3cret"))

	err := svc.Register(ctx, "alice@example.com", "other")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.TypeOf(err))
	assert.Contains(t, err.Error(), "Email already registered")
}

func TestRegisterRejectsMalformedEmail(t *testing.T) {
	svc, _ := newAuthService()

	for _, email := range []string{"", "not-an-email", "a@b", "spaces in@example.com"} {
		err := svc.Register(context.Background(), email, "s3cret")
		require.Error(t, err, "email %q should be rejected", email)
		assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()
	require.NoError(t, svc.Register(ctx, "alice@example.com", "s3cret"))

	token, err := svc.Login(ctx, "alice@example.com", "wrong")
	require.Error(t, err)
	assert.Empty(t, token, "no token may be issued on failed login")
	assert.Equal(t, apperrors.ErrorTypeUnauthorized, apperrors.TypeOf(err))
	assert.Contains(t, err.Error(), "Incorrect email or password")
}

func TestLoginUnknownEmailMatchesWrongPassword(t *testing.T) {
	svc, _ := newAuthService()

	_, errUnknown := svc.Login(context.Background(), "ghost@example.com", "s3cret")
	require.Error(t, errUnknown)
	assert.Contains(t, errUnknown.Error(), "Incorrect email or password")
}

func TestResolveTokenRoundTrip(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()
	require.NoError(t, svc.Register(ctx, "alice@example.com", "s3cret"))

	token, err := svc.Login(ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)

	user, err := svc.ResolveToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestResolveTokenRejectsGarbage(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.ResolveToken(context.Background(), "not.a.token")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeUnauthorized, apperrors.TypeOf(err))
}

func TestResolveTokenRejectsForeignSignature(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()
	require.NoError(t, svc.Register(ctx, "alice@example.com", "s3cret"))
	token, err := svc.Login(ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)

	other := NewAuthService(newMemUserRepo(), &config.AuthConfig{
		JWTSecret:   "different-secret",
		TokenExpiry: 30 * time.Minute,
	})
	_, err = other.ResolveToken(ctx, token)
	require.Error(t, err)
}

func TestResolveOptional(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()
	require.NoError(t, svc.Register(ctx, "alice@example.com", "s3cret"))
	token, err := svc.Login(ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)

	assert.Nil(t, svc.ResolveOptional(ctx, ""))
	assert.Nil(t, svc.ResolveOptional(ctx, "Basic abc"))
	assert.Nil(t, svc.ResolveOptional(ctx, "Bearer garbage"))

	user := svc.ResolveOptional(ctx, "Bearer "+token)
	require.NotNil(t, user)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestExpiredTokenIsRejected(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewAuthService(repo, &config.AuthConfig{
		JWTSecret:   "test-secret",
		TokenExpiry: -time.Minute,
	})
	ctx := context.Background()
	require.NoError(t, svc.Register(ctx, "alice@example.com", "s3cret"))

	token, err := svc.Login(ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)

	_, err = svc.ResolveToken(ctx, token)
	require.Error(t, err)
}
