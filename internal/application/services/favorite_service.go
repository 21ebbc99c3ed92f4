package services

import (
	"context"
	"time"

	"github.com/PIGAsHIT/audiophile-proof/internal/domain/entities"
	"github.com/PIGAsHIT/audiophile-proof/internal/domain/repositories"
	apperrors "github.com/PIGAsHIT/audiophile-proof/pkg/errors"
)

// FavoriteService handles per-user saved tracks.
type FavoriteService struct {
	repo repositories.FavoriteRepository
}

// NewFavoriteService creates a new favorite service. A nil repository is
// accepted; every operation then reports the store as unavailable.
func NewFavoriteService(repo repositories.FavoriteRepository) *FavoriteService {
	return &FavoriteService{repo: repo}
}

func (s *FavoriteService) unavailable() error {
	if s.repo == nil {
		return apperrors.NewInternalError("favorites store unavailable", nil)
	}
	return nil
}

// Add saves a track for a user. Adding an already-saved track is a
// no-op; the boolean reports whether a new record was written.
func (s *FavoriteService) Add(ctx context.Context, favorite *entities.Favorite) (bool, error) {
	if err := s.unavailable(); err != nil {
		return false, err
	}

	exists, err := s.repo.Exists(ctx, favorite.UserID, favorite.TrackID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if favorite.AddedAt.IsZero() {
		favorite.AddedAt = time.Now().UTC()
	}
	if err := s.repo.Add(ctx, favorite); err != nil {
		return false, err
	}
	return true, nil
}

// List returns all favorites for a user.
func (s *FavoriteService) List(ctx context.Context, userID string) ([]*entities.Favorite, error) {
	if err := s.unavailable(); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}

// Remove deletes a saved track.
func (s *FavoriteService) Remove(ctx context.Context, userID, trackID string) error {
	if err := s.unavailable(); err != nil {
		return err
	}
	return s.repo.Remove(ctx, userID, trackID)
}

// IsFavorited reports whether a user saved a track.
func (s *FavoriteService) IsFavorited(ctx context.Context, userID, trackID string) (bool, error) {
	if err := s.unavailable(); err != nil {
		return false, err
	}
	return s.repo.Exists(ctx, userID, trackID)
}
