package repositories

import (
	"context"

	"github.com/PIGAsHIT/audiophile-proof/internal/domain/entities"
)

// FavoriteRepository defines the interface for per-user saved tracks
type FavoriteRepository interface {
	// Add saves a track for a user
	Add(ctx context.Context, favorite *entities.Favorite) error

	// ListByUser retrieves all favorites for a user
	ListByUser(ctx context.Context, userID string) ([]*entities.Favorite, error)

	// Remove deletes a saved track; returns ErrorTypeNotFound when absent
	Remove(ctx context.Context, userID, trackID string) error

	// Exists reports whether a user already saved a track
	Exists(ctx context.Context, userID, trackID string) (bool, error)
}
