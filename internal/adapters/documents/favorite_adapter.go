package documents

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/PIGAsHIT/audiophile-proof/internal/domain/entities"
	"github.com/PIGAsHIT/audiophile-proof/internal/domain/repositories"
	"github.com/PIGAsHIT/audiophile-proof/internal/infrastructure/clients/mongodb"
	apperrors "github.com/PIGAsHIT/audiophile-proof/pkg/errors"
)

const favoritesCollection = "favorites"

// FavoriteAdapter implements favorite persistence in MongoDB.
type FavoriteAdapter struct {
	client *mongodb.Client
}

// NewFavoriteAdapter creates a new favorite adapter.
func NewFavoriteAdapter(client *mongodb.Client) repositories.FavoriteRepository {
	return &FavoriteAdapter{client: client}
}

func (a *FavoriteAdapter) collection() *mongo.Collection {
	return a.client.Collection(favoritesCollection)
}

// Add saves a track for a user.
func (a *FavoriteAdapter) Add(ctx context.Context, favorite *entities.Favorite) error {
	if _, err := a.collection().InsertOne(ctx, favorite); err != nil {
		return apperrors.NewInternalError("failed to save favorite", err)
	}
	return nil
}

// ListByUser retrieves all favorites for a user.
func (a *FavoriteAdapter) ListByUser(ctx context.Context, userID string) ([]*entities.Favorite, error) {
	cursor, err := a.collection().Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list favorites", err)
	}
	defer cursor.Close(ctx)

	favorites := []*entities.Favorite{}
	if err := cursor.All(ctx, &favorites); err != nil {
		return nil, apperrors.NewInternalError("failed to decode favorites", err)
	}
	return favorites, nil
}

// Remove deletes a saved track.
func (a *FavoriteAdapter) Remove(ctx context.Context, userID, trackID string) error {
	res, err := a.collection().DeleteOne(ctx, bson.M{"user_id": userID, "track_id": trackID})
	if err != nil {
		return apperrors.NewInternalError("failed to remove favorite", err)
	}
	if res.DeletedCount == 0 {
		return apperrors.NewNotFoundError("Favorite not found")
	}
	return nil
}

// Exists reports whether a user already saved a track.
func (a *FavoriteAdapter) Exists(ctx context.Context, userID, trackID string) (bool, error) {
	err := a.collection().FindOne(ctx, bson.M{"user_id": userID, "track_id": trackID}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, apperrors.NewInternalError("failed to check favorite", err)
	}
	return true, nil
}
