package documents

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/PIGAsHIT/audiophile-proof/internal/domain/entities"
	"github.com/PIGAsHIT/audiophile-proof/internal/domain/repositories"
	"github.com/PIGAsHIT/audiophile-proof/internal/infrastructure/clients/mongodb"
	apperrors "github.com/PIGAsHIT/audiophile-proof/pkg/errors"
)

const logsCollection = "logs"

// SearchEventAdapter implements the append-only audit log in MongoDB.
// Events are single-document inserts; no update or delete path exists.
type SearchEventAdapter struct {
	client *mongodb.Client
}

// NewSearchEventAdapter creates a new search event adapter.
func NewSearchEventAdapter(client *mongodb.Client) repositories.SearchEventRepository {
	return &SearchEventAdapter{client: client}
}

func (a *SearchEventAdapter) collection() *mongo.Collection {
	return a.client.Collection(logsCollection)
}

// LogEvent appends one event.
func (a *SearchEventAdapter) LogEvent(ctx context.Context, event *entities.SearchEvent) error {
	if _, err := a.collection().InsertOne(ctx, event); err != nil {
		return apperrors.NewInternalError("failed to log search event", err)
	}
	return nil
}

// ListByUser retrieves the newest full-search events for a user.
func (a *SearchEventAdapter) ListByUser(ctx context.Context, userID string, limit int) ([]*entities.SearchEvent, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := a.collection().Find(ctx, bson.M{
		"user_id": userID,
		"event":   entities.EventFullSearch,
	}, opts)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query search events", err)
	}
	defer cursor.Close(ctx)

	events := []*entities.SearchEvent{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, apperrors.NewInternalError("failed to decode search events", err)
	}
	return events, nil
}
