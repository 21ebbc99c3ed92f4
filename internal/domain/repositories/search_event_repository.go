package repositories

import (
	"context"

	"github.com/PIGAsHIT/audiophile-proof/internal/domain/entities"
)

// SearchEventRepository defines the append-only audit log of
// recommendation requests.
type SearchEventRepository interface {
	// LogEvent appends one event
	LogEvent(ctx context.Context, event *entities.SearchEvent) error

	// ListByUser retrieves the newest full-search events for a user
	ListByUser(ctx context.Context, userID string, limit int) ([]*entities.SearchEvent, error)
}
