package providers

import (
	"context"
	"errors"

	"github.com/PIGAsHIT/audiophile-proof/internal/domain/entities"
)

// ErrNoMatch signals that the catalog search produced no usable result,
// including the case where the token exchange itself failed.
var ErrNoMatch = errors.New("no track match")

// MusicProvider searches the music catalog for the best track match.
type MusicProvider interface {
	SearchTrack(ctx context.Context, query string) (*entities.TrackMatch, error)
}
