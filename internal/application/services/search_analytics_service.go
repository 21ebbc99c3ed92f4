package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/PIGAsHIT/audiophile-proof/internal/domain/entities"
	"github.com/PIGAsHIT/audiophile-proof/internal/domain/repositories"
	apperrors "github.com/PIGAsHIT/audiophile-proof/pkg/errors"
)

const (
	historyLimit      = 20
	historyTimeFormat = "2006-01-02 15:04"
	logWriteTimeout   = 5 * time.Second
)

// SearchAnalyticsService records recommendation audit events and serves
// per-user history. Writes are best-effort and must never block or fail
// the response path.
type SearchAnalyticsService struct {
	repo repositories.SearchEventRepository
}

// NewSearchAnalyticsService creates a new analytics service. A nil
// repository is accepted; event writes are then dropped and history is
// unavailable.
func NewSearchAnalyticsService(repo repositories.SearchEventRepository) *SearchAnalyticsService {
	return &SearchAnalyticsService{repo: repo}
}

// TrackSearch appends an audit event in the background. A fresh context
// is used because the request context may already be cancelled by the
// time the insert runs; failures are logged server-side only.
func (s *SearchAnalyticsService) TrackSearch(event *entities.SearchEvent) {
	if s.repo == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), logWriteTimeout)
		defer cancel()

		if err := s.repo.LogEvent(ctx, event); err != nil {
			log.Warn().Err(err).Str("event", event.Event).Msg("failed to log search event")
		}
	}()
}

// History returns the newest full-search events for a user, formatted
// for display.
func (s *SearchAnalyticsService) History(ctx context.Context, userID string) ([]entities.HistoryItem, error) {
	if s.repo == nil {
		return nil, apperrors.NewInternalError("history store unavailable", nil)
	}

	events, err := s.repo.ListByUser(ctx, userID, historyLimit)
	if err != nil {
		return nil, err
	}

	items := make([]entities.HistoryItem, 0, len(events))
	for _, event := range events {
		item := entities.HistoryItem{
			Timestamp: event.Timestamp.Format(historyTimeFormat),
		}
		if brand, ok := event.Data["brand"].(string); ok {
			item.Brand = brand
		}
		if model, ok := event.Data["model"].(string); ok {
			item.Model = model
		}
		if result, ok := event.Data["result"].(string); ok {
			item.ResultSong = result
		}
		items = append(items, item)
	}
	return items, nil
}
