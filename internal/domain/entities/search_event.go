package entities

import (
	"time"
)

// Event kinds recorded on the recommendation path.
const (
	EventCacheHit   = "search_cache_hit"
	EventFullSearch = "search_headphone"
)

// SearchEvent is one append-only audit record of a recommendation
// request. Events are created once and never mutated.
type SearchEvent struct {
	Event     string                 `json:"event" bson:"event"`
	Timestamp time.Time              `json:"timestamp" bson:"timestamp"`
	UserID    *string                `json:"user_id" bson:"user_id"`
	Data      map[string]interface{} `json:"data" bson:"data"`
}

// HistoryItem is the per-user view of a full-search event.
type HistoryItem struct {
	Brand      string `json:"brand"`
	Model      string `json:"model"`
	ResultSong string `json:"result_song"`
	Timestamp  string `json:"timestamp"`
}
