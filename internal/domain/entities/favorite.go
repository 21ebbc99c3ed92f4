package entities

import (
	"time"
)

// Favorite is a track saved by a user.
type Favorite struct {
	UserID     string    `json:"user_id" bson:"user_id"`
	TrackID    string    `json:"track_id" bson:"track_id"`
	Title      string    `json:"title" bson:"title"`
	Artist     string    `json:"artist" bson:"artist"`
	CoverURL   string    `json:"cover_url" bson:"cover_url"`
	SpotifyURL string    `json:"spotify_url" bson:"spotify_url"`
	AddedAt    time.Time `json:"added_at" bson:"added_at"`
}
