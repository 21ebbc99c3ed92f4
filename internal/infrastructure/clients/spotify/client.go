package spotify

import (
	"context"

	"github.com/rs/zerolog/log"
	spotifyapi "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/PIGAsHIT/audiophile-proof/internal/domain/entities"
	"github.com/PIGAsHIT/audiophile-proof/internal/domain/providers"
	"github.com/PIGAsHIT/audiophile-proof/pkg/config"
)

// Client searches the Spotify catalog using the client-credentials grant.
// The oauth2 transport caches the bearer token for its stated expiry,
// which does not change observable search behavior.
type Client struct {
	api    *spotifyapi.Client
	market string
}

// NewClient creates a new Spotify client. Missing credentials are
// accepted; every search then degrades to no-match.
func NewClient(cfg *config.SpotifyConfig) *Client {
	c := &Client{market: cfg.Market}
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		log.Warn().Msg("spotify credentials not configured, music search disabled")
		return c
	}

	auth := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	c.api = spotifyapi.New(auth.Client(context.Background()))
	return c
}

// SearchTrack issues a single top-1 track search. Token failures, transport
// errors and empty result lists all yield providers.ErrNoMatch; the query
// text is passed through without sanitization.
func (c *Client) SearchTrack(ctx context.Context, query string) (*entities.TrackMatch, error) {
	if c.api == nil {
		return nil, providers.ErrNoMatch
	}

	results, err := c.api.Search(ctx, query, spotifyapi.SearchTypeTrack,
		spotifyapi.Limit(1), spotifyapi.Market(c.market))
	if err != nil {
		log.Warn().Err(err).Str("query", query).Msg("spotify search failed")
		return nil, providers.ErrNoMatch
	}

	if results.Tracks == nil || len(results.Tracks.Tracks) == 0 {
		return nil, providers.ErrNoMatch
	}

	return mapTrack(results.Tracks.Tracks[0]), nil
}

// mapTrack normalizes a catalog hit into the internal track shape. The
// first listed artist wins; a missing album image maps to an empty URL.
func mapTrack(track spotifyapi.FullTrack) *entities.TrackMatch {
	match := &entities.TrackMatch{
		Name:       track.Name,
		Artist:     "Unknown",
		SpotifyURL: track.ExternalURLs["spotify"],
		ID:         string(track.ID),
	}

	if len(track.Artists) > 0 {
		match.Artist = track.Artists[0].Name
	}
	if len(track.Album.Images) > 0 {
		match.CoverURL = track.Album.Images[0].URL
	}
	if track.PreviewURL != "" {
		preview := track.PreviewURL
		match.PreviewURL = &preview
	}

	return match
}
