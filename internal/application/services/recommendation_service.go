package services

import (
	"context"
	"strings"

	"github.com/PIGAsHIT/audiophile-proof/internal/adapters/cache"
	"github.com/PIGAsHIT/audiophile-proof/internal/domain/entities"
	"github.com/PIGAsHIT/audiophile-proof/internal/domain/providers"
	"github.com/PIGAsHIT/audiophile-proof/internal/infrastructure/observability"
	apperrors "github.com/PIGAsHIT/audiophile-proof/pkg/errors"
)

// Fallback sentinels substituted when an external dependency is down.
// A result built from any of these must never reach the cache.
const (
	FallbackSongQuery = "Hotel California - Eagles"
	FallbackSummary   = "AI Busy"
	FallbackArtist    = "Unknown"
	FallbackTrackID   = "unknown"

	missingField = "N/A"
)

// RecommendationService sequences the recommendation pipeline: cache
// lookup, AI analysis, catalog search, assembly, the cache-write decision
// and audit logging. Each request runs the pipeline strictly linearly;
// there is no shared mutable state between concurrent runs beyond the
// externally owned cache and log stores.
type RecommendationService struct {
	cache     *cache.RecommendationCache
	analysis  providers.AnalysisProvider
	music     providers.MusicProvider
	analytics *SearchAnalyticsService
	metrics   *observability.Metrics
}

// NewRecommendationService creates the orchestrator from its injected
// collaborators.
func NewRecommendationService(
	recCache *cache.RecommendationCache,
	analysis providers.AnalysisProvider,
	music providers.MusicProvider,
	analytics *SearchAnalyticsService,
	metrics *observability.Metrics,
) *RecommendationService {
	return &RecommendationService{
		cache:     recCache,
		analysis:  analysis,
		music:     music,
		analytics: analytics,
		metrics:   metrics,
	}
}

// Recommend resolves a brand/model pair to a track recommendation.
// Upstream outages never surface as errors: the AI and search steps fall
// back to fixed sentinel data and the result is returned with a 200,
// merely skipping the cache write. The only error returned is malformed
// input.
func (s *RecommendationService) Recommend(ctx context.Context, brand, model string, userID *string) (*entities.TrackRecommendation, error) {
	brand = strings.TrimSpace(brand)
	model = strings.TrimSpace(model)
	if brand == "" || model == "" {
		return nil, apperrors.NewValidationError("brand and model are required")
	}

	if cached, ok := s.cache.Get(ctx, brand, model); ok {
		s.countCache("hit")
		s.analytics.TrackSearch(&entities.SearchEvent{
			Event:  entities.EventCacheHit,
			UserID: userID,
			Data:   map[string]interface{}{"brand": brand, "model": model},
		})
		return cached, nil
	}
	s.countCache("miss")

	shouldCache := true

	analysis, err := s.analysis.Analyze(ctx, brand, model)
	if err != nil {
		s.countExternal("gemini", "unavailable")
		shouldCache = false
		analysis = fallbackAnalysis()
	} else {
		s.countExternal("gemini", "ok")
	}

	track, err := s.music.SearchTrack(ctx, analysis.SongQuery)
	if err != nil {
		s.countExternal("spotify", "no_match")
		shouldCache = false
		track = fallbackTrack(analysis.SongQuery)
	} else {
		s.countExternal("spotify", "ok")
	}

	rec := assemble(analysis, track)

	// Fallback-tainted results are never cached so a transient outage
	// cannot poison future lookups for the same query.
	if shouldCache {
		s.cache.Set(ctx, brand, model, rec)
	}

	s.analytics.TrackSearch(&entities.SearchEvent{
		Event:  entities.EventFullSearch,
		UserID: userID,
		Data:   map[string]interface{}{"brand": brand, "model": model, "result": rec.Title},
	})

	return rec, nil
}

func fallbackAnalysis() *entities.AIAnalysis {
	return &entities.AIAnalysis{
		SoundFeatures: []string{},
		SongQuery:     FallbackSongQuery,
		Summary:       FallbackSummary,
	}
}

func fallbackTrack(songQuery string) *entities.TrackMatch {
	return &entities.TrackMatch{
		Name:       songQuery,
		Artist:     FallbackArtist,
		CoverURL:   "",
		SpotifyURL: "#",
		ID:         FallbackTrackID,
	}
}

// assemble flattens the analysis and track into the response entity.
// Absent spec and analysis text fields default to "N/A"; the feature list
// is never nil; the preview URL passes through as nullable.
func assemble(analysis *entities.AIAnalysis, track *entities.TrackMatch) *entities.TrackRecommendation {
	features := analysis.SoundFeatures
	if features == nil {
		features = []string{}
	}

	return &entities.TrackRecommendation{
		FormFactor:   orMissing(analysis.Specs.FormFactor),
		Connection:   orMissing(analysis.Specs.Connection),
		ReleaseYear:  orMissing(analysis.Specs.Year),
		PriceRange:   orMissing(analysis.Specs.Price),
		DriverConfig: orMissing(analysis.Specs.Driver),

		SoundFeatures: features,

		AnalysisBass:   orMissing(analysis.DetailedAnalysis.Bass),
		AnalysisMids:   orMissing(analysis.DetailedAnalysis.Mids),
		AnalysisHighs:  orMissing(analysis.DetailedAnalysis.Highs),
		ListeningGuide: orMissing(analysis.DetailedAnalysis.Guide),

		Title:      track.Name,
		Artist:     track.Artist,
		Comment:    analysis.Summary,
		CoverURL:   track.CoverURL,
		SpotifyURL: track.SpotifyURL,
		TrackID:    track.ID,
		PreviewURL: track.PreviewURL,
	}
}

func orMissing(value string) string {
	if value == "" {
		return missingField
	}
	return value
}

func (s *RecommendationService) countCache(outcome string) {
	if s.metrics != nil {
		s.metrics.CacheEvents.WithLabelValues(outcome).Inc()
	}
}

func (s *RecommendationService) countExternal(service, outcome string) {
	if s.metrics != nil {
		s.metrics.ExternalCalls.WithLabelValues(service, outcome).Inc()
	}
}
