package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/PIGAsHIT/audiophile-proof/internal/domain/entities"
	"github.com/PIGAsHIT/audiophile-proof/internal/domain/providers"
)

const (
	keyPrefix  = "rec"
	ttlSeconds = 3600
)

// RecommendationCache stores assembled recommendations keyed by
// normalized brand+model. Caching is an optimization, not a correctness
// requirement: every failure degrades to a miss or is swallowed.
type RecommendationCache struct {
	provider providers.CacheProvider
}

// NewRecommendationCache creates a recommendation cache over a cache
// provider. A nil provider is accepted; every lookup is then a miss.
func NewRecommendationCache(provider providers.CacheProvider) *RecommendationCache {
	return &RecommendationCache{provider: provider}
}

// Key derives the cache key for a brand/model pair. Repeated writes with
// the same key overwrite; there are no merge semantics.
func Key(brand, model string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, strings.ToLower(brand), strings.ToLower(model))
}

// Get returns the cached recommendation for brand/model, or false on
// miss. Transport and deserialization errors are logged and treated as a
// miss, never propagated.
func (c *RecommendationCache) Get(ctx context.Context, brand, model string) (*entities.TrackRecommendation, bool) {
	if c.provider == nil {
		return nil, false
	}

	key := Key(brand, model)
	data, err := c.provider.Get(ctx, key)
	if err != nil {
		return nil, false
	}

	var rec entities.TrackRecommendation
	if err := json.Unmarshal(data, &rec); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("discarding corrupt cache entry")
		return nil, false
	}
	return &rec, true
}

// Set writes a recommendation under the normalized key with the fixed
// TTL. Write failures are logged and swallowed.
func (c *RecommendationCache) Set(ctx context.Context, brand, model string, rec *entities.TrackRecommendation) {
	if c.provider == nil {
		return
	}

	key := Key(brand, model)
	data, err := json.Marshal(rec)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to encode recommendation for cache")
		return
	}
	if err := c.provider.Set(ctx, key, data, ttlSeconds); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to save recommendation to cache")
	}
}
