package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PIGAsHIT/audiophile-proof/internal/domain/entities"
)

type fakeProvider struct {
	store  map[string][]byte
	ttls   map[string]int
	getErr error
	setErr error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{store: map[string][]byte{}, ttls: map[string]int{}}
}

func (f *fakeProvider) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.store[key]
	if !ok {
		return nil, errors.New("key not found")
	}
	return data, nil
}

func (f *fakeProvider) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.store[key] = value
	f.ttls[key] = expirationSeconds
	return nil
}

func (f *fakeProvider) Delete(ctx context.Context, key string) error {
	delete(f.store, key)
	return nil
}

func TestKeyNormalization(t *testing.T) {
	assert.Equal(t, "rec:sony:wh-1000xm5", Key("Sony", "WH-1000XM5"))
	assert.Equal(t, Key("SONY", "wh-1000xm5"), Key("sony", "WH-1000XM5"))
}

func TestCacheRoundTrip(t *testing.T) {
	provider := newFakeProvider()
	c := NewRecommendationCache(provider)

	rec := &entities.TrackRecommendation{Title: "Hotel California", Artist: "Eagles", TrackID: "abc"}
	c.Set(context.Background(), "Sony", "WH-1000XM5", rec)

	got, ok := c.Get(context.Background(), "sony", "wh-1000xm5")
	require.True(t, ok)
	assert.Equal(t, rec, got)
	assert.Equal(t, 3600, provider.ttls["rec:sony:wh-1000xm5"])
}

func TestGetMissOnAbsentKey(t *testing.T) {
	c := NewRecommendationCache(newFakeProvider())

	_, ok := c.Get(context.Background(), "Sony", "WH-1000XM5")
	assert.False(t, ok)
}

func TestGetMissOnTransportError(t *testing.T) {
	provider := newFakeProvider()
	provider.getErr = errors.New("connection refused")
	c := NewRecommendationCache(provider)

	_, ok := c.Get(context.Background(), "Sony", "WH-1000XM5")
	assert.False(t, ok)
}

func TestGetMissOnCorruptEntry(t *testing.T) {
	provider := newFakeProvider()
	provider.store[Key("Sony", "WH-1000XM5")] = []byte("{not json")
	c := NewRecommendationCache(provider)

	_, ok := c.Get(context.Background(), "Sony", "WH-1000XM5")
	assert.False(t, ok)
}

func TestSetSwallowsWriteFailure(t *testing.T) {
	provider := newFakeProvider()
	provider.setErr = errors.New("connection refused")
	c := NewRecommendationCache(provider)

	// Must not panic or propagate.
	c.Set(context.Background(), "Sony", "WH-1000XM5", &entities.TrackRecommendation{})
}

func TestSetOverwrites(t *testing.T) {
	provider := newFakeProvider()
	c := NewRecommendationCache(provider)

	c.Set(context.Background(), "Sony", "WH-1000XM5", &entities.TrackRecommendation{Title: "First"})
	c.Set(context.Background(), "Sony", "WH-1000XM5", &entities.TrackRecommendation{Title: "Second"})

	got, ok := c.Get(context.Background(), "Sony", "WH-1000XM5")
	require.True(t, ok)
	assert.Equal(t, "Second", got.Title)

	var stored entities.TrackRecommendation
	require.NoError(t, json.Unmarshal(provider.store[Key("Sony", "WH-1000XM5")], &stored))
	assert.Equal(t, "Second", stored.Title)
}

func TestNilProviderIsAlwaysMiss(t *testing.T) {
	c := NewRecommendationCache(nil)

	c.Set(context.Background(), "Sony", "WH-1000XM5", &entities.TrackRecommendation{})
	_, ok := c.Get(context.Background(), "Sony", "WH-1000XM5")
	assert.False(t, ok)
}
