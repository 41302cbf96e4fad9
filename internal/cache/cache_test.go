package cache_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripscout/tripscout/internal/cache"
	"github.com/tripscout/tripscout/internal/geo"
)

func newTestCache(t *testing.T) (*cache.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return cache.New(client), mr
}

func sampleLocation() *geo.Location {
	return &geo.Location{
		Latitude:  51.8787,
		Longitude: -0.42,
		Name:      "Luton",
		Region:    "East",
	}
}

func TestCache_SetAndGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "Luton", sampleLocation()))

	got, err := c.Get(ctx, "Luton")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 51.8787, got.Latitude)
	assert.Equal(t, "Luton", got.Name)
	assert.Equal(t, "East", got.Region)
}

func TestCache_Get_Miss(t *testing.T) {
	c, _ := newTestCache(t)

	got, err := c.Get(context.Background(), "nowhere")
	require.NoError(t, err)
	assert.Nil(t, got, "cache miss should return nil, nil")
}

func TestCache_KeyIsNormalized(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "  LUTON ", sampleLocation()))

	got, err := c.Get(ctx, "luton")
	require.NoError(t, err)
	require.NotNil(t, got, "casing and whitespace must not split cache entries")
}

func TestCache_Set_NilLocation(t *testing.T) {
	c, _ := newTestCache(t)
	// Setting nil should be a no-op, not an error.
	require.NoError(t, c.Set(context.Background(), "Luton", nil))

	got, err := c.Get(context.Background(), "Luton")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCache_TTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "Luton", sampleLocation()))

	// Fast-forward miniredis past the 24h TTL.
	mr.FastForward(25 * 60 * 60 * 1e9)

	got, err := c.Get(ctx, "Luton")
	require.NoError(t, err)
	assert.Nil(t, got, "entry should be expired after TTL")
}

func TestConnect_InvalidURL(t *testing.T) {
	_, err := cache.Connect(context.Background(), "not-a-url")
	require.Error(t, err)
}

func TestConnect_UnreachableServer(t *testing.T) {
	_, err := cache.Connect(context.Background(), "redis://localhost:19999")
	require.Error(t, err)
}
