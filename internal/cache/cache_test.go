package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAsideFetchesOnMissAndServesFromCache(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	type entry struct {
		Name string `json:"name"`
	}

	fetches := 0
	fetch := func(dest *entry) func() error {
		return func() error {
			fetches++
			dest.Name = "Diluc"
			return nil
		}
	}

	var first entry
	require.NoError(t, Aside(ctx, CharacterKey("Diluc"), &first, CharacterTTL, fetch(&first)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "Diluc", first.Name)

	var second entry
	require.NoError(t, Aside(ctx, CharacterKey("Diluc"), &second, CharacterTTL, fetch(&second)))
	assert.Equal(t, 1, fetches, "second read should come from cache")
	assert.Equal(t, "Diluc", second.Name)
}

func TestAsideExpiry(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	var v string
	fetches := 0
	fetch := func() error {
		fetches++
		v = "fetched"
		return nil
	}

	require.NoError(t, Aside(ctx, "k", &v, time.Minute, fetch))
	mr.FastForward(2 * time.Minute)
	require.NoError(t, Aside(ctx, "k", &v, time.Minute, fetch))
	assert.Equal(t, 2, fetches)
}

func TestInvalidateCharacters(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, CharacterKey("Diluc"), "x", time.Minute))
	require.NoError(t, SetJSON(ctx, CharacterListKey(), "y", time.Minute))

	InvalidateCharacters(ctx, "Diluc")

	var out string
	found, err := GetJSON(ctx, CharacterKey("Diluc"), &out)
	require.NoError(t, err)
	assert.False(t, found)
	found, err = GetJSON(ctx, CharacterListKey(), &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestHelpersDegradeWithoutClient(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	found, err := GetJSON(ctx, "missing", new(string))
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, SetJSON(ctx, "k", "v", time.Minute))

	var v string
	require.NoError(t, Aside(ctx, "k", &v, time.Minute, func() error {
		v = "fetched"
		return nil
	}))
	assert.Equal(t, "fetched", v)
}
