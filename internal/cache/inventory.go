package cache

import (
	"context"
	"fmt"
	"time"
)

// Only the character directory is cached. Guide reads always hit the
// database so moderation visibility tracks the last committed transition.
const (
	characterKeyPrefix = "character:%s"
	characterListKey   = "characters:all"
)

const (
	// Characters are immutable reference data; a long TTL is safe.
	CharacterTTL     = time.Hour
	CharacterListTTL = time.Hour
)

func CharacterKey(name string) string {
	return fmt.Sprintf(characterKeyPrefix, name)
}

func CharacterListKey() string {
	return characterListKey
}

func Invalidate(ctx context.Context, keys ...string) {
	if client != nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateCharacters drops character entries after a re-seed.
func InvalidateCharacters(ctx context.Context, names ...string) {
	keys := make([]string, 0, len(names)+1)
	keys = append(keys, characterListKey)
	for _, n := range names {
		keys = append(keys, CharacterKey(n))
	}
	Invalidate(ctx, keys...)
}
