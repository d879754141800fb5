package smartstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestCache(t *testing.T, now time.Time) *TokenCache {
	t.Helper()

	cache := NewTokenCache(filepath.Join(t.TempDir(), "token.json"))
	cache.now = func() time.Time { return now }

	return cache
}

func TestTokenCacheRoundTrip(t *testing.T) {
	now := time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC)
	cache := newTestCache(t, now)

	cache.Put("token-abc", 10800)

	token, ok := cache.Get(60 * time.Second)

	assert.True(t, ok)
	assert.Equal(t, "token-abc", token)
}

func TestTokenCacheExpiresWithinMargin(t *testing.T) {
	now := time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC)
	cache := newTestCache(t, now)

	// Expira em 30s: dentro da margem de 60s o token é descartado
	cache.Put("token-abc", 30)

	_, ok := cache.Get(60 * time.Second)

	assert.False(t, ok)
}

func TestTokenCacheMissingFile(t *testing.T) {
	cache := newTestCache(t, time.Now())

	_, ok := cache.Get(60 * time.Second)

	assert.False(t, ok)
}

func TestTokenCacheCorruptedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	assert.NoError(t, os.WriteFile(path, []byte("{corrompido"), 0o600))

	cache := NewTokenCache(path)

	_, ok := cache.Get(60 * time.Second)

	assert.False(t, ok)
}

func TestTokenCacheFilePermissions(t *testing.T) {
	now := time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC)
	path := filepath.Join(t.TempDir(), "token.json")

	cache := NewTokenCache(path)
	cache.now = func() time.Time { return now }
	cache.Put("token-abc", 10800)

	info, err := os.Stat(path)

	assert.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
