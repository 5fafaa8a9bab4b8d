package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/OgbonnaBlessed/velora-sub001/internal/modules/auth/domain"
)

func TestCodeCacheSetGetConsume(t *testing.T) {
	_, client := newTestClient(t)
	cache := NewCodeCache(client)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "A@x.com", "1234", 20*time.Minute))

	entry, err := cache.Get(ctx, "a@X.com")
	require.NoError(t, err)
	require.Equal(t, "1234", entry.Code)
	require.Equal(t, "a@x.com", entry.Email)
	require.True(t, entry.ExpiresAt.After(time.Now()))

	require.NoError(t, cache.Consume(ctx, "a@x.com"))
	_, err = cache.Get(ctx, "a@x.com")
	require.ErrorIs(t, err, domain.ErrNotFound)

	// consume отсутствующего — не ошибка
	require.NoError(t, cache.Consume(ctx, "a@x.com"))
}

func TestCodeCacheOverwrite(t *testing.T) {
	_, client := newTestClient(t)
	cache := NewCodeCache(client)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "o@x.com", "1111", 20*time.Minute))
	require.NoError(t, cache.Set(ctx, "o@x.com", "2222", 20*time.Minute))

	entry, err := cache.Get(ctx, "o@x.com")
	require.NoError(t, err)
	require.Equal(t, "2222", entry.Code)
}

func TestCodeCacheTTLExpiry(t *testing.T) {
	mr, client := newTestClient(t)
	cache := NewCodeCache(client)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "t@x.com", "1234", 20*time.Minute))
	mr.FastForward(21 * time.Minute)

	_, err := cache.Get(ctx, "t@x.com")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
