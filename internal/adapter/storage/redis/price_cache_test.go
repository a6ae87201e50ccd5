package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/Gurn0or/golden-haven-navigator/internal/adapter/storage/redis"
	"github.com/Gurn0or/golden-haven-navigator/internal/core/domain"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	cache := redis.NewPriceCache(client)
	ctx := context.Background()

	t.Run("miss returns nil without error", func(t *testing.T) {
		price, err := cache.Get(ctx)
		require.NoError(t, err)
		assert.Nil(t, price)
	})

	t.Run("set then get round-trips", func(t *testing.T) {
		want := &domain.SpotPrice{
			USDPerGram: 76.42,
			Source:     "goldapi",
			FetchedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		}
		require.NoError(t, cache.Set(ctx, want, 30*time.Second))

		got, err := cache.Get(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 76.42, got.USDPerGram)
		assert.Equal(t, "goldapi", got.Source)
		assert.True(t, got.FetchedAt.Equal(want.FetchedAt))
	})

	t.Run("entry expires after TTL", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, &domain.SpotPrice{USDPerGram: 80}, 10*time.Second))

		mr.FastForward(11 * time.Second)

		price, err := cache.Get(ctx)
		require.NoError(t, err)
		assert.Nil(t, price)
	})

	t.Run("corrupt payload surfaces an error", func(t *testing.T) {
		require.NoError(t, mr.Set("pricing:spot", "{not json"))

		_, err := cache.Get(ctx)
		assert.Error(t, err)
	})
}
