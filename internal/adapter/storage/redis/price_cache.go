package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Gurn0or/golden-haven-navigator/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

const spotPriceKey = "pricing:spot"

// PriceCache implements ports.PriceCache using a single Redis key with TTL.
type PriceCache struct {
	client *goredis.Client
}

// NewPriceCache creates a Redis-backed spot price cache.
func NewPriceCache(client *goredis.Client) *PriceCache {
	return &PriceCache{client: client}
}

// Get returns the cached spot price, or nil on a miss.
func (c *PriceCache) Get(ctx context.Context) (*domain.SpotPrice, error) {
	data, err := c.client.Get(ctx, spotPriceKey).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get spot price: %w", err)
	}

	var price domain.SpotPrice
	if err := json.Unmarshal(data, &price); err != nil {
		return nil, fmt.Errorf("unmarshal spot price: %w", err)
	}
	return &price, nil
}

// Set caches the spot price for the given TTL.
func (c *PriceCache) Set(ctx context.Context, price *domain.SpotPrice, ttl time.Duration) error {
	data, err := json.Marshal(price)
	if err != nil {
		return fmt.Errorf("marshal spot price: %w", err)
	}
	if err := c.client.Set(ctx, spotPriceKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set spot price: %w", err)
	}
	return nil
}
