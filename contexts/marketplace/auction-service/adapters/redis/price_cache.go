package redisadapter

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultPriceTTL = 30 * time.Second

// PriceCache stores current auction prices in redis. Entries expire on their
// own; placements invalidate them eagerly.
type PriceCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewPriceCache(client *redis.Client, ttl time.Duration) *PriceCache {
	if ttl <= 0 {
		ttl = defaultPriceTTL
	}
	return &PriceCache{client: client, ttl: ttl}
}

func priceKey(auctionID string) string {
	return fmt.Sprintf("auction:%s:price", auctionID)
}

func (c *PriceCache) GetPrice(ctx context.Context, auctionID string) (float64, bool, error) {
	raw, err := c.client.Get(ctx, priceKey(auctionID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		// A corrupt entry behaves as a miss and is dropped.
		_ = c.client.Del(ctx, priceKey(auctionID)).Err()
		return 0, false, nil
	}
	return amount, true, nil
}

func (c *PriceCache) SetPrice(ctx context.Context, auctionID string, amount float64) error {
	return c.client.Set(ctx, priceKey(auctionID), strconv.FormatFloat(amount, 'f', -1, 64), c.ttl).Err()
}

func (c *PriceCache) InvalidatePrice(ctx context.Context, auctionID string) error {
	return c.client.Del(ctx, priceKey(auctionID)).Err()
}
