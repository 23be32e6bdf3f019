package redisadapter

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) *PriceCache {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewPriceCache(client, time.Minute)
}

func TestPriceCacheRoundTrip(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	if _, hit, err := cache.GetPrice(ctx, "a-1"); err != nil || hit {
		t.Fatalf("expected clean miss, hit=%v err=%v", hit, err)
	}

	if err := cache.SetPrice(ctx, "a-1", 149.5); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	amount, hit, err := cache.GetPrice(ctx, "a-1")
	if err != nil || !hit {
		t.Fatalf("expected hit, hit=%v err=%v", hit, err)
	}
	if amount != 149.5 {
		t.Fatalf("expected 149.5, got %v", amount)
	}
}

func TestPriceCacheInvalidate(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	if err := cache.SetPrice(ctx, "a-1", 200); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := cache.InvalidatePrice(ctx, "a-1"); err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}
	if _, hit, err := cache.GetPrice(ctx, "a-1"); err != nil || hit {
		t.Fatalf("expected miss after invalidation, hit=%v err=%v", hit, err)
	}
}
