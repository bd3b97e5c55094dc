package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/nptel-prep/quiz-service/internal/models"
)

func newTestCache(t *testing.T) *LeaderboardCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewLeaderboardCache(client)
}

func TestLeaderboardCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	lb := newTestCache(t)

	entries := []models.LeaderboardEntry{
		{Username: "B", Score: 9},
		{Username: "A", Score: 7},
	}
	if err := lb.Set(ctx, "quiz1", entries); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := lb.Get(ctx, "quiz1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(got) != 2 || got[0] != entries[0] || got[1] != entries[1] {
		t.Errorf("Get() = %v, want %v", got, entries)
	}
}

func TestLeaderboardCacheMiss(t *testing.T) {
	lb := newTestCache(t)

	_, err := lb.Get(context.Background(), "nothing")
	if !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("Get() error = %v, want ErrCacheNotFound", err)
	}
}

func TestLeaderboardCacheInvalidate(t *testing.T) {
	ctx := context.Background()
	lb := newTestCache(t)

	if err := lb.Set(ctx, "quiz1", []models.LeaderboardEntry{{Username: "A", Score: 1}}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := lb.Invalidate(ctx, "quiz1"); err != nil {
		t.Fatalf("Invalidate() error = %v", err)
	}
	if _, err := lb.Get(ctx, "quiz1"); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("Get() after invalidate error = %v, want ErrCacheNotFound", err)
	}
}

func TestLeaderboardCacheNilClient(t *testing.T) {
	ctx := context.Background()
	lb := NewLeaderboardCache(nil)

	if err := lb.Set(ctx, "quiz1", nil); err != nil {
		t.Errorf("Set() with nil client error = %v", err)
	}
	if _, err := lb.Get(ctx, "quiz1"); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("Get() with nil client error = %v, want ErrCacheNotAvailable", err)
	}
	if err := lb.Invalidate(ctx, "quiz1"); err != nil {
		t.Errorf("Invalidate() with nil client error = %v", err)
	}
}
