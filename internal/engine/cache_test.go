package engine

import (
	"context"
	"fmt"
	"testing"
	"time"
)

type cachedResponse struct {
	Text     string `json:"text"`
	VideoID  string `json:"video_id"`
	Language string `json:"language_code"`
}

func TestCacheKey(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		k1 := CacheKey("dQw4w9WgXcQ", "minutes", "smart", "10")
		k2 := CacheKey("dQw4w9WgXcQ", "minutes", "smart", "10")
		if k1 != k2 {
			t.Errorf("CacheKey not deterministic: %q != %q", k1, k2)
		}
	})

	t.Run("different options differ", func(t *testing.T) {
		k1 := CacheKey("dQw4w9WgXcQ", "minutes", "smart", "10")
		k2 := CacheKey("dQw4w9WgXcQ", "minutes", "flat", "10")
		if k1 == k2 {
			t.Errorf("different options produced same key: %q", k1)
		}
	})

	t.Run("has prefix", func(t *testing.T) {
		k := CacheKey("test")
		if k[:3] != "yt:" {
			t.Errorf("expected yt: prefix, got %q", k[:3])
		}
	})
}

func TestCacheJSONRoundTrip(t *testing.T) {
	// Init minimal cache (no Redis)
	InitCache("", 1*time.Minute, 100, 5*time.Minute)

	ctx := context.Background()
	key := CacheKey("video1", "round-trip")

	// Miss
	if _, ok := CacheLoadJSON[cachedResponse](ctx, key); ok {
		t.Error("expected cache miss on empty cache")
	}

	val := cachedResponse{Text: "[0:00] hello", VideoID: "video1", Language: "en"}
	CacheStoreJSON(ctx, key, val)

	got, ok := CacheLoadJSON[cachedResponse](ctx, key)
	if !ok {
		t.Fatal("expected cache hit after store")
	}
	if got != val {
		t.Errorf("got %+v, want %+v", got, val)
	}
}

func TestCacheExpiration(t *testing.T) {
	InitCache("", 1*time.Millisecond, 100, 5*time.Minute)

	ctx := context.Background()
	key := CacheKey("video2", "expiry")

	CacheStoreJSON(ctx, key, cachedResponse{Text: "temp"})
	time.Sleep(5 * time.Millisecond)

	if _, ok := CacheLoadJSON[cachedResponse](ctx, key); ok {
		t.Error("expected cache miss after TTL expiry")
	}
}

func TestCacheEviction(t *testing.T) {
	InitCache("", 1*time.Minute, 3, 5*time.Minute)

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		key := CacheKey("evict", fmt.Sprintf("%d", i))
		CacheStoreJSON(ctx, key, cachedResponse{Text: fmt.Sprintf("entry %d", i)})
	}

	count := 0
	transcriptCache.l1.Range(func(_, _ any) bool {
		count++
		return true
	})
	if count > 3 {
		t.Errorf("expected at most 3 entries after eviction, got %d", count)
	}
}
