package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestRedisCache_Miss(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	adapter := NewRedisAdapter(client)
	_, ok, err := adapter.Get(context.Background(), "test:missing:"+time.Now().Format(time.RFC3339Nano))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected miss")
	}
}

func TestRedisCache_SetGet(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	gen, _ := adapter.Generation(ctx)
	if err := adapter.Set(ctx, gen, "test:prediction", []byte(`{"total":1}`), time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok, err := adapter.Get(ctx, "test:prediction")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if string(v) != `{"total":1}` {
		t.Errorf("unexpected value %q", v)
	}

	ttl := client.TTL(ctx, generationKey(gen, "test:prediction")).Val()
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("unexpected ttl %v", ttl)
	}
}

func TestRedisCache_Invalidate(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	before, _ := adapter.Generation(ctx)
	adapter.Set(ctx, before, "test:demand", []byte("old"), time.Minute)

	if err := adapter.Invalidate(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	after, _ := adapter.generation(ctx)
	if after != before+1 {
		t.Errorf("expected generation %d, got %d", before+1, after)
	}
	if _, ok, _ := adapter.Get(ctx, "test:demand"); ok {
		t.Error("expected miss after invalidation")
	}

	adapter.Set(ctx, before, "test:demand", []byte("stale"), time.Minute)
	if _, ok, _ := adapter.Get(ctx, "test:demand"); ok {
		t.Error("write from a superseded generation must be dropped")
	}

	adapter.Set(ctx, after, "test:demand", []byte("new"), time.Minute)
	if v, ok, _ := adapter.Get(ctx, "test:demand"); !ok || string(v) != "new" {
		t.Errorf("expected fresh entry, got %q %v", v, ok)
	}
}

func TestGenerationKey(t *testing.T) {
	if got := generationKey(3, "prediction:2025-10-24:7"); got != "forecast:3:prediction:2025-10-24:7" {
		t.Errorf("unexpected key %s", got)
	}
}
