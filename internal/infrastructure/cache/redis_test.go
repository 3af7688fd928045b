package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisWithClient(client, time.Minute, nil), mr
}

func TestRedis_GetSetJSON(t *testing.T) {
	r, mr := newTestRedis(t)
	ctx := context.Background()

	type payload struct {
		Name string `json:"name"`
	}
	if err := r.SetJSON(ctx, "k", payload{Name: "go"}, 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	if ttl := mr.TTL("k"); ttl != time.Minute {
		t.Fatalf("expected default ttl, got %v", ttl)
	}

	var got payload
	hit, err := r.GetJSON(ctx, "k", &got)
	if err != nil || !hit || got.Name != "go" {
		t.Fatalf("unexpected get: hit=%v err=%v got=%+v", hit, err, got)
	}

	hit, err = r.GetJSON(ctx, "missing", &got)
	if err != nil || hit {
		t.Fatalf("expected miss, got hit=%v err=%v", hit, err)
	}
}

func TestRedis_SetIfNotExists(t *testing.T) {
	r, mr := newTestRedis(t)
	ctx := context.Background()

	ok, err := r.SetIfNotExists(ctx, "jobs:lock:a", "1", 0)
	if err != nil || !ok {
		t.Fatalf("expected first lock to succeed")
	}
	ok, _ = r.SetIfNotExists(ctx, "jobs:lock:a", "1", 0)
	if ok {
		t.Fatalf("expected second lock to fail")
	}
	if ttl := mr.TTL("jobs:lock:a"); ttl != defaultLockTTL {
		t.Fatalf("expected lock ttl %v, got %v", defaultLockTTL, ttl)
	}
	if err := r.Delete(ctx, "jobs:lock:a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	ok, _ = r.SetIfNotExists(ctx, "jobs:lock:a", "1", time.Second)
	if !ok {
		t.Fatalf("expected lock after release")
	}
}

func TestRedis_InvalidateAggregates(t *testing.T) {
	r, mr := newTestRedis(t)
	ctx := context.Background()

	_ = mr.Set(AggregateKeyPrefix+"a", "{}")
	_ = mr.Set(AggregateKeyPrefix+"b", "{}")
	_ = mr.Set(LockKeyPrefix+"a", "1")
	_ = mr.Set("other", "x")

	n, err := r.InvalidateAggregates(ctx)
	if err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 deleted, got %d", n)
	}
	if !mr.Exists("other") {
		t.Fatalf("unrelated key removed")
	}
}

func TestRedis_NilClientBypasses(t *testing.T) {
	r := NewRedisWithClient(nil, 0, nil)
	ctx := context.Background()

	if err := r.SetJSON(ctx, "k", 1, 0); err != nil {
		t.Fatalf("bypass set: %v", err)
	}
	var v int
	if hit, err := r.GetJSON(ctx, "k", &v); hit || err != nil {
		t.Fatalf("bypass get: hit=%v err=%v", hit, err)
	}
	if ok, err := r.SetIfNotExists(ctx, "l", "1", 0); ok || err != nil {
		t.Fatalf("bypass lock: ok=%v err=%v", ok, err)
	}
	if !errors.Is(r.Ping(ctx), ErrUnavailable) {
		t.Fatalf("expected unavailable ping")
	}
	if r.TTL() != DefaultTTL {
		t.Fatalf("expected default ttl")
	}
	if r.Enabled() {
		t.Fatalf("nil client must report disabled")
	}
}
