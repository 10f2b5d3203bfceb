package redis

import (
	"context"
	"testing"

	"github.com/wonny/tearsheet/backend/pkg/config"
)

func TestNewClient_Disabled(t *testing.T) {
	cfg := &config.Config{
		Redis: config.RedisConfig{
			Enabled: false,
		},
	}

	client, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if client.Enabled() {
		t.Error("Expected client to be disabled")
	}
}

func TestCache_Disabled(t *testing.T) {
	cfg := &config.Config{
		Redis: config.RedisConfig{
			Enabled: false,
		},
	}

	client, _ := New(cfg)
	cache := NewCache(client, "tearsheet")

	ctx := context.Background()

	// When Redis is disabled, cache operations should be no-ops
	var result string
	found, err := cache.Get(ctx, "some-key", &result)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("Expected cache miss when Redis disabled")
	}

	if err := cache.Set(ctx, "some-key", "value", TTLShort); err != nil {
		t.Errorf("Set() error = %v", err)
	}
}

func TestCache_GetOrSet_Disabled(t *testing.T) {
	cfg := &config.Config{
		Redis: config.RedisConfig{
			Enabled: false,
		},
	}

	client, _ := New(cfg)
	cache := NewCache(client, "tearsheet")

	// With Redis disabled GetOrSet must still produce the computed value
	var result string
	err := cache.GetOrSet(context.Background(), "k", &result, TTLDaily, func() (interface{}, error) {
		return "computed", nil
	})
	if err != nil {
		t.Fatalf("GetOrSet() error = %v", err)
	}
	if result != "computed" {
		t.Errorf("Expected result to be computed, got %q", result)
	}
}

func TestSummaryKey(t *testing.T) {
	key := SummaryKey("strategy-a")
	want := "summary:latest:strategy-a"
	if key != want {
		t.Errorf("SummaryKey() = %q, want %q", key, want)
	}
}

func TestPeriodicKey(t *testing.T) {
	key := PeriodicKey("strategy-a", "yearly")
	want := "periodic:latest:strategy-a:yearly"
	if key != want {
		t.Errorf("PeriodicKey() = %q, want %q", key, want)
	}
}
