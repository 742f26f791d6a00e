package caching

import (
	"testing"
	"time"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	cache := NewMemoryCache()

	receipt := NewReceipt("d81c25a6", "builds", "deploy-42")
	if err := cache.Set("delivery:deploy-42", receipt, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if !cache.Has("delivery:deploy-42") {
		t.Fatal("key missing after set")
	}

	restored := Receipt{}
	if err := cache.Get("delivery:deploy-42", &restored); err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if restored.ID != receipt.ID {
		t.Errorf("ID = %q, expected %q", restored.ID, receipt.ID)
	}
	if restored.Endpoint != receipt.Endpoint {
		t.Errorf("Endpoint = %q, expected %q", restored.Endpoint, receipt.Endpoint)
	}
	if restored.Key != receipt.Key {
		t.Errorf("Key = %q, expected %q", restored.Key, receipt.Key)
	}
	if !restored.SentAt.Equal(receipt.SentAt) {
		t.Errorf("SentAt = %v, expected %v", restored.SentAt, receipt.SentAt)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	cache := NewMemoryCache()

	if cache.Has("delivery:unknown") {
		t.Error("empty cache reported a key")
	}

	restored := Receipt{}
	if err := cache.Get("delivery:unknown", &restored); err == nil {
		t.Error("expected an error for a missing key")
	}
}
