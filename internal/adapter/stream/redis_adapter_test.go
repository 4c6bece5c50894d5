package stream

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/musicstore/internal/core/domain"
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

func newEvent(sid string, kind domain.TransactionKind, copies int) domain.TransactionEvent {
	return domain.TransactionEvent{SID: sid, Transaction: domain.NewTransaction(kind, copies)}
}

func TestPublish_AppendsToStream(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	stream := "test:feed:append"
	adapter := NewRedisAdapter(client, stream, 1000)

	// Setup
	client.Del(ctx, stream)
	event := newEvent("S1", domain.TransactionKindSell, 3)
	defer client.Del(ctx, publishedKeyPrefix+event.Transaction.ID)

	ok, err := adapter.Publish(ctx, event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected event to be published")
	}

	// Verify
	entries, err := client.XRange(ctx, stream, "-", "+").Result()
	if err != nil {
		t.Fatalf("xrange: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	values := entries[0].Values
	if values["tx_id"] != event.Transaction.ID {
		t.Errorf("expected tx_id %s, got %v", event.Transaction.ID, values["tx_id"])
	}
	if values["sid"] != "S1" {
		t.Errorf("expected sid S1, got %v", values["sid"])
	}
	if values["kind"] != "SELL" {
		t.Errorf("expected kind SELL, got %v", values["kind"])
	}
	if values["copies"] != "3" {
		t.Errorf("expected copies 3, got %v", values["copies"])
	}
}

func TestPublish_Duplicate(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	stream := "test:feed:duplicate"
	adapter := NewRedisAdapter(client, stream, 1000)

	client.Del(ctx, stream)
	event := newEvent("S1", domain.TransactionKindSupply, 5)
	defer client.Del(ctx, publishedKeyPrefix+event.Transaction.ID)

	ok, err := adapter.Publish(ctx, event)
	if err != nil || !ok {
		t.Fatalf("first publish: ok=%v err=%v", ok, err)
	}

	ok, err = adapter.Publish(ctx, event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected second publish to be rejected")
	}

	length, _ := adapter.StreamLength(ctx)
	if length != 1 {
		t.Errorf("expected stream length 1, got %d", length)
	}
}

func TestPublish_Concurrent(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	stream := "test:feed:concurrent"
	adapter := NewRedisAdapter(client, stream, 1000)

	client.Del(ctx, stream)
	event := newEvent("S1", domain.TransactionKindSell, 1)
	defer client.Del(ctx, publishedKeyPrefix+event.Transaction.ID)

	var successCount atomic.Int32
	var wg sync.WaitGroup
	concurrency := 50

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := adapter.Publish(ctx, event)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if ok {
				successCount.Add(1)
			}
		}()
	}

	wg.Wait()

	// Only one should land in the stream
	if successCount.Load() != 1 {
		t.Errorf("expected exactly 1 success, got %d", successCount.Load())
	}
	length, _ := adapter.StreamLength(ctx)
	if length != 1 {
		t.Errorf("expected stream length 1, got %d", length)
	}
}
