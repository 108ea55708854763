package querycache

import (
	"context"
	"fmt"
	"testing"

	"github.com/bidking/go-bidking-client/cache"
)

func TestRegistry_PrunesAgedOutKeys(t *testing.T) {
	caches := testCaches(t)
	reg := NewRegistry()
	svc := caches.Default
	ctx := context.Background()

	liveKey := "market::overview"
	if _, err := cache.GetOrFetch(ctx, svc, liveKey, func(ctx context.Context) (string, error) {
		return "overview", nil
	}); err != nil {
		t.Fatalf("GetOrFetch() error = %v", err)
	}
	reg.track(liveKey, svc)

	// Keys tracked without a backing cache entry model entries that aged out
	// or were evicted. Crossing the threshold must reclaim them.
	for i := 0; i < pruneThreshold; i++ {
		reg.track(fmt.Sprintf("opportunities::search::q:%d", i), svc)
	}

	if size := reg.keys.Size(); size >= pruneThreshold {
		t.Errorf("registry size = %d, want pruned below %d", size, pruneThreshold)
	}
	if _, ok := reg.keys.Load(liveKey); !ok {
		t.Error("key with a live cache entry must survive pruning")
	}
}

func TestRegistry_InvalidateKeyUntracked(t *testing.T) {
	reg := NewRegistry()

	// Unknown keys are ignored.
	reg.invalidateKey(context.Background(), "alerts::detail::missing", nil)
	if size := reg.keys.Size(); size != 0 {
		t.Errorf("registry size = %d, want 0", size)
	}
}
