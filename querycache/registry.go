package querycache

import (
	"context"
	"log/slog"
	"strings"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/bidking/go-bidking-client/cache"
)

// pruneThreshold caps registry growth: once the tracked-key count reaches it,
// track reconciles the registry against the live cache contents.
const pruneThreshold = 4096

// Registry tracks every live cache key together with the tier service holding
// it, so a mutation can invalidate by prefix even when its entries are spread
// across staleness tiers and resources. All decorators built from one
// container share a single Registry; that is what lets a write in one
// resource invalidate scopes belonging to another.
type Registry struct {
	keys *xsync.MapOf[string, cache.CacheService]
}

func NewRegistry() *Registry {
	return &Registry{keys: xsync.NewMapOf[string, cache.CacheService]()}
}

// track registers a key against the service it was cached in.
func (r *Registry) track(key string, svc cache.CacheService) {
	r.keys.Store(key, svc)
	if r.keys.Size() >= pruneThreshold {
		r.prune()
	}
}

// prune drops tracked keys whose cache entries have aged out or been evicted,
// keeping the registry proportional to the live cache contents.
func (r *Registry) prune() {
	live := make(map[cache.CacheService]map[string]struct{})
	r.keys.Range(func(key string, svc cache.CacheService) bool {
		set, ok := live[svc]
		if !ok {
			set = make(map[string]struct{})
			for _, k := range svc.Keys() {
				set[k] = struct{}{}
			}
			live[svc] = set
		}
		if _, ok := set[key]; !ok {
			r.keys.Delete(key)
		}
		return true
	})
}

// invalidatePrefix removes every tracked key that starts with prefix from its
// owning tier. Deletion failures are logged and skipped; an entry that
// survives here still expires at its staleness window.
func (r *Registry) invalidatePrefix(ctx context.Context, prefix string, log *slog.Logger) {
	r.keys.Range(func(key string, svc cache.CacheService) bool {
		if !strings.HasPrefix(key, prefix) {
			return true
		}
		if err := svc.Delete(ctx, key); err != nil && log != nil {
			log.Warn("cache invalidation failed", "key", key, "error", err)
		}
		r.keys.Delete(key)
		return true
	})
}

// invalidateKey removes a single tracked key.
func (r *Registry) invalidateKey(ctx context.Context, key string, log *slog.Logger) {
	svc, ok := r.keys.Load(key)
	if !ok {
		return
	}
	if err := svc.Delete(ctx, key); err != nil && log != nil {
		log.Warn("cache invalidation failed", "key", key, "error", err)
	}
	r.keys.Delete(key)
}
