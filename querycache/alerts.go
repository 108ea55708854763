package querycache

import (
	"context"
	"log/slog"

	"github.com/bidking/go-bidking-client/api/alerts"
	"github.com/bidking/go-bidking-client/cache"
)

// AlertsAPI is the subset of the alerts client the decorator wraps.
// *alerts.Client satisfies it.
type AlertsAPI interface {
	List(ctx context.Context) ([]alerts.AlertProfile, error)
	Get(ctx context.Context, id string) (*alerts.AlertProfile, error)
	Create(ctx context.Context, in alerts.AlertProfileInput) (*alerts.AlertProfile, error)
	Update(ctx context.Context, id string, upd alerts.AlertProfileUpdate) (*alerts.AlertProfile, error)
	Delete(ctx context.Context, id string) error
	Test(ctx context.Context, id string) (*alerts.TestResult, error)
}

// CachedAlerts decorates the alerts client with pipeline-tier caching.
// Any successful write invalidates the whole alerts scope; list, detail, and
// test entries are all prefix-extensions of the root.
type CachedAlerts struct {
	base     AlertsAPI
	cache    cache.CacheService
	keys     AlertKeys
	registry *Registry
	log      *slog.Logger
}

// NewCachedAlerts wires the decorator. Alert profiles live in the pipeline
// tier: users edit them often and expect edits to surface fast. Pass the
// same Registry to every decorator so cross-resource invalidation scopes can
// reach this resource's keys; a nil reg gets a private registry.
func NewCachedAlerts(base AlertsAPI, caches Caches, ser cache.KeySerializer, reg *Registry, log *slog.Logger) *CachedAlerts {
	if reg == nil {
		reg = NewRegistry()
	}
	return &CachedAlerts{
		base:     base,
		cache:    caches.Pipeline,
		keys:     NewAlertKeys(ser),
		registry: reg,
		log:      log,
	}
}

// List returns the user's alert profiles, cached.
func (c *CachedAlerts) List(ctx context.Context) ([]alerts.AlertProfile, error) {
	key := c.keys.List()
	c.registry.track(key, c.cache)
	return cache.GetOrFetch(ctx, c.cache, key, func(ctx context.Context) ([]alerts.AlertProfile, error) {
		return c.base.List(ctx)
	})
}

// Get returns one profile, cached. Returns ErrMissingID for an empty id
// without issuing a request.
func (c *CachedAlerts) Get(ctx context.Context, id string) (*alerts.AlertProfile, error) {
	if id == "" {
		return nil, ErrMissingID
	}

	key := c.keys.Detail(id)
	c.registry.track(key, c.cache)
	return cache.GetOrFetch(ctx, c.cache, key, func(ctx context.Context) (*alerts.AlertProfile, error) {
		return c.base.Get(ctx, id)
	})
}

// Create creates a profile and, on success, invalidates every cached alerts
// read so the next list reflects the new profile.
func (c *CachedAlerts) Create(ctx context.Context, in alerts.AlertProfileInput) (*alerts.AlertProfile, error) {
	created, err := c.base.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return created, nil
}

// Update applies a partial update and invalidates the alerts scope on success.
func (c *CachedAlerts) Update(ctx context.Context, id string, upd alerts.AlertProfileUpdate) (*alerts.AlertProfile, error) {
	if id == "" {
		return nil, ErrMissingID
	}

	updated, err := c.base.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return updated, nil
}

// Delete removes a profile and invalidates the alerts scope on success.
func (c *CachedAlerts) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingID
	}

	if err := c.base.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Test runs the profile against recent opportunities. The run updates the
// profile's derived match_count server-side, so a successful test invalidates
// the alerts scope like any other write.
func (c *CachedAlerts) Test(ctx context.Context, id string) (*alerts.TestResult, error) {
	if id == "" {
		return nil, ErrMissingID
	}

	result, err := c.base.Test(ctx, id)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return result, nil
}

func (c *CachedAlerts) invalidate(ctx context.Context) {
	c.registry.invalidatePrefix(ctx, c.keys.Root(), c.log)
	for _, scope := range invalidateScopesFromContext(ctx) {
		c.registry.invalidatePrefix(ctx, scope, c.log)
	}
}
