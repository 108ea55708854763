package querycache

import (
	"context"
	"log/slog"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/bidking/go-bidking-client/api/opportunities"
	"github.com/bidking/go-bidking-client/cache"
)

// OpportunitiesAPI is the subset of the opportunities client the decorator
// wraps. *opportunities.Client satisfies it.
type OpportunitiesAPI interface {
	Search(ctx context.Context, params opportunities.SearchParams) (*opportunities.SearchResult, error)
	Get(ctx context.Context, id string) (*opportunities.Opportunity, error)
	Analysis(ctx context.Context, id string) (*opportunities.Analysis, error)
	ListSaved(ctx context.Context, params opportunities.SavedListParams) ([]opportunities.SavedOpportunity, error)
	Save(ctx context.Context, in opportunities.SaveInput) (*opportunities.SavedOpportunity, error)
	UpdateSaved(ctx context.Context, id string, upd opportunities.SavedUpdate) (*opportunities.SavedOpportunity, error)
	Unsave(ctx context.Context, id string) error
	PipelineStats(ctx context.Context) (*opportunities.PipelineStats, error)
}

// CachedOpportunities decorates the opportunities client. Search and detail
// reads sit in the default tier; the saved pipeline sits in the pipeline tier
// under its own key root so pipeline writes never disturb search results.
type CachedOpportunities struct {
	base      OpportunitiesAPI
	search    cache.CacheService
	pipeline  cache.CacheService
	keys      OpportunityKeys
	savedKeys SavedKeys
	registry  *Registry
	previous  *xsync.MapOf[string, *opportunities.SearchResult]
	log       *slog.Logger
}

func NewCachedOpportunities(base OpportunitiesAPI, caches Caches, ser cache.KeySerializer, reg *Registry, log *slog.Logger) *CachedOpportunities {
	if reg == nil {
		reg = NewRegistry()
	}
	return &CachedOpportunities{
		base:      base,
		search:    caches.Default,
		pipeline:  caches.Pipeline,
		keys:      NewOpportunityKeys(ser),
		savedKeys: NewSavedKeys(ser),
		registry:  reg,
		previous:  xsync.NewMapOf[string, *opportunities.SearchResult](),
		log:       log,
	}
}

// Search returns one page of matching opportunities, cached per parameter
// combination. The last successful page is retained for PreviousSearch.
func (c *CachedOpportunities) Search(ctx context.Context, params opportunities.SearchParams) (*opportunities.SearchResult, error) {
	key := c.keys.Search(params)
	c.registry.track(key, c.search)

	result, err := cache.GetOrFetch(ctx, c.search, key, func(ctx context.Context) (*opportunities.SearchResult, error) {
		return c.base.Search(ctx, params)
	})
	if err != nil {
		return nil, err
	}

	c.previous.Store(c.keys.SearchScope(), result)
	return result, nil
}

// PreviousSearch returns the last successful search page, if any. Callers
// paging forward can keep it visible while the next page's fetch is in
// flight, avoiding a blank intermediate state.
func (c *CachedOpportunities) PreviousSearch() (*opportunities.SearchResult, bool) {
	return c.previous.Load(c.keys.SearchScope())
}

// Get returns one opportunity, cached.
func (c *CachedOpportunities) Get(ctx context.Context, id string) (*opportunities.Opportunity, error) {
	if id == "" {
		return nil, ErrMissingID
	}

	key := c.keys.Detail(id)
	c.registry.track(key, c.search)
	return cache.GetOrFetch(ctx, c.search, key, func(ctx context.Context) (*opportunities.Opportunity, error) {
		return c.base.Get(ctx, id)
	})
}

// Analysis returns the fit analysis for one opportunity, cached.
func (c *CachedOpportunities) Analysis(ctx context.Context, id string) (*opportunities.Analysis, error) {
	if id == "" {
		return nil, ErrMissingID
	}

	key := c.keys.Analysis(id)
	c.registry.track(key, c.search)
	return cache.GetOrFetch(ctx, c.search, key, func(ctx context.Context) (*opportunities.Analysis, error) {
		return c.base.Analysis(ctx, id)
	})
}

// ListSaved returns the saved pipeline, cached in the short pipeline tier.
func (c *CachedOpportunities) ListSaved(ctx context.Context, params opportunities.SavedListParams) ([]opportunities.SavedOpportunity, error) {
	key := c.savedKeys.List(params)
	c.registry.track(key, c.pipeline)
	return cache.GetOrFetch(ctx, c.pipeline, key, func(ctx context.Context) ([]opportunities.SavedOpportunity, error) {
		return c.base.ListSaved(ctx, params)
	})
}

// PipelineStats returns the saved-pipeline aggregates, cached in the pipeline
// tier under the saved root so pipeline writes invalidate them.
func (c *CachedOpportunities) PipelineStats(ctx context.Context) (*opportunities.PipelineStats, error) {
	key := c.savedKeys.Stats()
	c.registry.track(key, c.pipeline)
	return cache.GetOrFetch(ctx, c.pipeline, key, func(ctx context.Context) (*opportunities.PipelineStats, error) {
		return c.base.PipelineStats(ctx)
	})
}

// Save creates a pipeline entry. On success the saved scope (lists and stats)
// and the opportunity's detail entry are invalidated.
func (c *CachedOpportunities) Save(ctx context.Context, in opportunities.SaveInput) (*opportunities.SavedOpportunity, error) {
	saved, err := c.base.Save(ctx, in)
	if err != nil {
		return nil, err
	}
	c.invalidateSaved(ctx, in.OpportunityID)
	return saved, nil
}

// UpdateSaved applies a partial pipeline update with the same invalidation
// rules as Save.
func (c *CachedOpportunities) UpdateSaved(ctx context.Context, id string, upd opportunities.SavedUpdate) (*opportunities.SavedOpportunity, error) {
	if id == "" {
		return nil, ErrMissingID
	}

	updated, err := c.base.UpdateSaved(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	c.invalidateSaved(ctx, updated.OpportunityID)
	return updated, nil
}

// Unsave removes a pipeline entry. The response carries no opportunity id, so
// only the saved scope is invalidated; a stale detail entry is corrected at
// its staleness window.
func (c *CachedOpportunities) Unsave(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingID
	}

	if err := c.base.Unsave(ctx, id); err != nil {
		return err
	}
	c.invalidateSaved(ctx, "")
	return nil
}

func (c *CachedOpportunities) invalidateSaved(ctx context.Context, opportunityID string) {
	c.registry.invalidatePrefix(ctx, c.savedKeys.Root(), c.log)
	if opportunityID != "" {
		c.registry.invalidateKey(ctx, c.keys.Detail(opportunityID), c.log)
	}
	for _, scope := range invalidateScopesFromContext(ctx) {
		c.registry.invalidatePrefix(ctx, scope, c.log)
	}
}
