package querycache

import (
	"context"
	"log/slog"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/bidking/go-bidking-client/api/market"
	"github.com/bidking/go-bidking-client/cache"
)

// MarketAPI is the subset of the market client the decorator wraps.
// *market.Client satisfies it.
type MarketAPI interface {
	Overview(ctx context.Context) (*market.Overview, error)
	NAICS(ctx context.Context) ([]market.NAICSStatistics, error)
	NAICSDetail(ctx context.Context, code string) (*market.NAICSStatistics, error)
	LaborRates(ctx context.Context) ([]market.LaborRate, error)
	Recompetes(ctx context.Context, params market.RecompeteParams) (*market.RecompeteResult, error)
	SearchCompetitors(ctx context.Context, params market.CompetitorParams) ([]market.Competitor, error)
}

// CachedMarket decorates the read-only market client with aggregate-tier
// caching. There are no mutations, so nothing here ever invalidates; entries
// simply age out of their thirty minute window.
type CachedMarket struct {
	base     MarketAPI
	cache    cache.CacheService
	keys     MarketKeys
	registry *Registry
	previous *xsync.MapOf[string, *market.RecompeteResult]
	log      *slog.Logger
}

func NewCachedMarket(base MarketAPI, caches Caches, ser cache.KeySerializer, reg *Registry, log *slog.Logger) *CachedMarket {
	if reg == nil {
		reg = NewRegistry()
	}
	return &CachedMarket{
		base:     base,
		cache:    caches.Aggregate,
		keys:     NewMarketKeys(ser),
		registry: reg,
		previous: xsync.NewMapOf[string, *market.RecompeteResult](),
		log:      log,
	}
}

// Overview returns the market summary, cached.
func (c *CachedMarket) Overview(ctx context.Context) (*market.Overview, error) {
	key := c.keys.Overview()
	c.registry.track(key, c.cache)
	return cache.GetOrFetch(ctx, c.cache, key, func(ctx context.Context) (*market.Overview, error) {
		return c.base.Overview(ctx)
	})
}

// NAICS returns statistics for all tracked codes, cached.
func (c *CachedMarket) NAICS(ctx context.Context) ([]market.NAICSStatistics, error) {
	key := c.keys.NAICS()
	c.registry.track(key, c.cache)
	return cache.GetOrFetch(ctx, c.cache, key, func(ctx context.Context) ([]market.NAICSStatistics, error) {
		return c.base.NAICS(ctx)
	})
}

// NAICSDetail returns statistics for one code, cached. Returns ErrMissingID
// for an empty code without issuing a request.
func (c *CachedMarket) NAICSDetail(ctx context.Context, code string) (*market.NAICSStatistics, error) {
	if code == "" {
		return nil, ErrMissingID
	}

	key := c.keys.NAICSDetail(code)
	c.registry.track(key, c.cache)
	return cache.GetOrFetch(ctx, c.cache, key, func(ctx context.Context) (*market.NAICSStatistics, error) {
		return c.base.NAICSDetail(ctx, code)
	})
}

// LaborRates returns published labor rates, cached.
func (c *CachedMarket) LaborRates(ctx context.Context) ([]market.LaborRate, error) {
	key := c.keys.LaborRates()
	c.registry.track(key, c.cache)
	return cache.GetOrFetch(ctx, c.cache, key, func(ctx context.Context) ([]market.LaborRate, error) {
		return c.base.LaborRates(ctx)
	})
}

// Recompetes returns one page of expiring contracts, cached per parameter
// combination. The last successful page is retained for PreviousRecompetes.
func (c *CachedMarket) Recompetes(ctx context.Context, params market.RecompeteParams) (*market.RecompeteResult, error) {
	key := c.keys.Recompetes(params)
	c.registry.track(key, c.cache)

	result, err := cache.GetOrFetch(ctx, c.cache, key, func(ctx context.Context) (*market.RecompeteResult, error) {
		return c.base.Recompetes(ctx, params)
	})
	if err != nil {
		return nil, err
	}

	c.previous.Store(c.keys.RecompetesScope(), result)
	return result, nil
}

// PreviousRecompetes returns the last successful recompetes page, if any.
func (c *CachedMarket) PreviousRecompetes() (*market.RecompeteResult, bool) {
	return c.previous.Load(c.keys.RecompetesScope())
}

// SearchCompetitors returns matching companies, cached per parameter
// combination.
func (c *CachedMarket) SearchCompetitors(ctx context.Context, params market.CompetitorParams) ([]market.Competitor, error) {
	key := c.keys.Competitors(params)
	c.registry.track(key, c.cache)
	return cache.GetOrFetch(ctx, c.cache, key, func(ctx context.Context) ([]market.Competitor, error) {
		return c.base.SearchCompetitors(ctx, params)
	})
}
