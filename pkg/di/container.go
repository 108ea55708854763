// Package di wires the BidKing client: transport, cache tiers, key
// serializer, resource clients, cached decorators, and the alert store.
// Everything hangs off an explicitly constructed Container; there is no
// package-level cache state, so tests can build isolated containers.
package di

import (
	"log/slog"

	"github.com/bidking/go-bidking-client/alertstore"
	"github.com/bidking/go-bidking-client/api"
	"github.com/bidking/go-bidking-client/api/alerts"
	"github.com/bidking/go-bidking-client/api/company"
	"github.com/bidking/go-bidking-client/api/market"
	"github.com/bidking/go-bidking-client/api/opportunities"
	"github.com/bidking/go-bidking-client/api/proposals"
	"github.com/bidking/go-bidking-client/cache"
	"github.com/bidking/go-bidking-client/querycache"
)

// Container holds singleton instances of every layer of the client.
type Container struct {
	apiClient     *api.Client
	keySerializer cache.KeySerializer
	caches        querycache.Caches
	registry      *querycache.Registry
	log           *slog.Logger

	alerts        *querycache.CachedAlerts
	opportunities *querycache.CachedOpportunities
	market        *querycache.CachedMarket
	company       *querycache.CachedCompany
	proposals     *querycache.CachedProposals
	alertStore    *alertstore.Store
}

// Option customizes container construction.
type Option func(*options)

type options struct {
	log    *slog.Logger
	caches *querycache.Caches
}

// WithLogger sets the logger used for cache invalidation and store warnings.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithCaches replaces the default staleness tiers, e.g. with test doubles.
func WithCaches(caches querycache.Caches) Option {
	return func(o *options) { o.caches = &caches }
}

// New builds a fully wired container from the transport configuration.
func New(cfg api.Config, opts ...Option) (*Container, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = slog.Default()
	}

	apiClient, err := api.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	var caches querycache.Caches
	if o.caches != nil {
		caches = *o.caches
		if err := caches.Validate(); err != nil {
			return nil, err
		}
	} else {
		caches, err = querycache.NewCaches()
		if err != nil {
			return nil, err
		}
	}

	ser := cache.NewDefaultKeySerializer()

	// One registry across all decorators, so a write in one resource can
	// invalidate scopes belonging to another.
	reg := querycache.NewRegistry()

	alertsClient := alerts.NewClient(apiClient)

	c := &Container{
		apiClient:     apiClient,
		keySerializer: ser,
		caches:        caches,
		registry:      reg,
		log:           o.log,

		alerts:        querycache.NewCachedAlerts(alertsClient, caches, ser, reg, o.log),
		opportunities: querycache.NewCachedOpportunities(opportunities.NewClient(apiClient), caches, ser, reg, o.log),
		market:        querycache.NewCachedMarket(market.NewClient(apiClient), caches, ser, reg, o.log),
		company:       querycache.NewCachedCompany(company.NewClient(apiClient), caches, ser, reg, o.log),
		proposals:     querycache.NewCachedProposals(proposals.NewClient(apiClient), caches, ser, reg, o.log),
		alertStore:    alertstore.New(alertsClient, o.log),
	}

	return c, nil
}

// APIClient returns the shared HTTP client, e.g. to rotate the bearer token.
func (c *Container) APIClient() *api.Client { return c.apiClient }

// KeySerializer returns the singleton key serializer instance.
func (c *Container) KeySerializer() cache.KeySerializer { return c.keySerializer }

// Caches returns the staleness tiers.
func (c *Container) Caches() querycache.Caches { return c.caches }

// Registry returns the key registry shared by every cached decorator.
func (c *Container) Registry() *querycache.Registry { return c.registry }

// Alerts returns the cached alerts decorator.
func (c *Container) Alerts() *querycache.CachedAlerts { return c.alerts }

// Opportunities returns the cached opportunities decorator.
func (c *Container) Opportunities() *querycache.CachedOpportunities { return c.opportunities }

// Market returns the cached market decorator.
func (c *Container) Market() *querycache.CachedMarket { return c.market }

// Company returns the cached company decorator.
func (c *Container) Company() *querycache.CachedCompany { return c.company }

// Proposals returns the cached proposals decorator.
func (c *Container) Proposals() *querycache.CachedProposals { return c.proposals }

// AlertStore returns the standalone in-memory alert store. Note it is not
// synchronized with Alerts(); see the alertstore package doc.
func (c *Container) AlertStore() *alertstore.Store { return c.alertStore }
