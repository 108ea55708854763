package querycache

import (
	"context"
	"log/slog"

	"github.com/bidking/go-bidking-client/api/proposals"
	"github.com/bidking/go-bidking-client/cache"
)

// ProposalsAPI is the subset of the proposals client the decorator wraps.
// *proposals.Client satisfies it.
type ProposalsAPI interface {
	ListTemplates(ctx context.Context) ([]proposals.Template, error)
	GetTemplate(ctx context.Context, id string) (*proposals.Template, error)
	Generate(ctx context.Context, req proposals.GenerateRequest) (*proposals.GeneratedProposal, error)
	UpdateSection(ctx context.Context, id string, upd proposals.SectionUpdate) (*proposals.Section, error)
}

// CachedProposals decorates the proposals client with default-tier caching.
type CachedProposals struct {
	base     ProposalsAPI
	cache    cache.CacheService
	keys     ProposalKeys
	registry *Registry
	log      *slog.Logger
}

func NewCachedProposals(base ProposalsAPI, caches Caches, ser cache.KeySerializer, reg *Registry, log *slog.Logger) *CachedProposals {
	if reg == nil {
		reg = NewRegistry()
	}
	return &CachedProposals{
		base:     base,
		cache:    caches.Default,
		keys:     NewProposalKeys(ser),
		registry: reg,
		log:      log,
	}
}

// ListTemplates returns the available templates, cached.
func (c *CachedProposals) ListTemplates(ctx context.Context) ([]proposals.Template, error) {
	key := c.keys.Templates()
	c.registry.track(key, c.cache)
	return cache.GetOrFetch(ctx, c.cache, key, func(ctx context.Context) ([]proposals.Template, error) {
		return c.base.ListTemplates(ctx)
	})
}

// GetTemplate returns one template, cached. Returns ErrMissingID for an empty
// id without issuing a request.
func (c *CachedProposals) GetTemplate(ctx context.Context, id string) (*proposals.Template, error) {
	if id == "" {
		return nil, ErrMissingID
	}

	key := c.keys.Template(id)
	c.registry.track(key, c.cache)
	return cache.GetOrFetch(ctx, c.cache, key, func(ctx context.Context) (*proposals.Template, error) {
		return c.base.GetTemplate(ctx, id)
	})
}

// Generate drafts a proposal and invalidates the proposals scope on success.
func (c *CachedProposals) Generate(ctx context.Context, req proposals.GenerateRequest) (*proposals.GeneratedProposal, error) {
	generated, err := c.base.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return generated, nil
}

// UpdateSection edits one section and invalidates the proposals scope on
// success.
func (c *CachedProposals) UpdateSection(ctx context.Context, id string, upd proposals.SectionUpdate) (*proposals.Section, error) {
	if id == "" {
		return nil, ErrMissingID
	}

	updated, err := c.base.UpdateSection(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return updated, nil
}

func (c *CachedProposals) invalidate(ctx context.Context) {
	c.registry.invalidatePrefix(ctx, c.keys.Root(), c.log)
	for _, scope := range invalidateScopesFromContext(ctx) {
		c.registry.invalidatePrefix(ctx, scope, c.log)
	}
}
