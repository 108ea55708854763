package querycache

import (
	"context"
	"io"
	"log/slog"

	"github.com/bidking/go-bidking-client/api/company"
	"github.com/bidking/go-bidking-client/cache"
)

// CompanyAPI is the subset of the company client the decorator wraps.
// *company.Client satisfies it.
type CompanyAPI interface {
	GetProfile(ctx context.Context) (*company.Profile, error)
	UpdateProfile(ctx context.Context, upd company.ProfileUpdate) (*company.Profile, error)
	AddNAICS(ctx context.Context, code string) (*company.Profile, error)
	RemoveNAICS(ctx context.Context, code string) error
	ListCertifications(ctx context.Context) ([]company.Certification, error)
	AddCertification(ctx context.Context, in company.CertificationInput) (*company.Certification, error)
	DeleteCertification(ctx context.Context, id string) error
	ListPastPerformance(ctx context.Context) ([]company.PastPerformance, error)
	AddPastPerformance(ctx context.Context, in company.PastPerformanceInput) (*company.PastPerformance, error)
	OnboardingStatus(ctx context.Context) (*company.OnboardingStatus, error)
	CompleteOnboardingStep(ctx context.Context, step string) (*company.OnboardingStatus, error)
	ScoringPreferences(ctx context.Context) (*company.ScoringPreferences, error)
	UpdateScoringPreferences(ctx context.Context, prefs company.ScoringPreferences) (*company.ScoringPreferences, error)
	ListCapabilityStatements(ctx context.Context) ([]company.CapabilityStatement, error)
	UploadCapabilityStatement(ctx context.Context, filename string, r io.Reader) (*company.CapabilityStatement, error)
	DeleteCapabilityStatement(ctx context.Context, id string) error
}

// CachedCompany decorates the company client with default-tier caching.
// Profile edits feed the scoring engine, so every write invalidates the whole
// company scope rather than guessing which derived reads it touched.
type CachedCompany struct {
	base     CompanyAPI
	cache    cache.CacheService
	keys     CompanyKeys
	registry *Registry
	log      *slog.Logger
}

func NewCachedCompany(base CompanyAPI, caches Caches, ser cache.KeySerializer, reg *Registry, log *slog.Logger) *CachedCompany {
	if reg == nil {
		reg = NewRegistry()
	}
	return &CachedCompany{
		base:     base,
		cache:    caches.Default,
		keys:     NewCompanyKeys(ser),
		registry: reg,
		log:      log,
	}
}

// GetProfile returns the company profile, cached.
func (c *CachedCompany) GetProfile(ctx context.Context) (*company.Profile, error) {
	key := c.keys.Profile()
	c.registry.track(key, c.cache)
	return cache.GetOrFetch(ctx, c.cache, key, func(ctx context.Context) (*company.Profile, error) {
		return c.base.GetProfile(ctx)
	})
}

// ListCertifications returns the company certifications, cached.
func (c *CachedCompany) ListCertifications(ctx context.Context) ([]company.Certification, error) {
	key := c.keys.Certifications()
	c.registry.track(key, c.cache)
	return cache.GetOrFetch(ctx, c.cache, key, func(ctx context.Context) ([]company.Certification, error) {
		return c.base.ListCertifications(ctx)
	})
}

// ListPastPerformance returns past-performance records, cached.
func (c *CachedCompany) ListPastPerformance(ctx context.Context) ([]company.PastPerformance, error) {
	key := c.keys.PastPerformance()
	c.registry.track(key, c.cache)
	return cache.GetOrFetch(ctx, c.cache, key, func(ctx context.Context) ([]company.PastPerformance, error) {
		return c.base.ListPastPerformance(ctx)
	})
}

// OnboardingStatus returns the onboarding progress, cached.
func (c *CachedCompany) OnboardingStatus(ctx context.Context) (*company.OnboardingStatus, error) {
	key := c.keys.Onboarding()
	c.registry.track(key, c.cache)
	return cache.GetOrFetch(ctx, c.cache, key, func(ctx context.Context) (*company.OnboardingStatus, error) {
		return c.base.OnboardingStatus(ctx)
	})
}

// ScoringPreferences returns the scoring preferences, cached.
func (c *CachedCompany) ScoringPreferences(ctx context.Context) (*company.ScoringPreferences, error) {
	key := c.keys.Scoring()
	c.registry.track(key, c.cache)
	return cache.GetOrFetch(ctx, c.cache, key, func(ctx context.Context) (*company.ScoringPreferences, error) {
		return c.base.ScoringPreferences(ctx)
	})
}

// ListCapabilityStatements returns the uploaded documents, cached.
func (c *CachedCompany) ListCapabilityStatements(ctx context.Context) ([]company.CapabilityStatement, error) {
	key := c.keys.CapabilityStatements()
	c.registry.track(key, c.cache)
	return cache.GetOrFetch(ctx, c.cache, key, func(ctx context.Context) ([]company.CapabilityStatement, error) {
		return c.base.ListCapabilityStatements(ctx)
	})
}

// UpdateProfile applies a partial update and invalidates the company scope on
// success.
func (c *CachedCompany) UpdateProfile(ctx context.Context, upd company.ProfileUpdate) (*company.Profile, error) {
	updated, err := c.base.UpdateProfile(ctx, upd)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return updated, nil
}

// AddNAICS registers a NAICS code and invalidates the company scope.
func (c *CachedCompany) AddNAICS(ctx context.Context, code string) (*company.Profile, error) {
	if code == "" {
		return nil, ErrMissingID
	}

	updated, err := c.base.AddNAICS(ctx, code)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return updated, nil
}

// RemoveNAICS removes a NAICS code and invalidates the company scope.
func (c *CachedCompany) RemoveNAICS(ctx context.Context, code string) error {
	if code == "" {
		return ErrMissingID
	}

	if err := c.base.RemoveNAICS(ctx, code); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// AddCertification creates a certification and invalidates the company scope.
func (c *CachedCompany) AddCertification(ctx context.Context, in company.CertificationInput) (*company.Certification, error) {
	created, err := c.base.AddCertification(ctx, in)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return created, nil
}

// DeleteCertification removes a certification and invalidates the company
// scope.
func (c *CachedCompany) DeleteCertification(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingID
	}

	if err := c.base.DeleteCertification(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// AddPastPerformance creates a record and invalidates the company scope.
func (c *CachedCompany) AddPastPerformance(ctx context.Context, in company.PastPerformanceInput) (*company.PastPerformance, error) {
	created, err := c.base.AddPastPerformance(ctx, in)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return created, nil
}

// CompleteOnboardingStep marks a step done and invalidates the company scope.
func (c *CachedCompany) CompleteOnboardingStep(ctx context.Context, step string) (*company.OnboardingStatus, error) {
	status, err := c.base.CompleteOnboardingStep(ctx, step)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return status, nil
}

// UpdateScoringPreferences replaces the preferences and invalidates the
// company scope.
func (c *CachedCompany) UpdateScoringPreferences(ctx context.Context, prefs company.ScoringPreferences) (*company.ScoringPreferences, error) {
	updated, err := c.base.UpdateScoringPreferences(ctx, prefs)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return updated, nil
}

// UploadCapabilityStatement uploads a document and invalidates the company
// scope.
func (c *CachedCompany) UploadCapabilityStatement(ctx context.Context, filename string, r io.Reader) (*company.CapabilityStatement, error) {
	uploaded, err := c.base.UploadCapabilityStatement(ctx, filename, r)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return uploaded, nil
}

// DeleteCapabilityStatement removes a document and invalidates the company
// scope.
func (c *CachedCompany) DeleteCapabilityStatement(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingID
	}

	if err := c.base.DeleteCapabilityStatement(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *CachedCompany) invalidate(ctx context.Context) {
	c.registry.invalidatePrefix(ctx, c.keys.Root(), c.log)
	for _, scope := range invalidateScopesFromContext(ctx) {
		c.registry.invalidatePrefix(ctx, scope, c.log)
	}
}
