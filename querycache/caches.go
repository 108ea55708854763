package querycache

import (
	"errors"

	"github.com/bidking/go-bidking-client/cache"
)

// ErrMissingID is returned by id-keyed reads called with an empty identifier.
// No request is issued in that case; callers gate on it the way a UI gates a
// disabled query.
var ErrMissingID = errors.New("querycache: missing identifier")

// Caches bundles one CacheService per staleness tier. Every decorator in this
// package is wired from a Caches value, keeping the cache an explicit handle
// rather than package-level state.
type Caches struct {
	// Pipeline holds frequently user-edited data: saved opportunities,
	// pipeline stats, alert profiles. Two minute window.
	Pipeline cache.CacheService

	// Default holds opportunity search/detail, company, and proposal reads.
	// Five minute window.
	Default cache.CacheService

	// Aggregate holds rarely-changing market reporting data. Thirty minute
	// window.
	Aggregate cache.CacheService
}

// NewCaches builds the three tiers from the package defaults.
func NewCaches() (Caches, error) {
	pipeline, err := cache.NewCacheService(cache.PipelineConfig())
	if err != nil {
		return Caches{}, err
	}
	def, err := cache.NewCacheService(cache.DefaultConfig())
	if err != nil {
		return Caches{}, err
	}
	aggregate, err := cache.NewCacheService(cache.AggregateConfig())
	if err != nil {
		return Caches{}, err
	}

	return Caches{Pipeline: pipeline, Default: def, Aggregate: aggregate}, nil
}

// Validate reports whether every tier is populated.
func (c Caches) Validate() error {
	if c.Pipeline == nil || c.Default == nil || c.Aggregate == nil {
		return errors.New("querycache: all cache tiers must be set")
	}
	return nil
}
