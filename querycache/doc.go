// Package querycache provides cached decorators over the BidKing resource
// clients. It is the client-side equivalent of a query/mutation hook layer:
// reads go through a staleness-windowed, stampede-protected cache; writes
// pass through to the API and, on success only, invalidate every cached read
// whose scope depends on the mutated entity.
//
// # Key structure
//
// Every cached read is stored under a hierarchical key built by the factories
// in keys.go. A key for a narrower scope is always a prefix-extension of its
// parent's key:
//
//	alerts
//	alerts::list
//	alerts::detail::<id>
//	opportunities::search::<params>
//	saved::stats
//
// This is what makes invalidation-by-prefix sound: deleting everything under
// "alerts" reaches every list, detail, and test entry for the resource.
// Parameterized segments come from cache.KeySerializer, so two deeply equal
// parameter values always share one cache slot and differing values never
// collide.
//
// # Staleness tiers
//
// Decorators are wired with one CacheService per tier (see Caches):
//
//   - Pipeline (2m): saved opportunities, pipeline stats, alert profiles
//   - Default (5m): opportunity search/detail, company, proposals
//   - Aggregate (30m): market overview, NAICS statistics, labor rates,
//     recompetes
//
// Concurrent reads for an identical key collapse into a single in-flight
// request; late arrivals receive the first request's result.
//
// # Invalidation rules
//
//   - alert create/update/delete/test: the alerts root
//   - save/unsave/pipeline update: the saved root (stats included) plus the
//     affected opportunity's detail key
//   - company writes: the company root
//   - proposal generate/section edit: the proposals root
//
// On a failed write the cache is left untouched and the error is returned to
// the caller. Additional scopes can be attached per call site via
// WithInvalidateScopes.
//
// # Empty identifiers
//
// Id-keyed reads return ErrMissingID without issuing a request when the
// identifier is empty, mirroring a disabled query at the call site.
package querycache
