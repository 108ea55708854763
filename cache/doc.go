// Package cache provides the caching contracts shared by the BidKing query
// layer: a read-through CacheService, a deterministic KeySerializer, and the
// staleness-tier configurations the client uses for different kinds of reads.
//
// # Overview
//
// The package exports two main interfaces and their default implementations:
//
//   - CacheService: read-through caching with delete, prefix-delete, and
//     bulk invalidation
//   - KeySerializer: builds stable key segments from operation names and
//     parameter values
//
// # Basic Usage
//
//	serializer := cache.NewDefaultKeySerializer()
//	segment := serializer.SerializeKey("list", params)
//
//	svc, err := cache.NewCacheService(cache.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	result, err := cache.GetOrFetch(ctx, svc, key, func(ctx context.Context) ([]Opportunity, error) {
//		return client.Search(ctx, params)
//	})
//
// # Key Serialization Strategy
//
// The default serializer uses reflection:
//
//   - Basic types: direct string representation
//   - Slices/arrays: recursive serialization of elements
//   - Maps: sorted key-value pairs for deterministic output
//   - Structs: exported fields as snake_case name:value pairs
//   - Anything else: JSON fallback
//
// Two deeply equal parameter values always serialize to the same segment, so
// identical queries share one cache slot. Oversized segments collapse to an
// xxhash digest to keep key length bounded.
//
// # Staleness Tiers
//
// PipelineConfig (2m) covers frequently user-edited data, DefaultConfig (5m)
// covers search and detail reads, AggregateConfig (30m) covers market
// reporting aggregates. The querycache package wires one CacheService per
// tier; see that package for the decorators and invalidation rules.
package cache
