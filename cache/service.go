package cache

import (
	"context"
	"fmt"
)

// KeySerializer builds a cache key segment from an operation name + arbitrary args.
// It is responsible for producing stable keys across calls.
type KeySerializer interface {
	SerializeKey(op string, args ...any) string
}

// FetchFn is the function signature CacheService expects when fetching from the backend.
type FetchFn[T any] func(ctx context.Context) (T, error)

// CacheService exposes the read-through caching operations the query layer needs.
// It is exported so that callers can plug in alternate cache backends.
type CacheService interface {
	GetOrFetch(ctx context.Context, key string, fetchFn any) (any, error)
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
	InvalidateKeys(ctx context.Context, keys []string) error
	// Keys lists the currently cached keys, so bookkeeping layered on top
	// can reconcile against entries that aged out or were evicted.
	Keys() []string
}

// GetOrFetch is a type-safe wrapper function that provides generic support for CacheService.
func GetOrFetch[T any](ctx context.Context, service CacheService, key string, fetchFn FetchFn[T]) (T, error) {
	var zero T

	result, err := service.GetOrFetch(ctx, key, fetchFn)
	if err != nil {
		return zero, err
	}
	if result == nil {
		return zero, nil
	}

	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("cache: value for key %q has type %T", key, result)
	}
	return typed, nil
}
