package querycache

import (
	"context"
)

type invalidateScopesContextKey struct{}

// WithInvalidateScopes attaches additional key prefixes to the context.
// A mutation performed with this context invalidates the attached scopes on
// success, on top of its own defaults. Useful when a call site knows a write
// has side effects another resource's reads depend on; reaching another
// resource's keys requires the decorators to share a Registry, which
// container-built decorators do.
func WithInvalidateScopes(ctx context.Context, scopes ...string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(scopes) == 0 {
		return ctx
	}

	combined := dedupeStrings(append(invalidateScopesFromContext(ctx), scopes...))
	if len(combined) == 0 {
		return ctx
	}

	return context.WithValue(ctx, invalidateScopesContextKey{}, combined)
}

func invalidateScopesFromContext(ctx context.Context) []string {
	if ctx == nil {
		return nil
	}
	if scopes, ok := ctx.Value(invalidateScopesContextKey{}).([]string); ok {
		return append([]string(nil), scopes...)
	}
	return nil
}

func dedupeStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
