package querycache

import (
	"strings"
	"testing"

	"github.com/bidking/go-bidking-client/api/opportunities"
	"github.com/bidking/go-bidking-client/cache"
)

func TestKeys_PrefixExtension(t *testing.T) {
	ser := cache.NewDefaultKeySerializer()
	alertKeys := NewAlertKeys(ser)
	oppKeys := NewOpportunityKeys(ser)
	savedKeys := NewSavedKeys(ser)
	marketKeys := NewMarketKeys(ser)

	// A key for a narrower scope must be a prefix-extension of its parent,
	// so invalidating the parent reaches every child entry.
	tests := []struct {
		parent string
		child  string
	}{
		{alertKeys.Root(), alertKeys.List()},
		{alertKeys.Root(), alertKeys.Detail("ap-1")},
		{alertKeys.Root(), alertKeys.Test("ap-1")},
		{oppKeys.Root(), oppKeys.SearchScope()},
		{oppKeys.SearchScope(), oppKeys.Search(opportunities.SearchParams{Query: "cyber"})},
		{oppKeys.Root(), oppKeys.Detail("o1")},
		{oppKeys.Root(), oppKeys.Analysis("o1")},
		{savedKeys.Root(), savedKeys.ListScope()},
		{savedKeys.ListScope(), savedKeys.List(opportunities.SavedListParams{Page: 2})},
		{savedKeys.Root(), savedKeys.Stats()},
		{marketKeys.Root(), marketKeys.Overview()},
		{marketKeys.Root(), marketKeys.NAICSDetail("541511")},
		{marketKeys.RecompetesScope(), marketKeys.Recompetes(struct{ Agency string }{"DHS"})},
	}

	for _, tt := range tests {
		if !strings.HasPrefix(tt.child, tt.parent) {
			t.Errorf("key %q is not a prefix-extension of %q", tt.child, tt.parent)
		}
	}
}

func TestKeys_DistinctRoots(t *testing.T) {
	ser := cache.NewDefaultKeySerializer()

	roots := []string{
		NewAlertKeys(ser).Root(),
		NewOpportunityKeys(ser).Root(),
		NewSavedKeys(ser).Root(),
		NewMarketKeys(ser).Root(),
		NewCompanyKeys(ser).Root(),
		NewProposalKeys(ser).Root(),
	}

	// No root may be a prefix of another or pipeline invalidation would
	// bleed across resources.
	for i, a := range roots {
		for j, b := range roots {
			if i != j && strings.HasPrefix(a, b) {
				t.Errorf("root %q is a prefix of %q", b, a)
			}
		}
	}
}

func TestKeys_ParamsDetermineKey(t *testing.T) {
	ser := cache.NewDefaultKeySerializer()
	keys := NewOpportunityKeys(ser)

	p1 := opportunities.SearchParams{Query: "cloud", Page: 1}
	p2 := opportunities.SearchParams{Query: "cloud", Page: 1}
	p3 := opportunities.SearchParams{Query: "cloud", Page: 2}

	if keys.Search(p1) != keys.Search(p2) {
		t.Error("equal params should share one cache slot")
	}
	if keys.Search(p1) == keys.Search(p3) {
		t.Error("differing params must never collide")
	}
}

func TestKeys_SavedStatsUnderSavedRoot(t *testing.T) {
	ser := cache.NewDefaultKeySerializer()
	savedKeys := NewSavedKeys(ser)

	// Pipeline mutations invalidate the saved root; stats must live there.
	if !strings.HasPrefix(savedKeys.Stats(), savedKeys.Root()+cache.KeySeparator) {
		t.Errorf("stats key %q escapes the saved root", savedKeys.Stats())
	}
}
