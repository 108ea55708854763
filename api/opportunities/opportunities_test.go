package opportunities

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bidking/go-bidking-client/api"
)

func testClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	apiClient, err := api.NewClient(api.Config{
		BaseURL:  srv.URL,
		Token:    "test-token",
		RetryMax: -1,
	})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return NewClient(apiClient), srv
}

func TestSearchParams_Values(t *testing.T) {
	p := SearchParams{
		Query:         "cybersecurity",
		NAICSCodes:    []string{"541511", "541512"},
		SetAsideTypes: []string{"8(a)"},
		MinScore:      0.75,
		SortBy:        "due_date",
		Page:          2,
		PageSize:      25,
	}

	v := p.Values()
	if got := v.Get("q"); got != "cybersecurity" {
		t.Errorf("q = %q", got)
	}
	if got := v.Get("naics"); got != "541511,541512" {
		t.Errorf("naics = %q, want comma-joined", got)
	}
	if got := v.Get("min_score"); got != "0.75" {
		t.Errorf("min_score = %q", got)
	}
	if got := v.Get("page"); got != "2" {
		t.Errorf("page = %q", got)
	}
	if v.Has("posted_after") || v.Has("due_before") || v.Has("state") {
		t.Error("zero-valued params must be omitted")
	}
}

func TestSearchParams_ValuesEmpty(t *testing.T) {
	if got := (SearchParams{}).Values().Encode(); got != "" {
		t.Errorf("empty params encoded to %q, want empty", got)
	}
}

func TestSearch(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/opportunities" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "cloud" {
			t.Errorf("q = %q", got)
		}
		json.NewEncoder(w).Encode(SearchResult{
			Opportunities: []Opportunity{{ID: "o1", Title: "Cloud Migration"}},
			Total:         1,
			Page:          1,
		})
	})

	result, err := client.Search(context.Background(), SearchParams{Query: "cloud"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.Total != 1 || len(result.Opportunities) != 1 {
		t.Errorf("Search() = %+v", result)
	}
	if result.Opportunities[0].ID != "o1" {
		t.Errorf("opportunity id = %q", result.Opportunities[0].ID)
	}
}

func TestSave(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/opportunities/saved" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		var in SaveInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if in.OpportunityID != "o1" || in.Status != StatusWatching {
			t.Errorf("body = %+v", in)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(SavedOpportunity{ID: "sv-1", OpportunityID: in.OpportunityID, Status: in.Status})
	})

	saved, err := client.Save(context.Background(), SaveInput{OpportunityID: "o1", Status: StatusWatching})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if saved.ID != "sv-1" || saved.Status != StatusWatching {
		t.Errorf("Save() = %+v", saved)
	}
}

func TestUnsave(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/opportunities/saved/sv-1" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	if err := client.Unsave(context.Background(), "sv-1"); err != nil {
		t.Fatalf("Unsave() error = %v", err)
	}
}

func TestPipelineStats(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/opportunities/saved/stats" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(PipelineStats{
			Counts:  map[string]int{"watching": 3, "won": 1},
			WinRate: 0.5,
		})
	})

	stats, err := client.PipelineStats(context.Background())
	if err != nil {
		t.Fatalf("PipelineStats() error = %v", err)
	}
	if stats.Counts["watching"] != 3 || stats.WinRate != 0.5 {
		t.Errorf("PipelineStats() = %+v", stats)
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusWatching, StatusResearching, StatusPreparing, StatusSubmitted, StatusWon, StatusLost, StatusArchived} {
		if !s.Valid() {
			t.Errorf("Status(%q).Valid() = false", s)
		}
	}
	if Status("bidding").Valid() {
		t.Error(`Status("bidding").Valid() = true`)
	}
}
