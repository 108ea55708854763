package di

import (
	"testing"

	"github.com/bidking/go-bidking-client/api"
	"github.com/bidking/go-bidking-client/querycache"
)

func testConfig() api.Config {
	return api.Config{
		BaseURL: "https://api.bidking.test",
		Token:   "tok-123",
	}
}

func TestNew_WiresEverything(t *testing.T) {
	c, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if c.APIClient() == nil {
		t.Error("APIClient() is nil")
	}
	if c.KeySerializer() == nil {
		t.Error("KeySerializer() is nil")
	}
	if err := c.Caches().Validate(); err != nil {
		t.Errorf("Caches().Validate() error = %v", err)
	}
	if c.Registry() == nil {
		t.Error("Registry() is nil")
	}
	if c.Alerts() == nil {
		t.Error("Alerts() is nil")
	}
	if c.Opportunities() == nil {
		t.Error("Opportunities() is nil")
	}
	if c.Market() == nil {
		t.Error("Market() is nil")
	}
	if c.Company() == nil {
		t.Error("Company() is nil")
	}
	if c.Proposals() == nil {
		t.Error("Proposals() is nil")
	}
	if c.AlertStore() == nil {
		t.Error("AlertStore() is nil")
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(api.Config{Token: "tok-123"})
	if err == nil {
		t.Fatal("New() with missing base URL expected error")
	}
}

func TestNew_WithCaches(t *testing.T) {
	caches, err := querycache.NewCaches()
	if err != nil {
		t.Fatalf("NewCaches() error = %v", err)
	}

	c, err := New(testConfig(), WithCaches(caches))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.Caches() != caches {
		t.Error("Caches() should return the injected tiers")
	}
}

func TestNew_WithCachesMissingTier(t *testing.T) {
	caches, err := querycache.NewCaches()
	if err != nil {
		t.Fatalf("NewCaches() error = %v", err)
	}
	caches.Aggregate = nil

	if _, err := New(testConfig(), WithCaches(caches)); err == nil {
		t.Fatal("New() with a missing tier expected error")
	}
}
