package querycache

import (
	"strings"

	"github.com/bidking/go-bidking-client/cache"
)

// Root segments, one per backend resource. Saved opportunities get their own
// root because their freshness and invalidation lifecycle is independent of
// opportunity search results.
const (
	alertsRoot        = "alerts"
	opportunitiesRoot = "opportunities"
	savedRoot         = "saved"
	marketRoot        = "market"
	companyRoot       = "company"
	proposalsRoot     = "proposals"
)

func joinKey(parts ...string) string {
	return strings.Join(parts, cache.KeySeparator)
}

// AlertKeys builds cache keys for the alerts resource.
type AlertKeys struct {
	ser cache.KeySerializer
}

func NewAlertKeys(ser cache.KeySerializer) AlertKeys {
	return AlertKeys{ser: ser}
}

func (k AlertKeys) Root() string { return alertsRoot }

func (k AlertKeys) List() string { return joinKey(alertsRoot, "list") }

func (k AlertKeys) Detail(id string) string { return joinKey(alertsRoot, "detail", id) }

func (k AlertKeys) Test(id string) string { return joinKey(alertsRoot, "test", id) }

// OpportunityKeys builds cache keys for opportunity search and detail reads.
type OpportunityKeys struct {
	ser cache.KeySerializer
}

func NewOpportunityKeys(ser cache.KeySerializer) OpportunityKeys {
	return OpportunityKeys{ser: ser}
}

func (k OpportunityKeys) Root() string { return opportunitiesRoot }

// SearchScope is the parent of every parameterized search key.
func (k OpportunityKeys) SearchScope() string { return joinKey(opportunitiesRoot, "search") }

func (k OpportunityKeys) Search(params any) string {
	return joinKey(opportunitiesRoot, k.ser.SerializeKey("search", params))
}

func (k OpportunityKeys) Detail(id string) string { return joinKey(opportunitiesRoot, "detail", id) }

func (k OpportunityKeys) Analysis(id string) string {
	return joinKey(opportunitiesRoot, "analysis", id)
}

// SavedKeys builds cache keys for the saved pipeline. Stats sit under the
// saved root on purpose: any pipeline mutation must reach them.
type SavedKeys struct {
	ser cache.KeySerializer
}

func NewSavedKeys(ser cache.KeySerializer) SavedKeys {
	return SavedKeys{ser: ser}
}

func (k SavedKeys) Root() string { return savedRoot }

func (k SavedKeys) ListScope() string { return joinKey(savedRoot, "list") }

func (k SavedKeys) List(params any) string {
	return joinKey(savedRoot, k.ser.SerializeKey("list", params))
}

func (k SavedKeys) Stats() string { return joinKey(savedRoot, "stats") }

// MarketKeys builds cache keys for the read-only market resource.
type MarketKeys struct {
	ser cache.KeySerializer
}

func NewMarketKeys(ser cache.KeySerializer) MarketKeys {
	return MarketKeys{ser: ser}
}

func (k MarketKeys) Root() string { return marketRoot }

func (k MarketKeys) Overview() string { return joinKey(marketRoot, "overview") }

func (k MarketKeys) NAICS() string { return joinKey(marketRoot, "naics") }

func (k MarketKeys) NAICSDetail(code string) string { return joinKey(marketRoot, "naics", code) }

func (k MarketKeys) LaborRates() string { return joinKey(marketRoot, "labor_rates") }

func (k MarketKeys) RecompetesScope() string { return joinKey(marketRoot, "recompetes") }

func (k MarketKeys) Recompetes(params any) string {
	return joinKey(marketRoot, k.ser.SerializeKey("recompetes", params))
}

func (k MarketKeys) CompetitorsScope() string { return joinKey(marketRoot, "competitors") }

func (k MarketKeys) Competitors(params any) string {
	return joinKey(marketRoot, k.ser.SerializeKey("competitors", params))
}

// CompanyKeys builds cache keys for the company resource.
type CompanyKeys struct {
	ser cache.KeySerializer
}

func NewCompanyKeys(ser cache.KeySerializer) CompanyKeys {
	return CompanyKeys{ser: ser}
}

func (k CompanyKeys) Root() string { return companyRoot }

func (k CompanyKeys) Profile() string { return joinKey(companyRoot, "profile") }

func (k CompanyKeys) Certifications() string { return joinKey(companyRoot, "certifications") }

func (k CompanyKeys) PastPerformance() string { return joinKey(companyRoot, "past_performance") }

func (k CompanyKeys) Onboarding() string { return joinKey(companyRoot, "onboarding") }

func (k CompanyKeys) Scoring() string { return joinKey(companyRoot, "scoring") }

func (k CompanyKeys) CapabilityStatements() string {
	return joinKey(companyRoot, "capability_statements")
}

// ProposalKeys builds cache keys for the proposals resource.
type ProposalKeys struct {
	ser cache.KeySerializer
}

func NewProposalKeys(ser cache.KeySerializer) ProposalKeys {
	return ProposalKeys{ser: ser}
}

func (k ProposalKeys) Root() string { return proposalsRoot }

func (k ProposalKeys) Templates() string { return joinKey(proposalsRoot, "templates") }

func (k ProposalKeys) Template(id string) string { return joinKey(proposalsRoot, "templates", id) }
