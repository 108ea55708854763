// Package market wraps the read-only /market resource: spending aggregates,
// NAICS statistics, labor rates, recompetes, and competitor search.
package market

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bidking/go-bidking-client/api"
)

// Overview is the top-level market summary.
type Overview struct {
	TotalObligations    float64   `json:"total_obligations"`
	ActiveOpportunities int       `json:"active_opportunities"`
	ExpiringContracts   int       `json:"expiring_contracts"`
	TopNAICS            []string  `json:"top_naics"`
	TopAgencies         []string  `json:"top_agencies"`
	GeneratedAt         time.Time `json:"generated_at"`
}

// NAICSStatistics aggregates spending for one NAICS code.
type NAICSStatistics struct {
	Code               string  `json:"code"`
	Title              string  `json:"title"`
	TotalObligations   float64 `json:"total_obligations"`
	ContractCount      int     `json:"contract_count"`
	SmallBizShare      float64 `json:"small_biz_share"`
	AvgContractValue   float64 `json:"avg_contract_value"`
	YearOverYearGrowth float64 `json:"yoy_growth"`
}

// LaborRate is a published labor category rate.
type LaborRate struct {
	Category   string  `json:"category"`
	Level      string  `json:"level"`
	MedianRate float64 `json:"median_rate"`
	P25Rate    float64 `json:"p25_rate"`
	P75Rate    float64 `json:"p75_rate"`
	Vehicle    string  `json:"vehicle"`
}

// Recompete is an expiring contract expected to be re-competed.
type Recompete struct {
	ContractID     string    `json:"contract_id"`
	Title          string    `json:"title"`
	Agency         string    `json:"agency"`
	Incumbent      string    `json:"incumbent"`
	NAICSCode      string    `json:"naics_code"`
	CurrentValue   float64   `json:"current_value"`
	ExpiresAt      time.Time `json:"expires_at"`
	RecompeteScore float64   `json:"recompete_score"`
}

// RecompeteParams filter the recompete list.
type RecompeteParams struct {
	NAICSCode    string `json:"naics_code,omitempty"`
	Agency       string `json:"agency,omitempty"`
	WithinMonths int    `json:"within_months,omitempty"`
	Page         int    `json:"page,omitempty"`
	PageSize     int    `json:"page_size,omitempty"`
}

// Values encodes the params as URL query values.
func (p RecompeteParams) Values() url.Values {
	v := url.Values{}
	if p.NAICSCode != "" {
		v.Set("naics", p.NAICSCode)
	}
	if p.Agency != "" {
		v.Set("agency", p.Agency)
	}
	if p.WithinMonths > 0 {
		v.Set("within_months", strconv.Itoa(p.WithinMonths))
	}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(p.PageSize))
	}
	return v
}

// RecompeteResult is one page of recompetes.
type RecompeteResult struct {
	Recompetes []Recompete `json:"recompetes"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
}

// Competitor is a company returned by competitor search.
type Competitor struct {
	UEI              string   `json:"uei"`
	Name             string   `json:"name"`
	State            string   `json:"state"`
	NAICSCodes       []string `json:"naics_codes"`
	TotalObligations float64  `json:"total_obligations"`
	ContractCount    int      `json:"contract_count"`
	TopAgencies      []string `json:"top_agencies"`
	SetAsideStatus   []string `json:"set_aside_status"`
}

// CompetitorParams filter competitor search.
type CompetitorParams struct {
	Query     string `json:"query,omitempty"`
	NAICSCode string `json:"naics_code,omitempty"`
	Agency    string `json:"agency,omitempty"`
	State     string `json:"state,omitempty"`
	Limit     int    `json:"limit,omitempty"`
}

// Values encodes the params as URL query values.
func (p CompetitorParams) Values() url.Values {
	v := url.Values{}
	if p.Query != "" {
		v.Set("q", p.Query)
	}
	if p.NAICSCode != "" {
		v.Set("naics", p.NAICSCode)
	}
	if p.Agency != "" {
		v.Set("agency", p.Agency)
	}
	if p.State != "" {
		v.Set("state", p.State)
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	return v
}

// Client issues market-intelligence requests. All endpoints are read-only.
type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

// Overview returns the market summary.
func (c *Client) Overview(ctx context.Context) (*Overview, error) {
	var out Overview
	if err := c.api.Do(ctx, http.MethodGet, "/market/overview", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// NAICS returns statistics for every tracked NAICS code.
func (c *Client) NAICS(ctx context.Context) ([]NAICSStatistics, error) {
	var out []NAICSStatistics
	if err := c.api.Do(ctx, http.MethodGet, "/market/naics", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// NAICSDetail returns statistics for one NAICS code.
func (c *Client) NAICSDetail(ctx context.Context, code string) (*NAICSStatistics, error) {
	var out NAICSStatistics
	if err := c.api.Do(ctx, http.MethodGet, "/market/naics/"+code, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LaborRates returns published labor category rates.
func (c *Client) LaborRates(ctx context.Context) ([]LaborRate, error) {
	var out []LaborRate
	if err := c.api.Do(ctx, http.MethodGet, "/market/labor-rates", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Recompetes returns one page of expiring contracts.
func (c *Client) Recompetes(ctx context.Context, params RecompeteParams) (*RecompeteResult, error) {
	var out RecompeteResult
	if err := c.api.Do(ctx, http.MethodGet, "/market/recompetes", params.Values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchCompetitors returns companies matching the search filters.
func (c *Client) SearchCompetitors(ctx context.Context, params CompetitorParams) ([]Competitor, error) {
	var out []Competitor
	if err := c.api.Do(ctx, http.MethodGet, "/market/competitors", params.Values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
