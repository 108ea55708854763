// Package opportunities wraps the /opportunities resource: procurement
// notices, per-opportunity analysis, and the user's saved pipeline.
package opportunities

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bidking/go-bidking-client/api"
)

// Opportunity is a procurement notice. Immutable from the client's
// perspective; relevance_score is computed by the backend scoring engine.
type Opportunity struct {
	ID                  string         `json:"id"`
	NoticeID            string         `json:"notice_id"`
	Title               string         `json:"title"`
	Description         string         `json:"description"`
	Agency              string         `json:"agency"`
	SubAgency           string         `json:"sub_agency"`
	NAICSCode           string         `json:"naics_code"`
	PSCCode             string         `json:"psc_code"`
	SetAside            string         `json:"set_aside"`
	PlaceOfPerformance  string         `json:"place_of_performance"`
	State               string         `json:"state"`
	NoticeType          string         `json:"notice_type"`
	PostedAt            time.Time      `json:"posted_at"`
	ResponseDeadline    *time.Time     `json:"response_deadline"`
	EstimatedValueMin   float64        `json:"estimated_value_min"`
	EstimatedValueMax   float64        `json:"estimated_value_max"`
	RelevanceScore      float64        `json:"relevance_score"`
	SourceURL           string         `json:"source_url"`
	Contacts            []Contact      `json:"contacts"`
	Attachments         []Attachment   `json:"attachments"`
	History             []HistoryEvent `json:"history"`
}

// Contact is a point of contact listed on a notice.
type Contact struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Attachment is a document attached to a notice.
type Attachment struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
}

// HistoryEvent is an amendment or status change on a notice.
type HistoryEvent struct {
	OccurredAt  time.Time `json:"occurred_at"`
	EventType   string    `json:"event_type"`
	Description string    `json:"description"`
}

// Analysis is the backend's fit analysis for one opportunity.
type Analysis struct {
	OpportunityID    string   `json:"opportunity_id"`
	FitScore         float64  `json:"fit_score"`
	Strengths        []string `json:"strengths"`
	Gaps             []string `json:"gaps"`
	Recommendation   string   `json:"recommendation"`
	CompetitionLevel string   `json:"competition_level"`
}

// SearchParams are the /opportunities query filters. Order-insensitive deep
// equality of two SearchParams values implies identical cache keys.
type SearchParams struct {
	Query         string   `json:"query,omitempty"`
	NAICSCodes    []string `json:"naics_codes,omitempty"`
	PSCCodes      []string `json:"psc_codes,omitempty"`
	Agencies      []string `json:"agencies,omitempty"`
	States        []string `json:"states,omitempty"`
	SetAsideTypes []string `json:"set_aside_types,omitempty"`
	MinScore      float64  `json:"min_score,omitempty"`
	PostedAfter   string   `json:"posted_after,omitempty"`
	DueBefore     string   `json:"due_before,omitempty"`
	SortBy        string   `json:"sort_by,omitempty"`
	Page          int      `json:"page,omitempty"`
	PageSize      int      `json:"page_size,omitempty"`
}

// Values encodes the params as URL query values.
func (p SearchParams) Values() url.Values {
	v := url.Values{}
	setStr(v, "q", p.Query)
	setList(v, "naics", p.NAICSCodes)
	setList(v, "psc", p.PSCCodes)
	setList(v, "agency", p.Agencies)
	setList(v, "state", p.States)
	setList(v, "set_aside", p.SetAsideTypes)
	if p.MinScore > 0 {
		v.Set("min_score", strconv.FormatFloat(p.MinScore, 'f', -1, 64))
	}
	setStr(v, "posted_after", p.PostedAfter)
	setStr(v, "due_before", p.DueBefore)
	setStr(v, "sort_by", p.SortBy)
	setInt(v, "page", p.Page)
	setInt(v, "page_size", p.PageSize)
	return v
}

// SearchResult is one page of opportunity search results.
type SearchResult struct {
	Opportunities []Opportunity `json:"opportunities"`
	Total         int           `json:"total"`
	Page          int           `json:"page"`
	PageSize      int           `json:"page_size"`
}

// Status is the pipeline stage of a saved opportunity.
type Status string

const (
	StatusWatching    Status = "watching"
	StatusResearching Status = "researching"
	StatusPreparing   Status = "preparing"
	StatusSubmitted   Status = "submitted"
	StatusWon         Status = "won"
	StatusLost        Status = "lost"
	StatusArchived    Status = "archived"
)

// Valid reports whether s is a known pipeline status.
func (s Status) Valid() bool {
	switch s {
	case StatusWatching, StatusResearching, StatusPreparing,
		StatusSubmitted, StatusWon, StatusLost, StatusArchived:
		return true
	}
	return false
}

// SavedOpportunity joins the user and an opportunity with pipeline metadata.
// Created on save, updated as the bid progresses, deleted on unsave.
type SavedOpportunity struct {
	ID            string      `json:"id"`
	OpportunityID string      `json:"opportunity_id"`
	Opportunity   Opportunity `json:"opportunity"`
	Status        Status      `json:"status"`
	Priority      int         `json:"priority"`
	Notes         string      `json:"notes"`
	BidAmount     *float64    `json:"bid_amount"`
	WonAmount     *float64    `json:"won_amount"`
	LossReason    string      `json:"loss_reason"`
	SavedAt       time.Time   `json:"saved_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// SaveInput creates a pipeline entry for an opportunity.
type SaveInput struct {
	OpportunityID string `json:"opportunity_id"`
	Status        Status `json:"status,omitempty"`
	Priority      int    `json:"priority,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// SavedUpdate is a partial pipeline update; nil fields stay untouched.
type SavedUpdate struct {
	Status     *Status  `json:"status,omitempty"`
	Priority   *int     `json:"priority,omitempty"`
	Notes      *string  `json:"notes,omitempty"`
	BidAmount  *float64 `json:"bid_amount,omitempty"`
	WonAmount  *float64 `json:"won_amount,omitempty"`
	LossReason *string  `json:"loss_reason,omitempty"`
}

// SavedListParams filter the saved-opportunity list.
type SavedListParams struct {
	Status   Status `json:"status,omitempty"`
	Page     int    `json:"page,omitempty"`
	PageSize int    `json:"page_size,omitempty"`
}

// Values encodes the params as URL query values.
func (p SavedListParams) Values() url.Values {
	v := url.Values{}
	setStr(v, "status", string(p.Status))
	setInt(v, "page", p.Page)
	setInt(v, "page_size", p.PageSize)
	return v
}

// PipelineStats aggregates the saved pipeline per status.
type PipelineStats struct {
	Counts        map[string]int `json:"counts"`
	TotalBidValue float64        `json:"total_bid_value"`
	TotalWonValue float64        `json:"total_won_value"`
	WinRate       float64        `json:"win_rate"`
}

// Client issues opportunity and pipeline requests. Each method performs
// exactly one HTTP round trip and propagates transport errors unchanged.
type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

// Search returns one page of opportunities matching the filters.
func (c *Client) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	var out SearchResult
	if err := c.api.Do(ctx, http.MethodGet, "/opportunities", params.Values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get returns a single opportunity by id.
func (c *Client) Get(ctx context.Context, id string) (*Opportunity, error) {
	var out Opportunity
	if err := c.api.Do(ctx, http.MethodGet, "/opportunities/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Analysis returns the fit analysis for one opportunity.
func (c *Client) Analysis(ctx context.Context, id string) (*Analysis, error) {
	var out Analysis
	if err := c.api.Do(ctx, http.MethodGet, "/opportunities/"+id+"/analysis", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListSaved returns the user's saved opportunities.
func (c *Client) ListSaved(ctx context.Context, params SavedListParams) ([]SavedOpportunity, error) {
	var out []SavedOpportunity
	if err := c.api.Do(ctx, http.MethodGet, "/opportunities/saved", params.Values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Save creates a pipeline entry for an opportunity.
func (c *Client) Save(ctx context.Context, in SaveInput) (*SavedOpportunity, error) {
	var out SavedOpportunity
	if err := c.api.Do(ctx, http.MethodPost, "/opportunities/saved", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSaved applies a partial update to a pipeline entry.
func (c *Client) UpdateSaved(ctx context.Context, id string, upd SavedUpdate) (*SavedOpportunity, error) {
	var out SavedOpportunity
	if err := c.api.Do(ctx, http.MethodPatch, "/opportunities/saved/"+id, nil, upd, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Unsave removes a pipeline entry.
func (c *Client) Unsave(ctx context.Context, id string) error {
	return c.api.Do(ctx, http.MethodDelete, "/opportunities/saved/"+id, nil, nil, nil)
}

// PipelineStats returns per-status aggregates over the saved pipeline.
func (c *Client) PipelineStats(ctx context.Context) (*PipelineStats, error) {
	var out PipelineStats
	if err := c.api.Do(ctx, http.MethodGet, "/opportunities/saved/stats", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func setStr(v url.Values, key, val string) {
	if val != "" {
		v.Set(key, val)
	}
}

func setInt(v url.Values, key string, val int) {
	if val > 0 {
		v.Set(key, strconv.Itoa(val))
	}
}

func setList(v url.Values, key string, vals []string) {
	if len(vals) > 0 {
		v.Set(key, strings.Join(vals, ","))
	}
}
