// Package alerts wraps the /alerts resource: saved-search alert profiles that
// match new opportunities against user-defined filters.
package alerts

import (
	"context"
	"net/http"
	"time"

	"github.com/bidking/go-bidking-client/api"
)

// Frequency is how often a profile's matches are delivered.
type Frequency string

const (
	FrequencyImmediate Frequency = "immediate"
	FrequencyDaily     Frequency = "daily"
	FrequencyWeekly    Frequency = "weekly"
)

// AlertProfile is a named opportunity filter owned by one user. match_count
// and last_alert_sent are derived by the backend and never written by the
// client.
type AlertProfile struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	NAICSCodes    []string   `json:"naics_codes"`
	PSCCodes      []string   `json:"psc_codes"`
	Keywords      []string   `json:"keywords"`
	Agencies      []string   `json:"agencies"`
	States        []string   `json:"states"`
	SetAsideTypes []string   `json:"set_aside_types"`
	MinScore      float64    `json:"min_score"`
	Frequency     Frequency  `json:"frequency"`
	IsActive      bool       `json:"is_active"`
	MatchCount    int        `json:"match_count"`
	LastAlertSent *time.Time `json:"last_alert_sent"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// AlertProfileInput is the payload for creating a profile.
type AlertProfileInput struct {
	Name          string    `json:"name"`
	NAICSCodes    []string  `json:"naics_codes,omitempty"`
	PSCCodes      []string  `json:"psc_codes,omitempty"`
	Keywords      []string  `json:"keywords,omitempty"`
	Agencies      []string  `json:"agencies,omitempty"`
	States        []string  `json:"states,omitempty"`
	SetAsideTypes []string  `json:"set_aside_types,omitempty"`
	MinScore      float64   `json:"min_score,omitempty"`
	Frequency     Frequency `json:"frequency,omitempty"`
	IsActive      *bool     `json:"is_active,omitempty"`
}

// AlertProfileUpdate is a partial update; nil fields are left untouched by
// the backend PATCH handler.
type AlertProfileUpdate struct {
	Name          *string    `json:"name,omitempty"`
	NAICSCodes    *[]string  `json:"naics_codes,omitempty"`
	PSCCodes      *[]string  `json:"psc_codes,omitempty"`
	Keywords      *[]string  `json:"keywords,omitempty"`
	Agencies      *[]string  `json:"agencies,omitempty"`
	States        *[]string  `json:"states,omitempty"`
	SetAsideTypes *[]string  `json:"set_aside_types,omitempty"`
	MinScore      *float64   `json:"min_score,omitempty"`
	Frequency     *Frequency `json:"frequency,omitempty"`
	IsActive      *bool      `json:"is_active,omitempty"`
}

// MatchPreview is a truncated opportunity returned by a profile test run.
type MatchPreview struct {
	OpportunityID  string  `json:"opportunity_id"`
	Title          string  `json:"title"`
	Agency         string  `json:"agency"`
	RelevanceScore float64 `json:"relevance_score"`
}

// TestResult reports what a profile would have matched over the test window.
type TestResult struct {
	ProfileID  string         `json:"profile_id"`
	MatchCount int            `json:"match_count"`
	Matches    []MatchPreview `json:"matches"`
}

// Client issues alert-profile requests. Each method performs exactly one
// HTTP round trip and propagates transport errors unchanged.
type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

// List returns all alert profiles for the authenticated user.
func (c *Client) List(ctx context.Context) ([]AlertProfile, error) {
	var out []AlertProfile
	if err := c.api.Do(ctx, http.MethodGet, "/alerts", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create creates a new alert profile.
func (c *Client) Create(ctx context.Context, in AlertProfileInput) (*AlertProfile, error) {
	var out AlertProfile
	if err := c.api.Do(ctx, http.MethodPost, "/alerts", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get returns a single alert profile by id.
func (c *Client) Get(ctx context.Context, id string) (*AlertProfile, error) {
	var out AlertProfile
	if err := c.api.Do(ctx, http.MethodGet, "/alerts/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update applies a partial update to an alert profile.
func (c *Client) Update(ctx context.Context, id string, upd AlertProfileUpdate) (*AlertProfile, error) {
	var out AlertProfile
	if err := c.api.Do(ctx, http.MethodPatch, "/alerts/"+id, nil, upd, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes an alert profile.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.api.Do(ctx, http.MethodDelete, "/alerts/"+id, nil, nil, nil)
}

// Test runs the profile filter against recent opportunities without sending
// any alert.
func (c *Client) Test(ctx context.Context, id string) (*TestResult, error) {
	var out TestResult
	if err := c.api.Do(ctx, http.MethodPost, "/alerts/"+id+"/test", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
