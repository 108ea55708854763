// Package company wraps the /company resource: the bidder's own profile,
// certifications, past performance, onboarding, scoring preferences, and
// capability statement uploads.
package company

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/bidking/go-bidking-client/api"
)

// Profile is the company's self-description used by the scoring engine.
type Profile struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	UEI            string    `json:"uei"`
	CageCode       string    `json:"cage_code"`
	Description    string    `json:"description"`
	Website        string    `json:"website"`
	State          string    `json:"state"`
	EmployeeCount  int       `json:"employee_count"`
	AnnualRevenue  float64   `json:"annual_revenue"`
	NAICSCodes     []string  `json:"naics_codes"`
	SetAsideStatus []string  `json:"set_aside_status"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ProfileUpdate is a partial profile update; nil fields stay untouched.
type ProfileUpdate struct {
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Website       *string  `json:"website,omitempty"`
	State         *string  `json:"state,omitempty"`
	EmployeeCount *int     `json:"employee_count,omitempty"`
	AnnualRevenue *float64 `json:"annual_revenue,omitempty"`
}

// Certification is a small-business or socio-economic certification.
type Certification struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	IssuedBy  string     `json:"issued_by"`
	IssuedAt  *time.Time `json:"issued_at"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// CertificationInput creates a certification record.
type CertificationInput struct {
	Type      string     `json:"type"`
	IssuedBy  string     `json:"issued_by,omitempty"`
	IssuedAt  *time.Time `json:"issued_at,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// PastPerformance is a prior contract reference.
type PastPerformance struct {
	ID           string     `json:"id"`
	ContractID   string     `json:"contract_id"`
	Title        string     `json:"title"`
	Agency       string     `json:"agency"`
	NAICSCode    string     `json:"naics_code"`
	Value        float64    `json:"value"`
	StartedAt    *time.Time `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at"`
	Description  string     `json:"description"`
}

// PastPerformanceInput creates a past-performance record.
type PastPerformanceInput struct {
	ContractID  string     `json:"contract_id,omitempty"`
	Title       string     `json:"title"`
	Agency      string     `json:"agency"`
	NAICSCode   string     `json:"naics_code,omitempty"`
	Value       float64    `json:"value,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Description string     `json:"description,omitempty"`
}

// OnboardingStatus tracks which setup steps the user has completed.
type OnboardingStatus struct {
	CompletedSteps []string `json:"completed_steps"`
	CurrentStep    string   `json:"current_step"`
	Complete       bool     `json:"complete"`
}

// ScoringPreferences tune the relevance scoring engine for this company.
type ScoringPreferences struct {
	KeywordWeight     float64  `json:"keyword_weight"`
	NAICSWeight       float64  `json:"naics_weight"`
	AgencyWeight      float64  `json:"agency_weight"`
	SetAsideWeight    float64  `json:"set_aside_weight"`
	PreferredAgencies []string `json:"preferred_agencies"`
	ExcludedKeywords  []string `json:"excluded_keywords"`
}

// CapabilityStatement is an uploaded marketing document.
type CapabilityStatement struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	MimeType   string    `json:"mime_type"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Client issues company-profile requests. Each method performs exactly one
// HTTP round trip and propagates transport errors unchanged.
type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

// GetProfile returns the company profile.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	var out Profile
	if err := c.api.Do(ctx, http.MethodGet, "/company/profile", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile applies a partial update to the company profile.
func (c *Client) UpdateProfile(ctx context.Context, upd ProfileUpdate) (*Profile, error) {
	var out Profile
	if err := c.api.Do(ctx, http.MethodPatch, "/company/profile", nil, upd, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddNAICS registers an additional NAICS code on the profile.
func (c *Client) AddNAICS(ctx context.Context, code string) (*Profile, error) {
	var out Profile
	body := map[string]string{"code": code}
	if err := c.api.Do(ctx, http.MethodPost, "/company/profile/naics", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveNAICS removes a NAICS code from the profile.
func (c *Client) RemoveNAICS(ctx context.Context, code string) error {
	return c.api.Do(ctx, http.MethodDelete, "/company/profile/naics/"+code, nil, nil, nil)
}

// ListCertifications returns the company's certifications.
func (c *Client) ListCertifications(ctx context.Context) ([]Certification, error) {
	var out []Certification
	if err := c.api.Do(ctx, http.MethodGet, "/company/profile/certifications", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddCertification creates a certification record.
func (c *Client) AddCertification(ctx context.Context, in CertificationInput) (*Certification, error) {
	var out Certification
	if err := c.api.Do(ctx, http.MethodPost, "/company/profile/certifications", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCertification removes a certification record.
func (c *Client) DeleteCertification(ctx context.Context, id string) error {
	return c.api.Do(ctx, http.MethodDelete, "/company/profile/certifications/"+id, nil, nil, nil)
}

// ListPastPerformance returns the company's past-performance records.
func (c *Client) ListPastPerformance(ctx context.Context) ([]PastPerformance, error) {
	var out []PastPerformance
	if err := c.api.Do(ctx, http.MethodGet, "/company/profile/past-performance", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddPastPerformance creates a past-performance record.
func (c *Client) AddPastPerformance(ctx context.Context, in PastPerformanceInput) (*PastPerformance, error) {
	var out PastPerformance
	if err := c.api.Do(ctx, http.MethodPost, "/company/profile/past-performance", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OnboardingStatus returns the onboarding progress.
func (c *Client) OnboardingStatus(ctx context.Context) (*OnboardingStatus, error) {
	var out OnboardingStatus
	if err := c.api.Do(ctx, http.MethodGet, "/company/onboarding/status", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CompleteOnboardingStep marks one onboarding step done.
func (c *Client) CompleteOnboardingStep(ctx context.Context, step string) (*OnboardingStatus, error) {
	var out OnboardingStatus
	body := map[string]string{"step": step}
	if err := c.api.Do(ctx, http.MethodPost, "/company/onboarding/complete", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ScoringPreferences returns the scoring-engine preferences.
func (c *Client) ScoringPreferences(ctx context.Context) (*ScoringPreferences, error) {
	var out ScoringPreferences
	if err := c.api.Do(ctx, http.MethodGet, "/company/scoring/preferences", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateScoringPreferences replaces the scoring-engine preferences.
func (c *Client) UpdateScoringPreferences(ctx context.Context, prefs ScoringPreferences) (*ScoringPreferences, error) {
	var out ScoringPreferences
	if err := c.api.Do(ctx, http.MethodPut, "/company/scoring/preferences", nil, prefs, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCapabilityStatements returns the uploaded capability statements.
func (c *Client) ListCapabilityStatements(ctx context.Context) ([]CapabilityStatement, error) {
	var out []CapabilityStatement
	if err := c.api.Do(ctx, http.MethodGet, "/company/profile/capability-statements", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UploadCapabilityStatement uploads a document as multipart form data. This
// is the only non-JSON request in the API surface.
func (c *Client) UploadCapabilityStatement(ctx context.Context, filename string, r io.Reader) (*CapabilityStatement, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("company: build multipart form: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("company: read upload: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("company: finalize multipart form: %w", err)
	}

	var out CapabilityStatement
	if err := c.api.DoMultipart(ctx, "/company/profile/capability-statements", &buf, w.FormDataContentType(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCapabilityStatement removes an uploaded document.
func (c *Client) DeleteCapabilityStatement(ctx context.Context, id string) error {
	return c.api.Do(ctx, http.MethodDelete, "/company/profile/capability-statements/"+id, nil, nil, nil)
}
