// Package proposals wraps the /proposals resource: reusable templates and
// generated proposal drafts.
package proposals

import (
	"context"
	"net/http"
	"time"

	"github.com/bidking/go-bidking-client/api"
)

// Template is a reusable proposal outline.
type Template struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	NoticeTypes []string  `json:"notice_types"`
	Sections    []Section `json:"sections"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Section is one block of a template or generated proposal.
type Section struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Order   int    `json:"order"`
	Content string `json:"content"`
	Locked  bool   `json:"locked"`
}

// SectionUpdate is a partial section edit; nil fields stay untouched.
type SectionUpdate struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
	Order   *int    `json:"order,omitempty"`
}

// GenerateRequest asks the backend to draft a proposal for an opportunity.
type GenerateRequest struct {
	OpportunityID string `json:"opportunity_id"`
	TemplateID    string `json:"template_id,omitempty"`
	Tone          string `json:"tone,omitempty"`
}

// GeneratedProposal is a draft produced from a template and an opportunity.
type GeneratedProposal struct {
	ID            string    `json:"id"`
	OpportunityID string    `json:"opportunity_id"`
	TemplateID    string    `json:"template_id"`
	Sections      []Section `json:"sections"`
	CreatedAt     time.Time `json:"created_at"`
}

// Client issues proposal requests. Each method performs exactly one HTTP
// round trip and propagates transport errors unchanged.
type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

// ListTemplates returns the available proposal templates.
func (c *Client) ListTemplates(ctx context.Context) ([]Template, error) {
	var out []Template
	if err := c.api.Do(ctx, http.MethodGet, "/proposals/templates", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTemplate returns a single template by id.
func (c *Client) GetTemplate(ctx context.Context, id string) (*Template, error) {
	var out Template
	if err := c.api.Do(ctx, http.MethodGet, "/proposals/templates/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Generate drafts a proposal for an opportunity.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*GeneratedProposal, error) {
	var out GeneratedProposal
	if err := c.api.Do(ctx, http.MethodPost, "/proposals/generate", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSection applies a partial edit to one proposal section.
func (c *Client) UpdateSection(ctx context.Context, id string, upd SectionUpdate) (*Section, error) {
	var out Section
	if err := c.api.Do(ctx, http.MethodPatch, "/proposals/sections/"+id, nil, upd, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
