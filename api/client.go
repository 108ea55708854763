// Package api implements the shared HTTP transport for the BidKing REST API.
//
// A single Client is constructed once and shared by every resource client
// (alerts, opportunities, market, company, proposals). It owns the base URL,
// bearer token, transport-level retries, and error decoding; resource clients
// only describe paths, parameters, and response shapes.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
)

const requestIDHeader = "X-Request-Id"

// Client is the HTTP client for the BidKing API. All methods are safe for
// concurrent use once constructed.
type Client struct {
	baseURL   *url.URL
	userAgent string
	http      *retryablehttp.Client

	mu    sync.RWMutex
	token string
}

// NewClient creates a Client from the provided configuration. Retries happen
// at the transport level only; callers above (resource clients, cached
// queries) never retry on their own.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("api: invalid config: %w", err)
	}
	cfg = cfg.withDefaults()

	base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("api: parse base url: %w", err)
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient = cleanhttp.DefaultPooledClient()
	rc.HTTPClient.Timeout = cfg.Timeout
	rc.RetryMax = cfg.RetryMax
	rc.RetryWaitMin = cfg.RetryWaitMin
	rc.RetryWaitMax = cfg.RetryWaitMax
	rc.Logger = nil

	return &Client{
		baseURL:   base,
		token:     cfg.Token,
		userAgent: "go-bidking-client",
		http:      rc,
	}, nil
}

// SetToken replaces the bearer token used for subsequent requests. Safe to
// call while other goroutines are issuing requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) bearerToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Do performs a single JSON round trip: method + path + optional query and
// body, decoding the response into out when out is non-nil. Non-2xx responses
// return an *Error carrying the backend detail message.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode request body: %w", err)
		}
	}

	req, err := c.newRequest(ctx, method, path, query, payload)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.roundTrip(req, out)
}

// DoMultipart performs a multipart/form-data POST, used for capability
// statement uploads. contentType must carry the multipart boundary.
func (c *Client) DoMultipart(ctx context.Context, path string, form *bytes.Buffer, contentType string, out any) error {
	req, err := c.newRequest(ctx, http.MethodPost, path, nil, form.Bytes())
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	return c.roundTrip(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, payload []byte) (*retryablehttp.Request, error) {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var body any
	if payload != nil {
		body = payload
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("api: build request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, uuid.NewString())
	if token := c.bearerToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}

func (c *Client) roundTrip(req *retryablehttp.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode %s %s response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}
