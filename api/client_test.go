package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{
		BaseURL:  srv.URL,
		Token:    "test-token",
		Timeout:  5 * time.Second,
		RetryMax: -1, // no transport retries in tests
	})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func TestDo_SetsHeaders(t *testing.T) {
	var gotAuth, gotReqID, gotUA string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-Id")
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(`{}`))
	}))

	var out struct{}
	if err := client.Do(context.Background(), http.MethodGet, "/alerts", nil, nil, &out); err != nil {
		t.Fatalf("Do failed: %v", err)
	}

	if gotAuth != "Bearer test-token" {
		t.Errorf("expected bearer token, got %q", gotAuth)
	}
	if gotReqID == "" {
		t.Error("expected a request id header")
	}
	if gotUA != "go-bidking-client" {
		t.Errorf("unexpected user agent %q", gotUA)
	}
}

func TestDo_DecodesResponse(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/alerts/a1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"id":"a1","name":"cyber watch"}`))
	}))

	var out struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := client.Do(context.Background(), http.MethodGet, "/alerts/a1", nil, nil, &out); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if out.ID != "a1" || out.Name != "cyber watch" {
		t.Errorf("unexpected decode result: %+v", out)
	}
}

func TestDo_ErrorDetailExtracted(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"min_score must be between 0 and 1"}`))
	}))

	err := client.Do(context.Background(), http.MethodPost, "/alerts", nil, map[string]any{"min_score": 5}, nil)
	if err == nil {
		t.Fatal("expected an error")
	}

	apiErr := AsServerError(err)
	if apiErr == nil {
		t.Fatalf("expected *api.Error, got %T", err)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", apiErr.Status)
	}
	if apiErr.Detail != "min_score must be between 0 and 1" {
		t.Errorf("unexpected detail %q", apiErr.Detail)
	}
	if got := ErrorDetail(err); got != "min_score must be between 0 and 1" {
		t.Errorf("ErrorDetail returned %q", got)
	}
}

func TestDo_NotFoundSentinel(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"alert profile not found"}`))
	}))

	err := client.Do(context.Background(), http.MethodGet, "/alerts/missing", nil, nil, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected errors.Is ErrNotFound, got %v", err)
	}
}

func TestDo_NoContent(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := client.Do(context.Background(), http.MethodDelete, "/alerts/a1", nil, nil, nil); err != nil {
		t.Fatalf("expected no error for 204, got %v", err)
	}
}

func TestDo_NonJSONErrorBody(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))

	err := client.Do(context.Background(), http.MethodGet, "/market/overview", nil, nil, nil)
	apiErr := AsServerError(err)
	if apiErr == nil {
		t.Fatalf("expected *api.Error, got %T", err)
	}
	if apiErr.Status != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", apiErr.Status)
	}
	if apiErr.Detail != "" {
		t.Errorf("expected empty detail for non-JSON body, got %q", apiErr.Detail)
	}
}

func TestDoMultipart(t *testing.T) {
	var gotContentType string
	var gotFilename string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		} else if _, fh, err := r.FormFile("file"); err != nil {
			t.Errorf("form file: %v", err)
		} else {
			gotFilename = fh.Filename
		}
		w.Write([]byte(`{"id":"cs1","filename":"capabilities.pdf"}`))
	}))

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "capabilities.pdf")
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte("%PDF-1.4 fake"))
	w.Close()

	var out struct {
		ID string `json:"id"`
	}
	if err := client.DoMultipart(context.Background(), "/company/profile/capability-statements", &buf, w.FormDataContentType(), &out); err != nil {
		t.Fatalf("DoMultipart failed: %v", err)
	}

	if out.ID != "cs1" {
		t.Errorf("unexpected response %+v", out)
	}
	if gotFilename != "capabilities.pdf" {
		t.Errorf("server saw filename %q", gotFilename)
	}
	if gotContentType == "" || gotContentType == "application/json" {
		t.Errorf("expected multipart content type, got %q", gotContentType)
	}
}

func TestNewClient_InvalidConfig(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Error("expected error for missing base url")
	}
}

func TestSetToken_ConcurrentWithRequests(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			t.Error("expected a bearer token on every request")
		}
		w.Write([]byte(`{}`))
	}))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				client.SetToken(fmt.Sprintf("rotated-%d-%d", n, j))
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				var out struct{}
				if err := client.Do(context.Background(), http.MethodGet, "/alerts", nil, nil, &out); err != nil {
					t.Errorf("Do failed: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
