package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/webex-tools/recordings-export/internal/testutil"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	c, err := New(Config{
		BaseURL: baseURL,
		Token:   "test-token",
	})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return c
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
	}{
		{
			name:        "valid config",
			config:      Config{Token: "token-123"},
			expectError: false,
		},
		{
			name:        "missing token",
			config:      Config{BaseURL: "https://example.com"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.config)
			if tt.expectError && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Expected no error, got: %v", err)
			}
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	c, err := New(Config{Token: "token-123"})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if c.BaseURL() != DefaultBaseURL {
		t.Errorf("BaseURL() = %q, want %q", c.BaseURL(), DefaultBaseURL)
	}
}

func TestFetchPage_Success(t *testing.T) {
	mock := testutil.NewMockWebex()
	defer mock.Close()

	mock.SetResponse("/admin/convergedRecordings", testutil.NewRecordingsPage(
		mock.URL()+"/admin/convergedRecordings?cursor=2",
		map[string]any{"id": "rec-1", "topic": "Standup"},
		map[string]any{"id": "rec-2", "serviceData": map[string]any{"locationId": "loc-2"}},
	))

	c := newTestClient(t, mock.URL())
	page, err := c.FetchPage(context.Background(), mock.URL()+"/admin/convergedRecordings")
	if err != nil {
		t.Fatalf("FetchPage() failed: %v", err)
	}

	if len(page.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(page.Items))
	}
	if page.Items[0].ID != "rec-1" || page.Items[1].ID != "rec-2" {
		t.Errorf("items out of order: %q, %q", page.Items[0].ID, page.Items[1].ID)
	}
	if page.Items[1].ServiceData == nil || page.Items[1].ServiceData.LocationID != "loc-2" {
		t.Error("nested serviceData not decoded")
	}
	if page.NextURL != mock.URL()+"/admin/convergedRecordings?cursor=2" {
		t.Errorf("NextURL = %q, want cursor URL", page.NextURL)
	}
}

func TestFetchPage_LastPageHasNoNextURL(t *testing.T) {
	mock := testutil.NewMockWebex()
	defer mock.Close()

	mock.SetResponse("/admin/convergedRecordings", testutil.NewRecordingsPage("",
		map[string]any{"id": "rec-1"},
	))

	c := newTestClient(t, mock.URL())
	page, err := c.FetchPage(context.Background(), mock.URL()+"/admin/convergedRecordings")
	if err != nil {
		t.Fatalf("FetchPage() failed: %v", err)
	}
	if page.NextURL != "" {
		t.Errorf("NextURL = %q, want empty", page.NextURL)
	}
}

func TestFetchPage_SendsAuthHeaders(t *testing.T) {
	mock := testutil.NewMockWebex()
	defer mock.Close()

	c := newTestClient(t, mock.URL())
	if _, err := c.FetchPage(context.Background(), mock.URL()+"/admin/convergedRecordings"); err != nil {
		t.Fatalf("FetchPage() failed: %v", err)
	}

	if got := mock.LastRequestHeader.Get("Authorization"); got != "Bearer test-token" {
		t.Errorf("Authorization header = %q, want %q", got, "Bearer test-token")
	}
	if got := mock.LastRequestHeader.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type header = %q, want %q", got, "application/json")
	}
}

func TestFetchPage_RateLimited(t *testing.T) {
	tests := []struct {
		name       string
		retryAfter string
		wantWait   time.Duration
	}{
		{
			name:       "integer retry-after",
			retryAfter: "5",
			wantWait:   5 * time.Second,
		},
		{
			name:       "missing retry-after uses default",
			retryAfter: "",
			wantWait:   60 * time.Second,
		},
		{
			name:       "unparseable retry-after uses default",
			retryAfter: "later",
			wantWait:   60 * time.Second,
		},
		{
			name:       "retry-after above cap is clamped",
			retryAfter: "1000",
			wantWait:   300 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := testutil.NewMockWebex()
			defer mock.Close()
			mock.SetResponse("/admin/convergedRecordings", testutil.NewRateLimitResponse(tt.retryAfter))

			c := newTestClient(t, mock.URL())
			_, err := c.FetchPage(context.Background(), mock.URL()+"/admin/convergedRecordings")

			var rle *RateLimitError
			if !errors.As(err, &rle) {
				t.Fatalf("expected *RateLimitError, got %T: %v", err, err)
			}
			if rle.Wait != tt.wantWait {
				t.Errorf("Wait = %v, want %v", rle.Wait, tt.wantWait)
			}
			if !IsRateLimit(err) {
				t.Error("IsRateLimit() = false for rate limit error")
			}
		})
	}
}

func TestFetchPage_APIError(t *testing.T) {
	mock := testutil.NewMockWebex()
	defer mock.Close()
	mock.SetResponse("/admin/convergedRecordings", testutil.MockResponse{
		StatusCode: 401,
		Body:       `{"message": "The request requires a valid access token"}`,
	})

	c := newTestClient(t, mock.URL())
	_, err := c.FetchPage(context.Background(), mock.URL()+"/admin/convergedRecordings")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != 401 {
		t.Errorf("StatusCode = %d, want 401", apiErr.StatusCode)
	}
	if apiErr.Message != "The request requires a valid access token" {
		t.Errorf("Message = %q, want server message", apiErr.Message)
	}
	if IsRateLimit(err) {
		t.Error("IsRateLimit() = true for generic API error")
	}
}

func TestFetchPage_ServerErrorWithoutJSONBody(t *testing.T) {
	mock := testutil.NewMockWebex()
	defer mock.Close()
	mock.SetResponse("/admin/convergedRecordings", testutil.MockResponse{
		StatusCode: 502,
		Body:       "bad gateway",
	})

	c := newTestClient(t, mock.URL())
	_, err := c.FetchPage(context.Background(), mock.URL()+"/admin/convergedRecordings")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Message != "bad gateway" {
		t.Errorf("Message = %q, want raw body fallback", apiErr.Message)
	}
}

func TestFetchPage_MissingItems(t *testing.T) {
	mock := testutil.NewMockWebex()
	defer mock.Close()
	mock.SetResponse("/admin/convergedRecordings", testutil.NewMissingItemsResponse())

	c := newTestClient(t, mock.URL())
	_, err := c.FetchPage(context.Background(), mock.URL()+"/admin/convergedRecordings")
	if !errors.Is(err, ErrMissingItems) {
		t.Fatalf("expected ErrMissingItems, got: %v", err)
	}
}

func TestFetchPage_ItemsNotAList(t *testing.T) {
	mock := testutil.NewMockWebex()
	defer mock.Close()
	mock.SetResponse("/admin/convergedRecordings", testutil.MockResponse{
		StatusCode: 200,
		Body:       `{"items": "nope"}`,
	})

	c := newTestClient(t, mock.URL())
	_, err := c.FetchPage(context.Background(), mock.URL()+"/admin/convergedRecordings")
	if err == nil {
		t.Fatal("expected error for non-array items")
	}
	if IsRateLimit(err) {
		t.Error("decode failure must not look like a rate limit")
	}
}

func TestFetchPage_InvalidJSON(t *testing.T) {
	mock := testutil.NewMockWebex()
	defer mock.Close()
	mock.SetResponse("/admin/convergedRecordings", testutil.NewInvalidJSONResponse())

	c := newTestClient(t, mock.URL())
	_, err := c.FetchPage(context.Background(), mock.URL()+"/admin/convergedRecordings")
	if err == nil {
		t.Fatal("expected error for invalid JSON body")
	}
}

func TestFetchPage_ConnectionFailure(t *testing.T) {
	mock := testutil.NewMockWebex()
	url := mock.URL() + "/admin/convergedRecordings"
	mock.Close() // server gone before the request

	c := newTestClient(t, mock.URL())
	_, err := c.FetchPage(context.Background(), url)
	if err == nil {
		t.Fatal("expected connection error")
	}
	if IsRateLimit(err) {
		t.Error("connection failure must not look like a rate limit")
	}
}
