// Package testutil provides testing utilities for the recordings exporter.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
)

// MockResponse defines the behavior for one mock API response.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
}

// MockWebex is a configurable mock of the Webex recordings API for testing.
// Handlers are matched by URL path; unknown paths get an empty listing.
type MockWebex struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)

	// Tracking
	RequestCount      int
	LastRequestHeader http.Header
	RequestedURLs     []string
}

// NewMockWebex creates a new mock recordings API server.
func NewMockWebex() *MockWebex {
	mock := &MockWebex{
		handlers: make(map[string]func(w http.ResponseWriter, r *http.Request)),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.LastRequestHeader = r.Header.Clone()
		mock.RequestedURLs = append(mock.RequestedURLs, r.URL.String())
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		mock.defaultHandler(w, r)
	}))

	return mock
}

// URL returns the mock server URL (usable as the client's base URL).
func (m *MockWebex) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockWebex) Close() {
	m.server.Close()
}

// Reset clears all tracking state.
func (m *MockWebex) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.LastRequestHeader = nil
	m.RequestedURLs = nil
}

// SetHandler sets a custom handler for a specific path.
func (m *MockWebex) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a canned response for a path.
func (m *MockWebex) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}
		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// SetResponseSequence configures a path to serve each response once, in
// order, repeating the last one afterwards. Used to script 429-then-success
// flows against a single URL.
func (m *MockWebex) SetResponseSequence(path string, responses []MockResponse) {
	var mu sync.Mutex
	i := 0
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		resp := responses[i]
		if i < len(responses)-1 {
			i++
		}
		mu.Unlock()

		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}
		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// GetRequestCount returns the number of requests seen by the server.
func (m *MockWebex) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// defaultHandler serves an empty listing.
func (m *MockWebex) defaultHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"items": []}`))
}

// RecordingsBody builds an items listing body from raw item objects.
func RecordingsBody(items ...map[string]any) string {
	if items == nil {
		items = []map[string]any{}
	}
	payload := map[string]any{"items": items}
	body, err := json.Marshal(payload)
	if err != nil {
		panic(fmt.Sprintf("marshal recordings body: %v", err))
	}
	return string(body)
}

// NewRecordingsPage creates a 200 listing response. nextURL, when non-empty,
// is advertised via the Link header as the rel="next" cursor.
func NewRecordingsPage(nextURL string, items ...map[string]any) MockResponse {
	resp := MockResponse{
		StatusCode: http.StatusOK,
		Body:       RecordingsBody(items...),
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
	if nextURL != "" {
		resp.Headers["Link"] = fmt.Sprintf(`<%s>; rel="next"`, nextURL)
	}
	return resp
}

// NewRateLimitResponse creates a 429 response with a Retry-After header.
func NewRateLimitResponse(retryAfter string) MockResponse {
	resp := MockResponse{
		StatusCode: http.StatusTooManyRequests,
		Body:       `{"message": "Rate limit exceeded"}`,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
	if retryAfter != "" {
		resp.Headers["Retry-After"] = retryAfter
	}
	return resp
}

// NewServerErrorResponse creates a 500 response.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"message": "Internal server error"}`,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}

// NewMissingItemsResponse creates a 200 response whose body lacks the items
// array.
func NewMissingItemsResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       `{"message": "nothing here"}`,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}

// NewInvalidJSONResponse creates a 200 response with a malformed body.
func NewInvalidJSONResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       `{"items": [`,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}
