package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
)

func TestAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        *APIError
		wantMsg    string
		wantUnwrap error
	}{
		{
			name:       "not found",
			err:        &APIError{Service: "Jira", StatusCode: 404, Message: "Issue does not exist", Endpoint: "/rest/api/2/issue/REL-1"},
			wantMsg:    "Jira API error (404) at /rest/api/2/issue/REL-1: Issue does not exist",
			wantUnwrap: ErrNotFound,
		},
		{
			name:       "with request ID",
			err:        &APIError{Service: "Jira", StatusCode: 502, Message: "Bad Gateway", Endpoint: "/rest/api/2/search", RequestID: "abc123"},
			wantMsg:    "Jira API error (502) at /rest/api/2/search [abc123]: Bad Gateway",
			wantUnwrap: ErrServerError,
		},
		{
			name:       "unauthorized",
			err:        &APIError{Service: "Jira", StatusCode: 401, Message: "Unauthorized", Endpoint: "/rest/api/2/search"},
			wantMsg:    "Jira API error (401) at /rest/api/2/search: Unauthorized",
			wantUnwrap: ErrUnauthorized,
		},
		{
			name:       "forbidden",
			err:        &APIError{Service: "Jira", StatusCode: 403, Message: "Forbidden", Endpoint: "/rest/api/2/issue/REL-1/transitions"},
			wantMsg:    "Jira API error (403) at /rest/api/2/issue/REL-1/transitions: Forbidden",
			wantUnwrap: ErrForbidden,
		},
		{
			name:       "bad request",
			err:        &APIError{Service: "Jira", StatusCode: 400, Message: "Invalid JQL", Endpoint: "/rest/api/2/search"},
			wantMsg:    "Jira API error (400) at /rest/api/2/search: Invalid JQL",
			wantUnwrap: ErrBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, tt.wantUnwrap) {
				t.Errorf("errors.Is(%v) = false", tt.wantUnwrap)
			}
		})
	}
}

func TestRateLimitError(t *testing.T) {
	err := &RateLimitError{Service: "Jira", RetryAfter: 30 * time.Second}
	if got, want := err.Error(), "Jira rate limit exceeded, retry after 30s"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !IsRateLimited(err) {
		t.Error("IsRateLimited() = false")
	}
	if got, want := (&RateLimitError{Service: "Jira"}).Error(), "Jira rate limit exceeded"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limited", ErrRateLimited, true},
		{"server error", ErrServerError, true},
		{"5xx API error", &APIError{StatusCode: 503}, true},
		{"wrapped 5xx", fmt.Errorf("search: %w", &APIError{StatusCode: 500}), true},
		{"not found", ErrNotFound, false},
		{"4xx API error", &APIError{StatusCode: 400}, false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(ClientConfig{
		BaseURL:      srv.URL,
		ServiceName:  "test",
		MaxRetries:   2,
		RetryWait:    time.Millisecond,
		RetryWaitMax: 5 * time.Millisecond,
	})
}

func TestClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Path != "/items" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"name": "widget"})
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{
		BaseURL:       srv.URL,
		ServiceName:   "test",
		BeforeRequest: func(req *http.Request) { req.Header.Set("Authorization", "Bearer secret") },
	})

	var got struct {
		Name string `json:"name"`
	}
	if err := c.Get(context.Background(), "/items", &got); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "widget" {
		t.Errorf("Name = %q, want widget", got.Name)
	}
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	if err := newTestClient(srv).Get(context.Background(), "/", nil); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestClient_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	err := newTestClient(srv).Get(context.Background(), "/", nil)
	if !IsRateLimited(err) {
		t.Fatalf("error = %v, want rate limit", err)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3 (1 + 2 retries)", calls.Load())
	}
}

func TestClient_RetryAfterReplacesBackOff(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{
		BaseURL:      srv.URL,
		ServiceName:  "test",
		MaxRetries:   2,
		RetryWait:    10 * time.Second,
		RetryWaitMax: 20 * time.Second,
	})

	start := time.Now()
	if err := c.Get(context.Background(), "/", nil); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	elapsed := time.Since(start)
	if elapsed < time.Second || elapsed > 4*time.Second {
		t.Errorf("waited %v, want about the 1s Retry-After and no policy delay on top", elapsed)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

func TestRetryAfterBackOff(t *testing.T) {
	b := &retryAfterBackOff{BackOff: backoff.NewConstantBackOff(5 * time.Second)}

	if got := b.NextBackOff(); got != 5*time.Second {
		t.Errorf("NextBackOff() without hint = %v, want 5s", got)
	}
	b.hint = 2 * time.Second
	if got := b.NextBackOff(); got != 2*time.Second {
		t.Errorf("NextBackOff() with hint = %v, want 2s", got)
	}
	if got := b.NextBackOff(); got != 5*time.Second {
		t.Errorf("hint should be used once, got %v", got)
	}

	b.hint = time.Second
	b.Reset()
	if got := b.NextBackOff(); got != 5*time.Second {
		t.Errorf("Reset() should drop the hint, got %v", got)
	}

	stopped := &retryAfterBackOff{BackOff: &backoff.StopBackOff{}, hint: time.Second}
	if got := stopped.NextBackOff(); got != backoff.Stop {
		t.Errorf("NextBackOff() = %v, want Stop once the policy gives up", got)
	}
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"no such thing"}`))
	}))
	defer srv.Close()

	err := newTestClient(srv).Post(context.Background(), "/things", map[string]int{"n": 1}, nil)
	if !IsNotFound(err) {
		t.Fatalf("error = %v, want not found", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "no such thing" {
		t.Errorf("error = %#v, want message from body", err)
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}

func TestClient_CustomErrorParser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`bad`))
	}))
	defer srv.Close()

	sentinel := errors.New("parsed")
	c := NewClient(ClientConfig{
		BaseURL: srv.URL,
		ParseError: func(resp *http.Response, body []byte, endpoint string) error {
			return fmt.Errorf("%w: %s %s", sentinel, endpoint, body)
		},
	})

	err := c.Get(context.Background(), "/x", nil)
	if !errors.Is(err, sentinel) {
		t.Fatalf("error = %v, want custom parser error", err)
	}
}

func TestClient_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := newTestClient(srv).Get(ctx, "/", nil); err == nil {
		t.Fatal("Get() with canceled context should fail")
	}
}

func TestPageIterator(t *testing.T) {
	pages := [][]int{{1, 2}, {}, {3}, {4, 5}}
	var fetched []int
	fetch := func(ctx context.Context, page int) ([]int, bool, error) {
		fetched = append(fetched, page)
		return pages[page], page < len(pages)-1, nil
	}

	t.Run("take all", func(t *testing.T) {
		fetched = nil
		got, err := NewPageIterator(fetch).Take(context.Background(), 0)
		if err != nil {
			t.Fatalf("Take() error = %v", err)
		}
		if fmt.Sprint(got) != "[1 2 3 4 5]" {
			t.Errorf("Take() = %v", got)
		}
	})

	t.Run("take stops early", func(t *testing.T) {
		fetched = nil
		got, err := NewPageIterator(fetch).Take(context.Background(), 3)
		if err != nil {
			t.Fatalf("Take() error = %v", err)
		}
		if fmt.Sprint(got) != "[1 2 3]" {
			t.Errorf("Take() = %v", got)
		}
		if len(fetched) != 3 {
			t.Errorf("fetched pages %v, want 0..2 only", fetched)
		}
	})

	t.Run("error is sticky", func(t *testing.T) {
		boom := errors.New("boom")
		calls := 0
		it := NewPageIterator(func(ctx context.Context, page int) ([]int, bool, error) {
			calls++
			return nil, false, boom
		})
		if _, _, err := it.Next(context.Background()); !errors.Is(err, boom) {
			t.Fatalf("Next() error = %v", err)
		}
		if _, _, err := it.Next(context.Background()); !errors.Is(err, boom) {
			t.Fatalf("second Next() error = %v", err)
		}
		if calls != 1 {
			t.Errorf("fetch calls = %d, want 1", calls)
		}
	})
}
