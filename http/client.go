package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultMaxRetries is the default number of retry attempts.
const DefaultMaxRetries = 3

// DefaultRetryWait is the default initial wait between retries.
const DefaultRetryWait = 1 * time.Second

// DefaultRetryWaitMax caps the wait between retries.
const DefaultRetryWaitMax = 30 * time.Second

// ErrorParser turns a failed response into an error. The body has already
// been read.
type ErrorParser func(resp *http.Response, body []byte, endpoint string) error

// Client provides common HTTP functionality for tracker clients.
type Client struct {
	client       *http.Client
	baseURL      string
	serviceName  string
	maxRetries   int
	retryWait    time.Duration
	retryWaitMax time.Duration
	parseError   ErrorParser

	// beforeRequest is called before each request (for auth headers, etc.)
	beforeRequest func(req *http.Request)
}

// ClientConfig holds configuration for Client.
type ClientConfig struct {
	Client        *http.Client
	BaseURL       string
	ServiceName   string
	MaxRetries    int
	RetryWait     time.Duration
	RetryWaitMax  time.Duration
	BeforeRequest func(req *http.Request)
	ParseError    ErrorParser // Defaults to producing an *APIError
}

// NewClient creates a new Client with the given configuration.
func NewClient(cfg ClientConfig) *Client {
	c := &Client{
		client:        cfg.Client,
		baseURL:       cfg.BaseURL,
		serviceName:   cfg.ServiceName,
		maxRetries:    cfg.MaxRetries,
		retryWait:     cfg.RetryWait,
		retryWaitMax:  cfg.RetryWaitMax,
		beforeRequest: cfg.BeforeRequest,
		parseError:    cfg.ParseError,
	}

	if c.client == nil {
		c.client = &http.Client{Timeout: DefaultTimeout}
	}
	if c.maxRetries <= 0 {
		c.maxRetries = DefaultMaxRetries
	}
	if c.retryWait <= 0 {
		c.retryWait = DefaultRetryWait
	}
	if c.retryWaitMax <= 0 {
		c.retryWaitMax = DefaultRetryWaitMax
	}
	if c.parseError == nil {
		c.parseError = c.defaultParseError
	}

	return c
}

// newBackOff returns a fresh policy; BackOff implementations are stateful.
func (c *Client) newBackOff() *retryAfterBackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.retryWait
	bo.MaxInterval = c.retryWaitMax
	bo.MaxElapsedTime = 0
	return &retryAfterBackOff{BackOff: bo}
}

// retryAfterBackOff waits for the server's Retry-After, when the last
// response carried one, in place of the policy's next interval. The policy
// still advances so later intervals keep growing.
type retryAfterBackOff struct {
	backoff.BackOff
	hint time.Duration
}

func (b *retryAfterBackOff) NextBackOff() time.Duration {
	next := b.BackOff.NextBackOff()
	if next == backoff.Stop {
		return backoff.Stop
	}
	if b.hint > 0 {
		next, b.hint = b.hint, 0
	}
	return next
}

func (b *retryAfterBackOff) Reset() {
	b.hint = 0
	b.BackOff.Reset()
}

// Request executes an HTTP request, retrying network failures, rate limits
// and server errors. Other responses, including 4xx, are returned as-is.
func (c *Client) Request(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		payload = data
	}

	url := c.baseURL + path

	var resp *http.Response
	policy := c.newBackOff()
	operation := func() error {
		var bodyReader io.Reader
		if payload != nil {
			bodyReader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("create request: %w", err))
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		if c.beforeRequest != nil {
			c.beforeRequest(req)
		}

		r, err := c.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return fmt.Errorf("%s request failed: %w", c.serviceName, err)
		}

		if shouldRetry(r) {
			wait := retryAfter(r)
			r.Body.Close()
			policy.hint = wait
			if r.StatusCode == http.StatusTooManyRequests {
				return &RateLimitError{Service: c.serviceName, RetryAfter: wait}
			}
			return &APIError{Service: c.serviceName, StatusCode: r.StatusCode, Endpoint: path, Message: http.StatusText(r.StatusCode)}
		}

		resp = r
		return nil
	}

	notify := func(err error, wait time.Duration) {
		slog.Debug("retrying request", "service", c.serviceName, "path", path, "wait", wait, "error", err)
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(c.maxRetries)), ctx)
	if err := backoff.RetryNotify(operation, bo, notify); err != nil {
		return nil, err
	}
	return resp, nil
}

// Get performs a GET request and decodes the response into result.
func (c *Client) Get(ctx context.Context, path string, result any) error {
	resp, err := c.Request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return c.handleResponse(resp, path, result)
}

// Post performs a POST request and decodes the response into result.
func (c *Client) Post(ctx context.Context, path string, body, result any) error {
	resp, err := c.Request(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return c.handleResponse(resp, path, result)
}

// handleResponse checks status and decodes the response body.
func (c *Client) handleResponse(resp *http.Response, path string, result any) error {
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return c.parseError(resp, body, path)
	}

	if result == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode %s response: %w", c.serviceName, err)
	}

	return nil
}

// defaultParseError parses an error response into an APIError.
func (c *Client) defaultParseError(resp *http.Response, body []byte, path string) error {
	apiErr := &APIError{
		Service:    c.serviceName,
		StatusCode: resp.StatusCode,
		Endpoint:   path,
		RequestID:  resp.Header.Get("X-Request-Id"),
	}

	var errResp struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &errResp) == nil {
		if errResp.Message != "" {
			apiErr.Message = errResp.Message
		} else if errResp.Error != "" {
			apiErr.Message = errResp.Error
		}
	}

	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	return apiErr
}

// retryAfter reads a Retry-After header given in seconds.
func retryAfter(resp *http.Response) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return 0
}

// shouldRetry reports whether a response is a rate limit or server error.
func shouldRetry(resp *http.Response) bool {
	return resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
}
