package jira

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	rfhttp "github.com/randalmurphal/releaseflow/http"
)

// DefaultPageSize is the number of issues requested per search page.
const DefaultPageSize = 50

// Client provides access to the parts of the Jira REST API releaseflow uses.
type Client struct {
	cfg  *Config
	http *rfhttp.Client
}

// ClientOption configures the client.
type ClientOption func(*rfhttp.ClientConfig)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(hc *rfhttp.ClientConfig) {
		hc.Client = httpClient
	}
}

// NewClient creates a new Jira client.
func NewClient(cfg *Config, opts ...ClientOption) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{cfg: cfg}

	hc := rfhttp.ClientConfig{
		BaseURL:       strings.TrimSuffix(cfg.URL, "/"),
		ServiceName:   "jira",
		MaxRetries:    cfg.RateLimit.MaxRetries,
		RetryWait:     cfg.RateLimit.RetryWaitMin,
		RetryWaitMax:  cfg.RateLimit.RetryWaitMax,
		BeforeRequest: c.setAuth,
		ParseError:    parseAPIError,
	}
	if cfg.HTTP.Timeout > 0 {
		hc.Client = &http.Client{Timeout: cfg.HTTP.Timeout}
	}
	for _, opt := range opts {
		opt(&hc)
	}

	c.http = rfhttp.NewClient(hc)
	return c, nil
}

// Project returns the configured project key.
func (c *Client) Project() string {
	return c.cfg.Project
}

// SearchIssues returns one page of issues matching jql.
func (c *Client) SearchIssues(ctx context.Context, jql string, startAt, maxResults int) (*SearchResponse, error) {
	if maxResults <= 0 {
		maxResults = DefaultPageSize
	}

	req := &SearchRequest{
		JQL:        jql,
		StartAt:    startAt,
		MaxResults: maxResults,
		Fields:     []string{"summary", "status"},
	}

	var result SearchResponse
	if err := c.http.Post(ctx, c.apiPath("/search"), req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SearchAll walks every page of a JQL search.
func (c *Client) SearchAll(ctx context.Context, jql string) ([]Issue, error) {
	it := rfhttp.NewPageIterator(func(ctx context.Context, page int) ([]Issue, bool, error) {
		resp, err := c.SearchIssues(ctx, jql, page*DefaultPageSize, DefaultPageSize)
		if err != nil {
			return nil, false, err
		}
		more := resp.StartAt+len(resp.Issues) < resp.Total && len(resp.Issues) > 0
		return resp.Issues, more, nil
	})
	return it.Take(ctx, 0)
}

// GetTransitions gets available transitions for an issue.
func (c *Client) GetTransitions(ctx context.Context, key string) ([]Transition, error) {
	if !ValidateIssueKey(key) {
		return nil, ErrIssueKeyInvalid
	}

	var result TransitionsResponse
	if err := c.http.Get(ctx, c.apiPath("/issue/"+key+"/transitions"), &result); err != nil {
		return nil, err
	}
	return result.Transitions, nil
}

// TransitionIssue applies the transition with the given ID.
func (c *Client) TransitionIssue(ctx context.Context, key, transitionID string) error {
	if !ValidateIssueKey(key) {
		return ErrIssueKeyInvalid
	}

	body := &TransitionRequest{Transition: TransitionRef{ID: transitionID}}
	return c.http.Post(ctx, c.apiPath("/issue/"+key+"/transitions"), body, nil)
}

// TransitionIssueByName finds and executes a transition by its exact name.
func (c *Client) TransitionIssueByName(ctx context.Context, key, transitionName string) error {
	transitions, err := c.GetTransitions(ctx, key)
	if err != nil {
		return err
	}

	for _, t := range transitions {
		if t.Name == transitionName {
			return c.TransitionIssue(ctx, key, t.ID)
		}
	}

	return fmt.Errorf("%w: %q on %s", ErrTransitionNotFound, transitionName, key)
}

// apiPath returns the full API path for the given endpoint.
func (c *Client) apiPath(endpoint string) string {
	return fmt.Sprintf("/rest/api/%s%s", strings.TrimPrefix(string(c.cfg.apiVersion()), "v"), endpoint)
}

// setAuth sets the authentication header based on config.
func (c *Client) setAuth(req *http.Request) {
	switch c.cfg.Auth.Type {
	case AuthAPIToken:
		req.Header.Set("Authorization", "Basic "+basicCredentials(c.cfg.Auth.Email, c.cfg.Auth.Token))
	case AuthBasic:
		req.Header.Set("Authorization", "Basic "+basicCredentials(c.cfg.Auth.Username, c.cfg.Auth.Password))
	case AuthPAT:
		req.Header.Set("Authorization", "Bearer "+c.cfg.Auth.Token)
	}
}

func basicCredentials(user, secret string) string {
	return base64.StdEncoding.EncodeToString([]byte(user + ":" + secret))
}
