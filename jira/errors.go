package jira

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"

	rfhttp "github.com/randalmurphal/releaseflow/http"
)

// Configuration errors.
var (
	ErrConfigURLRequired       = errors.New("jira url is required")
	ErrConfigProjectRequired   = errors.New("jira project is required")
	ErrConfigAuthTypeRequired  = errors.New("jira auth type is required")
	ErrConfigAuthTypeInvalid   = errors.New("jira auth type must be api_token, basic, or pat")
	ErrConfigAPITokenAuth      = errors.New("api_token auth requires email and token")
	ErrConfigBasicAuth         = errors.New("basic auth requires username and password")
	ErrConfigPATAuth           = errors.New("pat auth requires token")
	ErrConfigAPIVersionInvalid = errors.New("api_version must be v2 or v3")
)

// Issue errors.
var (
	ErrIssueKeyInvalid    = errors.New("invalid issue key format")
	ErrTransitionNotFound = errors.New("transition not found for issue")
)

// APIError is a Jira error response. It wraps the shared rfhttp.APIError, so
// the http package sentinels and predicates apply to it.
type APIError struct {
	*rfhttp.APIError

	ErrorMessages []string          // top-level "errorMessages"
	Errors        map[string]string // per-field "errors"
}

func (e *APIError) Error() string {
	if detail := e.detail(); detail != "" {
		return fmt.Sprintf("jira api error (%d): %s", e.StatusCode, detail)
	}
	if e.RequestID != "" {
		return fmt.Sprintf("jira api error (%d) at %s [%s]", e.StatusCode, e.Endpoint, e.RequestID)
	}
	return fmt.Sprintf("jira api error (%d) at %s", e.StatusCode, e.Endpoint)
}

func (e *APIError) Unwrap() error { return e.APIError }

// detail is the first message Jira gave, preferring top-level messages and
// then the alphabetically first field error.
func (e *APIError) detail() string {
	if len(e.ErrorMessages) > 0 {
		return e.ErrorMessages[0]
	}
	fields := make([]string, 0, len(e.Errors))
	for f := range e.Errors {
		fields = append(fields, f)
	}
	if len(fields) == 0 {
		return ""
	}
	sort.Strings(fields)
	return fields[0] + ": " + e.Errors[fields[0]]
}

// parseAPIError decodes Jira's {errorMessages, errors} body. It satisfies
// rfhttp.ErrorParser.
func parseAPIError(resp *http.Response, body []byte, endpoint string) error {
	var payload struct {
		ErrorMessages []string          `json:"errorMessages"`
		Errors        map[string]string `json:"errors"`
	}
	if json.Unmarshal(body, &payload) != nil {
		payload.ErrorMessages = []string{http.StatusText(resp.StatusCode)}
	}

	apiErr := &APIError{
		APIError: &rfhttp.APIError{
			Service:    "Jira",
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			RequestID:  resp.Header.Get("X-Request-Id"),
		},
		ErrorMessages: payload.ErrorMessages,
		Errors:        payload.Errors,
	}
	apiErr.Message = apiErr.detail()
	return apiErr
}
