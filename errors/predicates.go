package errors

import (
	"context"
	"errors"
	"strings"

	rfhttp "github.com/randalmurphal/releaseflow/http"
)

// Substrings that identify remote failures whose cause only survives as text,
// as with SDK errors from go-github and go-gitlab.
var (
	authMarkers       = []string{"unauthenticated", "unauthorized", "bad credentials", "401"}
	permissionMarkers = []string{"forbidden", "403"}
	connectionMarkers = []string{
		"connection refused", "no such host", "network is unreachable", "dial tcp",
		"certificate", "x509", "timeout",
	}
)

// IsAuthError reports whether the tracker or forge rejected the credentials.
func IsAuthError(err error) bool {
	return matches(err, authMarkers, ErrNotAuthenticated, rfhttp.ErrUnauthorized)
}

// IsPermissionError reports whether the credentials lack access.
func IsPermissionError(err error) bool {
	return matches(err, permissionMarkers, ErrPermissionDenied, rfhttp.ErrForbidden)
}

// IsConnectionError reports whether the remote could not be reached.
func IsConnectionError(err error) bool {
	return matches(err, connectionMarkers, ErrConnectionFailed, context.DeadlineExceeded)
}

func matches(err error, markers []string, targets ...error) bool {
	if err == nil {
		return false
	}
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	msg := strings.ToLower(err.Error())
	for _, m := range markers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}
