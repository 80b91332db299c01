// errors.go
// This package defines the two failure kinds surfaced by the client: authentication failures
// (login, refresh, a repeated 401) and non-recoverable request failures (transport, non-2xx, decode).
package errors

import (
	goerrors "errors"
	"fmt"
	"net/http"
)

// Auth operations reported in AuthError.Op.
const (
	OpLogin   = "login"
	OpRefresh = "refresh"
	OpRequest = "request"
)

// AuthError reports a failure to obtain or use authentication tokens.
type AuthError struct {
	Op         string // login, refresh or request
	StatusCode int    // HTTP status, 0 when no response was received
	Body       string // raw response body, if any
	Err        error  // underlying cause
}

func (e *AuthError) Error() string {
	msg := fmt.Sprintf("openclass auth %s failed", e.Op)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s: status %d %s", msg, e.StatusCode, http.StatusText(e.StatusCode))
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// RequestError reports a request that could not be completed or whose response could not be used.
type RequestError struct {
	Method     string
	URL        string
	StatusCode int    // HTTP status, 0 when no response was received
	Body       string // raw response body, if any
	Err        error  // underlying cause: transport error, decode error or *response.APIError
}

func (e *RequestError) Error() string {
	msg := fmt.Sprintf("openclass request %s %s failed", e.Method, e.URL)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s: status %d", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsAuthError reports whether any error in err's chain is an *AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return goerrors.As(err, &authErr)
}

// IsRequestError reports whether any error in err's chain is a *RequestError.
func IsRequestError(err error) bool {
	var reqErr *RequestError
	return goerrors.As(err, &reqErr)
}
