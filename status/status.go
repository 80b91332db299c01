// status.go
// This package provides utility functions for categorizing HTTP status codes.
package status

import (
	"fmt"
	"net/http"
)

// IsSuccess reports whether the status code is in the 2xx range.
func IsSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

// IsUnauthorized reports whether the server rejected the auth token.
func IsUnauthorized(statusCode int) bool {
	return statusCode == http.StatusUnauthorized
}

// IsRedirectStatusCode checks if the provided HTTP status code is one of the redirect codes
// (301, 302, 303, 307, 308).
func IsRedirectStatusCode(statusCode int) bool {
	switch statusCode {
	case http.StatusMovedPermanently,
		http.StatusFound,
		http.StatusSeeOther,
		http.StatusTemporaryRedirect,
		http.StatusPermanentRedirect:
		return true
	default:
		return false
	}
}

// IsPermanentRedirect checks if the provided HTTP status code is one of the permanent redirect codes.
func IsPermanentRedirect(statusCode int) bool {
	switch statusCode {
	case http.StatusMovedPermanently,
		http.StatusPermanentRedirect:
		return true
	default:
		return false
	}
}

// TranslateStatusCode provides a human-readable message for HTTP status codes.
func TranslateStatusCode(resp *http.Response) string {
	if resp == nil {
		return "No status code received, possible network or connection error."
	}

	messages := map[int]string{
		http.StatusOK:                  "Request successful.",
		http.StatusCreated:             "Request to create or update resource successful.",
		http.StatusAccepted:            "The request was accepted for processing, but the processing has not completed.",
		http.StatusNoContent:           "Request successful. No content to send for this request.",
		http.StatusBadRequest:          "Bad request. Verify the syntax of the request.",
		http.StatusUnauthorized:        "Authentication failed. Verify the credentials being used for the request.",
		http.StatusForbidden:           "Invalid permissions. Verify the account has the proper permissions for the resource.",
		http.StatusNotFound:            "Resource not found. Verify the URL path is correct.",
		http.StatusMethodNotAllowed:    "Method not allowed. The method specified is not allowed for the resource.",
		http.StatusConflict:            "Conflict. The request could not be processed because of conflict in the request.",
		http.StatusGone:                "Gone. The resource requested is no longer available and will not be available again.",
		http.StatusUnprocessableEntity: "Unprocessable entity. The server understands the content type and syntax of the request but was unable to process the contained instructions.",
		http.StatusTooManyRequests:     "Too many requests. The user has sent too many requests in a given amount of time.",
		http.StatusInternalServerError: "Internal server error. The server encountered an unexpected condition that prevented it from fulfilling the request.",
		http.StatusBadGateway:          "Bad gateway. The server received an invalid response from the upstream server while trying to fulfill the request.",
		http.StatusServiceUnavailable:  "Service unavailable. The server is currently unable to handle the request due to temporary overloading or maintenance.",
		http.StatusGatewayTimeout:      "Gateway timeout. The server did not receive a timely response from the upstream server.",
	}

	if message, exists := messages[resp.StatusCode]; exists {
		return message
	}
	return fmt.Sprintf("Unknown status code: %d", resp.StatusCode)
}
