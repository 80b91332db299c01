// headers/headers.go
package headers

import (
	"net/http"
	"net/url"

	"github.com/classowl/go-openclass/headers/redact"
	"github.com/classowl/go-openclass/logger"
	"github.com/classowl/go-openclass/version"
	"go.uber.org/zap"
)

const (
	// XAuthorization carries the bare auth token on every resource request.
	XAuthorization = "X-Authorization"
	// APIKeyParam is the query parameter carrying the application API key.
	APIKeyParam = "apiKey"
)

// SetXAuthorization sets the X-Authorization header. The API expects the bare token, no scheme prefix.
func SetXAuthorization(req *http.Request, token string) {
	req.Header.Set(XAuthorization, token)
}

// SetContentType sets the Content-Type header for the request.
func SetContentType(req *http.Request, contentType string) {
	req.Header.Set("Content-Type", contentType)
}

// SetAccept sets the Accept header for the request.
func SetAccept(req *http.Request, acceptHeader string) {
	req.Header.Set("Accept", acceptHeader)
}

// SetUserAgent sets the User-Agent header for the request.
func SetUserAgent(req *http.Request) {
	req.Header.Set("User-Agent", version.GetUserAgentHeader())
}

// SetCustomHeaders copies caller-supplied headers onto the request, replacing existing values.
func SetCustomHeaders(req *http.Request, custom http.Header) {
	for name, values := range custom {
		req.Header.Del(name)
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
}

// RedactHeaders returns a copy of h suitable for logging.
func RedactHeaders(h http.Header, hideSensitiveData bool) map[string][]string {
	out := make(map[string][]string, len(h))
	for name, values := range h {
		redacted := make([]string, len(values))
		for i, v := range values {
			redacted[i] = redact.RedactSensitiveHeaderData(hideSensitiveData, name, v)
		}
		out[name] = redacted
	}
	return out
}

// RedactQuery returns a copy of q suitable for logging.
func RedactQuery(q url.Values, hideSensitiveData bool) url.Values {
	out := make(url.Values, len(q))
	for name, values := range q {
		for _, v := range values {
			out.Add(name, redact.RedactSensitiveHeaderData(hideSensitiveData, name, v))
		}
	}
	return out
}

// CheckDeprecationHeader checks the response headers for the Deprecation header and logs a warning if present.
func CheckDeprecationHeader(resp *http.Response, log logger.Logger) {
	deprecationHeader := resp.Header.Get("Deprecation")
	if deprecationHeader != "" {
		endpoint := ""
		if resp.Request != nil {
			endpoint = resp.Request.URL.Path
		}
		log.Warn("API endpoint is deprecated",
			zap.String("date", deprecationHeader),
			zap.String("endpoint", endpoint),
		)
	}
}
