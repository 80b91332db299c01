// redirecthandler/redirecthandler.go
package redirecthandler

import (
	"fmt"
	"net/http"

	"github.com/classowl/go-openclass/headers"
	"github.com/classowl/go-openclass/logger"
	"go.uber.org/zap"
)

// RedirectHandler is the CheckRedirect policy for the API client. Credentials travel both as
// the X-Authorization header and as the apiKey/refreshToken query parameters, so both are
// stripped when a redirect leaves the host the chain started on.
type RedirectHandler struct {
	Logger               logger.Logger
	MaxRedirects         int
	SensitiveHeaders     []string
	SensitiveQueryParams []string
}

func NewRedirectHandler(log logger.Logger, maxRedirects int) *RedirectHandler {
	return &RedirectHandler{
		Logger:               log,
		MaxRedirects:         maxRedirects,
		SensitiveHeaders:     []string{headers.XAuthorization, "Authorization", "Cookie"},
		SensitiveQueryParams: []string{headers.APIKeyParam, "refreshToken"},
	}
}

// WithRedirectHandling installs the policy on client.
func (r *RedirectHandler) WithRedirectHandling(client *http.Client) {
	client.CheckRedirect = r.checkRedirect
}

// checkRedirect runs before each hop. req already targets the Location of the previous
// response; via holds the requests made so far, oldest first.
func (r *RedirectHandler) checkRedirect(req *http.Request, via []*http.Request) error {
	// Course creation must not be replayed against another location.
	if req.Method == http.MethodPost || req.Method == http.MethodPatch {
		r.Logger.Warn("Redirect attempted on non-idempotent method, not following", zap.String("method", req.Method))
		return http.ErrUseLastResponse
	}

	if len(via) >= r.MaxRedirects {
		r.Logger.Warn("Maximum redirects reached", zap.Int("maxRedirects", r.MaxRedirects))
		return &MaxRedirectsError{MaxRedirects: r.MaxRedirects}
	}

	target := req.URL.String()
	for _, prev := range via {
		if prev.URL != nil && prev.URL.String() == target {
			r.Logger.Warn("Redirect loop detected", zap.String("url", target), zap.Int("redirectCount", len(via)))
			return &RedirectLoopError{URL: target}
		}
	}

	if len(via) > 0 && via[0].URL != nil && req.URL.Host != via[0].URL.Host {
		r.stripCredentials(req)
	}

	r.Logger.Debug("Following redirect", zap.String("host", req.URL.Host), zap.String("path", req.URL.Path), zap.Int("redirectCount", len(via)))
	return nil
}

// stripCredentials removes sensitive headers and query parameters from a request that is
// leaving the original host.
func (r *RedirectHandler) stripCredentials(req *http.Request) {
	for _, header := range r.SensitiveHeaders {
		if req.Header.Get(header) != "" {
			req.Header.Del(header)
			r.Logger.Debug("Removed sensitive header on cross-host redirect", zap.String("header", header))
		}
	}

	query := req.URL.Query()
	removed := false
	for _, param := range r.SensitiveQueryParams {
		if query.Has(param) {
			query.Del(param)
			removed = true
			r.Logger.Debug("Removed sensitive query parameter on cross-host redirect", zap.String("param", param))
		}
	}
	if removed {
		req.URL.RawQuery = query.Encode()
	}
}

// RedirectLoopError is returned when a redirect targets a URL already visited in the chain.
type RedirectLoopError struct {
	URL string
}

func (e *RedirectLoopError) Error() string {
	return fmt.Sprintf("redirect loop detected at %s", e.URL)
}

// MaxRedirectsError is returned when a chain exceeds MaxRedirects hops.
type MaxRedirectsError struct {
	MaxRedirects int
}

func (e *MaxRedirectsError) Error() string {
	return fmt.Sprintf("maximum redirects reached: %d", e.MaxRedirects)
}

// SetupRedirectHandler configures redirect handling on client. With followRedirects unset the
// client returns the 3xx response to the caller unchanged.
func SetupRedirectHandler(client *http.Client, followRedirects bool, maxRedirects int, log logger.Logger) error {
	if !followRedirects {
		client.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
		return nil
	}

	if maxRedirects < 1 {
		return log.Error("Invalid maxRedirects value", zap.Int("maxRedirects", maxRedirects))
	}

	NewRedirectHandler(log, maxRedirects).WithRedirectHandling(client)
	log.Debug("Redirect handling enabled", zap.Int("maxRedirects", maxRedirects))
	return nil
}
