// cookiejar/cookiejar.go

/* The cookiejar package attaches an optional cookie jar to the client's http.Client, for
deployments where the API gateway pins sessions with cookies. It also renders response cookies
for debug logs with session-like values redacted. */

package cookiejar

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"github.com/classowl/go-openclass/headers/redact"
	"github.com/classowl/go-openclass/logger"
	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"
)

// sensitiveCookieFragments mark a cookie name as carrying session material.
var sensitiveCookieFragments = []string{"session", "token", "auth", "sid"}

// SetupCookieJar initializes the HTTP client with a cookie jar if enabled in the configuration.
func SetupCookieJar(client *http.Client, enableCookieJar bool, log logger.Logger) error {
	if !enableCookieJar {
		return nil
	}
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		log.Error("Failed to create cookie jar", zap.Error(err))
		return fmt.Errorf("setupCookieJar failed: %w", err)
	}
	client.Jar = jar
	return nil
}

// IsSensitiveCookie reports whether a cookie name looks like it holds session material.
func IsSensitiveCookie(name string) bool {
	lower := strings.ToLower(name)
	for _, fragment := range sensitiveCookieFragments {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}

// DescribeCookies renders cookies as name=value pairs. With hide set, sensitive values are
// replaced. The cookies themselves are not modified.
func DescribeCookies(cookies []*http.Cookie, hide bool) []string {
	out := make([]string, 0, len(cookies))
	for _, cookie := range cookies {
		value := cookie.Value
		if hide && IsSensitiveCookie(cookie.Name) {
			value = redact.Redacted
		}
		out = append(out, cookie.Name+"="+value)
	}
	return out
}
