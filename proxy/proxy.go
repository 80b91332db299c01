// proxy.go

package proxy

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/classowl/go-openclass/logger"
	"go.uber.org/zap"
)

// InitializeProxy routes the client through proxyURL. Username and password, when both set,
// are sent as proxy basic auth. An empty proxyURL leaves the client untouched.
func InitializeProxy(httpClient *http.Client, proxyURL, proxyUsername, proxyPassword string, log logger.Logger) error {
	if proxyURL == "" {
		return nil
	}

	parsedProxyURL, err := ParseProxyURL(proxyURL)
	if err != nil {
		log.Error("Failed to parse proxy URL", zap.Error(err))
		return err
	}
	if proxyUsername != "" && proxyPassword != "" {
		parsedProxyURL.User = url.UserPassword(proxyUsername, proxyPassword)
	}

	transport, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		return errors.New("default transport is not an *http.Transport")
	}
	transport = transport.Clone()
	transport.Proxy = http.ProxyURL(parsedProxyURL)
	httpClient.Transport = transport

	log.Info("Proxy configured", zap.String("ProxyURL", parsedProxyURL.Redacted()))
	return nil
}

// ParseProxyURL accepts http, https and socks5 proxy URLs.
func ParseProxyURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy url %q: %w", raw, err)
	}
	switch u.Scheme {
	case "http", "https", "socks5":
	default:
		return nil, fmt.Errorf("invalid proxy url %q: unsupported scheme %q", raw, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid proxy url %q: missing host", raw)
	}
	return u, nil
}
