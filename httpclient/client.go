// httpclient/client.go
/* The `httpclient` package provides the authenticated request dispatcher for the OpenClass API.
Every request carries the live auth token in X-Authorization and the application API key as the
apiKey query parameter. A 401 triggers one token refresh and one retry; a second 401 is surfaced
as an authentication error. The main `Client` structure encapsulates the configuration, the auth
token handler and an embedded standard HTTP client. */
package httpclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/classowl/go-openclass/authenticationhandler"
	"github.com/classowl/go-openclass/cookiejar"
	"github.com/classowl/go-openclass/logger"
	"github.com/classowl/go-openclass/metrics"
	"github.com/classowl/go-openclass/proxy"
	"github.com/classowl/go-openclass/redirecthandler"
	"go.uber.org/zap"
)

// Master struct/object
type Client struct {
	// Private
	config ClientConfig
	http   *http.Client
	store  authenticationhandler.Store

	// Exported
	Logger  logger.Logger
	Auth    *authenticationhandler.AuthTokenHandler
	Metrics *metrics.Metrics
}

// Options/Variables for Client
type ClientConfig struct {
	// API
	BaseURL string

	// Auth
	AdminEmail    string
	AdminPassword string
	APIKey        string
	AuthToken     string // Cached session; login is skipped when both tokens are set.
	RefreshToken  string

	// Log
	LogLevel          string
	LogOutputFormat   string // Output format of the logs. Use "json" or "human-readable".
	HideSensitiveData bool

	// Transport
	ProxyURL        string
	ProxyUsername   string
	ProxyPassword   string
	EnableCookieJar bool

	// Misc
	CustomTimeout   JSONDuration
	FollowRedirects bool
	MaxRedirects    int
}

// ClientOption customises a Client during BuildClient.
type ClientOption func(*Client)

// WithHTTPClient replaces the internally built http.Client. Timeout, redirect, proxy and cookie
// settings from the configuration are not applied to it.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) { c.http = httpClient }
}

// WithLogger replaces the logger built from LogLevel and LogOutputFormat.
func WithLogger(log logger.Logger) ClientOption {
	return func(c *Client) { c.Logger = log }
}

// WithTokenStore persists the session so later clients can skip login.
func WithTokenStore(store authenticationhandler.Store) ClientOption {
	return func(c *Client) { c.store = store }
}

// WithMetrics records request, login and refresh metrics.
func WithMetrics(m *metrics.Metrics) ClientOption {
	return func(c *Client) { c.Metrics = m }
}

// BuildClient creates a new API client with the provided configuration and establishes its
// session: cached tokens from the configuration, then the token store, then a credential login.
func BuildClient(ctx context.Context, config ClientConfig, opts ...ClientOption) (*Client, error) {
	SetDefaultValuesClientConfig(&config)

	if err := validateClientConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	client := &Client{config: config}
	for _, opt := range opts {
		opt(client)
	}

	//region Logging
	if client.Logger == nil {
		parsedLogLevel := logger.ParseLogLevelFromString(config.LogLevel)
		client.Logger = logger.BuildLogger(parsedLogLevel, config.LogOutputFormat)
	}
	log := client.Logger
	//endregion

	//region HTTP
	if client.http == nil {
		client.http = &http.Client{
			Timeout: config.CustomTimeout.Duration(),
		}
		if err := redirecthandler.SetupRedirectHandler(client.http, config.FollowRedirects, config.MaxRedirects, log); err != nil {
			return nil, err
		}
		if err := proxy.InitializeProxy(client.http, config.ProxyURL, config.ProxyUsername, config.ProxyPassword, log); err != nil {
			return nil, err
		}
		if err := cookiejar.SetupCookieJar(client.http, config.EnableCookieJar, log); err != nil {
			return nil, err
		}
	}
	//endregion

	//region Auth
	client.Auth = authenticationhandler.NewAuthTokenHandler(
		log,
		config.BaseURL,
		authenticationhandler.Credentials{
			AdminEmail:    config.AdminEmail,
			AdminPassword: config.AdminPassword,
			APIKey:        config.APIKey,
		},
		client.http,
		config.HideSensitiveData,
	)
	client.Auth.Store = client.store
	client.Auth.Metrics = client.Metrics

	cached := authenticationhandler.TokenPair{AuthToken: config.AuthToken, RefreshToken: config.RefreshToken}
	if err := client.Auth.Initialize(ctx, cached); err != nil {
		return nil, err
	}
	//endregion

	log.Debug("New API client initialized",
		zap.String("Base URL", config.BaseURL),
		zap.String("Logging Level", config.LogLevel),
		zap.String("Log Encoding Format", config.LogOutputFormat),
		zap.Bool("Hide Sensitive Data In Logs", config.HideSensitiveData),
		zap.Bool("Token Store Enabled", client.store != nil),
		zap.Bool("Proxy Enabled", config.ProxyURL != ""),
		zap.Bool("Cookie Jar Enabled", config.EnableCookieJar),
		zap.Bool("Follow Redirects", config.FollowRedirects),
		zap.Int("Max Redirects", config.MaxRedirects),
		zap.Duration("Custom Timeout", config.CustomTimeout.Duration()),
	)

	return client, nil
}

// BaseURL returns the API root requests are resolved against.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// Tokens returns a snapshot of the live session.
func (c *Client) Tokens() authenticationhandler.TokenPair {
	return c.Auth.Tokens()
}
