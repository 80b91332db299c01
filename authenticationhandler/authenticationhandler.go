// authenticationhandler/authenticationhandler.go

package authenticationhandler

import (
	"context"
	"net/http"
	"sync"

	"github.com/classowl/go-openclass/logger"
	"github.com/classowl/go-openclass/metrics"
)

// Identity endpoints, relative to the API base URL.
const (
	LoginPath   = "/v1/identities/login/basic"
	RefreshPath = "/v1/identities/login/refresh"
)

// AuthTokenHandler owns the admin credentials and the live TokenPair of one client.
// The pair is only replaced whole, under tokenLock.
type AuthTokenHandler struct {
	Credentials       Credentials      // Credentials holds the admin login and the application API key.
	BaseURL           string           // BaseURL is the API root the identity endpoints hang off.
	HTTPClient        *http.Client     // HTTPClient performs login and refresh calls.
	Logger            logger.Logger    // Logger provides structured logging capabilities for logging information, warnings, and errors.
	Store             Store            // Store optionally persists the pair between processes.
	Metrics           *metrics.Metrics // Metrics counts logins and refreshes; nil disables.
	HideSensitiveData bool

	tokenLock sync.Mutex
	tokens    TokenPair
}

// Credentials holds the values needed to mint a session. Immutable for the life of the client.
type Credentials struct {
	AdminEmail    string
	AdminPassword string
	APIKey        string
}

// TokenPair is the session issued by the identity service.
type TokenPair struct {
	AuthToken    string `json:"authToken"`
	RefreshToken string `json:"refreshToken"`
}

// Complete reports whether both tokens are present.
func (p TokenPair) Complete() bool {
	return p.AuthToken != "" && p.RefreshToken != ""
}

// Store persists a TokenPair between client instances.
type Store interface {
	// Load returns the stored pair. ok is false when nothing is stored.
	Load(ctx context.Context) (pair TokenPair, ok bool, err error)
	Save(ctx context.Context, pair TokenPair) error
	Clear(ctx context.Context) error
}

// NewAuthTokenHandler creates a new instance of AuthTokenHandler.
func NewAuthTokenHandler(log logger.Logger, baseURL string, credentials Credentials, httpClient *http.Client, hideSensitiveData bool) *AuthTokenHandler {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &AuthTokenHandler{
		Logger:            log,
		BaseURL:           baseURL,
		Credentials:       credentials,
		HTTPClient:        httpClient,
		HideSensitiveData: hideSensitiveData,
	}
}
