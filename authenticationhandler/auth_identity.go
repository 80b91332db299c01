// authenticationhandler/auth_identity.go
package authenticationhandler

import (
	"context"
	"encoding/json"
	goerrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apierrors "github.com/classowl/go-openclass/errors"
	"github.com/classowl/go-openclass/headers"
	"github.com/classowl/go-openclass/metrics"
	"github.com/classowl/go-openclass/response"
	"github.com/classowl/go-openclass/status"
	"go.uber.org/zap"
)

// ErrMissingTokens is wrapped by an AuthError when a successful identity response lacks a token.
var ErrMissingTokens = goerrors.New("identity response did not contain both tokens")

// identityResponse covers both login and refresh payloads. Login returns data.authToken,
// refresh returns data.authnToken.
type identityResponse struct {
	Data struct {
		AuthToken    string `json:"authToken"`
		AuthnToken   string `json:"authnToken"`
		RefreshToken string `json:"refreshToken"`
	} `json:"data"`
}

func (r identityResponse) tokenPair() TokenPair {
	authToken := r.Data.AuthnToken
	if authToken == "" {
		authToken = r.Data.AuthToken
	}
	return TokenPair{AuthToken: authToken, RefreshToken: r.Data.RefreshToken}
}

// Login mints a new TokenPair from the admin credentials. It does not install the pair.
func (h *AuthTokenHandler) Login(ctx context.Context) (pair TokenPair, err error) {
	defer func() { h.Metrics.IncLogin(metrics.Outcome(err)) }()
	start := time.Now()

	query := url.Values{headers.APIKeyParam: {h.Credentials.APIKey}}
	endpoint := h.BaseURL + LoginPath + "?" + query.Encode()

	h.Logger.Debug("Attempting to obtain token for user", zap.String("email", h.Credentials.AdminEmail))

	form := url.Values{
		"email":    {h.Credentials.AdminEmail},
		"password": {h.Credentials.AdminPassword},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return TokenPair{}, &apierrors.AuthError{Op: apierrors.OpLogin, Err: err}
	}
	headers.SetContentType(req, "application/x-www-form-urlencoded")
	headers.SetAccept(req, "application/json")
	headers.SetUserAgent(req)

	pair, err = h.identityCall(req, apierrors.OpLogin, h.loggableURL(LoginPath, query))
	if err != nil {
		return TokenPair{}, err
	}

	h.Logger.LogTokenRefresh("token_login", "credentials", time.Since(start))
	return pair, nil
}

// Refresh exchanges refreshToken for a new TokenPair. It does not install the pair.
func (h *AuthTokenHandler) Refresh(ctx context.Context, refreshToken string) (pair TokenPair, err error) {
	defer func() { h.Metrics.IncRefresh(metrics.Outcome(err)) }()
	start := time.Now()

	query := url.Values{
		headers.APIKeyParam: {h.Credentials.APIKey},
		"refreshToken":      {refreshToken},
	}
	endpoint := h.BaseURL + RefreshPath + "?" + query.Encode()

	h.Logger.Debug("Attempting to refresh token", zap.String("url", h.loggableURL(RefreshPath, query)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return TokenPair{}, &apierrors.AuthError{Op: apierrors.OpRefresh, Err: err}
	}
	headers.SetAccept(req, "application/json")
	headers.SetUserAgent(req)

	pair, err = h.identityCall(req, apierrors.OpRefresh, h.loggableURL(RefreshPath, query))
	if err != nil {
		return TokenPair{}, err
	}

	h.Logger.LogTokenRefresh("token_refresh", "refresh_token", time.Since(start))
	return pair, nil
}

// identityCall sends an identity request and extracts the token pair from a 2xx body.
func (h *AuthTokenHandler) identityCall(req *http.Request, op string, logURL string) (TokenPair, error) {
	resp, err := h.HTTPClient.Do(req)
	if err != nil {
		h.Logger.LogError("token_"+op+"_request_error", req.Method, logURL, 0, "", err, "")
		return TokenPair{}, &apierrors.AuthError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return TokenPair{}, &apierrors.AuthError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}

	if !status.IsSuccess(resp.StatusCode) {
		apiErr := response.HandleAPIErrorResponse(resp, body, h.Logger)
		h.Logger.LogError("token_"+op+"_failed", req.Method, logURL, resp.StatusCode, resp.Status, apiErr, string(body))
		return TokenPair{}, &apierrors.AuthError{Op: op, StatusCode: resp.StatusCode, Body: string(body), Err: apiErr}
	}

	var decoded identityResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return TokenPair{}, &apierrors.AuthError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Err:        fmt.Errorf("decoding identity response: %w", err),
		}
	}

	pair := decoded.tokenPair()
	if !pair.Complete() {
		return TokenPair{}, &apierrors.AuthError{Op: op, StatusCode: resp.StatusCode, Body: string(body), Err: ErrMissingTokens}
	}
	return pair, nil
}

// loggableURL renders an identity URL with credentials redacted according to HideSensitiveData.
func (h *AuthTokenHandler) loggableURL(path string, query url.Values) string {
	return h.BaseURL + path + "?" + headers.RedactQuery(query, h.HideSensitiveData).Encode()
}
