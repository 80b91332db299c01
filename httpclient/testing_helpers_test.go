// httpclient/testing_helpers_test.go
package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/classowl/go-openclass/authenticationhandler"
	"github.com/classowl/go-openclass/logger"
	"github.com/stretchr/testify/require"
)

const (
	testAPIKey = "openclass_api_key"
	testEmail  = "sam@classowl.com"
)

// recordedRequest is what the fake API saw for one resource call.
type recordedRequest struct {
	Method string
	Path   string
	Query  map[string][]string
	Header http.Header
	Body   string
}

// fakeAPI serves the identity endpoints and a configurable resource handler.
type fakeAPI struct {
	*httptest.Server

	mu        sync.Mutex
	requests  []recordedRequest
	logins    int
	refreshes int

	// validToken is the auth token resources accept. Empty accepts any token.
	validToken string
	// refreshedToken is issued by the refresh endpoint.
	refreshedToken string
	refreshStatus  int
	resource       http.HandlerFunc
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{
		refreshedToken: "auth-2",
		refreshStatus:  http.StatusOK,
		resource: func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"data":{"ok":true}}`))
		},
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serveHTTP))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeAPI) serveHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case authenticationhandler.LoginPath:
		f.mu.Lock()
		f.logins++
		f.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"authToken":"auth-1","refreshToken":"refresh-1"}}`))
		return
	case authenticationhandler.RefreshPath:
		f.mu.Lock()
		f.refreshes++
		token, code := f.refreshedToken, f.refreshStatus
		f.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		if code == http.StatusOK {
			_, _ = w.Write([]byte(`{"data":{"authnToken":"` + token + `","refreshToken":"refresh-2"}}`))
		} else {
			_, _ = w.Write([]byte(`{"message":"refresh token expired"}`))
		}
		return
	}

	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
		Body:   string(body),
	})
	valid := f.validToken
	handler := f.resource
	f.mu.Unlock()

	if valid != "" && r.Header.Get("X-Authorization") != valid {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"token expired"}`))
		return
	}
	handler(w, r)
}

func (f *fakeAPI) recorded() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

func (f *fakeAPI) counts() (logins, refreshes int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.logins, f.refreshes
}

func (f *fakeAPI) config() ClientConfig {
	return ClientConfig{
		BaseURL:       f.URL,
		AdminEmail:    testEmail,
		AdminPassword: "password",
		APIKey:        testAPIKey,
		AuthToken:     "auth-1",
		RefreshToken:  "refresh-1",
		LogLevel:      "LogLevelNone",
	}
}

func (f *fakeAPI) client(t *testing.T, opts ...ClientOption) *Client {
	t.Helper()
	opts = append([]ClientOption{WithLogger(logger.NewNopLogger())}, opts...)
	c, err := BuildClient(context.Background(), f.config(), opts...)
	require.NoError(t, err)
	return c
}
