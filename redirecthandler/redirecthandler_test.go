// redirecthandler/redirecthandler_test.go
package redirecthandler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/classowl/go-openclass/mocklogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func mustRequest(t *testing.T, method, rawURL string) *http.Request {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	return &http.Request{Method: method, URL: u, Header: http.Header{}}
}

// TestRedirectHandler_SecureRequest verifies that auth headers are dropped when a redirect leaves the original host.
func TestRedirectHandler_SecureRequest(t *testing.T) {
	handler := NewRedirectHandler(mocklogger.NewPermissiveMockLogger(), 5)

	first := mustRequest(t, http.MethodGet, "https://api.openclasslabs.com/v1/campus/courseroles")
	next := mustRequest(t, http.MethodGet, "https://cdn.example.com/courseroles")
	next.Header.Set("X-Authorization", "token")
	next.Header.Set("Cookie", "session")
	next.Header.Set("Accept", "application/json")

	err := handler.checkRedirect(next, []*http.Request{first})

	require.NoError(t, err)
	assert.Empty(t, next.Header.Get("X-Authorization"))
	assert.Empty(t, next.Header.Get("Cookie"))
	assert.Equal(t, "application/json", next.Header.Get("Accept"))
}

func TestRedirectHandler_CrossHostStripsCredentialQuery(t *testing.T) {
	handler := NewRedirectHandler(mocklogger.NewPermissiveMockLogger(), 5)

	first := mustRequest(t, http.MethodGet, "https://api.openclasslabs.com/v1/identities/login/refresh?apiKey=k&refreshToken=r")
	next := mustRequest(t, http.MethodGet, "https://edge.example.com/refresh?apiKey=k&refreshToken=r&region=eu")

	require.NoError(t, handler.checkRedirect(next, []*http.Request{first}))
	assert.Equal(t, "region=eu", next.URL.RawQuery)
}

func TestRedirectHandler_SameHostKeepsHeaders(t *testing.T) {
	handler := NewRedirectHandler(mocklogger.NewPermissiveMockLogger(), 5)

	first := mustRequest(t, http.MethodGet, "https://api.openclasslabs.com/v1/campus/courseroles")
	next := mustRequest(t, http.MethodGet, "https://api.openclasslabs.com/v1/campus/courseroles/")
	next.Header.Set("X-Authorization", "token")

	next.URL.RawQuery = "apiKey=k"

	require.NoError(t, handler.checkRedirect(next, []*http.Request{first}))
	assert.Equal(t, "token", next.Header.Get("X-Authorization"))
	assert.Equal(t, "apiKey=k", next.URL.RawQuery)
}

// TestRedirectLoopDetection ensures that revisiting a URL already in the chain stops the redirect.
func TestRedirectLoopDetection(t *testing.T) {
	mockLogger := mocklogger.NewMockLogger()
	mockLogger.On("Warn", "Redirect loop detected", mock.Anything).Once()
	handler := NewRedirectHandler(mockLogger, 5)

	a := mustRequest(t, http.MethodGet, "http://example.com/a")
	b := mustRequest(t, http.MethodGet, "http://example.com/b")
	again := mustRequest(t, http.MethodGet, "http://example.com/a")

	err := handler.checkRedirect(again, []*http.Request{a, b})

	var loopErr *RedirectLoopError
	require.ErrorAs(t, err, &loopErr)
	assert.Equal(t, "http://example.com/a", loopErr.URL)
	mockLogger.AssertExpectations(t)
}

// TestMaxRedirectsReached checks that the handler stops redirects after reaching the maximum limit.
func TestMaxRedirectsReached(t *testing.T) {
	mockLogger := mocklogger.NewMockLogger()
	mockLogger.On("Warn", "Maximum redirects reached", mock.Anything).Once()
	handler := NewRedirectHandler(mockLogger, 1)

	req := mustRequest(t, http.MethodGet, "http://example.com/next")
	via := []*http.Request{mustRequest(t, http.MethodGet, "http://example.com/start")}

	err := handler.checkRedirect(req, via)

	var maxErr *MaxRedirectsError
	require.ErrorAs(t, err, &maxErr)
	assert.Equal(t, 1, maxErr.MaxRedirects)
	mockLogger.AssertExpectations(t)
}

func TestNonIdempotentRedirectNotFollowed(t *testing.T) {
	handler := NewRedirectHandler(mocklogger.NewPermissiveMockLogger(), 5)

	req := mustRequest(t, http.MethodPost, "http://example.com/next")
	err := handler.checkRedirect(req, []*http.Request{mustRequest(t, http.MethodPost, "http://example.com/start")})

	assert.ErrorIs(t, err, http.ErrUseLastResponse)
}

func TestSetupRedirectHandler(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer target.Close()
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target.URL+"/moved", http.StatusFound)
	}))
	defer origin.Close()

	t.Run("Follow", func(t *testing.T) {
		client := &http.Client{}
		require.NoError(t, SetupRedirectHandler(client, true, 3, mocklogger.NewPermissiveMockLogger()))

		resp, err := client.Get(origin.URL)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Disabled", func(t *testing.T) {
		client := &http.Client{}
		require.NoError(t, SetupRedirectHandler(client, false, 0, mocklogger.NewPermissiveMockLogger()))

		resp, err := client.Get(origin.URL)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusFound, resp.StatusCode)
	})

	t.Run("Invalid max", func(t *testing.T) {
		client := &http.Client{}
		err := SetupRedirectHandler(client, true, 0, mocklogger.NewPermissiveMockLogger())
		assert.Error(t, err)
	})
}
