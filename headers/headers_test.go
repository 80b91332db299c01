// headers/headers_test.go
package headers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/classowl/go-openclass/mocklogger"
	"github.com/classowl/go-openclass/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSetXAuthorization(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)

	SetXAuthorization(req, "test-token")

	assert.Equal(t, "test-token", req.Header.Get("X-Authorization"), "token should be sent without a scheme prefix")
}

func TestSetStandardHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "http://example.com", nil)

	SetContentType(req, "application/json")
	SetAccept(req, "application/json")
	SetUserAgent(req)

	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Equal(t, version.GetUserAgentHeader(), req.Header.Get("User-Agent"))
}

func TestSetCustomHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	req.Header.Set("Accept", "text/plain")

	SetCustomHeaders(req, http.Header{"Accept": {"application/json"}, "X-Trace": {"a", "b"}})

	assert.Equal(t, []string{"application/json"}, req.Header.Values("Accept"))
	assert.Equal(t, []string{"a", "b"}, req.Header.Values("X-Trace"))
}

func TestRedactHeaders(t *testing.T) {
	h := http.Header{"X-Authorization": {"secret"}, "Accept": {"application/json"}}

	redacted := RedactHeaders(h, true)
	assert.Equal(t, []string{"REDACTED"}, redacted["X-Authorization"])
	assert.Equal(t, []string{"application/json"}, redacted["Accept"])
	assert.Equal(t, "secret", h.Get("X-Authorization"), "source headers must not be modified")

	clear := RedactHeaders(h, false)
	assert.Equal(t, []string{"secret"}, clear["X-Authorization"])
}

func TestRedactQuery(t *testing.T) {
	q := url.Values{"apiKey": {"key"}, "limit": {"10"}}

	redacted := RedactQuery(q, true)

	assert.Equal(t, "REDACTED", redacted.Get("apiKey"))
	assert.Equal(t, "10", redacted.Get("limit"))
	assert.Equal(t, "key", q.Get("apiKey"))
}

func TestCheckDeprecationHeader(t *testing.T) {
	resp := &http.Response{
		Header:  http.Header{"Deprecation": {"Sun, 01 Jan 2023 00:00:00 GMT"}},
		Request: httptest.NewRequest(http.MethodGet, "http://example.com/v1/campus/courseroles", nil),
	}
	mockLog := mocklogger.NewMockLogger()
	mockLog.On("Warn", "API endpoint is deprecated", mock.Anything).Once()

	CheckDeprecationHeader(resp, mockLog)

	mockLog.AssertExpectations(t)

	quiet := mocklogger.NewMockLogger()
	CheckDeprecationHeader(&http.Response{Header: http.Header{}}, quiet)
	quiet.AssertNotCalled(t, "Warn", mock.Anything, mock.Anything)
}
