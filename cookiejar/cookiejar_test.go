// cookiejar/cookiejar_test.go
package cookiejar

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/classowl/go-openclass/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeCookies(t *testing.T) {
	cookies := []*http.Cookie{
		{Name: "SessionID", Value: "sensitive-value-1"},
		{Name: "locale", Value: "en-GB"},
		{Name: "oc_auth", Value: "sensitive-value-2"},
	}

	assert.Equal(t,
		[]string{"SessionID=REDACTED", "locale=en-GB", "oc_auth=REDACTED"},
		DescribeCookies(cookies, true))
	assert.Equal(t,
		[]string{"SessionID=sensitive-value-1", "locale=en-GB", "oc_auth=sensitive-value-2"},
		DescribeCookies(cookies, false))
	assert.Equal(t, "sensitive-value-1", cookies[0].Value)
}

func TestSetupCookieJar(t *testing.T) {
	log := logger.NewNopLogger()

	disabled := &http.Client{}
	require.NoError(t, SetupCookieJar(disabled, false, log))
	assert.Nil(t, disabled.Jar)

	enabled := &http.Client{}
	require.NoError(t, SetupCookieJar(enabled, true, log))
	require.NotNil(t, enabled.Jar)
}

func TestCookieJarReplaysGatewayCookie(t *testing.T) {
	var (
		mu   sync.Mutex
		seen string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("gw_route"); err == nil {
			mu.Lock()
			seen = c.Value
			mu.Unlock()
		}
		http.SetCookie(w, &http.Cookie{Name: "gw_route", Value: "node-3", Path: "/"})
	}))
	defer srv.Close()

	client := srv.Client()
	require.NoError(t, SetupCookieJar(client, true, logger.NewNopLogger()))

	for i := 0; i < 2; i++ {
		resp, err := client.Get(srv.URL)
		require.NoError(t, err)
		resp.Body.Close()
	}
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "node-3", seen)
}
