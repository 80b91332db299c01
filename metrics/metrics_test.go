package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ObserveRequest("GET", "200", 20*time.Millisecond)
	m.ObserveRequest("GET", "200", 30*time.Millisecond)
	m.ObserveRequest("GET", "401", 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "401")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestDuration))
}

func TestAuthCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.IncLogin(Outcome(nil))
	m.IncRefresh(Outcome(errors.New("boom")))
	m.IncRefresh(Outcome(nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoginsTotal.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RefreshesTotal.WithLabelValues(OutcomeFailure)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RefreshesTotal.WithLabelValues(OutcomeSuccess)))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "openclass_auth_logins_total")
	assert.Contains(t, names, "openclass_auth_refreshes_total")
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRequest("GET", "200", time.Millisecond)
		m.IncLogin(OutcomeSuccess)
		m.IncRefresh(OutcomeFailure)
	})
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg)
	assert.Panics(t, func() { NewMetrics(reg) })
}
