package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_RecordsSimulations(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewService(reg)

	s.IncMatchesSimulated("home")
	s.IncMatchesSimulated("home")
	s.IncMatchesSimulated("draw")
	s.IncShootouts()
	s.AddForecastIterations(250)
	s.IncCacheLookup(true)
	s.IncCacheLookup(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(s.MatchesSimulated.WithLabelValues("home")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.MatchesSimulated.WithLabelValues("draw")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.Shootouts))
	assert.Equal(t, 250.0, testutil.ToFloat64(s.ForecastIterations))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.CacheLookups.WithLabelValues("hit")))
}

func TestMetricsHandler_ExposesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewService(reg)
	s.ObserveHTTPRequest("GET", "/healthz", 200, 0.01)

	rec := httptest.NewRecorder()
	NewMetricsHandler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `match_engine_http_requests_total{method="GET",route="/healthz",status="200"} 1`))
}

func TestMock_Counts(t *testing.T) {
	m := NewMock()
	m.IncMatchesSimulated("away")
	m.IncCacheLookup(false)
	m.ObserveSimulationDuration("match", 0.1)

	assert.Equal(t, 1, m.MatchesSimulated())
	assert.Equal(t, 1, m.Outcome("away"))
	hits, misses := m.CacheLookups()
	assert.Equal(t, 0, hits)
	assert.Equal(t, 1, misses)
	assert.Equal(t, 1, m.DurationsObserved("match"))
}
