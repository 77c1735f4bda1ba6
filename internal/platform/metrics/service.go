package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

type Service struct {
	MatchesSimulated   *prometheus.CounterVec
	Shootouts          prometheus.Counter
	GoalsPerMatch      prometheus.Histogram
	SimulationDuration *prometheus.HistogramVec
	ForecastIterations prometheus.Counter
	CacheLookups       *prometheus.CounterVec
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
}

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus collectors.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		MatchesSimulated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "match_engine_matches_simulated_total",
			Help: "Simulated matches by regulation outcome.",
		}, []string{"outcome"}),
		Shootouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "match_engine_shootouts_total",
			Help: "Matches decided by a penalty shootout.",
		}),
		GoalsPerMatch: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "match_engine_goals_per_match",
			Help:    "Total goals scored in regulation per simulated match.",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 6, 8, 10},
		}),
		SimulationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "match_engine_simulation_duration_seconds",
			Help:    "Duration of simulation operations.",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"operation"}),
		ForecastIterations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "match_engine_forecast_iterations_total",
			Help: "Matches simulated on behalf of forecasts.",
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "match_engine_cache_lookups_total",
			Help: "Match cache lookups by result.",
		}, []string{"result"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "match_engine_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "match_engine_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		s.MatchesSimulated,
		s.Shootouts,
		s.GoalsPerMatch,
		s.SimulationDuration,
		s.ForecastIterations,
		s.CacheLookups,
		s.HTTPRequests,
		s.HTTPDuration,
	)

	return s
}

func (s *Service) IncMatchesSimulated(outcome string) {
	s.MatchesSimulated.WithLabelValues(outcome).Inc()
}

func (s *Service) IncShootouts() {
	s.Shootouts.Inc()
}

func (s *Service) ObserveGoals(total int) {
	s.GoalsPerMatch.Observe(float64(total))
}

func (s *Service) ObserveSimulationDuration(operation string, seconds float64) {
	s.SimulationDuration.WithLabelValues(operation).Observe(seconds)
}

func (s *Service) AddForecastIterations(n int) {
	s.ForecastIterations.Add(float64(n))
}

func (s *Service) IncCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	s.CacheLookups.WithLabelValues(result).Inc()
}

func (s *Service) ObserveHTTPRequest(method, route string, status int, seconds float64) {
	s.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	s.HTTPDuration.WithLabelValues(method, route).Observe(seconds)
}
