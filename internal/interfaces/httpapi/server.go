package httpapi

import (
	"net/http"

	"github.com/riskibarqy/match-engine/internal/platform/logging"
	"github.com/riskibarqy/match-engine/internal/platform/metrics"
)

const maxRequestBodyBytes = 4 << 20

type RouterOptions struct {
	CORSAllowedOrigins []string
	// MetricsHandler serves GET /metrics when set.
	MetricsHandler http.Handler
	Metrics        metrics.Metrics
	Logger         *logging.Logger
}

func NewRouter(handler *Handler, opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, opts.MetricsHandler)
	registerMatchRoutes(mux, handler)
	registerSimulationRoutes(mux, handler)

	routeOf := func(r *http.Request) string {
		if _, pattern := mux.Handler(r); pattern != "" {
			return pattern
		}
		return "unmatched"
	}

	var h http.Handler = mux
	h = recoverPanic(logger, h)
	h = LimitBody(maxRequestBodyBytes, h)
	h = CORS(opts.CORSAllowedOrigins, h)
	h = RequestObservability(logger, opts.Metrics, routeOf, h)
	return RequestTracing(h)
}
