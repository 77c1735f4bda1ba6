// Package observability starts the process-wide telemetry exporters and
// profilers selected by config.
package observability

import (
	"context"
	"errors"
	"net/http"

	"github.com/riskibarqy/match-engine/internal/config"
	"github.com/riskibarqy/match-engine/internal/platform/logging"
)

// Stack holds whatever Start managed to bring up.
type Stack struct {
	logger       *logging.Logger
	stopTracing  func(context.Context) error
	stopProfiler func() error
	pprof        *http.Server
}

// Start brings up tracing, continuous profiling and the pprof server. On
// error everything already started is shut down again.
func Start(cfg config.Config, logger *logging.Logger) (*Stack, error) {
	if logger == nil {
		logger = logging.Default()
	}
	s := &Stack{logger: logger}

	var err error
	if s.stopTracing, err = initUptrace(cfg, logger); err != nil {
		return nil, err
	}
	if s.stopProfiler, err = initPyroscope(cfg, logger); err != nil {
		_ = s.Shutdown(context.Background())
		return nil, err
	}
	if s.pprof, err = startPprofServer(cfg, logger); err != nil {
		_ = s.Shutdown(context.Background())
		return nil, err
	}
	return s, nil
}

// Shutdown flushes exporters and stops servers, joining every failure.
func (s *Stack) Shutdown(ctx context.Context) error {
	var errs []error
	if s.pprof != nil {
		if err := s.pprof.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		} else {
			s.logger.InfoContext(ctx, "pprof server stopped")
		}
	}
	if s.stopProfiler != nil {
		if err := s.stopProfiler(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.stopTracing != nil {
		if err := s.stopTracing(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
