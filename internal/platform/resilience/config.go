package resilience

import (
	"context"
	"errors"
	"time"
)

type BreakerConfig struct {
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenTrials   int
	// IsFailure decides which errors count against the breaker. Nil counts
	// every error except caller cancellation.
	IsFailure func(error) bool
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: 5,
		OpenTimeout:      15 * time.Second,
		HalfOpenTrials:   2,
	}
}

func normalize(cfg BreakerConfig) BreakerConfig {
	defaults := DefaultBreakerConfig()
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = defaults.FailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaults.OpenTimeout
	}
	if cfg.HalfOpenTrials < 1 {
		cfg.HalfOpenTrials = defaults.HalfOpenTrials
	}
	if cfg.IsFailure == nil {
		cfg.IsFailure = countsAsFailure
	}
	return cfg
}

func countsAsFailure(err error) bool {
	return err != nil && !errors.Is(err, context.Canceled)
}
