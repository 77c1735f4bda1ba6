package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half_open"
)

// Breaker stops calling a failing dependency for OpenTimeout after
// FailureThreshold consecutive failures, then lets HalfOpenTrials calls
// through to decide whether to close again.
type Breaker struct {
	mu  sync.Mutex
	cfg BreakerConfig
	now func() time.Time

	state          State
	failures       int
	openedAt       time.Time
	trialsInFlight int
	trialsPassed   int
}

func NewBreaker(cfg BreakerConfig) *Breaker {
	return &Breaker{
		cfg:   normalize(cfg),
		now:   time.Now,
		state: StateClosed,
	}
}

// Execute runs fn unless the breaker is open, and records its outcome. A
// panic in fn counts as a failure and still propagates.
func (b *Breaker) Execute(fn func() error) error {
	if err := b.acquire(); err != nil {
		return err
	}

	completed := false
	defer func() {
		if !completed {
			b.release(true)
		}
	}()

	err := fn()
	completed = true
	b.release(b.cfg.IsFailure(err))
	return err
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen && b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout {
		return StateHalfOpen
	}
	return b.state
}

func (b *Breaker) acquire() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen {
		if b.now().Sub(b.openedAt) < b.cfg.OpenTimeout {
			return ErrCircuitOpen
		}
		b.state = StateHalfOpen
		b.trialsInFlight = 0
		b.trialsPassed = 0
	}
	if b.state == StateHalfOpen {
		if b.trialsInFlight >= b.cfg.HalfOpenTrials {
			return ErrCircuitOpen
		}
		b.trialsInFlight++
	}
	return nil
}

func (b *Breaker) release(failed bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		if !failed {
			b.failures = 0
			return
		}
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.trip()
		}
	case StateHalfOpen:
		if b.trialsInFlight > 0 {
			b.trialsInFlight--
		}
		if failed {
			b.trip()
			return
		}
		b.trialsPassed++
		if b.trialsPassed >= b.cfg.HalfOpenTrials && b.trialsInFlight == 0 {
			b.state = StateClosed
			b.failures = 0
			b.trialsPassed = 0
			b.openedAt = time.Time{}
		}
	case StateOpen:
		if failed {
			b.openedAt = b.now()
		}
	}
}

func (b *Breaker) trip() {
	b.state = StateOpen
	b.openedAt = b.now()
	b.trialsInFlight = 0
	b.trialsPassed = 0
}
