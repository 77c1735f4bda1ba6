// Package metrics exposes the service's Prometheus instrumentation behind
// a small interface so callers can swap in a mock.
package metrics

// Metrics defines the counters and histograms recorded by the service.
type Metrics interface {
	IncMatchesSimulated(outcome string)
	IncShootouts()
	ObserveGoals(total int)
	ObserveSimulationDuration(operation string, seconds float64)
	AddForecastIterations(n int)
	IncCacheLookup(hit bool)
	ObserveHTTPRequest(method, route string, status int, seconds float64)
}

// Nop discards every observation.
type Nop struct{}

var _ Metrics = Nop{}

func (Nop) IncMatchesSimulated(string)                      {}
func (Nop) IncShootouts()                                   {}
func (Nop) ObserveGoals(int)                                {}
func (Nop) ObserveSimulationDuration(string, float64)       {}
func (Nop) AddForecastIterations(int)                       {}
func (Nop) IncCacheLookup(bool)                             {}
func (Nop) ObserveHTTPRequest(string, string, int, float64) {}
