package metrics

import "sync"

// Mock records observations for assertions. It is safe for concurrent use.
type Mock struct {
	mu                 sync.Mutex
	outcomes           map[string]int
	shootouts          int
	goals              []int
	durations          map[string]int
	forecastIterations int
	cacheHits          int
	cacheMisses        int
	httpRequests       int
}

var _ Metrics = (*Mock)(nil)

func NewMock() *Mock {
	return &Mock{
		outcomes:  make(map[string]int),
		durations: make(map[string]int),
	}
}

func (m *Mock) IncMatchesSimulated(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes[outcome]++
}

func (m *Mock) IncShootouts() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shootouts++
}

func (m *Mock) ObserveGoals(total int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.goals = append(m.goals, total)
}

func (m *Mock) ObserveSimulationDuration(operation string, _ float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durations[operation]++
}

func (m *Mock) AddForecastIterations(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.forecastIterations += n
}

func (m *Mock) IncCacheLookup(hit bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if hit {
		m.cacheHits++
	} else {
		m.cacheMisses++
	}
}

func (m *Mock) ObserveHTTPRequest(string, string, int, float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.httpRequests++
}

// MatchesSimulated returns the total across outcomes.
func (m *Mock) MatchesSimulated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.outcomes {
		total += n
	}
	return total
}

func (m *Mock) Outcome(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.outcomes[outcome]
}

func (m *Mock) Shootouts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shootouts
}

func (m *Mock) DurationsObserved(operation string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.durations[operation]
}

func (m *Mock) ForecastIterations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.forecastIterations
}

func (m *Mock) CacheLookups() (hits, misses int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cacheHits, m.cacheMisses
}

func (m *Mock) HTTPRequests() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.httpRequests
}
