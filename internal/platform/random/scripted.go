package random

// Scripted replays a fixed list of values, then repeats the last one.
// Tests use it to force specific branches of the simulation.
type Scripted struct {
	values []float64
	next   int
}

func NewScripted(values ...float64) *Scripted {
	if len(values) == 0 {
		values = []float64{0}
	}
	return &Scripted{values: values}
}

func (s *Scripted) Float64() float64 {
	if s.next >= len(s.values) {
		return s.values[len(s.values)-1]
	}
	v := s.values[s.next]
	s.next++
	return v
}

// Consumed reports how many scripted values have been drawn.
func (s *Scripted) Consumed() int {
	return s.next
}
