package resonance

// observationLog is a bounded, insertion-ordered moment log. When the
// bound is exceeded the oldest moments are dropped.
type observationLog struct {
	moments  []Moment
	capacity int
}

func newObservationLog(capacity int) *observationLog {
	return &observationLog{capacity: capacity}
}

// append records a moment, evicting from the front when over capacity.
func (l *observationLog) append(m Moment) {
	l.moments = append(l.moments, m)
	if len(l.moments) > l.capacity {
		l.moments = l.moments[len(l.moments)-l.capacity:]
	}
}

// all returns the log in insertion order. The returned slice is the
// log's own storage; callers must not mutate it.
func (l *observationLog) all() []Moment {
	return l.moments
}

// tail returns up to n of the most recent moments, oldest first.
func (l *observationLog) tail(n int) []Moment {
	if n >= len(l.moments) {
		return l.moments
	}
	return l.moments[len(l.moments)-n:]
}

func (l *observationLog) len() int {
	return len(l.moments)
}

// reset drops every stored moment.
func (l *observationLog) reset() {
	l.moments = nil
}
