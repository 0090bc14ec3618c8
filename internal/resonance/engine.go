package resonance

import "time"

// Engine observes ecosystem moments and derives patterns, couplings,
// harmonic feedback, and synthesis suggestions from them.
//
// The engine is not safe for concurrent use. Callers that share an
// engine across goroutines must serialize access externally; the
// observer service does exactly that.
type Engine struct {
	cfg Config

	log           *observationLog
	patterns      map[string]*Pattern // keyed by concept
	patternOrder  []string
	couplings     map[string]*Coupling // keyed by "source->target"
	couplingOrder []string
	harmonics     []HarmonicFeedback

	// now is the clock. Tests replace it to make snapshots reproducible.
	now func() time.Time
}

// New creates an engine with the given tuning. Unset numeric fields
// fall back to defaults; see Config.
func New(cfg Config) *Engine {
	cfg = cfg.withDefaults()
	return &Engine{
		cfg:       cfg,
		log:       newObservationLog(cfg.MaxObservations),
		patterns:  make(map[string]*Pattern),
		couplings: make(map[string]*Coupling),
		now:       time.Now,
	}
}

// Config returns the engine's effective tuning.
func (e *Engine) Config() Config {
	return e.cfg
}

// AddObservation records a moment and re-runs the full analysis
// pipeline: pattern detection over the whole log, coupling analysis
// over adjacent moments, and (when enabled) harmonic amplification.
//
// Moments are accepted as-is. Out-of-range scores, empty concept lists,
// and unknown sources degrade analysis quality rather than erroring.
func (e *Engine) AddObservation(m Moment) {
	e.log.append(m)

	e.detectPatterns()
	e.analyzeCouplings()

	if e.cfg.EnableAutoAmplification {
		e.detectHarmonics()
	}
}

// Moments returns every stored moment in insertion order.
func (e *Engine) Moments() []Moment {
	return copyMoments(e.log.all())
}

// Patterns returns every detected pattern in emergence order.
func (e *Engine) Patterns() []Pattern {
	out := make([]Pattern, 0, len(e.patternOrder))
	for _, concept := range e.patternOrder {
		out = append(out, copyPattern(e.patterns[concept]))
	}
	return out
}

// Couplings returns every coupling in creation order.
func (e *Engine) Couplings() []Coupling {
	out := make([]Coupling, 0, len(e.couplingOrder))
	for _, id := range e.couplingOrder {
		out = append(out, copyCoupling(e.couplings[id]))
	}
	return out
}

// Harmonics returns the recorded harmonic feedback history, most
// recent last.
func (e *Engine) Harmonics() []HarmonicFeedback {
	out := make([]HarmonicFeedback, len(e.harmonics))
	copy(out, e.harmonics)
	return out
}

// Reset clears all observations, patterns, couplings, and harmonic
// history, returning the engine to its initial state.
func (e *Engine) Reset() {
	e.log.reset()
	e.patterns = make(map[string]*Pattern)
	e.patternOrder = nil
	e.couplings = make(map[string]*Coupling)
	e.couplingOrder = nil
	e.harmonics = nil
}

// nowMillis is the engine clock in epoch milliseconds.
func (e *Engine) nowMillis() int64 {
	return e.now().UnixMilli()
}

// clamp01 confines v to [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// scoreOrDefault reads an optional 0-1 score, treating absence as the
// neutral 0.5 and clamping out-of-range values.
func scoreOrDefault(score *float64) float64 {
	if score == nil {
		return 0.5
	}
	return clamp01(*score)
}

func copyStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func copyMoments(ms []Moment) []Moment {
	out := make([]Moment, len(ms))
	for i, m := range ms {
		m.Concepts = copyStrings(m.Concepts)
		out[i] = m
	}
	return out
}

func copyPattern(p *Pattern) Pattern {
	cp := *p
	cp.Concepts = copyStrings(p.Concepts)
	cp.Occurrences = copyMoments(p.Occurrences)
	cp.RelatedPatterns = copyStrings(p.RelatedPatterns)
	return cp
}

func copyCoupling(c *Coupling) Coupling {
	cc := *c
	cc.SharedConcepts = copyStrings(c.SharedConcepts)
	return cc
}
