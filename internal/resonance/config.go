package resonance

import "time"

// Default tuning values, applied by New for unset numeric fields.
const (
	DefaultMaxObservations     = 1000
	DefaultPatternMinFrequency = 2
	DefaultCouplingThreshold   = 0.3
	DefaultCoherenceWindow     = 5 * time.Minute
)

// Fixed windows and limits of the resonance model. These are part of
// the analysis semantics rather than deployment tuning, so they are not
// configurable.
const (
	// recentCouplingWindowMs is how close two moments must be for a
	// coupling reinforcement to count at full weight, and how recently a
	// coupling must have fired to count as active for resonance.
	recentCouplingWindowMs = 60_000
	// feedbackWindowMs is the gap under which a coupling is a feedback loop.
	feedbackWindowMs = 5_000
	// harmonicWindowMs is the co-occurrence window for harmonic detection.
	harmonicWindowMs = 30_000
	// visualizationWindowMs bounds which couplings the graph rendering shows.
	visualizationWindowMs = 120_000
	// maxHarmonics bounds the harmonic feedback history.
	maxHarmonics = 100
	// maxDominantConcepts bounds the dominant concept list in a snapshot.
	maxDominantConcepts = 5
	// maxEmergentIntentions bounds the emergent intention list.
	maxEmergentIntentions = 3
	// maxSuggestionBasis bounds how many pattern IDs a suggestion cites.
	maxSuggestionBasis = 3
	// suggestionTail is how many trailing moments steer the suggested action.
	suggestionTail = 5
	// strengthDivisor converts occurrence counts into pattern strength.
	strengthDivisor = 10.0
)

// Config tunes a resonance engine. The zero value is usable: New fills
// unset numeric fields with defaults. Note that the zero value disables
// auto-amplification; start from DefaultConfig to get the usual
// behavior.
type Config struct {
	// MaxObservations bounds the observation log. Oldest moments are
	// evicted once the bound is exceeded.
	MaxObservations int `koanf:"max_observations" json:"max_observations"`
	// PatternMinFrequency is how many times a concept must occur before
	// it forms a pattern.
	PatternMinFrequency int `koanf:"pattern_min_frequency" json:"pattern_min_frequency"`
	// CouplingThreshold is the strength assigned to a newly discovered
	// coupling.
	CouplingThreshold float64 `koanf:"coupling_threshold" json:"coupling_threshold"`
	// CoherenceWindow is how far back state aggregation looks when
	// scoring coherence and dominant concepts.
	CoherenceWindow time.Duration `koanf:"coherence_window" json:"coherence_window"`
	// EnableAutoAmplification runs harmonic detection after every
	// insertion, letting co-occurring patterns strengthen each other.
	EnableAutoAmplification bool `koanf:"enable_auto_amplification" json:"enable_auto_amplification"`
}

// DefaultConfig returns the standard engine tuning.
func DefaultConfig() Config {
	return Config{
		MaxObservations:         DefaultMaxObservations,
		PatternMinFrequency:     DefaultPatternMinFrequency,
		CouplingThreshold:       DefaultCouplingThreshold,
		CoherenceWindow:         DefaultCoherenceWindow,
		EnableAutoAmplification: true,
	}
}

// withDefaults returns cfg with unset numeric fields replaced by
// defaults. Booleans are left alone.
func (cfg Config) withDefaults() Config {
	if cfg.MaxObservations <= 0 {
		cfg.MaxObservations = DefaultMaxObservations
	}
	if cfg.PatternMinFrequency <= 0 {
		cfg.PatternMinFrequency = DefaultPatternMinFrequency
	}
	if cfg.CouplingThreshold <= 0 {
		cfg.CouplingThreshold = DefaultCouplingThreshold
	}
	if cfg.CoherenceWindow <= 0 {
		cfg.CoherenceWindow = DefaultCoherenceWindow
	}
	return cfg
}
