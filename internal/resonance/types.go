package resonance

// Source identifies the upstream system a moment came from. The set is
// open; unrecognized sources participate in coupling analysis like any
// other.
type Source string

const (
	// SourceCreative is the generative/meditation system.
	SourceCreative Source = "creative"
	// SourceConsult is the critique/consultation system.
	SourceConsult Source = "consult"
	// SourceBridge is the cross-system connector.
	SourceBridge Source = "bridge"
	// SourceDreamWeaver is the synthesis system.
	SourceDreamWeaver Source = "dream-weaver"
	// SourceExternal marks moments originating outside the ecosystem.
	SourceExternal Source = "external"
)

// MomentKind classifies the event a moment records. Like Source, the
// set is open.
type MomentKind string

const (
	// KindMeditation is a generative exploration event.
	KindMeditation MomentKind = "meditation"
	// KindInsight is a realization or connection event.
	KindInsight MomentKind = "insight"
	// KindCritique is an evaluation or challenge event.
	KindCritique MomentKind = "critique"
	// KindWeave is a synthesis event combining prior work.
	KindWeave MomentKind = "weave"
	// KindObservation is a neutral monitoring event.
	KindObservation MomentKind = "observation"
	// KindUnknown is used when the event defies classification.
	KindUnknown MomentKind = "unknown"
)

// CouplingType describes how two sources relate.
type CouplingType string

const (
	// CouplingSequential marks a natural follow-up between event kinds.
	CouplingSequential CouplingType = "sequential"
	// CouplingFeedback marks a tight loop (under five seconds apart).
	CouplingFeedback CouplingType = "feedback"
	// CouplingLateral marks parallel activity within one source.
	CouplingLateral CouplingType = "lateral"
	// CouplingHierarchical marks activity at different abstraction levels.
	CouplingHierarchical CouplingType = "hierarchical"
)

// Action is a synthesis step the engine can suggest.
type Action string

const (
	// ActionMeditate suggests feeding recent critique back into generation.
	ActionMeditate Action = "meditate"
	// ActionConsult suggests seeking critique on recent generative work.
	ActionConsult Action = "consult"
	// ActionWeave suggests synthesizing; offered when the system resonates.
	ActionWeave Action = "weave"
	// ActionObserve suggests continuing to watch without intervening.
	ActionObserve Action = "observe"
	// ActionRest suggests pausing; reserved for future heuristics.
	ActionRest Action = "rest"
)

// Moment is a single observed event in the ecosystem. Moments are
// immutable once recorded.
type Moment struct {
	// ID is the caller-supplied identifier for this moment.
	ID string `json:"id"`
	// Timestamp is the event time in epoch milliseconds.
	Timestamp int64 `json:"timestamp"`
	// Source tags which system produced the moment.
	Source Source `json:"source"`
	// Type classifies the event.
	Type MomentKind `json:"type"`
	// Concepts are the themes present in this moment.
	Concepts []string `json:"concepts"`
	// Novelty scores how new the moment is (0-1). Nil means unscored;
	// aggregation treats unscored moments as 0.5.
	Novelty *float64 `json:"novelty,omitempty"`
	// Relevance scores how important the moment is (0-1). Nil means unscored.
	Relevance *float64 `json:"relevance,omitempty"`
	// Metadata carries arbitrary caller context. Never interpreted.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Pattern is a recurring concept detected across moments.
type Pattern struct {
	// ID is the stable identifier, derived from the concept.
	ID string `json:"id"`
	// Name is the display name, "<concept> Resonance".
	Name string `json:"name"`
	// Concepts the pattern is built from. Currently always one.
	Concepts []string `json:"concepts"`
	// Occurrences are the moments contributing to this pattern.
	Occurrences []Moment `json:"occurrences"`
	// Frequency is how many moments carry the concept.
	Frequency int `json:"frequency"`
	// Strength scores the pattern (0-1); frequency-derived, then
	// amplified by harmonic feedback.
	Strength float64 `json:"strength"`
	// EmergenceTime is the timestamp of the first contributing moment.
	EmergenceTime int64 `json:"emergence_time"`
	// RelatedPatterns lists patterns this one harmonizes with.
	RelatedPatterns []string `json:"related_patterns"`
}

// Coupling records an observed connection between two sources.
type Coupling struct {
	// SourceID is the source tag of the earlier moment.
	SourceID Source `json:"source_id"`
	// TargetID is the source tag of the later moment.
	TargetID Source `json:"target_id"`
	// Strength scores the coupling (0-1).
	Strength float64 `json:"strength"`
	// Type classifies the relationship.
	Type CouplingType `json:"type"`
	// SharedConcepts accumulates every concept seen on both sides.
	SharedConcepts []string `json:"shared_concepts"`
	// LastActive is the timestamp of the most recent reinforcing moment.
	LastActive int64 `json:"last_active"`
}

// HarmonicFeedback records one instance of two patterns strengthening
// each other.
type HarmonicFeedback struct {
	// Pattern1ID and Pattern2ID identify the amplifying pair.
	Pattern1ID string `json:"pattern1_id"`
	Pattern2ID string `json:"pattern2_id"`
	// AmplificationFactor is the computed mutual boost.
	AmplificationFactor float64 `json:"amplification_factor"`
	// ResonanceFrequency is 1/(common occurrences + 1).
	ResonanceFrequency float64 `json:"resonance_frequency"`
}

// EcosystemState is a point-in-time snapshot of everything the engine
// has derived. Computing it never mutates the engine.
type EcosystemState struct {
	// Observations are the moments inside the coherence window.
	Observations []Moment `json:"observations"`
	// Patterns is every detected pattern, in emergence order.
	Patterns []Pattern `json:"patterns"`
	// Couplings is every coupling, in creation order.
	Couplings []Coupling `json:"couplings"`
	// TotalCoherence is the harmony score (0-1).
	TotalCoherence float64 `json:"total_coherence"`
	// IsResonant reports whether the system is in harmonic amplification.
	IsResonant bool `json:"is_resonant"`
	// DominantConcepts are the five highest-scoring recent concepts.
	DominantConcepts []string `json:"dominant_concepts"`
	// EmergentIntentions are names of strong patterns (at most three).
	EmergentIntentions []string `json:"emergent_intentions"`
	// ObservedAt is when the snapshot was taken, epoch milliseconds.
	ObservedAt int64 `json:"observed_at"`
}

// Suggestion is a recommended next synthesis step.
type Suggestion struct {
	// ID identifies this suggestion.
	ID string `json:"id"`
	// Reason explains the recommendation in terms of emergent intentions.
	Reason string `json:"reason"`
	// TargetConcepts are the dominant concepts the action should address.
	TargetConcepts []string `json:"target_concepts"`
	// SuggestedAction is the recommended step.
	SuggestedAction Action `json:"suggested_action"`
	// Confidence mirrors the snapshot coherence (0-1).
	Confidence float64 `json:"confidence"`
	// BasedOnPatterns lists the pattern IDs behind the suggestion.
	BasedOnPatterns []string `json:"based_on_patterns"`
}

// Recommendation bundles a state snapshot with the suggestion derived
// from it, for callers that act on both.
type Recommendation struct {
	// State is the snapshot the suggestion was computed from.
	State EcosystemState `json:"state"`
	// Suggestion may be nil when the system lacks emergent intentions.
	Suggestion *Suggestion `json:"suggestion,omitempty"`
	// ShouldWeave is true when the suggestion is to weave, or when the
	// system is resonant with coherence above 0.7.
	ShouldWeave bool `json:"should_weave"`
}
