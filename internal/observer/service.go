// Package observer wraps a resonance engine for shared use. The engine
// itself is single-threaded; this service is the one place that locks
// around it, so MCP tools and HTTP handlers can call it concurrently.
package observer

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/resonanced/internal/resonance"
)

// maxDetectedPatterns caps the pattern report returned by
// EmergentPatterns.
const maxDetectedPatterns = 10

// RecordAck summarizes the engine's reaction to a recorded moment.
type RecordAck struct {
	// MomentID echoes the recorded moment's identifier.
	MomentID string `json:"moment_id"`
	// Timestamp echoes the recorded moment's timestamp.
	Timestamp int64 `json:"timestamp"`
	// PatternCount is the number of patterns after the insertion.
	PatternCount int `json:"pattern_count"`
	// CouplingCount is the number of couplings after the insertion.
	CouplingCount int `json:"coupling_count"`
}

// HarmonyReport is the resonance check exposed to transports.
type HarmonyReport struct {
	// IsResonant reports whether the system is in harmonic amplification.
	IsResonant bool `json:"is_resonant"`
	// TotalCoherence is the snapshot coherence (0-1).
	TotalCoherence float64 `json:"total_coherence"`
	// PatternCount is the number of detected patterns.
	PatternCount int `json:"pattern_count"`
	// HarmonicCount is the size of the harmonic feedback history.
	HarmonicCount int `json:"harmonic_count"`
	// EmergentIntentions are the strong pattern names.
	EmergentIntentions []string `json:"emergent_intentions"`
	// DominantConcepts are the highest-scoring recent concepts.
	DominantConcepts []string `json:"dominant_concepts"`
}

// Service serializes access to one resonance engine and logs the
// operations flowing through it.
type Service struct {
	mu     sync.Mutex
	engine *resonance.Engine
	logger *zap.Logger
}

// NewService creates an observer service around an engine.
func NewService(engine *resonance.Engine, logger *zap.Logger) (*Service, error) {
	if engine == nil {
		return nil, fmt.Errorf("engine cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		engine: engine,
		logger: logger.Named("observer"),
	}, nil
}

// Record feeds a moment into the engine and reports the resulting
// pattern and coupling counts.
func (s *Service) Record(ctx context.Context, m resonance.Moment) RecordAck {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.engine.AddObservation(m)
	ack := RecordAck{
		MomentID:      m.ID,
		Timestamp:     m.Timestamp,
		PatternCount:  len(s.engine.Patterns()),
		CouplingCount: len(s.engine.Couplings()),
	}

	s.logger.Debug("moment recorded",
		zap.String("moment_id", m.ID),
		zap.String("source", string(m.Source)),
		zap.String("type", string(m.Type)),
		zap.Strings("concepts", m.Concepts),
		zap.Int("patterns", ack.PatternCount),
		zap.Int("couplings", ack.CouplingCount))

	return ack
}

// State returns the current ecosystem snapshot.
func (s *Service) State(ctx context.Context) resonance.EcosystemState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.State()
}

// EmergentPatterns returns detected patterns with at least minFrequency
// occurrences, strongest first, capped at ten. A minFrequency of zero
// or less falls back to the engine's configured threshold.
func (s *Service) EmergentPatterns(ctx context.Context, minFrequency int) []resonance.Pattern {
	s.mu.Lock()
	defer s.mu.Unlock()

	if minFrequency <= 0 {
		minFrequency = s.engine.Config().PatternMinFrequency
	}

	var patterns []resonance.Pattern
	for _, p := range s.engine.Patterns() {
		if p.Frequency >= minFrequency {
			patterns = append(patterns, p)
		}
	}

	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].Strength > patterns[j].Strength
	})

	if len(patterns) > maxDetectedPatterns {
		patterns = patterns[:maxDetectedPatterns]
	}
	return patterns
}

// CouplingGraph renders the active couplings as text.
func (s *Service) CouplingGraph(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.VisualizeCouplings()
}

// Suggest returns the next synthesis suggestion, or nil when the system
// has no emergent intentions yet.
func (s *Service) Suggest(ctx context.Context) *resonance.Suggestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.SuggestNextSynthesis()
}

// Harmony reports whether the system resonates and the numbers behind
// the verdict.
func (s *Service) Harmony(ctx context.Context) HarmonyReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.engine.State()
	return HarmonyReport{
		IsResonant:         state.IsResonant,
		TotalCoherence:     state.TotalCoherence,
		PatternCount:       len(state.Patterns),
		HarmonicCount:      len(s.engine.Harmonics()),
		EmergentIntentions: state.EmergentIntentions,
		DominantConcepts:   state.DominantConcepts,
	}
}

// Recommend returns the combined snapshot, suggestion, and weave
// decision.
func (s *Service) Recommend(ctx context.Context) resonance.Recommendation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Recommendation()
}

// Reset clears the engine for a fresh session.
func (s *Service) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.engine.Reset()
	s.logger.Info("observations reset")
}
