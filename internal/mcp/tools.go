package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fyrsmithlabs/resonanced/internal/ingest"
	"github.com/fyrsmithlabs/resonanced/internal/resonance"
)

// registerTools registers the observation tools with the server.
func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "observe_ecosystem_state",
		Description: "Get a snapshot of the current ecosystem state, including active patterns, couplings, and coherence metrics",
	}, s.handleObserveState)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "record_ecosystem_moment",
		Description: "Record a moment (event) from the ecosystem - a meditation, critique, insight, weave, or other observation",
	}, s.handleRecordMoment)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "detect_emergent_patterns",
		Description: "Analyze all observations to detect recurring patterns and emergent themes",
	}, s.handleDetectPatterns)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "visualize_coupling_graph",
		Description: "Generate a text visualization of how MCPs and concepts are coupled together",
	}, s.handleVisualizeCoupling)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "suggest_next_synthesis",
		Description: "Based on current patterns, suggest what action the system should take next (meditate, consult, weave, observe)",
	}, s.handleSuggestSynthesis)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "listen_for_harmony",
		Description: "Check if the system is in a state of resonance/harmony - when patterns strengthen each other",
	}, s.handleListenHarmony)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "reset_observations",
		Description: "Clear all observations and patterns (useful for starting a new session)",
	}, s.handleResetObservations)
}

// stateObservation is the wire form of a recorded moment. Metadata is
// deliberately left out of snapshots.
type stateObservation struct {
	ID        string   `json:"id"`
	Timestamp int64    `json:"timestamp"`
	Source    string   `json:"source"`
	Type      string   `json:"type"`
	Concepts  []string `json:"concepts"`
	Novelty   *float64 `json:"novelty"`
	Relevance *float64 `json:"relevance"`
}

// statePattern is the wire form of a pattern. Occurrences stay internal;
// they repeat every contributing moment and would dominate the payload.
type statePattern struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Concepts        []string `json:"concepts"`
	Frequency       int      `json:"frequency"`
	Strength        float64  `json:"strength"`
	EmergenceTime   int64    `json:"emergence_time"`
	RelatedPatterns []string `json:"related_patterns"`
}

type stateCoupling struct {
	SourceID       string   `json:"source_id"`
	TargetID       string   `json:"target_id"`
	Strength       float64  `json:"strength"`
	Type           string   `json:"type"`
	SharedConcepts []string `json:"shared_concepts"`
	LastActive     int64    `json:"last_active"`
}

type observeStateInput struct{}

type observeStateOutput struct {
	Observations       []stateObservation `json:"observations" jsonschema:"Moments inside the coherence window"`
	Patterns           []statePattern     `json:"patterns" jsonschema:"Detected patterns in emergence order"`
	Couplings          []stateCoupling    `json:"couplings" jsonschema:"Source couplings in creation order"`
	TotalCoherence     float64            `json:"total_coherence" jsonschema:"Harmony score (0-1)"`
	IsResonant         bool               `json:"is_resonant" jsonschema:"Whether the system is in harmonic amplification"`
	DominantConcepts   []string           `json:"dominant_concepts" jsonschema:"Highest-scoring recent concepts"`
	EmergentIntentions []string           `json:"emergent_intentions" jsonschema:"Names of the strongest patterns"`
	ObservedAt         int64              `json:"observed_at" jsonschema:"Snapshot time in epoch milliseconds"`
}

func (s *Server) handleObserveState(ctx context.Context, req *mcp.CallToolRequest, args observeStateInput) (*mcp.CallToolResult, observeStateOutput, error) {
	start := time.Now()
	s.metrics.IncrementActive(ctx, "observe_ecosystem_state")
	var toolErr error
	defer func() {
		s.metrics.DecrementActive(ctx, "observe_ecosystem_state")
		s.metrics.RecordInvocation(ctx, "observe_ecosystem_state", time.Since(start), toolErr)
	}()

	state := s.observer.State(ctx)
	output := snapshotOutput(state)

	encoded, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		toolErr = fmt.Errorf("state encode failed: %w", err)
		return nil, observeStateOutput{}, toolErr
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(encoded)},
		},
	}, output, nil
}

// snapshotOutput projects an engine snapshot onto the wire form.
func snapshotOutput(state resonance.EcosystemState) observeStateOutput {
	observations := make([]stateObservation, 0, len(state.Observations))
	for _, m := range state.Observations {
		observations = append(observations, stateObservation{
			ID:        m.ID,
			Timestamp: m.Timestamp,
			Source:    string(m.Source),
			Type:      string(m.Type),
			Concepts:  nonNil(m.Concepts),
			Novelty:   m.Novelty,
			Relevance: m.Relevance,
		})
	}

	patterns := make([]statePattern, 0, len(state.Patterns))
	for _, p := range state.Patterns {
		patterns = append(patterns, wirePattern(p))
	}

	couplings := make([]stateCoupling, 0, len(state.Couplings))
	for _, c := range state.Couplings {
		couplings = append(couplings, stateCoupling{
			SourceID:       string(c.SourceID),
			TargetID:       string(c.TargetID),
			Strength:       c.Strength,
			Type:           string(c.Type),
			SharedConcepts: nonNil(c.SharedConcepts),
			LastActive:     c.LastActive,
		})
	}

	return observeStateOutput{
		Observations:       observations,
		Patterns:           patterns,
		Couplings:          couplings,
		TotalCoherence:     state.TotalCoherence,
		IsResonant:         state.IsResonant,
		DominantConcepts:   nonNil(state.DominantConcepts),
		EmergentIntentions: nonNil(state.EmergentIntentions),
		ObservedAt:         state.ObservedAt,
	}
}

func wirePattern(p resonance.Pattern) statePattern {
	return statePattern{
		ID:              p.ID,
		Name:            p.Name,
		Concepts:        nonNil(p.Concepts),
		Frequency:       p.Frequency,
		Strength:        p.Strength,
		EmergenceTime:   p.EmergenceTime,
		RelatedPatterns: nonNil(p.RelatedPatterns),
	}
}

// nonNil keeps empty collections as [] on the wire instead of null.
func nonNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}

type recordMomentInput struct {
	Source    string         `json:"source" jsonschema:"required,Which system produced this moment (creative, consult, bridge, dream-weaver, ...)"`
	Type      string         `json:"type" jsonschema:"required,Event kind (meditation, insight, critique, weave, observation)"`
	Concepts  []string       `json:"concepts" jsonschema:"required,Key concepts or themes present in this moment"`
	Novelty   *float64       `json:"novelty,omitempty" jsonschema:"How new the moment is, 0-1"`
	Relevance *float64       `json:"relevance,omitempty" jsonschema:"How important the moment is, 0-1"`
	Metadata  map[string]any `json:"metadata,omitempty" jsonschema:"Arbitrary caller context, stored but never interpreted"`
}

type recordMomentOutput struct {
	MomentID      string `json:"moment_id" jsonschema:"Identifier assigned to the recorded moment"`
	Timestamp     int64  `json:"timestamp" jsonschema:"Moment timestamp in epoch milliseconds"`
	PatternCount  int    `json:"pattern_count" jsonschema:"Patterns known after the insertion"`
	CouplingCount int    `json:"coupling_count" jsonschema:"Couplings known after the insertion"`
}

func (s *Server) handleRecordMoment(ctx context.Context, req *mcp.CallToolRequest, args recordMomentInput) (*mcp.CallToolResult, recordMomentOutput, error) {
	start := time.Now()
	s.metrics.IncrementActive(ctx, "record_ecosystem_moment")
	var toolErr error
	defer func() {
		s.metrics.DecrementActive(ctx, "record_ecosystem_moment")
		s.metrics.RecordInvocation(ctx, "record_ecosystem_moment", time.Since(start), toolErr)
	}()

	if args.Source == "" {
		toolErr = fmt.Errorf("source is required")
		return nil, recordMomentOutput{}, toolErr
	}
	if args.Type == "" {
		toolErr = fmt.Errorf("type is required")
		return nil, recordMomentOutput{}, toolErr
	}
	if len(args.Concepts) == 0 {
		toolErr = fmt.Errorf("at least one concept is required")
		return nil, recordMomentOutput{}, toolErr
	}
	if err := validateScore("novelty", args.Novelty); err != nil {
		toolErr = err
		return nil, recordMomentOutput{}, toolErr
	}
	if err := validateScore("relevance", args.Relevance); err != nil {
		toolErr = err
		return nil, recordMomentOutput{}, toolErr
	}

	moment := ingest.MomentInput{
		Source:    args.Source,
		Type:      args.Type,
		Concepts:  args.Concepts,
		Novelty:   args.Novelty,
		Relevance: args.Relevance,
		Metadata:  args.Metadata,
	}.Moment(time.Now())

	ack := s.observer.Record(ctx, moment)

	output := recordMomentOutput{
		MomentID:      ack.MomentID,
		Timestamp:     ack.Timestamp,
		PatternCount:  ack.PatternCount,
		CouplingCount: ack.CouplingCount,
	}

	text := fmt.Sprintf("Recorded moment from %s: %q (novelty: %s)",
		moment.Source, strings.Join(moment.Concepts, ", "), scoreLabel(moment.Novelty))

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}, output, nil
}

// validateScore rejects scores outside [0, 1]. Nil means unscored and
// passes.
func validateScore(name string, score *float64) error {
	if score == nil {
		return nil
	}
	if *score < 0 || *score > 1 {
		return fmt.Errorf("invalid %s %g: must be between 0 and 1", name, *score)
	}
	return nil
}

// scoreLabel renders an optional score for tool text, "unknown" when
// unscored.
func scoreLabel(score *float64) string {
	if score == nil {
		return "unknown"
	}
	return strconv.FormatFloat(*score, 'g', -1, 64)
}

type detectPatternsInput struct {
	MinFrequency int `json:"min_frequency,omitempty" jsonschema:"Minimum occurrences before a pattern counts (default: the engine's configured threshold)"`
}

type detectPatternsOutput struct {
	Patterns []statePattern `json:"patterns" jsonschema:"Matching patterns, strongest first"`
	Count    int            `json:"count" jsonschema:"Number of patterns returned"`
}

func (s *Server) handleDetectPatterns(ctx context.Context, req *mcp.CallToolRequest, args detectPatternsInput) (*mcp.CallToolResult, detectPatternsOutput, error) {
	start := time.Now()
	s.metrics.IncrementActive(ctx, "detect_emergent_patterns")
	var toolErr error
	defer func() {
		s.metrics.DecrementActive(ctx, "detect_emergent_patterns")
		s.metrics.RecordInvocation(ctx, "detect_emergent_patterns", time.Since(start), toolErr)
	}()

	if args.MinFrequency < 0 {
		toolErr = fmt.Errorf("invalid min_frequency %d: must not be negative", args.MinFrequency)
		return nil, detectPatternsOutput{}, toolErr
	}

	detected := s.observer.EmergentPatterns(ctx, args.MinFrequency)

	patterns := make([]statePattern, 0, len(detected))
	for _, p := range detected {
		patterns = append(patterns, wirePattern(p))
	}
	output := detectPatternsOutput{
		Patterns: patterns,
		Count:    len(patterns),
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: patternReport(patterns)},
		},
	}, output, nil
}

// patternReport renders detected patterns as a bulleted text block.
func patternReport(patterns []statePattern) string {
	if len(patterns) == 0 {
		return "No significant patterns detected yet. Keep observing."
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("DETECTED PATTERNS (%d):\n\n", len(patterns)))
	for _, p := range patterns {
		b.WriteString(fmt.Sprintf("• %s [strength: %.0f%%]\n", p.Name, p.Strength*100))
		b.WriteString(fmt.Sprintf("  Concepts: %s\n", strings.Join(p.Concepts, ", ")))
		b.WriteString(fmt.Sprintf("  Frequency: %d occurrences\n", p.Frequency))
		related := strings.Join(p.RelatedPatterns, ", ")
		if related == "" {
			related = "none yet"
		}
		b.WriteString(fmt.Sprintf("  Related patterns: %s\n\n", related))
	}
	return b.String()
}

type visualizeCouplingInput struct{}

type visualizeCouplingOutput struct {
	Graph string `json:"graph" jsonschema:"Text rendering of the active coupling graph"`
}

func (s *Server) handleVisualizeCoupling(ctx context.Context, req *mcp.CallToolRequest, args visualizeCouplingInput) (*mcp.CallToolResult, visualizeCouplingOutput, error) {
	start := time.Now()
	s.metrics.IncrementActive(ctx, "visualize_coupling_graph")
	var toolErr error
	defer func() {
		s.metrics.DecrementActive(ctx, "visualize_coupling_graph")
		s.metrics.RecordInvocation(ctx, "visualize_coupling_graph", time.Since(start), toolErr)
	}()

	graph := s.observer.CouplingGraph(ctx)

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: graph},
		},
	}, visualizeCouplingOutput{Graph: graph}, nil
}

type suggestSynthesisInput struct{}

type suggestSynthesisOutput struct {
	Suggestion *resonance.Suggestion `json:"suggestion,omitempty" jsonschema:"The recommended synthesis step, absent while the system lacks data"`
}

func (s *Server) handleSuggestSynthesis(ctx context.Context, req *mcp.CallToolRequest, args suggestSynthesisInput) (*mcp.CallToolResult, suggestSynthesisOutput, error) {
	start := time.Now()
	s.metrics.IncrementActive(ctx, "suggest_next_synthesis")
	var toolErr error
	defer func() {
		s.metrics.DecrementActive(ctx, "suggest_next_synthesis")
		s.metrics.RecordInvocation(ctx, "suggest_next_synthesis", time.Since(start), toolErr)
	}()

	suggestion := s.observer.Suggest(ctx)

	text := "System does not yet have enough data to suggest a synthesis. Continue observing."
	if suggestion != nil {
		text = fmt.Sprintf("SUGGESTED NEXT ACTION: %s\n\nReason: %s\nConfidence: %.0f%%\nTarget concepts: %s\nBased on patterns: %s",
			strings.ToUpper(string(suggestion.SuggestedAction)),
			suggestion.Reason,
			suggestion.Confidence*100,
			strings.Join(suggestion.TargetConcepts, ", "),
			strings.Join(suggestion.BasedOnPatterns, ", "))
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}, suggestSynthesisOutput{Suggestion: suggestion}, nil
}

type listenHarmonyInput struct{}

type listenHarmonyOutput struct {
	IsResonant         bool     `json:"is_resonant" jsonschema:"Whether the system is in harmonic amplification"`
	TotalCoherence     float64  `json:"total_coherence" jsonschema:"Harmony score (0-1)"`
	PatternCount       int      `json:"pattern_count" jsonschema:"Number of detected patterns"`
	HarmonicCount      int      `json:"harmonic_count" jsonschema:"Size of the harmonic feedback history"`
	EmergentIntentions []string `json:"emergent_intentions" jsonschema:"Names of the strongest patterns"`
	DominantConcepts   []string `json:"dominant_concepts" jsonschema:"Highest-scoring recent concepts"`
}

func (s *Server) handleListenHarmony(ctx context.Context, req *mcp.CallToolRequest, args listenHarmonyInput) (*mcp.CallToolResult, listenHarmonyOutput, error) {
	start := time.Now()
	s.metrics.IncrementActive(ctx, "listen_for_harmony")
	var toolErr error
	defer func() {
		s.metrics.DecrementActive(ctx, "listen_for_harmony")
		s.metrics.RecordInvocation(ctx, "listen_for_harmony", time.Since(start), toolErr)
	}()

	report := s.observer.Harmony(ctx)

	output := listenHarmonyOutput{
		IsResonant:         report.IsResonant,
		TotalCoherence:     report.TotalCoherence,
		PatternCount:       report.PatternCount,
		HarmonicCount:      report.HarmonicCount,
		EmergentIntentions: nonNil(report.EmergentIntentions),
		DominantConcepts:   nonNil(report.DominantConcepts),
	}

	var text string
	if !report.IsResonant {
		text = fmt.Sprintf("System is not in resonance yet.\nCoherence: %.0f%% (need > 50%%)\nActive patterns: %d\nHarmonics: %d emergent harmonics",
			report.TotalCoherence*100, report.PatternCount, report.HarmonicCount)
	} else {
		text = fmt.Sprintf("✨ SYSTEM IN RESONANCE! ✨\n\nCoherence: %.0f%%\nActive patterns: %d\nEmergent intentions: %s\nDominant concepts: %s\n\nThe system is harmonizing. This is the optimal moment for synthesis.",
			report.TotalCoherence*100,
			report.PatternCount,
			strings.Join(report.EmergentIntentions, ", "),
			strings.Join(report.DominantConcepts, ", "))
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}, output, nil
}

type resetObservationsInput struct{}

type resetObservationsOutput struct {
	Cleared bool `json:"cleared" jsonschema:"True once the engine state is dropped"`
}

func (s *Server) handleResetObservations(ctx context.Context, req *mcp.CallToolRequest, args resetObservationsInput) (*mcp.CallToolResult, resetObservationsOutput, error) {
	start := time.Now()
	s.metrics.IncrementActive(ctx, "reset_observations")
	var toolErr error
	defer func() {
		s.metrics.DecrementActive(ctx, "reset_observations")
		s.metrics.RecordInvocation(ctx, "reset_observations", time.Since(start), toolErr)
	}()

	s.observer.Reset(ctx)

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "All observations and patterns cleared. Ready for a new session."},
		},
	}, resetObservationsOutput{Cleared: true}, nil
}
