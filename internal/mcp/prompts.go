package mcp

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerPrompts registers the guidance prompts with the server.
func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(&mcp.Prompt{
		Name:        "resonance_workflow",
		Description: "Guide for the resonance observation workflow",
	}, s.handleWorkflowPrompt)

	s.mcp.AddPrompt(&mcp.Prompt{
		Name:        "moment_recording",
		Description: "Template for effectively recording ecosystem moments",
		Arguments: []*mcp.PromptArgument{
			{Name: "source_mcp", Description: "Which MCP this moment comes from (default: creative)"},
			{Name: "event_type", Description: "Type of event (default: meditation)"},
			{Name: "key_concepts", Description: "Comma-separated list of key concepts"},
			{Name: "context_description", Description: "Additional context about this moment"},
		},
	}, s.handleMomentRecordingPrompt)

	s.mcp.AddPrompt(&mcp.Prompt{
		Name:        "pattern_interpretation",
		Description: "Template for interpreting detected resonance patterns",
		Arguments: []*mcp.PromptArgument{
			{Name: "pattern_summary", Description: "Summary of patterns from detect_emergent_patterns"},
			{Name: "analysis_focus", Description: "What aspect to focus analysis on"},
			{Name: "application_goal", Description: "How you plan to apply these insights"},
		},
	}, s.handlePatternInterpretationPrompt)

	s.mcp.AddPrompt(&mcp.Prompt{
		Name:        "synthesis_planning",
		Description: "Template for planning synthesis based on resonance patterns",
		Arguments: []*mcp.PromptArgument{
			{Name: "current_state", Description: "Current ecosystem state description"},
			{Name: "synthesis_goal", Description: "What you want to achieve through synthesis"},
			{Name: "available_resources", Description: "MCPs or tools available for synthesis"},
		},
	}, s.handleSynthesisPlanningPrompt)
}

// userPrompt wraps template text as a single-message prompt result.
func userPrompt(description, text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Description: description,
		Messages: []*mcp.PromptMessage{
			{Role: "user", Content: &mcp.TextContent{Text: text}},
		},
	}
}

// promptArgs extracts the argument map from a request, tolerating
// requests with no params at all.
func promptArgs(req *mcp.GetPromptRequest) map[string]string {
	if req == nil || req.Params == nil {
		return nil
	}
	return req.Params.Arguments
}

func argOr(args map[string]string, key, fallback string) string {
	if v, ok := args[key]; ok && v != "" {
		return v
	}
	return fallback
}

func (s *Server) handleWorkflowPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return userPrompt("Guide for the resonance observation workflow", workflowGuide()), nil
}

func (s *Server) handleMomentRecordingPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	args := promptArgs(req)
	text := momentRecordingTemplate(
		argOr(args, "source_mcp", "creative"),
		argOr(args, "event_type", "meditation"),
		args["key_concepts"],
		args["context_description"],
		time.Now(),
	)
	return userPrompt("Template for effectively recording ecosystem moments", text), nil
}

func (s *Server) handlePatternInterpretationPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	args := promptArgs(req)
	text := patternInterpretationTemplate(
		argOr(args, "pattern_summary", "recent resonance patterns"),
		argOr(args, "analysis_focus", "emergent themes"),
		args["application_goal"],
	)
	return userPrompt("Template for interpreting detected resonance patterns", text), nil
}

func (s *Server) handleSynthesisPlanningPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	args := promptArgs(req)
	text := synthesisPlanningTemplate(
		argOr(args, "current_state", "system resonance analysis"),
		argOr(args, "synthesis_goal", "amplify emergent patterns"),
		args["available_resources"],
	)
	return userPrompt("Template for planning synthesis based on resonance patterns", text), nil
}

// workflowGuide explains the observation workflow end to end. The text
// walks a client through the three phases and how to read the metrics.
func workflowGuide() string {
	var b strings.Builder

	b.WriteString("# Resonance Observation Workflow Guide\n\n")

	b.WriteString("## The Resonance Process\n\n")
	b.WriteString("Resonance emerges when multiple MCPs interact, creating patterns that strengthen each other. ")
	b.WriteString("This server observes these interactions and amplifies the connections that want to form.\n\n")

	b.WriteString("### Core Activities\n\n")
	b.WriteString("#### 1. Record Moments (`record_ecosystem_moment`)\n")
	b.WriteString("**Purpose**: Capture significant events from MCP interactions\n")
	b.WriteString("- **Source**: Which MCP generated this moment (creative, consult, bridge, etc.)\n")
	b.WriteString("- **Type**: The nature of the event (meditation, insight, critique, weave, observation)\n")
	b.WriteString("- **Concepts**: Key concepts or themes present in this moment\n")
	b.WriteString("- **Novelty/Relevance**: Optional scoring (0-1) for pattern detection\n\n")

	b.WriteString("#### 2. Observe State (`observe_ecosystem_state`)\n")
	b.WriteString("**Purpose**: Get comprehensive view of current ecosystem dynamics\n")
	b.WriteString("- **Patterns**: Recurring themes and their strength\n")
	b.WriteString("- **Couplings**: How different MCPs are connected\n")
	b.WriteString("- **Coherence**: Overall system harmony (0-1 scale)\n")
	b.WriteString("- **Resonance**: Whether the system is in harmonic amplification\n\n")

	b.WriteString("#### 3. Detect Patterns (`detect_emergent_patterns`)\n")
	b.WriteString("**Purpose**: Identify recurring themes across observations\n")
	b.WriteString("- **Frequency Analysis**: How often concepts appear\n")
	b.WriteString("- **Strength Measurement**: Pattern significance (0-100%)\n")
	b.WriteString("- **Emergence Tracking**: When patterns first appeared\n\n")

	b.WriteString("#### 4. Check Harmony (`listen_for_harmony`)\n")
	b.WriteString("**Purpose**: Determine if the system is resonating\n")
	b.WriteString("- **Resonance Detection**: When patterns strengthen each other\n")
	b.WriteString("- **Coherence Threshold**: >50% indicates potential resonance\n")
	b.WriteString("- **Harmonic Feedback**: Multiple patterns amplifying together\n\n")

	b.WriteString("#### 5. Get Synthesis Suggestions (`suggest_next_synthesis`)\n")
	b.WriteString("**Purpose**: Know what action would amplify current patterns\n")
	b.WriteString("- **Action Types**: meditate, consult, weave, observe, rest\n")
	b.WriteString("- **Confidence Scoring**: Based on current coherence\n")
	b.WriteString("- **Pattern-Based**: Suggestions grounded in observed dynamics\n\n")

	b.WriteString("## Recommended Workflow\n\n")
	b.WriteString("### Phase 1: Initial Observation (Build Foundation)\n")
	b.WriteString("1. **Start Recording**: Begin with `record_ecosystem_moment` for each significant MCP interaction\n")
	b.WriteString("2. **Monitor State**: Use `observe_ecosystem_state` to track ecosystem evolution\n")
	b.WriteString("3. **Build Patterns**: Let the system accumulate observations until patterns emerge\n\n")

	b.WriteString("### Phase 2: Pattern Recognition (Find Resonance)\n")
	b.WriteString("1. **Detect Patterns**: Use `detect_emergent_patterns` to identify recurring themes\n")
	b.WriteString("2. **Check Coupling**: Use `visualize_coupling_graph` to see MCP interconnections\n")
	b.WriteString("3. **Monitor Harmony**: Regularly check `listen_for_harmony` for resonance indicators\n\n")

	b.WriteString("### Phase 3: Amplification (Strengthen Resonance)\n")
	b.WriteString("1. **Follow Suggestions**: Use `suggest_next_synthesis` to know what to do next\n")
	b.WriteString("2. **Record Results**: Continue recording moments from suggested actions\n")
	b.WriteString("3. **Amplify Loops**: When resonance occurs, the system strengthens itself\n\n")

	b.WriteString("## Resonance Applications\n\n")
	b.WriteString("- **MCP Coordination**: Understand how different MCPs work together\n")
	b.WriteString("- **Creative Synthesis**: Find optimal moments for combining creative outputs\n")
	b.WriteString("- **Pattern Discovery**: Identify emergent themes across multiple interactions\n")
	b.WriteString("- **System Optimization**: Know when and how to intervene in MCP ecosystems\n")
	b.WriteString("- **Harmonic Timing**: Recognize optimal moments for synthesis and integration\n\n")

	b.WriteString("## Tips for Best Results\n\n")
	b.WriteString("- **Consistent Recording**: Record moments immediately after significant MCP interactions\n")
	b.WriteString("- **Rich Concepts**: Use specific, meaningful concept tags for better pattern detection\n")
	b.WriteString("- **Regular Monitoring**: Check resonance state frequently during active sessions\n")
	b.WriteString("- **Follow Suggestions**: The system's suggestions are based on actual pattern analysis\n")
	b.WriteString("- **Session Management**: Use `reset_observations` to start fresh analysis sessions\n\n")

	b.WriteString("## Understanding Resonance Metrics\n\n")
	b.WriteString("### Coherence (0-1)\n")
	b.WriteString("- **0.0-0.3**: System is incoherent, needs more observations\n")
	b.WriteString("- **0.3-0.5**: Patterns emerging, continue recording\n")
	b.WriteString("- **0.5-0.7**: Moderate resonance, good for synthesis\n")
	b.WriteString("- **0.7-1.0**: High resonance, optimal for amplification\n\n")

	b.WriteString("### Pattern Strength (0-100%)\n")
	b.WriteString("- **0-30%**: Weak pattern, may not be significant\n")
	b.WriteString("- **30-60%**: Moderate pattern, worth monitoring\n")
	b.WriteString("- **60-100%**: Strong pattern, likely to influence synthesis\n\n")

	b.WriteString("### Coupling Types\n")
	b.WriteString("- **Sequential**: Actions that follow each other naturally\n")
	b.WriteString("- **Feedback**: Tight loops where actions reinforce each other\n")
	b.WriteString("- **Lateral**: Parallel activities within the same MCP\n")
	b.WriteString("- **Hierarchical**: Actions at different levels of abstraction\n\n")

	b.WriteString("The resonance observer helps you understand not just what MCPs are doing, ")
	b.WriteString("but how they harmonize into something greater than the sum of their parts.")

	return b.String()
}

// momentRecordingTemplate renders the recording walkthrough, filling in
// whatever the caller already knows about the moment.
func momentRecordingTemplate(sourceMCP, eventType, keyConcepts, contextDescription string, now time.Time) string {
	var b strings.Builder

	b.WriteString("# Recording Ecosystem Moment\n\n")

	b.WriteString("## Event Details\n")
	b.WriteString(fmt.Sprintf("- **Source MCP**: %s\n", sourceMCP))
	b.WriteString(fmt.Sprintf("- **Event Type**: %s\n", eventType))
	b.WriteString(fmt.Sprintf("- **Timestamp**: %d\n\n", now.UnixMilli()))

	b.WriteString("## Key Concepts\n")
	if keyConcepts != "" {
		b.WriteString(fmt.Sprintf("From your description: %s\n\n", keyConcepts))
	} else {
		b.WriteString("Identify 3-5 key concepts that capture the essence of this moment:\n\n")
	}

	b.WriteString("### Concept Selection Guidelines\n")
	b.WriteString("- **Core Ideas**: What are the fundamental concepts being explored?\n")
	b.WriteString("- **Emotional States**: What feelings or qualities are present?\n")
	b.WriteString("- **Action Types**: What kind of process or transformation occurred?\n")
	b.WriteString("- **Relationship Patterns**: How do different elements connect?\n\n")

	b.WriteString("### Example Concepts by Event Type\n")
	b.WriteString("- **Meditation**: emergence, consciousness, pattern, flow, transformation\n")
	b.WriteString("- **Insight**: clarity, connection, understanding, revelation, synthesis\n")
	b.WriteString("- **Critique**: tension, constraint, evaluation, refinement, challenge\n")
	b.WriteString("- **Weave**: integration, harmony, combination, unity, emergence\n")
	b.WriteString("- **Observation**: awareness, monitoring, detection, resonance, coherence\n\n")

	b.WriteString("## Novelty & Relevance Assessment\n")
	b.WriteString("Consider scoring these on a 0-1 scale:\n")
	b.WriteString("- **Novelty**: How new or surprising is this moment? (0 = expected, 1 = breakthrough)\n")
	b.WriteString("- **Relevance**: How important is this for the current ecosystem? (0 = minor, 1 = critical)\n\n")

	b.WriteString("## Recording Command\n")
	b.WriteString("Use the `record_ecosystem_moment` tool with these parameters:\n")
	b.WriteString("```\n")
	b.WriteString(fmt.Sprintf("source: %q\n", sourceMCP))
	b.WriteString(fmt.Sprintf("type: %q\n", eventType))
	b.WriteString(fmt.Sprintf("concepts: [%s]\n", strings.Join(quotedConcepts(keyConcepts), ", ")))
	b.WriteString("novelty: 0.5  # adjust based on assessment\n")
	b.WriteString("relevance: 0.5  # adjust based on assessment\n")
	b.WriteString("```")

	if contextDescription != "" {
		b.WriteString("\n\n## Additional Context\n")
		b.WriteString(contextDescription)
		b.WriteString("\n\nUse this context to refine your concept selection and scoring.")
	}

	return b.String()
}

// quotedConcepts splits a comma-separated concept list and quotes each
// entry, falling back to placeholders when the caller gave none.
func quotedConcepts(keyConcepts string) []string {
	if keyConcepts == "" {
		return []string{`"concept1"`, `"concept2"`, `"concept3"`}
	}
	parts := strings.Split(keyConcepts, ",")
	quoted := make([]string, 0, len(parts))
	for _, c := range parts {
		quoted = append(quoted, strconv.Quote(strings.TrimSpace(c)))
	}
	return quoted
}

// patternInterpretationTemplate frames detected patterns for analysis.
func patternInterpretationTemplate(patternSummary, analysisFocus, applicationGoal string) string {
	var b strings.Builder

	b.WriteString("# Interpreting Resonance Patterns\n\n")
	b.WriteString(fmt.Sprintf("## Current Patterns: %s\n\n", patternSummary))
	b.WriteString(fmt.Sprintf("## Analysis Framework: %s\n\n", analysisFocus))

	b.WriteString("### 1. Pattern Characteristics\n")
	b.WriteString("- **Strength Assessment**: Which patterns are strongest (>60%) and why?\n")
	b.WriteString("- **Frequency Analysis**: How often do key concepts appear across observations?\n")
	b.WriteString("- **Emergence Timeline**: When did significant patterns first appear?\n")
	b.WriteString("- **Interconnections**: How do different patterns relate to each other?\n\n")

	b.WriteString("### 2. Resonance Dynamics\n")
	b.WriteString("- **Coupling Analysis**: How are different MCPs connected through these patterns?\n")
	b.WriteString("- **Harmonic Feedback**: Which patterns strengthen each other?\n")
	b.WriteString("- **Coherence Level**: What does the overall system coherence indicate?\n")
	b.WriteString("- **Dominant Concepts**: Which concepts are most influential right now?\n\n")

	b.WriteString("### 3. System State Interpretation\n")
	b.WriteString("- **Resonance Status**: Is the system in harmony? What evidence supports this?\n")
	b.WriteString("- **Emergent Intentions**: What larger purposes seem to be emerging?\n")
	b.WriteString("- **Stability vs. Change**: Is the system stable or in flux?\n\n")

	b.WriteString("## Pattern Analysis Questions\n")
	b.WriteString("- What themes consistently appear across different MCP interactions?\n")
	b.WriteString("- How do patterns from different sources complement or contradict each other?\n")
	b.WriteString("- Which patterns seem most likely to influence future developments?\n")
	b.WriteString("- What underlying dynamics explain the observed resonance?\n\n")

	b.WriteString("## Practical Implications\n")
	b.WriteString("- **Synthesis Opportunities**: When might these patterns suggest combining elements?\n")
	b.WriteString("- **Intervention Points**: Where could additional observations strengthen patterns?\n")
	b.WriteString("- **Risk Indicators**: Are there patterns that suggest potential issues?\n")
	b.WriteString("- **Growth Directions**: What do these patterns suggest for ecosystem evolution?\n\n")

	b.WriteString("## Actionable Insights\n")
	b.WriteString("Based on this pattern analysis, consider:\n")
	b.WriteString("- **Next Observations**: What moments would provide the most valuable data?\n")
	b.WriteString("- **MCP Coordination**: How might different MCPs work together more effectively?\n")
	b.WriteString("- **Timing Decisions**: When is the optimal moment for synthesis or intervention?")

	if applicationGoal != "" {
		b.WriteString(fmt.Sprintf("\n\n## Application Goal: %s\n\n", applicationGoal))
		b.WriteString("How do these patterns specifically support your goal? Consider:\n")
		b.WriteString("- Which patterns are most relevant to your objective?\n")
		b.WriteString("- What actions would amplify helpful patterns?\n")
		b.WriteString("- How might you mitigate patterns that could hinder your goal?")
	}

	return b.String()
}

// synthesisPlanningTemplate lays out a synthesis plan around the current
// resonance state.
func synthesisPlanningTemplate(currentState, synthesisGoal, availableResources string) string {
	var b strings.Builder

	b.WriteString("# Synthesis Planning Guide\n\n")
	b.WriteString(fmt.Sprintf("## Current Ecosystem State: %s\n\n", currentState))
	b.WriteString(fmt.Sprintf("## Synthesis Goal: %s\n\n", synthesisGoal))

	b.WriteString("## Synthesis Planning Framework\n\n")
	b.WriteString("### 1. Resonance Assessment\n")
	b.WriteString("- **Current Coherence**: What is the system's harmonic state?\n")
	b.WriteString("- **Active Patterns**: Which patterns are strongest and most relevant?\n")
	b.WriteString("- **Coupling Dynamics**: How are different elements currently connected?\n")
	b.WriteString("- **Emergent Intentions**: What does the system seem to want to create?\n\n")

	b.WriteString("### 2. Synthesis Strategy\n")
	b.WriteString("- **Amplification Approach**: How to strengthen helpful patterns?\n")
	b.WriteString("- **Integration Method**: How to combine different elements effectively?\n")
	b.WriteString("- **Timing Optimization**: When is the optimal moment for action?\n")
	b.WriteString("- **Risk Mitigation**: How to avoid disrupting current resonance?\n\n")

	b.WriteString("### 3. Action Planning\n")
	b.WriteString("- **Immediate Steps**: What to do in the next few interactions?\n")
	b.WriteString("- **Resource Allocation**: Which MCPs or tools to prioritize?\n")
	b.WriteString("- **Progress Monitoring**: How to track synthesis effectiveness?\n")
	b.WriteString("- **Contingency Plans**: What if resonance changes unexpectedly?\n\n")

	b.WriteString("## Recommended Synthesis Actions\n\n")
	b.WriteString("### Based on Resonance State:\n")
	b.WriteString("- **High Coherence (>0.7)**: Ready for complex synthesis, combine multiple elements\n")
	b.WriteString("- **Moderate Coherence (0.4-0.7)**: Focus on strengthening key patterns\n")
	b.WriteString("- **Low Coherence (<0.4)**: Build foundation through more observations\n\n")

	b.WriteString("### By Pattern Type:\n")
	b.WriteString("- **Sequential Patterns**: Follow the natural flow of interactions\n")
	b.WriteString("- **Feedback Patterns**: Amplify the reinforcing loops\n")
	b.WriteString("- **Lateral Patterns**: Explore parallel developments\n")
	b.WriteString("- **Hierarchical Patterns**: Connect different levels of abstraction\n\n")

	b.WriteString("## Synthesis Techniques\n\n")
	b.WriteString("### Creative Synthesis\n")
	b.WriteString("- **Meditation + Insight**: Use creative meditation to explore pattern implications\n")
	b.WriteString("- **Consult Integration**: Get alternative perspectives on pattern meanings\n")
	b.WriteString("- **Weaving Sessions**: Combine insights from multiple pattern sources\n\n")

	b.WriteString("### Resonance-Guided Synthesis\n")
	b.WriteString("- **Harmonic Timing**: Act when system shows resonance indicators\n")
	b.WriteString("- **Pattern Amplification**: Focus on strengthening coherent patterns\n")
	b.WriteString("- **Coupling Optimization**: Enhance beneficial connections between MCPs\n\n")

	b.WriteString("### Practical Implementation\n")
	b.WriteString("1. **Check Current State**: Use `observe_ecosystem_state` for latest data\n")
	b.WriteString("2. **Get Suggestions**: Use `suggest_next_synthesis` for specific recommendations\n")
	b.WriteString("3. **Record Actions**: Document each synthesis step as a new moment\n")
	b.WriteString("4. **Monitor Results**: Track how synthesis affects resonance patterns")

	if availableResources != "" {
		b.WriteString(fmt.Sprintf("\n\n## Available Resources: %s\n\n", availableResources))
		b.WriteString("Consider how to best utilize these resources in your synthesis:\n")
		b.WriteString("- Which resources would amplify current patterns?\n")
		b.WriteString("- How can resources be combined for maximum effect?\n")
		b.WriteString("- Are there resource gaps that need to be addressed?")
	}

	b.WriteString("\n\n## Success Metrics\n")
	b.WriteString("- **Pattern Strengthening**: Do key patterns grow stronger?\n")
	b.WriteString("- **Coherence Increase**: Does overall system harmony improve?\n")
	b.WriteString("- **Emergent Value**: Does synthesis create something greater than the parts?\n")
	b.WriteString("- **Sustainable Resonance**: Does the synthesis maintain or improve system stability?\n\n")

	b.WriteString("## Next Steps\n")
	b.WriteString("1. Review current resonance state\n")
	b.WriteString("2. Identify the most promising synthesis opportunities\n")
	b.WriteString("3. Plan specific actions based on available resources\n")
	b.WriteString("4. Begin implementation while continuing observation\n")
	b.WriteString("5. Adjust approach based on how resonance responds")

	return b.String()
}
