package resonance

import (
	"fmt"
	"strings"
)

// SuggestNextSynthesis recommends the next action based on the current
// snapshot. It returns nil when no emergent intentions exist yet, i.e.
// the system has nothing strong enough to amplify.
func (e *Engine) SuggestNextSynthesis() *Suggestion {
	return e.suggestFrom(e.State())
}

// Recommendation bundles a snapshot with the suggestion derived from it
// and the weave decision callers usually compute from the two.
func (e *Engine) Recommendation() Recommendation {
	state := e.State()
	suggestion := e.suggestFrom(state)

	shouldWeave := (suggestion != nil && suggestion.SuggestedAction == ActionWeave) ||
		(state.IsResonant && state.TotalCoherence > 0.7)

	return Recommendation{
		State:       state,
		Suggestion:  suggestion,
		ShouldWeave: shouldWeave,
	}
}

func (e *Engine) suggestFrom(state EcosystemState) *Suggestion {
	if len(state.EmergentIntentions) == 0 {
		return nil
	}

	tail := e.log.tail(suggestionTail)

	action := ActionObserve
	switch {
	case allGenerative(tail):
		// A run of meditation and insight wants critique.
		action = ActionConsult
	case anyCritique(tail):
		// Fresh critique should be fed back into generation.
		action = ActionMeditate
	case state.IsResonant:
		// The system is harmonizing; synthesize now.
		action = ActionWeave
	}

	basedOn := make([]string, 0, maxSuggestionBasis)
	for _, p := range state.Patterns {
		basedOn = append(basedOn, p.ID)
		if len(basedOn) == maxSuggestionBasis {
			break
		}
	}

	return &Suggestion{
		ID:              fmt.Sprintf("synthesis-%d", state.ObservedAt),
		Reason:          fmt.Sprintf("System suggests %s to amplify: %s", action, strings.Join(state.EmergentIntentions, ", ")),
		TargetConcepts:  state.DominantConcepts,
		SuggestedAction: action,
		Confidence:      state.TotalCoherence,
		BasedOnPatterns: basedOn,
	}
}

// allGenerative reports whether every moment is a meditation or an
// insight. Vacuously true for an empty slice.
func allGenerative(ms []Moment) bool {
	for _, m := range ms {
		if m.Type != KindMeditation && m.Type != KindInsight {
			return false
		}
	}
	return true
}

// anyCritique reports whether any moment is a critique.
func anyCritique(ms []Moment) bool {
	for _, m := range ms {
		if m.Type == KindCritique {
			return true
		}
	}
	return false
}
