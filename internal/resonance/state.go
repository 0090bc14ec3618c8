package resonance

import "sort"

// State computes a snapshot of the ecosystem. It is a pure read over
// the engine; calling it repeatedly without new observations yields
// identical results for a fixed clock.
func (e *Engine) State() EcosystemState {
	now := e.nowMillis()
	windowStart := now - e.cfg.CoherenceWindow.Milliseconds()

	var recent []Moment
	for _, m := range e.log.all() {
		if m.Timestamp > windowStart {
			recent = append(recent, m)
		}
	}

	// Coherence: average recent novelty scaled by average pattern
	// strength. Both averages guard against empty denominators.
	noveltySum := 0.0
	for _, m := range recent {
		noveltySum += scoreOrDefault(m.Novelty)
	}
	avgNovelty := noveltySum / float64(max(len(recent), 1))

	strengthSum := 0.0
	for _, concept := range e.patternOrder {
		strengthSum += e.patterns[concept].Strength
	}
	avgStrength := strengthSum / float64(max(len(e.patternOrder), 1))

	coherence := clamp01(avgNovelty * avgStrength)

	activeCouplings := 0
	for _, id := range e.couplingOrder {
		if now-e.couplings[id].LastActive < recentCouplingWindowMs {
			activeCouplings++
		}
	}
	resonant := activeCouplings > 0 && coherence > 0.5 && len(e.harmonics) > 2

	return EcosystemState{
		Observations:       copyMoments(recent),
		Patterns:           e.Patterns(),
		Couplings:          e.Couplings(),
		TotalCoherence:     coherence,
		IsResonant:         resonant,
		DominantConcepts:   e.dominantConcepts(recent),
		EmergentIntentions: e.emergentIntentions(),
		ObservedAt:         now,
	}
}

// dominantConcepts scores every concept in the recent window by
// accumulated novelty and returns the top five. Ties keep first-seen
// order.
func (e *Engine) dominantConcepts(recent []Moment) []string {
	scores := make(map[string]float64)
	var order []string
	for _, m := range recent {
		for _, concept := range m.Concepts {
			if _, seen := scores[concept]; !seen {
				order = append(order, concept)
			}
			scores[concept] += scoreOrDefault(m.Novelty)
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	if len(order) > maxDominantConcepts {
		order = order[:maxDominantConcepts]
	}
	return order
}

// emergentIntentions lists the names of strong patterns (strength above
// 0.6), at most three, in emergence order.
func (e *Engine) emergentIntentions() []string {
	var intentions []string
	for _, concept := range e.patternOrder {
		if p := e.patterns[concept]; p.Strength > 0.6 {
			intentions = append(intentions, p.Name)
			if len(intentions) == maxEmergentIntentions {
				break
			}
		}
	}
	return intentions
}
