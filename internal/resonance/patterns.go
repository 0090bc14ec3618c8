package resonance

import "fmt"

// detectPatterns rescans the whole observation log, grouping moments by
// concept. Concepts that occur at least PatternMinFrequency times form
// a pattern; existing patterns are refreshed in place so frequency and
// strength track the current log while identity, name, and emergence
// time stay stable.
func (e *Engine) detectPatterns() {
	occurrences := make(map[string][]Moment)
	var conceptOrder []string

	for _, m := range e.log.all() {
		for _, concept := range m.Concepts {
			if _, seen := occurrences[concept]; !seen {
				conceptOrder = append(conceptOrder, concept)
			}
			occurrences[concept] = append(occurrences[concept], m)
		}
	}

	for _, concept := range conceptOrder {
		moments := occurrences[concept]
		if len(moments) < e.cfg.PatternMinFrequency {
			continue
		}

		if existing, ok := e.patterns[concept]; ok {
			existing.Occurrences = moments
			existing.Frequency = len(moments)
			existing.Strength = strengthForFrequency(len(moments))
			continue
		}

		e.patterns[concept] = &Pattern{
			ID:            fmt.Sprintf("pattern-%s", concept),
			Name:          fmt.Sprintf("%s Resonance", concept),
			Concepts:      []string{concept},
			Occurrences:   moments,
			Frequency:     len(moments),
			Strength:      strengthForFrequency(len(moments)),
			EmergenceTime: moments[0].Timestamp,
		}
		e.patternOrder = append(e.patternOrder, concept)
	}
}

// strengthForFrequency maps an occurrence count to a 0-1 strength,
// saturating at ten occurrences.
func strengthForFrequency(n int) float64 {
	return clamp01(float64(n) / strengthDivisor)
}
