package resonance

// detectHarmonics finds pattern pairs whose occurrences co-occur in
// time and lets them amplify each other. An occurrence of the first
// pattern counts as common when at least one occurrence of the second
// falls within thirty seconds of it.
func (e *Engine) detectHarmonics() {
	for i := 0; i < len(e.patternOrder); i++ {
		p1 := e.patterns[e.patternOrder[i]]
		for j := i + 1; j < len(e.patternOrder); j++ {
			p2 := e.patterns[e.patternOrder[j]]

			common := 0
			for _, o1 := range p1.Occurrences {
				for _, o2 := range p2.Occurrences {
					if absInt64(o1.Timestamp-o2.Timestamp) < harmonicWindowMs {
						common++
						break
					}
				}
			}
			if common == 0 {
				continue
			}

			amplification := (p1.Strength * p2.Strength * float64(common)) / float64(p1.Frequency)

			p1.Strength = clamp01(p1.Strength + 0.05*amplification)
			p2.Strength = clamp01(p2.Strength + 0.05*amplification)

			e.harmonics = append(e.harmonics, HarmonicFeedback{
				Pattern1ID:          p1.ID,
				Pattern2ID:          p2.ID,
				AmplificationFactor: amplification,
				ResonanceFrequency:  1.0 / float64(common+1),
			})
		}
	}

	if len(e.harmonics) > maxHarmonics {
		e.harmonics = e.harmonics[len(e.harmonics)-maxHarmonics:]
	}
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
