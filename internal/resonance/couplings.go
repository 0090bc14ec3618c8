package resonance

// analyzeCouplings walks every adjacent pair of moments in the log.
// Pairs that share at least one concept create or reinforce a coupling
// between their sources. Reinforcement within a minute of the earlier
// moment counts at full weight, otherwise half.
func (e *Engine) analyzeCouplings() {
	moments := e.log.all()
	for i := 0; i+1 < len(moments); i++ {
		curr := moments[i]
		next := moments[i+1]

		shared := intersect(curr.Concepts, next.Concepts)
		if len(shared) == 0 {
			continue
		}

		id := string(curr.Source) + "->" + string(next.Source)
		recent := next.Timestamp-curr.Timestamp < recentCouplingWindowMs

		if coupling, ok := e.couplings[id]; ok {
			weight := 0.5
			if recent {
				weight = 1.0
			}
			coupling.Strength = clamp01(coupling.Strength + 0.1*weight)
			coupling.SharedConcepts = union(coupling.SharedConcepts, shared)
			coupling.LastActive = next.Timestamp
			continue
		}

		e.couplings[id] = &Coupling{
			SourceID:       curr.Source,
			TargetID:       next.Source,
			Strength:       e.cfg.CouplingThreshold,
			Type:           inferCouplingType(curr, next),
			SharedConcepts: shared,
			LastActive:     next.Timestamp,
		}
		e.couplingOrder = append(e.couplingOrder, id)
	}
}

// inferCouplingType classifies the relationship between two adjacent
// moments. Recognized kind progressions are sequential; same-source
// pairs are lateral; sub-five-second gaps between distinct sources are
// feedback loops; everything else is hierarchical.
func inferCouplingType(curr, next Moment) CouplingType {
	followUp := (curr.Type == KindMeditation && next.Type == KindInsight) ||
		(curr.Type == KindInsight && next.Type == KindCritique) ||
		(curr.Type == KindCritique && next.Type == KindMeditation)
	if followUp {
		return CouplingSequential
	}

	if curr.Source == next.Source {
		return CouplingLateral
	}

	if next.Timestamp-curr.Timestamp < feedbackWindowMs {
		return CouplingFeedback
	}

	return CouplingHierarchical
}

// intersect returns the elements of a that also appear in b, in a's
// order.
func intersect(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, s := range b {
		inB[s] = true
	}
	var out []string
	for _, s := range a {
		if inB[s] {
			out = append(out, s)
		}
	}
	return out
}

// union appends the elements of add that are missing from base,
// preserving first-seen order.
func union(base, add []string) []string {
	seen := make(map[string]bool, len(base))
	for _, s := range base {
		seen[s] = true
	}
	for _, s := range add {
		if !seen[s] {
			base = append(base, s)
			seen[s] = true
		}
	}
	return base
}
