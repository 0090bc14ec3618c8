package resonance

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

const noActiveCouplings = "No active couplings detected."

// VisualizeCouplings renders recently active couplings as a text graph.
// Couplings idle for more than two minutes are omitted; the rest are
// listed strongest first with a ten-segment strength bar.
func (e *Engine) VisualizeCouplings() string {
	now := e.nowMillis()

	var active []Coupling
	for _, id := range e.couplingOrder {
		c := e.couplings[id]
		if now-c.LastActive < visualizationWindowMs {
			active = append(active, copyCoupling(c))
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Strength > active[j].Strength
	})

	if len(active) == 0 {
		return noActiveCouplings
	}

	var b strings.Builder
	b.WriteString("COUPLING GRAPH:\n\n")
	for _, c := range active {
		fmt.Fprintf(&b, "%s %s %s\n", c.SourceID, strengthBar(c.Strength), c.TargetID)
		fmt.Fprintf(&b, "  Type: %s, Shared: [%s]\n\n", c.Type, strings.Join(c.SharedConcepts, ", "))
	}
	return b.String()
}

// strengthBar renders a 0-1 strength as a ten-segment bar.
func strengthBar(strength float64) string {
	filled := int(math.Round(strength * 10))
	if filled < 0 {
		filled = 0
	}
	if filled > 10 {
		filled = 10
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}
