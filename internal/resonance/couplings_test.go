package resonance

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeCouplings_CreatesCouplingFromSharedConcepts(t *testing.T) {
	e := newTestEngine(t, DefaultConfig(), baseMs+10_000)

	e.AddObservation(moment("a", baseMs, SourceCreative, KindMeditation, "flow"))
	e.AddObservation(moment("b", baseMs+1000, SourceBridge, KindObservation, "flow"))

	couplings := e.Couplings()
	require.Len(t, couplings, 1)

	c := couplings[0]
	assert.Equal(t, SourceCreative, c.SourceID)
	assert.Equal(t, SourceBridge, c.TargetID)
	assert.InDelta(t, 0.3, c.Strength, 1e-9)
	assert.Equal(t, CouplingFeedback, c.Type)
	assert.Equal(t, []string{"flow"}, c.SharedConcepts)
	assert.Equal(t, baseMs+1000, c.LastActive)
}

func TestAnalyzeCouplings_NoSharedConceptsNoCoupling(t *testing.T) {
	e := newTestEngine(t, DefaultConfig(), baseMs)

	e.AddObservation(moment("a", baseMs, SourceCreative, KindMeditation, "flow"))
	e.AddObservation(moment("b", baseMs+1000, SourceBridge, KindObservation, "tension"))

	assert.Empty(t, e.Couplings())
}

func TestAnalyzeCouplings_ReinforcementAccumulates(t *testing.T) {
	e := newTestEngine(t, DefaultConfig(), baseMs+60_000)

	// creative -> bridge -> creative -> bridge, all sharing one concept.
	// Full rescans reinforce creative->bridge on every later insertion.
	for i := 0; i < 4; i++ {
		e.AddObservation(moment(
			fmt.Sprintf("m%d", i), baseMs+int64(i)*1000, alternating(i), KindObservation, "flow",
		))
	}

	var forward Coupling
	found := false
	for _, c := range e.Couplings() {
		if c.SourceID == SourceCreative && c.TargetID == SourceBridge {
			forward = c
			found = true
		}
	}
	require.True(t, found)

	// Created at 0.3, then reinforced three times at full weight: the
	// rescan after m3 revisits m0->m1 and m2->m3, the rescan after m2
	// revisited m0->m1.
	assert.InDelta(t, 0.6, forward.Strength, 1e-9)
	assert.Equal(t, baseMs+3000, forward.LastActive)
}

func TestAnalyzeCouplings_DistantReinforcementCountsHalf(t *testing.T) {
	e := newTestEngine(t, DefaultConfig(), baseMs+600_000)

	e.AddObservation(moment("a", baseMs, SourceCreative, KindObservation, "flow"))
	e.AddObservation(moment("b", baseMs+1000, SourceBridge, KindObservation, "flow"))
	// Third moment more than a minute after the second; the b->c pair is
	// new, and the next insertion reinforces a->b at full weight again
	// since reinforcement weight depends on the pair's own gap.
	e.AddObservation(moment("c", baseMs+200_000, SourceCreative, KindObservation, "flow"))
	e.AddObservation(moment("d", baseMs+201_000, SourceBridge, KindObservation, "flow"))

	var forward Coupling
	for _, c := range e.Couplings() {
		if c.SourceID == SourceCreative && c.TargetID == SourceBridge {
			forward = c
		}
	}

	// 0.3 at creation (a->b), +0.1 full for a->b during the rescan after
	// c, then after d: +0.1 (a->b) +0.1 (c->d), both gaps under a minute.
	assert.InDelta(t, 0.6, forward.Strength, 1e-9)

	var backward Coupling
	for _, c := range e.Couplings() {
		if c.SourceID == SourceBridge && c.TargetID == SourceCreative {
			backward = c
		}
	}

	// b->c created at 0.3, reinforced once at half weight after d since
	// its gap exceeds a minute.
	assert.InDelta(t, 0.35, backward.Strength, 1e-9)
}

func TestAnalyzeCouplings_StrengthClampsAtOne(t *testing.T) {
	e := newTestEngine(t, DefaultConfig(), baseMs+600_000)

	for i := 0; i < 30; i++ {
		e.AddObservation(moment(
			fmt.Sprintf("m%d", i), baseMs+int64(i)*1000, alternating(i), KindObservation, "flow",
		))
	}

	for _, c := range e.Couplings() {
		assert.LessOrEqual(t, c.Strength, 1.0)
	}
}

func TestAnalyzeCouplings_SharedConceptsAccumulate(t *testing.T) {
	e := newTestEngine(t, DefaultConfig(), baseMs+60_000)

	e.AddObservation(moment("a", baseMs, SourceCreative, KindObservation, "flow"))
	e.AddObservation(moment("b", baseMs+1000, SourceBridge, KindObservation, "flow"))
	e.AddObservation(moment("c", baseMs+2000, SourceCreative, KindObservation, "tension"))
	e.AddObservation(moment("d", baseMs+3000, SourceBridge, KindObservation, "tension", "flow"))

	var forward Coupling
	for _, c := range e.Couplings() {
		if c.SourceID == SourceCreative && c.TargetID == SourceBridge {
			forward = c
		}
	}
	assert.Equal(t, []string{"flow", "tension"}, forward.SharedConcepts)
}

func TestInferCouplingType(t *testing.T) {
	tests := []struct {
		name string
		curr Moment
		next Moment
		want CouplingType
	}{
		{
			name: "meditation to insight is sequential",
			curr: moment("a", baseMs, SourceCreative, KindMeditation, "x"),
			next: moment("b", baseMs+100_000, SourceBridge, KindInsight, "x"),
			want: CouplingSequential,
		},
		{
			name: "insight to critique is sequential",
			curr: moment("a", baseMs, SourceBridge, KindInsight, "x"),
			next: moment("b", baseMs+100_000, SourceConsult, KindCritique, "x"),
			want: CouplingSequential,
		},
		{
			name: "critique to meditation is sequential",
			curr: moment("a", baseMs, SourceConsult, KindCritique, "x"),
			next: moment("b", baseMs+100_000, SourceCreative, KindMeditation, "x"),
			want: CouplingSequential,
		},
		{
			name: "same source is lateral",
			curr: moment("a", baseMs, SourceCreative, KindMeditation, "x"),
			next: moment("b", baseMs+1000, SourceCreative, KindWeave, "x"),
			want: CouplingLateral,
		},
		{
			name: "tight gap between distinct sources is feedback",
			curr: moment("a", baseMs, SourceCreative, KindMeditation, "x"),
			next: moment("b", baseMs+1000, SourceBridge, KindObservation, "x"),
			want: CouplingFeedback,
		},
		{
			name: "slow gap between distinct sources is hierarchical",
			curr: moment("a", baseMs, SourceCreative, KindMeditation, "x"),
			next: moment("b", baseMs+10_000, SourceBridge, KindObservation, "x"),
			want: CouplingHierarchical,
		},
		{
			name: "sequential wins over lateral",
			curr: moment("a", baseMs, SourceCreative, KindMeditation, "x"),
			next: moment("b", baseMs+1000, SourceCreative, KindInsight, "x"),
			want: CouplingSequential,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inferCouplingType(tt.curr, tt.next))
		})
	}
}
