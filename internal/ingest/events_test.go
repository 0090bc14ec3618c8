package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/resonanced/internal/resonance"
)

func TestDeliberationLog_Moment(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)

	m := DeliberationLog{
		Topic:   "the emergence of shared themes",
		Content: "noticing a flow between drafts",
		Novelty: scorePtr(0.7),
	}.Moment(now)

	assert.Equal(t, resonance.SourceCreative, m.Source)
	assert.Equal(t, resonance.KindMeditation, m.Type)
	assert.Equal(t, []string{"emergence", "flow"}, m.Concepts)
	assert.Equal(t, now.UnixMilli(), m.Timestamp)
	require.NotNil(t, m.Novelty)
	assert.InDelta(t, 0.7, *m.Novelty, 1e-9)
	assert.Equal(t, "the emergence of shared themes", m.Metadata["topic"])
}

func TestCritiqueResult_Moment(t *testing.T) {
	m := CritiqueResult{
		ID:        "moment-critique-1",
		Subject:   "draft three",
		Verdict:   "unresolved tension in the middle section",
		At:        1_700_000_001_000,
		Relevance: scorePtr(0.9),
	}.Moment(time.Now())

	assert.Equal(t, "moment-critique-1", m.ID)
	assert.Equal(t, resonance.SourceConsult, m.Source)
	assert.Equal(t, resonance.KindCritique, m.Type)
	assert.Equal(t, int64(1_700_000_001_000), m.Timestamp)
	assert.Equal(t, []string{"tension"}, m.Concepts)
	assert.Nil(t, m.Novelty)
	require.NotNil(t, m.Relevance)
	assert.InDelta(t, 0.9, *m.Relevance, 1e-9)
	assert.Equal(t, "draft three", m.Metadata["subject"])
}

func TestInsightNote_Moment(t *testing.T) {
	m := InsightNote{
		Text:    "sudden clarity about the connection between motifs",
		Novelty: scorePtr(0.95),
	}.Moment(time.Now())

	assert.Equal(t, resonance.SourceBridge, m.Source)
	assert.Equal(t, resonance.KindInsight, m.Type)
	assert.Equal(t, []string{"clarity", "connection"}, m.Concepts)
}

func TestNarrativeWeave_ThreadsBecomeConcepts(t *testing.T) {
	m := NarrativeWeave{
		Threads: []string{"memory", "tide"},
		Summary: "woven with harmony throughout",
	}.Moment(time.Now())

	assert.Equal(t, resonance.SourceDreamWeaver, m.Source)
	assert.Equal(t, resonance.KindWeave, m.Type)
	assert.Equal(t, []string{"memory", "tide"}, m.Concepts)
	assert.Equal(t, 2, m.Metadata["threads"])
}

func TestNarrativeWeave_FallsBackToSummary(t *testing.T) {
	m := NarrativeWeave{Summary: "an act of integration and unity"}.Moment(time.Now())
	assert.Equal(t, []string{"integration", "unity"}, m.Concepts)
}
