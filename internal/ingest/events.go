package ingest

import (
	"time"

	"github.com/fyrsmithlabs/resonanced/internal/resonance"
)

// DeliberationLog is a reasoning session emitted by a creative
// deliberation system. It lands as a meditation moment.
type DeliberationLog struct {
	ID      string   `json:"id,omitempty"`
	Topic   string   `json:"topic"`
	Content string   `json:"content,omitempty"`
	At      int64    `json:"at,omitempty"`
	Novelty *float64 `json:"novelty,omitempty"`
}

// Moment converts the log entry into an ecosystem moment. Concepts are
// mined from the topic and body text.
func (d DeliberationLog) Moment(now time.Time) resonance.Moment {
	return MomentInput{
		ID:        d.ID,
		Timestamp: d.At,
		Source:    string(resonance.SourceCreative),
		Type:      string(resonance.KindMeditation),
		Text:      d.Topic + " " + d.Content,
		Novelty:   d.Novelty,
		Metadata:  map[string]any{"topic": d.Topic},
	}.Moment(now)
}

// CritiqueResult is a verdict from an evaluation system. It lands as a
// critique moment.
type CritiqueResult struct {
	ID        string   `json:"id,omitempty"`
	Subject   string   `json:"subject"`
	Verdict   string   `json:"verdict,omitempty"`
	At        int64    `json:"at,omitempty"`
	Relevance *float64 `json:"relevance,omitempty"`
}

// Moment converts the critique into an ecosystem moment.
func (c CritiqueResult) Moment(now time.Time) resonance.Moment {
	return MomentInput{
		ID:        c.ID,
		Timestamp: c.At,
		Source:    string(resonance.SourceConsult),
		Type:      string(resonance.KindCritique),
		Text:      c.Subject + " " + c.Verdict,
		Relevance: c.Relevance,
		Metadata:  map[string]any{"subject": c.Subject, "verdict": c.Verdict},
	}.Moment(now)
}

// InsightNote is a connective observation from a bridging system. It
// lands as an insight moment.
type InsightNote struct {
	ID        string   `json:"id,omitempty"`
	Text      string   `json:"text"`
	At        int64    `json:"at,omitempty"`
	Novelty   *float64 `json:"novelty,omitempty"`
	Relevance *float64 `json:"relevance,omitempty"`
}

// Moment converts the note into an ecosystem moment.
func (n InsightNote) Moment(now time.Time) resonance.Moment {
	return MomentInput{
		ID:        n.ID,
		Timestamp: n.At,
		Source:    string(resonance.SourceBridge),
		Type:      string(resonance.KindInsight),
		Text:      n.Text,
		Novelty:   n.Novelty,
		Relevance: n.Relevance,
	}.Moment(now)
}

// NarrativeWeave is a synthesis produced by a narrative system. It
// lands as a weave moment. Threads name the strands that were woven and
// double as the moment's concepts.
type NarrativeWeave struct {
	ID      string   `json:"id,omitempty"`
	Threads []string `json:"threads"`
	Summary string   `json:"summary,omitempty"`
	At      int64    `json:"at,omitempty"`
	Novelty *float64 `json:"novelty,omitempty"`
}

// Moment converts the weave into an ecosystem moment. When no threads
// are named the summary text is mined instead.
func (w NarrativeWeave) Moment(now time.Time) resonance.Moment {
	return MomentInput{
		ID:        w.ID,
		Timestamp: w.At,
		Source:    string(resonance.SourceDreamWeaver),
		Type:      string(resonance.KindWeave),
		Concepts:  w.Threads,
		Text:      w.Summary,
		Novelty:   w.Novelty,
		Metadata:  map[string]any{"threads": len(w.Threads)},
	}.Moment(now)
}
