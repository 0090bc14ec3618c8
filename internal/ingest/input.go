// Package ingest converts ecosystem events into engine moments. It
// owns the concept lexicon, moment identifier generation, and the typed
// adapters for the upstream systems that feed the observer.
package ingest

import (
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/fyrsmithlabs/resonanced/internal/resonance"
)

var (
	entropyMu sync.Mutex
	entropy   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// NewMomentID returns a time-sortable moment identifier of the form
// "moment-<ULID>". The embedded timestamp makes log order and identifier
// order agree.
func NewMomentID(t time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return "moment-" + ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// MomentInput is the transport-agnostic shape of a recorded moment.
// Both the MCP record tool and the HTTP ingest endpoint build moments
// through it so defaulting behaves identically everywhere.
type MomentInput struct {
	// ID is optional; a ULID-based identifier is generated when empty.
	ID string `json:"id,omitempty"`
	// Timestamp is optional epoch milliseconds; zero means "now".
	Timestamp int64 `json:"timestamp,omitempty"`
	// Source tags the producing system. Empty defaults to external.
	Source string `json:"source"`
	// Type classifies the event. Empty defaults to unknown.
	Type string `json:"type"`
	// Concepts are used verbatim when present.
	Concepts []string `json:"concepts,omitempty"`
	// Text is scanned for lexicon concepts when Concepts is empty.
	Text string `json:"text,omitempty"`
	// Novelty and Relevance are optional 0-1 scores.
	Novelty   *float64 `json:"novelty,omitempty"`
	Relevance *float64 `json:"relevance,omitempty"`
	// Metadata is carried through untouched.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Moment materializes the input at the given time, filling identifier,
// timestamp, source, kind, and concepts with their defaults.
func (in MomentInput) Moment(now time.Time) resonance.Moment {
	id := in.ID
	if id == "" {
		id = NewMomentID(now)
	}

	ts := in.Timestamp
	if ts == 0 {
		ts = now.UnixMilli()
	}

	source := resonance.Source(in.Source)
	if source == "" {
		source = resonance.SourceExternal
	}

	kind := resonance.MomentKind(in.Type)
	if kind == "" {
		kind = resonance.KindUnknown
	}

	concepts := in.Concepts
	if len(concepts) == 0 && in.Text != "" {
		concepts = ExtractConcepts(in.Text, DefaultConceptLimit)
	}

	return resonance.Moment{
		ID:        id,
		Timestamp: ts,
		Source:    source,
		Type:      kind,
		Concepts:  concepts,
		Novelty:   in.Novelty,
		Relevance: in.Relevance,
		Metadata:  in.Metadata,
	}
}
