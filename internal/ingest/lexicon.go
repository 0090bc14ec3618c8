package ingest

import "regexp"

// DefaultConceptLimit caps how many concepts are mined from free text
// when the caller does not supply any.
const DefaultConceptLimit = 5

// conceptLexicon is the vocabulary scanned for in event text, grouped
// by the kind of moment that tends to carry each word. Scan order is
// fixed so extraction is deterministic.
var conceptLexicon = []string{
	// meditation
	"emergence", "consciousness", "pattern", "flow", "transformation",
	// insight
	"clarity", "connection", "understanding", "revelation", "synthesis",
	// critique
	"tension", "constraint", "evaluation", "refinement", "challenge",
	// weave
	"integration", "harmony", "combination", "unity",
	// observation
	"awareness", "monitoring", "detection", "resonance", "coherence",
}

type conceptMatcher struct {
	concept string
	re      *regexp.Regexp
}

var conceptMatchers = compileLexicon()

func compileLexicon() []conceptMatcher {
	matchers := make([]conceptMatcher, 0, len(conceptLexicon))
	for _, concept := range conceptLexicon {
		matchers = append(matchers, conceptMatcher{
			concept: concept,
			re:      regexp.MustCompile(`(?i)\b` + concept + `\b`),
		})
	}
	return matchers
}

// ExtractConcepts scans text for lexicon words and returns the matches
// in lexicon order. A limit of zero or less means unbounded. Returns
// nil when nothing matches.
func ExtractConcepts(text string, limit int) []string {
	if text == "" {
		return nil
	}
	var concepts []string
	for _, m := range conceptMatchers {
		if limit > 0 && len(concepts) >= limit {
			break
		}
		if m.re.MatchString(text) {
			concepts = append(concepts, m.concept)
		}
	}
	return concepts
}
