package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractConcepts_FindsLexiconWords(t *testing.T) {
	got := ExtractConcepts("a moment of emergence in the flow of work", DefaultConceptLimit)
	assert.Equal(t, []string{"emergence", "flow"}, got)
}

func TestExtractConcepts_UsesLexiconOrderNotTextOrder(t *testing.T) {
	got := ExtractConcepts("flow preceded emergence here", DefaultConceptLimit)
	assert.Equal(t, []string{"emergence", "flow"}, got)
}

func TestExtractConcepts_IsCaseInsensitive(t *testing.T) {
	got := ExtractConcepts("EMERGENCE and Clarity", DefaultConceptLimit)
	assert.Equal(t, []string{"emergence", "clarity"}, got)
}

func TestExtractConcepts_RespectsWordBoundaries(t *testing.T) {
	assert.Empty(t, ExtractConcepts("flowing patterns-of-thought", 0))
	assert.Equal(t, []string{"pattern", "flow"}, ExtractConcepts("the flow of a pattern", 0))
}

func TestExtractConcepts_CapsAtLimit(t *testing.T) {
	text := "emergence consciousness pattern flow transformation clarity tension"
	got := ExtractConcepts(text, 5)
	assert.Equal(t, []string{"emergence", "consciousness", "pattern", "flow", "transformation"}, got)
}

func TestExtractConcepts_ZeroLimitMeansUnbounded(t *testing.T) {
	text := "emergence consciousness pattern flow transformation clarity tension"
	got := ExtractConcepts(text, 0)
	assert.Len(t, got, 7)
}

func TestExtractConcepts_EmptyText(t *testing.T) {
	assert.Nil(t, ExtractConcepts("", DefaultConceptLimit))
	assert.Nil(t, ExtractConcepts("nothing notable here", DefaultConceptLimit))
}
