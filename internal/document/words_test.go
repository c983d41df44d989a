package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordBoundary(t *testing.T) {
	t.Parallel()

	s := "résumé go"
	assert.True(t, WordBoundary(s, 0))
	assert.False(t, WordBoundary(s, len("ré")), "accented letters are word characters")
	assert.True(t, WordBoundary(s, len("résumé")))
	assert.True(t, WordBoundary(s, len(s)))
	assert.False(t, WordBoundary("", 0))
	assert.False(t, WordBoundary("a, b", 2))
}

func TestCountWholeWord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		word   string
		limit  int
		expect int
	}{
		{name: "inside accented word", text: "résumé écrit en go", word: "sum", limit: 3, expect: 0},
		{name: "accented keyword", text: "résumé écrit en go", word: "écrit", limit: 3, expect: 1},
		{name: "ascii keyword", text: "résumé écrit en go", word: "go", limit: 3, expect: 1},
		{name: "capped", text: "go go go go go", word: "go", limit: 3, expect: 3},
		{name: "unlimited", text: "go go go go go", word: "go", limit: 0, expect: 5},
		{name: "prefix of longer word", text: "golang gopher", word: "go", limit: 3, expect: 0},
		{name: "underscore joins words", text: "go_lang", word: "go", limit: 3, expect: 0},
		{name: "multi word phrase", text: "we use machine learning daily", word: "machine learning", limit: 3, expect: 1},
		{name: "retry after failed candidate", text: "xgo go", word: "go", limit: 3, expect: 1},
		{name: "empty word", text: "anything", word: "", limit: 3, expect: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expect, CountWholeWord(tt.text, tt.word, tt.limit))
		})
	}
}
