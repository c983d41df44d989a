package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `
Jane Doe
jane@example.com

Summary
Backend engineer.
Experience
Acme Corp
Software Engineer
Education
BSc Computer Science
Skills
Go, Python, SQL
Experience again
Ignored Corp
`

func TestSplitLines(t *testing.T) {
	t.Parallel()

	lines := SplitLines("  one \r\n\n\t two\n   \nthree  ")
	assert.Equal(t, []string{"one", "two", "three"}, lines)
	assert.Empty(t, SplitLines(" \n \n"))
}

func TestNewDeduplicatesHyperlinks(t *testing.T) {
	t.Parallel()

	doc := New("text", []string{"https://github.com/jane/", "https://github.com/jane", " ", "mailto:jane@co.com"})
	assert.Equal(t, []string{"https://github.com/jane", "mailto:jane@co.com"}, doc.Hyperlinks)
}

func TestClassifyHeading(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line   string
		expect Kind
		ok     bool
	}{
		{line: "EXPERIENCE", expect: KindExperience, ok: true},
		{line: "Work History", expect: KindExperience, ok: true},
		{line: "Technical Skills", expect: KindSkills, ok: true},
		{line: "Summary of qualifications", expect: KindProfile, ok: true},
		{line: "Volunteer work", expect: KindActivities, ok: true},
		{line: "Honors and awards", expect: KindAchievements, ok: true},
		{line: "Acme Corp", ok: false},
		{line: "My experience", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()
			kind, ok := ClassifyHeading(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expect, kind)
		})
	}
}

func TestSectionsText(t *testing.T) {
	t.Parallel()

	doc := New(sampleResume, nil)
	sections := doc.Sections()

	headings := sections.Headings()
	require.Len(t, headings, 5)
	assert.Equal(t, KindProfile, headings[0].Kind)
	assert.Equal(t, "Summary", headings[0].RawText)

	experience, ok := sections.Text(KindExperience)
	require.True(t, ok)
	assert.Equal(t, "Acme Corp\nSoftware Engineer", experience)

	skills, ok := sections.Text(KindSkills)
	require.True(t, ok)
	assert.Equal(t, "Go, Python, SQL", skills, "a later heading of another kind still ends the span")

	_, ok = sections.Text(KindProjects)
	assert.False(t, ok, "missing heading yields no text")
}

func TestFindSpanRunsToDocumentEnd(t *testing.T) {
	t.Parallel()

	lines := []string{"Name", "Education", "MIT", "PhD"}
	span, ok := FindSpan(DetectHeadings(lines), KindEducation)
	require.True(t, ok)
	assert.Equal(t, Span{Kind: KindEducation, Start: 2, End: -1}, span)

	text, ok := SpanText(lines, span)
	require.True(t, ok)
	assert.Equal(t, "MIT\nPhD", text)
}

func TestSpanTextHeadingOnLastLine(t *testing.T) {
	t.Parallel()

	lines := []string{"Jane", "Skills"}
	sections := NewSections(lines)
	_, ok := sections.Text(KindSkills)
	assert.False(t, ok)
}

func TestSpanTextAdjacentHeadingsIsEmpty(t *testing.T) {
	t.Parallel()

	sections := NewSections([]string{"Skills", "Education", "MIT"})
	text, ok := sections.Text(KindSkills)
	assert.True(t, ok)
	assert.Empty(t, text)
}
