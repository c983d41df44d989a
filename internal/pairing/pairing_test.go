package pairing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/resume-ats/internal/ai"
)

type fakeService struct {
	pairs []ai.Pair
	err   error
	calls int
}

func (f *fakeService) ExtractPairs(context.Context, string) ([]ai.Pair, error) {
	f.calls++
	return f.pairs, f.err
}

func (f *fakeService) ExtractPhrases(context.Context, string, int) ([]string, error) {
	return nil, errors.New("not used")
}

func (f *fakeService) WeighKeywords(context.Context, string, []string) (map[string]float64, error) {
	return nil, errors.New("not used")
}

const noisyExperience = `Acme Corp
Software Engineer
San Francisco, CA
Jan 2019 - Mar 2021
Built many things for a large number of customers daily
Winner of Global Hackathon
`

func TestHeuristicAdjacentLines(t *testing.T) {
	t.Parallel()

	got := Render(New(nil, nil).Heuristic("Acme Corp\nSoftware Engineer\n"))
	assert.Contains(t, got, "Acme Corp-Software Engineer")
	// both lines fit both shapes, so the reversed pair is produced too
	assert.Equal(t, []string{"Acme Corp-Software Engineer", "Software Engineer-Acme Corp"}, got)
}

func TestHeuristicNonASCIILines(t *testing.T) {
	t.Parallel()

	got := Render(New(nil, nil).Heuristic("Société Générale\nSoftware Engineer\n"))
	assert.Equal(t, []string{"Société Générale-Software Engineer", "Software Engineer-Société Générale"}, got)

	got = Render(New(nil, nil).Heuristic("Ingénieur Logiciel at Dassault Systèmes"))
	assert.Equal(t, []string{"Dassault Systèmes-Ingénieur Logiciel"}, got)
}

func TestHeuristicInlinePatterns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		expect []string
	}{
		{name: "position at company", text: "Software Engineer at Google", expect: []string{"Google-Software Engineer"}},
		{name: "company dash position", text: "Google - Senior Developer", expect: []string{"Google-Senior Developer"}},
		{name: "company colon position", text: "Initech: Analyst", expect: []string{"Initech-Analyst"}},
		{name: "lowercase only", text: "worked on stuff", expect: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expect, Render(New(nil, nil).Heuristic(tt.text)))
		})
	}
}

func TestHeuristicDropsNoisyLines(t *testing.T) {
	t.Parallel()

	core, observed := observer.New(zapcore.DebugLevel)
	got := Render(New(nil, zap.New(core)).Heuristic(noisyExperience))

	assert.Equal(t, []string{"Acme Corp-Software Engineer", "Software Engineer-Acme Corp"}, got)

	entries := observed.FilterMessage("line filter step").All()
	require.Len(t, entries, 4)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		fields := e.ContextMap()
		names = append(names, fields["name"].(string))
		assert.Equal(t, int64(1), fields["dropped"], "filter %v", fields["name"])
	}
	assert.Equal(t, []string{"comma", "year", "hackathon", "word_count"}, names)
}

func TestHeuristicDeduplicates(t *testing.T) {
	t.Parallel()

	got := Render(New(nil, nil).Heuristic("Engineer at Acme\nEngineer at Acme"))
	seen := make(map[string]bool)
	for _, pair := range got {
		assert.False(t, seen[pair], "duplicate pair %q", pair)
		seen[pair] = true
	}
	assert.NotEmpty(t, got)
}

func TestApplyStep(t *testing.T) {
	t.Parallel()

	filters := DefaultFilters()
	kept, step := Apply(filters[0], []string{"Acme", "Paris, France", "Dev"})
	assert.Equal(t, []string{"Acme", "Dev"}, kept)
	assert.Equal(t, Step{Initial: 3, Dropped: 1, Left: 2}, step)
}

func TestWordCountBoundary(t *testing.T) {
	t.Parallel()

	wordCount := DefaultFilters()[3]
	assert.True(t, wordCount.Keep("one two three four five six"))
	assert.False(t, wordCount.Keep("one two three four five six seven"))
}

func TestExtractEmptyExperienceSkipsService(t *testing.T) {
	t.Parallel()

	svc := &fakeService{pairs: []ai.Pair{{Company: "X", Position: "Y"}}}
	got := New(svc, nil).Extract(context.Background(), "  \n ")
	assert.Empty(t, got)
	assert.NotNil(t, got)
	assert.Zero(t, svc.calls)
}

func TestExtractUsesService(t *testing.T) {
	t.Parallel()

	svc := &fakeService{pairs: []ai.Pair{
		{Company: "Acme", Position: "Dev"},
		{Company: " Acme ", Position: "Dev"},
		{Company: "Beta", Position: ""},
	}}
	got := New(svc, nil).Extract(context.Background(), "anything")
	assert.Equal(t, []string{"Acme-Dev"}, got)
	assert.Equal(t, 1, svc.calls)
}

func TestExtractFallsBackWhenServiceFails(t *testing.T) {
	t.Parallel()

	expected := Render(New(nil, nil).Heuristic(noisyExperience))

	for _, err := range []error{
		errors.New("dial tcp: connection refused"),
		&ai.PayloadError{Interaction: ai.InteractionPairs, Problems: []string{"(root): Invalid type"}},
	} {
		core, observed := observer.New(zapcore.WarnLevel)
		svc := &fakeService{err: err}

		got := New(svc, zap.New(core)).Extract(context.Background(), noisyExperience)
		assert.Equal(t, expected, got)
		assert.Equal(t, 1, observed.FilterMessage("pair extraction service failed, using heuristics").Len())
	}
}
