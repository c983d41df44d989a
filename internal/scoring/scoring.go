// Package scoring computes the keyword-weighted ATS score of a resume against
// company skills and a job description.
package scoring

import (
	"context"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-ats/internal/ai"
	"github.com/spigell/resume-ats/internal/document"
)

const (
	// MaxFrequency caps how often a keyword counts.
	MaxFrequency = 3
	// DefaultWeight applies to keywords the weighting service did not rate.
	DefaultWeight = 1.0
	// DefaultMaxPhrases bounds the job description phrase list.
	DefaultMaxPhrases = 20
)

// Report is the outcome of scoring one resume.
type Report struct {
	// RequiredKeywords is ordered: company skills first, then job description
	// phrases.
	RequiredKeywords []string
	Weights          map[string]float64
	Frequencies      map[string]int
	Matched          []string
	// Score is nil when no keyword carries weight.
	Score *float64
}

// Engine scores resume text. The service is optional; without it no phrases
// are extracted and every keyword weighs DefaultWeight.
type Engine struct {
	service    ai.Service
	maxPhrases int
	logger     *zap.Logger
}

func New(service ai.Service, maxPhrases int, logger *zap.Logger) *Engine {
	if maxPhrases <= 0 {
		maxPhrases = DefaultMaxPhrases
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{service: service, maxPhrases: maxPhrases, logger: logger}
}

// Score runs the full keyword pipeline over text.
func (e *Engine) Score(ctx context.Context, text, jobDescription string, companySkills []string) Report {
	phrases := e.Phrases(ctx, jobDescription)
	keywords := MergeKeywords(companySkills, phrases)
	weights := e.Weights(ctx, jobDescription, keywords)
	freqs := Frequencies(text, keywords)

	report := Report{
		RequiredKeywords: keywords,
		Weights:          weights,
		Frequencies:      freqs,
		Matched:          Matched(keywords, freqs),
		Score:            Compute(keywords, weights, freqs),
	}

	e.logger.Debug("keywords scored",
		zap.Int("phrases", len(phrases)),
		zap.Int("keywords", len(keywords)),
		zap.Int("matched", len(report.Matched)),
	)

	return report
}

// Phrases asks the service for requirement phrases. Empty descriptions and
// failures yield an empty list.
func (e *Engine) Phrases(ctx context.Context, jobDescription string) []string {
	if strings.TrimSpace(jobDescription) == "" || e.service == nil {
		return []string{}
	}

	phrases, err := e.service.ExtractPhrases(ctx, jobDescription, e.maxPhrases)
	if err != nil {
		e.logger.Warn("phrase extraction failed, continuing without phrases", zap.Error(err))
		return []string{}
	}
	return ai.NormalizePhrases(phrases, e.maxPhrases)
}

// Weights rates every keyword. Any failure, and any keyword the service left
// out, falls back to DefaultWeight.
func (e *Engine) Weights(ctx context.Context, jobDescription string, keywords []string) map[string]float64 {
	weights := make(map[string]float64, len(keywords))
	for _, k := range keywords {
		weights[k] = DefaultWeight
	}
	if len(keywords) == 0 || e.service == nil {
		return weights
	}

	rated, err := e.service.WeighKeywords(ctx, jobDescription, keywords)
	if err != nil {
		e.logger.Warn("keyword weighting failed, using default weights", zap.Error(err))
		return weights
	}

	for k, w := range ai.NormalizeWeights(rated, keywords) {
		weights[k] = w
	}
	return weights
}

// MergeKeywords unions the keyword lists, lowercased and trimmed, dropping
// empty and repeated entries.
func MergeKeywords(lists ...[]string) []string {
	out := make([]string, 0)
	seen := make(map[string]struct{})
	for _, list := range lists {
		for _, k := range list {
			k = strings.ToLower(strings.TrimSpace(k))
			if k == "" {
				continue
			}
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	return out
}

// Frequencies counts case-insensitive whole-word occurrences of each keyword
// in text, capped at MaxFrequency. Any Unicode letter or number is a word
// character.
func Frequencies(text string, keywords []string) map[string]int {
	lower := strings.ToLower(text)
	freqs := make(map[string]int, len(keywords))
	for _, k := range keywords {
		freqs[k] = document.CountWholeWord(lower, strings.ToLower(k), MaxFrequency)
	}
	return freqs
}

// Compute returns 100 * Σ w·f over matched keywords divided by Σ w·MaxFrequency
// over all keywords, unmatched ones included, rounded to one decimal.
func Compute(keywords []string, weights map[string]float64, freqs map[string]int) *float64 {
	var num, den float64
	for _, k := range keywords {
		w := weightOf(weights, k)
		if f := freqs[k]; f > 0 {
			num += w * float64(f)
		}
		den += w * MaxFrequency
	}
	if den <= 0 {
		return nil
	}

	score := math.Round(num/den*100*10) / 10
	return &score
}

// Matched lists the keywords found at least once, in keyword order.
func Matched(keywords []string, freqs map[string]int) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if freqs[k] > 0 {
			out = append(out, k)
		}
	}
	return out
}

func weightOf(weights map[string]float64, k string) float64 {
	if w, ok := weights[k]; ok {
		return w
	}
	return DefaultWeight
}
