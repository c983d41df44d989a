package ai

import (
	"context"
	"strings"
)

// Pair is a company and the position held there.
type Pair struct {
	Company  string `mapstructure:"company" json:"company"`
	Position string `mapstructure:"position" json:"position"`
}

// String renders the pair as "Company-Position".
func (p Pair) String() string {
	return p.Company + "-" + p.Position
}

// Service structures resume and job description text with a generative model.
// Every method returns an error on transport or payload failures; callers
// decide the fallback.
type Service interface {
	// ExtractPairs reads company and position pairs from an experience section.
	ExtractPairs(ctx context.Context, experience string) ([]Pair, error)
	// ExtractPhrases returns at most max lowercase requirement phrases.
	ExtractPhrases(ctx context.Context, jobDescription string, max int) ([]string, error)
	// WeighKeywords assigns each known keyword an importance in [0, 1].
	WeighKeywords(ctx context.Context, jobDescription string, keywords []string) (map[string]float64, error)
}

// NormalizePhrases lowercases and trims phrases, drops empty and repeated
// entries and keeps at most max of them. A non-positive max keeps all.
func NormalizePhrases(phrases []string, max int) []string {
	out := make([]string, 0, len(phrases))
	seen := make(map[string]struct{}, len(phrases))
	for _, phrase := range phrases {
		phrase = strings.ToLower(strings.TrimSpace(phrase))
		if phrase == "" {
			continue
		}
		if _, ok := seen[phrase]; ok {
			continue
		}
		seen[phrase] = struct{}{}
		out = append(out, phrase)
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}

// NormalizeWeights lowercases payload keys and keeps only those naming one of
// keywords.
func NormalizeWeights(weights map[string]float64, keywords []string) map[string]float64 {
	known := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		known[strings.ToLower(strings.TrimSpace(k))] = struct{}{}
	}

	out := make(map[string]float64, len(weights))
	for key, w := range weights {
		key = strings.ToLower(strings.TrimSpace(key))
		if _, ok := known[key]; !ok {
			continue
		}
		out[key] = w
	}
	return out
}

// NormalizePairs trims both parts, drops incomplete pairs and removes repeats
// by rendered string, keeping the first.
func NormalizePairs(pairs []Pair) []Pair {
	out := make([]Pair, 0, len(pairs))
	seen := make(map[string]struct{}, len(pairs))
	for _, p := range pairs {
		p.Company = strings.TrimSpace(p.Company)
		p.Position = strings.TrimSpace(p.Position)
		if p.Company == "" || p.Position == "" {
			continue
		}
		key := p.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}
