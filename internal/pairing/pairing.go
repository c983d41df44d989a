// Package pairing derives "Company-Position" pairs from an experience section.
package pairing

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-ats/internal/ai"
	"github.com/spigell/resume-ats/internal/document"
)

// wordClass and spaceClass are the Unicode-aware replacements for \w and \s
// inside the character classes below.
const (
	wordClass  = `\p{L}\p{N}_`
	spaceClass = `\s\p{Zs}`
)

// Inline patterns run over the newline-joined filtered lines, so a match may
// span lines.
var (
	// "Position at Company"
	positionAtCompany = regexp.MustCompile(`([A-Z][` + wordClass + `/&+` + spaceClass + `'’-]{2,}?)[` + spaceClass + `]+at[` + spaceClass + `]+([A-Z][` + wordClass + `.&()'’\-` + spaceClass + `]+)`)
	// "Company - Position" or "Company: Position"
	companyDashPosition = regexp.MustCompile(`([A-Z][` + wordClass + `.&()'’\-` + spaceClass + `]+?)[` + spaceClass + `]*[-:][` + spaceClass + `]*([A-Z][` + wordClass + `/&+` + spaceClass + `'’-]{2,})`)

	companyLine  = regexp.MustCompile(`^[A-Z][` + wordClass + `.&()'’\-` + spaceClass + `]+$`)
	positionLine = regexp.MustCompile(`^[A-Z][` + wordClass + `/&+` + spaceClass + `'’-]{2,}$`)
)

// Pairer extracts pairs with an optional generative service and the
// deterministic cascade as fallback.
type Pairer struct {
	service ai.Service
	filters []LineFilter
	logger  *zap.Logger
}

// New returns a Pairer. A nil service always uses the deterministic cascade.
func New(service ai.Service, logger *zap.Logger) *Pairer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pairer{service: service, filters: DefaultFilters(), logger: logger}
}

// Extract returns the rendered pairs of experience in first-occurrence order.
// Empty experience yields an empty list without contacting the service.
func (p *Pairer) Extract(ctx context.Context, experience string) []string {
	if strings.TrimSpace(experience) == "" {
		return []string{}
	}

	if p.service != nil {
		pairs, err := p.service.ExtractPairs(ctx, experience)
		if err == nil {
			return Render(ai.NormalizePairs(pairs))
		}

		var payloadErr *ai.PayloadError
		reason := "transport"
		if errors.As(err, &payloadErr) {
			reason = "payload"
		}
		p.logger.Warn("pair extraction service failed, using heuristics",
			zap.String("reason", reason),
			zap.Error(err),
		)
	}

	return Render(p.Heuristic(experience))
}

// Heuristic runs the deterministic cascade: line filters, the two inline
// patterns and adjacent-line detection.
func (p *Pairer) Heuristic(experience string) []ai.Pair {
	lines := Run(p.logger, p.filters, document.SplitLines(experience))
	joined := strings.Join(lines, "\n")

	var pairs []ai.Pair

	for _, m := range positionAtCompany.FindAllStringSubmatch(joined, -1) {
		pairs = append(pairs, ai.Pair{Company: m[2], Position: m[1]})
	}

	for _, m := range companyDashPosition.FindAllStringSubmatch(joined, -1) {
		pairs = append(pairs, ai.Pair{Company: m[1], Position: m[2]})
	}

	// Both directions are checked for every adjacent pair, so two lines that
	// fit both shapes yield two pairs.
	for i := 0; i+1 < len(lines); i++ {
		first, second := lines[i], lines[i+1]
		if companyLine.MatchString(first) && positionLine.MatchString(second) {
			pairs = append(pairs, ai.Pair{Company: first, Position: second})
		}
		if positionLine.MatchString(first) && companyLine.MatchString(second) {
			pairs = append(pairs, ai.Pair{Company: second, Position: first})
		}
	}

	return ai.NormalizePairs(pairs)
}

// Render formats pairs as "Company-Position".
func Render(pairs []ai.Pair) []string {
	out := make([]string, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, p.String())
	}
	return out
}
