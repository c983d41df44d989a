package pairing

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

const maxLineWords = 6

var yearPattern = regexp.MustCompile(`\b20\d{2}\b`)

// LineFilter drops experience lines that cannot name a company or position.
type LineFilter interface {
	Name() string
	Keep(line string) bool
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

type lineFilter struct {
	name string
	keep func(string) bool
}

func (f lineFilter) Name() string { return f.name }

func (f lineFilter) Keep(line string) bool { return f.keep(line) }

// DefaultFilters returns the line filters in the order they are applied:
// locations (commas), dates, hackathons, then long lines.
func DefaultFilters() []LineFilter {
	return []LineFilter{
		lineFilter{name: "comma", keep: func(l string) bool {
			return !strings.Contains(l, ",")
		}},
		lineFilter{name: "year", keep: func(l string) bool {
			return !yearPattern.MatchString(l)
		}},
		lineFilter{name: "hackathon", keep: func(l string) bool {
			return !strings.Contains(strings.ToLower(l), "hackathon")
		}},
		lineFilter{name: "word_count", keep: func(l string) bool {
			return len(strings.Fields(l)) <= maxLineWords
		}},
	}
}

// Apply runs one filter over lines.
func Apply(f LineFilter, lines []string) ([]string, Step) {
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if f.Keep(line) {
			kept = append(kept, line)
		}
	}
	return kept, Step{Initial: len(lines), Dropped: len(lines) - len(kept), Left: len(kept)}
}

// Run applies filters sequentially and logs each step.
func Run(logger *zap.Logger, filters []LineFilter, lines []string) []string {
	for _, f := range filters {
		var info Step
		lines, info = Apply(f, lines)
		if logger != nil {
			logger.Debug("line filter step",
				zap.String("name", f.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}
	}
	return lines
}
