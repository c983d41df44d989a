package document

import (
	"strings"
)

// Kind names a resume section.
type Kind string

const (
	KindProfile        Kind = "profile"
	KindExperience     Kind = "experience"
	KindEducation      Kind = "education"
	KindSkills         Kind = "skills"
	KindProjects       Kind = "projects"
	KindCertifications Kind = "certifications"
	KindAchievements   Kind = "achievements"
	KindActivities     Kind = "activities"
)

type headingRule struct {
	kind     Kind
	keywords []string
}

// headingRules is checked top to bottom; the first kind with a matching prefix wins.
var headingRules = []headingRule{
	{KindProfile, []string{"profile", "summary", "objective"}},
	{KindExperience, []string{"experience", "professional experience", "work experience", "employment history", "work history"}},
	{KindEducation, []string{"education", "academic background", "qualifications"}},
	{KindSkills, []string{"skills", "skill set", "technical skills", "competencies"}},
	{KindProjects, []string{"projects", "personal projects", "portfolio"}},
	{KindCertifications, []string{"certifications", "licenses", "credentials"}},
	{KindAchievements, []string{"achievements", "awards", "honors"}},
	{KindActivities, []string{"activities", "extracurricular activities", "volunteer work"}},
}

// Kinds returns every section kind in table order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(headingRules))
	for _, rule := range headingRules {
		kinds = append(kinds, rule.kind)
	}
	return kinds
}

// Heading is a line recognised as the start of a section.
type Heading struct {
	LineIndex int
	RawText   string
	Kind      Kind
}

// Span bounds the body of a section. End is exclusive; -1 means end of document.
type Span struct {
	Kind  Kind
	Start int
	End   int
}

// ClassifyHeading reports the section kind a line opens, if any.
func ClassifyHeading(line string) (Kind, bool) {
	low := strings.ToLower(line)
	for _, rule := range headingRules {
		for _, keyword := range rule.keywords {
			if strings.HasPrefix(low, keyword) {
				return rule.kind, true
			}
		}
	}
	return "", false
}

// DetectHeadings scans lines in order and returns every heading found.
func DetectHeadings(lines []string) []Heading {
	var headings []Heading
	for i, line := range lines {
		kind, ok := ClassifyHeading(line)
		if !ok {
			continue
		}
		headings = append(headings, Heading{LineIndex: i, RawText: line, Kind: kind})
	}
	return headings
}

// FindSpan bounds the first section of the given kind. The section ends at the
// next detected heading of any kind.
func FindSpan(headings []Heading, kind Kind) (Span, bool) {
	for i, h := range headings {
		if h.Kind != kind {
			continue
		}
		end := -1
		if i+1 < len(headings) {
			end = headings[i+1].LineIndex
		}
		return Span{Kind: kind, Start: h.LineIndex + 1, End: end}, true
	}
	return Span{}, false
}

// SpanText joins the lines covered by the span. ok is false when the span
// starts past the last line.
func SpanText(lines []string, span Span) (string, bool) {
	if span.Start < 0 || span.Start >= len(lines) {
		return "", false
	}
	end := span.End
	if end < 0 || end > len(lines) {
		end = len(lines)
	}
	if end < span.Start {
		end = span.Start
	}
	return strings.TrimSpace(strings.Join(lines[span.Start:end], "\n")), true
}

// Sections is the heading index of a document.
type Sections struct {
	lines    []string
	headings []Heading
}

// NewSections indexes the headings of lines.
func NewSections(lines []string) *Sections {
	return &Sections{lines: lines, headings: DetectHeadings(lines)}
}

// Headings returns the detected headings in line order.
func (s *Sections) Headings() []Heading {
	out := make([]Heading, len(s.headings))
	copy(out, s.headings)
	return out
}

// Span returns the bounds of the first section of kind.
func (s *Sections) Span(kind Kind) (Span, bool) {
	return FindSpan(s.headings, kind)
}

// Text returns the body of the first section of kind. A kind without a
// heading yields ok == false.
func (s *Sections) Text(kind Kind) (string, bool) {
	span, ok := s.Span(kind)
	if !ok {
		return "", false
	}
	return SpanText(s.lines, span)
}
