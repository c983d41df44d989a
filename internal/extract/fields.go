package extract

import (
	"context"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/spigell/resume-ats/internal/document"
	"github.com/spigell/resume-ats/internal/ner"
)

const (
	nameLineWindow = 10
	nerLineWindow  = 50

	linkedinDomain = "linkedin.com"
	githubDomain   = "github.com"
)

// Profile holds the contact fields of a candidate. Empty means not found.
type Profile struct {
	Name     string
	Email    string
	Phone    string
	LinkedIn string
	GitHub   string
}

// ExtractProfile runs every contact extractor over doc.
func ExtractProfile(ctx context.Context, doc *document.Document, recognizer ner.Recognizer) Profile {
	var p Profile
	p.Name, _ = Name(ctx, doc.Lines, recognizer)
	p.Email, _ = Email(doc.Text)
	p.Phone, _ = Phone(doc.Text)
	p.LinkedIn, _ = LinkedIn(doc.Text, doc.Hyperlinks)
	p.GitHub, _ = GitHub(doc.Text, doc.Hyperlinks)
	return p
}

// Name looks for a standalone capitalised line near the top and falls back to
// the first person entity of the opening lines.
func Name(ctx context.Context, lines []string, recognizer ner.Recognizer) (string, bool) {
	return First(
		func() (string, bool) {
			for _, line := range head(lines, nameLineWindow) {
				for _, p := range namePatterns {
					if p.Expr.MatchString(line) {
						return line, true
					}
				}
			}
			return "", false
		},
		func() (string, bool) {
			if recognizer == nil || len(lines) == 0 {
				return "", false
			}
			entities, err := recognizer.Entities(ctx, strings.Join(head(lines, nerLineWindow), " "))
			if err != nil {
				return "", false
			}
			return ner.FirstPerson(entities)
		},
	)
}

// Email returns the first bare address, else the target of a mailto URI.
func Email(text string) (string, bool) {
	stages := make([]Stage[string], 0, len(emailPatterns))
	for _, p := range emailPatterns {
		stages = append(stages, matchStage(p, text))
	}
	return First(stages...)
}

// Phone returns the first number-like match. A first match holding fewer than
// ten digits means no phone number; later matches are not considered.
func Phone(text string) (string, bool) {
	for _, p := range phonePatterns {
		m := p.Expr.FindString(text)
		if m == "" {
			continue
		}
		if countDigits(m) < minPhoneDigits {
			return "", false
		}
		return strings.TrimSpace(m), true
	}
	return "", false
}

// LinkedIn prefers a linkedin.com hyperlink over a URL found in the text.
func LinkedIn(text string, hyperlinks []string) (string, bool) {
	return First(
		hyperlinkStage(hyperlinks, linkedinDomain),
		func() (string, bool) {
			for _, p := range linkedinPatterns {
				if m := p.Expr.FindString(text); m != "" {
					return strings.TrimRight(m, "/"), true
				}
			}
			return "", false
		},
	)
}

// GitHub prefers a github.com hyperlink. The text fallback only accepts a line
// that is entirely a profile URL.
func GitHub(text string, hyperlinks []string) (string, bool) {
	return First(
		hyperlinkStage(hyperlinks, githubDomain),
		func() (string, bool) {
			for _, line := range document.SplitLines(text) {
				for _, p := range githubPatterns {
					if p.Expr.MatchString(line) {
						return strings.TrimRight(line, "/"), true
					}
				}
			}
			return "", false
		},
	)
}

// Skills tokenises the skills section. Tokens are lowercase and unique, in
// order of first appearance.
func Skills(section string) []string {
	if strings.TrimSpace(section) == "" {
		return []string{}
	}

	text := strings.ToLower(section)
	seen := make(map[string]struct{})
	skills := make([]string, 0)
	for _, p := range skillPatterns {
		for _, token := range scanTokens(p, text) {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			skills = append(skills, token)
		}
	}
	return skills
}

// scanTokens returns the non-overlapping tokens of text matched by p that
// start and end on a word boundary. A candidate whose greedy end is not a
// boundary is shortened until it is.
func scanTokens(p Pattern, text string) []string {
	var tokens []string
	for i := 0; i < len(text); {
		if document.WordBoundary(text, i) {
			if loc := p.Expr.FindStringIndex(text[i:]); loc != nil {
				if end, ok := boundaryEnd(text, i, i+loc[1]); ok {
					tokens = append(tokens, text[i:end])
					i = end
					continue
				}
			}
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return tokens
}

func boundaryEnd(text string, start, end int) (int, bool) {
	for ; end >= start+minSkillLength; end-- {
		if document.WordBoundary(text, end) {
			return end, true
		}
	}
	return 0, false
}

func matchStage(p Pattern, text string) Stage[string] {
	return func() (string, bool) {
		m := p.Expr.FindStringSubmatch(text)
		if m == nil {
			return "", false
		}
		if len(m) > 1 {
			return m[1], m[1] != ""
		}
		return m[0], true
	}
}

func hyperlinkStage(hyperlinks []string, domain string) Stage[string] {
	return func() (string, bool) {
		for _, link := range hyperlinks {
			if hasDomain(link, domain) {
				return strings.TrimRight(link, "/"), true
			}
		}
		return "", false
	}
}

// hasDomain reports whether raw points at a path on exactly domain or www.domain.
func hasDomain(raw, domain string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if host != domain {
		return false
	}
	return strings.Trim(u.Path, "/") != ""
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

func head(lines []string, n int) []string {
	if len(lines) <= n {
		return lines
	}
	return lines[:n]
}
