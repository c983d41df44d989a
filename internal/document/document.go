package document

import (
	"strings"
)

// Document is the immutable text view of a single input file.
type Document struct {
	Text       string
	Lines      []string
	Hyperlinks []string
}

// New builds a Document from extracted text and hyperlink URIs.
func New(text string, hyperlinks []string) *Document {
	return &Document{
		Text:       text,
		Lines:      SplitLines(text),
		Hyperlinks: NormalizeLinks(hyperlinks),
	}
}

// NormalizeLinks trims links, strips trailing slashes and drops empty and
// repeated entries.
func NormalizeLinks(hyperlinks []string) []string {
	links := make([]string, 0, len(hyperlinks))
	seen := make(map[string]struct{}, len(hyperlinks))
	for _, link := range hyperlinks {
		link = strings.TrimRight(strings.TrimSpace(link), "/")
		if link == "" {
			continue
		}
		if _, ok := seen[link]; ok {
			continue
		}
		seen[link] = struct{}{}
		links = append(links, link)
	}
	return links
}

// SplitLines returns the trimmed non-empty lines of text.
func SplitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(strings.ReplaceAll(line, "\r", ""))
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// Sections detects headings once and exposes section text by kind.
func (d *Document) Sections() *Sections {
	return NewSections(d.Lines)
}
