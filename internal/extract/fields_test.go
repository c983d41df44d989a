package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/resume-ats/internal/document"
	"github.com/spigell/resume-ats/internal/ner"
)

type fakeRecognizer struct {
	entities []ner.Entity
	err      error
	calls    int
	lastText string
}

func (f *fakeRecognizer) Entities(_ context.Context, text string) ([]ner.Entity, error) {
	f.calls++
	f.lastText = text
	return f.entities, f.err
}

func TestFirst(t *testing.T) {
	t.Parallel()

	calls := 0
	got, ok := First(
		func() (int, bool) { calls++; return 0, false },
		nil,
		func() (int, bool) { calls++; return 7, true },
		func() (int, bool) { calls++; return 9, true },
	)
	assert.True(t, ok)
	assert.Equal(t, 7, got)
	assert.Equal(t, 2, calls, "stages after the first success are not run")

	_, ok = First[string]()
	assert.False(t, ok)
}

func TestPatternTables(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		table   []Pattern
		role    Role
		input   string
		matches bool
	}{
		{"name single token", namePatterns, RoleStandaloneName, "Jane", true},
		{"name four tokens", namePatterns, RoleStandaloneName, "Mary Anne O'Neil-Smith Jr", true},
		{"name five tokens", namePatterns, RoleStandaloneName, "One Two Three Four Five", false},
		{"name lowercase", namePatterns, RoleStandaloneName, "jane doe", false},
		{"bare email", emailPatterns, RoleBareEmail, "write to a.b+c@mail.example.org today", true},
		{"mailto", emailPatterns, RoleMailtoURI, "[MAILTO:jane@co](x)", true},
		{"phone", phonePatterns, RolePhoneNumber, "+44 20 7946 0958", true},
		{"linkedin", linkedinPatterns, RoleProfileURL, "see linkedin.com/in/jane", true},
		{"github anchored", githubPatterns, RoleProfileURL, "https://github.com/jane", true},
		{"github embedded", githubPatterns, RoleProfileURL, "code at https://github.com/jane", false},
		{"skill token", skillPatterns, RoleSkillToken, "node.js", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var matched bool
			for _, p := range tt.table {
				if p.Role == tt.role && p.Expr.MatchString(tt.input) {
					matched = true
				}
			}
			assert.Equal(t, tt.matches, matched)
		})
	}
}

func TestNameFromStandaloneLine(t *testing.T) {
	t.Parallel()

	rec := &fakeRecognizer{}
	name, ok := Name(context.Background(), []string{"jane@co.com", "Jane Doe", "Engineer at Acme"}, rec)
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", name)
	assert.Zero(t, rec.calls)
}

func TestNameOnlyScansFirstTenLines(t *testing.T) {
	t.Parallel()

	lines := make([]string, 0, 12)
	for i := 0; i < 10; i++ {
		lines = append(lines, "contact: 555")
	}
	lines = append(lines, "Late Name")

	rec := &fakeRecognizer{entities: []ner.Entity{{Text: "Jane Roe", Label: ner.LabelPerson}}}
	name, ok := Name(context.Background(), lines, rec)
	require.True(t, ok)
	assert.Equal(t, "Jane Roe", name)
	assert.Equal(t, 1, rec.calls)
	assert.Contains(t, rec.lastText, "Late Name")
}

func TestNameRecognizerFailure(t *testing.T) {
	t.Parallel()

	rec := &fakeRecognizer{err: errors.New("model unavailable")}
	_, ok := Name(context.Background(), []string{"contact: 555"}, rec)
	assert.False(t, ok)

	_, ok = Name(context.Background(), []string{"contact: 555"}, nil)
	assert.False(t, ok)
}

func TestEmail(t *testing.T) {
	t.Parallel()

	email, ok := Email("Contact: jane.doe@example.com or mailto:other@example.com")
	require.True(t, ok)
	assert.Equal(t, "jane.doe@example.com", email)

	email, ok = Email("[Email](mailto:jane@co.com)")
	require.True(t, ok)
	assert.Equal(t, "jane@co.com", email)

	_, ok = Email("no address here")
	assert.False(t, ok)
}

func TestEmailMailtoOnly(t *testing.T) {
	t.Parallel()

	email, ok := Email("reach me: mailto:jane@co.com")
	require.True(t, ok)
	assert.Equal(t, "jane@co.com", email)
}

func TestEmailMailtoWithoutBareAddress(t *testing.T) {
	t.Parallel()

	email, ok := Email("MailTo:jane@localhost")
	require.True(t, ok)
	assert.Equal(t, "jane@localhost", email)
}

func TestPhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		expect string
		ok     bool
	}{
		{name: "international", text: "Call +1 (555) 123-4567 now", expect: "+1 (555) 123-4567", ok: true},
		{name: "dotted", text: "phone: 555.123.4567", expect: "555.123.4567", ok: true},
		{name: "too short", text: "Call 123-4567", ok: false},
		{name: "short first match wins", text: "ID 1234 5678 phone 555-123-4567", ok: false},
		{name: "none", text: "no digits", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Phone(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expect, got)
		})
	}
}

func TestLinkedInPrefersHyperlink(t *testing.T) {
	t.Parallel()

	text := "Profile: linkedin.com/in/text-jane/"
	got, ok := LinkedIn(text, []string{"https://evil-linkedin.com/in/x", "https://www.linkedin.com/in/link-jane/"})
	require.True(t, ok)
	assert.Equal(t, "https://www.linkedin.com/in/link-jane", got)

	got, ok = LinkedIn(text, nil)
	require.True(t, ok)
	assert.Equal(t, "linkedin.com/in/text-jane", got)

	_, ok = LinkedIn("nothing", []string{"https://linkedin.com"})
	assert.False(t, ok, "bare domain without a path is not a profile")
}

func TestGitHubPrefersHyperlink(t *testing.T) {
	t.Parallel()

	text := "Jane\nhttps://github.com/text-jane/\n"
	got, ok := GitHub(text, []string{"https://github.com/link-jane/repo"})
	require.True(t, ok)
	assert.Equal(t, "https://github.com/link-jane/repo", got)

	got, ok = GitHub(text, nil)
	require.True(t, ok)
	assert.Equal(t, "https://github.com/text-jane", got)
}

func TestGitHubTextFallbackIsAnchored(t *testing.T) {
	t.Parallel()

	_, ok := GitHub("Code: https://github.com/jane", nil)
	assert.False(t, ok)

	_, ok = GitHub("https://github.com/jane/repo", nil)
	assert.False(t, ok, "repository URLs are not profile URLs")
}

func TestSkills(t *testing.T) {
	t.Parallel()

	section := "Go, Python, C#, Node.js, SQL\nPython; Docker and go"
	skills := Skills(section)
	// two-letter tokens such as "go" and "c#" are below the minimum length
	assert.Equal(t, []string{"python", "node.js", "sql", "docker", "and"}, skills)

	assert.Equal(t, skills, Skills(section), "extraction is idempotent")
	assert.Empty(t, Skills(""))
}

func TestSkillsAccentedText(t *testing.T) {
	t.Parallel()

	skills := Skills("Résumé writing, Français, go-lang, Développement")
	// no fragments are cut out of words holding non-ASCII letters
	assert.Equal(t, []string{"writing", "go-lang"}, skills)
}

func TestExtractProfile(t *testing.T) {
	t.Parallel()

	doc := document.New("Jane Doe\njane@co.com | +1 555 123 4567\nhttps://github.com/jane", []string{"https://linkedin.com/in/jane/"})
	p := ExtractProfile(context.Background(), doc, nil)

	assert.Equal(t, Profile{
		Name:     "Jane Doe",
		Email:    "jane@co.com",
		Phone:    "+1 555 123 4567",
		LinkedIn: "https://linkedin.com/in/jane",
		GitHub:   "https://github.com/jane",
	}, p)
}
