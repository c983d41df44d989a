package extract

import "regexp"

// Role describes what a pattern contributes to its extractor.
type Role string

const (
	RoleStandaloneName Role = "standalone-name"
	RoleBareEmail      Role = "bare-email"
	RoleMailtoURI      Role = "mailto-uri"
	RolePhoneNumber    Role = "phone-number"
	RoleProfileURL     Role = "profile-url"
	RoleSkillToken     Role = "skill-token"
)

// Pattern is an entry of an extractor's ordered pattern table.
type Pattern struct {
	Role Role
	Expr *regexp.Regexp
}

var (
	namePatterns = []Pattern{
		{RoleStandaloneName, regexp.MustCompile(`^[A-Z][a-zA-Z’'-]+(?:\s+[A-Z][a-zA-Z’'-]+){0,3}$`)},
	}

	// The mailto capture is read from group 1.
	emailPatterns = []Pattern{
		{RoleBareEmail, regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)},
		{RoleMailtoURI, regexp.MustCompile(`(?i)mailto:([^)\s]+)`)},
	}

	// country code, area code, grouped digits, extension
	phonePatterns = []Pattern{
		{RolePhoneNumber, regexp.MustCompile(
			`(?:\+?\d{1,3}[-.\s]*)?` +
				`(?:\(?\d{2,4}\)?[-.\s]*)?` +
				`\d{3,4}[-.\s]?\d{3,4}` +
				`(?:\s*(?:x|ext\.?)\s*\d{1,5})?`,
		)},
	}

	linkedinPatterns = []Pattern{
		{RoleProfileURL, regexp.MustCompile(`(?:https?://)?(?:www\.)?linkedin\.com/[^\s/]+(?:/[^\s/]+)?`)},
	}

	// Anchored: a whole line must be the profile URL.
	githubPatterns = []Pattern{
		{RoleProfileURL, regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.)?github\.com/[A-Za-z0-9_-]+/?$`)},
	}

	// Anchored at the candidate start; word boundaries are checked by the
	// scanner since RE2 only knows ASCII word characters.
	skillPatterns = []Pattern{
		{RoleSkillToken, regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9.+#-]{2,}`)},
	}
)

const (
	// minPhoneDigits is the shortest digit run accepted as a phone number.
	minPhoneDigits = 10
	// minSkillLength is the shortest skill token the skill pattern admits.
	minSkillLength = 3
)
