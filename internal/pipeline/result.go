package pipeline

import "time"

// Result is the flat record produced for one document. Optional fields are
// nil when not found and serialise as null.
type Result struct {
	FileName           string             `json:"file_name"`
	Name               *string            `json:"name"`
	Email              *string            `json:"email"`
	Phone              *string            `json:"phone"`
	LinkedIn           *string            `json:"linkedin"`
	GitHub             *string            `json:"github"`
	Skills             []string           `json:"skills"`
	RequiredSkills     []string           `json:"required_skills"`
	KeywordWeights     map[string]float64 `json:"keyword_weights"`
	KeywordFreqs       map[string]int     `json:"keyword_freqs"`
	MatchedSkills      []string           `json:"matched_skills"`
	ATSScore           *float64           `json:"ats_score"`
	ExperienceSection  *string            `json:"experience_section"`
	CompaniesPositions []string           `json:"companies_positions"`
	EducationSection   *string            `json:"education_section"`
}

// Batch is the output of a directory run.
type Batch struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Results     []*Result `json:"results"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
