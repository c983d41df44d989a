package scoring

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

type companySkillsFile struct {
	RequiredSkills []string `json:"required_skills"`
}

// LoadCompanySkills reads a {"required_skills": [...]} file. A missing file
// yields no skills.
func LoadCompanySkills(path string) ([]string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return []string{}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read company skills %q: %w", path, err)
	}

	var file companySkillsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse company skills %q: %w", path, err)
	}

	return MergeKeywords(file.RequiredSkills), nil
}

// LoadJobDescription reads a plain-text job description. A missing file
// yields an empty description.
func LoadJobDescription(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read job description %q: %w", path, err)
	}
	return string(data), nil
}

// ParseSkillList splits a comma-separated skill list as typed by a user.
func ParseSkillList(s string) []string {
	return MergeKeywords(strings.Split(s, ","))
}
