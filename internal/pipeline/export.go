package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// CSVHeader lists the CSV columns in record order.
var CSVHeader = []string{
	"file_name", "name", "email", "phone", "linkedin", "github",
	"skills", "required_skills", "keyword_weights", "keyword_freqs",
	"matched_skills", "ats_score", "experience_section",
	"companies_positions", "education_section",
}

// WriteJSON writes the batch as indented JSON.
func WriteJSON(w io.Writer, batch *Batch) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(batch); err != nil {
		return fmt.Errorf("encode batch: %w", err)
	}
	return nil
}

// WriteCSV writes one row per result. Skills are joined with ";" and pairs
// with "|"; other lists and maps are JSON-encoded cells.
func WriteCSV(w io.Writer, results []*Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, r := range results {
		row, err := csvRow(r)
		if err != nil {
			return fmt.Errorf("%s: %w", r.FileName, err)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadJSON loads a batch written by WriteJSON.
func ReadJSON(r io.Reader) (*Batch, error) {
	var batch Batch
	if err := json.NewDecoder(r).Decode(&batch); err != nil {
		return nil, fmt.Errorf("decode batch: %w", err)
	}
	return &batch, nil
}

// WriteFiles writes the JSON and CSV outputs. An empty path skips that output.
func WriteFiles(batch *Batch, jsonPath, csvPath string) error {
	if jsonPath != "" {
		if err := writeFile(jsonPath, func(w io.Writer) error { return WriteJSON(w, batch) }); err != nil {
			return err
		}
	}
	if csvPath != "" {
		if err := writeFile(csvPath, func(w io.Writer) error { return WriteCSV(w, batch.Results) }); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func csvRow(r *Result) ([]string, error) {
	cells := make([]string, 0, len(CSVHeader))
	cells = append(cells,
		r.FileName,
		deref(r.Name), deref(r.Email), deref(r.Phone), deref(r.LinkedIn), deref(r.GitHub),
		strings.Join(r.Skills, ";"),
	)

	for _, v := range []any{r.RequiredSkills, r.KeywordWeights, r.KeywordFreqs, r.MatchedSkills} {
		cell, err := jsonCell(v)
		if err != nil {
			return nil, err
		}
		cells = append(cells, cell)
	}

	score := ""
	if r.ATSScore != nil {
		score = strconv.FormatFloat(*r.ATSScore, 'f', -1, 64)
	}

	cells = append(cells,
		score,
		deref(r.ExperienceSection),
		strings.Join(r.CompaniesPositions, "|"),
		deref(r.EducationSection),
	)
	return cells, nil
}

func jsonCell(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode cell: %w", err)
	}
	return string(b), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
