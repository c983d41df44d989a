// Package pipeline sequences text extraction, field extraction, pairing and
// scoring for a single document and for directories of documents.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/resume-ats/internal/ai"
	"github.com/spigell/resume-ats/internal/document"
	"github.com/spigell/resume-ats/internal/extract"
	"github.com/spigell/resume-ats/internal/logger"
	"github.com/spigell/resume-ats/internal/ner"
	"github.com/spigell/resume-ats/internal/pairing"
	"github.com/spigell/resume-ats/internal/scoring"
)

// TextExtractor turns document bytes into text and hyperlinks.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte) (string, []string, error)
}

// Deps are the service handles a Pipeline uses. Recognizer and Service are
// optional.
type Deps struct {
	Extractor  TextExtractor
	Recognizer ner.Recognizer
	Service    ai.Service
	MaxPhrases int
	Logger     *zap.Logger
}

// Options are the per-run scoring inputs.
type Options struct {
	JobDescriptionPath string
	CompanySkills      []string
}

type Pipeline struct {
	extractor  TextExtractor
	recognizer ner.Recognizer
	pairer     *pairing.Pairer
	scorer     *scoring.Engine
	logger     *zap.Logger
	now        func() time.Time
}

func New(deps Deps) *Pipeline {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Pipeline{
		extractor:  deps.Extractor,
		recognizer: deps.Recognizer,
		pairer:     pairing.New(deps.Service, log),
		scorer:     scoring.New(deps.Service, deps.MaxPhrases, log),
		logger:     log,
		now:        time.Now,
	}
}

// Process builds the result record of the document at documentPath. Only
// reading and text extraction can fail; every extractor falls back instead.
func (p *Pipeline) Process(ctx context.Context, documentPath string, opts Options) (*Result, error) {
	fileName := filepath.Base(documentPath)
	log := logger.WithDocument(p.logger, fileName)

	data, err := os.ReadFile(documentPath)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	text, links, err := p.extractor.Extract(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("extract text from %s: %w", fileName, err)
	}

	doc := document.New(text, links)
	sections := doc.Sections()
	log.Debug("sections detected", zap.Int("lines", len(doc.Lines)), zap.Int("headings", len(sections.Headings())))

	experience, hasExperience := sections.Text(document.KindExperience)
	education, hasEducation := sections.Text(document.KindEducation)
	skillsText, _ := sections.Text(document.KindSkills)
	skills := extract.Skills(skillsText)

	jobDescription, err := scoring.LoadJobDescription(opts.JobDescriptionPath)
	if err != nil {
		log.Warn("job description unreadable, scoring without it", zap.Error(err))
		jobDescription = ""
	}
	report := p.scorer.Score(ctx, doc.Text, jobDescription, opts.CompanySkills)

	profile := extract.ExtractProfile(ctx, doc, p.recognizer)
	log.Debug("profile extracted",
		zap.Bool("name", profile.Name != ""),
		zap.Bool("email", profile.Email != ""),
		zap.Bool("phone", profile.Phone != ""),
		zap.Bool("linkedin", profile.LinkedIn != ""),
		zap.Bool("github", profile.GitHub != ""),
	)

	pairs := p.pairer.Extract(ctx, experience)

	result := &Result{
		FileName:           fileName,
		Name:               optional(profile.Name),
		Email:              optional(profile.Email),
		Phone:              optional(profile.Phone),
		LinkedIn:           optional(profile.LinkedIn),
		GitHub:             optional(profile.GitHub),
		Skills:             skills,
		RequiredSkills:     report.RequiredKeywords,
		KeywordWeights:     report.Weights,
		KeywordFreqs:       report.Frequencies,
		MatchedSkills:      report.Matched,
		ATSScore:           report.Score,
		CompaniesPositions: pairs,
	}
	if hasExperience {
		result.ExperienceSection = &experience
	}
	if hasEducation {
		result.EducationSection = &education
	}

	fields := []zap.Field{zap.Int("skills", len(skills)), zap.Int("pairs", len(pairs))}
	if report.Score != nil {
		fields = append(fields, zap.Float64("ats_score", *report.Score))
	}
	log.Info("document processed", fields...)

	return result, nil
}
