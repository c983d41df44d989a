package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/resume-ats/internal/ai"
	"github.com/spigell/resume-ats/internal/logger"
)

const providerName = "gemini"

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

var (
	//go:embed prompts/pairs.md
	pairsPrompt string
	//go:embed prompts/phrases.md
	phrasesPrompt string
	//go:embed prompts/weights.md
	weightsPrompt string
)

const defaultMaxLogLength = 200

// Service implements ai.Service on top of a Gemini generator.
type Service struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

var _ ai.Service = (*Service)(nil)

func NewService(generator contentGenerator, log *zap.Logger, maxLogLength int) *Service {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Service{
		generator: generator,
		logger:    logger.WithCommonFields(log, providerName, generator.Model()),
		maxLogLen: maxLogLength,
	}
}

func (s *Service) ExtractPairs(ctx context.Context, experience string) ([]ai.Pair, error) {
	if strings.TrimSpace(experience) == "" {
		return nil, errors.New("experience text is required")
	}

	prompt := fillTemplate(pairsPrompt, "EXPERIENCE", experience)

	var pairs []ai.Pair
	if err := s.exchange(ctx, ai.InteractionPairs, prompt, &pairs); err != nil {
		return nil, err
	}
	return ai.NormalizePairs(pairs), nil
}

func (s *Service) ExtractPhrases(ctx context.Context, jobDescription string, max int) ([]string, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, errors.New("job description is required")
	}

	prompt := fillTemplate(phrasesPrompt,
		"MAX_PHRASES", strconv.Itoa(max),
		"JOB_DESCRIPTION", jobDescription,
	)

	var phrases []string
	if err := s.exchange(ctx, ai.InteractionPhrases, prompt, &phrases); err != nil {
		return nil, err
	}
	return ai.NormalizePhrases(phrases, max), nil
}

func (s *Service) WeighKeywords(ctx context.Context, jobDescription string, keywords []string) (map[string]float64, error) {
	if len(keywords) == 0 {
		return nil, errors.New("keywords are required")
	}

	list, err := json.Marshal(keywords)
	if err != nil {
		return nil, fmt.Errorf("marshal keywords: %w", err)
	}

	prompt := fillTemplate(weightsPrompt,
		"KEYWORDS", string(list),
		"JOB_DESCRIPTION", jobDescription,
	)

	var weights map[string]float64
	if err := s.exchange(ctx, ai.InteractionWeights, prompt, &weights); err != nil {
		return nil, err
	}
	return ai.NormalizeWeights(weights, keywords), nil
}

// Close releases the underlying generator when it holds resources.
func (s *Service) Close() error {
	if closer, ok := s.generator.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (s *Service) exchange(ctx context.Context, interaction ai.Interaction, prompt string, out any) error {
	s.logger.Debug("gemini generate content request",
		zap.String("interaction", string(interaction)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, s.maxLogLen)),
	)

	raw, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return fmt.Errorf("%s request: %w", interaction, err)
	}

	s.logger.Debug("gemini generate content response",
		zap.String("interaction", string(interaction)),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, s.maxLogLen)),
	)

	return ai.Decode(interaction, raw, out)
}

// fillTemplate substitutes {{NAME}} placeholders given as name, value pairs in
// a single pass, so placeholder text inside a value is left as is.
func fillTemplate(template string, pairs ...string) string {
	oldnew := make([]string, 0, len(pairs))
	for i := 0; i+1 < len(pairs); i += 2 {
		oldnew = append(oldnew, "{{"+pairs[i]+"}}", pairs[i+1])
	}
	return strings.NewReplacer(oldnew...).Replace(template)
}
