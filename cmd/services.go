package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-ats/internal/ai/gemini"
	"github.com/spigell/resume-ats/internal/logger"
	"github.com/spigell/resume-ats/internal/ner"
	"github.com/spigell/resume-ats/internal/pipeline"
	"github.com/spigell/resume-ats/internal/scoring"
	"github.com/spigell/resume-ats/internal/secrets"
	"github.com/spigell/resume-ats/internal/textract"
)

const googleAPIKeyEnv = "GOOGLE_API_KEY"

// setup builds the logger and the validated config. Failures are fatal.
func setup() (*zap.Logger, *Config) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Debug("starting with config", zap.Any("config", config))

	return logger, config
}

// newPipeline wires the services. When AI is enabled a missing key or a
// client that cannot be built aborts the command before any document is read.
func newPipeline(ctx context.Context, config *Config, logger *zap.Logger) (*pipeline.Pipeline, func()) {
	deps := pipeline.Deps{
		Extractor: textract.New(textract.Options{
			MinTextLength: config.Extraction.MinTextLength,
			OCR:           config.Extraction.OCR.Enabled,
			DPI:           config.Extraction.OCR.DPI,
			Logger:        logger.Named("textract"),
		}),
		Recognizer: ner.NewProse(logger.Named("ner")),
		MaxPhrases: config.AI.MaxJDPhrases,
		Logger:     logger,
	}

	closer := func() {}
	if config.AI.Enabled {
		service, err := newAIService(ctx, config.AI, logger)
		if err != nil {
			logger.Fatal("building ai service", zap.Error(err))
		}
		deps.Service = service
		closer = func() {
			if err := service.Close(); err != nil {
				logger.Warn("closing ai service", zap.Error(err))
			}
		}
	} else {
		logger.Info("ai disabled, using heuristics and default weights")
	}

	return pipeline.New(deps), closer
}

func newAIService(ctx context.Context, config *AIConfig, base *zap.Logger) (*gemini.Service, error) {
	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		File:  config.Gemini.APIKeyFile,
		Value: config.Gemini.APIKey,
		Env:   googleAPIKeyEnv,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file, ai.gemini.api-key or %s)", err, googleAPIKeyEnv)
	}

	genLogger := logger.WithCommonFields(base, "gemini", config.Gemini.Model).With(
		zap.Int("ai_retry_attempts", config.Gemini.MaxRetries),
	)

	generator, err := gemini.NewGenerator(ctx, gemini.GeneratorOptions{
		APIKey:            apiKey,
		Model:             config.Gemini.Model,
		Timeout:           config.Gemini.Timeout,
		MaxRetries:        config.Gemini.MaxRetries,
		RequestsPerSecond: config.Gemini.RequestsPerSecond,
		Logger:            genLogger,
	})
	if err != nil {
		return nil, err
	}

	return gemini.NewService(generator, base, config.Gemini.MaxLogLength), nil
}

func addScoringFlags(cmd *cobra.Command) {
	cmd.Flags().String("jd", "", "job description text file (overrides scoring.job-description)")
	cmd.Flags().String("skills", "", "comma-separated required skills, added to scoring.required-skills")
	cmd.Flags().String("company-skills-file", "", "company skills json file (overrides scoring.company-skills-file)")
	cmd.Flags().Bool("no-ai", false, "disable the generative service for this run")
}

// scoringOptions merges config and flags into pipeline options.
func scoringOptions(cmd *cobra.Command, config *Config) (pipeline.Options, error) {
	jd := config.Scoring.JobDescription
	if cmd.Flags().Changed("jd") {
		jd, _ = cmd.Flags().GetString("jd")
	}

	skillsFile := config.Scoring.CompanySkillsFile
	if cmd.Flags().Changed("company-skills-file") {
		skillsFile, _ = cmd.Flags().GetString("company-skills-file")
	}

	fromFile, err := scoring.LoadCompanySkills(skillsFile)
	if err != nil {
		return pipeline.Options{}, err
	}

	flagSkills, _ := cmd.Flags().GetString("skills")

	if noAI, _ := cmd.Flags().GetBool("no-ai"); noAI {
		config.AI.Enabled = false
	}

	return pipeline.Options{
		JobDescriptionPath: jd,
		CompanySkills:      scoring.MergeKeywords(fromFile, config.Scoring.RequiredSkills, scoring.ParseSkillList(flagSkills)),
	}, nil
}
