package cmd

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app       = "resume-ats"
	envPrefix = "RESUME_ATS"
)

type Config struct {
	AI         *AIConfig         `mapstructure:"ai" validate:"required"`
	Extraction *ExtractionConfig `mapstructure:"extraction" validate:"required"`
	Scoring    *ScoringConfig    `mapstructure:"scoring" validate:"required"`
	Batch      *BatchConfig      `mapstructure:"batch" validate:"required"`
}

type AIConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	MaxJDPhrases int           `mapstructure:"max-jd-phrases" validate:"gte=1,lte=100"`
	Gemini       *GeminiConfig `mapstructure:"gemini" validate:"required"`
}

type GeminiConfig struct {
	APIKey            string        `mapstructure:"api-key" json:"-"`
	APIKeyFile        string        `mapstructure:"api-key-file"`
	Model             string        `mapstructure:"model"`
	Timeout           time.Duration `mapstructure:"timeout"`
	MaxRetries        int           `mapstructure:"max-retries" validate:"gte=0,lte=5"`
	RequestsPerSecond float64       `mapstructure:"requests-per-second" validate:"gte=0"`
	MaxLogLength      int           `mapstructure:"max-log-length" validate:"gte=0"`
}

type ExtractionConfig struct {
	MinTextLength int        `mapstructure:"min-text-length" validate:"gte=1"`
	OCR           *OCRConfig `mapstructure:"ocr" validate:"required"`
}

type OCRConfig struct {
	Enabled bool `mapstructure:"enabled"`
	DPI     int  `mapstructure:"dpi" validate:"gte=72,lte=1200"`
}

type ScoringConfig struct {
	JobDescription    string   `mapstructure:"job-description"`
	CompanySkillsFile string   `mapstructure:"company-skills-file"`
	RequiredSkills    []string `mapstructure:"required-skills"`
}

type BatchConfig struct {
	InputDir    string `mapstructure:"input-dir"`
	OutputJSON  string `mapstructure:"output-json"`
	OutputCSV   string `mapstructure:"output-csv"`
	Concurrency int    `mapstructure:"concurrency" validate:"gte=1,lte=64"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-ats extracts candidate profiles from resumes and scores them against a job description",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-ats.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ai.enabled", true)
	v.SetDefault("ai.max-jd-phrases", 20)
	v.SetDefault("ai.gemini.model", "gemini-2.5-flash")
	v.SetDefault("ai.gemini.timeout", 30*time.Second)
	v.SetDefault("ai.gemini.max-retries", 1)
	v.SetDefault("ai.gemini.requests-per-second", 0)
	v.SetDefault("ai.gemini.max-log-length", 200)
	v.SetDefault("extraction.min-text-length", 50)
	v.SetDefault("extraction.ocr.enabled", true)
	v.SetDefault("extraction.ocr.dpi", 200)
	v.SetDefault("scoring.job-description", "")
	v.SetDefault("scoring.company-skills-file", "company_skills.json")
	v.SetDefault("scoring.required-skills", []string{})
	v.SetDefault("batch.input-dir", "resumes")
	v.SetDefault("batch.output-json", "output.json")
	v.SetDefault("batch.output-csv", "output.csv")
	v.SetDefault("batch.concurrency", 4)
}

func initConfig() {
	// A missing .env is fine; variables may come from the environment.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// An explicit config must parse; the default one is optional.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	return loadConfig(viper.GetViper())
}

func loadConfig(v *viper.Viper) (*Config, error) {
	var config *Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if config == nil {
		return nil, errors.New("config is empty")
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return config, nil
}
