package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values. Provider credentials live here and
// are handed to the gateway at construction; nothing reads them at call time.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	PublicURL         string `mapstructure:"PUBLIC_URL"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	OpenAIKey     string `mapstructure:"OPEN_AI_API"`
	OpenAIModel   string `mapstructure:"OPENAI_MODEL"`
	OpenAIBaseURL string `mapstructure:"OPENAI_BASE_URL"`

	HuggingFaceKey      string `mapstructure:"HUGGINGFACE_API_KEY"`
	HuggingFaceModelURL string `mapstructure:"HUGGINGFACE_MODEL_URL"`

	GeminiKey   string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel string `mapstructure:"GEMINI_MODEL"`

	PerplexityKey     string `mapstructure:"PERPLEXITY_API_KEY"`
	PerplexityBaseURL string `mapstructure:"PERPLEXITY_BASE_URL"`

	LLMTimeoutSeconds int     `mapstructure:"LLM_TIMEOUT_SECONDS"`
	LLMRPS            float64 `mapstructure:"LLM_RPS"`
	LLMBurst          int     `mapstructure:"LLM_BURST"`

	SessionCapacity int    `mapstructure:"SESSION_CAPACITY"`
	SessionTTL      int    `mapstructure:"SESSION_TTL_MINUTES"`
	UpdatesSchedule string `mapstructure:"UPDATES_SCHEDULE"`
	Recipients      string `mapstructure:"RECIPIENTS"`
}

var defaults = map[string]any{
	"APP_PORT":              "8080",
	"PUBLIC_URL":            "",
	"ENV":                   "development",
	"LOG_LEVEL":             "info",
	"MAX_REQUESTS_PER_MIN":  100,
	"OPEN_AI_API":           "",
	"OPENAI_MODEL":          "gpt-4o-mini",
	"OPENAI_BASE_URL":       "https://api.openai.com/v1",
	"HUGGINGFACE_API_KEY":   "",
	"HUGGINGFACE_MODEL_URL": "https://api-inference.huggingface.co/models/microsoft/DialoGPT-medium",
	"GEMINI_API_KEY":        "",
	"GEMINI_MODEL":          "gemini-2.5-flash-lite",
	"PERPLEXITY_API_KEY":    "",
	"PERPLEXITY_BASE_URL":   "https://api.perplexity.ai",
	"LLM_TIMEOUT_SECONDS":   30,
	"LLM_RPS":               2.0,
	"LLM_BURST":             4,
	"SESSION_CAPACITY":      1024,
	"SESSION_TTL_MINUTES":   60,
	"UPDATES_SCHEDULE":      "",
	"RECIPIENTS":            "",
}

// Load reads .env (if present), then config.yaml from . or ./config, then the
// process environment, in increasing order of precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) LLMTimeout() time.Duration {
	if c.LLMTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.LLMTimeoutSeconds) * time.Second
}

func (c *Config) SessionExpiry() time.Duration {
	if c.SessionTTL <= 0 {
		return time.Hour
	}
	return time.Duration(c.SessionTTL) * time.Minute
}

// RecipientList splits the comma-separated RECIPIENTS override. Empty means
// the built-in parliamentary addresses are used.
func (c *Config) RecipientList() []string {
	var out []string
	for _, r := range strings.Split(c.Recipients, ",") {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

// BaseURL is the externally visible root used in the A2A agent card.
func (c *Config) BaseURL() string {
	if c.PublicURL != "" {
		return strings.TrimRight(c.PublicURL, "/")
	}
	return "http://localhost:" + c.AppPort
}
