package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/anatolykoptev/go-kit/env"
)

var (
	ErrMissingAPIKey = errors.New("YouTube API key is required")
)

const (
	defaultLLMAPIBase       = "https://generativelanguage.googleapis.com/v1beta/openai"
	defaultLLMModel         = "gemini-2.0-flash"
	defaultNarrationTimeout = 20 * time.Second
	defaultPort             = "8080"
	defaultCORSOrigins      = "http://localhost:3000,http://localhost:5173"
)

// Config holds the application configuration. It is built once at startup
// and passed explicitly to every component that talks to a provider.
type Config struct {
	YouTubeAPIKey    string
	GeminiAPIKey     string
	LLMAPIBase       string
	LLMModel         string
	NarrationTimeout time.Duration
	Port             string
	CORSOrigins      []string
	GinMode          string
}

// Load loads the configuration from environment variables.
// Missing API keys are not an error here: the first provider call fails instead.
func Load() (*Config, error) {
	cfg := &Config{
		YouTubeAPIKey:    env.Str("YOUTUBE_API_KEY", ""),
		GeminiAPIKey:     env.Str("GEMINI_API_KEY", ""),
		LLMAPIBase:       env.Str("LLM_API_BASE", defaultLLMAPIBase),
		LLMModel:         env.Str("LLM_MODEL", defaultLLMModel),
		NarrationTimeout: env.Duration("NARRATION_TIMEOUT", defaultNarrationTimeout),
		Port:             env.Str("PORT", defaultPort),
		CORSOrigins:      env.List("CORS_ORIGINS", defaultCORSOrigins),
		GinMode:          env.Str("GIN_MODE", "debug"),
	}

	if cfg.NarrationTimeout <= 0 {
		return nil, fmt.Errorf("NARRATION_TIMEOUT must be positive, got %s", cfg.NarrationTimeout)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.YouTubeAPIKey == "" {
		return fmt.Errorf("%w: YOUTUBE_API_KEY environment variable is not set", ErrMissingAPIKey)
	}
	return nil
}

// NarrationEnabled reports whether a text-generation key is configured.
func (c *Config) NarrationEnabled() bool {
	return c.GeminiAPIKey != ""
}
