// Package config provides environment-driven configuration for the server,
// the skill extraction service, and the matching pipeline.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Defaults for the skill extraction call and the matching pipeline.
const (
	// DefaultSkillServiceURL is the public text-generation endpoint used when
	// no provider-specific configuration is supplied.
	DefaultSkillServiceURL = "https://text.pollinations.ai"
	// DefaultSkillServiceTimeout bounds a single text-generation request.
	DefaultSkillServiceTimeout = 12 * time.Second
	// DefaultSkillServiceRetries is the number of attempts for transport failures.
	DefaultSkillServiceRetries = 3
	// DefaultMatchThreshold is the minimum score (exclusive) for a job to be
	// included in ranked match results.
	DefaultMatchThreshold = 10.0
	// DefaultMatchPageSize is the result page size for the match endpoint.
	DefaultMatchPageSize = 12
	// DefaultMatchWorkers bounds the parallel scoring stage.
	DefaultMatchWorkers = 8
)

// AppConfig holds server and pipeline configuration loaded from the environment.
type AppConfig struct {
	Port        int
	DatabaseURL string

	// Skill extraction service
	SkillServiceProvider string // "pollinations" or "gemini"
	SkillServiceURL      string
	GeminiAPIKey         string
	SkillServiceTimeout  time.Duration
	SkillServiceRetries  int

	// Matching pipeline
	MatchThreshold float64
	MatchPageSize  int
	MatchWorkers   int

	// Job ingestion
	AdzunaAppID  string
	AdzunaAppKey string
}

// NewAppConfig loads the application configuration from environment variables.
// DATABASE_URL is required; everything else has a default.
func NewAppConfig() (*AppConfig, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set")
	}

	port, err := envInt("PORT", 8080)
	if err != nil {
		return nil, err
	}
	timeout, err := envDuration("SKILL_SERVICE_TIMEOUT", DefaultSkillServiceTimeout)
	if err != nil {
		return nil, err
	}
	retries, err := envInt("SKILL_SERVICE_RETRIES", DefaultSkillServiceRetries)
	if err != nil {
		return nil, err
	}
	threshold, err := envFloat("MATCH_SCORE_THRESHOLD", DefaultMatchThreshold)
	if err != nil {
		return nil, err
	}
	pageSize, err := envInt("MATCH_PAGE_SIZE", DefaultMatchPageSize)
	if err != nil {
		return nil, err
	}
	workers, err := envInt("MATCH_WORKERS", DefaultMatchWorkers)
	if err != nil {
		return nil, err
	}

	provider := os.Getenv("SKILL_SERVICE_PROVIDER")
	if provider == "" {
		provider = "pollinations"
	}

	serviceURL := os.Getenv("SKILL_SERVICE_URL")
	if serviceURL == "" {
		serviceURL = DefaultSkillServiceURL
	}

	cfg := &AppConfig{
		Port:                 port,
		DatabaseURL:          databaseURL,
		SkillServiceProvider: provider,
		SkillServiceURL:      serviceURL,
		GeminiAPIKey:         os.Getenv("GEMINI_API_KEY"),
		SkillServiceTimeout:  timeout,
		SkillServiceRetries:  retries,
		MatchThreshold:       threshold,
		MatchPageSize:        pageSize,
		MatchWorkers:         workers,
		AdzunaAppID:          os.Getenv("ADZUNA_APP_ID"),
		AdzunaAppKey:         os.Getenv("ADZUNA_APP_KEY"),
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize validates the configuration.
func (c *AppConfig) normalize() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if c.SkillServiceProvider != "pollinations" && c.SkillServiceProvider != "gemini" {
		return fmt.Errorf("unknown SKILL_SERVICE_PROVIDER: %q", c.SkillServiceProvider)
	}
	if c.SkillServiceProvider == "gemini" && c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required when SKILL_SERVICE_PROVIDER=gemini")
	}
	if c.SkillServiceTimeout < time.Second {
		return fmt.Errorf("SKILL_SERVICE_TIMEOUT must be at least 1s, got: %s", c.SkillServiceTimeout)
	}
	if c.SkillServiceRetries < 1 {
		return fmt.Errorf("SKILL_SERVICE_RETRIES must be at least 1, got: %d", c.SkillServiceRetries)
	}
	if c.MatchThreshold < 0 || c.MatchThreshold >= 100 {
		return fmt.Errorf("MATCH_SCORE_THRESHOLD out of range: %f", c.MatchThreshold)
	}
	if c.MatchPageSize < 1 {
		return fmt.Errorf("MATCH_PAGE_SIZE must be at least 1, got: %d", c.MatchPageSize)
	}
	if c.MatchWorkers < 1 {
		return fmt.Errorf("MATCH_WORKERS must be at least 1, got: %d", c.MatchWorkers)
	}
	return nil
}

func envInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return v, nil
}

func envFloat(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return v, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return v, nil
}
