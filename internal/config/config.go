// Package config provides application configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Level bounds for the learner difficulty level.
const (
	MinLevel = 1
	MaxLevel = 10
)

// Config holds all application configuration.
type Config struct {
	Service       ServiceConfig
	ChildID       string
	CaretakerNote string
	StartLevel    int
	FeedbackDelay time.Duration
	AudioFile     string
	Log           LogConfig

	// BuiltinFallback serves a built-in story when every other story
	// source fails, instead of returning to the menu.
	BuiltinFallback bool
}

// ServiceConfig locates the remote story, difficulty and speech endpoints.
type ServiceConfig struct {
	BaseURL        string
	StoryPath      string
	DifficultyPath string
	SpeechPath     string
	Timeout        time.Duration
}

// LogConfig controls the log file written while the TUI owns the terminal.
type LogConfig struct {
	Path  string
	Level string
}

// LoadEnvFile reads KEY=VALUE pairs from path into the process environment.
// Variables already set are not overridden. A missing file is not an error
// when path is the default ".env".
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if path == ".env" && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load env file %s: %w", path, err)
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Service: ServiceConfig{
			BaseURL:        strings.TrimRight(getEnv("STORYBUDDY_SERVICE_URL", "http://127.0.0.1:8787"), "/"),
			StoryPath:      getEnv("STORYBUDDY_STORY_PATH", "/generate_story"),
			DifficultyPath: getEnv("STORYBUDDY_DIFFICULTY_PATH", "/predict_difficulty"),
			SpeechPath:     getEnv("STORYBUDDY_SPEECH_PATH", "/speech"),
			Timeout:        getEnvDuration("STORYBUDDY_TIMEOUT", 30*time.Second),
		},
		ChildID:         getEnv("STORYBUDDY_CHILD_ID", "child-1"),
		CaretakerNote:   getEnv("STORYBUDDY_CARETAKER_INPUT", ""),
		StartLevel:      ClampLevel(getEnvInt("STORYBUDDY_START_LEVEL", MinLevel)),
		FeedbackDelay:   getEnvDuration("STORYBUDDY_FEEDBACK_DELAY", 1200*time.Millisecond),
		AudioFile:       getEnv("STORYBUDDY_AUDIO_FILE", ""),
		BuiltinFallback: getEnvBool("STORYBUDDY_BUILTIN_FALLBACK", false),
		Log: LogConfig{
			Path:  getEnv("STORYBUDDY_LOG_FILE", ""),
			Level: getEnv("STORYBUDDY_LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Service.BaseURL == "" {
		return fmt.Errorf("STORYBUDDY_SERVICE_URL cannot be empty")
	}
	for name, p := range map[string]string{
		"STORYBUDDY_STORY_PATH":      c.Service.StoryPath,
		"STORYBUDDY_DIFFICULTY_PATH": c.Service.DifficultyPath,
		"STORYBUDDY_SPEECH_PATH":     c.Service.SpeechPath,
	} {
		if p == "" {
			return fmt.Errorf("%s cannot be empty", name)
		}
	}
	if c.Service.Timeout <= 0 {
		return fmt.Errorf("STORYBUDDY_TIMEOUT must be > 0")
	}
	if c.FeedbackDelay <= 0 {
		return fmt.Errorf("STORYBUDDY_FEEDBACK_DELAY must be > 0")
	}
	if c.ChildID == "" {
		return fmt.Errorf("STORYBUDDY_CHILD_ID cannot be empty")
	}
	return nil
}

// StoryURL returns the absolute story generation endpoint.
func (s ServiceConfig) StoryURL() string { return s.BaseURL + s.StoryPath }

// DifficultyURL returns the absolute difficulty prediction endpoint.
func (s ServiceConfig) DifficultyURL() string { return s.BaseURL + s.DifficultyPath }

// SpeechURL returns the absolute speech transcription endpoint.
func (s ServiceConfig) SpeechURL() string { return s.BaseURL + s.SpeechPath }

// ClampLevel forces level into [MinLevel, MaxLevel].
func ClampLevel(level int) int {
	return max(MinLevel, min(MaxLevel, level))
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return b
}

// getEnvDuration accepts Go duration strings ("1.5s") or bare milliseconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	value = strings.TrimSpace(value)
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
