package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	// ProviderStub replays a built-in reply; it needs no key.
	ProviderStub = "stub"
)

// defaultModels is used when no model is configured.
var defaultModels = map[string]string{
	ProviderAnthropic:  "claude-haiku-4-5",
	ProviderOpenAI:     "gpt-4o-mini",
	ProviderGemini:     "gemini-2.0-flash",
	ProviderOpenRouter: "google/gemini-2.0-flash-001",
	ProviderStub:       "stub",
}

// vendorKeys are the conventional key variables, probed in this order when
// no provider is set explicitly.
var vendorKeys = []struct{ provider, env string }{
	{ProviderGemini, "GEMINI_API_KEY"},
	{ProviderOpenAI, "OPENAI_API_KEY"},
	{ProviderAnthropic, "ANTHROPIC_API_KEY"},
	{ProviderOpenRouter, "OPENROUTER_API_KEY"},
}

// Config selects and configures one provider.
type Config struct {
	Provider string
	APIKey   string
	Model    string
	// BaseURL overrides the provider endpoint.
	BaseURL string

	Retry RetryPolicy
	// Timeout bounds one request including retries.
	Timeout time.Duration
}

// ConfigFromEnv reads STORYBUDDY_LLM_* variables. An unset provider is
// discovered from the vendor key variables; ok is false when neither
// yields a usable configuration.
//
//	STORYBUDDY_LLM_PROVIDER   anthropic | openai | gemini | openrouter | stub
//	STORYBUDDY_LLM_API_KEY    falls back to the vendor variable
//	STORYBUDDY_LLM_MODEL
//	STORYBUDDY_LLM_BASE_URL
//	STORYBUDDY_LLM_TIMEOUT    e.g. 45s
func ConfigFromEnv() (Config, bool) {
	cfg := Config{
		Provider: os.Getenv("STORYBUDDY_LLM_PROVIDER"),
		APIKey:   os.Getenv("STORYBUDDY_LLM_API_KEY"),
		Model:    os.Getenv("STORYBUDDY_LLM_MODEL"),
		BaseURL:  os.Getenv("STORYBUDDY_LLM_BASE_URL"),
		Retry:    DefaultRetryPolicy(),
		Timeout:  30 * time.Second,
	}
	if d, err := time.ParseDuration(os.Getenv("STORYBUDDY_LLM_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}

	for _, vk := range vendorKeys {
		if cfg.Provider != "" && cfg.Provider != vk.provider {
			continue
		}
		if cfg.APIKey != "" {
			break
		}
		if key := os.Getenv(vk.env); key != "" {
			cfg.Provider, cfg.APIKey = vk.provider, key
			break
		}
	}

	if cfg.Model == "" {
		cfg.Model = defaultModels[cfg.Provider]
	}
	if cfg.Provider == ProviderOpenRouter && cfg.BaseURL == "" {
		cfg.BaseURL = openRouterURL
	}
	return cfg, cfg.Validate() == nil
}

// Validate checks that the provider is known and has a key.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderStub:
		return nil
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter:
		if c.APIKey == "" {
			return fmt.Errorf("no API key for the %s provider: set STORYBUDDY_LLM_API_KEY", c.Provider)
		}
		return nil
	case "":
		return fmt.Errorf("no LLM provider configured")
	default:
		return fmt.Errorf("unknown LLM provider %q", c.Provider)
	}
}
