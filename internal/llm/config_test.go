package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable ConfigFromEnv reads.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"STORYBUDDY_LLM_PROVIDER", "STORYBUDDY_LLM_API_KEY", "STORYBUDDY_LLM_MODEL",
		"STORYBUDDY_LLM_BASE_URL", "STORYBUDDY_LLM_TIMEOUT",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestConfigFromEnv(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		wantOK    bool
		wantProv  string
		wantModel string
	}{
		{"nothing set", nil, false, "", ""},
		{"openai key", map[string]string{"OPENAI_API_KEY": "k"}, true, ProviderOpenAI, "gpt-4o-mini"},
		{"gemini wins", map[string]string{"OPENAI_API_KEY": "k", "GEMINI_API_KEY": "g"}, true, ProviderGemini, "gemini-2.0-flash"},
		{"explicit provider uses its vendor key",
			map[string]string{"STORYBUDDY_LLM_PROVIDER": "anthropic", "OPENAI_API_KEY": "k", "ANTHROPIC_API_KEY": "a"},
			true, ProviderAnthropic, "claude-haiku-4-5"},
		{"explicit provider without key",
			map[string]string{"STORYBUDDY_LLM_PROVIDER": "anthropic", "OPENAI_API_KEY": "k"}, false, ProviderAnthropic, "claude-haiku-4-5"},
		{"explicit key and model",
			map[string]string{"STORYBUDDY_LLM_PROVIDER": "openai", "STORYBUDDY_LLM_API_KEY": "k", "STORYBUDDY_LLM_MODEL": "gpt-5-nano"},
			true, ProviderOpenAI, "gpt-5-nano"},
		{"stub needs no key", map[string]string{"STORYBUDDY_LLM_PROVIDER": "stub"}, true, ProviderStub, "stub"},
		{"unknown provider", map[string]string{"STORYBUDDY_LLM_PROVIDER": "parrot", "STORYBUDDY_LLM_API_KEY": "k"}, false, "parrot", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, ok := ConfigFromEnv()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantProv, cfg.Provider)
			assert.Equal(t, tt.wantModel, cfg.Model)
		})
	}
}

func TestConfigFromEnvOpenRouterAndTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENROUTER_API_KEY", "or")
	t.Setenv("STORYBUDDY_LLM_TIMEOUT", "45s")

	cfg, ok := ConfigFromEnv()
	require.True(t, ok)
	assert.Equal(t, ProviderOpenRouter, cfg.Provider)
	assert.Equal(t, openRouterURL, cfg.BaseURL)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.Equal(t, DefaultRetryPolicy(), cfg.Retry)
}

func TestNewProvider(t *testing.T) {
	log := &memLog{}
	p, err := NewProvider(context.Background(), Config{Provider: ProviderStub, Model: "stub", Timeout: time.Second}, log, discard)
	require.NoError(t, err)
	assert.Equal(t, "stub", p.Model())

	c, err := p.Complete(context.Background(), Prompt{Purpose: "story-gen", User: "level 1"})
	require.NoError(t, err)
	var out struct {
		Story     string
		Questions []struct{ Answer string }
	}
	require.NoError(t, c.Decode(&out))
	assert.Contains(t, out.Story, "boat")
	require.Len(t, out.Questions, 2)
	assert.Equal(t, "B", out.Questions[0].Answer)

	require.Len(t, log.events, 1)
	assert.Equal(t, "story-gen", log.events[0].Purpose)

	for _, cfg := range []Config{{}, {Provider: ProviderOpenAI}} {
		_, err := NewProvider(context.Background(), cfg, nil, discard)
		assert.Error(t, err)
	}

	p, err = NewProvider(context.Background(), Config{Provider: ProviderAnthropic, APIKey: "k", Model: "claude-haiku-4-5"}, nil, discard)
	require.NoError(t, err)
	assert.Equal(t, "claude-haiku-4-5", p.Model())
}
