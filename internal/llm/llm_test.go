package llm

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/storybuddy/internal/store"
)

var discard = slog.New(slog.DiscardHandler)

var pairSchema = &Schema{
	Name: "test-pair",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"story":     map[string]any{"type": "string"},
			"questions": map[string]any{"type": "string"},
		},
		"required": []any{"story", "questions"},
	},
}

func jsonServer(t *testing.T, status int, body any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func anthropicReply(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_1",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func newTestAnthropic(srv *httptest.Server) *anthropicProvider {
	return newAnthropic(Config{APIKey: "k", Model: "claude-haiku-4-5", BaseURL: srv.URL}, option.WithMaxRetries(0))
}

func TestAnthropicComplete(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, anthropicReply(`{"story":"Tom found a kite.","questions":"1. What?"}`, "end_turn"))

	c, err := newTestAnthropic(srv).Complete(context.Background(), Prompt{
		System: "You write stories.", User: "Level 1", Schema: pairSchema, MaxTokens: 256,
	})
	require.NoError(t, err)
	assert.Equal(t, 50, c.InputTokens)
	assert.Equal(t, 30, c.OutputTokens)
	assert.Equal(t, "claude-haiku-4-5", c.Model)

	var out struct{ Story string }
	require.NoError(t, c.Decode(&out))
	assert.Equal(t, "Tom found a kite.", out.Story)
}

func TestAnthropicErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   any
		want   ErrorKind
	}{
		{"rate limit", http.StatusTooManyRequests,
			map[string]any{"type": "error", "error": map[string]any{"type": "rate_limit_error", "message": "slow down"}}, KindRateLimited},
		{"overloaded", http.StatusInternalServerError,
			map[string]any{"type": "error", "error": map[string]any{"type": "api_error", "message": "oops"}}, KindUnavailable},
		{"truncated", http.StatusOK, anthropicReply(`{"story":"Tom`, "max_tokens"), KindTruncated},
		{"off schema", http.StatusOK, anthropicReply(`{"story":"Tom"}`, "end_turn"), KindInvalidOutput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := jsonServer(t, tt.status, tt.body)
			_, err := newTestAnthropic(srv).Complete(context.Background(), Prompt{User: "x", Schema: pairSchema, MaxTokens: 10})

			var lerr *Error
			require.ErrorAs(t, err, &lerr)
			assert.Equal(t, tt.want, lerr.Kind)
		})
	}
}

func openAIReply(text, finish string) map[string]any {
	return map[string]any{
		"id":     "chatcmpl-1",
		"object": "chat.completion",
		"model":  "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": text},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 12, "completion_tokens": 8, "total_tokens": 20},
	}
}

func TestOpenAIComplete(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openAIReply(`{"story":"A.","questions":"1."}`, "stop"))
	}))
	t.Cleanup(srv.Close)

	p := newOpenAI(ProviderOpenRouter, Config{APIKey: "k", Model: "openai/gpt-4o-mini", BaseURL: srv.URL})
	c, err := p.Complete(context.Background(), Prompt{System: "sys", User: "Level 2", Schema: pairSchema, MaxTokens: 64})
	require.NoError(t, err)
	assert.Equal(t, 12, c.InputTokens)
	assert.Equal(t, "gpt-4o-mini", c.Model)

	assert.Equal(t, "openai/gpt-4o-mini", got["model"])
	msgs, _ := got["messages"].([]any)
	assert.Len(t, msgs, 2)
	format, _ := got["response_format"].(map[string]any)
	assert.Equal(t, "json_schema", format["type"])
}

func TestOpenAIErrors(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		srv := jsonServer(t, http.StatusBadGateway, map[string]any{"error": map[string]any{"message": "down", "type": "server_error"}})
		_, err := newOpenAI(ProviderOpenAI, Config{APIKey: "k", Model: "m", BaseURL: srv.URL}).
			Complete(context.Background(), Prompt{User: "x"})

		var lerr *Error
		require.ErrorAs(t, err, &lerr)
		assert.Equal(t, KindUnavailable, lerr.Kind)
		assert.Equal(t, http.StatusBadGateway, lerr.Status)
		assert.True(t, lerr.Temporary())
	})

	t.Run("length", func(t *testing.T) {
		srv := jsonServer(t, http.StatusOK, openAIReply(`{"sto`, "length"))
		_, err := newOpenAI(ProviderOpenAI, Config{APIKey: "k", Model: "m", BaseURL: srv.URL}).
			Complete(context.Background(), Prompt{User: "x"})

		var lerr *Error
		require.ErrorAs(t, err, &lerr)
		assert.Equal(t, KindTruncated, lerr.Kind)
		assert.False(t, lerr.Temporary())
	})
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"story": map[string]any{"type": "string", "description": "the story"},
			"grade": map[string]any{"type": "string", "enum": []string{"A", "B"}},
			"tags":  map[string]any{"type": "array", "items": map[string]any{"type": "integer"}, "minItems": 4, "maxItems": 4.0},
		},
		"required": []any{"story"},
	})

	assert.EqualValues(t, "OBJECT", s.Type)
	require.Len(t, s.Properties, 3)
	assert.EqualValues(t, "STRING", s.Properties["story"].Type)
	assert.Equal(t, "the story", s.Properties["story"].Description)
	assert.Equal(t, []string{"A", "B"}, s.Properties["grade"].Enum)
	assert.EqualValues(t, "INTEGER", s.Properties["tags"].Items.Type)
	require.NotNil(t, s.Properties["tags"].MinItems)
	require.NotNil(t, s.Properties["tags"].MaxItems)
	assert.Equal(t, int64(4), *s.Properties["tags"].MinItems)
	assert.Equal(t, int64(4), *s.Properties["tags"].MaxItems)
	assert.Nil(t, s.Properties["story"].MinItems)
	assert.Equal(t, []string{"story"}, s.Required)
}

func TestSchemaCheck(t *testing.T) {
	assert.NoError(t, pairSchema.Check(json.RawMessage(`{"story":"a","questions":"b"}`)))

	for _, raw := range []string{`not json`, `{"story":"a"}`, `{"story":1,"questions":"b"}`} {
		var lerr *Error
		require.ErrorAs(t, pairSchema.Check(json.RawMessage(raw)), &lerr, raw)
		assert.Equal(t, KindInvalidOutput, lerr.Kind)
	}
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Kind: KindRateLimited, Provider: "gemini", Status: 429, Err: errors.New("quota")}
	assert.Equal(t, "llm gemini: rate limited (HTTP 429): quota", err.Error())
	assert.ErrorIs(t, &Error{Err: context.Canceled}, context.Canceled)
}

func TestStubRepeatsLastReply(t *testing.T) {
	s := NewStub(StubReply{Err: errors.New("first")}, StubReply{Text: `"ok"`})
	_, err := s.Complete(context.Background(), Prompt{})
	require.Error(t, err)
	for range 2 {
		c, err := s.Complete(context.Background(), Prompt{})
		require.NoError(t, err)
		assert.Equal(t, `"ok"`, string(c.JSON))
	}
	assert.Equal(t, 3, s.Calls())

	_, err = NewStub().Complete(context.Background(), Prompt{})
	assert.Error(t, err)
}

type memLog struct {
	events []store.LLMRequestEventData
	err    error
}

func (m *memLog) AppendLLMRequest(_ context.Context, d store.LLMRequestEventData) error {
	m.events = append(m.events, d)
	return m.err
}

func TestRecordingWritesEveryRequest(t *testing.T) {
	log := &memLog{err: errors.New("disk full")}
	p := WithRecording(NewStub(StubReply{Text: `"once upon a time"`}, StubReply{Err: errors.New("boom")}), "stub", log, discard)

	c, err := p.Complete(context.Background(), Prompt{Purpose: "story-gen", System: "sys", User: "level 3"})
	require.NoError(t, err, "a failed log write must not fail the request")
	assert.Equal(t, `"once upon a time"`, string(c.JSON))

	_, err = p.Complete(context.Background(), Prompt{Purpose: "story-gen", User: "level 4"})
	require.Error(t, err)

	require.Len(t, log.events, 2)
	ok, failed := log.events[0], log.events[1]
	assert.True(t, ok.Success)
	assert.Equal(t, "stub", ok.Provider)
	assert.Equal(t, "story-gen", ok.Purpose)
	assert.Contains(t, ok.RequestBody, "[system]\nsys")
	assert.Contains(t, ok.RequestBody, "[user]\nlevel 3")
	assert.Equal(t, `"once upon a time"`, ok.ResponseBody)

	assert.False(t, failed.Success)
	assert.Equal(t, "boom", failed.ErrorMessage)
}

func newTestRetry(p Provider, attempts int) (*retrying, *[]time.Duration) {
	var slept []time.Duration
	return &retrying{
		next:   p,
		policy: RetryPolicy{Attempts: attempts, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond},
		sleep: func(_ context.Context, d time.Duration) error {
			slept = append(slept, d)
			return nil
		},
	}, &slept
}

func TestRetry(t *testing.T) {
	unavailable := StubReply{Err: &Error{Kind: KindUnavailable}}
	invalid := StubReply{Err: &Error{Kind: KindInvalidOutput}}
	ok := StubReply{Text: `"ok"`}

	tests := []struct {
		name      string
		replies   []StubReply
		wantCalls int
		wantSleep int
		wantErr   bool
	}{
		{"recovers", []StubReply{unavailable, unavailable, ok}, 3, 2, false},
		{"gives up", []StubReply{unavailable}, 3, 2, true},
		{"invalid once", []StubReply{invalid, ok}, 2, 1, false},
		{"invalid twice", []StubReply{invalid, invalid, ok}, 2, 1, true},
		{"truncated", []StubReply{{Err: &Error{Kind: KindTruncated}}, ok}, 1, 0, true},
		{"canceled", []StubReply{{Err: context.Canceled}, ok}, 1, 0, true},
		{"plain error", []StubReply{{Err: errors.New("net")}, ok}, 2, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := NewStub(tt.replies...)
			r, slept := newTestRetry(stub, 3)

			_, err := r.Complete(context.Background(), Prompt{})
			assert.Equal(t, tt.wantErr, err != nil, "err = %v", err)
			assert.Equal(t, tt.wantCalls, stub.Calls())
			assert.Len(t, *slept, tt.wantSleep)
		})
	}
}

func TestRetryHonoursRetryAfter(t *testing.T) {
	stub := NewStub(StubReply{Err: &Error{Kind: KindRateLimited, RetryAfter: 5 * time.Second}}, StubReply{Text: `"ok"`})
	r, slept := newTestRetry(stub, 3)

	_, err := r.Complete(context.Background(), Prompt{})
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{5 * time.Second}, *slept)
}

func TestRetryStopsWhenSleepFails(t *testing.T) {
	stub := NewStub(StubReply{Err: &Error{Kind: KindUnavailable}})
	r := &retrying{
		next:   stub,
		policy: RetryPolicy{Attempts: 5},
		sleep:  func(context.Context, time.Duration) error { return context.Canceled },
	}
	_, err := r.Complete(context.Background(), Prompt{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, stub.Calls())
}

func TestRetryDelay(t *testing.T) {
	rp := RetryPolicy{BaseDelay: 100 * time.Millisecond, MaxDelay: time.Second}
	for range 20 {
		d := rp.delay(0, errors.New("x"))
		assert.GreaterOrEqual(t, d, 80*time.Millisecond)
		assert.LessOrEqual(t, d, 120*time.Millisecond)

		d = rp.delay(6, errors.New("x"))
		assert.GreaterOrEqual(t, d, 800*time.Millisecond)
		assert.LessOrEqual(t, d, 1200*time.Millisecond)
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("claude-haiku-4-5")
	require.NotNil(t, c)
	assert.InDelta(t, 6.0, c.Cost(1_000_000, 1_000_000), 1e-9)

	assert.NotNil(t, LookupCost("google/gemini-2.0-flash-001"))
	assert.Equal(t, &ModelCost{}, LookupCost("openai/gpt-4o-mini:free"))
	assert.Nil(t, LookupCost("mystery"))
}
