// Package remote talks to the story generation, difficulty prediction and
// speech transcription services over JSON-over-HTTP.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxErrorBody caps how much of a failed response body is kept in errors.
const maxErrorBody = 512

// Endpoints holds the absolute URLs of the three services.
type Endpoints struct {
	Story      string
	Difficulty string
	Speech     string
}

// StatusError is returned when a service answers with a non-2xx status.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s: unexpected status %d", e.Endpoint, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Client calls the remote services. It never retries.
type Client struct {
	http      *http.Client
	endpoints Endpoints
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient creates a Client. timeout bounds each request when the default
// HTTP client is used.
func NewClient(endpoints Endpoints, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: timeout},
		endpoints: endpoints,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StoryRequest asks for a story pitched at a difficulty level.
type StoryRequest struct {
	CurrentLevel int `json:"current_level"`
}

// StoryResponse carries the story and its free-text questions.
type StoryResponse struct {
	Story     string `json:"story"`
	Questions string `json:"questions"`
}

// GenerateStory fetches a story and question text for level.
func (c *Client) GenerateStory(ctx context.Context, level int) (*StoryResponse, error) {
	var out StoryResponse
	if err := c.post(ctx, "generate story", c.endpoints.Story, StoryRequest{CurrentLevel: level}, &out); err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.Story) == "" {
		return nil, fmt.Errorf("generate story: empty story in response")
	}
	return &out, nil
}

// DifficultyRequest reports how the child did on the last quiz.
// CaretakerInput is passed through as-is: a string or any JSON value.
type DifficultyRequest struct {
	ChildID        string  `json:"child_id"`
	CaretakerInput any     `json:"caretaker_input"`
	Accuracy       float64 `json:"accuracy"`
}

// CaretakerInput turns configured caretaker input into a request value. A
// JSON object or array is sent as structured JSON, anything else as a string.
func CaretakerInput(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		if json.Valid([]byte(trimmed)) {
			return json.RawMessage(trimmed)
		}
	}
	return raw
}

// DifficultyResponse is the level the service recommends next.
type DifficultyResponse struct {
	NewDifficulty int `json:"new_difficulty"`
}

// PredictDifficulty posts quiz accuracy and returns the recommended level.
func (c *Client) PredictDifficulty(ctx context.Context, req DifficultyRequest) (int, error) {
	var out DifficultyResponse
	if err := c.post(ctx, "predict difficulty", c.endpoints.Difficulty, req, &out); err != nil {
		return 0, err
	}
	return out.NewDifficulty, nil
}

// AudioConfig describes the encoded audio sent for transcription.
type AudioConfig struct {
	Encoding        string `json:"encoding"`
	SampleRateHertz int    `json:"sample_rate_hertz"`
	LanguageCode    string `json:"language_code"`
}

// DefaultAudioConfig matches 16 kHz mono LINEAR16 recordings in US English.
func DefaultAudioConfig() AudioConfig {
	return AudioConfig{Encoding: "LINEAR16", SampleRateHertz: 16000, LanguageCode: "en-US"}
}

// SpeechRequest carries base64-encoded audio.
type SpeechRequest struct {
	Audio  string      `json:"audio"`
	Config AudioConfig `json:"config"`
}

// SpeechResponse is the buddy's answer to what the child said.
type SpeechResponse struct {
	MainResponse      string   `json:"main_response"`
	FollowUpQuestions []string `json:"follow_up_questions"`
}

// Transcribe sends recorded audio and returns the buddy's reply.
func (c *Client) Transcribe(ctx context.Context, req SpeechRequest) (*SpeechResponse, error) {
	if req.Audio == "" {
		return nil, fmt.Errorf("transcribe: no audio")
	}
	var out SpeechResponse
	if err := c.post(ctx, "transcribe", c.endpoints.Speech, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) post(ctx context.Context, op, url string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%s: marshal request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Endpoint:   op,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}
