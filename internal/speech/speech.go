// Package speech sends a child's recorded question to the transcription
// service and returns the buddy's reply.
package speech

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/abhisek/storybuddy/internal/remote"
)

// ErrNoRecording is returned when there is no audio to send.
var ErrNoRecording = errors.New("no recording available")

// Source yields one recording's raw bytes.
type Source interface {
	Record(ctx context.Context) ([]byte, error)
}

// FileSource reads a recording from disk, as produced by an external recorder.
type FileSource struct {
	Path string
}

func (f FileSource) Record(_ context.Context) ([]byte, error) {
	if f.Path == "" {
		return nil, ErrNoRecording
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoRecording, f.Path)
		}
		return nil, fmt.Errorf("read recording: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNoRecording
	}
	return data, nil
}

// Transcriber is the slice of the remote client used here.
type Transcriber interface {
	Transcribe(ctx context.Context, req remote.SpeechRequest) (*remote.SpeechResponse, error)
}

// Reply is what the buddy says back.
type Reply struct {
	MainResponse string
	FollowUps    []string
}

// Buddy records, encodes and transcribes.
type Buddy struct {
	source      Source
	transcriber Transcriber
	logger      *slog.Logger
}

// NewBuddy creates a Buddy.
func NewBuddy(source Source, transcriber Transcriber, logger *slog.Logger) *Buddy {
	return &Buddy{source: source, transcriber: transcriber, logger: logger}
}

// Ask takes one recording and returns the service's reply.
func (b *Buddy) Ask(ctx context.Context) (*Reply, error) {
	audio, err := b.source.Record(ctx)
	if err != nil {
		return nil, err
	}

	cfg := AudioConfigFor(audio)
	b.logger.Debug("sending recording", "bytes", len(audio), "sample_rate", cfg.SampleRateHertz)

	resp, err := b.transcriber.Transcribe(ctx, remote.SpeechRequest{
		Audio:  EncodeAudio(audio),
		Config: cfg,
	})
	if err != nil {
		return nil, err
	}

	reply := &Reply{MainResponse: strings.TrimSpace(resp.MainResponse)}
	for _, q := range resp.FollowUpQuestions {
		if q = strings.TrimSpace(q); q != "" {
			reply.FollowUps = append(reply.FollowUps, q)
		}
	}
	return reply, nil
}

// EncodeAudio base64-encodes raw audio for the wire.
func EncodeAudio(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// AudioConfigFor returns the default config, with the sample rate taken from
// the header when data is a RIFF/WAVE file.
func AudioConfigFor(data []byte) remote.AudioConfig {
	cfg := remote.DefaultAudioConfig()
	if len(data) >= 28 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WAVE" {
		if rate := binary.LittleEndian.Uint32(data[24:28]); rate > 0 {
			cfg.SampleRateHertz = int(rate)
		}
	}
	return cfg
}
