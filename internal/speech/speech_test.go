package speech

import (
	"context"
	"encoding/binary"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/storybuddy/internal/remote"
)

var discard = slog.New(slog.DiscardHandler)

type fakeTranscriber struct {
	got  remote.SpeechRequest
	resp *remote.SpeechResponse
	err  error
}

func (f *fakeTranscriber) Transcribe(_ context.Context, req remote.SpeechRequest) (*remote.SpeechResponse, error) {
	f.got = req
	return f.resp, f.err
}

type bytesSource []byte

func (b bytesSource) Record(context.Context) ([]byte, error) { return b, nil }

func wavHeader(rate uint32) []byte {
	h := make([]byte, 44)
	copy(h[0:4], "RIFF")
	copy(h[8:12], "WAVE")
	binary.LittleEndian.PutUint32(h[24:28], rate)
	return h
}

func TestAskSendsEncodedAudio(t *testing.T) {
	tr := &fakeTranscriber{resp: &remote.SpeechResponse{
		MainResponse:      "  Foxes live in dens. ",
		FollowUpQuestions: []string{"What do foxes eat?", "  ", "Are foxes fast?"},
	}}
	b := NewBuddy(bytesSource("hello"), tr, discard)

	reply, err := b.Ask(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "aGVsbG8=", tr.got.Audio)
	assert.Equal(t, remote.DefaultAudioConfig(), tr.got.Config)
	assert.Equal(t, "Foxes live in dens.", reply.MainResponse)
	assert.Equal(t, []string{"What do foxes eat?", "Are foxes fast?"}, reply.FollowUps)
}

func TestAskPropagatesErrors(t *testing.T) {
	tr := &fakeTranscriber{err: &remote.StatusError{Endpoint: "transcribe", StatusCode: 500}}
	_, err := NewBuddy(bytesSource("x"), tr, discard).Ask(context.Background())
	var se *remote.StatusError
	assert.True(t, errors.As(err, &se))
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()

	_, err := FileSource{}.Record(context.Background())
	assert.ErrorIs(t, err, ErrNoRecording)

	_, err = FileSource{Path: filepath.Join(dir, "missing.wav")}.Record(context.Background())
	assert.ErrorIs(t, err, ErrNoRecording)

	empty := filepath.Join(dir, "empty.wav")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = FileSource{Path: empty}.Record(context.Background())
	assert.ErrorIs(t, err, ErrNoRecording)

	path := filepath.Join(dir, "q.wav")
	require.NoError(t, os.WriteFile(path, wavHeader(22050), 0o644))
	data, err := FileSource{Path: path}.Record(context.Background())
	require.NoError(t, err)
	assert.Len(t, data, 44)
}

func TestAudioConfigFor(t *testing.T) {
	assert.Equal(t, 22050, AudioConfigFor(wavHeader(22050)).SampleRateHertz)
	assert.Equal(t, 16000, AudioConfigFor([]byte("raw pcm")).SampleRateHertz)
	assert.Equal(t, 16000, AudioConfigFor(wavHeader(0)).SampleRateHertz)
}
