package ask

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/storybuddy/internal/remote"
	"github.com/abhisek/storybuddy/internal/router"
	"github.com/abhisek/storybuddy/internal/screens/screentest"
)

func writeRecording(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "question.raw")
	if err := os.WriteFile(path, []byte{1, 2, 3, 4}, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func enter(s *AskScreen) tea.Cmd {
	_, cmd := s.Update(screentest.SpecialKey(tea.KeyEnter))
	return cmd
}

func TestAskShowsReply(t *testing.T) {
	svc, fakes := screentest.NewServices()
	svc.AudioFile = writeRecording(t)
	fakes.Transcriber.Response = &remote.SpeechResponse{
		MainResponse:      "Foxes live in dens.",
		FollowUpQuestions: []string{"What do foxes eat?", " "},
	}
	s := New(svc)

	cmd := enter(s)
	if cmd == nil || !s.waiting {
		t.Fatal("expected a transcription request")
	}
	s.Update(cmd())

	if len(fakes.Transcriber.Requests) != 1 || fakes.Transcriber.Requests[0].Audio != "AQIDBA==" {
		t.Errorf("unexpected requests %+v", fakes.Transcriber.Requests)
	}
	view := s.View(100, 40)
	if !strings.Contains(view, "Foxes live in dens.") || !strings.Contains(view, "What do foxes eat?") {
		t.Errorf("reply not shown:\n%s", view)
	}
}

func TestMissingRecordingShowsAlert(t *testing.T) {
	svc, fakes := screentest.NewServices()
	svc.AudioFile = filepath.Join(t.TempDir(), "missing.wav")
	s := New(svc)

	s.Update(enter(s)())

	if !s.alert.Visible() || !s.InterceptsEscape() {
		t.Fatal("expected blocking alert")
	}
	if len(fakes.Transcriber.Requests) != 0 {
		t.Error("nothing should be sent without a recording")
	}

	_, cmd := s.Update(screentest.SpecialKey(tea.KeyEscape))
	if cmd == nil || s.alert.Visible() {
		t.Error("esc should dismiss the alert")
	}
}

func TestNetworkErrorPops(t *testing.T) {
	svc, fakes := screentest.NewServices()
	svc.AudioFile = writeRecording(t)
	fakes.Transcriber.Err = errors.New("timeout")
	s := New(svc)

	_, cmd := s.Update(enter(s)())
	if _, ok := screentest.Find[router.PopScreenMsg](cmd); !ok {
		t.Error("expected pop on transcription failure")
	}
}

func TestReplyAfterDisposeDropped(t *testing.T) {
	svc, fakes := screentest.NewServices()
	svc.AudioFile = writeRecording(t)
	fakes.Transcriber.Response = &remote.SpeechResponse{MainResponse: "late"}
	s := New(svc)

	cmd := enter(s)
	s.Dispose()
	msg := cmd()
	s.Update(msg)

	if s.reply != nil {
		t.Error("reply after dispose must be dropped")
	}
}

func TestEnterIgnoredWhileWaiting(t *testing.T) {
	svc, _ := screentest.NewServices()
	svc.AudioFile = writeRecording(t)
	s := New(svc)

	enter(s)
	if cmd := enter(s); cmd != nil {
		t.Error("second send while waiting should be ignored")
	}
}
