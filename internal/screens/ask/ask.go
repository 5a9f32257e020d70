// Package ask sends a recorded question to the speech service and shows
// Buddy's answer.
package ask

import (
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/storybuddy/internal/router"
	"github.com/abhisek/storybuddy/internal/screen"
	"github.com/abhisek/storybuddy/internal/services"
	"github.com/abhisek/storybuddy/internal/speech"
	"github.com/abhisek/storybuddy/internal/ui/components"
	"github.com/abhisek/storybuddy/internal/ui/layout"
	"github.com/abhisek/storybuddy/internal/ui/theme"
)

const alertNoRecording = "no-recording"

type replyMsg struct {
	token screen.Token
	reply *speech.Reply
	err   error
}

// AskScreen reads a recording from disk, sends it off, and shows the reply.
type AskScreen struct {
	svc     *services.Services
	life    screen.Lifecycle
	input   components.TextInput
	waiting bool
	reply   *speech.Reply
	alert   components.Alert
}

var _ screen.Screen = (*AskScreen)(nil)
var _ screen.KeyHintProvider = (*AskScreen)(nil)
var _ screen.EscapeInterceptor = (*AskScreen)(nil)

// New creates an AskScreen with the configured recording path prefilled.
func New(svc *services.Services) *AskScreen {
	input := components.NewTextInput("path/to/recording.wav", false, 200)
	input.SetValue(svc.AudioFile)
	return &AskScreen{svc: svc, input: input}
}

func (s *AskScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *AskScreen) Title() string {
	return "Ask Buddy"
}

func (s *AskScreen) KeyHints() []layout.KeyHint {
	if s.alert.Visible() {
		return []layout.KeyHint{{Key: "Enter", Description: "OK"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *AskScreen) InterceptsEscape() bool {
	return s.alert.Visible()
}

// Dispose cancels a pending transcription; its reply is dropped.
func (s *AskScreen) Dispose() {
	s.life.Dispose()
}

func (s *AskScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		if !s.life.Valid(msg.token) {
			return s, nil
		}
		s.waiting = false
		if errors.Is(msg.err, speech.ErrNoRecording) {
			s.alert = components.NewAlert(alertNoRecording, "No recording",
				"Buddy could not find a recording. Record your question and try again.")
			return s, nil
		}
		if msg.err != nil {
			s.svc.Logger.Error("transcribe", "error", msg.err)
			return s, router.PopCmd
		}
		s.reply = msg.reply
		return s, nil

	case components.AlertDismissedMsg:
		return s, nil
	}

	if s.alert.Visible() {
		var cmd tea.Cmd
		s.alert, cmd = s.alert.Update(msg)
		return s, cmd
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		return s, s.send()
	}
	if s.waiting {
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *AskScreen) send() tea.Cmd {
	if s.waiting {
		return nil
	}
	if s.svc.Transcriber == nil {
		s.alert = components.NewAlert(alertNoRecording, "Buddy is asleep",
			"The speech service is not set up.")
		return nil
	}
	s.waiting = true
	s.reply = nil

	token := s.life.Begin()
	ctx := s.life.Context()
	buddy := speech.NewBuddy(speech.FileSource{Path: strings.TrimSpace(s.input.Value())}, s.svc.Transcriber, s.svc.Logger)
	return func() tea.Msg {
		reply, err := buddy.Ask(ctx)
		return replyMsg{token: token, reply: reply, err: err}
	}
}

func (s *AskScreen) View(width, height int) string {
	if s.alert.Visible() {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s.alert.View(width))
	}

	cw := components.ContentWidth(width)
	sections := []string{
		lipgloss.NewStyle().Foreground(theme.StorySky).Bold(true).Render("Which recording should Buddy listen to?"),
		s.input.View(),
	}

	switch {
	case s.waiting:
		sections = append(sections, theme.Hint.Render("Buddy is listening..."))
	case s.reply != nil:
		var b strings.Builder
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 6).Render(s.reply.MainResponse))
		if len(s.reply.FollowUps) > 0 {
			b.WriteString("\n\n")
			b.WriteString(lipgloss.NewStyle().Foreground(theme.StoryGold).Render("You could also ask:"))
			for _, q := range s.reply.FollowUps {
				b.WriteString("\n  • " + q)
			}
		}
		sections = append(sections, components.PageCard(b.String(), cw))
	}

	return components.BookFrame(strings.Join(sections, "\n\n"), width, height)
}
