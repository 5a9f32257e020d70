// Package story fetches a story for the learner's level and shows it before
// the quiz or the puzzle.
package story

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/storybuddy/internal/puzzle"
	"github.com/abhisek/storybuddy/internal/router"
	"github.com/abhisek/storybuddy/internal/screen"
	puzzlescreen "github.com/abhisek/storybuddy/internal/screens/puzzle"
	quizscreen "github.com/abhisek/storybuddy/internal/screens/quiz"
	"github.com/abhisek/storybuddy/internal/services"
	"github.com/abhisek/storybuddy/internal/storygen"
	"github.com/abhisek/storybuddy/internal/ui/components"
	"github.com/abhisek/storybuddy/internal/ui/layout"
	"github.com/abhisek/storybuddy/internal/ui/theme"
)

// Sentences per puzzle part and the most parts a story is cut into.
const (
	puzzleSentencesPerStage = 2
	puzzleMaxStages         = 3
)

// Next selects where the story screen goes once the story is read.
type Next int

const (
	NextQuiz Next = iota
	NextPuzzle
)

type storyLoadedMsg struct {
	token screen.Token
	story *storygen.Story
	err   error
}

// StoryScreen loads and displays one story.
type StoryScreen struct {
	svc    *services.Services
	life   screen.Lifecycle
	next   Next
	story  *storygen.Story
	scroll int
}

var _ screen.Screen = (*StoryScreen)(nil)
var _ screen.KeyHintProvider = (*StoryScreen)(nil)

// New creates a StoryScreen that continues to next.
func New(svc *services.Services, next Next) *StoryScreen {
	return &StoryScreen{svc: svc, next: next}
}

func (s *StoryScreen) Init() tea.Cmd {
	token := s.life.Begin()
	ctx := s.life.Context()
	return func() tea.Msg {
		level := s.svc.Level(ctx)
		st, err := s.svc.Stories.Generate(ctx, level)
		return storyLoadedMsg{token: token, story: st, err: err}
	}
}

func (s *StoryScreen) Title() string {
	return "Story Time"
}

func (s *StoryScreen) KeyHints() []layout.KeyHint {
	if s.story == nil {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Scroll"}}
	if s.next == NextQuiz {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Quiz"}, layout.KeyHint{Key: "P", Description: "Puzzle"})
	} else {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Puzzle"}, layout.KeyHint{Key: "Q", Description: "Quiz"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

// Dispose cancels an in-flight story request.
func (s *StoryScreen) Dispose() {
	s.life.Dispose()
}

func (s *StoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case storyLoadedMsg:
		if !s.life.Valid(msg.token) {
			return s, nil
		}
		if msg.err != nil {
			s.svc.Logger.Error("generate story", "error", msg.err, "generator", s.svc.Stories.Name())
			return s, router.PopCmd
		}
		s.story = msg.story
		s.svc.Logger.Info("story ready",
			"source", msg.story.Source,
			"level", msg.story.Level,
			"questions", len(msg.story.Questions),
			"skipped", len(msg.story.Skipped))
		return s, nil

	case tea.KeyMsg:
		if s.story == nil {
			return s, nil
		}
		switch msg.String() {
		case "up", "k":
			if s.scroll > 0 {
				s.scroll--
			}
		case "down", "j":
			s.scroll++
		case "enter":
			if s.next == NextPuzzle {
				return s, s.toPuzzle()
			}
			return s, s.toQuiz()
		case "p":
			return s, s.toPuzzle()
		case "q":
			return s, s.toQuiz()
		}
	}
	return s, nil
}

func (s *StoryScreen) toQuiz() tea.Cmd {
	return router.ReplaceCmd(quizscreen.New(s.svc, s.story))
}

func (s *StoryScreen) toPuzzle() tea.Cmd {
	stages := puzzle.StagesFromText(s.story.Text, puzzleSentencesPerStage, puzzleMaxStages)
	return router.ReplaceCmd(puzzlescreen.New(s.svc, stages))
}

func (s *StoryScreen) View(width, height int) string {
	if s.story == nil {
		return components.BookFrame(theme.Hint.Render("Opening the story book..."), width, height)
	}

	cw := components.ContentWidth(width)
	text := lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 6).Render(s.story.Text)

	lines := strings.Split(text, "\n")
	visible := max(height-10, 3)
	s.scroll = min(s.scroll, max(len(lines)-visible, 0))
	end := min(s.scroll+visible, len(lines))
	page := strings.Join(lines[s.scroll:end], "\n")

	level := lipgloss.NewStyle().Foreground(theme.StoryGold).Render(fmt.Sprintf("★ Level %d", s.story.Level))
	return components.BookFrame(level+"\n\n"+components.PageCard(page, cw), width, height)
}
