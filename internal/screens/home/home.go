package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/storybuddy/internal/router"
	"github.com/abhisek/storybuddy/internal/screen"
	"github.com/abhisek/storybuddy/internal/screens/ask"
	"github.com/abhisek/storybuddy/internal/screens/history"
	"github.com/abhisek/storybuddy/internal/screens/level"
	"github.com/abhisek/storybuddy/internal/screens/story"
	"github.com/abhisek/storybuddy/internal/services"
	"github.com/abhisek/storybuddy/internal/store"
	"github.com/abhisek/storybuddy/internal/ui/components"
)

type snapshotMsg struct {
	snap services.Snapshot
	last *store.Attempt
}

// HomeScreen is the main menu.
type HomeScreen struct {
	svc    *services.Services
	menu   components.Menu
	snap   services.Snapshot
	mascot MascotVariant
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(svc *services.Services) *HomeScreen {
	items := []components.MenuItem{
		{Label: "READ A STORY", Key: "1", Action: func() tea.Cmd {
			return router.PushCmd(story.New(svc, story.NextQuiz))
		}, Disabled: svc.Stories == nil},
		{Label: "ORDER THE STORY", Key: "2", Action: func() tea.Cmd {
			return router.PushCmd(story.New(svc, story.NextPuzzle))
		}, Disabled: svc.Stories == nil},
		{Label: "ASK BUDDY", Key: "3", Action: func() tea.Cmd {
			return router.PushCmd(ask.New(svc))
		}},
		{Label: "MY HISTORY", Key: "4", Action: func() tea.Cmd {
			return router.PushCmd(history.New(svc.Attempts))
		}, Disabled: svc.Attempts == nil},
		{Label: "SET LEVEL", Key: "5", Action: func() tea.Cmd {
			return router.PushCmd(level.New(svc))
		}},
		{Label: "EXIT", Key: "6", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		svc:    svc,
		menu:   components.NewMenu(items),
		snap:   services.Snapshot{Level: svc.Learner.StartLevel},
		mascot: MascotSleepy,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.load()
}

// Resume reloads stats after a quiz or a level change.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.load()
}

func (h *HomeScreen) load() tea.Cmd {
	svc := h.svc
	return func() tea.Msg {
		ctx := context.Background()
		msg := snapshotMsg{snap: svc.LoadSnapshot(ctx)}
		if svc.Attempts != nil {
			if attempts, err := svc.Attempts.Load(ctx); err == nil && len(attempts) > 0 {
				msg.last = &attempts[len(attempts)-1]
			}
		}
		return msg
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		h.snap = msg.snap
		h.mascot = mascotFor(msg.last)
		return h, nil
	case services.StatsChangedMsg:
		return h, h.load()
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func mascotFor(last *store.Attempt) MascotVariant {
	switch {
	case last == nil:
		return MascotSleepy
	case last.Total > 0 && last.Score == last.Total:
		return MascotCelebrating
	default:
		return MascotIdle
	}
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer.
	termHeight := height + 8
	compact := termHeight < 32 || width < 90
	cw := components.ContentWidth(width)

	sections := []string{renderTitle(cw, compact)}
	if !compact {
		sections = append(sections, centered(RenderMascot(h.mascot), cw))
	}
	sections = append(sections, renderStatsBar(h.snap, cw, compact))

	if termHeight < 36 {
		sections = append(sections, centered(h.menu.View(), cw))
	} else {
		sections = append(sections, centered(h.menu.ButtonsView(buttonWidth), cw))
	}

	return components.BookFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
