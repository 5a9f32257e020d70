package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/storybuddy/internal/router"
	"github.com/abhisek/storybuddy/internal/screen"
	"github.com/abhisek/storybuddy/internal/screens/home"
	"github.com/abhisek/storybuddy/internal/screens/welcome"
	"github.com/abhisek/storybuddy/internal/services"
	"github.com/abhisek/storybuddy/internal/ui/layout"
)

// Options configures the application.
type Options struct {
	Services *services.Services

	// SkipSplash starts on the home screen.
	SkipSplash bool
}

type headerMsg struct {
	stats layout.HeaderStats
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	svc    *services.Services
	router *router.Router
	stats  layout.HeaderStats
	width  int
	height int
}

// newAppModel creates an AppModel starting at the splash or home screen.
func newAppModel(opts Options) AppModel {
	svc := opts.Services
	homeFactory := func() screen.Screen { return home.New(svc) }

	var first screen.Screen = welcome.New(homeFactory)
	if opts.SkipSplash {
		first = homeFactory()
	}
	return AppModel{
		svc:    svc,
		router: router.New(first),
		stats:  layout.HeaderStats{Level: svc.Learner.StartLevel},
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), m.loadStats())
}

func (m AppModel) loadStats() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		snap := svc.LoadSnapshot(context.Background())
		return headerMsg{stats: layout.HeaderStats{Level: snap.Level, Attempts: snap.Stats.Attempts}}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case headerMsg:
		m.stats = msg.stats
		return m, nil

	case services.StatsChangedMsg:
		// The active screen may also care.
		return m, tea.Batch(m.loadStats(), m.router.Update(msg))

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if ic, ok := m.router.Active().(screen.EscapeInterceptor); ok && ic.InterceptsEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.PopCmd
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.stats, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Services == nil {
		return fmt.Errorf("app: services are required")
	}
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
