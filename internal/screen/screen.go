package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/storybuddy/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Disposer is implemented by screens that own timers or in-flight requests.
// The router calls Dispose when the screen is popped or replaced.
type Disposer interface {
	Dispose()
}

// Resumer is implemented by screens that refresh when they become the top
// of the stack again after a pop.
type Resumer interface {
	Resume() tea.Cmd
}

// EscapeInterceptor is implemented by screens that use esc themselves, for
// example to cancel a drag, instead of letting the app pop them.
type EscapeInterceptor interface {
	InterceptsEscape() bool
}
