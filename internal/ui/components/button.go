package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/storybuddy/internal/ui/theme"
)

// Button runs OnPress on enter, space or its hotkey.
type Button struct {
	Label  string
	Hotkey string
	// Disabled buttons render dimmed and ignore keys.
	Disabled bool
	OnPress  func() tea.Cmd
}

// NewButton creates an enabled button. hotkey may be empty.
func NewButton(label, hotkey string, onPress func() tea.Cmd) Button {
	return Button{Label: label, Hotkey: hotkey, OnPress: onPress}
}

func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || b.Disabled || b.OnPress == nil {
		return b, nil
	}
	switch key := kmsg.String(); {
	case key == "enter", key == "space":
		return b, b.OnPress()
	case b.Hotkey != "" && key == b.Hotkey:
		return b, b.OnPress()
	}
	return b, nil
}

func (b Button) View() string {
	label := b.Label
	if b.Hotkey != "" {
		label = "[" + b.Hotkey + "] " + label
	}
	if b.Disabled {
		return theme.ButtonInactive.Render(label)
	}
	return theme.ButtonActive.Render("▸ " + label)
}
