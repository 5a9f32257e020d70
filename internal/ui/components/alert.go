package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/storybuddy/internal/ui/theme"
)

// AlertDismissedMsg is sent when the user closes an alert.
type AlertDismissedMsg struct {
	ID string
}

// Alert is a blocking message box. While visible the owning screen must
// route every key to it and ignore everything else.
type Alert struct {
	ID      string
	Title   string
	Message string
	visible bool
	ok      Button
}

// NewAlert creates a visible alert. id is echoed in AlertDismissedMsg.
func NewAlert(id, title, message string) Alert {
	a := Alert{ID: id, Title: title, Message: message, visible: true}
	a.ok = NewButton("OK", "", func() tea.Cmd {
		return func() tea.Msg { return AlertDismissedMsg{ID: id} }
	})
	return a
}

// Visible reports whether the alert is blocking input.
func (a Alert) Visible() bool {
	return a.visible
}

// Update dismisses the alert on enter, space or esc.
func (a Alert) Update(msg tea.Msg) (Alert, tea.Cmd) {
	if !a.visible {
		return a, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}
	if kmsg.String() == "esc" {
		a.visible = false
		id := a.ID
		return a, func() tea.Msg { return AlertDismissedMsg{ID: id} }
	}
	var cmd tea.Cmd
	a.ok, cmd = a.ok.Update(msg)
	if cmd != nil {
		a.visible = false
	}
	return a, cmd
}

// View renders the alert box, or "" when dismissed.
func (a Alert) View(width int) string {
	if !a.visible {
		return ""
	}
	title := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("⚠ " + a.Title)
	body := lipgloss.NewStyle().Foreground(theme.Text).Width(max(20, min(width-10, 50))).Align(lipgloss.Center).Render(a.Message)
	return theme.Alert.Render(title + "\n\n" + body + "\n\n" + a.ok.View())
}
