package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/storybuddy/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Key is an optional shortcut that
// activates the item directly.
type MenuItem struct {
	Label    string
	Key      string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of actions. The cursor skips disabled items and
// wraps around at either end.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu places the cursor on the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.step(1)
	return m
}

// step moves the cursor to the next enabled item in direction dir.
func (m *Menu) step(dir int) {
	n := len(m.Items)
	for i := 1; i <= n; i++ {
		next := ((m.Selected+dir*i)%n + n) % n
		if !m.Items[next].Disabled {
			m.Selected = next
			return
		}
	}
}

func (m Menu) activate(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) || m.Items[i].Disabled || m.Items[i].Action == nil {
		return nil
	}
	return m.Items[i].Action()
}

func (m Menu) Init() tea.Cmd { return nil }

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		m.step(-1)
	case "down", "j", "tab":
		m.step(1)
	case "enter", "space":
		return m, m.activate(m.Selected)
	default:
		for i, item := range m.Items {
			if item.Key != "" && item.Key == key && !item.Disabled {
				m.Selected = i
				return m, m.activate(i)
			}
		}
	}
	return m, nil
}

func (m Menu) label(item MenuItem) string {
	if item.Key == "" {
		return item.Label
	}
	return item.Key + "  " + item.Label
}

// View renders the menu as plain lines, for small terminals.
func (m Menu) View() string {
	lines := make([]string, len(m.Items))
	for i, item := range m.Items {
		switch {
		case item.Disabled:
			lines[i] = lipgloss.NewStyle().Foreground(theme.TextDim).Render("    " + m.label(item))
		case i == m.Selected:
			lines[i] = theme.Selected.Render("  ▸ " + m.label(item))
		default:
			lines[i] = theme.Unselected.Render("    " + m.label(item))
		}
	}
	return strings.Join(lines, "\n")
}

// ButtonsView renders each item as a bordered button of the given width.
func (m Menu) ButtonsView(buttonWidth int) string {
	buttons := make([]string, len(m.Items))
	for i, item := range m.Items {
		if item.Disabled {
			buttons[i] = lipgloss.NewStyle().
				Width(buttonWidth).
				Align(lipgloss.Center).
				Foreground(theme.TextDim).
				Border(lipgloss.HiddenBorder()).
				Render(m.label(item))
			continue
		}
		buttons[i] = BigButton(m.label(item), i == m.Selected, buttonWidth)
	}
	return strings.Join(buttons, "\n")
}
