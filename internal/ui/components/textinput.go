package components

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/storybuddy/internal/ui/theme"
)

// TextInput is a focused bubbles text input that can be limited to digits
// and shows a check or cross once submitted.
type TextInput struct {
	Model textinput.Model

	// NumericOnly drops every printable key that is not a digit.
	NumericOnly bool

	submitted, valid bool
}

// NewTextInput creates a focused input. limit caps the length when > 0.
func NewTextInput(placeholder string, numericOnly bool, limit int) TextInput {
	m := textinput.New()
	m.Placeholder = placeholder
	m.Prompt = "✎ "
	if limit > 0 {
		m.CharLimit = limit
	}
	m.Focus()
	return TextInput{Model: m, NumericOnly: numericOnly}
}

func (t TextInput) Init() tea.Cmd { return t.Model.Focus() }

// accepts filters printable keys.
func (t TextInput) accepts(msg tea.Msg) bool {
	k, ok := msg.(tea.KeyMsg)
	if !ok || !t.NumericOnly {
		return true
	}
	s := k.String()
	return len(s) != 1 || (s[0] >= '0' && s[0] <= '9')
}

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if !t.accepts(msg) {
		return t, nil
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func (t TextInput) View() string {
	v := t.Model.View()
	switch {
	case !t.submitted:
		return v
	case t.valid:
		return v + " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
	default:
		return v + " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
	}
}

func (t TextInput) Value() string { return t.Model.Value() }

// NumericValue parses the trimmed value.
func (t TextInput) NumericValue() (int, error) {
	return strconv.Atoi(strings.TrimSpace(t.Model.Value()))
}

// Submit records whether the submitted value was accepted.
func (t *TextInput) Submit(valid bool) {
	t.submitted, t.valid = true, valid
}

// Reset clears the value and the submitted mark.
func (t *TextInput) Reset() {
	t.Model.SetValue("")
	t.submitted, t.valid = false, false
}

func (t *TextInput) SetValue(v string) { t.Model.SetValue(v) }
