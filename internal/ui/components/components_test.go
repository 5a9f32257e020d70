package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(r rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: r, Text: string(r)} }

func enter() tea.KeyPressMsg { return tea.KeyPressMsg{Code: tea.KeyEnter} }

func run(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestMeterClampsAndCounts(t *testing.T) {
	tests := []struct {
		done, total int
		wantDone    int
		wantFrac    float64
	}{
		{0, 0, 0, 0},
		{2, 4, 2, 0.5},
		{9, 3, 3, 1},
		{-1, 3, 0, 0},
	}
	for _, tt := range tests {
		m := NewMeter("", tt.done, tt.total, 20)
		if m.Done != tt.wantDone || m.Fraction() != tt.wantFrac {
			t.Errorf("NewMeter(%d, %d) = done %d frac %v, want %d %v",
				tt.done, tt.total, m.Done, m.Fraction(), tt.wantDone, tt.wantFrac)
		}
	}

	if v := NewMeter("Part 1", 1, 3, 30).View(); !strings.Contains(v, "1/3") || !strings.Contains(v, "Part 1") {
		t.Errorf("View() = %q", v)
	}
}

func TestButtonPress(t *testing.T) {
	pressed := 0
	b := NewButton("Home", "h", func() tea.Cmd {
		pressed++
		return nil
	})

	for _, msg := range []tea.Msg{enter(), key('h')} {
		b, _ = b.Update(msg)
	}
	b, _ = b.Update(key('x'))
	if pressed != 2 {
		t.Errorf("pressed = %d, want 2", pressed)
	}

	b.Disabled = true
	b.Update(enter())
	if pressed != 2 {
		t.Error("disabled button fired")
	}
	if !strings.Contains(b.View(), "[h] Home") {
		t.Errorf("View() = %q", b.View())
	}
}

func TestAlertDismiss(t *testing.T) {
	a := NewAlert("oops", "Oops", "Try again")
	if !a.Visible() || !strings.Contains(a.View(60), "Try again") {
		t.Fatal("new alert should be visible")
	}

	a, cmd := a.Update(key('x'))
	if !a.Visible() || cmd != nil {
		t.Error("other keys should not dismiss")
	}

	a, cmd = a.Update(enter())
	if a.Visible() {
		t.Error("enter should dismiss")
	}
	if msg, ok := run(cmd).(AlertDismissedMsg); !ok || msg.ID != "oops" {
		t.Errorf("msg = %#v, want AlertDismissedMsg{oops}", run(cmd))
	}
	if a.View(60) != "" {
		t.Error("dismissed alert should render nothing")
	}
}

func TestMultiChoiceLetterAndReveal(t *testing.T) {
	m := NewMultiChoice("Who?", []string{"Mia", "Sam", "Leo", "Ana"})

	m, cmd := m.Update(key('c'))
	if msg, ok := run(cmd).(OptionChosenMsg); !ok || msg.Index != 2 {
		t.Errorf("letter c = %#v, want OptionChosenMsg{2}", run(cmd))
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, cmd = m.Update(enter())
	if msg, ok := run(cmd).(OptionChosenMsg); !ok || msg.Index != 3 {
		t.Errorf("down+enter = %#v, want OptionChosenMsg{3}", run(cmd))
	}

	m.Reveal(3, 0)
	if !m.Revealed() {
		t.Fatal("expected revealed")
	}
	if _, cmd = m.Update(key('a')); cmd != nil {
		t.Error("revealed choice should ignore keys")
	}
}

func TestNumericTextInput(t *testing.T) {
	in := NewTextInput("1-10", true, 2)
	for _, r := range "a7" {
		in, _ = in.Update(key(r))
	}
	if in.Value() != "7" {
		t.Fatalf("Value() = %q, want 7", in.Value())
	}
	if n, err := in.NumericValue(); err != nil || n != 7 {
		t.Errorf("NumericValue() = %d, %v", n, err)
	}

	in.Reset()
	if _, err := in.NumericValue(); err == nil {
		t.Error("empty input should not parse")
	}
}
