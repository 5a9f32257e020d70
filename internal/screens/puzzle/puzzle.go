// Package puzzle is the sentence-ordering screen. Sentences are picked up
// with space or enter, carried with the arrow keys and dropped into place.
package puzzle

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/storybuddy/internal/puzzle"
	"github.com/abhisek/storybuddy/internal/screen"
	"github.com/abhisek/storybuddy/internal/services"
	"github.com/abhisek/storybuddy/internal/ui/components"
	"github.com/abhisek/storybuddy/internal/ui/layout"
	"github.com/abhisek/storybuddy/internal/ui/theme"
)

const (
	alertResult = "puzzle-result"
)

// PuzzleScreen lets the child rebuild a story one stage at a time.
type PuzzleScreen struct {
	svc    *services.Services
	puzzle *puzzle.Puzzle

	zone   puzzle.Zone
	cursor int

	drag     *puzzle.Drag
	dropZone puzzle.Zone

	alert components.Alert
}

var _ screen.Screen = (*PuzzleScreen)(nil)
var _ screen.KeyHintProvider = (*PuzzleScreen)(nil)
var _ screen.EscapeInterceptor = (*PuzzleScreen)(nil)

// New creates a PuzzleScreen. Empty stages fall back to the built-in story.
func New(svc *services.Services, stages []puzzle.Stage, opts ...puzzle.Option) *PuzzleScreen {
	p, err := puzzle.New(stages, opts...)
	if err != nil {
		svc.Logger.Warn("puzzle stages unusable, using built-in story", "error", err)
		p, _ = puzzle.New(puzzle.DefaultStages(), opts...)
	}
	return &PuzzleScreen{svc: svc, puzzle: p}
}

func (s *PuzzleScreen) Init() tea.Cmd {
	return nil
}

func (s *PuzzleScreen) Title() string {
	return "Story Puzzle"
}

func (s *PuzzleScreen) KeyHints() []layout.KeyHint {
	if s.alert.Visible() {
		return []layout.KeyHint{{Key: "Enter", Description: "OK"}}
	}
	if s.drag != nil {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Move"},
			{Key: "Tab", Description: "Switch side"},
			{Key: "Space", Description: "Drop"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Switch side"},
		{Key: "Space", Description: "Pick up"},
		{Key: "V", Description: "Check"},
		{Key: "R", Description: "Restart"},
		{Key: "Esc", Description: "Back"},
	}
}

// InterceptsEscape keeps esc for cancelling a drag or closing an alert.
func (s *PuzzleScreen) InterceptsEscape() bool {
	return s.drag != nil || s.alert.Visible()
}

// Dispose leaves the game.
func (s *PuzzleScreen) Dispose() {
	s.drag = nil
	s.puzzle.Stop()
}

func (s *PuzzleScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(components.AlertDismissedMsg); ok {
		return s, nil
	}
	if s.alert.Visible() {
		var cmd tea.Cmd
		s.alert, cmd = s.alert.Update(msg)
		return s, cmd
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || s.puzzle.Stopped() {
		return s, nil
	}
	if s.drag != nil {
		s.updateDrag(kmsg.String())
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k", "left", "h":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j", "right", "l":
		if s.cursor < s.zoneLen(s.zone)-1 {
			s.cursor++
		}
	case "tab":
		s.zone = other(s.zone)
		s.clampCursor()
	case "space", "enter":
		if d, ok := s.puzzle.BeginDrag(s.zone, s.cursor); ok {
			s.drag = d
			s.dropZone = s.zone
			if s.zone == puzzle.ZoneAvailable {
				s.dropZone = puzzle.ZoneArranged
				d.Move(len(s.puzzle.Arranged()))
			}
		}
	case "v":
		s.validate()
	case "r":
		s.puzzle.Restart()
		s.zone = puzzle.ZoneAvailable
		s.cursor = 0
	}
	return s, nil
}

func (s *PuzzleScreen) updateDrag(key string) {
	d := s.drag
	switch key {
	case "esc":
		d.Cancel()
		s.drag = nil
	case "up", "k", "left", "h":
		if d.Position() > 0 {
			d.Move(d.Position() - 1)
		}
	case "down", "j", "right", "l":
		if d.Position() < s.dropSlots()-1 {
			d.Move(d.Position() + 1)
		}
	case "tab":
		s.dropZone = other(s.dropZone)
		d.Move(min(d.Position(), s.dropSlots()-1))
	case "space", "enter":
		s.puzzle.EndDrag(d, s.dropZone, d.Position())
		s.drag = nil
		s.zone = s.dropZone
		s.cursor = d.Position()
		s.clampCursor()
	}
}

// dropSlots is the number of positions the drag can land on in dropZone.
func (s *PuzzleScreen) dropSlots() int {
	if s.dropZone == puzzle.ZoneAvailable {
		return 1
	}
	n := len(s.puzzle.Arranged())
	if s.drag.Source() == puzzle.ZoneAvailable {
		n++
	}
	return max(n, 1)
}

func (s *PuzzleScreen) validate() {
	v := s.puzzle.Validate()
	s.zone = puzzle.ZoneAvailable
	s.cursor = 0

	switch {
	case v.Completed:
		s.svc.Logger.Info("puzzle finished", "stages", s.puzzle.StageCount())
		s.alert = components.NewAlert(alertResult, "The End!", "You put the whole story in order. Well done!")
	case v.Match:
		s.alert = components.NewAlert(alertResult, "Great job!",
			fmt.Sprintf("Part %d is right. Here comes the next part of the story.", v.Stage+1))
	default:
		right := 0
		for _, ok := range v.Positions {
			if ok {
				right++
			}
		}
		s.alert = components.NewAlert(alertResult, "Not quite",
			fmt.Sprintf("%d of %d sentences were in the right place. Let's try again!", right, len(v.Positions)))
	}
}

func (s *PuzzleScreen) zoneLen(z puzzle.Zone) int {
	if z == puzzle.ZoneArranged {
		return len(s.puzzle.Arranged())
	}
	return len(s.puzzle.Available())
}

func (s *PuzzleScreen) clampCursor() {
	s.cursor = max(0, min(s.cursor, s.zoneLen(s.zone)-1))
}

func other(z puzzle.Zone) puzzle.Zone {
	if z == puzzle.ZoneArranged {
		return puzzle.ZoneAvailable
	}
	return puzzle.ZoneArranged
}

func (s *PuzzleScreen) View(width, height int) string {
	if s.alert.Visible() {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s.alert.View(width))
	}

	cw := components.ContentWidth(width)
	header := components.NewMeter(fmt.Sprintf("Part %d", s.puzzle.Stage()+1), s.puzzle.Stage(), s.puzzle.StageCount(), cw).View()
	if s.puzzle.Finished() {
		header = theme.Correct.Render("Story complete! Press R to play again.")
	}

	sections := []string{
		header,
		s.renderZone("Sentences", puzzle.ZoneAvailable, cw),
		s.renderZone("Your story", puzzle.ZoneArranged, cw),
	}
	if s.drag != nil {
		sections = append(sections, theme.Dragging.Render(" ✋ "+truncate(s.drag.Fragment(), cw-4)+" "))
	}
	return components.BookFrame(strings.Join(sections, "\n\n"), width, height)
}

func (s *PuzzleScreen) renderZone(label string, z puzzle.Zone, cw int) string {
	items := s.puzzle.Available()
	if z == puzzle.ZoneArranged {
		items = s.puzzle.Arranged()
	}

	var lines []string
	titleStyle := lipgloss.NewStyle().Foreground(theme.StorySky).Bold(true)
	if (s.drag == nil && s.zone == z) || (s.drag != nil && s.dropZone == z) {
		titleStyle = titleStyle.Foreground(theme.StoryGold)
	}
	lines = append(lines, titleStyle.Render(label))

	for i, item := range items {
		if s.drag != nil && s.dropZone == z && s.drag.Position() == i {
			lines = append(lines, theme.Dragging.Render("  ▸ drop here"))
		}
		prefix := "  • "
		if z == puzzle.ZoneArranged {
			prefix = fmt.Sprintf("  %d. ", i+1)
		}
		style := theme.Unselected
		if s.drag == nil && s.zone == z && s.cursor == i {
			style = theme.Selected
			prefix = "▸" + prefix[1:]
		}
		if s.drag != nil && s.drag.Source() == z && item == s.drag.Fragment() {
			style = lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
		}
		lines = append(lines, style.Render(prefix+truncate(item, cw-8)))
	}
	if s.drag != nil && s.dropZone == z && s.drag.Position() >= len(items) {
		lines = append(lines, theme.Dragging.Render("  ▸ drop here"))
	}
	if len(items) == 0 && (s.drag == nil || s.dropZone != z) {
		lines = append(lines, theme.Hint.Render("  (empty)"))
	}

	return components.PageCard(lipgloss.JoinVertical(lipgloss.Left, lines...), cw)
}

func truncate(s string, n int) string {
	if n < 4 || lipgloss.Width(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
