package quiz

import "errors"

// OptionCount is the number of options every question carries.
const OptionCount = 4

// Unanswered marks a question that has no recorded answer.
const Unanswered = -1

// ErrNoQuestions is returned when a generated question set yields nothing usable.
var ErrNoQuestions = errors.New("no usable questions")

// Question is a single multiple-choice question. Immutable once loaded.
type Question struct {
	// Text is the question prompt.
	Text string

	// Options holds exactly OptionCount choices, in display order.
	Options []string

	// Correct is the index into Options of the right answer.
	Correct int
}

// Valid reports whether the question has OptionCount options and an
// in-range correct index.
func (q Question) Valid() bool {
	return q.Text != "" && len(q.Options) == OptionCount && q.Correct >= 0 && q.Correct < OptionCount
}

// OptionLetter returns the display letter for an option index ("A".."D").
func OptionLetter(i int) string {
	if i < 0 || i >= OptionCount {
		return "?"
	}
	return string(rune('A' + i))
}
