package quiz

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	questionLine = regexp.MustCompile(`^(?:Q(?:uestion)?\s*)?(\d+)\s*[.):]\s*(.+)$`)
	optionLine   = regexp.MustCompile(`^([A-Da-d])\s*[.)]\s*(.+)$`)
	correctLine  = regexp.MustCompile(`(?i)^correct\s+answer\s*[:\-]\s*\(?([A-D])\b`)
)

// ParseResult holds the questions recovered from generated text along with
// a description of every block that had to be dropped.
type ParseResult struct {
	Questions []Question
	Skipped   []string
}

// Err returns ErrNoQuestions when nothing usable was parsed.
func (r ParseResult) Err() error {
	if len(r.Questions) == 0 {
		return ErrNoQuestions
	}
	return nil
}

// ParseQuestions parses free-text quiz content. Each block starts with a
// numbered question line ("1. Question text"), followed by four option lines
// "A. option" through "D. option" and a "Correct Answer: B" line.
//
// Blocks missing options or a correct-answer line are dropped and listed in
// Skipped; parsing never fails outright.
func ParseQuestions(text string) ParseResult {
	var (
		res     ParseResult
		cur     *pendingQuestion
		lineNum int
	)

	flush := func() {
		if cur == nil {
			return
		}
		if q, err := cur.build(); err != nil {
			res.Skipped = append(res.Skipped, fmt.Sprintf("question %q (line %d): %v", cur.text, cur.line, err))
		} else {
			res.Questions = append(res.Questions, q)
		}
		cur = nil
	}

	for _, raw := range strings.Split(text, "\n") {
		lineNum++
		line := cleanLine(raw)
		if line == "" {
			continue
		}

		if m := correctLine.FindStringSubmatch(line); m != nil {
			if cur == nil {
				res.Skipped = append(res.Skipped, fmt.Sprintf("line %d: answer without question", lineNum))
				continue
			}
			cur.correct = int(strings.ToUpper(m[1])[0] - 'A')
			cur.hasCorrect = true
			flush()
			continue
		}

		if m := optionLine.FindStringSubmatch(line); m != nil && cur != nil {
			idx := int(strings.ToUpper(m[1])[0] - 'A')
			cur.options[idx] = strings.TrimSpace(m[2])
			continue
		}

		if m := questionLine.FindStringSubmatch(line); m != nil {
			flush()
			cur = &pendingQuestion{text: strings.TrimSpace(m[2]), line: lineNum, correct: -1}
			continue
		}

		if cur != nil && !cur.anyOption() {
			// Question text wrapped onto a second line.
			cur.text += " " + line
			continue
		}
		res.Skipped = append(res.Skipped, fmt.Sprintf("line %d: unrecognised %q", lineNum, line))
	}
	flush()

	return res
}

type pendingQuestion struct {
	text       string
	line       int
	options    [OptionCount]string
	correct    int
	hasCorrect bool
}

func (p *pendingQuestion) anyOption() bool {
	for _, o := range p.options {
		if o != "" {
			return true
		}
	}
	return false
}

func (p *pendingQuestion) build() (Question, error) {
	for i, o := range p.options {
		if o == "" {
			return Question{}, fmt.Errorf("missing option %s", OptionLetter(i))
		}
	}
	if !p.hasCorrect {
		return Question{}, fmt.Errorf("missing correct answer")
	}
	opts := make([]string, OptionCount)
	copy(opts, p.options[:])
	return Question{Text: p.text, Options: opts, Correct: p.correct}, nil
}

// cleanLine trims whitespace and common markdown decoration.
func cleanLine(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "**", "")
	s = strings.TrimLeft(s, "#-* ")
	return strings.TrimSpace(s)
}

// FormatQuestions renders questions in the text form ParseQuestions reads.
func FormatQuestions(questions []Question) string {
	var b strings.Builder
	for i, q := range questions {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, q.Text)
		for j, o := range q.Options {
			fmt.Fprintf(&b, "%s. %s\n", OptionLetter(j), o)
		}
		fmt.Fprintf(&b, "Correct Answer: %s\n", OptionLetter(q.Correct))
	}
	return b.String()
}
