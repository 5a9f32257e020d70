package puzzle

import (
	"regexp"
	"strings"
)

var sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]+["')\]]*`)

// DefaultStages is the built-in story used when no generated story is available.
func DefaultStages() []Stage {
	return []Stage{
		{"Once upon a time, a little fox lived in the forest.", "Every morning he looked for berries."},
		{"One day he found a lost baby bird.", "The fox carried the bird to a tall tree."},
		{"The mother bird sang with joy.", "From then on, the fox and the birds were friends."},
	}
}

// SplitSentences breaks text into trimmed sentences.
func SplitSentences(text string) []string {
	var out []string
	for _, m := range sentencePattern.FindAllString(text, -1) {
		if s := strings.Join(strings.Fields(m), " "); s != "" {
			out = append(out, s)
		}
	}
	if tail := strings.TrimSpace(sentencePattern.ReplaceAllString(text, "")); tail != "" {
		out = append(out, strings.Join(strings.Fields(tail), " "))
	}
	return out
}

// StagesFromText groups the sentences of text into stages of perStage
// sentences, keeping at most maxStages stages. Returns nil when text has
// fewer than two sentences, since there is nothing to order.
func StagesFromText(text string, perStage, maxStages int) []Stage {
	sentences := SplitSentences(text)
	if len(sentences) < 2 {
		return nil
	}
	if perStage < 1 {
		perStage = 2
	}

	var stages []Stage
	for i := 0; i < len(sentences); i += perStage {
		if maxStages > 0 && len(stages) == maxStages {
			break
		}
		end := min(i+perStage, len(sentences))
		stages = append(stages, Stage(sentences[i:end]))
	}
	return stages
}
