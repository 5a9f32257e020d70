package quiz

// Result is reported once when a quiz session completes.
type Result struct {
	Score int
	Total int
}

// Accuracy returns Score/Total, or 0 for an empty quiz.
func (r Result) Accuracy() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Score) / float64(r.Total)
}

// Feedback describes what a Select call did.
type Feedback struct {
	// Applied is false when the selection was ignored.
	Applied bool

	// Correct is true when the recorded option is the right one.
	Correct bool

	// Completed is true when this selection answered the last question.
	Completed bool
}

// Engine drives a forward-only multiple-choice quiz. It is not safe for
// concurrent use; all calls are expected from the UI update loop.
type Engine struct {
	questions  []Question
	answers    []int
	current    int
	completed  bool
	onComplete func(Result)
	reported   bool
}

// NewEngine creates a quiz session over questions. onComplete may be nil.
// An empty question list completes immediately and reports a score of 0.
func NewEngine(questions []Question, onComplete func(Result)) *Engine {
	qs := make([]Question, len(questions))
	copy(qs, questions)

	answers := make([]int, len(qs))
	for i := range answers {
		answers[i] = Unanswered
	}

	e := &Engine{
		questions:  qs,
		answers:    answers,
		onComplete: onComplete,
	}
	if len(qs) == 0 {
		e.complete()
	}
	return e
}

// Select records optionIndex as the answer to questionIndex. Selections for
// any question other than the current unanswered one, or with an out-of-range
// option, are no-ops.
func (e *Engine) Select(questionIndex, optionIndex int) Feedback {
	if e.completed || questionIndex != e.current {
		return Feedback{}
	}
	if e.answers[questionIndex] != Unanswered {
		return Feedback{}
	}
	q := e.questions[questionIndex]
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return Feedback{}
	}

	e.answers[questionIndex] = optionIndex
	fb := Feedback{Applied: true, Correct: optionIndex == q.Correct}

	if questionIndex < len(e.questions)-1 {
		e.current = questionIndex + 1
		return fb
	}

	e.current = len(e.questions)
	e.complete()
	fb.Completed = true
	return fb
}

func (e *Engine) complete() {
	e.completed = true
	if e.reported {
		return
	}
	e.reported = true
	if e.onComplete != nil {
		e.onComplete(e.Result())
	}
}

// Score counts answers matching the correct option. Unanswered entries never match.
func (e *Engine) Score() int {
	return ComputeScore(e.questions, e.answers)
}

// ComputeScore is the pure scoring function behind Engine.Score.
func ComputeScore(questions []Question, answers []int) int {
	score := 0
	for i, q := range questions {
		if i < len(answers) && answers[i] != Unanswered && answers[i] == q.Correct {
			score++
		}
	}
	return score
}

// Result returns the current score over the question count.
func (e *Engine) Result() Result {
	return Result{Score: e.Score(), Total: len(e.questions)}
}

// Current returns the index of the first unanswered question, or Total()
// once completed.
func (e *Engine) Current() int {
	return e.current
}

// CurrentQuestion returns the question awaiting an answer.
func (e *Engine) CurrentQuestion() (Question, bool) {
	if e.completed {
		return Question{}, false
	}
	return e.questions[e.current], true
}

// Question returns the question at i.
func (e *Engine) Question(i int) (Question, bool) {
	if i < 0 || i >= len(e.questions) {
		return Question{}, false
	}
	return e.questions[i], true
}

// Answer returns the recorded option for question i, or Unanswered.
func (e *Engine) Answer(i int) int {
	if i < 0 || i >= len(e.answers) {
		return Unanswered
	}
	return e.answers[i]
}

// Answers returns a copy of the answers slice.
func (e *Engine) Answers() []int {
	out := make([]int, len(e.answers))
	copy(out, e.answers)
	return out
}

// Total returns the number of questions.
func (e *Engine) Total() int {
	return len(e.questions)
}

// Completed reports whether every question has been answered.
func (e *Engine) Completed() bool {
	return e.completed
}
