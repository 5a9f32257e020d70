package puzzle

import (
	"errors"
	"math/rand/v2"
	"slices"
)

// Stage is the ordered list of fragments a stage adds to the story.
type Stage []string

// Shuffler permutes fragments in place.
type Shuffler func([]string)

// Option configures a Puzzle.
type Option func(*Puzzle)

// WithShuffler replaces the random shuffle, mainly for tests.
func WithShuffler(s Shuffler) Option {
	return func(p *Puzzle) { p.shuffle = s }
}

// ErrNoStages is returned when a puzzle is built without any fragments.
var ErrNoStages = errors.New("puzzle needs at least one non-empty stage")

// Puzzle is a sentence-ordering game over cumulative stages. Every fragment
// of the current stage's target lives in exactly one of available or
// arranged. Not safe for concurrent use.
type Puzzle struct {
	stages    []Stage
	stage     int
	available []string
	arranged  []string
	shuffle   Shuffler
	finished  bool
	stopped   bool
}

// New creates a puzzle positioned at stage 0.
func New(stages []Stage, opts ...Option) (*Puzzle, error) {
	if len(stages) == 0 {
		return nil, ErrNoStages
	}
	for _, s := range stages {
		if len(s) == 0 {
			return nil, ErrNoStages
		}
	}

	p := &Puzzle{
		stages:  cloneStages(stages),
		shuffle: defaultShuffle,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.resetStage()
	return p, nil
}

func defaultShuffle(s []string) {
	rand.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
}

// Target returns the cumulative fragment order for the current stage.
func (p *Puzzle) Target() []string {
	return TargetFor(p.stages, p.stage)
}

// TargetFor concatenates stages 0..k.
func TargetFor(stages []Stage, k int) []string {
	var out []string
	for i := 0; i <= k && i < len(stages); i++ {
		out = append(out, stages[i]...)
	}
	return out
}

// Stage returns the zero-based current stage index.
func (p *Puzzle) Stage() int { return p.stage }

// StageCount returns the number of stages.
func (p *Puzzle) StageCount() int { return len(p.stages) }

// Available returns a copy of the unplaced fragments.
func (p *Puzzle) Available() []string { return slices.Clone(p.available) }

// Arranged returns a copy of the placed fragments in order.
func (p *Puzzle) Arranged() []string { return slices.Clone(p.arranged) }

// Finished reports whether the last stage has been validated.
func (p *Puzzle) Finished() bool { return p.finished }

// Stopped reports whether the session was torn down with Stop.
func (p *Puzzle) Stopped() bool { return p.stopped }

func (p *Puzzle) locked() bool { return p.finished || p.stopped }

// MoveToArranged moves fragment from available to the end of arranged.
// Returns false and changes nothing if fragment is not available.
func (p *Puzzle) MoveToArranged(fragment string) bool {
	if p.locked() {
		return false
	}
	i := slices.Index(p.available, fragment)
	if i < 0 {
		return false
	}
	p.available = slices.Delete(p.available, i, i+1)
	p.arranged = append(p.arranged, fragment)
	return true
}

// MoveToAvailable moves fragment from arranged back to available.
// Returns false and changes nothing if fragment is not arranged.
func (p *Puzzle) MoveToAvailable(fragment string) bool {
	if p.locked() {
		return false
	}
	i := slices.Index(p.arranged, fragment)
	if i < 0 {
		return false
	}
	return p.removeArrangedAt(i)
}

func (p *Puzzle) removeArrangedAt(i int) bool {
	if i < 0 || i >= len(p.arranged) {
		return false
	}
	fragment := p.arranged[i]
	p.arranged = slices.Delete(p.arranged, i, i+1)
	p.available = append(p.available, fragment)
	return true
}

// Reorder moves the arranged fragment at from to position to, shifting the
// fragments in between. from must be in range; to is clamped.
func (p *Puzzle) Reorder(from, to int) bool {
	if p.locked() || from < 0 || from >= len(p.arranged) {
		return false
	}
	to = max(0, min(to, len(p.arranged)-1))
	if from == to {
		return true
	}
	fragment := p.arranged[from]
	p.arranged = slices.Delete(p.arranged, from, from+1)
	p.arranged = slices.Insert(p.arranged, to, fragment)
	return true
}

// Validation is the outcome of Validate.
type Validation struct {
	// Match is true when arranged equals the stage target.
	Match bool

	// Completed is true when the final stage was matched.
	Completed bool

	// Stage is the stage that was checked.
	Stage int

	// Positions marks, per target position, whether the submitted fragment
	// was right. It describes the submission; the board has already been
	// reset when Match is false.
	Positions []bool
}

// Validate checks arranged against the current target. On a match the
// puzzle advances (or finishes on the last stage); on a mismatch the current
// stage is fully reset.
func (p *Puzzle) Validate() Validation {
	if p.locked() {
		return Validation{Match: p.finished, Completed: p.finished, Stage: p.stage}
	}

	target := p.Target()
	v := Validation{Stage: p.stage, Positions: make([]bool, len(target))}
	for i := range target {
		v.Positions[i] = i < len(p.arranged) && p.arranged[i] == target[i]
	}
	v.Match = slices.Equal(p.arranged, target)

	switch {
	case !v.Match:
		p.resetStage()
	case p.stage == len(p.stages)-1:
		p.finished = true
		v.Completed = true
	default:
		p.stage++
		p.resetStage()
	}
	return v
}

// Restart returns to stage 0 with a fresh shuffle.
func (p *Puzzle) Restart() {
	p.stage = 0
	p.finished = false
	p.stopped = false
	p.resetStage()
}

// Stop tears the session down: both collections are emptied and the stage
// resets. Further moves are ignored until Restart.
func (p *Puzzle) Stop() {
	p.stage = 0
	p.available = nil
	p.arranged = nil
	p.finished = false
	p.stopped = true
}

func (p *Puzzle) resetStage() {
	p.available = p.Target()
	p.shuffle(p.available)
	p.arranged = nil
}

func cloneStages(stages []Stage) []Stage {
	out := make([]Stage, len(stages))
	for i, s := range stages {
		out[i] = slices.Clone(s)
	}
	return out
}
