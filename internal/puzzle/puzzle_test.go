package puzzle

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noShuffle([]string) {}

func reverseShuffle(s []string) { slices.Reverse(s) }

func newTestPuzzle(t *testing.T, stages ...Stage) *Puzzle {
	t.Helper()
	p, err := New(stages, WithShuffler(noShuffle))
	require.NoError(t, err)
	return p
}

// assertPartition checks that available and arranged together hold exactly
// the current target as a multiset.
func assertPartition(t *testing.T, p *Puzzle) {
	t.Helper()
	got := append(p.Available(), p.Arranged()...)
	want := p.Target()
	slices.Sort(got)
	slices.Sort(want)
	require.Equal(t, want, got, "available ∪ arranged must equal the stage target")
}

func TestNew_RejectsEmpty(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNoStages)

	_, err = New([]Stage{{"a"}, {}})
	assert.ErrorIs(t, err, ErrNoStages)
}

func TestNew_ShufflesTarget(t *testing.T) {
	p, err := New([]Stage{{"A", "B", "C"}}, WithShuffler(reverseShuffle))
	require.NoError(t, err)

	assert.Equal(t, []string{"C", "B", "A"}, p.Available())
	assert.Empty(t, p.Arranged())
}

func TestMoveToArranged(t *testing.T) {
	p := newTestPuzzle(t, Stage{"A", "B", "C"})

	assert.True(t, p.MoveToArranged("B"))
	assertPartition(t, p)
	assert.Equal(t, []string{"B"}, p.Arranged())
	assert.ElementsMatch(t, []string{"A", "C"}, p.Available())

	// Absent fragment is a silent no-op.
	assert.False(t, p.MoveToArranged("B"))
	assert.False(t, p.MoveToArranged("Z"))
	assertPartition(t, p)
}

func TestMoveToAvailable(t *testing.T) {
	p := newTestPuzzle(t, Stage{"A", "B", "C"})
	p.MoveToArranged("A")
	p.MoveToArranged("B")

	assert.True(t, p.MoveToAvailable("A"))
	assertPartition(t, p)
	assert.Equal(t, []string{"B"}, p.Arranged())

	assert.False(t, p.MoveToAvailable("C"))
	assertPartition(t, p)
}

func TestReorder(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		ok       bool
		want     []string
	}{
		{"forward", 0, 2, true, []string{"B", "C", "A", "D"}},
		{"backward", 3, 1, true, []string{"A", "D", "B", "C"}},
		{"same slot", 1, 1, true, []string{"A", "B", "C", "D"}},
		{"clamp high", 0, 99, true, []string{"B", "C", "D", "A"}},
		{"clamp low", 2, -5, true, []string{"C", "A", "B", "D"}},
		{"from out of range", 4, 0, false, []string{"A", "B", "C", "D"}},
		{"negative from", -1, 0, false, []string{"A", "B", "C", "D"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPuzzle(t, Stage{"A", "B", "C", "D"})
			for _, f := range []string{"A", "B", "C", "D"} {
				p.MoveToArranged(f)
			}

			assert.Equal(t, tt.ok, p.Reorder(tt.from, tt.to))
			assert.Equal(t, tt.want, p.Arranged())
			assertPartition(t, p)
		})
	}
}

func TestValidate_MismatchResetsStage(t *testing.T) {
	p, err := New([]Stage{{"A", "B", "C"}}, WithShuffler(reverseShuffle))
	require.NoError(t, err)

	p.MoveToArranged("B")
	p.MoveToArranged("A")
	p.MoveToArranged("C")
	require.Equal(t, []string{"B", "A", "C"}, p.Arranged())

	v := p.Validate()

	assert.False(t, v.Match)
	assert.False(t, v.Completed)
	assert.Equal(t, []bool{false, false, true}, v.Positions)
	assert.Empty(t, p.Arranged())
	assert.ElementsMatch(t, []string{"A", "B", "C"}, p.Available())
	assert.Equal(t, 0, p.Stage())
	assertPartition(t, p)
}

func TestValidate_PartialSubmissionResets(t *testing.T) {
	p := newTestPuzzle(t, Stage{"A", "B", "C"})
	p.MoveToArranged("A")

	v := p.Validate()

	assert.False(t, v.Match)
	assert.Empty(t, p.Arranged())
	assert.Len(t, p.Available(), 3)
}

func TestValidate_AdvancesThroughCumulativeStages(t *testing.T) {
	p := newTestPuzzle(t, Stage{"A", "B"}, Stage{"C"}, Stage{"D", "E"})

	solve := func() Validation {
		for _, f := range p.Target() {
			require.True(t, p.MoveToArranged(f))
		}
		return p.Validate()
	}

	v := solve()
	assert.True(t, v.Match)
	assert.False(t, v.Completed)
	assert.Equal(t, 1, p.Stage())
	assert.Empty(t, p.Arranged())
	assert.Equal(t, []string{"A", "B", "C"}, p.Target())
	assertPartition(t, p)

	v = solve()
	assert.True(t, v.Match)
	assert.Equal(t, 2, p.Stage())
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, p.Target())

	v = solve()
	assert.True(t, v.Match)
	assert.True(t, v.Completed)
	assert.True(t, p.Finished())
	assert.Equal(t, 2, p.Stage())

	// Finished puzzles ignore further moves.
	assert.False(t, p.MoveToAvailable("A"))
}

func TestRestart(t *testing.T) {
	p := newTestPuzzle(t, Stage{"A"}, Stage{"B"})
	p.MoveToArranged("A")
	p.Validate()
	require.Equal(t, 1, p.Stage())

	p.Restart()

	assert.Equal(t, 0, p.Stage())
	assert.Equal(t, []string{"A"}, p.Available())
	assert.Empty(t, p.Arranged())
}

func TestStop(t *testing.T) {
	p := newTestPuzzle(t, Stage{"A", "B"}, Stage{"C"})
	p.MoveToArranged("A")

	p.Stop()

	assert.True(t, p.Stopped())
	assert.Empty(t, p.Available())
	assert.Empty(t, p.Arranged())
	assert.Equal(t, 0, p.Stage())
	assert.False(t, p.MoveToArranged("B"))
	assert.False(t, p.Validate().Match)

	p.Restart()
	assert.False(t, p.Stopped())
	assertPartition(t, p)
}

func TestDuplicateFragments(t *testing.T) {
	p := newTestPuzzle(t, Stage{"la", "la", "land"})

	p.MoveToArranged("la")
	p.MoveToArranged("land")
	p.MoveToArranged("la")
	assertPartition(t, p)

	p.Reorder(1, 2)
	v := p.Validate()
	assert.True(t, v.Completed)
}

func TestTargetFor(t *testing.T) {
	stages := []Stage{{"a"}, {"b", "c"}, {"d"}}
	assert.Equal(t, []string{"a"}, TargetFor(stages, 0))
	assert.Equal(t, []string{"a", "b", "c", "d"}, TargetFor(stages, 2))
	assert.Equal(t, []string{"a", "b", "c", "d"}, TargetFor(stages, 9))
}
