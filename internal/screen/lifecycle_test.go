package screen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLifecycleTokens(t *testing.T) {
	var l Lifecycle

	first := l.Current()
	assert.True(t, l.Valid(first))
	assert.Equal(t, first, l.Current(), "Current must not start a new generation")

	second := l.Begin()
	assert.NotEqual(t, first, second)
	assert.False(t, l.Valid(first))
	assert.True(t, l.Valid(second))
	assert.False(t, l.Valid(0))
}

func TestLifecycleTokensUniqueAcrossScreens(t *testing.T) {
	var a, b Lifecycle
	ta := a.Begin()
	tb := b.Begin()
	assert.NotEqual(t, ta, tb)
	assert.False(t, b.Valid(ta))
}

func TestLifecycleContextCancelledOnBegin(t *testing.T) {
	var l Lifecycle
	ctx := l.Context()
	assert.NoError(t, ctx.Err())

	l.Begin()
	assert.Error(t, ctx.Err())
	assert.NoError(t, l.Context().Err())
}

func TestLifecycleDispose(t *testing.T) {
	var l Lifecycle
	tok := l.Current()
	ctx := l.Context()

	l.Dispose()
	assert.True(t, l.Disposed())
	assert.False(t, l.Valid(tok))
	assert.Error(t, ctx.Err())
}

func TestLifecycleDisposedBeforeUse(t *testing.T) {
	var l Lifecycle
	l.Dispose()
	assert.Error(t, l.Context().Err())
	assert.False(t, l.Valid(l.Current()))
}
