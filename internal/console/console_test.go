package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/TwiN/go-color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordpicker/internal/solver"
)

var testWords = []string{
	"crane", "slate", "stare", "trace", "react", "cater", "stone", "other",
	"apple", "angle", "ankle", "brown", "fizzy", "crazy", "blimp", "fjord",
}

func newTest(t *testing.T, ws []string) (*Controller, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	c := newController(&out, Options{Words: ws, Plain: true})
	require.NoError(t, c.restart())
	return c, &out
}

func TestPlayToSolution(t *testing.T) {
	c, out := newTest(t, testWords)
	ctx := context.Background()
	const secret = "fjord"

	for i := 0; i < len(testWords); i++ {
		guess := c.guess
		quit, err := c.dispatch(ctx, solver.Evaluate(secret, guess).String())
		require.NoError(t, err)
		require.False(t, quit)
		if guess == secret {
			break
		}
	}
	assert.Contains(t, out.String(), "found FJORD in ")
	// a solved word starts the next session
	assert.Equal(t, 0, c.rounds)
	assert.True(t, c.solver.Knowledge().Empty())
}

func TestColourSymbols(t *testing.T) {
	c, out := newTest(t, []string{"apple", "angle", "ankle"})
	require.Equal(t, "apple", c.guess)

	_, err := c.dispatch(context.Background(), " GBBGG ")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "APPLE 1__11")
	assert.Equal(t, "angle", c.guess)
}

func TestInvalidFeedbackKeepsGuess(t *testing.T) {
	c, out := newTest(t, testWords)
	first := c.guess

	_, err := c.dispatch(context.Background(), "1x")
	require.NoError(t, err)
	_, err = c.dispatch(context.Background(), "12345")
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(out.String(), "invalid feedback"))
	assert.Equal(t, first, c.guess)
	assert.Equal(t, 0, c.rounds)
}

func TestNoCandidatesRestarts(t *testing.T) {
	c, out := newTest(t, []string{"apple", "angle"})

	_, err := c.dispatch(context.Background(), "_____")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "no word matches that feedback")
	assert.Equal(t, "apple", c.guess)
	assert.Equal(t, 0, c.rounds)
}

func TestCommands(t *testing.T) {
	c, out := newTest(t, testWords)
	ctx := context.Background()

	quit, err := c.dispatch(ctx, "c")
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Contains(t, out.String(), "16 candidates: crane")

	_, err = c.dispatch(ctx, "0____")
	require.NoError(t, err)
	_, err = c.dispatch(ctx, "r")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "restarting")
	assert.Equal(t, 0, c.rounds)

	_, err = c.dispatch(ctx, "t")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Test guessed 16 words")

	quit, err = c.dispatch(ctx, "q")
	require.NoError(t, err)
	assert.True(t, quit)
}

func TestRenderTiles(t *testing.T) {
	fb := solver.Feedback{solver.Hit, solver.Present, solver.Absent}
	assert.Equal(t, "ABC 10_", renderTiles("abc", fb, true))

	got := renderTiles("abc", fb, false)
	assert.Equal(t, color.Ize(color.Green, " A ")+color.Ize(color.Yellow, " B ")+color.Ize(color.Gray, " C "), got)
}
