package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordpicker/internal/solver"
)

var words = []string{
	"crane", "slate", "abide", "speed", "eerie", "geese", "llama", "sassy",
	"tepee", "mamma", "apple", "angle", "ankle", "other", "stone", "tree",
}

func TestStandardScorer(t *testing.T) {
	cases := []struct {
		answer, guess, want string
	}{
		{"abide", "speed", "__0_0"},
		{"crane", "crane", "11111"},
		{"those", "geese", "___11"},
		{"eerie", "tepee", "_1_01"},
		{"apple", "papal", "001_0"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, StandardScorer(c.answer, c.guess).String(), "%s/%s", c.answer, c.guess)
	}
}

func TestSimpleScorerMatchesEvaluate(t *testing.T) {
	assert.Equal(t, "__000", SimpleScorer("abide", "speed").String())
}

func TestScorerFor(t *testing.T) {
	s, err := ScorerFor("")
	require.NoError(t, err)
	assert.Equal(t, "__000", s("abide", "speed").String())

	s, err = ScorerFor("STANDARD")
	require.NoError(t, err)
	assert.Equal(t, "__0_0", s("abide", "speed").String())

	_, err = ScorerFor("fancy")
	assert.Error(t, err)
}

func TestApplyGuessTransitions(t *testing.T) {
	g := New("Crane", 2, nil)
	assert.Equal(t, "crane", g.Answer)
	assert.Equal(t, 5, g.Cols)
	assert.Len(t, g.ID, 16)

	_, _, err := g.ApplyGuess("cran")
	assert.ErrorIs(t, err, ErrInvalidGuess)
	_, _, err = g.ApplyGuess("cr4ne")
	assert.ErrorIs(t, err, ErrInvalidGuess)

	fb, st, err := g.ApplyGuess("slate")
	require.NoError(t, err)
	assert.Equal(t, StatePlaying, st)
	assert.Equal(t, "__1_1", fb.String())

	fb, st, err = g.ApplyGuess(" CRANE ")
	require.NoError(t, err)
	assert.Equal(t, StateWon, st)
	assert.True(t, fb.Solved())

	_, _, err = g.ApplyGuess("crane")
	assert.ErrorIs(t, err, ErrFinished)
	assert.Equal(t, []string{"slate", "crane"}, g.Guesses)
}

func TestApplyGuessLost(t *testing.T) {
	g := New("crane", 1, StandardScorer)
	_, st, err := g.ApplyGuess("slate")
	require.NoError(t, err)
	assert.Equal(t, StateLost, st)
	assert.True(t, g.Finished)
	assert.False(t, g.Won)
}

// Puzzle-exact feedback must never eliminate the answer.
func TestStandardFeedbackKeepsSecret(t *testing.T) {
	five := words[:len(words)-1]
	for _, secret := range five {
		for _, guess := range five {
			k := solver.NewKnowledge()
			require.NoError(t, k.Apply(guess, StandardScorer(secret, guess)))
			assert.True(t, solver.Consistent(secret, k), "guess %s dropped %s", guess, secret)
		}
	}
}

func TestSolverPlaysGame(t *testing.T) {
	s := solver.New(words[:len(words)-1], solver.Options{})
	for _, secret := range []string{"geese", "llama", "abide"} {
		for _, score := range []Scorer{SimpleScorer, StandardScorer} {
			g := New(secret, 20, score)
			tr, err := s.Play(g, g.Rows)
			require.NoError(t, err)
			assert.True(t, tr.Solved, secret)
			assert.Equal(t, StateWon, g.State())
			assert.Equal(t, g.Guesses, tr.Guesses)
		}
	}
}
