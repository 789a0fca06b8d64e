package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testWords = []string{
	"crane", "slate", "stare", "trace", "react", "cater", "stone", "other",
	"apple", "angle", "ankle", "brown", "fizzy", "crazy", "blimp", "fjord",
	"quilt", "mound", "spilt", "stern", "ghost", "nymph", "vixen", "jumbo",
	"waltz", "pique", "dwelt", "glyph", "chunk", "proxy", "whelk", "squid",
	"abide", "speed", "eerie", "llama", "tepee", "sassy", "mamma", "geese",
}

// secret answers guesses with Evaluate.
type secret string

func (s secret) Feedback(guess string) (Feedback, error) {
	return Evaluate(string(s), guess), nil
}

func TestGuessDeterministic(t *testing.T) {
	s := New(testWords, Options{})
	first, err := s.Guess()
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		g, err := s.Guess()
		require.NoError(t, err)
		assert.Equal(t, first, g)
	}
	assert.Contains(t, testWords, first)
}

func TestPlayThreeWords(t *testing.T) {
	s := New([]string{"apple", "angle", "ankle"}, Options{})

	tr, err := s.Play(secret("ankle"), 10)
	require.NoError(t, err)
	assert.True(t, tr.Solved)
	assert.Equal(t, []string{"apple", "angle", "ankle"}, tr.Guesses)
	assert.Equal(t, 3, tr.Rounds())
	assert.Equal(t, "1__11", tr.Feedback[0].String())
}

func TestPlaySolvesEveryWord(t *testing.T) {
	for _, opts := range []Options{
		{},
		{RankOver: RankCandidates},
		{AvoidDuplicates: true},
		{ResultsMoreThan: 2, Window: 3},
	} {
		s := New(testWords, opts)
		for _, w := range testWords {
			tr, err := s.Play(secret(w), len(testWords))
			require.NoError(t, err, w)
			assert.True(t, tr.Solved, "%s not solved with %+v", w, opts)
			assert.Equal(t, w, tr.Guesses[len(tr.Guesses)-1])
		}
	}
}

func TestPlayRoundCap(t *testing.T) {
	s := New([]string{"apple", "angle"}, Options{})
	tr, err := s.Play(secret("zzzzz"), 3)
	require.ErrorIs(t, err, ErrNoCandidates)
	assert.False(t, tr.Solved)
	assert.Equal(t, []string{"apple"}, tr.Guesses)

	s = New(testWords, Options{})
	tr, err = s.Play(secret("geese"), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, tr.Rounds())
}

func TestCandidatesShrinkAndKeepSecret(t *testing.T) {
	s := New(testWords, Options{})
	for _, w := range testWords {
		s.Reset()
		prev := len(s.Candidates())
		for round := 0; round < len(testWords); round++ {
			guess, err := s.Guess()
			require.NoError(t, err)
			fb := Evaluate(w, guess)
			if fb.Solved() {
				break
			}
			require.NoError(t, s.Record(guess, fb))

			cands := s.Candidates()
			assert.LessOrEqual(t, len(cands), prev)
			assert.Contains(t, cands, w)
			assert.NotContains(t, cands, guess)
			prev = len(cands)
		}
	}
}

func TestGuessNoCandidates(t *testing.T) {
	s := New([]string{"apple", "angle"}, Options{})
	require.NoError(t, s.Record("apple", mustParse(t, "_____")))

	_, err := s.Guess()
	assert.ErrorIs(t, err, ErrNoCandidates)
	assert.Empty(t, s.Candidates())
}

func TestRecordMalformed(t *testing.T) {
	s := New(testWords, Options{})
	err := s.Record("crane", Feedback{Hit})
	assert.ErrorIs(t, err, ErrMalformedFeedback)
	assert.Equal(t, testWords, s.Candidates())
}

func TestOptionsDefaults(t *testing.T) {
	s := New(testWords, Options{})
	assert.Equal(t, DefaultWindow, s.Options().Window)
	assert.Equal(t, RankUniverse, s.Options().RankOver)
}
