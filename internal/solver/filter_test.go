package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterKnownPosition(t *testing.T) {
	k := NewKnowledge()
	k.know('a').allowed.Set(0)

	got := Filter([]string{"apple", "angle", "brown"}, k)
	assert.Equal(t, []string{"apple", "angle"}, got)
}

func TestFilterAfterFeedback(t *testing.T) {
	words := []string{"apple", "angle", "ankle"}
	k := NewKnowledge()
	require.NoError(t, k.Apply("apple", Evaluate("angle", "apple")))

	got := Filter(words, k)
	assert.Equal(t, []string{"angle", "ankle"}, got)
	assert.NotContains(t, got, "apple")
	assert.True(t, k.IsUnused('p'))
}

func TestFilterRules(t *testing.T) {
	words := []string{"crane", "react", "trace", "cater", "stone", "other"}
	cases := []struct {
		name  string
		guess string
		fb    string
		want  []string
	}{
		{"present elsewhere", "zzzze", "____0", []string{"react", "cater", "other"}},
		{"must not contain", "sxxxx", "_____", []string{"crane", "react", "trace", "cater", "other"}},
		{"allowed position", "xxxxe", "____1", []string{"crane", "trace", "stone"}},
		{"forbidden position", "rxxxx", "0____", []string{"crane", "trace", "cater", "other"}},
		{"combined", "caret", "00000", []string{"trace"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			k := NewKnowledge()
			require.NoError(t, k.Apply(c.guess, mustParse(t, c.fb)))
			assert.Equal(t, c.want, Filter(words, k))
		})
	}
}

func TestFilterKnownLetterWithoutPositions(t *testing.T) {
	k := NewKnowledge()
	k.know('z')

	assert.Equal(t, []string{"fizzy", "crazy"}, Filter([]string{"fizzy", "apple", "crazy"}, k))
}

func TestFilterIdempotent(t *testing.T) {
	k := NewKnowledge()
	require.NoError(t, k.Apply("crane", Evaluate("stare", "crane")))

	once := Filter(testWords, k)
	twice := Filter(once, k)
	assert.Equal(t, once, twice)
}

func TestFilterKeepsSecret(t *testing.T) {
	for _, secret := range testWords {
		for _, guess := range testWords {
			k := NewKnowledge()
			require.NoError(t, k.Apply(guess, Evaluate(secret, guess)))
			assert.True(t, Consistent(secret, k), "guess %s dropped secret %s", guess, secret)
		}
	}
}
