// internal/game/engine.go
//
// Game engine used as the feedback source in self-tests and daily solves.
// Responsibilities:
//   - Create games for a given answer with a round cap.
//   - Validate and apply guesses (length, alphabetic).
//   - Score guesses with a pluggable Scorer: the simplified comparison
//     (solver.Evaluate) or the classic two-pass puzzle algorithm.
//   - Track state transitions: playing → won/lost.

package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/robalobadob/wordpicker/internal/solver"
)

const (
	// DefaultRows is the self-test round cap.
	DefaultRows = 10

	ScoringSimple   = "simple"
	ScoringStandard = "standard"
)

var (
	ErrFinished     = errors.New("game finished")
	ErrInvalidGuess = errors.New("invalid guess")
)

// SimpleScorer marks every non-matching letter found in the answer Present.
func SimpleScorer(answer, guess string) solver.Feedback {
	return solver.Evaluate(answer, guess)
}

// ScorerFor maps a configuration name to a Scorer.
func ScorerFor(name string) (Scorer, error) {
	switch strings.ToLower(name) {
	case "", ScoringSimple:
		return SimpleScorer, nil
	case ScoringStandard:
		return StandardScorer, nil
	}
	return nil, fmt.Errorf("unknown scoring %q", name)
}

// New constructs a game for answer allowing at most rows guesses.
// A nil score selects SimpleScorer.
func New(answer string, rows int, score Scorer) *Game {
	if rows <= 0 {
		rows = DefaultRows
	}
	if score == nil {
		score = SimpleScorer
	}
	answer = strings.ToLower(answer)
	return &Game{
		ID:      randomID(),
		Answer:  answer,
		Rows:    rows,
		Cols:    len(answer),
		Guesses: []string{},
		score:   score,
	}
}

// ApplyGuess validates and scores a guess, mutating the game state.
// Returns: the per-letter verdicts, the new state, or an error.
//
// Validation rules:
//   - Game must not be finished.
//   - Guess must be exactly g.Cols letters and alphabetic a–z.
//
// State transitions:
//   - If all tiles are Hit → Finished = true, Won = true.
//   - Else if the number of guesses reaches g.Rows → Finished = true (loss).
func (g *Game) ApplyGuess(guess string) (solver.Feedback, State, error) {
	if g.Finished {
		return nil, g.State(), ErrFinished
	}
	guess = strings.ToLower(strings.TrimSpace(guess))
	if len(guess) != g.Cols || !isAlpha(guess) {
		return nil, g.State(), fmt.Errorf("%w: %q", ErrInvalidGuess, guess)
	}

	fb := g.score(g.Answer, guess)
	g.Guesses = append(g.Guesses, guess)

	if fb.Solved() {
		g.Finished, g.Won = true, true
	} else if len(g.Guesses) >= g.Rows {
		g.Finished = true
	}
	return fb, g.State(), nil
}

// Feedback lets a Game act as a solver.FeedbackSource.
func (g *Game) Feedback(guess string) (solver.Feedback, error) {
	fb, _, err := g.ApplyGuess(guess)
	return fb, err
}

// State reports the current game state.
func (g *Game) State() State {
	if g.Finished {
		if g.Won {
			return StateWon
		}
		return StateLost
	}
	return StatePlaying
}

// StandardScorer implements the puzzle's two-pass scoring algorithm.
//
// Pass 1:
//   - Mark exact matches as Hit.
//   - Count remaining (non-hit) answer letters by letter index.
//
// Pass 2:
//   - For each non-hit guess letter: if there is remaining count for that letter,
//     mark Present and decrement the count; otherwise mark Absent.
//
// This ensures correct behavior with repeated letters in both answer and guess.
func StandardScorer(answer, guess string) solver.Feedback {
	n := len(guess)
	res := make(solver.Feedback, n)

	// Letter frequency for the non-hit positions (a–z).
	var counts [26]int

	// First pass: mark hits and collect counts for remaining answer letters.
	for i := 0; i < n; i++ {
		if i < len(answer) && guess[i] == answer[i] {
			res[i] = solver.Hit
		} else if i < len(answer) {
			counts[idx(answer[i])]++
		}
	}

	// Second pass: resolve presents/absents for non-hit tiles.
	for i := 0; i < n; i++ {
		if res[i] == solver.Hit {
			continue
		}
		j := idx(guess[i])
		if j >= 0 && j < 26 && counts[j] > 0 {
			res[i] = solver.Present
			counts[j]--
		} else {
			res[i] = solver.Absent
		}
	}
	return res
}

// idx maps a lowercase ASCII letter to 0..25.
func idx(b byte) int { return int(b) - 'a' }

// isAlpha checks that a string consists only of lowercase a–z.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
