// internal/game/types.go
//
// Core type definitions for a scored game against a known secret.
// Defines:
//   - State: coarse game state (playing/won/lost).
//   - Scorer: how a guess is turned into per-letter verdicts.
//   - Game: state for a single in-progress or finished game.

package game

import "github.com/robalobadob/wordpicker/internal/solver"

// State is the coarse state of a game.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

// Scorer computes the feedback for guess against answer.
type Scorer func(answer, guess string) solver.Feedback

// Game holds the state of a single game session.
type Game struct {
	ID       string   // Unique game identifier (random hex string).
	Answer   string   // The solution word (always lowercase).
	Rows     int      // Maximum number of guesses allowed.
	Cols     int      // Number of letters per word.
	Guesses  []string // List of guesses made so far (lowercased).
	Finished bool     // True once the game is over (won or lost).
	Won      bool     // True if the game was finished with a win.

	score Scorer
}
