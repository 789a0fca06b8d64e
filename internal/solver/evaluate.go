package solver

import "strings"

// Evaluate scores guess against secret letter by letter: Hit when the
// letters match at that position, Present when the guessed letter occurs
// anywhere in secret, Absent otherwise.
//
// Repeated letters are not budgeted the way the puzzle does it: every
// non-matching occurrence of a letter found in secret is Present. The
// self-test harness can use game.StandardScorer for puzzle-exact scoring.
func Evaluate(secret, guess string) Feedback {
	out := make(Feedback, len(guess))
	for i := 0; i < len(guess); i++ {
		switch {
		case i < len(secret) && guess[i] == secret[i]:
			out[i] = Hit
		case strings.IndexByte(secret, guess[i]) >= 0:
			out[i] = Present
		default:
			out[i] = Absent
		}
	}
	return out
}
