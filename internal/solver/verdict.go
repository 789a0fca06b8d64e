// internal/solver/verdict.go
//
// Per-letter feedback types.
// Defines:
//   - Verdict: result for a single letter of a guess (hit/present/absent).
//   - Feedback: one Verdict per position of a guessed word.
//   - ParseFeedback: reads the compact console notation into Feedback.
//
// Console notation (one symbol per letter):
//   '_' '-' 'b' 'x' → Absent
//   '0' '~' 'y'     → Present
//   '1' '+' 'g'     → Hit

package solver

import (
	"errors"
	"fmt"
	"strings"
)

// Verdict is the evaluation of a single letter in a guess.
//   - "hit":     letter is correct and in the correct position.
//   - "present": letter exists in the secret but at a different position.
//   - "absent":  letter does not occur in the secret.
type Verdict string

const (
	Absent  Verdict = "absent"
	Present Verdict = "present"
	Hit     Verdict = "hit"
)

// ErrMalformedFeedback is returned when feedback does not line up with the
// guess it describes, or contains an unknown symbol.
var ErrMalformedFeedback = errors.New("malformed feedback")

// Valid reports whether v is one of the three known verdicts.
func (v Verdict) Valid() bool {
	return v == Absent || v == Present || v == Hit
}

// Symbol returns the compact console symbol for v.
func (v Verdict) Symbol() byte {
	switch v {
	case Hit:
		return '1'
	case Present:
		return '0'
	default:
		return '_'
	}
}

// Feedback is an ordered sequence of verdicts, one per guessed letter.
type Feedback []Verdict

// Solved reports whether every verdict is a Hit.
func (f Feedback) Solved() bool {
	if len(f) == 0 {
		return false
	}
	for _, v := range f {
		if v != Hit {
			return false
		}
	}
	return true
}

// String renders f in the compact '_01' notation.
func (f Feedback) String() string {
	var b strings.Builder
	b.Grow(len(f))
	for _, v := range f {
		b.WriteByte(v.Symbol())
	}
	return b.String()
}

// ParseFeedback converts compact notation into Feedback.
// Surrounding whitespace is ignored; the symbol count must equal length.
func ParseFeedback(s string, length int) (Feedback, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != length {
		return nil, fmt.Errorf("%w: want %d symbols, got %d", ErrMalformedFeedback, length, len(s))
	}
	out := make(Feedback, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '_', '-', 'b', 'x':
			out[i] = Absent
		case '0', '~', 'y':
			out[i] = Present
		case '1', '+', 'g':
			out[i] = Hit
		default:
			return nil, fmt.Errorf("%w: unknown symbol %q at %d", ErrMalformedFeedback, s[i], i)
		}
	}
	return out, nil
}
