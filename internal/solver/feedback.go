package solver

import "fmt"

// Apply records the feedback for one guess.
//
//   - Hit at i:     the letter is known and i joins its allowed positions.
//   - Present at i: the letter is known and i joins its forbidden positions.
//   - Absent at i:  the letter is marked unused, unless the same guess or an
//     earlier one showed it present; then only position i is forbidden.
//
// Hits and presents are applied before absents so that a letter which is
// both matched and unmatched within one guess stays known.
// Feedback whose length differs from the guess, or that holds an invalid
// verdict, is rejected with ErrMalformedFeedback and leaves k untouched.
func (k *Knowledge) Apply(guess string, fb Feedback) error {
	if len(fb) != len(guess) {
		return fmt.Errorf("%w: %d verdicts for %q", ErrMalformedFeedback, len(fb), guess)
	}
	for i, v := range fb {
		if !v.Valid() {
			return fmt.Errorf("%w: verdict %q at %d", ErrMalformedFeedback, v, i)
		}
	}
	for i, v := range fb {
		switch v {
		case Hit:
			k.know(guess[i]).allowed.Set(uint(i))
		case Present:
			k.know(guess[i]).forbidden.Set(uint(i))
		}
	}
	for i, v := range fb {
		if v != Absent {
			continue
		}
		if p, ok := k.letters[guess[i]]; ok {
			p.forbidden.Set(uint(i))
			continue
		}
		k.unused.Add(guess[i])
	}
	return nil
}
