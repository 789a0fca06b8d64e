// internal/solver/selector.go
//
// Guess selection.
//
// MostCovering looks for words containing as many of the highest-priority
// letters as possible:
//   1. Take the first `window` letters of the priority list.
//   2. Keep the words containing all of them.
//   3. Too few matches → drop the lowest-priority letter and retry.
//   4. Subset exhausted → skip one more letter of the priority list and
//      start again from a fresh window.
// It stops at the first result set larger than `moreThan`, or when the
// priority list runs out.

package solver

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/samber/lo"
)

// DefaultWindow is the number of priority letters tried together first.
const DefaultWindow = 4

// MostCovering returns the words covering the largest high-priority prefix
// of letters, in input order. When the list is exhausted without exceeding
// moreThan, the first non-empty match found is returned (nil if none).
func MostCovering(words []string, letters []byte, window, moreThan int) []string {
	if window <= 0 {
		window = DefaultWindow
	}
	var (
		subset   = letters
		offset   int
		res      []string
		fallback []string
	)
	for len(res) <= moreThan && len(subset) > 0 {
		if len(subset) > window {
			subset = subset[:window]
		}
		res = lo.Filter(words, func(w string, _ int) bool {
			return containsAll(w, subset)
		})
		if fallback == nil && len(res) > 0 {
			fallback = res
		}
		subset = subset[:len(subset)-1]
		if len(subset) == 0 {
			offset++
			subset = letters[offset:]
		}
	}
	if len(res) <= moreThan {
		return fallback
	}
	return res
}

func containsAll(word string, letters []byte) bool {
	for _, l := range letters {
		if strings.IndexByte(word, l) < 0 {
			return false
		}
	}
	return true
}

// PreferDistinct keeps the words in which no letter outside k's known set
// repeats, so each guess probes as many new letters as possible. If no word
// qualifies the input is returned unchanged.
func PreferDistinct(words []string, k *Knowledge) []string {
	out := lo.Filter(words, func(w string, _ int) bool {
		seen := mapset.NewThreadUnsafeSetWithSize[byte](len(w))
		for i := 0; i < len(w); i++ {
			if !seen.Add(w[i]) && !k.IsKnown(w[i]) {
				return false
			}
		}
		return true
	})
	if len(out) == 0 {
		return words
	}
	return out
}
