package solver

import (
	"strings"

	"github.com/samber/lo"
)

// Filter returns the words consistent with everything in k, preserving the
// input order.
func Filter(words []string, k *Knowledge) []string {
	return lo.Filter(words, func(w string, _ int) bool {
		return Consistent(w, k)
	})
}

// Consistent reports whether word satisfies every constraint in k:
// it contains each known letter, contains no absent letter, has each known
// letter at all of its allowed positions, and at none of its forbidden ones.
// A known letter with no recorded positions passes the position check.
func Consistent(word string, k *Knowledge) bool {
	for i := 0; i < len(word); i++ {
		if k.unused.Contains(word[i]) {
			return false
		}
	}
	for _, l := range k.order {
		if strings.IndexByte(word, l) < 0 {
			return false
		}
		p := k.letters[l]
		for i, ok := p.allowed.NextSet(0); ok; i, ok = p.allowed.NextSet(i + 1) {
			if int(i) >= len(word) || word[i] != l {
				return false
			}
		}
		for i, ok := p.forbidden.NextSet(0); ok; i, ok = p.forbidden.NextSet(i + 1) {
			if int(i) < len(word) && word[i] == l {
				return false
			}
		}
	}
	return true
}
