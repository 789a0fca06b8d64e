package solver

import (
	"cmp"
	"slices"

	"github.com/samber/lo"
)

// CommonLetters ranks every letter occurring in words by total occurrence
// count, most frequent first. Ties keep the order in which the letters were
// first seen scanning words in order, left to right.
func CommonLetters(words []string) []byte {
	counts := make(map[byte]int, 26)
	var order []byte
	for _, w := range words {
		for i := 0; i < len(w); i++ {
			c := w[i]
			if counts[c] == 0 {
				order = append(order, c)
			}
			counts[c]++
		}
	}
	slices.SortStableFunc(order, func(a, b byte) int {
		return cmp.Compare(counts[b], counts[a])
	})
	return order
}

// BestGuessLetters composes the priority list used by the guess selector:
// the known letters in discovery order, followed by the ranked letters that
// are neither known nor absent.
func BestGuessLetters(k *Knowledge, ranking []byte) []byte {
	out := k.KnownLetters()
	for _, l := range ranking {
		if lo.Contains(out, l) || k.IsUnused(l) {
			continue
		}
		out = append(out, l)
	}
	return out
}
