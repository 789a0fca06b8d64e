// internal/solver/knowledge.go
//
// Knowledge holds everything learned about the secret word in one session:
//   - known letters, in discovery order;
//   - letters known to be absent;
//   - per known letter, the positions it is confirmed at (allowed) and the
//     positions it is confirmed not to be at (forbidden).
//
// A letter is never both known and absent, and a position is never both
// allowed and forbidden for the same letter. Only Apply mutates the store.

package solver

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
	mapset "github.com/deckarep/golang-set/v2"
)

// DefaultWordLength is the word length used when none is configured.
const DefaultWordLength = 5

// positions records where a known letter is and is not.
type positions struct {
	allowed   *bitset.BitSet
	forbidden *bitset.BitSet
}

// Knowledge is the accumulated constraint set for a single session.
// It is not safe for concurrent use; each session owns its own instance.
type Knowledge struct {
	order   []byte
	letters map[byte]*positions
	unused  mapset.Set[byte]
}

// NewKnowledge returns an empty store.
func NewKnowledge() *Knowledge {
	return &Knowledge{
		letters: make(map[byte]*positions),
		unused:  mapset.NewThreadUnsafeSet[byte](),
	}
}

// Reset clears all learned constraints.
func (k *Knowledge) Reset() {
	k.order = nil
	k.letters = make(map[byte]*positions)
	k.unused.Clear()
}

// KnownLetters returns a copy of the letters confirmed present,
// in the order they were discovered.
func (k *Knowledge) KnownLetters() []byte {
	return slices.Clone(k.order)
}

// KnownUnusedLetters returns the letters confirmed absent, sorted.
func (k *Knowledge) KnownUnusedLetters() []byte {
	out := k.unused.ToSlice()
	slices.Sort(out)
	return out
}

// IsKnown reports whether l is confirmed present.
func (k *Knowledge) IsKnown(l byte) bool {
	_, ok := k.letters[l]
	return ok
}

// IsUnused reports whether l is confirmed absent.
func (k *Knowledge) IsUnused(l byte) bool {
	return k.unused.Contains(l)
}

// Allowed returns the positions l is confirmed at, ascending.
func (k *Knowledge) Allowed(l byte) []int {
	p, ok := k.letters[l]
	if !ok {
		return nil
	}
	return members(p.allowed)
}

// Forbidden returns the positions l is confirmed not to be at, ascending.
func (k *Knowledge) Forbidden(l byte) []int {
	p, ok := k.letters[l]
	if !ok {
		return nil
	}
	return members(p.forbidden)
}

// Empty reports whether nothing has been learned yet.
func (k *Knowledge) Empty() bool {
	return len(k.order) == 0 && k.unused.Cardinality() == 0
}

// know returns the position record for l, registering l as present if it
// was not already known.
func (k *Knowledge) know(l byte) *positions {
	if p, ok := k.letters[l]; ok {
		return p
	}
	p := &positions{
		allowed:   bitset.New(DefaultWordLength),
		forbidden: bitset.New(DefaultWordLength),
	}
	k.letters[l] = p
	k.order = append(k.order, l)
	// A later sighting overrides an earlier absent verdict.
	k.unused.Remove(l)
	return p
}

func members(b *bitset.BitSet) []int {
	var out []int
	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
		out = append(out, int(i))
	}
	return out
}
