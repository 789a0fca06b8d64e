// internal/words/words.go
//
// Word-list provider for the solver.
//
// Responsibilities:
//   - Read word lists from files (one word per line, or comma separated)
//     or fall back to the embedded default in assets/words.txt.
//   - Normalize: trim, lowercase, keep only alphabetic words of the
//     configured length, drop duplicates keeping the first occurrence.
//   - Reject empty results with ErrInvalidWordList before any session starts.
//
// Order is preserved, so iteration is deterministic for a given input.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/robalobadob/wordpicker/assets"
)

// DefaultLength is the word length of the daily puzzle.
const DefaultLength = 5

// ErrInvalidWordList is returned for an empty list or one whose words are
// not all alphabetic words of the same length.
var ErrInvalidWordList = errors.New("words: invalid word list")

// List is an immutable, deduplicated, ordered word universe.
type List struct {
	words  []string
	index  map[string]int
	length int
}

// Parse reads words from r. Lines starting with '#' are ignored; words may
// be separated by newlines, commas or spaces. Entries that are not
// alphabetic or not `length` letters long are skipped.
func Parse(r io.Reader, length int) (*List, error) {
	var raw []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		raw = append(raw, strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})...)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	return build(normalize(raw, length), length)
}

// LoadFile parses the word list at path.
func LoadFile(path string, length int) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	l, err := Parse(f, length)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Default returns the embedded word list filtered to length.
func Default(length int) (*List, error) {
	lines, err := assets.WordList()
	if err != nil {
		return nil, fmt.Errorf("embedded word list: %w", err)
	}
	return build(normalize(lines, length), length)
}

// Load reads path, or the embedded default when path is empty.
func Load(path string, length int) (*List, error) {
	if path == "" {
		return Default(length)
	}
	return LoadFile(path, length)
}

// FromWords builds a list from already-clean words. Unlike Parse it does not
// skip bad entries: any word that is not lowercase alphabetic, or whose
// length differs from the first word, fails with ErrInvalidWordList.
// Duplicates are dropped.
func FromWords(ws []string) (*List, error) {
	if len(ws) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrInvalidWordList)
	}
	length := len(ws[0])
	for _, w := range ws {
		if len(w) != length || !isAlpha(w) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidWordList, w)
		}
	}
	return build(ws, length)
}

// normalize lowercases and trims each entry and keeps valid words.
func normalize(raw []string, length int) []string {
	out := make([]string, 0, len(raw))
	for _, w := range raw {
		w = strings.TrimSpace(strings.ToLower(w))
		if len(w) == length && isAlpha(w) {
			out = append(out, w)
		}
	}
	return out
}

func build(ws []string, length int) (*List, error) {
	l := &List{index: make(map[string]int, len(ws)), length: length}
	for _, w := range ws {
		if _, dup := l.index[w]; dup {
			continue
		}
		l.index[w] = len(l.words)
		l.words = append(l.words, w)
	}
	if len(l.words) == 0 {
		return nil, fmt.Errorf("%w: no %d-letter words", ErrInvalidWordList, length)
	}
	return l, nil
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// Words returns the words in list order. The slice is shared; do not modify.
func (l *List) Words() []string { return l.words }

// Len is the number of words.
func (l *List) Len() int { return len(l.words) }

// Length is the common word length.
func (l *List) Length() int { return l.length }

// At returns the i-th word.
func (l *List) At(i int) string { return l.words[i] }

// Contains reports whether w (any case) is in the list.
func (l *List) Contains(w string) bool {
	_, ok := l.index[strings.ToLower(w)]
	return ok
}
