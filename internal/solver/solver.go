// internal/solver/solver.go
//
// Solver drives one session against a fixed word universe.
// Per round:
//   Filter (universe + knowledge) → rank letters → compose priority list →
//   MostCovering → first entry is the guess → caller reports feedback →
//   Record updates the knowledge.
//
// A Solver owns its Knowledge; independent solvers share nothing but the
// read-only universe, so sessions can run side by side.

package solver

import (
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
)

// ErrNoCandidates is returned when no word is consistent with the
// feedback received so far.
var ErrNoCandidates = errors.New("no viable candidate remains")

// RankSource selects the word list letters are ranked over.
type RankSource string

const (
	// RankUniverse ranks letters over the full word list, once.
	RankUniverse RankSource = "universe"
	// RankCandidates re-ranks letters over the remaining candidates each round.
	RankCandidates RankSource = "candidates"
)

// Options tune guess selection. The zero value selects the defaults.
type Options struct {
	// ResultsMoreThan is the match count a letter subset must exceed
	// before the selector stops shrinking it.
	ResultsMoreThan int
	// Window is the number of priority letters tried together first.
	Window int
	// RankOver picks the list letter frequencies are computed from.
	RankOver RankSource
	// AvoidDuplicates prefers candidates without repeated unknown letters.
	AvoidDuplicates bool
}

// FeedbackSource answers a guess with per-letter verdicts.
type FeedbackSource interface {
	Feedback(guess string) (Feedback, error)
}

// Solver proposes guesses for one secret at a time.
type Solver struct {
	words   []string
	ranking []byte
	opts    Options
	k       *Knowledge
}

// New builds a solver over words. The slice is not copied and must not be
// modified while the solver is in use.
func New(words []string, opts Options) *Solver {
	if opts.Window <= 0 {
		opts.Window = DefaultWindow
	}
	if opts.RankOver == "" {
		opts.RankOver = RankUniverse
	}
	return &Solver{
		words:   words,
		ranking: CommonLetters(words),
		opts:    opts,
		k:       NewKnowledge(),
	}
}

// Knowledge exposes the session's store for inspection.
func (s *Solver) Knowledge() *Knowledge { return s.k }

// Options reports the effective options.
func (s *Solver) Options() Options { return s.opts }

// Words returns the universe the solver draws guesses from.
func (s *Solver) Words() []string { return s.words }

// Reset forgets everything learned; the next Guess starts a new session.
func (s *Solver) Reset() { s.k.Reset() }

// Candidates returns the words still consistent with the feedback so far.
func (s *Solver) Candidates() []string {
	if s.k.Empty() {
		return s.words
	}
	return Filter(s.words, s.k)
}

// Suggestions returns every word the selector ranks best for the next
// round, in universe order.
func (s *Solver) Suggestions() []string {
	candidates := s.Candidates()
	ranking := s.ranking
	if s.opts.RankOver == RankCandidates {
		ranking = CommonLetters(candidates)
	}
	letters := BestGuessLetters(s.k, ranking)
	pool := candidates
	if s.opts.AvoidDuplicates {
		pool = PreferDistinct(candidates, s.k)
	}
	res := MostCovering(pool, letters, s.opts.Window, s.opts.ResultsMoreThan)
	log.Debug().
		Int("candidates", len(candidates)).
		Int("suggestions", len(res)).
		Str("letters", string(letters)).
		Msg("solver round")
	return res
}

// Guess returns the next word to try, or ErrNoCandidates.
func (s *Solver) Guess() (string, error) {
	res := s.Suggestions()
	if len(res) == 0 {
		return "", ErrNoCandidates
	}
	return res[0], nil
}

// Record applies the feedback received for guess.
func (s *Solver) Record(guess string, fb Feedback) error {
	return s.k.Apply(strings.ToLower(guess), fb)
}

// Trace is the history of one played session.
type Trace struct {
	Guesses  []string   `json:"guesses"`
	Feedback []Feedback `json:"feedback"`
	Solved   bool       `json:"solved"`
}

// Rounds is the number of guesses made.
func (t Trace) Rounds() int { return len(t.Guesses) }

// Play resets the solver and plays against src until the feedback is all
// hits or maxRounds guesses have been made. An unsolved trace with a nil
// error means the session did not converge within maxRounds.
func (s *Solver) Play(src FeedbackSource, maxRounds int) (Trace, error) {
	s.Reset()
	var tr Trace
	for tr.Rounds() < maxRounds {
		guess, err := s.Guess()
		if err != nil {
			return tr, err
		}
		fb, err := src.Feedback(guess)
		if err != nil {
			return tr, err
		}
		tr.Guesses = append(tr.Guesses, guess)
		tr.Feedback = append(tr.Feedback, fb)
		if fb.Solved() {
			tr.Solved = true
			return tr, nil
		}
		if err := s.Record(guess, fb); err != nil {
			return tr, err
		}
	}
	return tr, nil
}
