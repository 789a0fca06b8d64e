// internal/selftest/selftest.go
//
// Self-test harness: every word of the universe is, in turn, the secret of
// a simulated game, and a fresh solver tries to find it.
//
// Responsibilities:
//   - Play one independent session per word, capped at MaxRounds guesses.
//   - Record the round count of each session; sessions that run out of
//     rounds or candidates are kept as failed trials, never retried.
//   - Aggregate min/max/mean/stdev and a round-count histogram.
//
// Sessions share only the read-only word slice, so they are fanned out over
// an errgroup. Results are stored by word index: the report is identical
// for any worker count.

package selftest

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordpicker/internal/game"
	"github.com/robalobadob/wordpicker/internal/solver"
	"github.com/robalobadob/wordpicker/internal/stats"
)

// Options configure a run.
type Options struct {
	Solver    solver.Options
	Scorer    game.Scorer
	Scoring   string // label stored with the report
	MaxRounds int
	Workers   int
	// Progress receives a progress bar when non-nil.
	Progress io.Writer
}

// Trial is the outcome of one session.
type Trial struct {
	Word    string   `json:"word"`
	Rounds  int      `json:"rounds"`
	Solved  bool     `json:"solved"`
	Guesses []string `json:"guesses"`
	Err     string   `json:"error,omitempty"`
}

// Report holds every trial of a run plus aggregates.
type Report struct {
	Started   time.Time
	Elapsed   time.Duration
	MaxRounds int
	Scoring   string
	Options   solver.Options
	Trials    []Trial

	rounds    stats.Statistic
	histogram stats.Histogram
}

// Summary is the aggregate view of a Report.
type Summary struct {
	Words     int         `json:"words"`
	Solved    int         `json:"solved"`
	Failed    int         `json:"failed"`
	Mean      float64     `json:"mean"`
	Stdev     float64     `json:"stdev"`
	Min       int         `json:"min"`
	Max       int         `json:"max"`
	MaxRounds int         `json:"maxRounds"`
	Scoring   string      `json:"scoring"`
	Histogram map[int]int `json:"histogram"`
	ElapsedMs int64       `json:"elapsedMs"`
}

// Run plays every word in words as a secret. It returns early only when ctx
// is cancelled.
func Run(ctx context.Context, words []string, opts Options) (*Report, error) {
	if opts.MaxRounds <= 0 {
		opts.MaxRounds = game.DefaultRows
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Scorer == nil {
		opts.Scorer = game.SimpleScorer
	}
	if opts.Scoring == "" {
		opts.Scoring = game.ScoringSimple
	}

	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = progressbar.NewOptions(len(words),
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetDescription("self-test"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	r := &Report{
		Started:   time.Now().UTC(),
		MaxRounds: opts.MaxRounds,
		Scoring:   opts.Scoring,
		Options:   opts.Solver,
		Trials:    make([]Trial, len(words)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, w := range words {
		i, w := i, w
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r.Trials[i] = playOne(words, w, opts)
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("self-test: %w", err)
	}
	if bar != nil {
		_ = bar.Finish()
	}

	r.Elapsed = time.Since(r.Started)
	r.aggregate()
	log.Info().
		Int("words", len(r.Trials)).
		Float64("mean", r.rounds.Mean()).
		Int("failed", len(r.Failed())).
		Dur("elapsed", r.Elapsed).
		Msg("self-test finished")
	return r, nil
}

func playOne(words []string, secret string, opts Options) Trial {
	s := solver.New(words, opts.Solver)
	g := game.New(secret, opts.MaxRounds, opts.Scorer)
	tr, err := s.Play(g, opts.MaxRounds)

	t := Trial{Word: secret, Rounds: tr.Rounds(), Solved: tr.Solved, Guesses: tr.Guesses}
	if err != nil {
		t.Err = err.Error()
		log.Warn().Err(err).Str("word", secret).Int("rounds", t.Rounds).Msg("session failed")
	} else if !tr.Solved {
		log.Debug().Str("word", secret).Msg("session did not converge")
	}
	log.Debug().Str("word", secret).Int("rounds", t.Rounds).Bool("solved", t.Solved).Msg("trial")
	return t
}

func (r *Report) aggregate() {
	r.rounds = stats.Statistic{}
	r.histogram = stats.Histogram{}
	for _, t := range r.Trials {
		r.rounds.Push(float64(t.Rounds))
		r.histogram.Add(t.Rounds)
	}
}

// Failed returns the trials that did not find their word.
func (r *Report) Failed() []Trial {
	return lo.Filter(r.Trials, func(t Trial, _ int) bool { return !t.Solved })
}

// Histogram maps round counts to the number of words that took that many.
func (r *Report) Histogram() stats.Histogram { return r.histogram }

// Summarize returns the aggregates.
func (r *Report) Summarize() Summary {
	failed := len(r.Failed())
	return Summary{
		Words:     len(r.Trials),
		Solved:    len(r.Trials) - failed,
		Failed:    failed,
		Mean:      r.rounds.Mean(),
		Stdev:     r.rounds.Stdev(),
		Min:       int(r.rounds.Min()),
		Max:       int(r.rounds.Max()),
		MaxRounds: r.MaxRounds,
		Scoring:   r.Scoring,
		Histogram: r.histogram,
		ElapsedMs: r.Elapsed.Milliseconds(),
	}
}

// Summary writes a human-readable report: totals, one line per round
// count, the failed words and a histogram.
func (r *Report) Summary(w io.Writer) error {
	s := r.Summarize()
	fmt.Fprintf(w, "Test guessed %d words with an average guess tries of %.4f with low of %d and high of %d\n",
		s.Words, s.Mean, s.Min, s.Max)
	for _, k := range r.histogram.Keys() {
		fmt.Fprintf(w, "found %d words in %d guesses\n", r.histogram[k], k)
	}
	if s.Failed > 0 {
		fmt.Fprintf(w, "%d words not found within %d guesses: %v\n", s.Failed, s.MaxRounds,
			lo.Map(r.Failed(), func(t Trial, _ int) string { return t.Word }))
	}
	return stats.Plot(w, lo.Map(r.Trials, func(t Trial, _ int) int { return t.Rounds }))
}
