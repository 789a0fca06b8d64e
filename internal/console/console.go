// internal/console/console.go
//
// Interactive solver session on a terminal.
// The controller prints a guess, the player types the colours the puzzle
// showed for it, and the controller answers with the next guess.
//
// Input:
//   - feedback, one symbol per letter: '_' or 'b' absent, '0' or 'y'
//     present, '1' or 'g' hit
//   - r restart, c list candidates, t run the self-test, h help, q quit

package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/TwiN/go-color"
	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordpicker/internal/selftest"
	"github.com/robalobadob/wordpicker/internal/solver"
)

// maxListed bounds the candidates printed by the c command.
const maxListed = 40

const helpText = `feedback: one symbol per letter, _ or b absent, 0 or y present, 1 or g hit
commands: r restart, c candidates, t self-test, h help, q quit`

// Options configure a Controller.
type Options struct {
	Words    []string
	Length   int
	Solver   solver.Options
	SelfTest selftest.Options
	// Plain disables coloured tiles.
	Plain bool
}

// Controller runs the prompt loop.
type Controller struct {
	l      *readline.Instance
	out    io.Writer
	opts   Options
	solver *solver.Solver
	guess  string
	rounds int
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

// NewController opens a readline prompt on the terminal.
func NewController(opts Options) (*Controller, error) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mfeedback>\033[0m ",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, fmt.Errorf("readline: %w", err)
	}
	c := newController(l.Stdout(), opts)
	c.l = l
	return c, nil
}

func newController(out io.Writer, opts Options) *Controller {
	if opts.Length <= 0 {
		opts.Length = solver.DefaultWordLength
	}
	return &Controller{
		out:    out,
		opts:   opts,
		solver: solver.New(opts.Words, opts.Solver),
	}
}

// Loop reads lines until q, EOF or interrupt.
func (c *Controller) Loop(ctx context.Context) error {
	defer func() {
		_ = c.l.Close()
		log.Debug().Msg("exiting readline loop")
	}()

	showMessage(helpText, c.out)
	if err := c.restart(); err != nil {
		return err
	}
	for {
		line, err := c.l.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return nil
			}
			continue
		} else if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}

		quit, err := c.dispatch(ctx, line)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// dispatch handles one input line and reports whether to quit.
func (c *Controller) dispatch(ctx context.Context, line string) (bool, error) {
	line = strings.ToLower(strings.TrimSpace(line))
	switch line {
	case "":
		return false, nil
	case "q", "quit", "exit":
		return true, nil
	case "h", "help", "?":
		showMessage(helpText, c.out)
	case "r", "restart":
		showMessage("restarting", c.out)
		return false, c.restart()
	case "c", "candidates":
		c.listCandidates()
	case "t", "test", "selftest":
		return false, c.runSelfTest(ctx)
	default:
		return false, c.feedback(line)
	}
	return false, nil
}

func (c *Controller) feedback(line string) error {
	if c.guess == "" {
		return c.restart()
	}
	fb, err := solver.ParseFeedback(line, c.opts.Length)
	if err != nil {
		showMessage(fmt.Sprintf("invalid feedback: %v", err), c.out)
		return nil
	}
	c.rounds++
	showMessage(renderTiles(c.guess, fb, c.opts.Plain), c.out)

	if fb.Solved() {
		showMessage(fmt.Sprintf("found %s in %d guesses", strings.ToUpper(c.guess), c.rounds), c.out)
		return c.restart()
	}
	if err := c.solver.Record(c.guess, fb); err != nil {
		c.rounds--
		showMessage(fmt.Sprintf("invalid feedback: %v", err), c.out)
		return nil
	}
	return c.next()
}

// restart forgets the current word and proposes the opening guess.
func (c *Controller) restart() error {
	c.solver.Reset()
	c.rounds = 0
	return c.next()
}

func (c *Controller) next() error {
	guess, err := c.solver.Guess()
	if errors.Is(err, solver.ErrNoCandidates) {
		showMessage("no word matches that feedback, restarting", c.out)
		c.solver.Reset()
		c.rounds = 0
		guess, err = c.solver.Guess()
	}
	if err != nil {
		return err
	}
	c.guess = guess
	showMessage(fmt.Sprintf("guess %d: %s (%d candidates)", c.rounds+1,
		strings.ToUpper(guess), len(c.solver.Candidates())), c.out)
	return nil
}

func (c *Controller) listCandidates() {
	cands := c.solver.Candidates()
	shown := cands
	if len(shown) > maxListed {
		shown = shown[:maxListed]
	}
	msg := fmt.Sprintf("%d candidates: %s", len(cands), strings.Join(shown, " "))
	if len(cands) > len(shown) {
		msg += " ..."
	}
	showMessage(msg, c.out)
}

func (c *Controller) runSelfTest(ctx context.Context) error {
	showMessage(fmt.Sprintf("self-test over %d words", len(c.opts.Words)), c.out)
	rep, err := selftest.Run(ctx, c.opts.Words, c.opts.SelfTest)
	if err != nil {
		return err
	}
	if err := rep.Summary(c.out); err != nil {
		return err
	}
	return c.restart()
}

// renderTiles shows guess with one tile per letter.
func renderTiles(guess string, fb solver.Feedback, plain bool) string {
	if plain {
		return strings.ToUpper(guess) + " " + fb.String()
	}
	var b strings.Builder
	for i := 0; i < len(guess) && i < len(fb); i++ {
		b.WriteString(color.Ize(tileColor(fb[i]), " "+strings.ToUpper(guess[i:i+1])+" "))
	}
	return b.String()
}

func tileColor(v solver.Verdict) string {
	switch v {
	case solver.Hit:
		return color.Green
	case solver.Present:
		return color.Yellow
	default:
		return color.Gray
	}
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}
