// main.go
//
// Entry point for the word-puzzle solver.
//
//	wordpicker [flags] serve      HTTP API (default)
//	wordpicker [flags] play       interactive session on the terminal
//	wordpicker [flags] selftest   solve every word of the universe and report
//	wordpicker [flags] daily      solve the word of the day (-date YYYY-MM-DD)
//	wordpicker [flags] token      print an operator token for the /selftest routes
//
// Configuration comes from the environment (.env honoured in development).

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordpicker/internal/config"
	"github.com/robalobadob/wordpicker/internal/console"
	"github.com/robalobadob/wordpicker/internal/daily"
	"github.com/robalobadob/wordpicker/internal/game"
	"github.com/robalobadob/wordpicker/internal/httpserver"
	"github.com/robalobadob/wordpicker/internal/report"
	"github.com/robalobadob/wordpicker/internal/selftest"
	"github.com/robalobadob/wordpicker/internal/solver"
	"github.com/robalobadob/wordpicker/internal/store"
	"github.com/robalobadob/wordpicker/internal/words"
)

var (
	dateFlag    = flag.String("date", "", "daily: date to solve, YYYY-MM-DD (default today)")
	noStoreFlag = flag.Bool("no-store", false, "selftest: do not save the report")
	subjectFlag = flag.String("subject", "operator", "token: subject claim")
	ttlFlag     = flag.Duration("ttl", 24*time.Hour, "token: lifetime")
)

func main() {
	_ = godotenv.Load()
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mode := "serve"
	if flag.NArg() > 0 {
		mode = strings.ToLower(flag.Arg(0))
	}
	if err := run(ctx, mode, cfg); err != nil {
		log.Fatal().Err(err).Str("mode", mode).Msg("exited")
	}
}

func setupLogging(cfg config.Config) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func run(ctx context.Context, mode string, cfg config.Config) error {
	if mode == "token" {
		tok, exp, err := httpserver.SignToken(cfg.JWTSecret, *subjectFlag, *ttlFlag)
		if err != nil {
			return err
		}
		fmt.Println(tok)
		log.Info().Time("expires", exp).Msg("token issued")
		return nil
	}

	list, err := words.Load(cfg.WordsFile, cfg.WordLength)
	if err != nil {
		return fmt.Errorf("load word list: %w", err)
	}
	log.Info().Int("words", list.Len()).Int("length", list.Length()).Msg("word list loaded")

	switch mode {
	case "serve":
		return serve(ctx, cfg, list)
	case "play":
		c, err := console.NewController(console.Options{
			Words:    list.Words(),
			Length:   list.Length(),
			Solver:   cfg.SolverOptions(),
			SelfTest: selftestOptions(cfg),
		})
		if err != nil {
			return err
		}
		return c.Loop(ctx)
	case "selftest":
		return runSelfTest(ctx, cfg, list)
	case "daily":
		return solveDaily(cfg, list)
	default:
		return fmt.Errorf("unknown mode %q (serve, play, selftest, daily, token)", mode)
	}
}

func serve(ctx context.Context, cfg config.Config, list *words.List) error {
	reports, err := report.Open(cfg.ReportDB)
	if err != nil {
		return fmt.Errorf("open report db: %w", err)
	}
	defer reports.Close()

	srv := httpserver.New(cfg, list, store.NewMemoryStore(), reports)
	log.Info().Str("port", cfg.Port).Msg("starting wordpicker")
	return srv.Start(ctx, ":"+cfg.Port)
}

func selftestOptions(cfg config.Config) selftest.Options {
	return selftest.Options{
		Solver:    cfg.SolverOptions(),
		Scorer:    cfg.Scorer(),
		Scoring:   cfg.Scoring,
		MaxRounds: cfg.MaxRounds,
		Workers:   cfg.Workers,
	}
}

func runSelfTest(ctx context.Context, cfg config.Config, list *words.List) error {
	opts := selftestOptions(cfg)
	if cfg.Progress {
		opts.Progress = os.Stderr
	}
	rep, err := selftest.Run(ctx, list.Words(), opts)
	if err != nil {
		return err
	}
	if err := rep.Summary(os.Stdout); err != nil {
		return err
	}
	if *noStoreFlag {
		return nil
	}

	reports, err := report.Open(cfg.ReportDB)
	if err != nil {
		return fmt.Errorf("open report db: %w", err)
	}
	defer reports.Close()
	id, err := reports.Save(ctx, rep)
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	log.Info().Int64("run", id).Str("db", cfg.ReportDB).Msg("report saved")
	return nil
}

func solveDaily(cfg config.Config, list *words.List) error {
	date, err := daily.ParseDate(*dateFlag, time.Now())
	if err != nil {
		return err
	}
	word := daily.Word(list.Words(), date, cfg.DailySalt)
	g := game.New(word, cfg.MaxRounds, cfg.Scorer())
	tr, err := solver.New(list.Words(), cfg.SolverOptions()).Play(g, cfg.MaxRounds)
	for i, guess := range tr.Guesses {
		fmt.Printf("%d. %s %s\n", i+1, strings.ToUpper(guess), tr.Feedback[i])
	}
	if err != nil {
		return err
	}
	if !tr.Solved {
		fmt.Printf("%s: not found in %d guesses\n", daily.DateKey(date), cfg.MaxRounds)
		return nil
	}
	fmt.Printf("%s: found %s in %d guesses\n", daily.DateKey(date), strings.ToUpper(word), tr.Rounds())
	return nil
}
