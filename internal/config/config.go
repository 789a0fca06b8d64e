// internal/config/config.go
//
// Typed configuration read from environment variables (and .env in
// development, loaded by main before Load is called).

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/robalobadob/wordpicker/internal/game"
	"github.com/robalobadob/wordpicker/internal/solver"
)

// Config is the full runtime configuration.
type Config struct {
	WordsFile  string `env:"WORDS_FILE"`
	WordLength int    `env:"WORD_LENGTH" envDefault:"5"`

	ResultsMoreThan int    `env:"SOLVER_RESULTS_MORE_THAN" envDefault:"0"`
	Window          int    `env:"SOLVER_WINDOW"            envDefault:"4"`
	RankOver        string `env:"SOLVER_RANK_OVER"         envDefault:"universe"`
	AvoidDuplicates bool   `env:"SOLVER_AVOID_DUPLICATES"  envDefault:"false"`

	Scoring   string `env:"SELFTEST_SCORING"    envDefault:"simple"`
	MaxRounds int    `env:"SELFTEST_MAX_ROUNDS" envDefault:"10"`
	Workers   int    `env:"SELFTEST_WORKERS"    envDefault:"1"`
	Progress  bool   `env:"SELFTEST_PROGRESS"   envDefault:"true"`

	ReportDB     string        `env:"REPORT_DB"     envDefault:"./data/reports.db"`
	Port         string        `env:"PORT"          envDefault:"5175"`
	ClientOrigin string        `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	JWTSecret    string        `env:"JWT_SECRET"    envDefault:"dev_secret_change_me"`
	SessionTTL   time.Duration `env:"SESSION_TTL"   envDefault:"30m"`
	DailySalt    string        `env:"DAILY_SALT"    envDefault:"local_dev_salt"`

	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"false"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects values the solver cannot run with.
func (c Config) Validate() error {
	if c.WordLength <= 0 {
		return fmt.Errorf("WORD_LENGTH must be positive, got %d", c.WordLength)
	}
	if c.MaxRounds <= 0 {
		return fmt.Errorf("SELFTEST_MAX_ROUNDS must be positive, got %d", c.MaxRounds)
	}
	if c.ResultsMoreThan < 0 {
		return fmt.Errorf("SOLVER_RESULTS_MORE_THAN must not be negative, got %d", c.ResultsMoreThan)
	}
	if c.Window < 0 {
		return fmt.Errorf("SOLVER_WINDOW must not be negative, got %d", c.Window)
	}
	if c.Workers < 0 {
		return fmt.Errorf("SELFTEST_WORKERS must not be negative, got %d", c.Workers)
	}
	switch solver.RankSource(strings.ToLower(c.RankOver)) {
	case solver.RankUniverse, solver.RankCandidates:
	default:
		return fmt.Errorf("SOLVER_RANK_OVER: unknown value %q", c.RankOver)
	}
	if _, err := game.ScorerFor(c.Scoring); err != nil {
		return fmt.Errorf("SELFTEST_SCORING: %w", err)
	}
	return nil
}

// SolverOptions maps the solver settings onto solver.Options.
func (c Config) SolverOptions() solver.Options {
	return solver.Options{
		ResultsMoreThan: c.ResultsMoreThan,
		Window:          c.Window,
		RankOver:        solver.RankSource(strings.ToLower(c.RankOver)),
		AvoidDuplicates: c.AvoidDuplicates,
	}
}

// Scorer returns the configured self-test scorer.
func (c Config) Scorer() game.Scorer {
	s, err := game.ScorerFor(c.Scoring)
	if err != nil {
		return game.SimpleScorer
	}
	return s
}
