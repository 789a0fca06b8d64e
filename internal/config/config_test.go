package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordpicker/internal/solver"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.WordLength)
	assert.Equal(t, 10, cfg.MaxRounds)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, solver.Options{Window: 4, RankOver: solver.RankUniverse}, cfg.SolverOptions())
	assert.Equal(t, "__000", cfg.Scorer()("abide", "speed").String())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SOLVER_RANK_OVER", "Candidates")
	t.Setenv("SOLVER_AVOID_DUPLICATES", "true")
	t.Setenv("SOLVER_RESULTS_MORE_THAN", "3")
	t.Setenv("SELFTEST_SCORING", "standard")
	t.Setenv("SELFTEST_WORKERS", "8")

	cfg, err := Load()
	require.NoError(t, err)
	opts := cfg.SolverOptions()
	assert.Equal(t, solver.RankCandidates, opts.RankOver)
	assert.True(t, opts.AvoidDuplicates)
	assert.Equal(t, 3, opts.ResultsMoreThan)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "__0_0", cfg.Scorer()("abide", "speed").String())
}

func TestLoadErrors(t *testing.T) {
	cases := map[string]string{
		"SELFTEST_MAX_ROUNDS":      "0",
		"WORD_LENGTH":              "-1",
		"SOLVER_RANK_OVER":         "everything",
		"SELFTEST_SCORING":         "fancy",
		"SOLVER_RESULTS_MORE_THAN": "-2",
		"SOLVER_WINDOW":            "-1",
		"SELFTEST_WORKERS":         "-3",
	}
	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			t.Setenv(k, v)
			_, err := Load()
			assert.Error(t, err)
		})
	}

	t.Run("parse", func(t *testing.T) {
		t.Setenv("SELFTEST_WORKERS", "many")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse env:")
	})
}
