package report

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordpicker/internal/selftest"
	"github.com/robalobadob/wordpicker/internal/solver"
)

var universe = []string{"crane", "slate", "stare", "trace", "apple", "angle", "ankle", "brown"}

func openTemp(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "data", "reports.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestSaveAndRecent(t *testing.T) {
	ctx := context.Background()
	st := openTemp(t)

	rep, err := selftest.Run(ctx, universe, selftest.Options{
		MaxRounds: 8,
		Solver:    solver.Options{Window: 4, RankOver: solver.RankCandidates},
	})
	require.NoError(t, err)

	id, err := st.Save(ctx, rep)
	require.NoError(t, err)
	assert.Positive(t, id)

	runs, err := st.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	got := runs[0]
	want := rep.Summarize()
	assert.Equal(t, id, got.ID)
	assert.Equal(t, want.Words, got.Summary.Words)
	assert.Equal(t, want.Solved, got.Summary.Solved)
	assert.InDelta(t, want.Mean, got.Summary.Mean, 1e-9)
	assert.Equal(t, want.Histogram, got.Summary.Histogram)
	assert.Equal(t, "simple", got.Summary.Scoring)
	assert.Equal(t, solver.RankCandidates, got.Options.RankOver)
	assert.True(t, rep.Started.Equal(got.StartedAt))

	trials, err := st.Trials(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, rep.Trials, trials)

	one, err := st.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, got, one)
}

func TestRecentNewestFirst(t *testing.T) {
	ctx := context.Background()
	st := openTemp(t)

	for _, n := range []int{2, 4, 6} {
		rep, err := selftest.Run(ctx, universe[:n], selftest.Options{})
		require.NoError(t, err)
		_, err = st.Save(ctx, rep)
		require.NoError(t, err)
	}

	runs, err := st.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, 6, runs[0].Summary.Words)
	assert.Equal(t, 4, runs[1].Summary.Words)
}

func TestGetMissing(t *testing.T) {
	st := openTemp(t)
	_, err := st.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMigrateIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports.db")
	st, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	st, err = Open(path)
	require.NoError(t, err)
	defer st.Close()

	var n int
	require.NoError(t, st.db.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&n))
	assert.Equal(t, 1, n)
}
