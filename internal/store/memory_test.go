package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordpicker/internal/solver"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	_, err := st.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	s := &Session{ID: "a", Solver: solver.New([]string{"crane", "slate"}, solver.Options{}), Touched: time.Now()}
	require.NoError(t, st.Save(ctx, s))

	got, err := st.Get(ctx, "a")
	require.NoError(t, err)
	assert.Same(t, s, got)

	require.NoError(t, st.Delete(ctx, "a"))
	require.NoError(t, st.Delete(ctx, "a"))
	_, err = st.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStorePrune(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	now := time.Now()

	require.NoError(t, st.Save(ctx, &Session{ID: "old", Touched: now.Add(-2 * time.Hour)}))
	require.NoError(t, st.Save(ctx, &Session{ID: "new", Touched: now}))

	assert.Equal(t, 1, st.Prune(ctx, now.Add(-time.Hour)))
	_, err := st.Get(ctx, "old")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.Get(ctx, "new")
	assert.NoError(t, err)
}

func TestMemoryStorePruneSkipsBusySession(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	s := &Session{ID: "busy", Touched: time.Now().Add(-2 * time.Hour)}
	require.NoError(t, st.Save(ctx, s))

	s.Lock()
	assert.Equal(t, 0, st.Prune(ctx, time.Now()))
	s.Unlock()
	assert.Equal(t, 1, st.Prune(ctx, time.Now()))
}

func TestMemoryStorePruneWhileSessionDeleted(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	s := &Session{ID: "a", Touched: time.Now()}
	require.NoError(t, st.Save(ctx, s))

	// a handler finishing a session deletes it while holding its lock
	s.Lock()
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		st.Prune(ctx, time.Now().Add(time.Hour))
	}()
	go func() {
		defer wg.Done()
		_ = st.Delete(ctx, s.ID)
	}()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Prune and Delete blocked on a locked session")
	}
	s.Unlock()
	_, err := st.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}
