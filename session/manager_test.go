package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripwise/tripwise/domain"
	"github.com/tripwise/tripwise/session"
	"github.com/tripwise/tripwise/tests/helpers"
)

func newManager(t *testing.T) (*session.Manager, *session.Manager) {
	t.Helper()
	st := helpers.NewTestSQLiteStore(t)
	// Second manager over the same store simulates a restarted process.
	return session.NewManager(st, time.Minute), session.NewManager(st, time.Minute)
}

func TestGetOrCreateDefaults(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()

	sess, err := m.GetOrCreate(ctx, "")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Empty(t, sess.History)
	assert.Equal(t, domain.StageInitial, sess.State[domain.KeyProgressStage])
	assert.Contains(t, sess.State, domain.KeyOriginAirport)
	assert.Nil(t, sess.State[domain.KeyOriginAirport])
}

func TestGetOrCreateReturnsSameSession(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()

	first, err := m.GetOrCreate(ctx, "s1")
	require.NoError(t, err)
	first.Lock()
	first.State[domain.KeyOriginAirport] = "JFK"
	first.Unlock()

	second, err := m.GetOrCreate(ctx, "s1")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestUpdateStateMerges(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()

	_, err := m.GetOrCreate(ctx, "s1")
	require.NoError(t, err)

	state, err := m.UpdateState(ctx, "s1", map[string]interface{}{
		domain.KeyOriginAirport: "JFK",
		domain.KeyAdults:        2,
	})
	require.NoError(t, err)
	assert.Equal(t, "JFK", state[domain.KeyOriginAirport])
	assert.Equal(t, 2, state[domain.KeyAdults])
	// untouched keys survive the merge
	assert.Equal(t, domain.StageInitial, state[domain.KeyProgressStage])

	state, err = m.UpdateState(ctx, "s1", map[string]interface{}{
		domain.KeyOriginAirport: "LHR",
	})
	require.NoError(t, err)
	assert.Equal(t, "LHR", state[domain.KeyOriginAirport])
	assert.Equal(t, 2, state[domain.KeyAdults])
}

func TestUpdateStateRequiresActiveSession(t *testing.T) {
	m, restarted := newManager(t)
	ctx := context.Background()

	_, err := m.GetOrCreate(ctx, "s1")
	require.NoError(t, err)

	// A persisted record alone is not enough: the restarted manager has no
	// in-memory entry for s1.
	_, err = restarted.UpdateState(ctx, "s1", map[string]interface{}{"adults": 1})
	assert.True(t, errors.Is(err, session.ErrNotFound))
}

func TestResetThenCreateYieldsDefaults(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()

	_, err := m.GetOrCreate(ctx, "s1")
	require.NoError(t, err)
	_, err = m.UpdateState(ctx, "s1", map[string]interface{}{domain.KeyOriginAirport: "JFK"})
	require.NoError(t, err)

	require.NoError(t, m.Reset(ctx, "s1"))

	sess, err := m.GetOrCreate(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, sess.State[domain.KeyOriginAirport])
	assert.Equal(t, domain.StageInitial, sess.State[domain.KeyProgressStage])
}

func TestResetNonexistentSession(t *testing.T) {
	m, _ := newManager(t)
	assert.NoError(t, m.Reset(context.Background(), "never-seen"))
}

func TestSnapshotRehydratesAfterRestart(t *testing.T) {
	m, restarted := newManager(t)
	ctx := context.Background()

	sess, err := m.GetOrCreate(ctx, "s1")
	require.NoError(t, err)
	sess.Lock()
	sess.State[domain.KeyDestinationAirport] = "CDG"
	sess.Unlock()
	require.NoError(t, m.SaveState(ctx, sess))

	rehydrated, err := restarted.Snapshot(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "CDG", rehydrated.State[domain.KeyDestinationAirport])
	assert.Empty(t, rehydrated.History, "history must not survive a restart")
}

func TestSnapshotUnknownSession(t *testing.T) {
	m, _ := newManager(t)

	_, err := m.Snapshot(context.Background(), "missing")
	assert.True(t, errors.Is(err, session.ErrNotFound))
}
