package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	mb "github.com/saeidalz13/moving-battleship/models/battleship"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SnapshotStore {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "snapshots.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newTestGame() *mb.Game {
	ships := []*mb.Ship{
		mb.NewShip(mb.NewCoordinates(0, 0), 2, mb.DirectionRight, 5),
		mb.NewShip(mb.NewCoordinates(4, 1), 3, mb.DirectionDown, 5),
	}
	return mb.NewGame(5, ships, mb.WithUuid("abc123"))
}

func TestSaveAndLatest(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	game := newTestGame()

	_, err := store.Latest(ctx, game.Uuid())
	assert.ErrorIs(t, err, ErrSnapshotNotFound)

	game.PlayRound(mb.NewCoordinates(3, 3))
	first, err := store.Save(ctx, game)
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.Equal(t, 1, first.Round)
	assert.Equal(t, 2, first.ShipsRemaining)
	assert.False(t, first.Finished)

	game.PlayRound(mb.NewCoordinates(0, 4))
	_, err = store.Save(ctx, game)
	require.NoError(t, err)

	latest, err := store.Latest(ctx, game.Uuid())
	require.NoError(t, err)
	assert.Equal(t, 2, latest.Round)
	assert.Equal(t, game.Dump(), latest.Dump)

	history, err := store.History(ctx, game.Uuid())
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 1, history[0].Round)
	assert.Equal(t, 2, history[1].Round)

	other, err := store.History(ctx, "zzz999")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestRestore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	game := newTestGame()

	game.PlayRound(mb.NewCoordinates(2, 2))
	game.PlayRound(mb.NewCoordinates(1, 3))
	_, err := store.Save(ctx, game)
	require.NoError(t, err)

	restored, err := store.Restore(ctx, game.Uuid())
	require.NoError(t, err)

	assert.Equal(t, game.Uuid(), restored.Uuid())
	assert.Equal(t, game.Round(), restored.Round())
	assert.Equal(t, game.Dump(), restored.Dump())

	// both games must keep evolving the same way
	target := mb.NewCoordinates(4, 4)
	original := game.PlayRound(target)
	replayed := restored.PlayRound(target)
	assert.Equal(t, original.Hits, replayed.Hits)
	assert.Equal(t, game.Dump(), restored.Dump())
}

func TestRestoreMissingGame(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Restore(context.Background(), "nope00")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestRestoreDropsHitsOnRemovedShips(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	sunk := mb.NewShip(mb.NewCoordinates(0, 0), 1, mb.DirectionNotMoving, 5)
	afloat := mb.NewShip(mb.NewCoordinates(2, 3), 2, mb.DirectionNotMoving, 5)
	game := mb.NewGame(5, []*mb.Ship{sunk, afloat}, mb.WithUuid("def456"))

	game.PlayRound(mb.NewCoordinates(0, 0))
	game.PlayRound(mb.NewCoordinates(3, 3))
	_, err := store.Save(ctx, game)
	require.NoError(t, err)

	restored, err := store.Restore(ctx, game.Uuid())
	require.NoError(t, err)

	assert.Equal(t, game.Dump(), restored.Dump())
	assert.Equal(t, []mb.Coordinates{{X: 0, Y: 0}, {X: 3, Y: 3}}, game.HitHistory())
	assert.Equal(t, []mb.Coordinates{{X: 3, Y: 3}}, restored.HitHistory())
}
