package scenario_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pathless/grid"
	"github.com/katalvlaran/pathless/scenario"
)

func openStore(t *testing.T) *scenario.Store {
	t.Helper()
	st, err := scenario.Open(filepath.Join(t.TempDir(), "data", "pathless.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

// TestStore_CRUD saves, lists, replaces and deletes scenarios.
func TestStore_CRUD(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)

	require.NoError(t, st.Save(ctx, corridor()))
	maze, err := scenario.Builtin("maze")
	require.NoError(t, err)
	require.NoError(t, st.Save(ctx, maze))

	got, err := st.Get(ctx, "corridor")
	require.NoError(t, err)
	assert.Equal(t, corridor(), got)

	list, err := st.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "corridor", list[0].Name)
	assert.Equal(t, "maze", list[1].Name)
	assert.Equal(t, 30, list[1].Width)
	assert.False(t, list[0].UpdatedAt.IsZero())

	// Saving under an existing name replaces it.
	changed := corridor()
	changed.Walls = nil
	require.NoError(t, st.Save(ctx, changed))
	got, err = st.Get(ctx, "corridor")
	require.NoError(t, err)
	assert.Empty(t, got.Walls)
	list, err = st.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, st.Delete(ctx, "corridor"))
	_, err = st.Get(ctx, "corridor")
	assert.ErrorIs(t, err, scenario.ErrUnknownScenario)
	assert.ErrorIs(t, st.Delete(ctx, "corridor"), scenario.ErrUnknownScenario)
}

// TestStore_RejectsInvalid refuses to persist a scenario that fails validation.
func TestStore_RejectsInvalid(t *testing.T) {
	st := openStore(t)
	bad := scenario.Scenario{Name: "bad", Width: 2, Height: 2, End: grid.Point{X: 5, Y: 5}}
	assert.ErrorIs(t, st.Save(context.Background(), bad), scenario.ErrOutOfBounds)
}

// TestStore_Reopen keeps data across connections.
func TestStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "pathless.db")

	st, err := scenario.Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, st.Save(ctx, corridor()))
	require.NoError(t, st.Close())

	st, err = scenario.Open(path, nil)
	require.NoError(t, err)
	defer st.Close()
	got, err := st.Get(ctx, "corridor")
	require.NoError(t, err)
	assert.Equal(t, corridor(), got)
}

// TestResolve prefers built-ins and falls back to the store.
func TestResolve(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	require.NoError(t, st.Save(ctx, corridor()))

	s, err := scenario.Resolve(ctx, st, "simple")
	require.NoError(t, err)
	assert.Equal(t, "simple", s.Name)

	s, err = scenario.Resolve(ctx, st, "corridor")
	require.NoError(t, err)
	assert.Equal(t, 5, s.Width)

	_, err = scenario.Resolve(ctx, nil, "corridor")
	assert.ErrorIs(t, err, scenario.ErrUnknownScenario)
}
