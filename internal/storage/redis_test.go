package storage

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/survival-engine/pkg/state"
)

func newTestStorage(t *testing.T) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	rs, err := NewRedisStorage("redis://"+mr.Addr(), t.TempDir(), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rs.Close() })
	return rs, mr
}

func TestRedisStorage_SessionRoundTrip(t *testing.T) {
	rs, mr := newTestStorage(t)
	ctx := context.Background()

	gs := state.NewSessionState(2, "bunker_entrance")
	gs.Profession = state.ProfessionHardware
	gs.Turn = 7
	gs.Inventory = []string{"multimeter", "soldering_iron"}
	gs.RobotParts["power"] = true

	require.NoError(t, rs.SaveSession(ctx, gs))

	loaded, err := rs.LoadSession(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, gs.ID, loaded.ID)
	assert.Equal(t, 7, loaded.Turn)
	assert.Equal(t, state.ProfessionHardware, loaded.Profession)
	assert.Equal(t, []string{"multimeter", "soldering_iron"}, loaded.Inventory)
	assert.True(t, loaded.RobotParts["power"])

	// Saves must not expire.
	assert.Zero(t, mr.TTL("session:2"))
}

func TestRedisStorage_EmptySlot(t *testing.T) {
	rs, _ := newTestStorage(t)

	loaded, err := rs.LoadSession(context.Background(), 3)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStorage_SaveOverwritesSlot(t *testing.T) {
	rs, _ := newTestStorage(t)
	ctx := context.Background()

	first := state.NewSessionState(1, "bunker_entrance")
	require.NoError(t, rs.SaveSession(ctx, first))

	second := state.NewSessionState(1, "lab_1")
	second.Turn = 12
	require.NoError(t, rs.SaveSession(ctx, second))

	loaded, err := rs.LoadSession(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, second.ID, loaded.ID)
	assert.Equal(t, 12, loaded.Turn)
}

func TestRedisStorage_ListSlots(t *testing.T) {
	rs, _ := newTestStorage(t)
	ctx := context.Background()

	gs := state.NewSessionState(2, "bunker_entrance")
	gs.Profession = state.ProfessionSoftware
	gs.Chapter = 3
	gs.Turn = 9
	require.NoError(t, rs.SaveSession(ctx, gs))

	slots, err := rs.ListSlots(ctx, 3)
	require.NoError(t, err)
	require.Len(t, slots, 3)

	assert.False(t, slots[0].Occupied)
	assert.True(t, slots[1].Occupied)
	assert.Contains(t, slots[1].Label, "software")
	assert.Contains(t, slots[1].Label, "turn 9")
	assert.False(t, slots[2].Occupied)
}

func TestRedisStorage_Summary(t *testing.T) {
	rs, _ := newTestStorage(t)
	ctx := context.Background()

	empty, err := rs.LoadSummary(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, rs.SaveSummary(ctx, 1, "The engineer escaped."))

	got, err := rs.LoadSummary(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "The engineer escaped.", got)
}

func TestRedisStorage_LoadWorldFallback(t *testing.T) {
	rs, _ := newTestStorage(t)

	w, err := rs.LoadWorld(context.Background())
	require.NoError(t, err)
	require.NoError(t, w.Validate())
	assert.Equal(t, "bunker_entrance", w.Start)
}

func TestRedisStorage_LoadWorldFromFile(t *testing.T) {
	mr := miniredis.RunT(t)
	dir := t.TempDir()

	yaml := `start: cellar
rooms:
  cellar:
    name: Cellar
    connections: [hall]
  hall:
    name: Hall
    connections: [cellar]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "world.yaml"), []byte(yaml), 0o644))

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	rs, err := NewRedisStorage("redis://"+mr.Addr(), dir, logger)
	require.NoError(t, err)
	defer rs.Close()

	w, err := rs.LoadWorld(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cellar", w.Start)
	assert.Len(t, w.Rooms, 2)
}

func TestRedisStorage_Ping(t *testing.T) {
	rs, mr := newTestStorage(t)

	require.NoError(t, rs.Ping(context.Background()))

	mr.Close()
	assert.Error(t, rs.Ping(context.Background()))
}

func TestNewRedisStorage_BadURL(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	_, err := NewRedisStorage("not a url", "", logger)
	assert.Error(t, err)
}
