package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stratum/internal/core/id"
)

type trackedThing struct {
	ID   id.ID  `db:"id"`
	Name string `db:"name"`
}

func TestTracker_CaptureFirstWinsPerVersion(t *testing.T) {
	var tr Tracker
	thing := &trackedThing{ID: id.New(), Name: "before"}

	first, err := tr.Capture(thing)
	require.NoError(t, err)

	thing.Name = "after"
	second, err := tr.Capture(thing)
	require.NoError(t, err)

	// Same stored snapshot, holding the pre-mutation value.
	assert.Same(t, first, second)
	assert.Equal(t, "before", second.(*trackedThing).Name)
}

func TestTracker_EarliestMemoized(t *testing.T) {
	var tr Tracker
	thing := &trackedThing{ID: id.New(), Name: "v0"}

	earliest, err := tr.Earliest(thing)
	require.NoError(t, err)
	assert.Equal(t, "v0", earliest.(*trackedThing).Name)

	tr.BumpVersion()
	thing.Name = "v1"
	_, err = tr.Capture(thing)
	require.NoError(t, err)

	again, err := tr.Earliest(thing)
	require.NoError(t, err)
	assert.Same(t, earliest, again)
}

func TestTracker_LatestReturnsHighestVersion(t *testing.T) {
	var tr Tracker
	thing := &trackedThing{ID: id.New(), Name: "v0"}

	_, err := tr.Earliest(thing)
	require.NoError(t, err)

	tr.BumpVersion()
	thing.Name = "v1"
	_, err = tr.Capture(thing)
	require.NoError(t, err)

	latest, err := tr.Latest(thing)
	require.NoError(t, err)
	assert.Equal(t, "v1", latest.(*trackedThing).Name)
	assert.Equal(t, 1, tr.Version())
}

func TestTracker_LatestCapturesWhenEmpty(t *testing.T) {
	var tr Tracker
	thing := &trackedThing{ID: id.New(), Name: "current"}

	latest, err := tr.Latest(thing)
	require.NoError(t, err)
	assert.Equal(t, "current", latest.(*trackedThing).Name)
}

func TestTracker_BumpVersionSnapshotsFreshState(t *testing.T) {
	var tr Tracker
	thing := &trackedThing{ID: id.New(), Name: "saved"}

	_, err := tr.Capture(thing)
	require.NoError(t, err)

	tr.BumpVersion()
	thing.Name = "changed after save"

	snap, err := tr.Capture(thing)
	require.NoError(t, err)
	assert.Equal(t, "changed after save", snap.(*trackedThing).Name)
}

func TestTracker_InvalidateDiscardsSnapshots(t *testing.T) {
	var tr Tracker
	thing := &trackedThing{ID: id.New(), Name: "old"}

	stale, err := tr.Capture(thing)
	require.NoError(t, err)

	tr.Invalidate()
	thing.Name = "reloaded"

	fresh, err := tr.Capture(thing)
	require.NoError(t, err)
	assert.NotSame(t, stale, fresh)
	assert.Equal(t, "reloaded", fresh.(*trackedThing).Name)
}

func TestTracker_EarliestRecomputesAfterInvalidate(t *testing.T) {
	var tr Tracker
	thing := &trackedThing{ID: id.New(), Name: "old"}

	stale, err := tr.Earliest(thing)
	require.NoError(t, err)
	assert.Equal(t, "old", stale.(*trackedThing).Name)

	tr.BumpVersion()
	tr.Invalidate()
	thing.Name = "reloaded"

	fresh, err := tr.Earliest(thing)
	require.NoError(t, err)
	assert.NotSame(t, stale, fresh)
	assert.Equal(t, "reloaded", fresh.(*trackedThing).Name)
}

func TestDerived_GetMemoizesUntilClear(t *testing.T) {
	var d Derived[string]
	computes := 0

	compute := func() string {
		computes++
		return "value"
	}

	assert.Equal(t, "value", d.Get(compute))
	assert.Equal(t, "value", d.Get(compute))
	assert.Equal(t, 1, computes)
	assert.True(t, d.Valid())

	d.Clear()
	assert.False(t, d.Valid())
	assert.Equal(t, "value", d.Get(compute))
	assert.Equal(t, 2, computes)
}
