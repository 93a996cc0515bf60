package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	IntegratedEntity
	Name string `db:"name"`
}

func newPersistedWidget(name string) *widget {
	w := &widget{IntegratedEntity: NewIntegratedEntity(), Name: name}
	w.MarkPersisted()
	return w
}

func TestNewArchiveEntity_Defaults(t *testing.T) {
	a := NewArchiveEntity()

	assert.False(t, a.IsArchived())
	assert.Empty(t, a.GetArchivePoints())
	assert.True(t, a.IsNew())
	assert.Equal(t, 1, a.Version)
}

func TestSetArchived_CapturesStateFirst(t *testing.T) {
	w := newPersistedWidget("original")

	w.SetArchived(w, true)
	assert.True(t, w.IsArchived())

	snap, err := w.Tracker().Original(w)
	require.NoError(t, err)
	assert.False(t, snap.(*widget).IsArchived())
}

func TestCaptureState_SkipsNewRecords(t *testing.T) {
	w := &widget{IntegratedEntity: NewIntegratedEntity(), Name: "fresh"}

	w.SetArchived(w, true)

	// No pre-mutation snapshot exists; Original reflects current state.
	snap, err := w.Tracker().Original(w)
	require.NoError(t, err)
	assert.True(t, snap.(*widget).IsArchived())
}

func TestHasArchivePoint(t *testing.T) {
	a := NewArchiveEntity()
	a.ArchivePoints = []string{"company", "user"}

	assert.True(t, a.HasArchivePoint("company"))
	assert.True(t, a.HasArchivePoint("user"))
	assert.False(t, a.HasArchivePoint("account"))
}

func TestMarkDetached_RejectsNewFlag(t *testing.T) {
	b := NewBaseEntity()
	require.True(t, b.IsNew())

	b.MarkDetached()

	// A detached snapshot always represents an existing record.
	assert.True(t, b.IsDetached())
	assert.False(t, b.IsNew())
}

func TestSetAttribute_CapturesAndStores(t *testing.T) {
	w := newPersistedWidget("with attrs")

	w.SetAttribute(w, "color", "red")
	assert.Equal(t, "red", w.GetAttribute("color"))

	snap, err := w.Tracker().Original(w)
	require.NoError(t, err)
	assert.Nil(t, snap.(*widget).GetAttribute("color"))
}

func TestAfterReload_InvalidatesHistory(t *testing.T) {
	w := newPersistedWidget("before reload")

	w.SetArchived(w, true)
	w.AfterReload()

	// Post-reload, snapshots restart from the instance's present state.
	snap, err := w.Tracker().Original(w)
	require.NoError(t, err)
	assert.True(t, snap.(*widget).IsArchived())
}
