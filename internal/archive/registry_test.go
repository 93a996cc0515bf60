package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	reg := NewRegistry()
	reg.Register(DefaultDef("company", "companies"))

	def, ok := reg.Get("company")
	require.True(t, ok)
	assert.Equal(t, "companies", def.Table)

	_, ok = reg.Get("missing")
	assert.False(t, ok)
}

func TestRegistry_RegisterDuplicatePanics(t *testing.T) {
	reg := NewRegistry()
	reg.Register(DefaultDef("company", "companies"))

	assert.Panics(t, func() {
		reg.Register(DefaultDef("company", "other"))
	})
}

func TestRegistry_MustGetPanicsOnMissing(t *testing.T) {
	reg := NewRegistry()

	assert.Panics(t, func() {
		reg.MustGet("missing")
	})
}

func TestRegistry_ListSorted(t *testing.T) {
	reg := NewRegistry()
	reg.Register(DefaultDef("user", "app_users"))
	reg.Register(DefaultDef("account", "accounts"))
	reg.Register(DefaultDef("company", "companies"))

	defs := reg.List()
	require.Len(t, defs, 3)
	assert.Equal(t, "account", defs[0].Name)
	assert.Equal(t, "company", defs[1].Name)
	assert.Equal(t, "user", defs[2].Name)
}

func TestDefaultDef_Flags(t *testing.T) {
	def := DefaultDef("company", "companies")

	assert.True(t, def.Archivable)
	assert.True(t, def.AllowArchive)
	assert.True(t, def.RequireArchivedToDelete)
	assert.True(t, def.RequireUnarchivedToModify)
}

func TestCardinality_Cascades(t *testing.T) {
	assert.True(t, OneToOne.Cascades())
	assert.True(t, OneToMany.Cascades())
	assert.False(t, ManyToOne.Cascades())
}
