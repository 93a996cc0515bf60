package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stratum/internal/archive"
)

func TestNewRegistry_AllTypesRegistered(t *testing.T) {
	reg := NewRegistry()

	for _, name := range []string{"company", "user", "account", "transaction"} {
		_, ok := reg.Get(name)
		assert.True(t, ok, "entity %q not registered", name)
	}
}

func TestNewRegistry_RelationTargetsResolve(t *testing.T) {
	reg := NewRegistry()

	for _, def := range reg.List() {
		for _, rel := range def.Relations {
			_, ok := reg.Get(rel.Target)
			assert.True(t, ok, "%s.%s targets unregistered type %q", def.Name, rel.Name, rel.Target)
		}
	}
}

func TestNewRegistry_CompanyCascadeCoversAllDescendants(t *testing.T) {
	reg := NewRegistry()

	root, err := archive.Expand(reg, "company")
	require.NoError(t, err)

	// company reaches account through two edges (direct and via user), and
	// transaction through one. Four edges, four nodes.
	assert.Equal(t, 4, root.Count())

	seen := map[string]int{}
	var walk func(n *archive.Node)
	walk = func(n *archive.Node) {
		for _, c := range n.Children {
			seen[c.Def.Name]++
			walk(c)
		}
	}
	walk(root)

	assert.Equal(t, 1, seen["user"])
	assert.Equal(t, 2, seen["account"])
	assert.Equal(t, 1, seen["transaction"])
}

func TestNewRegistry_TransactionCascadeIsEmpty(t *testing.T) {
	reg := NewRegistry()

	root, err := archive.Expand(reg, "transaction")
	require.NoError(t, err)
	assert.Equal(t, 0, root.Count())
}
