package archive

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stratum/internal/core/id"
)

type subtreeCall struct {
	entity   string
	rootID   id.ID
	point    string
	archived bool
}

type mockUpdater struct {
	calls    []subtreeCall
	failOn   string
	affected int64
}

func (m *mockUpdater) UpdateSubtree(_ context.Context, node *Node, rootID id.ID, point string, archived bool) (int64, error) {
	m.calls = append(m.calls, subtreeCall{
		entity:   node.Def.Name,
		rootID:   rootID,
		point:    point,
		archived: archived,
	})
	if m.failOn == node.Def.Name {
		return 0, errors.New("boom")
	}
	return m.affected, nil
}

func TestExecutor_Update_DepthFirstOrder(t *testing.T) {
	reg := diamondRegistry()
	root, err := Expand(reg, "company")
	require.NoError(t, err)

	updater := &mockUpdater{affected: 3}
	rootID := id.New()

	err = NewExecutor(updater).Update(context.Background(), root, rootID, true)
	require.NoError(t, err)

	// Depth-first in declaration order: the user branch with its nested
	// account and transaction levels, then the direct account edge.
	entities := make([]string, 0, len(updater.calls))
	for _, call := range updater.calls {
		entities = append(entities, call.entity)
	}
	assert.Equal(t, []string{"user", "account", "transaction", "account"}, entities)

	for _, call := range updater.calls {
		assert.Equal(t, rootID, call.rootID)
		assert.Equal(t, "company", call.point)
		assert.True(t, call.archived)
	}
}

func TestExecutor_Update_PointIsLowercasedTypeName(t *testing.T) {
	reg := NewRegistry()

	rootDef := DefaultDef("Company", "companies")
	rootDef.Relations = []RelationDef{
		{Name: "users", Cardinality: OneToMany, Target: "user", ReverseField: "company_id"},
	}
	reg.Register(rootDef)
	reg.Register(DefaultDef("user", "app_users"))

	root, err := Expand(reg, "Company")
	require.NoError(t, err)

	updater := &mockUpdater{}
	err = NewExecutor(updater).Update(context.Background(), root, id.New(), true)
	require.NoError(t, err)

	require.Len(t, updater.calls, 1)
	assert.Equal(t, "company", updater.calls[0].point)
}

func TestExecutor_Update_RecursesPastEmptyLevels(t *testing.T) {
	reg := diamondRegistry()
	root, err := Expand(reg, "company")
	require.NoError(t, err)

	// Zero affected rows at every level must not stop descent.
	updater := &mockUpdater{affected: 0}
	err = NewExecutor(updater).Update(context.Background(), root, id.New(), false)
	require.NoError(t, err)

	assert.Len(t, updater.calls, 4)
	for _, call := range updater.calls {
		assert.False(t, call.archived)
	}
}

func TestExecutor_Update_StopsOnError(t *testing.T) {
	reg := diamondRegistry()
	root, err := Expand(reg, "company")
	require.NoError(t, err)

	updater := &mockUpdater{failOn: "account"}
	err = NewExecutor(updater).Update(context.Background(), root, id.New(), true)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cascade account")
	// user, then the failing account; the transaction level is never reached.
	assert.Len(t, updater.calls, 2)
}
