package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stratum/internal/archive"
	"stratum/internal/core/id"
)

// cascadeTestTree builds company -> user -> account by hand, so path and SQL
// assertions do not depend on registry expansion order.
func cascadeTestTree() (root, userNode, accountNode *archive.Node) {
	root = &archive.Node{Def: archive.DefaultDef("company", "companies")}
	userNode = &archive.Node{
		Def:           archive.DefaultDef("user", "app_users"),
		Parent:        root,
		RelationField: "company_id",
	}
	accountNode = &archive.Node{
		Def:           archive.DefaultDef("account", "accounts"),
		Parent:        userNode,
		RelationField: "user_id",
	}
	root.Children = []*archive.Node{userNode}
	userNode.Children = []*archive.Node{accountNode}
	return root, userNode, accountNode
}

func TestRelationPathFilter_DirectChild(t *testing.T) {
	_, userNode, _ := cascadeTestTree()

	assert.Equal(t, "company_id = ?", relationPathFilter(userNode))
}

func TestRelationPathFilter_NestedChild(t *testing.T) {
	_, _, accountNode := cascadeTestTree()

	want := "user_id IN (SELECT id FROM app_users WHERE company_id = ?)"
	assert.Equal(t, want, relationPathFilter(accountNode))
}

func TestBuildSubtreeUpdate_Archive(t *testing.T) {
	_, userNode, _ := cascadeTestTree()
	rootID := id.New()

	sql, args, err := buildSubtreeUpdate(userNode, rootID, "company", true)
	require.NoError(t, err)

	want := "UPDATE app_users SET archived = $1, archive_points = " +
		"CASE WHEN $2 = ANY(archive_points) THEN archive_points ELSE array_append(archive_points, $3) END " +
		"WHERE company_id = $4"
	assert.Equal(t, want, sql)
	assert.Equal(t, []any{true, "company", "company", rootID}, args)
}

func TestBuildSubtreeUpdate_Unarchive(t *testing.T) {
	_, userNode, _ := cascadeTestTree()
	rootID := id.New()

	sql, args, err := buildSubtreeUpdate(userNode, rootID, "company", false)
	require.NoError(t, err)

	want := "UPDATE app_users SET archived = " +
		"CASE WHEN archive_points @> ARRAY[$1]::varchar[] AND cardinality(archive_points) = 1 THEN false ELSE archived END, " +
		"archive_points = array_remove(archive_points, $2) " +
		"WHERE company_id = $3"
	assert.Equal(t, want, sql)
	assert.Equal(t, []any{"company", "company", rootID}, args)
}

func TestBuildSubtreeUpdate_NestedPath(t *testing.T) {
	_, _, accountNode := cascadeTestTree()
	rootID := id.New()

	sql, args, err := buildSubtreeUpdate(accountNode, rootID, "company", true)
	require.NoError(t, err)

	assert.Contains(t, sql, "UPDATE accounts SET")
	assert.Contains(t, sql, "WHERE user_id IN (SELECT id FROM app_users WHERE company_id = $4)")
	assert.Equal(t, rootID, args[len(args)-1])
}

func TestRelationPathDescription(t *testing.T) {
	_, userNode, accountNode := cascadeTestTree()

	assert.Equal(t, "app_users.company_id", RelationPathDescription(userNode))
	assert.Equal(t, "accounts.user_id -> app_users.company_id", RelationPathDescription(accountNode))
}
