package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// diamondRegistry models company -> user -> account -> transaction with an
// additional direct company -> account relation, so account is reachable
// from company through two distinct paths.
func diamondRegistry() *Registry {
	reg := NewRegistry()

	companyDef := DefaultDef("company", "companies")
	companyDef.Relations = []RelationDef{
		{Name: "users", Cardinality: OneToMany, Target: "user", ReverseField: "company_id"},
		{Name: "accounts", Cardinality: OneToMany, Target: "account", ReverseField: "company_id"},
	}
	reg.Register(companyDef)

	userDef := DefaultDef("user", "app_users")
	userDef.Relations = []RelationDef{
		{Name: "company", Cardinality: ManyToOne, Target: "company", ReverseField: ""},
		{Name: "accounts", Cardinality: OneToMany, Target: "account", ReverseField: "user_id"},
	}
	reg.Register(userDef)

	accountDef := DefaultDef("account", "accounts")
	accountDef.Relations = []RelationDef{
		{Name: "user", Cardinality: ManyToOne, Target: "user", ReverseField: ""},
		{Name: "company", Cardinality: ManyToOne, Target: "company", ReverseField: ""},
		{Name: "transactions", Cardinality: OneToMany, Target: "transaction", ReverseField: "account_id"},
	}
	reg.Register(accountDef)

	txDef := DefaultDef("transaction", "transactions")
	txDef.Relations = []RelationDef{
		{Name: "account", Cardinality: ManyToOne, Target: "account", ReverseField: ""},
	}
	reg.Register(txDef)

	return reg
}

func TestExpand_UnknownRoot(t *testing.T) {
	reg := NewRegistry()

	_, err := Expand(reg, "ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not registered")
}

func TestExpand_DiamondTerminates(t *testing.T) {
	reg := diamondRegistry()

	root, err := Expand(reg, "company")
	require.NoError(t, err)

	// company has two children: user (first declared) and account.
	require.Len(t, root.Children, 2)
	userNode := root.Children[0]
	accountDirect := root.Children[1]
	assert.Equal(t, "user", userNode.Def.Name)
	assert.Equal(t, "company_id", userNode.RelationField)
	assert.Equal(t, "account", accountDirect.Def.Name)
	assert.Equal(t, "company_id", accountDirect.RelationField)

	// user -> account is a distinct edge, so account appears again under
	// user; its transaction edge was consumed on whichever branch was
	// expanded first.
	require.Len(t, userNode.Children, 1)
	accountViaUser := userNode.Children[0]
	assert.Equal(t, "account", accountViaUser.Def.Name)
	assert.Equal(t, "user_id", accountViaUser.RelationField)

	// The account -> transaction edge is explored exactly once across the
	// whole expansion.
	totalTx := len(accountViaUser.Children) + len(accountDirect.Children)
	assert.Equal(t, 1, totalTx)
}

func TestExpand_VisitedSharedAcrossBranches(t *testing.T) {
	reg := diamondRegistry()

	root, err := Expand(reg, "company")
	require.NoError(t, err)

	// Each cascading edge contributes exactly one node:
	// company->user, company->account, user->account, account->transaction.
	assert.Equal(t, 4, root.Count())
}

func TestExpand_SkipsNonArchivableTargets(t *testing.T) {
	reg := NewRegistry()

	rootDef := DefaultDef("company", "companies")
	rootDef.Relations = []RelationDef{
		{Name: "logs", Cardinality: OneToMany, Target: "log", ReverseField: "company_id"},
	}
	reg.Register(rootDef)

	logDef := DefaultDef("log", "logs")
	logDef.Archivable = false
	reg.Register(logDef)

	root, err := Expand(reg, "company")
	require.NoError(t, err)
	assert.Empty(t, root.Children)
}

func TestExpand_ManyToOneDoesNotCascade(t *testing.T) {
	reg := diamondRegistry()

	root, err := Expand(reg, "transaction")
	require.NoError(t, err)

	// transaction only points upward; nothing cascades from it.
	assert.Empty(t, root.Children)
	assert.Equal(t, 0, root.Count())
}

func TestPathFromRoot(t *testing.T) {
	reg := diamondRegistry()

	root, err := Expand(reg, "company")
	require.NoError(t, err)

	accountViaUser := root.Children[0].Children[0]
	steps := accountViaUser.PathFromRoot()

	require.Len(t, steps, 2)
	// Nearest table first, root excluded.
	assert.Equal(t, PathStep{Table: "accounts", ForeignKey: "user_id"}, steps[0])
	assert.Equal(t, PathStep{Table: "app_users", ForeignKey: "company_id"}, steps[1])
}

func TestPathFromRoot_RootIsEmpty(t *testing.T) {
	reg := diamondRegistry()

	root, err := Expand(reg, "company")
	require.NoError(t, err)
	assert.Empty(t, root.PathFromRoot())
}
