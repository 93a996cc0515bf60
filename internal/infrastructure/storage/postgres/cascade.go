package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"stratum/internal/archive"
	"stratum/internal/core/id"
)

// Compile-time check that CascadeStore implements archive.SubtreeUpdater.
var _ archive.SubtreeUpdater = (*CascadeStore)(nil)

// CascadeStore executes the per-node bulk updates of an archive cascade.
//
// Each call issues a single UPDATE whose assignments are conditional
// expressions evaluated atomically per matched row, so concurrent cascades
// over disjoint point tags never race through read-modify-write windows.
type CascadeStore struct {
	txm *TxManager
}

// NewCascadeStore creates a cascade store over the given transaction manager.
func NewCascadeStore(txm *TxManager) *CascadeStore {
	return &CascadeStore{txm: txm}
}

// UpdateSubtree updates all rows of node's type whose relation path leads to
// the root row and returns the number of affected rows.
//
// Archiving sets archived=true and appends point to archive_points unless
// already present. Unarchiving removes point and flips archived to false only
// where point was the sole remaining tag, in the same statement:
//
//	archived = CASE WHEN archive_points @> ARRAY[point]
//	                 AND cardinality(archive_points) = 1
//	           THEN false ELSE archived END
//
// Both assignments read the pre-update row state per SQL semantics.
func (s *CascadeStore) UpdateSubtree(ctx context.Context, node *archive.Node, rootID id.ID, point string, archived bool) (int64, error) {
	sql, args, err := buildSubtreeUpdate(node, rootID, point, archived)
	if err != nil {
		return 0, fmt.Errorf("build cascade update for %s: %w", node.Def.Table, err)
	}

	result, err := s.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, TranslateError(err, node.Def.Name, rootID)
	}
	return result.RowsAffected(), nil
}

// buildSubtreeUpdate renders the conditional bulk update for one node.
func buildSubtreeUpdate(node *archive.Node, rootID id.ID, point string, archived bool) (string, []any, error) {
	q := squirrel.StatementBuilder.
		PlaceholderFormat(squirrel.Dollar).
		Update(node.Def.Table)

	if archived {
		q = q.
			Set("archived", true).
			Set("archive_points", squirrel.Expr(
				"CASE WHEN ? = ANY(archive_points) THEN archive_points ELSE array_append(archive_points, ?) END",
				point, point,
			))
	} else {
		q = q.
			Set("archived", squirrel.Expr(
				"CASE WHEN archive_points @> ARRAY[?]::varchar[] AND cardinality(archive_points) = 1 THEN false ELSE archived END",
				point,
			)).
			Set("archive_points", squirrel.Expr("array_remove(archive_points, ?)", point))
	}

	q = q.Where(squirrel.Expr(relationPathFilter(node), rootID))

	return q.ToSql()
}

// relationPathFilter builds the WHERE clause selecting rows of node's table
// transitively related to the root row, as a chain of id-subqueries along the
// relation path. A single ? placeholder receives the root id.
//
// Table and column names come from the statically registered descriptor
// table, never from request input.
func relationPathFilter(node *archive.Node) string {
	steps := node.PathFromRoot()

	cond := fmt.Sprintf("%s = ?", steps[len(steps)-1].ForeignKey)
	for i := len(steps) - 2; i >= 0; i-- {
		cond = fmt.Sprintf("%s IN (SELECT id FROM %s WHERE %s)",
			steps[i].ForeignKey, steps[i+1].Table, cond)
	}
	return cond
}

// RelationPathDescription renders the path for logging, e.g.
// "transaction.account_id -> account.user_id -> app_user.company_id".
func RelationPathDescription(node *archive.Node) string {
	steps := node.PathFromRoot()
	parts := make([]string, 0, len(steps))
	for _, step := range steps {
		parts = append(parts, step.Table+"."+step.ForeignKey)
	}
	return strings.Join(parts, " -> ")
}
