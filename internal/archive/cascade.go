package archive

import (
	"context"
	"fmt"
	"strings"

	"stratum/internal/core/id"
	"stratum/pkg/logger"
)

// SubtreeUpdater executes one conditional bulk update against all rows of
// node's type whose relation path leads to the root row. Implementations
// must evaluate the archived/archive_points assignments atomically per
// matched row - no read-then-write loops.
type SubtreeUpdater interface {
	UpdateSubtree(ctx context.Context, node *Node, rootID id.ID, point string, archived bool) (int64, error)
}

// Executor walks a cascade tree depth-first, issuing exactly one bulk update
// per node (excluding the root, whose own row the caller persists).
type Executor struct {
	updater SubtreeUpdater
}

// NewExecutor creates an executor over the given persistence collaborator.
func NewExecutor(updater SubtreeUpdater) *Executor {
	return &Executor{updater: updater}
}

// Update cascades an archive state change from the trigger row down the tree.
//
// point is the lower-cased type name of the triggering entity. When
// archiving, every dependent row gains the point tag (append-if-absent) and
// archived=true. When unarchiving, the point tag is removed and archived
// flips to false only on rows where it was the sole remaining tag.
//
// Recursion continues into deeper descendants regardless of how many rows a
// level touched: rows already holding the correct state are legitimate
// no-ops, but their own dependents may still need the update.
func (e *Executor) Update(ctx context.Context, root *Node, triggerID id.ID, archived bool) error {
	point := strings.ToLower(root.Def.Name)
	return e.updateChildren(ctx, root, triggerID, point, archived)
}

func (e *Executor) updateChildren(ctx context.Context, parent *Node, rootID id.ID, point string, archived bool) error {
	for _, node := range parent.Children {
		affected, err := e.updater.UpdateSubtree(ctx, node, rootID, point, archived)
		if err != nil {
			return fmt.Errorf("cascade %s: %w", node.Def.Name, err)
		}

		logger.Debug(ctx, "cascade update",
			"entity", node.Def.Name,
			"point", point,
			"archived", archived,
			"rows", affected,
		)

		if err := e.updateChildren(ctx, node, rootID, point, archived); err != nil {
			return err
		}
	}
	return nil
}
