package archive

import (
	"fmt"
)

// Node is one entity type reachable from a root type through cascading
// relationships. Parent is a back-reference only; a node owns its children.
type Node struct {
	// Def is the entity type at this position.
	Def EntityDef

	// Parent is the owning node, nil at the root.
	Parent *Node

	// RelationField is the foreign-key column on this node's table that
	// references the parent row. Empty at the root.
	RelationField string

	// Children in relation declaration order.
	Children []*Node
}

// edge identifies a (source type, target type) relationship pair.
type edge struct {
	source, target string
}

// Expand builds the cascade tree for rootType.
//
// For every relation that cascades (one-to-many/one-to-one), whose target is
// archivable, and whose (source, target) pair has not been visited yet, a
// child node is created and expanded recursively. The visited set is shared
// across the whole expansion - not reset per branch - so a diamond-shaped
// schema explores each relationship edge exactly once while still reaching
// the same type from distinct parents.
//
// The tree is built fresh per cascade invocation and discarded afterwards.
func Expand(reg *Registry, rootType string) (*Node, error) {
	def, ok := reg.Get(rootType)
	if !ok {
		return nil, fmt.Errorf("archive: entity %q not registered", rootType)
	}

	root := &Node{Def: def}
	visited := map[edge]bool{}
	expandNode(reg, root, visited)
	return root, nil
}

func expandNode(reg *Registry, node *Node, visited map[edge]bool) {
	for _, rel := range node.Def.Relations {
		if !rel.Cardinality.Cascades() {
			continue
		}
		target, ok := reg.Get(rel.Target)
		if !ok || !target.Archivable {
			continue
		}
		e := edge{source: node.Def.Name, target: target.Name}
		if visited[e] {
			continue
		}
		visited[e] = true

		child := &Node{
			Def:           target,
			Parent:        node,
			RelationField: rel.ReverseField,
		}
		expandNode(reg, child, visited)
		node.Children = append(node.Children, child)
	}
}

// PathStep is one hop of a relation path: a table and the foreign-key column
// on it that references the previous (parent) table's id.
type PathStep struct {
	Table      string
	ForeignKey string
}

// PathFromRoot ascends parent references and returns the hops from this node
// up to (excluding) the root, nearest table first. The chain selects all rows
// of the node's type transitively related to a given root row by id.
func (n *Node) PathFromRoot() []PathStep {
	var steps []PathStep
	for cur := n; cur.Parent != nil; cur = cur.Parent {
		steps = append(steps, PathStep{
			Table:      cur.Def.Table,
			ForeignKey: cur.RelationField,
		})
	}
	return steps
}

// Count returns the number of nodes in the tree rooted at n, excluding n.
// It equals the database round-trips one cascade over this tree issues.
func (n *Node) Count() int {
	total := 0
	for _, child := range n.Children {
		total += 1 + child.Count()
	}
	return total
}
