// Package archive implements hierarchical archiving over a relational entity
// graph: a statically registered relationship-descriptor table per entity
// type, a cycle-free expansion of cascading relationships into a tree, and an
// executor that walks the tree issuing provenance-aware bulk state updates.
package archive

import (
	"fmt"
	"sort"
	"strings"
)

// Cardinality classifies a relationship as seen from the owning side.
type Cardinality string

const (
	OneToOne  Cardinality = "one_to_one"
	OneToMany Cardinality = "one_to_many"
	ManyToOne Cardinality = "many_to_one"
)

// Cascades reports whether the relationship propagates archive state from
// source to target. Only ownership-shaped relationships do.
func (c Cardinality) Cascades() bool {
	return c == OneToOne || c == OneToMany
}

// RelationDef describes one relationship field of an entity type.
type RelationDef struct {
	// Name of the relationship on the source side, e.g. "accounts".
	Name string `json:"name"`

	// Cardinality from source to target.
	Cardinality Cardinality `json:"cardinality"`

	// Target is the registered name of the related entity type.
	Target string `json:"target"`

	// ReverseField is the foreign-key column on the target table that
	// references the source row. Filters in the reverse direction use it.
	ReverseField string `json:"reverseField"`
}

// EntityDef describes an entity type's archive-relevant schema. Definitions
// are registered at startup; there is no runtime schema discovery.
type EntityDef struct {
	// Name is the lower-case type name. It is also the provenance tag the
	// type contributes to dependents it archives.
	Name string `json:"name"`

	// Table is the relation backing this type.
	Table string `json:"-"`

	// Archivable types carry the archived/archive_points pair; cascades
	// only descend into archivable targets.
	Archivable bool `json:"archivable"`

	// AllowArchive permits archiving rows of this type (default for
	// registered types). When false, archive attempts fail.
	AllowArchive bool `json:"allowArchive"`

	// RequireArchivedToDelete rejects deletes of unarchived rows.
	RequireArchivedToDelete bool `json:"requireArchivedToDelete"`

	// RequireUnarchivedToModify rejects field changes on archived rows.
	RequireUnarchivedToModify bool `json:"requireUnarchivedToModify"`

	// Relations in declaration order; expansion follows this order.
	Relations []RelationDef `json:"relations,omitempty"`
}

// Registry stores entity definitions keyed by name.
type Registry struct {
	entities map[string]EntityDef
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entities: make(map[string]EntityDef),
	}
}

// Register adds a definition. Names are normalized to lower case. Registering
// the same name twice is a configuration error and panics, matching startup
// wiring expectations.
func (r *Registry) Register(def EntityDef) {
	def.Name = strings.ToLower(def.Name)
	if _, exists := r.entities[def.Name]; exists {
		panic(fmt.Sprintf("archive: entity %q registered twice", def.Name))
	}
	r.entities[def.Name] = def
}

// Get returns the definition for name.
func (r *Registry) Get(name string) (EntityDef, bool) {
	d, ok := r.entities[strings.ToLower(name)]
	return d, ok
}

// MustGet returns the definition for name, panicking if absent. Use only at
// wiring time.
func (r *Registry) MustGet(name string) EntityDef {
	d, ok := r.Get(name)
	if !ok {
		panic(fmt.Sprintf("archive: entity %q not registered", name))
	}
	return d
}

// List returns all definitions sorted by name.
func (r *Registry) List() []EntityDef {
	list := make([]EntityDef, 0, len(r.entities))
	for _, def := range r.entities {
		list = append(list, def)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// DefaultDef returns an archivable definition with the standard guard flags
// (archived required before delete, unarchived required before modify).
func DefaultDef(name, table string) EntityDef {
	return EntityDef{
		Name:                      strings.ToLower(name),
		Table:                     table,
		Archivable:                true,
		AllowArchive:              true,
		RequireArchivedToDelete:   true,
		RequireUnarchivedToModify: true,
	}
}
