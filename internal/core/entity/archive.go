package entity

import (
	"slices"

	"stratum/internal/core/history"
	"stratum/internal/core/id"
)

// MaxArchivePoints bounds the provenance tag set per row. The storage schema
// enforces the same bound with a check constraint; overflow surfaces as a
// CONSTRAINT_VIOLATION.
const MaxArchivePoints = 10

// Archivable is the contract between the archive lifecycle service and
// entity instances.
type Archivable interface {
	GetID() id.ID

	// EntityName is the registered lower-case type name. It doubles as
	// the provenance tag this type contributes when its rows archive
	// dependents.
	EntityName() string

	IsArchived() bool
	SetArchived(self any, archived bool)
	GetArchivePoints() []string

	IsNew() bool
	MarkPersisted()
	IsDetached() bool
	Tracker() *history.Tracker
	AfterReload()
	Touch()
}

// ArchiveEntity adds the archived/archive_points field pair to BaseEntity.
//
// archive_points records which ancestor types caused this row to be archived.
// A row with tags cannot be unarchived directly: tags shrink only via cascade
// from the ancestor that contributed them, and archived flips back to false
// only when the last tag is removed.
type ArchiveEntity struct {
	BaseEntity

	// Archived is the current archive state.
	Archived bool `db:"archived" json:"archived"`

	// ArchivePoints holds provenance tags, ordered, max MaxArchivePoints.
	ArchivePoints []string `db:"archive_points" json:"archivePoints,omitempty"`
}

// NewArchiveEntity creates an unarchived entity with no provenance tags.
func NewArchiveEntity() ArchiveEntity {
	return ArchiveEntity{BaseEntity: NewBaseEntity()}
}

// IsArchived returns the current archive state.
func (a *ArchiveEntity) IsArchived() bool {
	return a.Archived
}

// SetArchived changes the archive state, preserving pre-mutation state first.
func (a *ArchiveEntity) SetArchived(self any, archived bool) {
	a.CaptureState(self)
	a.Archived = archived
}

// GetArchivePoints returns the provenance tag set.
func (a *ArchiveEntity) GetArchivePoints() []string {
	return a.ArchivePoints
}

// HasArchivePoint reports whether the given ancestor tag is present.
func (a *ArchiveEntity) HasArchivePoint(point string) bool {
	return slices.Contains(a.ArchivePoints, point)
}

///////////////////////
// Integrated entity //
///////////////////////

// IntegratedEntity composes archive state with date fields. Domain entity
// types embed this.
type IntegratedEntity struct {
	ArchiveEntity
	DateFields
}

// NewIntegratedEntity creates a new IntegratedEntity with generated ID and
// timestamps.
func NewIntegratedEntity() IntegratedEntity {
	return IntegratedEntity{
		ArchiveEntity: NewArchiveEntity(),
		DateFields:    NewDateFields(),
	}
}
