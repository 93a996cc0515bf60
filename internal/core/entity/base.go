// Package entity provides base types for all domain entities.
package entity

import (
	"context"
	"time"

	"stratum/internal/core/history"
	"stratum/internal/core/id"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants (without database access).
type Validatable interface {
	// Validate checks entity invariants.
	// Returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}

///////////////////
// Base Entity   //
///////////////////

// BaseEntity contains common fields for all persisted entities.
// Runtime-only state (history tracker, new/detached flags) carries a "-" db
// tag so it never reaches storage and is never copied into snapshots.
type BaseEntity struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`

	// Version for optimistic locking (incremented on each update)
	Version int `db:"version" json:"version"`

	// Attributes stores custom fields (JSONB in PostgreSQL)
	Attributes Attributes `db:"attributes" json:"attributes,omitempty"`

	// NewRecord is true until the instance is first persisted.
	// Instances scanned from storage keep the zero value (persisted).
	NewRecord bool `db:"-" json:"-"`

	// Detached marks read-only snapshot copies. Persistence operations
	// must reject detached instances.
	Detached bool `db:"-" json:"-"`

	// History holds pre-mutation snapshots of this instance.
	History history.Tracker `db:"-" json:"-"`
}

// NewBaseEntity creates a new BaseEntity with generated ID.
func NewBaseEntity() BaseEntity {
	return BaseEntity{
		ID:        id.New(),
		Version:   1,
		NewRecord: true,
	}
}

// GetID returns the primary key.
func (b *BaseEntity) GetID() id.ID {
	return b.ID
}

// IsNew reports whether the instance has never been persisted.
func (b *BaseEntity) IsNew() bool {
	return b.NewRecord
}

// MarkPersisted clears the new-record flag after a successful insert.
func (b *BaseEntity) MarkPersisted() {
	b.NewRecord = false
}

// IsDetached reports whether the instance is a read-only snapshot.
func (b *BaseEntity) IsDetached() bool {
	return b.Detached
}

// MarkDetached flags the instance as a snapshot copy: an existing record
// that must never be saved or deleted directly.
func (b *BaseEntity) MarkDetached() {
	b.Detached = true
	b.NewRecord = false
}

// Tracker returns the instance's history tracker.
func (b *BaseEntity) Tracker() *history.Tracker {
	return &b.History
}

// CaptureState snapshots self before a field mutation. New instances have no
// persisted state to preserve, so they are skipped. Entity setters call this
// before applying the new value.
func (b *BaseEntity) CaptureState(self any) {
	if b.NewRecord {
		return
	}
	// self is always a db-mapped entity pointer here; Clone cannot fail.
	_, _ = b.History.Capture(self)
}

// AfterReload discards memoized per-instance state after a full reload from
// storage. Types with derived caches extend this.
func (b *BaseEntity) AfterReload() {
	b.History.Invalidate()
}

// Touch increments version (for optimistic locking).
func (b *BaseEntity) Touch() {
	b.Version++
}

// SetVersion updates the version number (used by repository after sync).
func (b *BaseEntity) SetVersion(v int) {
	b.Version = v
}

// SetAttribute is a convenience method for setting custom fields.
func (b *BaseEntity) SetAttribute(self any, key string, value any) {
	b.CaptureState(self)
	if b.Attributes == nil {
		b.Attributes = make(Attributes)
	}
	b.Attributes[key] = value
}

// GetAttribute is a convenience method for getting custom fields.
func (b *BaseEntity) GetAttribute(key string) any {
	if b.Attributes == nil {
		return nil
	}
	return b.Attributes[key]
}

/////////////////
// Date fields //
/////////////////

// DateFields stores creation and modification timestamps for each object.
type DateFields struct {
	Updated time.Time `db:"updated" json:"updated"`
	Created time.Time `db:"created" json:"created"`
}

// NewDateFields creates timestamps set to the current UTC time.
func NewDateFields() DateFields {
	now := time.Now().UTC()
	return DateFields{Updated: now, Created: now}
}

// TouchUpdated refreshes the modification timestamp.
func (d *DateFields) TouchUpdated() {
	d.Updated = time.Now().UTC()
}
