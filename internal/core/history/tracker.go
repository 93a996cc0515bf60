// Package history keeps versioned pre-mutation snapshots of entity instances.
// A Tracker lets an entity's lifecycle logic compare its current state against
// the last persisted state across saves.
package history

import (
	"stratum/internal/core/snapshot"
)

// Tracker is a per-instance versioned snapshot cache.
//
// Version 0 is the state the instance was first observed in; the version
// counter advances by one after each successful persist. Within a version the
// first Capture wins: later captures return the stored snapshot unchanged.
//
// A Tracker belongs to exactly one instance and is not safe for concurrent
// use; saves are single-operation scoped.
type Tracker struct {
	version   int
	snapshots map[int]any
}

// Version returns the current version counter.
func (t *Tracker) Version() int {
	return t.version
}

// Capture stores a snapshot of instance under the current version, unless one
// was already captured for this version, and returns the stored snapshot.
// Call it before overwriting any field of a persisted instance.
func (t *Tracker) Capture(instance any) (any, error) {
	return t.captureAt(t.version, instance)
}

// Earliest returns the snapshot at version 0, capturing the instance's
// current state on first access if none exists yet.
func (t *Tracker) Earliest(instance any) (any, error) {
	return t.captureAt(0, instance)
}

// Latest returns the snapshot at the highest captured version, capturing one
// at the current version if nothing has been captured yet.
func (t *Tracker) Latest(instance any) (any, error) {
	if t.snapshots != nil {
		high, found := -1, false
		for v := range t.snapshots {
			if !found || v > high {
				high, found = v, true
			}
		}
		if found {
			return t.snapshots[high], nil
		}
	}
	return t.captureAt(t.version, instance)
}

// Original is the snapshot representing the last persisted state. It is an
// alias for Latest, matching how entity save logic refers to it.
func (t *Tracker) Original(instance any) (any, error) {
	return t.Latest(instance)
}

// BumpVersion advances the version counter. Call after a successful persist
// so the next mutation snapshots fresh state instead of reusing a stale copy.
func (t *Tracker) BumpVersion() {
	t.version++
}

// Invalidate discards every captured snapshot. Call after a full reload from
// the backing store: field values changed under the in-memory history, so
// memoized state is no longer trustworthy.
func (t *Tracker) Invalidate() {
	t.snapshots = nil
}

func (t *Tracker) captureAt(version int, instance any) (any, error) {
	if s, ok := t.snapshots[version]; ok {
		return s, nil
	}
	s, err := snapshot.Clone(instance)
	if err != nil {
		return nil, err
	}
	if t.snapshots == nil {
		t.snapshots = make(map[int]any)
	}
	t.snapshots[version] = s
	return s, nil
}
