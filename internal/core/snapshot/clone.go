// Package snapshot produces detached, lazy-load-preserving clones of entity
// instances. A clone copies every db-mapped field by value; loaded relation
// objects (fields without a db tag) are left behind so the clone can only
// re-resolve relations through their raw foreign-key identifiers.
package snapshot

import (
	"reflect"

	"stratum/internal/core/apperror"
)

// Detachable is implemented by entity bases that can be flagged as detached
// snapshots. A detached instance is an existing (non-new) record and must be
// rejected by every persistence operation.
type Detachable interface {
	MarkDetached()
}

// Clone creates a detached copy of an entity instance.
//
// The input must be a pointer to a struct carrying db-tagged fields, with an
// "id" column reachable through exported fields; anything else fails with
// TYPE_MISMATCH. Only db-mapped fields are copied, so foreign keys travel as
// raw identifier values and related rows are never loaded or duplicated.
func Clone(instance any) (any, error) {
	if instance == nil {
		return nil, apperror.NewTypeMismatch("entity pointer", "nil")
	}

	rv := reflect.ValueOf(instance)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, apperror.NewTypeMismatch("entity pointer", rv.Type().String())
	}

	src := rv.Elem()
	if !hasColumn(src.Type(), "id") {
		return nil, apperror.NewTypeMismatch("entity with id column", src.Type().String())
	}

	dst := reflect.New(src.Type())
	copyColumns(src, dst.Elem())

	clone := dst.Interface()
	if d, ok := clone.(Detachable); ok {
		d.MarkDetached()
	}
	return clone, nil
}

// copyColumns copies db-tagged fields from src to dst, descending into
// embedded structs. Fields without a db tag (loaded relations, trackers,
// runtime flags) are skipped.
func copyColumns(src, dst reflect.Value) {
	t := src.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" { // unexported
			continue
		}
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			copyColumns(src.Field(i), dst.Field(i))
			continue
		}

		tag := field.Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}

		dst.Field(i).Set(detachValue(src.Field(i)))
	}
}

// detachValue copies slice and map values element-wise so the snapshot does
// not alias the live instance's bounded collections (archive_points,
// attributes). Everything else is copied by assignment.
func detachValue(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		reflect.Copy(out, v)
		return out
	case reflect.Map:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeMap(v.Type())
		iter := v.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), iter.Value())
		}
		return out
	default:
		return v
	}
}

// hasColumn reports whether the struct type maps the given db column,
// including through embedded structs. Unexported fields are ignored using
// the same rule as copyColumns: reflect cannot set through them, so a
// column reachable only that way is a column Clone cannot copy.
func hasColumn(t reflect.Type, column string) bool {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" { // unexported
			continue
		}
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			if hasColumn(field.Type, column) {
				return true
			}
			continue
		}
		if field.Tag.Get("db") == column {
			return true
		}
	}
	return false
}
