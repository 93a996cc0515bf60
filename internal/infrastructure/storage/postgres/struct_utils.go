package postgres

import (
	"reflect"
	"sync"
)

// ExtractDBColumns lists the column names declared by a type's "db" tags,
// descending into embedded structs. Runs once per repository at
// construction time.
func ExtractDBColumns[T any]() []string {
	var zero T
	return columnsOf(reflect.TypeOf(zero))
}

func columnsOf(t reflect.Type) []string {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var cols []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous {
			cols = append(cols, columnsOf(f.Type)...)
			continue
		}
		if tag := f.Tag.Get("db"); tag != "" && tag != "-" {
			cols = append(cols, tag)
		}
	}
	return cols
}

type columnField struct {
	index  int
	column string
}

type structMeta struct {
	fields   []columnField
	embedded []int
}

var metaCache sync.Map // reflect.Type -> *structMeta

func metaOf(t reflect.Type) *structMeta {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if cached, ok := metaCache.Load(t); ok {
		return cached.(*structMeta)
	}

	meta := &structMeta{}
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.Anonymous {
				meta.embedded = append(meta.embedded, i)
				continue
			}
			if tag := f.Tag.Get("db"); tag != "" && tag != "-" {
				meta.fields = append(meta.fields, columnField{index: i, column: tag})
			}
		}
	}

	metaCache.Store(t, meta)
	return meta
}

// StructToMap converts a struct to column->value pairs using "db" tags.
// Fields without a tag (history tracker, new/detached flags) never reach
// SQL statements. Reflection metadata is cached per type.
func StructToMap(v any) map[string]any {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	meta := metaOf(rv.Type())
	out := make(map[string]any, len(meta.fields))
	for _, cf := range meta.fields {
		out[cf.column] = rv.Field(cf.index).Interface()
	}
	for _, i := range meta.embedded {
		for k, val := range StructToMap(rv.Field(i).Interface()) {
			out[k] = val
		}
	}
	return out
}
