package analyze

import (
	"go/types"
	"reflect"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "example.com/metrics"
	Name    string // e.g., "Method"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Record is an exported struct type found in a loaded package.
type Record struct {
	ID     TypeID
	Fields []FieldInfo
}

// FieldInfo describes a struct field, with embedded fields flattened.
type FieldInfo struct {
	Name string            // Go field name
	Type types.Type        // Field type
	Tag  reflect.StructTag // Raw struct tag
}

// MetricName returns the metric tag if present, otherwise the field name.
// A tag of "-" hides the field.
func (f FieldInfo) MetricName() string {
	if tag, ok := f.Tag.Lookup("metric"); ok {
		return tag
	}

	return f.Name
}
