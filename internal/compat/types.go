package compat

import "strings"

// AttributeType is the declared value kind of a building attribute.
type AttributeType string

const (
	// AttrInt is an unbounded integer attribute (width, height, ...).
	AttrInt AttributeType = "int"
	// AttrBoundedInt is an integer quantized into 0..5 (torches).
	AttrBoundedInt AttributeType = "int(0..5)"
	// AttrString is a textual attribute (character, external_character).
	AttrString AttributeType = "string"
	// AttrUnitFloat is a float normalized into 0..1 (tree-ratio, ...).
	AttrUnitFloat AttributeType = "float(0..1)"
)

// legacyAttributeNames maps spellings found in older settings files.
var legacyAttributeNames = map[string]AttributeType{
	"int(0 to 5)":   AttrBoundedInt,
	"float(0 to 1)": AttrUnitFloat,
}

// ParseAttributeType canonicalizes an attribute type name.
// Surrounding whitespace and case are ignored and the legacy "(0 to 5)"
// range spelling is accepted. Unrecognized names are returned as-is so a
// custom Resolver can still give them a row.
func ParseAttributeType(s string) AttributeType {
	name := strings.ToLower(strings.TrimSpace(s))
	if a, ok := legacyAttributeNames[name]; ok {
		return a
	}

	return AttributeType(strings.ReplaceAll(name, " ", ""))
}

// String returns the canonical name.
func (a AttributeType) String() string {
	return string(a)
}

// IsBuiltin reports whether a is one of the four standard kinds.
func (a AttributeType) IsBuiltin() bool {
	switch a {
	case AttrInt, AttrBoundedInt, AttrString, AttrUnitFloat:
		return true
	default:
		return false
	}
}

// PropertyType is the declared value kind of a source-code metric.
type PropertyType string

const (
	PropInt    PropertyType = "int"
	PropFloat  PropertyType = "float"
	PropString PropertyType = "string"
)

// ParsePropertyType canonicalizes a property type name.
// "double" is folded into float since analysis files use both.
func ParsePropertyType(s string) PropertyType {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "double" {
		return PropFloat
	}

	return PropertyType(name)
}

// String returns the canonical name.
func (p PropertyType) String() string {
	return string(p)
}

// IsBuiltin reports whether p is one of the three standard kinds.
func (p PropertyType) IsBuiltin() bool {
	switch p {
	case PropInt, PropFloat, PropString:
		return true
	default:
		return false
	}
}
