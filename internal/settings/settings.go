// Package settings loads which building attributes the editor displays for
// each category and the declared type of every attribute.
//
// The settings file is YAML:
//
//	buildables:
//	  cellar: [width, height, length, character, external_character, torches]
//	  floor:  [width, height, length, character, external_character, torches]
//	  garden: [tree-ratio, mushroom-ratio, flower-ratio]
//	  ground: []
//	types:
//	  height: int(0..5)
//
// The types section overrides or extends the built-in attribute types.
package settings

import (
	"maps"
	"slices"

	"metric-mapper/internal/compat"
	"metric-mapper/internal/model"
)

// Settings lists the displayed attributes per category in display order.
// It is read-only after construction.
type Settings struct {
	displayed map[model.Category][]string
	types     map[string]compat.AttributeType
}

// BuiltinTypes returns the declared type of every attribute the renderer
// knows about.
func BuiltinTypes() map[string]compat.AttributeType {
	return map[string]compat.AttributeType{
		"width":              compat.AttrInt,
		"height":             compat.AttrInt,
		"length":             compat.AttrInt,
		"character":          compat.AttrString,
		"external_character": compat.AttrString,
		"torches":            compat.AttrBoundedInt,
		"tree-ratio":         compat.AttrUnitFloat,
		"mushroom-ratio":     compat.AttrUnitFloat,
		"flower-ratio":       compat.AttrUnitFloat,
	}
}

// Default returns the attribute set used when no usable settings file
// exists.
func Default() *Settings {
	building := []string{"width", "height", "length", "character", "external_character", "torches"}

	return &Settings{
		displayed: map[model.Category][]string{
			model.Cellar: slices.Clone(building),
			model.Floor:  slices.Clone(building),
			model.Garden: {"tree-ratio", "mushroom-ratio", "flower-ratio"},
			model.Ground: {},
		},
		types: BuiltinTypes(),
	}
}

// Slots returns the displayed attributes of c with their declared types.
func (s *Settings) Slots(c model.Category) []model.AttributeSlot {
	names := s.displayed[c]
	slots := make([]model.AttributeSlot, 0, len(names))

	for _, name := range names {
		slots = append(slots, model.AttributeSlot{Name: name, Type: s.types[name]})
	}

	return slots
}

// AttributeType returns the declared type of the named attribute.
func (s *Settings) AttributeType(name string) (compat.AttributeType, bool) {
	t, ok := s.types[name]
	return t, ok
}

// Displays reports whether c displays the named attribute.
func (s *Settings) Displays(c model.Category, attribute string) bool {
	return slices.Contains(s.displayed[c], attribute)
}

// Types returns a copy of the attribute type table.
func (s *Settings) Types() map[string]compat.AttributeType {
	return maps.Clone(s.types)
}

// Reader is the settings collaborator of an editing session.
type Reader interface {
	ReadSettings() (*Settings, error)
}

// File reads settings from a YAML file path.
type File string

// ReadSettings implements Reader.
func (f File) ReadSettings() (*Settings, error) {
	return Load(string(f))
}

// Fixed is a Reader that always returns the wrapped settings.
type Fixed struct{ S *Settings }

// ReadSettings implements Reader.
func (f Fixed) ReadSettings() (*Settings, error) {
	return f.S, nil
}
