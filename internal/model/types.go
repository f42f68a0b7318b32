// Package model holds the vocabulary shared by the editor packages:
// buildable categories, source element types, attribute slots and metrics.
package model

import (
	"fmt"
	"strings"

	"metric-mapper/internal/compat"
)

// Category is a kind of building in the generated city.
type Category string

const (
	Cellar Category = "cellar"
	Floor  Category = "floor"
	Garden Category = "garden"
	Ground Category = "ground"
)

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{Cellar, Floor, Garden, Ground}
}

// ParseCategory accepts a category name in any case ("CELLAR", "cellar").
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("unknown buildable category %q", s)
	}

	return c, nil
}

// IsValid reports whether c is a known category.
func (c Category) IsValid() bool {
	switch c {
	case Cellar, Floor, Garden, Ground:
		return true
	default:
		return false
	}
}

func (c Category) String() string { return string(c) }

// Index returns the display position of c, or -1.
func (c Category) Index() int {
	for i, known := range Categories() {
		if known == c {
			return i
		}
	}

	return -1
}

// DefaultSource returns the element type a category conventionally takes
// its metrics from.
func (c Category) DefaultSource() SourceType {
	switch c {
	case Cellar:
		return SourceAttribute
	case Floor:
		return SourceMethod
	case Garden:
		return SourceClass
	case Ground:
		return SourcePackage
	default:
		return ""
	}
}

// SourceType is the kind of code element a metric was measured on.
type SourceType string

const (
	SourceMethod    SourceType = "method"
	SourceAttribute SourceType = "attribute"
	SourceClass     SourceType = "class"
	SourcePackage   SourceType = "package"
	// SourceResource marks a slot bound to a resource tag instead of a metric.
	SourceResource SourceType = "resource"
)

func (s SourceType) String() string { return string(s) }

// SourceTypes returns the element types metrics can come from.
func SourceTypes() []SourceType {
	return []SourceType{SourceMethod, SourceAttribute, SourceClass, SourcePackage}
}

// ParseSourceType accepts an element type name in any case.
func ParseSourceType(s string) (SourceType, error) {
	st := SourceType(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case SourceMethod, SourceAttribute, SourceClass, SourcePackage, SourceResource:
		return st, nil
	default:
		return "", fmt.Errorf("unknown source element type %q", s)
	}
}

// Slot identifies one attribute of one category.
type Slot struct {
	Category  Category
	Attribute string
}

func (s Slot) String() string {
	return string(s.Category) + "." + s.Attribute
}

// ParseSlot parses "category.attribute".
func ParseSlot(s string) (Slot, error) {
	cat, attr, ok := strings.Cut(s, ".")
	if !ok || attr == "" {
		return Slot{}, fmt.Errorf("slot %q: want category.attribute", s)
	}

	c, err := ParseCategory(cat)
	if err != nil {
		return Slot{}, err
	}

	return Slot{Category: c, Attribute: attr}, nil
}

// AttributeSlot is an attribute as displayed for a category.
type AttributeSlot struct {
	Name string
	Type compat.AttributeType
}

func (a AttributeSlot) String() string {
	return a.Name + ": " + a.Type.String()
}

// Property is a named metric with its declared kind.
type Property struct {
	Name string              `yaml:"name" validate:"required"`
	Type compat.PropertyType `yaml:"type" validate:"required"`
}

func (p Property) String() string {
	return p.Name + ": " + p.Type.String()
}

// PropertyRef identifies a metric of an element type.
type PropertyRef struct {
	Source SourceType
	Name   string
}

func (r PropertyRef) String() string {
	return string(r.Source) + "." + r.Name
}

// ParsePropertyRef parses "sourceType.property".
func ParsePropertyRef(s string) (PropertyRef, error) {
	src, name, ok := strings.Cut(s, ".")
	if !ok || name == "" {
		return PropertyRef{}, fmt.Errorf("property %q: want sourceType.property", s)
	}

	st, err := ParseSourceType(src)
	if err != nil {
		return PropertyRef{}, err
	}

	return PropertyRef{Source: st, Name: name}, nil
}
