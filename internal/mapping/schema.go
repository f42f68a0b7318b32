package mapping

import (
	"slices"

	"metric-mapper/internal/compat"
	"metric-mapper/internal/model"
)

// Document is the full set of bindings of an editing session plus the
// resource tags the user selected.
type Document struct {
	// Linkings holds one entry per category with at least one bound slot,
	// in category display order.
	Linkings []Linking
	// Resources in the order they were added.
	Resources []string
}

// Linking lists the bound slots of one category in display order.
type Linking struct {
	Category model.Category
	Bindings []Binding
}

// Binding ties an attribute to a metric or to a resource.
type Binding struct {
	Attribute string
	// Source is the element type of the metric, or model.SourceResource.
	Source model.SourceType
	// Property is the metric name, or the resource id for resource bindings.
	Property string
	Strategy compat.Strategy
}

// IsResource reports whether the binding feeds a resource tag.
func (b Binding) IsResource() bool {
	return b.Source == model.SourceResource
}

// Entry is a binding flattened with its category.
type Entry struct {
	Category model.Category
	Binding
}

// Slot returns the slot the entry binds.
func (e Entry) Slot() model.Slot {
	return model.Slot{Category: e.Category, Attribute: e.Attribute}
}

// Entries returns every binding with its category, in document order.
func (d *Document) Entries() []Entry {
	var entries []Entry

	for _, l := range d.Linkings {
		for _, b := range l.Bindings {
			entries = append(entries, Entry{Category: l.Category, Binding: b})
		}
	}

	return entries
}

// Find returns the binding for slot.
func (d *Document) Find(slot model.Slot) (Binding, bool) {
	for _, l := range d.Linkings {
		if l.Category != slot.Category {
			continue
		}

		for _, b := range l.Bindings {
			if b.Attribute == slot.Attribute {
				return b, true
			}
		}
	}

	return Binding{}, false
}

// Len is the number of bindings.
func (d *Document) Len() int {
	n := 0
	for _, l := range d.Linkings {
		n += len(l.Bindings)
	}

	return n
}

// HasResource reports whether id was selected.
func (d *Document) HasResource(id string) bool {
	return slices.Contains(d.Resources, id)
}

// linking returns the entry for c, appending it when c is new. Entries
// stay in category display order.
func (d *Document) linking(c model.Category) *Linking {
	for i := range d.Linkings {
		if d.Linkings[i].Category == c {
			return &d.Linkings[i]
		}
	}

	pos, _ := slices.BinarySearchFunc(d.Linkings, c, func(l Linking, c model.Category) int {
		return l.Category.Index() - c.Index()
	})

	d.Linkings = slices.Insert(d.Linkings, pos, Linking{Category: c})

	return &d.Linkings[pos]
}
