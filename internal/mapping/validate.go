package mapping

import (
	"fmt"

	"metric-mapper/internal/diagnostic"
	"metric-mapper/internal/model"
)

// Validate checks a document for problems Parse lets through: slots bound
// twice, categories out of order, resource bindings to unselected
// resources and bindings marked cannot_assign.
func Validate(d *Document) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if d == nil {
		res.AddError(diagnostic.CodeInvalidDocument, "mapping document is nil", "")
		return res
	}

	seenResources := make(map[string]struct{}, len(d.Resources))

	for _, id := range d.Resources {
		if _, dup := seenResources[id]; dup {
			res.AddWarning(diagnostic.CodeDuplicateResource, fmt.Sprintf("resource %q listed twice", id), "")
			continue
		}

		seenResources[id] = struct{}{}
	}

	seenSlots := make(map[model.Slot]struct{})
	lastIndex := -1

	for _, l := range d.Linkings {
		if !l.Category.IsValid() {
			res.AddError(diagnostic.CodeInvalidDocument, fmt.Sprintf("unknown category %q", l.Category), "")
			continue
		}

		if l.Category.Index() <= lastIndex {
			res.AddWarning(diagnostic.CodeInvalidDocument,
				fmt.Sprintf("category %s is out of display order", l.Category), "")
		}

		lastIndex = l.Category.Index()

		for _, b := range l.Bindings {
			validateBinding(res, l.Category, b, seenSlots, seenResources)
		}
	}

	return res
}

func validateBinding(
	res *diagnostic.Diagnostics,
	c model.Category,
	b Binding,
	seenSlots map[model.Slot]struct{},
	resources map[string]struct{},
) {
	slot := model.Slot{Category: c, Attribute: b.Attribute}
	slotStr := slot.String()

	if b.Attribute == "" {
		res.AddError(diagnostic.CodeInvalidDocument, "binding without attribute", string(c))
		return
	}

	if _, dup := seenSlots[slot]; dup {
		res.AddError(diagnostic.CodeDuplicateSlot, "slot is bound more than once", slotStr)
	}

	seenSlots[slot] = struct{}{}

	if b.Property == "" {
		res.AddError(diagnostic.CodeInvalidDocument, "binding without source property", slotStr)
	}

	if b.IsResource() {
		if _, ok := resources[b.Property]; !ok {
			res.AddError(diagnostic.CodeUnknownResource,
				fmt.Sprintf("resource %q is not in the resource list", b.Property), slotStr)
		}

		return
	}

	if !b.Strategy.CanAssign() {
		res.AddError(diagnostic.CodeIncompatibleBinding,
			fmt.Sprintf("binding %s.%s has strategy %s", b.Source, b.Property, b.Strategy), slotStr)
	}
}
