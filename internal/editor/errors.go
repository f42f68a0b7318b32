package editor

import (
	"errors"
	"fmt"
	"strings"

	"metric-mapper/internal/compat"
	"metric-mapper/internal/model"
)

var (
	// ErrIncompatible means the property kind cannot feed the attribute kind.
	ErrIncompatible = errors.New("incompatible types")
	// ErrUnknownSlot means the category does not display the attribute.
	ErrUnknownSlot = errors.New("unknown attribute slot")
	// ErrUnknownProperty means the element type has no such metric.
	ErrUnknownProperty = errors.New("unknown property")
	// ErrUnknownResource means the resource was never added.
	ErrUnknownResource = errors.New("unknown resource")
)

// BindError explains a rejected bind. It matches its Kind with errors.Is.
type BindError struct {
	Kind     error
	Slot     model.Slot
	Source   model.PropertyRef
	AttrType compat.AttributeType
	PropType compat.PropertyType
	// Suggestions holds near-miss names for unknown properties.
	Suggestions []string
}

func (e *BindError) Error() string {
	msg := e.message()
	if len(e.Suggestions) > 0 {
		msg += "; did you mean " + strings.Join(e.Suggestions, ", ") + "?"
	}

	return msg
}

// message is Error without the suggestions.
func (e *BindError) message() string {
	var b strings.Builder

	fmt.Fprintf(&b, "cannot bind %s to %s: %v", e.Source, e.Slot, e.Kind)

	if errors.Is(e.Kind, ErrIncompatible) {
		fmt.Fprintf(&b, " (%s attribute, %s property)", e.AttrType, e.PropType)
	}

	return b.String()
}

func (e *BindError) Unwrap() error { return e.Kind }
