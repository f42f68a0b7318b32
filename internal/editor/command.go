package editor

import (
	"errors"

	"metric-mapper/internal/compat"
	"metric-mapper/internal/diagnostic"
	"metric-mapper/internal/model"
)

// Command is a user action a front-end forwards to a session.
type Command interface {
	apply(s *Session) (compat.Strategy, error)
}

// BindCommand asks to bind a metric to a slot.
type BindCommand struct {
	Slot     model.Slot
	Property model.PropertyRef
}

// BindResourceCommand asks to bind a resource tag to a slot.
type BindResourceCommand struct {
	Slot     model.Slot
	Resource string
}

// UnbindCommand clears a slot.
type UnbindCommand struct {
	Slot model.Slot
}

// AddResourceCommand selects a resource tag.
type AddResourceCommand struct {
	Resource string
}

// RemoveResourceCommand deselects a resource tag.
type RemoveResourceCommand struct {
	Resource string
}

func (c BindCommand) apply(s *Session) (compat.Strategy, error) {
	return s.Bind(c.Slot.Category, c.Slot.Attribute, c.Property.Source, c.Property.Name)
}

func (c BindResourceCommand) apply(s *Session) (compat.Strategy, error) {
	if err := s.BindResource(c.Slot.Category, c.Slot.Attribute, c.Resource); err != nil {
		return compat.CannotAssign, err
	}

	return compat.NoConversion, nil
}

func (c UnbindCommand) apply(s *Session) (compat.Strategy, error) {
	s.Unbind(c.Slot.Category, c.Slot.Attribute)
	return compat.CannotAssign, nil
}

func (c AddResourceCommand) apply(s *Session) (compat.Strategy, error) {
	s.AddResource(c.Resource)
	return compat.CannotAssign, nil
}

func (c RemoveResourceCommand) apply(s *Session) (compat.Strategy, error) {
	s.RemoveResource(c.Resource)
	return compat.CannotAssign, nil
}

// Result is the outcome of a handled command.
type Result struct {
	// Strategy is the resolved conversion of an accepted bind.
	Strategy compat.Strategy
	// Err is set when the command was rejected.
	Err error
	// Notice is the message to show the user for a rejected command.
	Notice *diagnostic.Diagnostic
}

// OK reports whether the command was accepted.
func (r Result) OK() bool { return r.Err == nil }

// Handle runs a command. A rejected command leaves the session unchanged,
// gets a user notice in the result and is recorded in Notices.
func (s *Session) Handle(cmd Command) Result {
	strategy, err := cmd.apply(s)
	if err == nil {
		return Result{Strategy: strategy}
	}

	notice := s.reject(err)

	return Result{Strategy: compat.CannotAssign, Err: err, Notice: &notice}
}

// OnBindRequested is the drop handler of an attribute table: bind prop to
// slot and report the outcome.
func (s *Session) OnBindRequested(slot model.Slot, prop model.PropertyRef) Result {
	if prop.Source == model.SourceResource {
		return s.Handle(BindResourceCommand{Slot: slot, Resource: prop.Name})
	}

	return s.Handle(BindCommand{Slot: slot, Property: prop})
}

func (s *Session) reject(err error) diagnostic.Diagnostic {
	code := diagnostic.CodeIncompatibleBinding
	slot := ""

	var bindErr *BindError
	if errors.As(err, &bindErr) {
		slot = bindErr.Slot.String()

		switch {
		case errors.Is(err, ErrUnknownSlot):
			code = diagnostic.CodeUnknownSlot
		case errors.Is(err, ErrUnknownProperty):
			code = diagnostic.CodeUnknownProperty
		case errors.Is(err, ErrUnknownResource):
			code = diagnostic.CodeUnknownResource
		}

		s.notices.AddWarning(code, bindErr.message(), slot, bindErr.Suggestions...)
	} else {
		s.notices.AddWarning(code, err.Error(), slot)
	}

	s.log.Info("binding rejected", "slot", slot, "error", err)

	return s.notices.Warnings[len(s.notices.Warnings)-1]
}
