package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Notice codes.
const (
	CodeConfigFallback      = "config_fallback"
	CodeDataNotFound        = "data_not_found"
	CodeBadCatalog          = "bad_catalog"
	CodeIncompatibleBinding = "incompatible_binding"
	CodeUnknownSlot         = "unknown_slot"
	CodeUnknownProperty     = "unknown_property"
	CodeUnknownResource     = "unknown_resource"
	CodeStaleBinding        = "stale_binding"
	CodeStrategyChanged     = "strategy_changed"
	CodeInvalidDocument     = "invalid_document"
	CodeDuplicateSlot       = "duplicate_slot"
	CodeDuplicateResource   = "duplicate_resource"
	CodeSaveFailed          = "save_failed"
)

const unknownStr = "unknown"

// Diagnostics holds notices grouped by severity.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic is a single notice.
type Diagnostic struct {
	// Severity of the notice.
	Severity Severity
	// Code is one of the Code* constants.
	Code string
	// Message is the human-readable description.
	Message string
	// Slot is the "category.attribute" the notice is about, if any.
	Slot string
	// Suggestions are alternatives worth offering to the user.
	Suggestions []string
}

// Severity of a notice.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return unknownStr
	}
}

// AddError adds an error notice.
func (d *Diagnostics) AddError(code, message, slot string, suggestions ...string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity:    SeverityError,
		Code:        code,
		Message:     message,
		Slot:        slot,
		Suggestions: suggestions,
	})
}

// AddWarning adds a warning notice.
func (d *Diagnostics) AddWarning(code, message, slot string, suggestions ...string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity:    SeverityWarning,
		Code:        code,
		Message:     message,
		Slot:        slot,
		Suggestions: suggestions,
	})
}

// AddInfo adds an info notice.
func (d *Diagnostics) AddInfo(code, message, slot string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: SeverityInfo,
		Code:     code,
		Message:  message,
		Slot:     slot,
	})
}

// HasErrors returns true if there are any error notices.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Len is the total number of notices.
func (d *Diagnostics) Len() int {
	return len(d.Errors) + len(d.Warnings) + len(d.Infos)
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// All returns every notice, errors first.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, d.Len())
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// HasCode reports whether any notice carries code.
func (d *Diagnostics) HasCode(code string) bool {
	for _, n := range d.All() {
		if n.Code == code {
			return true
		}
	}

	return false
}

// Error returns a combined error from all error notices, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted notice.
func (d Diagnostic) String() string {
	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if d.Slot != "" {
		return d.Slot + ": " + msg
	}

	return msg
}
