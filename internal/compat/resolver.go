package compat

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Row is one attribute kind of the compatibility table with a cell per
// property kind. A cell may be CannotAssign; leaving it out is an error.
type Row struct {
	Attribute AttributeType
	Cells     map[PropertyType]Strategy
}

// Resolver answers (AttributeType, PropertyType) -> Strategy queries from a
// table fixed at construction time. The zero value and a nil *Resolver deny
// everything.
type Resolver struct {
	attributes []AttributeType
	properties []PropertyType
	table      map[AttributeType]map[PropertyType]Strategy
}

var (
	ErrEmptyTable     = errors.New("compatibility table has no rows")
	ErrDuplicateRow   = errors.New("duplicate attribute row")
	ErrIncompleteRow  = errors.New("row does not cover every property column")
	ErrEmptyKindName  = errors.New("kind name is empty")
	ErrInvalidOutcome = errors.New("cell holds an unknown strategy")
)

// NewResolver builds a Resolver from rows. Every row must have cells for
// exactly the same property kinds, so adding a kind means adding a full
// row or column.
func NewResolver(rows ...Row) (*Resolver, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyTable
	}

	columns := make([]PropertyType, 0, len(rows[0].Cells))
	for p := range rows[0].Cells {
		columns = append(columns, p)
	}

	slices.SortFunc(columns, comparePropertyTypes)

	r := &Resolver{
		attributes: make([]AttributeType, 0, len(rows)),
		properties: columns,
		table:      make(map[AttributeType]map[PropertyType]Strategy, len(rows)),
	}

	for _, row := range rows {
		if row.Attribute == "" {
			return nil, fmt.Errorf("attribute row: %w", ErrEmptyKindName)
		}

		if _, ok := r.table[row.Attribute]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRow, row.Attribute)
		}

		if len(row.Cells) != len(columns) {
			return nil, fmt.Errorf("%w: %s has %d cells, want %d",
				ErrIncompleteRow, row.Attribute, len(row.Cells), len(columns))
		}

		cells := make(map[PropertyType]Strategy, len(columns))

		for _, p := range columns {
			if p == "" {
				return nil, fmt.Errorf("property column: %w", ErrEmptyKindName)
			}

			s, ok := row.Cells[p]
			if !ok {
				return nil, fmt.Errorf("%w: %s is missing %s", ErrIncompleteRow, row.Attribute, p)
			}

			if _, err := s.MarshalText(); err != nil {
				return nil, fmt.Errorf("%w: %s/%s", ErrInvalidOutcome, row.Attribute, p)
			}

			cells[p] = s
		}

		r.attributes = append(r.attributes, row.Attribute)
		r.table[row.Attribute] = cells
	}

	return r, nil
}

// StandardRows returns the rows of the built-in table. The result is a
// fresh copy and may be extended before passing it to NewResolver.
func StandardRows() []Row {
	return []Row{
		{Attribute: AttrInt, Cells: map[PropertyType]Strategy{
			PropInt:    NoConversion,
			PropFloat:  ToInt,
			PropString: CannotAssign,
		}},
		{Attribute: AttrBoundedInt, Cells: map[PropertyType]Strategy{
			PropInt:    Quantize,
			PropFloat:  Quantize,
			PropString: CannotAssign,
		}},
		// Numeric metrics onto string attributes quantize into a fixed set
		// of character values.
		{Attribute: AttrString, Cells: map[PropertyType]Strategy{
			PropInt:    Quantize,
			PropFloat:  Quantize,
			PropString: NoConversion,
		}},
		{Attribute: AttrUnitFloat, Cells: map[PropertyType]Strategy{
			PropInt:    Normalize,
			PropFloat:  Normalize,
			PropString: CannotAssign,
		}},
	}
}

// Standard returns a Resolver over StandardRows.
func Standard() *Resolver {
	r, err := NewResolver(StandardRows()...)
	if err != nil {
		panic("compat: standard table is invalid: " + err.Error())
	}

	return r
}

// Resolve returns the strategy for binding a property of kind p to an
// attribute of kind a. Pairs without a cell resolve to CannotAssign.
func (r *Resolver) Resolve(a AttributeType, p PropertyType) Strategy {
	s, _ := r.Lookup(a, p)
	return s
}

// Lookup is Resolve that also reports whether the table had a cell for the
// pair.
func (r *Resolver) Lookup(a AttributeType, p PropertyType) (Strategy, bool) {
	if r == nil {
		return CannotAssign, false
	}

	row, ok := r.table[a]
	if !ok {
		return CannotAssign, false
	}

	s, ok := row[p]
	if !ok {
		return CannotAssign, false
	}

	return s, true
}

// CanAssign is shorthand for Resolve(a, p).CanAssign().
func (r *Resolver) CanAssign(a AttributeType, p PropertyType) bool {
	return r.Resolve(a, p).CanAssign()
}

// AttributeTypes returns the row kinds in construction order.
func (r *Resolver) AttributeTypes() []AttributeType {
	if r == nil {
		return nil
	}

	return slices.Clone(r.attributes)
}

// PropertyTypes returns the column kinds: int, float, string first, then
// any custom kinds by name.
func (r *Resolver) PropertyTypes() []PropertyType {
	if r == nil {
		return nil
	}

	return slices.Clone(r.properties)
}

func comparePropertyTypes(a, b PropertyType) int {
	ra, rb := propertyRank(a), propertyRank(b)
	if ra != rb {
		return ra - rb
	}

	return strings.Compare(string(a), string(b))
}

func propertyRank(p PropertyType) int {
	switch p {
	case PropInt:
		return 0
	case PropFloat:
		return 1
	case PropString:
		return 2
	default:
		return 3
	}
}
