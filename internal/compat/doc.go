// Package compat decides whether a source-code metric can feed a building
// attribute and which conversion the renderer has to apply.
//
// The decision depends only on declared kinds, never on metric values:
//
//	attribute \ property | int           | float         | string
//	---------------------+---------------+---------------+--------------
//	int                  | no_conversion | to_int        | cannot_assign
//	int(0..5)            | quantize      | quantize      | cannot_assign
//	string               | quantize      | quantize      | no_conversion
//	float(0..1)          | normalize     | normalize     | cannot_assign
//
// A Resolver is an immutable value built once by NewResolver (or Standard)
// and shared by reference. Any pair it has no cell for resolves to
// CannotAssign; Lookup reports whether the cell existed at all.
package compat
