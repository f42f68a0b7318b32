package compat

import "fmt"

// Strategy is the outcome of binding a property kind to an attribute kind.
type Strategy int

const (
	// CannotAssign rejects the binding. It is the zero value so that a
	// missing table cell can never grant an assignment.
	CannotAssign Strategy = iota
	// NoConversion means the kinds already match.
	NoConversion
	// ToInt narrows a float metric to an integer.
	ToInt
	// Normalize maps an unbounded numeric metric into 0..1.
	Normalize
	// Quantize maps a metric into a small bounded integer range.
	Quantize
)

const (
	NameCannotAssign = "cannot_assign"
	NameNoConversion = "no_conversion"
	NameToInt        = "to_int"
	NameNormalize    = "normalize"
	NameQuantize     = "quantize"
)

// Strategies lists every strategy in declaration order.
func Strategies() []Strategy {
	return []Strategy{CannotAssign, NoConversion, ToInt, Normalize, Quantize}
}

// String returns the mapping-file name of the strategy.
func (s Strategy) String() string {
	switch s {
	case CannotAssign:
		return NameCannotAssign
	case NoConversion:
		return NameNoConversion
	case ToInt:
		return NameToInt
	case Normalize:
		return NameNormalize
	case Quantize:
		return NameQuantize
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// CanAssign reports whether the strategy permits a binding.
func (s Strategy) CanAssign() bool {
	switch s {
	case NoConversion, ToInt, Normalize, Quantize:
		return true
	default:
		return false
	}
}

// ParseStrategy is the inverse of Strategy.String.
func ParseStrategy(name string) (Strategy, error) {
	for _, s := range Strategies() {
		if s.String() == name {
			return s, nil
		}
	}

	return CannotAssign, fmt.Errorf("unknown conversion strategy %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	switch s {
	case CannotAssign, NoConversion, ToInt, Normalize, Quantize:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("cannot marshal %s", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}

	*s = parsed

	return nil
}
