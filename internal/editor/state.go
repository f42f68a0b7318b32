package editor

import (
	"fmt"

	"metric-mapper/internal/compat"
	"metric-mapper/internal/model"
)

// SlotState is the state of one attribute slot. The zero value is Unbound.
type SlotState struct {
	Bound    bool
	Source   model.PropertyRef
	Strategy compat.Strategy
}

func (s SlotState) String() string {
	if !s.Bound {
		return "Unbound"
	}

	return fmt.Sprintf("Bound(%s, %s)", s.Strategy, s.Source)
}
