package terrain

import (
	"fmt"
	"strings"
)

// Archetype is one of the fixed terrain orientations a tile can take.
type Archetype int

const (
	FlatLand Archetype = iota
	SlopeFrontRight
	SlopeFrontLeft
	CliffFront
	CliffRight
	SlopeBackRight
	SlopeBackLeft
	CliffBack
	CliffLeft

	numArchetypes
)

var archetypeNames = [numArchetypes]string{
	FlatLand:        "flat_land",
	SlopeFrontRight: "slope_front_right",
	SlopeFrontLeft:  "slope_front_left",
	CliffFront:      "cliff_front",
	CliffRight:      "cliff_right",
	SlopeBackRight:  "slope_back_right",
	SlopeBackLeft:   "slope_back_left",
	CliffBack:       "cliff_back",
	CliffLeft:       "cliff_left",
}

// Archetypes returns every archetype in table order.
func Archetypes() []Archetype {
	all := make([]Archetype, numArchetypes)
	for i := range all {
		all[i] = Archetype(i)
	}
	return all
}

// Valid reports whether a is a member of the closed archetype set.
func (a Archetype) Valid() bool {
	return a >= 0 && a < numArchetypes
}

func (a Archetype) String() string {
	if !a.Valid() {
		return fmt.Sprintf("archetype(%d)", int(a))
	}
	return archetypeNames[a]
}

// IsCliff reports whether a is one of the four vertical cliff faces.
func (a Archetype) IsCliff() bool {
	return strings.HasPrefix(a.String(), "cliff_")
}

// StencilName is the per-archetype stencil file under the mask root.
func (a Archetype) StencilName() string {
	return a.String() + ".png"
}

// ParseArchetype maps a canonical name back to its Archetype.
func ParseArchetype(name string) (Archetype, error) {
	for i, n := range archetypeNames {
		if n == name {
			return Archetype(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidArchetype, name)
}
