package terrain

import (
	"fmt"
	"math"
)

// ShadeMultiplier returns the brightness factor for an archetype under the
// given lighting strength. Front/right faces catch the light, back/left
// faces fall into shadow.
func ShadeMultiplier(a Archetype, strength float64) (float64, error) {
	s := math.Sqrt(strength)
	switch a {
	case FlatLand:
		return 1.0, nil
	case CliffRight, SlopeFrontRight:
		return 1 + 0.3*s, nil
	case CliffFront:
		return 1 + 0.15*s, nil
	case CliffBack, SlopeFrontLeft, CliffLeft, SlopeBackLeft:
		return 1 - 0.5*s, nil
	case SlopeBackRight:
		return 1 - 0.25*s, nil
	}
	return 0, fmt.Errorf("%w: %v", ErrInvalidArchetype, a)
}
