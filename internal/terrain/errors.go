package terrain

import "errors"

// Error kinds shared by every stage of the generator. Wrapped errors carry
// the context (path, archetype, rotation); test with errors.Is.
var (
	ErrInputNotFound    = errors.New("input not found")
	ErrInvalidArchetype = errors.New("invalid archetype")
	ErrInvalidComposite = errors.New("invalid mask")
	ErrEmptyBoundingBox = errors.New("empty bounding box")
	ErrStencilNotFound  = errors.New("stencil not found")
)
