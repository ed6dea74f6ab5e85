package scene

import "errors"

var (
	// ErrUnknownItem is returned for an item type the loader does not know.
	ErrUnknownItem = errors.New("scene: unknown item type")

	// ErrUnknownPrimitive is returned for an unknown filter primitive.
	ErrUnknownPrimitive = errors.New("scene: unknown filter primitive")

	// ErrInvalidValue is returned for malformed colors, transforms and
	// path data.
	ErrInvalidValue = errors.New("scene: invalid value")
)
