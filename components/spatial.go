package components

import "gonum.org/v1/gonum/spatial/r3"

// Transform is an entity's pose. Agents live on the XZ ground plane with Y up.
type Transform struct {
	Position r3.Vec
	Forward  r3.Vec // unit facing direction
}
