package route

import "gonum.org/v1/gonum/spatial/r3"

// Rand is the random source used to pick wander points.
type Rand interface {
	Float64() float64
}

// WanderArea picks uniformly random points inside an XZ rectangle at the
// height of Min.
type WanderArea struct {
	Min, Max r3.Vec
	rng      Rand
}

// NewWanderArea creates a point source over the rectangle spanned by min and max.
func NewWanderArea(min, max r3.Vec, rng Rand) *WanderArea {
	return &WanderArea{Min: min, Max: max, rng: rng}
}

// WanderPoint returns a random point in the area.
func (a *WanderArea) WanderPoint() r3.Vec {
	return r3.Vec{
		X: a.Min.X + a.rng.Float64()*(a.Max.X-a.Min.X),
		Y: a.Min.Y,
		Z: a.Min.Z + a.rng.Float64()*(a.Max.Z-a.Min.Z),
	}
}
