// Package geom provides vector helpers for agents moving on the XZ ground plane.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Up is the world up axis.
var Up = r3.Vec{Y: 1}

const epsilon = 1e-9

// Flatten projects v onto the ground plane.
func Flatten(v r3.Vec) r3.Vec {
	v.Y = 0
	return v
}

// Distance returns the straight-line distance between two points.
func Distance(a, b r3.Vec) float64 {
	return r3.Norm(r3.Sub(b, a))
}

// CosAngle returns the cosine of the angle between a and b.
// ok is false when either vector has zero length.
func CosAngle(a, b r3.Vec) (cos float64, ok bool) {
	na, nb := r3.Norm(a), r3.Norm(b)
	if na < epsilon || nb < epsilon {
		return 1, false
	}
	return clamp(r3.Dot(a, b)/(na*nb), -1, 1), true
}

// Angle returns the unsigned angle between a and b in degrees.
// Zero-length vectors yield 0.
func Angle(a, b r3.Vec) float64 {
	cos, ok := CosAngle(a, b)
	if !ok {
		return 0
	}
	return math.Acos(cos) * 180 / math.Pi
}

// SlerpDirection rotates the direction from toward to by fraction t of the
// angle between them. t is clamped to [0, 1]. The result keeps unit length.
// Opposite directions turn about Up.
func SlerpDirection(from, to r3.Vec, t float64) r3.Vec {
	if r3.Norm(to) < epsilon {
		return from
	}
	if r3.Norm(from) < epsilon {
		return r3.Unit(to)
	}
	t = clamp(t, 0, 1)
	f, g := r3.Unit(from), r3.Unit(to)
	theta := math.Acos(clamp(r3.Dot(f, g), -1, 1))
	if theta < epsilon {
		return g
	}
	axis := r3.Cross(f, g)
	if r3.Norm(axis) < epsilon {
		axis = Up
	}
	return r3.NewRotation(theta*t, r3.Unit(axis)).Rotate(f)
}

// Toward returns the flattened unit direction from a to b, or the zero vector
// when the points coincide on the ground plane.
func Toward(a, b r3.Vec) r3.Vec {
	d := Flatten(r3.Sub(b, a))
	if r3.Norm(d) < epsilon {
		return r3.Vec{}
	}
	return r3.Unit(d)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
