package geom

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestAngle(t *testing.T) {
	tests := []struct {
		name string
		a, b r3.Vec
		want float64
	}{
		{"same", r3.Vec{Z: 1}, r3.Vec{Z: 3}, 0},
		{"perpendicular", r3.Vec{Z: 1}, r3.Vec{X: 2}, 90},
		{"opposite", r3.Vec{Z: 1}, r3.Vec{Z: -1}, 180},
		{"diagonal", r3.Vec{Z: 1}, r3.Vec{X: 1, Z: 1}, 45},
		{"zero vector", r3.Vec{}, r3.Vec{X: 1}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Angle(tc.a, tc.b)
			if !scalar.EqualWithinAbs(got, tc.want, 1e-9) {
				t.Errorf("Angle = %f, want %f", got, tc.want)
			}
		})
	}
}

func TestSlerpDirection(t *testing.T) {
	from := r3.Vec{Z: 1}
	to := r3.Vec{X: 1}

	half := SlerpDirection(from, to, 0.5)
	if got := Angle(from, half); !scalar.EqualWithinAbs(got, 45, 1e-9) {
		t.Errorf("half slerp angle from start = %f, want 45", got)
	}
	if !scalar.EqualWithinAbs(r3.Norm(half), 1, 1e-9) {
		t.Errorf("slerp result not unit length: %f", r3.Norm(half))
	}

	full := SlerpDirection(from, to, 4)
	if got := Angle(full, to); !scalar.EqualWithinAbs(got, 0, 1e-6) {
		t.Errorf("t > 1 should clamp to target, angle = %f", got)
	}

	none := SlerpDirection(from, to, 0)
	if got := Angle(none, from); !scalar.EqualWithinAbs(got, 0, 1e-9) {
		t.Errorf("t = 0 should keep start direction, angle = %f", got)
	}
}

func TestSlerpDirectionOpposite(t *testing.T) {
	from := r3.Vec{Z: 1}
	to := r3.Vec{Z: -1}

	got := SlerpDirection(from, to, 0.5)
	if math.Abs(got.Y) > 1e-9 {
		t.Errorf("opposite slerp left the ground plane: %v", got)
	}
	if a := Angle(from, got); !scalar.EqualWithinAbs(a, 90, 1e-9) {
		t.Errorf("opposite half slerp angle = %f, want 90", a)
	}
}

func TestToward(t *testing.T) {
	d := Toward(r3.Vec{}, r3.Vec{X: 3, Y: 5, Z: 4})
	want := r3.Vec{X: 0.6, Z: 0.8}
	if !scalar.EqualWithinAbs(d.X, want.X, 1e-9) || !scalar.EqualWithinAbs(d.Z, want.Z, 1e-9) || d.Y != 0 {
		t.Errorf("Toward = %v, want %v", d, want)
	}

	if z := Toward(r3.Vec{X: 1}, r3.Vec{X: 1, Y: 3}); z != (r3.Vec{}) {
		t.Errorf("Toward of vertically aligned points = %v, want zero", z)
	}
}
