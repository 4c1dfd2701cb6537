package posidonius

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Axes is an ordered triple (x, y, z) of IEEE-754 doubles. Value semantics:
// it is passed and returned by value throughout the core, the same way the
// teacher passes its own small numeric types.
type Axes struct {
	X, Y, Z float64
}

// NewAxes builds an Axes from three components.
func NewAxes(x, y, z float64) Axes { return Axes{X: x, Y: y, Z: z} }

// Add returns the component-wise sum.
func (a Axes) Add(b Axes) Axes { return Axes{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }

// Sub returns the component-wise difference.
func (a Axes) Sub(b Axes) Axes { return Axes{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }

// Scale returns a scaled by s.
func (a Axes) Scale(s float64) Axes { return Axes{a.X * s, a.Y * s, a.Z * s} }

// Dot returns the inner product of a and b.
func (a Axes) Dot(b Axes) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

// Cross returns a x b.
func (a Axes) Cross(b Axes) Axes {
	return Axes{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Norm2 returns the squared Euclidean norm.
func (a Axes) Norm2() float64 { return a.Dot(a) }

// Norm returns the Euclidean norm.
func (a Axes) Norm() float64 { return math.Sqrt(a.Norm2()) }

// Unit returns the unit vector of a, or the zero vector if a is itself
// (numerically) zero.
func (a Axes) Unit() Axes {
	n := a.Norm()
	if floats.EqualWithinAbs(n, 0, 1e-12) {
		return Axes{}
	}
	return a.Scale(1 / n)
}
