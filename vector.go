package glint

import (
	"github.com/chewxy/math32"
)

// Vector is a 3-component float32 vector.
type Vector struct {
	X, Y, Z float32
}

// V is shorthand for Vector{x, y, z}.
func V(x, y, z float32) Vector {
	return Vector{x, y, z}
}

func (a Vector) Add(b Vector) Vector {
	return Vector{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func (a Vector) Sub(b Vector) Vector {
	return Vector{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func (a Vector) Mul(b Vector) Vector {
	return Vector{a.X * b.X, a.Y * b.Y, a.Z * b.Z}
}

func (a Vector) MulScalar(s float32) Vector {
	return Vector{a.X * s, a.Y * s, a.Z * s}
}

func (a Vector) DivScalar(s float32) Vector {
	return Vector{a.X / s, a.Y / s, a.Z / s}
}

func (a Vector) Negate() Vector {
	return Vector{-a.X, -a.Y, -a.Z}
}

func (a Vector) Dot(b Vector) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func (a Vector) Cross(b Vector) Vector {
	return Vector{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func (a Vector) Length() float32 {
	return math32.Sqrt(a.Dot(a))
}

// Normalize returns the unit vector in the direction of a.
// A zero vector normalizes to NaN components, per IEEE rules;
// callers that need a defined fallback must check Length first.
func (a Vector) Normalize() Vector {
	return a.DivScalar(a.Length())
}

func (a Vector) Lerp(b Vector, t float32) Vector {
	return a.Add(b.Sub(a).MulScalar(t))
}

func (a Vector) Min(b Vector) Vector {
	return Vector{math32.Min(a.X, b.X), math32.Min(a.Y, b.Y), math32.Min(a.Z, b.Z)}
}

func (a Vector) Max(b Vector) Vector {
	return Vector{math32.Max(a.X, b.X), math32.Max(a.Y, b.Y), math32.Max(a.Z, b.Z)}
}

func (a Vector) Floor() Vector {
	return Vector{math32.Floor(a.X), math32.Floor(a.Y), math32.Floor(a.Z)}
}

func (a Vector) Ceil() Vector {
	return Vector{math32.Ceil(a.X), math32.Ceil(a.Y), math32.Ceil(a.Z)}
}

// Perpendicular returns a 2D perpendicular in the XY plane,
// used for screen-space line expansion.
func (a Vector) Perpendicular() Vector {
	return Vector{-a.Y, a.X, 0}
}

// VectorW is a 4-component homogeneous float32 vector.
type VectorW struct {
	X, Y, Z, W float32
}

// Vector truncates to the XYZ components.
func (a VectorW) Vector() Vector {
	return Vector{a.X, a.Y, a.Z}
}

func (a VectorW) Add(b VectorW) VectorW {
	return VectorW{a.X + b.X, a.Y + b.Y, a.Z + b.Z, a.W + b.W}
}

func (a VectorW) Sub(b VectorW) VectorW {
	return VectorW{a.X - b.X, a.Y - b.Y, a.Z - b.Z, a.W - b.W}
}

func (a VectorW) MulScalar(s float32) VectorW {
	return VectorW{a.X * s, a.Y * s, a.Z * s, a.W * s}
}

func (a VectorW) DivScalar(s float32) VectorW {
	return VectorW{a.X / s, a.Y / s, a.Z / s, a.W / s}
}

func (a VectorW) Dot(b VectorW) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W
}

func (a VectorW) Lerp(b VectorW, t float32) VectorW {
	return a.Add(b.Sub(a).MulScalar(t))
}

// Outside reports whether the point lies outside the clip volume.
func (a VectorW) Outside() bool {
	x, y, z, w := a.X, a.Y, a.Z, a.W
	return x < -w || x > w || y < -w || y > w || z < -w || z > w
}

func ClampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
