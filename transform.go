package glint

// Transform holds position, euler rotation (radians), and scale,
// and produces a model matrix from them.
type Transform struct {
	Position Vector
	Rotation Vector
	Scale    Vector
}

// NewTransform returns an identity transform.
func NewTransform() Transform {
	return Transform{Scale: Vector{1, 1, 1}}
}

// TransformAt returns an identity transform at the given position.
func TransformAt(position Vector) Transform {
	t := NewTransform()
	t.Position = position
	return t
}

// Matrix composes scale, then Z/X/Y rotation, then translation.
func (t Transform) Matrix() Matrix {
	m := Scale(t.Scale)
	m = RotateZ(t.Rotation.Z).Mul(m)
	m = RotateX(t.Rotation.X).Mul(m)
	m = RotateY(t.Rotation.Y).Mul(m)
	return Translate(t.Position).Mul(m)
}
