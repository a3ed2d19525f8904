package glint

// Vertex carries the per-vertex pipeline values. Position and Color
// are the mesh inputs; Output (clip position) and World are produced
// by a shader's vertex stage and interpolated by the rasterizer.
type Vertex struct {
	Position Vector
	Color    Color
	Output   VectorW
	World    Vector
}

// Vert is shorthand for a position+color vertex.
func Vert(position Vector, color Color) Vertex {
	return Vertex{Position: position, Color: color}
}

// Outside reports whether the vertex clip position lies outside
// the view volume.
func (v Vertex) Outside() bool {
	return v.Output.Outside()
}

// InterpolateVertexes blends the three vertices of a triangle using
// perspective-corrected barycentric weights b (w holds the
// normalization factor).
func InterpolateVertexes(v0, v1, v2 Vertex, b VectorW) Vertex {
	v := Vertex{}
	v.Position = interpolateVectors(v0.Position, v1.Position, v2.Position, b)
	v.World = interpolateVectors(v0.World, v1.World, v2.World, b)
	v.Color = interpolateColors(v0.Color, v1.Color, v2.Color, b)
	return v
}

func interpolateVectors(v0, v1, v2 Vector, b VectorW) Vector {
	n := Vector{}
	n = n.Add(v0.MulScalar(b.X))
	n = n.Add(v1.MulScalar(b.Y))
	n = n.Add(v2.MulScalar(b.Z))
	return n.MulScalar(b.W)
}

func interpolateColors(v0, v1, v2 Color, b VectorW) Color {
	c := Color{}
	c = c.Add(v0.MulScalar(b.X))
	c = c.Add(v1.MulScalar(b.Y))
	c = c.Add(v2.MulScalar(b.Z))
	return c.MulScalar(b.W)
}

// lerpVertexes blends two shaded vertices, used when clipping
// primitives against the view volume.
func lerpVertexes(a, b Vertex, t float32) Vertex {
	v := Vertex{}
	v.Position = a.Position.Lerp(b.Position, t)
	v.World = a.World.Lerp(b.World, t)
	v.Color = a.Color.Lerp(b.Color, t)
	v.Output = a.Output.Lerp(b.Output, t)
	return v
}
