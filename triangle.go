package glint

// Triangle is a renderable triangle.
type Triangle struct {
	V1, V2, V3 Vertex
}

func NewTriangle(v1, v2, v3 Vertex) *Triangle {
	return &Triangle{v1, v2, v3}
}

// NewTriangleForPoints builds a triangle with the given positions
// and a single shared color.
func NewTriangleForPoints(p1, p2, p3 Vector, c Color) *Triangle {
	return NewTriangle(Vert(p1, c), Vert(p2, c), Vert(p3, c))
}

// Normal returns the geometric face normal from the vertex positions.
// Zero-area triangles yield NaN components.
func (t *Triangle) Normal() Vector {
	e1 := t.V2.Position.Sub(t.V1.Position)
	e2 := t.V3.Position.Sub(t.V1.Position)
	return e1.Cross(e2).Normalize()
}

// Area returns the triangle's surface area.
func (t *Triangle) Area() float32 {
	e1 := t.V2.Position.Sub(t.V1.Position)
	e2 := t.V3.Position.Sub(t.V1.Position)
	return e1.Cross(e2).Length() / 2
}

// IsDegenerate reports whether the triangle has (near) zero area.
func (t *Triangle) IsDegenerate() bool {
	e1 := t.V2.Position.Sub(t.V1.Position)
	e2 := t.V3.Position.Sub(t.V1.Position)
	return e1.Cross(e2).Length() == 0
}

// SetColor sets the same color on all three vertices.
func (t *Triangle) SetColor(c Color) {
	t.V1.Color = c
	t.V2.Color = c
	t.V3.Color = c
}

func (t *Triangle) BoundingBox() Box {
	min := t.V1.Position.Min(t.V2.Position).Min(t.V3.Position)
	max := t.V1.Position.Max(t.V2.Position).Max(t.V3.Position)
	return Box{min, max}
}

// Line is a renderable line segment.
type Line struct {
	V1, V2 Vertex
}

func NewLine(v1, v2 Vertex) *Line {
	return &Line{v1, v2}
}

// NewLineForPoints builds a line with the given endpoints and a
// single shared color.
func NewLineForPoints(p1, p2 Vector, c Color) *Line {
	return NewLine(Vert(p1, c), Vert(p2, c))
}

func (l *Line) BoundingBox() Box {
	min := l.V1.Position.Min(l.V2.Position)
	max := l.V1.Position.Max(l.V2.Position)
	return Box{min, max}
}
