package glint

import (
	"fmt"
	"math"

	"github.com/fogleman/simplify"
)

// Mesh holds triangle and line primitives. A mesh is immutable from
// the pipeline's point of view: draw calls never modify it.
type Mesh struct {
	Triangles []*Triangle
	Lines     []*Line
}

func NewMesh(triangles []*Triangle, lines []*Line) *Mesh {
	return &Mesh{triangles, lines}
}

func NewTriangleMesh(triangles []*Triangle) *Mesh {
	return &Mesh{Triangles: triangles}
}

func NewLineMesh(lines []*Line) *Mesh {
	return &Mesh{Lines: lines}
}

func (m *Mesh) BoundingBox() Box {
	if len(m.Triangles) == 0 && len(m.Lines) == 0 {
		return Box{}
	}
	box := EmptyBox
	for _, t := range m.Triangles {
		box = box.Extend(t.BoundingBox())
	}
	for _, l := range m.Lines {
		box = box.Extend(l.BoundingBox())
	}
	return box
}

// Transform applies the matrix to all vertex positions in place.
func (m *Mesh) Transform(matrix Matrix) {
	for _, t := range m.Triangles {
		t.V1.Position = matrix.MulPosition(t.V1.Position)
		t.V2.Position = matrix.MulPosition(t.V2.Position)
		t.V3.Position = matrix.MulPosition(t.V3.Position)
	}
	for _, l := range m.Lines {
		l.V1.Position = matrix.MulPosition(l.V1.Position)
		l.V2.Position = matrix.MulPosition(l.V2.Position)
	}
}

// SetColor sets a single color on every vertex.
func (m *Mesh) SetColor(c Color) {
	for _, t := range m.Triangles {
		t.SetColor(c)
	}
	for _, l := range m.Lines {
		l.V1.Color = c
		l.V2.Color = c
	}
}

// Simplify reduces the triangle count to roughly factor times the
// current count, preserving the mesh's first color. Lines are kept
// unchanged.
func (m *Mesh) Simplify(factor float64) *Mesh {
	if len(m.Triangles) == 0 {
		return NewMesh(nil, m.Lines)
	}
	c := m.Triangles[0].V1.Color
	st := make([]*simplify.Triangle, len(m.Triangles))
	for i, t := range m.Triangles {
		st[i] = simplify.NewTriangle(
			simplifyVector(t.V1.Position),
			simplifyVector(t.V2.Position),
			simplifyVector(t.V3.Position))
	}
	sm := simplify.NewMesh(st).Simplify(factor)
	triangles := make([]*Triangle, len(sm.Triangles))
	for i, t := range sm.Triangles {
		triangles[i] = NewTriangleForPoints(
			fromSimplifyVector(t.V1),
			fromSimplifyVector(t.V2),
			fromSimplifyVector(t.V3), c)
	}
	return NewMesh(triangles, m.Lines)
}

func simplifyVector(v Vector) simplify.Vector {
	return simplify.Vector{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

func fromSimplifyVector(v simplify.Vector) Vector {
	return Vector{float32(v.X), float32(v.Y), float32(v.Z)}
}

type meshKey struct {
	position Vector
	color    Color
}

// Buffers flattens the mesh into a deduplicated vertex slice and a
// uint16 index slice, triangles first then lines, matching the GPU
// vertex layout (position at location 0, color at location 1).
// TriangleIndexCount marks where the line indices begin. Returns an
// error if the mesh holds more unique vertices than a uint16 index
// can address.
func (m *Mesh) Buffers() ([]Vertex, []uint16, error) {
	var vertices []Vertex
	var indices []uint16
	overflow := false
	lookup := map[meshKey]uint16{}
	add := func(v Vertex) {
		key := meshKey{v.Position, v.Color}
		i, ok := lookup[key]
		if !ok {
			if len(vertices) > math.MaxUint16 {
				overflow = true
				return
			}
			i = uint16(len(vertices))
			lookup[key] = i
			vertices = append(vertices, Vertex{Position: v.Position, Color: v.Color})
		}
		indices = append(indices, i)
	}
	for _, t := range m.Triangles {
		add(t.V1)
		add(t.V2)
		add(t.V3)
	}
	for _, l := range m.Lines {
		add(l.V1)
		add(l.V2)
	}
	if overflow {
		return nil, nil, fmt.Errorf("glint: mesh exceeds %d unique vertices", math.MaxUint16+1)
	}
	return vertices, indices, nil
}

// TriangleIndexCount returns the number of indices the triangle
// primitives occupy at the front of the Buffers index slice.
func (m *Mesh) TriangleIndexCount() int {
	return len(m.Triangles) * 3
}

// NewCube returns a unit cube centered at the origin with a single
// color on every face.
func NewCube(c Color) *Mesh {
	corners := []Vector{
		{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5},
		{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5},
	}
	faces := [][3]int{
		{0, 1, 2}, {2, 3, 0}, // front
		{4, 6, 5}, {6, 4, 7}, // back
		{4, 0, 3}, {3, 7, 4}, // left
		{1, 5, 6}, {6, 2, 1}, // right
		{3, 2, 6}, {6, 7, 3}, // top
		{4, 5, 1}, {1, 0, 4}, // bottom
	}
	triangles := make([]*Triangle, len(faces))
	for i, f := range faces {
		triangles[i] = NewTriangleForPoints(corners[f[0]], corners[f[1]], corners[f[2]], c)
	}
	return NewTriangleMesh(triangles)
}

// NewGrid returns a line grid of size x size cells in the XZ plane,
// with the two center lines drawn in axisColor.
func NewGrid(size int, spacing float32, gridColor, axisColor Color) *Mesh {
	half := float32(size) * spacing * 0.5
	var lines []*Line
	for i := 0; i <= size; i++ {
		c := gridColor
		if i == size/2 {
			c = axisColor
		}
		z := float32(i)*spacing - half
		lines = append(lines, NewLineForPoints(Vector{-half, 0, z}, Vector{half, 0, z}, c))
		x := float32(i)*spacing - half
		lines = append(lines, NewLineForPoints(Vector{x, 0, -half}, Vector{x, 0, half}, c))
	}
	return NewLineMesh(lines)
}
