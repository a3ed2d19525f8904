package glint

import (
	"github.com/chewxy/math32"
)

// Uniforms is the per-draw uniform block: the combined
// view-projection matrix followed by the object's model matrix.
// It is supplied once per draw and immutable during that draw.
type Uniforms struct {
	ViewProj Matrix
	Model    Matrix
}

// NewUniforms returns identity uniforms.
func NewUniforms() Uniforms {
	return Uniforms{ViewProj: Identity(), Model: Identity()}
}

// Shader runs the two per-draw pipeline stages. Vertex is invoked
// once per mesh vertex and must fill in the clip position (Output).
// Fragment is invoked once per covered pixel with the interpolated
// vertex and the screen-space partial derivatives of the world
// position, as supplied by the rasterizer.
type Shader interface {
	Vertex(Vertex) Vertex
	Fragment(v Vertex, dpdx, dpdy Vector) Color
}

// lightDirection is the single fixed directional light, a stage
// constant rather than a uniform field.
var lightDirection = Vector{1, 1, 1}.Normalize()

// ambientFloor is the minimum shading intensity: a lower clamp on
// the diffuse term, not an additive ambient contribution.
const ambientFloor = 0.2

// FlatShader is the pipeline's single material model: vertex-colored,
// normal-free flat shading lit by one fixed directional light. The
// face normal is derived from the screen-space derivatives of the
// interpolated world position, so planar triangles shade with one
// constant intensity.
type FlatShader struct {
	Uniforms Uniforms
}

func NewFlatShader(viewProj, model Matrix) *FlatShader {
	return &FlatShader{Uniforms{ViewProj: viewProj, Model: model}}
}

// Vertex transforms the object-space position into world space and
// then clip space, passing the color through unchanged.
func (s *FlatShader) Vertex(v Vertex) Vertex {
	world := s.Uniforms.Model.MulPositionW(v.Position)
	v.World = world.Vector()
	v.Output = s.Uniforms.ViewProj.MulVectorW(world)
	return v
}

// Fragment shades one pixel. Alpha is always exactly 1.
func (s *FlatShader) Fragment(v Vertex, dpdx, dpdy Vector) Color {
	return v.Color.MulScalar(FlatIntensity(dpdx, dpdy)).Opaque()
}

// FlatIntensity computes max(dot(normalize(cross(dpdx, dpdy)), L), 0.2)
// for the fixed light L = normalize(1,1,1). The clamp doubles as the
// degenerate-geometry policy: a zero-length cross product (zero-area
// triangle, collinear derivative samples) shades at the ambient floor.
func FlatIntensity(dpdx, dpdy Vector) float32 {
	normal := dpdx.Cross(dpdy)
	length := normal.Length()
	if length == 0 || math32.IsNaN(length) || math32.IsInf(length, 0) {
		return ambientFloor
	}
	normal = normal.DivScalar(length)
	return math32.Max(normal.Dot(lightDirection), ambientFloor)
}
