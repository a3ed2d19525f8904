package glint

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatIntensityAligned(t *testing.T) {
	// cross((1,0,-1), (0,1,-1)) = (1,1,1), parallel to the light.
	got := FlatIntensity(Vector{1, 0, -1}, Vector{0, 1, -1})
	assert.InDelta(t, 1.0, got, 1e-6)
}

func TestFlatIntensityBackFacing(t *testing.T) {
	// Swapped arguments negate the cross product, so the normal
	// points directly away from the light. The clamp must hold.
	got := FlatIntensity(Vector{0, 1, -1}, Vector{1, 0, -1})
	assert.InDelta(t, 0.2, got, 1e-6)
}

func TestFlatIntensityPerpendicular(t *testing.T) {
	// cross((0,0,1), (-1,-1,0)) = (1,-1,0), perpendicular to the
	// light: the diffuse term is zero and the floor takes over.
	got := FlatIntensity(Vector{0, 0, 1}, Vector{-1, -1, 0})
	assert.InDelta(t, 0.2, got, 1e-6)
}

func TestFlatIntensityBounds(t *testing.T) {
	vectors := []Vector{
		{1, 0, 0}, {0, 1, 0}, {0, 0, 1},
		{-1, 0, 0}, {0, -1, 0}, {0, 0, -1},
		{1, 2, 3}, {-3, 2, -1}, {0.5, -0.25, 4},
	}
	for _, a := range vectors {
		for _, b := range vectors {
			got := FlatIntensity(a, b)
			assert.GreaterOrEqual(t, got, float32(0.2)-1e-6)
			assert.LessOrEqual(t, got, float32(1)+1e-6)
			assert.False(t, math32.IsNaN(got))
		}
	}
}

func TestFlatIntensityDegenerate(t *testing.T) {
	// Parallel derivatives and zero derivatives both produce a
	// zero-length cross product.
	assert.InDelta(t, 0.2, FlatIntensity(Vector{1, 2, 3}, Vector{2, 4, 6}), 1e-6)
	assert.InDelta(t, 0.2, FlatIntensity(Vector{}, Vector{0, 1, 0}), 1e-6)
	assert.InDelta(t, 0.2, FlatIntensity(Vector{}, Vector{}), 1e-6)
}

func TestFlatShaderVertex(t *testing.T) {
	viewProj := Perspective(45, 16.0/9, 0.1, 100).
		Mul(LookAt(Vector{10, 5, 10}, Vector{}, Vector{Y: 1}))
	model := Translate(Vector{1, 2, 3}).Mul(RotateY(0.5))
	shader := NewFlatShader(viewProj, model)

	in := Vert(Vector{0.5, -0.25, 1}, RGB(1, 0.5, 0))
	out := shader.Vertex(in)

	// World position is the model transform alone.
	world := model.MulPosition(in.Position)
	assert.InDelta(t, world.X, out.World.X, 1e-5)
	assert.InDelta(t, world.Y, out.World.Y, 1e-5)
	assert.InDelta(t, world.Z, out.World.Z, 1e-5)

	// Clip position matches the composed matrix applied directly.
	clip := viewProj.Mul(model).MulPositionW(in.Position)
	assert.InDelta(t, clip.X, out.Output.X, 1e-4)
	assert.InDelta(t, clip.Y, out.Output.Y, 1e-4)
	assert.InDelta(t, clip.Z, out.Output.Z, 1e-4)
	assert.InDelta(t, clip.W, out.Output.W, 1e-4)

	// Color and object-space position pass through untouched.
	assert.Equal(t, in.Color, out.Color)
	assert.Equal(t, in.Position, out.Position)
}

func TestFlatShaderFragmentOpaque(t *testing.T) {
	shader := NewFlatShader(Identity(), Identity())
	v := Vert(Vector{}, Color{0.5, 0.5, 0.5, 0.25})

	c := shader.Fragment(v, Vector{1, 0, -1}, Vector{0, 1, -1})
	require.InDelta(t, 1.0, float64(c.A), 1e-6)
	assert.InDelta(t, 0.5, c.R, 1e-5)

	// Alpha stays 1 through the clamped branch as well.
	c = shader.Fragment(v, Vector{}, Vector{})
	assert.InDelta(t, 1.0, float64(c.A), 1e-6)
	assert.InDelta(t, 0.1, c.R, 1e-5)
}

func TestFlatShaderModelAffectsWorldOnly(t *testing.T) {
	// Two shaders sharing a view-projection but differing in model
	// matrix must disagree on both world and clip positions.
	viewProj := Orthographic(-2, 2, -2, 2, -2, 2)
	a := NewFlatShader(viewProj, Identity())
	b := NewFlatShader(viewProj, Translate(Vector{X: 1}))

	in := Vert(Vector{0.25, 0.25, 0}, White)
	va := a.Vertex(in)
	vb := b.Vertex(in)
	assert.InDelta(t, va.World.X+1, vb.World.X, 1e-6)
	assert.InDelta(t, va.Output.X+0.5, vb.Output.X, 1e-6)
}
