package glint

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func assertVector(t *testing.T, expected, got Vector, delta float64) {
	t.Helper()
	assert.InDelta(t, expected.X, got.X, delta)
	assert.InDelta(t, expected.Y, got.Y, delta)
	assert.InDelta(t, expected.Z, got.Z, delta)
}

func TestMatrixIdentity(t *testing.T) {
	m := Translate(Vector{1, 2, 3}).Mul(RotateZ(0.7))
	assert.Equal(t, m, m.Mul(Identity()))
	assert.Equal(t, m, Identity().Mul(m))
}

func TestMatrixTranslateScale(t *testing.T) {
	p := Vector{1, 2, 3}
	assertVector(t, Vector{3, 1, 6}, Translate(Vector{2, -1, 3}).MulPosition(p), 1e-6)
	assertVector(t, Vector{2, 4, -3}, Scale(Vector{2, 2, -1}).MulPosition(p), 1e-6)

	// Directions ignore translation.
	assertVector(t, p, Translate(Vector{5, 5, 5}).MulDirection(p), 1e-6)
}

func TestMatrixRotate(t *testing.T) {
	half := math32.Pi / 2
	assertVector(t, Vector{0, 0, -1}, RotateY(half).MulPosition(Vector{1, 0, 0}), 1e-6)
	assertVector(t, Vector{0, 1, 0}, RotateZ(half).MulPosition(Vector{1, 0, 0}), 1e-6)
	assertVector(t, Vector{0, 0, 1}, RotateX(half).MulPosition(Vector{0, 1, 0}), 1e-6)

	// Arbitrary-axis rotation by a full turn is the identity.
	m := Rotate(Vector{1, 2, 3}, 2*math32.Pi)
	assertVector(t, Vector{4, -5, 6}, m.MulPosition(Vector{4, -5, 6}), 1e-4)
}

func TestMatrixMulOrder(t *testing.T) {
	// a.Mul(b) applies b first.
	a := Translate(Vector{X: 1})
	b := Scale(Vector{2, 2, 2})
	got := a.Mul(b).MulPosition(Vector{1, 0, 0})
	assertVector(t, Vector{3, 0, 0}, got, 1e-6)
}

func TestMatrixClipEqualsComposition(t *testing.T) {
	// Transforming through world space and transforming by the
	// composed matrix agree.
	viewProj := Perspective(60, 4.0/3, 0.5, 50).
		Mul(LookAt(Vector{3, 4, 5}, Vector{0, 1, 0}, Vector{Y: 1}))
	model := Translate(Vector{-1, 0, 2}).Mul(RotateX(0.3)).Mul(Scale(Vector{2, 1, 1}))

	for _, p := range []Vector{{}, {1, 1, 1}, {-0.5, 2, -3}} {
		world := model.MulPositionW(p)
		viaWorld := viewProj.MulVectorW(world)
		direct := viewProj.Mul(model).MulPositionW(p)
		assert.InDelta(t, direct.X, viaWorld.X, 1e-4)
		assert.InDelta(t, direct.Y, viaWorld.Y, 1e-4)
		assert.InDelta(t, direct.Z, viaWorld.Z, 1e-4)
		assert.InDelta(t, direct.W, viaWorld.W, 1e-4)
	}
}

func TestMatrixLookAt(t *testing.T) {
	eye := Vector{0, 0, 5}
	view := LookAt(eye, Vector{}, Vector{Y: 1})

	// The eye maps to the view-space origin, the target to -Z.
	assertVector(t, Vector{}, view.MulPosition(eye), 1e-6)
	assertVector(t, Vector{0, 0, -5}, view.MulPosition(Vector{}), 1e-6)

	// +X in world stays +X for a camera on the +Z axis.
	assertVector(t, Vector{1, 0, -5}, view.MulPosition(Vector{1, 0, 0}), 1e-6)
}

func TestMatrixOrthographic(t *testing.T) {
	m := Orthographic(-2, 2, -1, 1, -1, 1)
	assertVector(t, Vector{1, 1, 1}, m.MulPosition(Vector{2, 1, -1}), 1e-6)
	assertVector(t, Vector{-1, -1, -1}, m.MulPosition(Vector{-2, -1, 1}), 1e-6)
	assertVector(t, Vector{}, m.MulPosition(Vector{}), 1e-6)
}

func TestMatrixPerspective(t *testing.T) {
	m := Perspective(90, 1, 1, 10)

	// A point on the near plane straight ahead maps to NDC z = -1.
	near := m.MulPositionW(Vector{0, 0, -1})
	assert.InDelta(t, -1.0, near.Z/near.W, 1e-5)

	// A point on the far plane maps to NDC z = +1.
	far := m.MulPositionW(Vector{0, 0, -10})
	assert.InDelta(t, 1.0, far.Z/far.W, 1e-5)

	// At 90 degrees fovy the frustum edge hits NDC y = 1.
	edge := m.MulPositionW(Vector{0, 1, -1})
	assert.InDelta(t, 1.0, edge.Y/edge.W, 1e-5)
}

func TestMatrixInverse(t *testing.T) {
	m := Translate(Vector{1, -2, 3}).
		Mul(Rotate(Vector{1, 1, 0}, 0.8)).
		Mul(Scale(Vector{2, 3, 4}))
	inv := m.Inverse()

	p := Vector{0.5, -1.5, 2}
	assertVector(t, p, inv.MulPosition(m.MulPosition(p)), 1e-4)

	round := m.Mul(inv)
	assert.InDelta(t, 1, round.X00, 1e-4)
	assert.InDelta(t, 1, round.X11, 1e-4)
	assert.InDelta(t, 1, round.X22, 1e-4)
	assert.InDelta(t, 1, round.X33, 1e-4)
	assert.InDelta(t, 0, round.X01, 1e-4)
	assert.InDelta(t, 0, round.X30, 1e-4)
}

func TestMatrixTransposeDeterminant(t *testing.T) {
	m := RotateY(0.4)
	assert.InDelta(t, 1.0, m.Determinant(), 1e-5)
	assert.Equal(t, m.X01, m.Transpose().X10)
	assert.Equal(t, m.X23, m.Transpose().X32)

	assert.InDelta(t, 24.0, Scale(Vector{2, 3, 4}).Determinant(), 1e-4)
}

func TestMatrixColMajor(t *testing.T) {
	m := Translate(Vector{1, 2, 3})
	f := m.ColMajor()

	// Column-major order puts the translation in elements 12..14.
	assert.Equal(t, float32(1), f[12])
	assert.Equal(t, float32(2), f[13])
	assert.Equal(t, float32(3), f[14])
	assert.Equal(t, float32(1), f[15])
	assert.Equal(t, float32(1), f[0])
	assert.Equal(t, float32(0), f[3])
}

func TestScreenMapping(t *testing.T) {
	m := Screen(640, 480)

	// NDC origin maps to the framebuffer center, Y flipped.
	assertVector(t, Vector{320, 240, 0.5}, m.MulPosition(Vector{}), 1e-4)
	assertVector(t, Vector{640, 0, 1}, m.MulPosition(Vector{1, 1, 1}), 1e-4)
	assertVector(t, Vector{0, 480, 0}, m.MulPosition(Vector{-1, -1, -1}), 1e-4)
}
