package glint

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ortho looks down -Z with the origin centered, no view transform.
func ortho() Matrix {
	return Orthographic(-2, 2, -2, 2, -2, 2)
}

func litPixels(dc *Context, clear color.NRGBA) []color.NRGBA {
	var out []color.NRGBA
	for y := 0; y < dc.Height; y++ {
		for x := 0; x < dc.Width; x++ {
			c := dc.ColorBuffer.NRGBAAt(x, y)
			if c != clear {
				out = append(out, c)
			}
		}
	}
	return out
}

func TestRasterizeFlatTriangle(t *testing.T) {
	dc := NewContext(64, 64, NewFlatShader(ortho(), Identity()))
	dc.ClearColorBufferWith(Black)

	dc.DrawTriangle(NewTriangleForPoints(
		V(0, 0, 0), V(1, 0, 0), V(0, 1, 0), White))

	// The triangle faces the viewer, so the derivative normal points
	// along the view direction, away from the light: every covered
	// pixel shades at the ambient floor.
	want := color.NRGBA{51, 51, 51, 255}
	assert.Equal(t, want, dc.ColorBuffer.NRGBAAt(36, 28))

	// Flat shading: one constant value across the whole triangle.
	lit := litPixels(dc, Black.NRGBA())
	require.NotEmpty(t, lit)
	assert.Greater(t, len(lit), 50)
	for _, c := range lit {
		assert.Equal(t, want, c)
	}
}

func TestRasterizeLitTriangle(t *testing.T) {
	// Seen from the -Z side the derivative normal comes out as
	// (0, 0, 1), giving dot(n, normalize(1,1,1)) = 1/sqrt(3).
	viewProj := Orthographic(-2, 2, -2, 2, 0.1, 10).
		Mul(LookAt(Vector{0, 0, -5}, Vector{}, Vector{Y: 1}))
	dc := NewContext(64, 64, NewFlatShader(viewProj, Identity()))
	dc.ClearColorBufferWith(Black)

	dc.DrawTriangle(NewTriangleForPoints(
		V(0, 0, 0), V(0, 1, 0), V(1, 0, 0), White))

	c := dc.ColorBuffer.NRGBAAt(30, 30)
	require.Equal(t, uint8(255), c.A)
	assert.InDelta(t, 147, int(c.R), 1) // 255 / sqrt(3)
	assert.Equal(t, c.R, c.G)
	assert.Equal(t, c.R, c.B)
}

func TestRasterizeDegenerateTriangle(t *testing.T) {
	dc := NewContext(32, 32, NewFlatShader(ortho(), Identity()))
	dc.ClearColorBufferWith(Black)
	dc.Cull = CullNone

	// Collinear vertices cover zero area and must not touch the
	// buffers.
	dc.DrawTriangle(NewTriangleForPoints(
		V(0, 0, 0), V(0.5, 0.5, 0), V(1, 1, 0), White))

	assert.Empty(t, litPixels(dc, Black.NRGBA()))
}

func TestRasterizeDepthOrder(t *testing.T) {
	red := NewTriangleForPoints(V(0, 0, 1), V(1, 0, 1), V(0, 1, 1), Color{1, 0, 0, 1})
	green := NewTriangleForPoints(V(0, 0, -1), V(1, 0, -1), V(0, 1, -1), Color{0, 1, 0, 1})
	want := color.NRGBA{51, 0, 0, 255}

	// The red triangle is closer to the viewer and must win
	// regardless of submission order.
	for _, order := range [][]*Triangle{{green, red}, {red, green}} {
		dc := NewContext(64, 64, NewFlatShader(ortho(), Identity()))
		dc.ClearColorBufferWith(Black)
		for _, tri := range order {
			dc.DrawTriangle(tri)
		}
		assert.Equal(t, want, dc.ColorBuffer.NRGBAAt(36, 28))
	}
}

func TestRasterizeBackFaceCull(t *testing.T) {
	dc := NewContext(64, 64, NewFlatShader(ortho(), Identity()))
	dc.ClearColorBufferWith(Black)

	// Reversed winding: culled by default, drawn with CullNone.
	tri := NewTriangleForPoints(V(0, 0, 0), V(0, 1, 0), V(1, 0, 0), White)
	dc.DrawTriangle(tri)
	assert.Empty(t, litPixels(dc, Black.NRGBA()))

	dc.Cull = CullNone
	dc.DrawTriangle(tri)
	assert.NotEmpty(t, litPixels(dc, Black.NRGBA()))
}

func TestRasterizeWireframe(t *testing.T) {
	dc := NewContext(64, 64, NewFlatShader(ortho(), Identity()))
	dc.ClearColorBufferWith(Black)
	dc.Wireframe = true

	dc.DrawTriangle(NewTriangleForPoints(
		V(-1, -1, 0), V(1, -1, 0), V(-1, 1, 0), White))

	lit := litPixels(dc, Black.NRGBA())
	require.NotEmpty(t, lit)

	// Outline only: far fewer pixels than the filled interior.
	assert.Less(t, len(lit), 64*64/4)
}

func TestDrawLine(t *testing.T) {
	dc := NewContext(64, 64, NewFlatShader(ortho(), Identity()))
	dc.ClearColorBufferWith(Black)

	dc.DrawLine(NewLineForPoints(V(-1, 0, 0), V(1, 0, 0), White))

	// Line quads have collinear world positions, so their derivative
	// cross product vanishes and they shade at the ambient floor.
	c := dc.ColorBuffer.NRGBAAt(32, 32)
	assert.Equal(t, color.NRGBA{51, 51, 51, 255}, c)
}

func TestDrawMeshParallel(t *testing.T) {
	// DrawMesh fans triangles across goroutines. With disjoint
	// triangles the result must be identical to serial submission.
	var triangles []*Triangle
	colors := []Color{{1, 0, 0, 1}, {0, 1, 0, 1}, {0, 0, 1, 1}, {1, 1, 0, 1}}
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			x := -1.8 + float32(i)*0.9
			y := -1.8 + float32(j)*0.9
			triangles = append(triangles, NewTriangleForPoints(
				V(x, y, 0), V(x+0.5, y, 0), V(x, y+0.5, 0),
				colors[(i+j)%len(colors)]))
		}
	}
	mesh := NewTriangleMesh(triangles)

	parallel := NewContext(64, 64, NewFlatShader(ortho(), Identity()))
	parallel.ClearColorBufferWith(Black)
	parallel.DrawMesh(mesh)

	serial := NewContext(64, 64, NewFlatShader(ortho(), Identity()))
	serial.ClearColorBufferWith(Black)
	for _, tri := range mesh.Triangles {
		serial.DrawTriangle(tri)
	}

	assert.Equal(t, serial.ColorBuffer.Pix, parallel.ColorBuffer.Pix)
}

func TestRendererRender(t *testing.T) {
	r := NewRenderer(80, 60)
	r.AddObject(NewObject(NewCube(Color{1, 0.5, 0, 1})))

	img := r.Render()
	bounds := img.Bounds()
	require.Equal(t, 80, bounds.Dx())
	require.Equal(t, 60, bounds.Dy())

	// The cube sits at the origin in front of the default camera.
	clear := r.ClearColor.NRGBA()
	found := false
	for y := 0; y < 60 && !found; y++ {
		for x := 0; x < 80; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c != clear {
				found = true
				break
			}
		}
	}
	assert.True(t, found, "cube not visible")
}

func TestRendererSupersample(t *testing.T) {
	r := NewRenderer(40, 30)
	r.SetScale(2)
	r.AddObject(NewObject(NewCube(White)))

	// Rendering at 2x still yields the requested output size.
	img := r.Render()
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 30, img.Bounds().Dy())

	var buf bytes.Buffer
	require.NoError(t, r.WritePNG(&buf))
	assert.NotZero(t, buf.Len())
}
