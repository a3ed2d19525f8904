package glint

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"

	"github.com/nfnt/resize"
)

// Renderer is the software front end of the pipeline: it owns the
// rasterization context, the camera matrices, and the object list,
// and produces a frame as an image. It mirrors the contract a GPU
// renderer honors: one uniform write per object draw, depth-tested
// triangle and line topologies, a single color target.
type Renderer struct {
	width  int
	height int
	scale  int

	camera Camera
	view   Matrix
	proj   Matrix

	ClearColor Color
	Wireframe  bool

	objects []*Object
}

// NewRenderer returns a renderer producing width x height frames,
// with the camera at (10, 5, 10) looking at the origin.
func NewRenderer(width, height int) *Renderer {
	r := &Renderer{
		width:      width,
		height:     height,
		scale:      1,
		camera:     DefaultCamera(),
		ClearColor: Color{0.05, 0.05, 0.1, 1},
	}
	r.view = LookAt(Vector{10, 5, 10}, Vector{}, Vector{0, 1, 0})
	r.proj = r.camera.Projection(r.aspect())
	return r
}

func (r *Renderer) aspect() float32 {
	return float32(r.width) / float32(r.height)
}

// SetScale sets the supersampling factor: frames are rasterized at
// scale times the output resolution and downsampled.
func (r *Renderer) SetScale(scale int) {
	if scale < 1 {
		scale = 1
	}
	r.scale = scale
}

// Resize changes the output size and recomputes the projection for
// the new aspect ratio.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.width = width
	r.height = height
	r.proj = r.camera.Projection(r.aspect())
}

// SetCamera replaces the camera and recomputes the projection.
func (r *Renderer) SetCamera(c Camera) {
	r.camera = c
	r.proj = r.camera.Projection(r.aspect())
}

// SetViewMatrix replaces the view matrix, e.g. from an external
// camera controller.
func (r *Renderer) SetViewMatrix(view Matrix) {
	r.view = view
}

// SetView positions the camera with a look-at view.
func (r *Renderer) SetView(eye, center, up Vector) {
	r.view = LookAt(eye, center, up)
}

// ViewProjection returns the current proj * view matrix, the value
// written to the uniform block's first field.
func (r *Renderer) ViewProjection() Matrix {
	return r.proj.Mul(r.view)
}

func (r *Renderer) AddObject(o *Object) {
	r.objects = append(r.objects, o)
}

func (r *Renderer) AddObjects(objects ...*Object) {
	r.objects = append(r.objects, objects...)
}

// Objects returns the draw list.
func (r *Renderer) Objects() []*Object {
	return r.objects
}

// Render rasterizes all objects and returns the frame. The uniform
// block is rewritten once per object before its draw, and is
// immutable during it.
func (r *Renderer) Render() image.Image {
	w := r.width * r.scale
	h := r.height * r.scale

	shader := NewFlatShader(r.ViewProjection(), Identity())
	dc := NewContext(w, h, shader)
	dc.ClearColor = r.ClearColor
	dc.Wireframe = r.Wireframe
	dc.ClearColorBuffer()

	for _, o := range r.objects {
		if o.Mesh == nil {
			log.Printf("glint: skipping object with nil mesh")
			continue
		}
		shader.Uniforms.Model = o.Matrix
		dc.DrawMesh(o.Mesh)
	}

	if r.scale > 1 {
		return resize.Resize(uint(r.width), uint(r.height), dc.Image(), resize.Bilinear)
	}
	return dc.Image()
}

// WritePNG renders a frame and encodes it as PNG to w.
func (r *Renderer) WritePNG(w io.Writer) error {
	if err := png.Encode(w, r.Render()); err != nil {
		return fmt.Errorf("glint: encoding frame: %w", err)
	}
	return nil
}

// SavePNG renders a frame and writes it to path.
func (r *Renderer) SavePNG(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("glint: creating %s: %w", path, err)
	}
	defer file.Close()
	return r.WritePNG(file)
}
