package glint

// Camera defines perspective viewing parameters. Its only job at
// the pipeline boundary is producing a view-projection matrix;
// interactive controls live outside this library.
type Camera struct {
	FOV  float32 // vertical field of view, degrees
	Near float32
	Far  float32
}

// DefaultCamera matches the renderer's startup view parameters.
func DefaultCamera() Camera {
	return Camera{FOV: 45, Near: 0.1, Far: 100}
}

// Projection returns the camera's perspective projection matrix for
// the given aspect ratio.
func (c Camera) Projection(aspect float32) Matrix {
	return Perspective(c.FOV, aspect, c.Near, c.Far)
}

// ViewProjection composes a look-at view matrix with the projection:
// proj * view.
func (c Camera) ViewProjection(eye, center, up Vector, aspect float32) Matrix {
	return c.Projection(aspect).Mul(LookAt(eye, center, up))
}
