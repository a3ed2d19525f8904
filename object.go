package glint

// Object pairs a mesh with a model matrix. The renderer rewrites the
// uniform block's model matrix from this before each object's draw.
type Object struct {
	Mesh   *Mesh
	Matrix Matrix
}

func NewObject(mesh *Mesh) *Object {
	return &Object{Mesh: mesh, Matrix: Identity()}
}

func NewObjectAt(mesh *Mesh, t Transform) *Object {
	return &Object{Mesh: mesh, Matrix: t.Matrix()}
}

// SetTransform replaces the model matrix.
func (o *Object) SetTransform(t Transform) {
	o.Matrix = t.Matrix()
}

func (o *Object) BoundingBox() Box {
	if o.Mesh == nil {
		return Box{}
	}
	box := o.Mesh.BoundingBox()
	return Box{o.Matrix.MulPosition(box.Min), o.Matrix.MulPosition(box.Max)}
}
