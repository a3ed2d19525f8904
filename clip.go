package glint

// Homogeneous clipping against the six view-volume planes,
// applied after the vertex stage and before the perspective divide.

type clipPlane func(VectorW) float32

var clipPlanes = []clipPlane{
	func(v VectorW) float32 { return v.W + v.X },
	func(v VectorW) float32 { return v.W - v.X },
	func(v VectorW) float32 { return v.W + v.Y },
	func(v VectorW) float32 { return v.W - v.Y },
	func(v VectorW) float32 { return v.W + v.Z },
	func(v VectorW) float32 { return v.W - v.Z },
}

func clipPolygon(vertices []Vertex, plane clipPlane) []Vertex {
	var out []Vertex
	n := len(vertices)
	for i := 0; i < n; i++ {
		a := vertices[i]
		b := vertices[(i+1)%n]
		da := plane(a.Output)
		db := plane(b.Output)
		if da >= 0 {
			out = append(out, a)
		}
		if (da >= 0) != (db >= 0) {
			t := da / (da - db)
			out = append(out, lerpVertexes(a, b, t))
		}
	}
	return out
}

// ClipTriangle clips a shaded triangle against the view volume,
// returning zero or more triangles fanned from the clipped polygon.
func ClipTriangle(t *Triangle) []*Triangle {
	vertices := []Vertex{t.V1, t.V2, t.V3}
	for _, plane := range clipPlanes {
		vertices = clipPolygon(vertices, plane)
		if len(vertices) == 0 {
			return nil
		}
	}
	result := make([]*Triangle, 0, len(vertices)-2)
	for i := 2; i < len(vertices); i++ {
		result = append(result, NewTriangle(vertices[0], vertices[i-1], vertices[i]))
	}
	return result
}

// ClipLine clips a shaded line segment against the view volume.
// Returns nil if the segment lies entirely outside.
func ClipLine(l *Line) *Line {
	v1, v2 := l.V1, l.V2
	for _, plane := range clipPlanes {
		d1 := plane(v1.Output)
		d2 := plane(v2.Output)
		if d1 < 0 && d2 < 0 {
			return nil
		}
		if d1 < 0 {
			v1 = lerpVertexes(v1, v2, d1/(d1-d2))
		} else if d2 < 0 {
			v2 = lerpVertexes(v2, v1, d2/(d2-d1))
		}
	}
	return NewLine(v1, v2)
}
