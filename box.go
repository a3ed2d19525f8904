package glint

import "github.com/chewxy/math32"

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max Vector
}

// EmptyBox is a box that extends any box it is combined with.
var EmptyBox = Box{
	Vector{math32.MaxFloat32, math32.MaxFloat32, math32.MaxFloat32},
	Vector{-math32.MaxFloat32, -math32.MaxFloat32, -math32.MaxFloat32},
}

// BoxForBoxes returns the union of the given boxes.
func BoxForBoxes(boxes []Box) Box {
	if len(boxes) == 0 {
		return Box{}
	}
	box := boxes[0]
	for _, b := range boxes[1:] {
		box = box.Extend(b)
	}
	return box
}

func (a Box) Extend(b Box) Box {
	return Box{a.Min.Min(b.Min), a.Max.Max(b.Max)}
}

func (a Box) Center() Vector {
	return a.Min.Lerp(a.Max, 0.5)
}

func (a Box) Size() Vector {
	return a.Max.Sub(a.Min)
}

// Corners returns the eight corner points of the box.
func (a Box) Corners() []Vector {
	x0, y0, z0 := a.Min.X, a.Min.Y, a.Min.Z
	x1, y1, z1 := a.Max.X, a.Max.Y, a.Max.Z
	return []Vector{
		{x0, y0, z0}, {x1, y0, z0}, {x0, y1, z0}, {x1, y1, z0},
		{x0, y0, z1}, {x1, y0, z1}, {x0, y1, z1}, {x1, y1, z1},
	}
}
