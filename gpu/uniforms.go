package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/glint3d/glint"
)

// UniformsSize is the byte size of the uniform block: two 4x4
// float32 matrices, view_proj followed by model.
const UniformsSize = 2 * 16 * 4

// packUniforms flattens the uniform block into the column-major
// float32 layout WGSL expects, view_proj first.
func packUniforms(u glint.Uniforms) [32]float32 {
	var out [32]float32
	vp := u.ViewProj.ColMajor()
	m := u.Model.ColMajor()
	copy(out[:16], vp[:])
	copy(out[16:], m[:])
	return out
}

// uniformBytes returns the uniform block as bytes ready for a
// queue write.
func uniformBytes(u glint.Uniforms) []byte {
	packed := packUniforms(u)
	return wgpu.ToBytes(packed[:])
}
