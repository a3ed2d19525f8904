package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/glint3d/glint"
)

// VertexStride is the byte size of one vertex record: 3-float
// position followed by 3-float color.
const VertexStride = 6 * 4

// vertexBufferLayout describes the positional vertex record layout:
// float32x3 position at location 0, float32x3 color at location 1.
func vertexBufferLayout() []wgpu.VertexBufferLayout {
	return []wgpu.VertexBufferLayout{{
		ArrayStride: VertexStride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{
				Format:         wgpu.VertexFormatFloat32x3,
				Offset:         0,
				ShaderLocation: 0,
			},
			{
				Format:         wgpu.VertexFormatFloat32x3,
				Offset:         3 * 4,
				ShaderLocation: 1,
			},
		},
	}}
}

// packVertices interleaves vertex positions and colors into the
// buffer layout above. The alpha channel never crosses the GPU
// boundary; the fragment stage emits a fixed 1.0.
func packVertices(vertices []glint.Vertex) []float32 {
	out := make([]float32, 0, len(vertices)*6)
	for _, v := range vertices {
		out = append(out,
			v.Position.X, v.Position.Y, v.Position.Z,
			v.Color.R, v.Color.G, v.Color.B)
	}
	return out
}

// Mesh holds the GPU buffers for one uploaded mesh. Buffers are
// immutable for the mesh's lifetime.
type Mesh struct {
	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	numIndices   uint32
	topology     wgpu.PrimitiveTopology
}

// NewMesh uploads vertices and triangle-list indices.
func NewMesh(device *wgpu.Device, vertices []glint.Vertex, indices []uint16) (*Mesh, error) {
	return NewMeshWithTopology(device, vertices, indices, wgpu.PrimitiveTopologyTriangleList)
}

// NewLineMesh uploads vertices and line-list indices, for grids and
// wireframes.
func NewLineMesh(device *wgpu.Device, vertices []glint.Vertex, indices []uint16) (*Mesh, error) {
	return NewMeshWithTopology(device, vertices, indices, wgpu.PrimitiveTopologyLineList)
}

// NewMeshWithTopology uploads a mesh with an explicit primitive
// topology.
func NewMeshWithTopology(device *wgpu.Device, vertices []glint.Vertex, indices []uint16, topology wgpu.PrimitiveTopology) (*Mesh, error) {
	packed := packVertices(vertices)
	vb, err := device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Vertex Buffer",
		Contents: wgpu.ToBytes(packed),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: creating vertex buffer: %w", err)
	}
	ib, err := device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Index Buffer",
		Contents: wgpu.ToBytes(indices),
		Usage:    wgpu.BufferUsageIndex,
	})
	if err != nil {
		vb.Release()
		return nil, fmt.Errorf("gpu: creating index buffer: %w", err)
	}
	return &Mesh{
		vertexBuffer: vb,
		indexBuffer:  ib,
		numIndices:   uint32(len(indices)),
		topology:     topology,
	}, nil
}

// NumIndices returns the index count drawn for this mesh.
func (m *Mesh) NumIndices() uint32 {
	return m.numIndices
}

// Topology returns the primitive topology the mesh was uploaded for.
func (m *Mesh) Topology() wgpu.PrimitiveTopology {
	return m.topology
}

// Release frees the GPU buffers.
func (m *Mesh) Release() {
	if m.vertexBuffer != nil {
		m.vertexBuffer.Release()
		m.vertexBuffer = nil
	}
	if m.indexBuffer != nil {
		m.indexBuffer.Release()
		m.indexBuffer = nil
	}
}
