// Package gpu renders the flat-shading pipeline through WebGPU.
// It owns the device, the surface, the uniform block, and the
// triangle/line pipelines; meshes are uploaded once and drawn per
// frame with a per-object model matrix.
package gpu

import (
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/glint3d/glint"
)

//go:embed shader.wgsl
var shaderSource string

// uniformAlign is the required alignment of dynamic uniform buffer
// offsets.
const uniformAlign = 256

// Object pairs an uploaded mesh with its model matrix.
type Object struct {
	Mesh   *Mesh
	Matrix glint.Matrix
}

// Renderer drives the GPU pipeline: one uniform bind group at
// group 0 binding 0 (view_proj then model), a depth-tested triangle
// pipeline with back-face culling, and a line pipeline without
// culling, both drawing to a single color attachment.
type Renderer struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface

	format     wgpu.TextureFormat
	width      int
	height     int
	configured bool

	trianglePipeline *wgpu.RenderPipeline
	linePipeline     *wgpu.RenderPipeline

	uniformLayout    *wgpu.BindGroupLayout
	uniformBuffer    *wgpu.Buffer
	uniformBindGroup *wgpu.BindGroup
	uniformCapacity  int

	depthTexture *wgpu.Texture
	depthView    *wgpu.TextureView

	camera glint.Camera
	view   glint.Matrix
	proj   glint.Matrix

	clearColor wgpu.Color
}

// NewRenderer creates a renderer for the given surface. The surface
// must have been created from the same instance. Call Resize before
// the first Render to configure the surface.
func NewRenderer(instance *wgpu.Instance, surface *wgpu.Surface) (*Renderer, error) {
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
		CompatibleSurface: surface,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: requesting adapter: %w", err)
	}

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: requesting device: %w", err)
	}

	r := &Renderer{
		instance:   instance,
		adapter:    adapter,
		device:     device,
		queue:      device.GetQueue(),
		surface:    surface,
		camera:     glint.DefaultCamera(),
		view:       glint.LookAt(glint.Vector{X: 10, Y: 5, Z: 10}, glint.Vector{}, glint.Vector{Y: 1}),
		proj:       glint.Identity(),
		clearColor: wgpu.Color{R: 0.05, G: 0.05, B: 0.1, A: 1},
	}

	caps := surface.GetCapabilities(adapter)
	r.format = caps.Formats[0]
	for _, f := range caps.Formats {
		if f == wgpu.TextureFormatBGRA8UnormSrgb || f == wgpu.TextureFormatRGBA8UnormSrgb {
			r.format = f
			break
		}
	}

	if err := r.createPipelines(); err != nil {
		r.Release()
		return nil, err
	}
	if err := r.ensureUniformCapacity(16); err != nil {
		r.Release()
		return nil, err
	}
	return r, nil
}

func (r *Renderer) createPipelines() error {
	shader, err := r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Flat Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: shaderSource,
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: compiling shader: %w", err)
	}
	defer shader.Release()

	r.uniformLayout, err = r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Uniform Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{{
			Binding:    0,
			Visibility: wgpu.ShaderStageVertex,
			Buffer: wgpu.BufferBindingLayout{
				Type:             wgpu.BufferBindingTypeUniform,
				HasDynamicOffset: true,
				MinBindingSize:   UniformsSize,
			},
		}},
	})
	if err != nil {
		return fmt.Errorf("gpu: creating bind group layout: %w", err)
	}

	layout, err := r.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Render Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{r.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("gpu: creating pipeline layout: %w", err)
	}
	defer layout.Release()

	r.trianglePipeline, err = r.createPipeline(shader, layout, "Triangle Pipeline",
		wgpu.PrimitiveTopologyTriangleList, wgpu.CullModeBack)
	if err != nil {
		return err
	}
	r.linePipeline, err = r.createPipeline(shader, layout, "Line Pipeline",
		wgpu.PrimitiveTopologyLineList, wgpu.CullModeNone)
	return err
}

func (r *Renderer) createPipeline(shader *wgpu.ShaderModule, layout *wgpu.PipelineLayout, label string, topology wgpu.PrimitiveTopology, cull wgpu.CullMode) (*wgpu.RenderPipeline, error) {
	pipeline, err := r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  label,
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers:    vertexBufferLayout(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    r.format,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  topology,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  cull,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth32Float,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: creating %s: %w", label, err)
	}
	return pipeline, nil
}

// ensureUniformCapacity sizes the dynamic uniform buffer for at
// least n objects. Each object's uniform block lives at its own
// 256-byte-aligned offset, so the block stays immutable for the
// duration of its draw.
func (r *Renderer) ensureUniformCapacity(n int) error {
	if n <= r.uniformCapacity {
		return nil
	}
	if r.uniformBindGroup != nil {
		r.uniformBindGroup.Release()
		r.uniformBindGroup = nil
	}
	if r.uniformBuffer != nil {
		r.uniformBuffer.Release()
		r.uniformBuffer = nil
	}
	buffer, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Uniform Buffer",
		Size:  uint64(n * uniformAlign),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("gpu: creating uniform buffer: %w", err)
	}
	bindGroup, err := r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Uniform Bind Group",
		Layout: r.uniformLayout,
		Entries: []wgpu.BindGroupEntry{{
			Binding: 0,
			Buffer:  buffer,
			Offset:  0,
			Size:    UniformsSize,
		}},
	})
	if err != nil {
		buffer.Release()
		return fmt.Errorf("gpu: creating uniform bind group: %w", err)
	}
	r.uniformBuffer = buffer
	r.uniformBindGroup = bindGroup
	r.uniformCapacity = n
	return nil
}

// Resize configures the surface and depth buffer for a new size and
// updates the projection for the new aspect ratio.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.width = width
	r.height = height

	caps := r.surface.GetCapabilities(r.adapter)
	r.surface.Configure(r.adapter, r.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      r.format,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	})
	r.configured = true

	if r.depthView != nil {
		r.depthView.Release()
		r.depthView = nil
	}
	if r.depthTexture != nil {
		r.depthTexture.Release()
		r.depthTexture = nil
	}
	depth, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth32Float,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		slog.Error("gpu: creating depth texture", "err", err)
		r.configured = false
		return
	}
	view, err := depth.CreateView(nil)
	if err != nil {
		slog.Error("gpu: creating depth view", "err", err)
		depth.Release()
		r.configured = false
		return
	}
	r.depthTexture = depth
	r.depthView = view

	r.proj = r.camera.Projection(float32(width) / float32(height))
}

// SetClearColor sets the color the frame is cleared to.
func (r *Renderer) SetClearColor(c glint.Color) {
	r.clearColor = wgpu.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B), A: float64(c.A)}
}

// SetViewMatrix replaces the view matrix, e.g. from an external
// camera controller.
func (r *Renderer) SetViewMatrix(view glint.Matrix) {
	r.view = view
}

// SetCamera replaces the camera and recomputes the projection.
func (r *Renderer) SetCamera(c glint.Camera) {
	r.camera = c
	if r.height > 0 {
		r.proj = r.camera.Projection(float32(r.width) / float32(r.height))
	}
}

// Device exposes the wgpu device for mesh uploads.
func (r *Renderer) Device() *wgpu.Device {
	return r.device
}

// CreateMesh uploads a CPU mesh, returning one GPU object per
// topology present: triangles, then lines.
func (r *Renderer) CreateMesh(mesh *glint.Mesh) ([]*Mesh, error) {
	vertices, indices, err := mesh.Buffers()
	if err != nil {
		return nil, err
	}
	tc := mesh.TriangleIndexCount()
	var out []*Mesh
	if tc > 0 {
		m, err := NewMesh(r.device, vertices, indices[:tc])
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if tc < len(indices) {
		m, err := NewLineMesh(r.device, vertices, indices[tc:])
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// Render draws the objects for one frame and presents it. All
// object uniform blocks are written before the pass begins; each
// draw binds its own block at a dynamic offset.
func (r *Renderer) Render(objects []*Object) error {
	if !r.configured {
		return nil
	}
	if err := r.ensureUniformCapacity(len(objects)); err != nil {
		return err
	}

	viewProj := r.proj.Mul(r.view)
	for i, o := range objects {
		u := glint.Uniforms{ViewProj: viewProj, Model: o.Matrix}
		r.queue.WriteBuffer(r.uniformBuffer, uint64(i*uniformAlign), uniformBytes(u))
	}

	frame, err := r.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("gpu: acquiring frame: %w", err)
	}
	view, err := frame.CreateView(nil)
	if err != nil {
		frame.Release()
		return fmt.Errorf("gpu: creating frame view: %w", err)
	}
	defer view.Release()
	defer frame.Release()

	encoder, err := r.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("gpu: creating command encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "Render Pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: r.clearColor,
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            r.depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})

	// Triangles first, then lines, to minimize pipeline switches.
	r.drawTopology(pass, objects, wgpu.PrimitiveTopologyTriangleList, r.trianglePipeline)
	r.drawTopology(pass, objects, wgpu.PrimitiveTopologyLineList, r.linePipeline)
	pass.End()
	pass.Release()

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("gpu: finishing encoder: %w", err)
	}
	r.queue.Submit(cmd)
	cmd.Release()
	r.surface.Present()
	return nil
}

func (r *Renderer) drawTopology(pass *wgpu.RenderPassEncoder, objects []*Object, topology wgpu.PrimitiveTopology, pipeline *wgpu.RenderPipeline) {
	bound := false
	for i, o := range objects {
		if o.Mesh == nil || o.Mesh.topology != topology {
			continue
		}
		if !bound {
			pass.SetPipeline(pipeline)
			bound = true
		}
		pass.SetBindGroup(0, r.uniformBindGroup, []uint32{uint32(i * uniformAlign)})
		pass.SetVertexBuffer(0, o.Mesh.vertexBuffer, 0, wgpu.WholeSize)
		pass.SetIndexBuffer(o.Mesh.indexBuffer, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
		pass.DrawIndexed(o.Mesh.numIndices, 1, 0, 0, 0)
	}
}

// Release frees all GPU resources owned by the renderer.
func (r *Renderer) Release() {
	if r.depthView != nil {
		r.depthView.Release()
		r.depthView = nil
	}
	if r.depthTexture != nil {
		r.depthTexture.Release()
		r.depthTexture = nil
	}
	if r.uniformBindGroup != nil {
		r.uniformBindGroup.Release()
		r.uniformBindGroup = nil
	}
	if r.uniformBuffer != nil {
		r.uniformBuffer.Release()
		r.uniformBuffer = nil
	}
	if r.trianglePipeline != nil {
		r.trianglePipeline.Release()
		r.trianglePipeline = nil
	}
	if r.linePipeline != nil {
		r.linePipeline.Release()
		r.linePipeline = nil
	}
	if r.uniformLayout != nil {
		r.uniformLayout.Release()
		r.uniformLayout = nil
	}
	if r.device != nil {
		r.device.Release()
		r.device = nil
	}
}
