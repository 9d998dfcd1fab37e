package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/bumpcube/common"
	"github.com/Carmen-Shannon/bumpcube/engine/mesh"
	"github.com/Carmen-Shannon/bumpcube/engine/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// depthFormat is the format of the depth attachment and the pipeline's depth state.
const depthFormat = wgpu.TextureFormatDepth24Plus

type wgpuRendererBackendImpl struct {
	mu     sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        wgpu.TextureFormat
	alphaMode            wgpu.CompositeAlphaMode
	presentMode          wgpu.PresentMode
	sampleCount          MSAASampleCount
	clearColor           wgpu.Color
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	modules          []*wgpu.ShaderModule
	bindGroupLayouts []*wgpu.BindGroupLayout
	pipelineLayout   *wgpu.PipelineLayout
	pipeline         *wgpu.RenderPipeline

	vertexBuffer     *wgpu.Buffer
	indexBuffer      *wgpu.Buffer
	uniformBuffers   map[int]*wgpu.Buffer
	uniformBindGroup *wgpu.BindGroup
	sampler          *wgpu.Sampler

	textures   []*wgpu.Texture
	views      []*wgpu.TextureView
	bindGroups []*wgpu.BindGroup
}

var _ rendererBackend = &wgpuRendererBackendImpl{}

// newWGPURendererBackend creates the instance, surface, adapter, device and queue.
func newWGPURendererBackend(
	surfaceDescriptor *wgpu.SurfaceDescriptor,
	forceFallbackAdapter bool,
	sampleCount MSAASampleCount,
	presentMode PresentMode,
	clearColor wgpu.Color,
) (*wgpuRendererBackendImpl, error) {
	if surfaceDescriptor == nil {
		return nil, errors.New("renderer: nil surface descriptor")
	}

	b := &wgpuRendererBackendImpl{
		instance:       wgpu.CreateInstance(nil),
		sampleCount:    sampleCount,
		clearColor:     clearColor,
		uniformBuffers: make(map[int]*wgpu.Buffer),
	}
	switch presentMode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	adapter, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("failed to request adapter: %w", err)
	}
	b.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Cube Device",
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("failed to request device: %w", err)
	}
	b.device = device
	b.queue = device.GetQueue()

	capabilities := b.surface.GetCapabilities(b.adapter)
	if len(capabilities.Formats) == 0 {
		b.Release()
		return nil, errors.New("renderer: surface reports no formats")
	}
	b.surfaceFormat = capabilities.Formats[0]
	b.alphaMode = capabilities.AlphaModes[0]

	return b, nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   b.alphaMode,
	})

	b.releaseTargets()

	count := uint32(b.sampleCount)
	size := wgpu.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1}

	if count > 1 {
		// The pass draws into the MSAA texture and resolves into the swapchain view.
		tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         "MSAA Texture",
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			return err
		}
		b.msaaTexture = tex
		if b.msaaTextureView, err = tex.CreateView(nil); err != nil {
			return err
		}
	}

	// Depth texture sample count must match the color attachment.
	depth, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Depth Texture",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        depthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return err
	}
	b.depthTexture = depth
	if b.depthTextureView, err = depth.CreateView(nil); err != nil {
		return err
	}

	storeOp := wgpu.StoreOpStore
	if count > 1 {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       b.msaaTextureView, // nil without MSAA; set per frame
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    storeOp,
				ClearValue: b.clearColor,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}

	return nil
}

// releaseTargets frees the size-dependent attachments and drops the pass that referenced
// them, so DrawFrame fails until ConfigureSurface succeeds again. Callers hold b.mu.
func (b *wgpuRendererBackendImpl) releaseTargets() {
	b.renderPassDescriptor = nil
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTextureView = nil
	}
	if b.msaaTexture != nil {
		b.msaaTexture.Release()
		b.msaaTexture = nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
}

func (b *wgpuRendererBackendImpl) RegisterPipeline(p shader.Program, cullMode wgpu.CullMode) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	vertexShader, fragmentShader := p.Vertex(), p.Fragment()

	vs, err := b.device.CreateShaderModule(vertexShader.Module())
	if err != nil {
		return fmt.Errorf("failed to compile %s: %w", vertexShader.Key(), err)
	}
	b.modules = append(b.modules, vs)
	fs, err := b.device.CreateShaderModule(fragmentShader.Module())
	if err != nil {
		return fmt.Errorf("failed to compile %s: %w", fragmentShader.Key(), err)
	}
	b.modules = append(b.modules, fs)

	descriptors := p.BindGroupLayoutDescriptors()
	b.bindGroupLayouts = make([]*wgpu.BindGroupLayout, p.GroupCount())
	for g := range b.bindGroupLayouts {
		desc := descriptors[g]
		desc.Label = fmt.Sprintf("%s Group %d", p.Key(), g)
		layout, layoutErr := b.device.CreateBindGroupLayout(&desc)
		if layoutErr != nil {
			return fmt.Errorf("failed to create bind group layout for group %d: %w", g, layoutErr)
		}
		b.bindGroupLayouts[g] = layout
	}

	b.pipelineLayout, err = b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.Key(),
		BindGroupLayouts: b.bindGroupLayouts,
	})
	if err != nil {
		return err
	}

	b.pipeline, err = b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.Key() + " Render Pipeline",
		Layout: b.pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     vs,
			EntryPoint: vertexShader.EntryPoint(),
			Buffers:    vertexShader.VertexLayouts(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     fs,
			EntryPoint: fragmentShader.EntryPoint(),
			Targets: []wgpu.ColorTargetState{
				{
					Format:    b.surfaceFormat,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  cullMode,
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLessEqual,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	return err
}

func (b *wgpuRendererBackendImpl) InitMeshBuffers(m mesh.Mesh) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var err error
	if b.vertexBuffer, err = b.uploadBuffer(m.Name()+" Vertex Buffer", m.VertexBytes(), wgpu.BufferUsageVertex); err != nil {
		return err
	}
	b.indexBuffer, err = b.uploadBuffer(m.Name()+" Index Buffer", m.IndexBytes(), wgpu.BufferUsageIndex)
	return err
}

// uploadBuffer creates a buffer sized for data and writes data into it. Callers hold b.mu.
func (b *wgpuRendererBackendImpl) uploadBuffer(label string, data []byte, usage wgpu.BufferUsage) (*wgpu.Buffer, error) {
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	if err := b.queue.WriteBuffer(buf, 0, data); err != nil {
		buf.Release()
		return nil, err
	}
	return buf, nil
}

func (b *wgpuRendererBackendImpl) InitUniformBuffers(group int, bindings []int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if group >= len(b.bindGroupLayouts) {
		return fmt.Errorf("uniform group %d has no layout; register the pipeline first", group)
	}

	entries := make([]wgpu.BindGroupEntry, 0, len(bindings))
	for _, binding := range bindings {
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: fmt.Sprintf("Uniform Buffer %d", binding),
			Size:  uint64(len(common.Mat4{}) * 4),
			Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return err
		}
		b.uniformBuffers[binding] = buf
		entries = append(entries, wgpu.BindGroupEntry{
			Binding: uint32(binding),
			Buffer:  buf,
			Offset:  0,
			Size:    wgpu.WholeSize,
		})
	}

	bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   "Uniform Bind Group",
		Layout:  b.bindGroupLayouts[group],
		Entries: entries,
	})
	if err != nil {
		return err
	}
	b.uniformBindGroup = bg
	return nil
}

func (b *wgpuRendererBackendImpl) InitSampler(s SamplerStagingData) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	samp, err := b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Cube Sampler",
		AddressModeU:  common.Coalesce(s.AddressModeU, wgpu.AddressModeRepeat),
		AddressModeV:  common.Coalesce(s.AddressModeV, wgpu.AddressModeRepeat),
		AddressModeW:  common.Coalesce(s.AddressModeW, wgpu.AddressModeRepeat),
		MagFilter:     common.Coalesce(s.MagFilter, wgpu.FilterModeLinear),
		MinFilter:     common.Coalesce(s.MinFilter, wgpu.FilterModeLinear),
		MipmapFilter:  common.Coalesce(s.MipmapFilter, wgpu.MipmapFilterModeLinear),
		LodMinClamp:   s.LodMinClamp,
		LodMaxClamp:   common.Coalesce(s.LodMaxClamp, 32.0),
		MaxAnisotropy: common.Coalesce(s.MaxAnisotropy, 1),
	})
	if err != nil {
		return err
	}
	b.sampler = samp
	return nil
}

func (b *wgpuRendererBackendImpl) InitTextureView(label string, img common.TextureStagingData, srgb bool) (*wgpu.TextureView, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	format := wgpu.TextureFormatRGBA8Unorm
	if srgb {
		format = wgpu.TextureFormatRGBA8UnormSrgb
	}
	size := wgpu.Extent3D{Width: img.Width, Height: img.Height, DepthOrArrayLayers: 1}

	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		Size:          size,
		Format:        format,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, err
	}
	b.textures = append(b.textures, tex)

	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		img.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  img.Width * 4,
			RowsPerImage: img.Height,
		},
		&size,
	)

	view, err := tex.CreateView(nil)
	if err != nil {
		return nil, err
	}
	b.views = append(b.views, view)
	return view, nil
}

func (b *wgpuRendererBackendImpl) CreateTextureBindGroup(group int, views [3]*wgpu.TextureView, bindings [3]int, samplerBinding int) (*wgpu.BindGroup, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if group >= len(b.bindGroupLayouts) {
		return nil, fmt.Errorf("texture group %d has no layout; register the pipeline first", group)
	}

	entries := make([]wgpu.BindGroupEntry, 0, 4)
	for i, view := range views {
		entries = append(entries, wgpu.BindGroupEntry{
			Binding:     uint32(bindings[i]),
			TextureView: view,
		})
	}
	entries = append(entries, wgpu.BindGroupEntry{
		Binding: uint32(samplerBinding),
		Sampler: b.sampler,
	})

	bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   "Texture Bind Group",
		Layout:  b.bindGroupLayouts[group],
		Entries: entries,
	})
	if err != nil {
		return nil, err
	}
	b.bindGroups = append(b.bindGroups, bg)
	return bg, nil
}

func (b *wgpuRendererBackendImpl) WriteUniform(binding int, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	buf, ok := b.uniformBuffers[binding]
	if !ok {
		return fmt.Errorf("no uniform buffer at binding %d", binding)
	}
	return b.queue.WriteBuffer(buf, 0, data)
}

func (b *wgpuRendererBackendImpl) DrawFrame(uniformGroup, textureGroup int, textures *wgpu.BindGroup, indexCount uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.renderPassDescriptor == nil {
		return errors.New("surface not configured")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	defer surfaceTexture.Release()

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return err
	}
	defer view.Release()

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	// With MSAA the swapchain view is the resolve target; without it, the color attachment.
	if b.sampleCount > 1 {
		b.renderPassDescriptor.ColorAttachments[0].ResolveTarget = view
	} else {
		b.renderPassDescriptor.ColorAttachments[0].View = view
	}

	pass := encoder.BeginRenderPass(b.renderPassDescriptor)
	pass.SetPipeline(b.pipeline)
	pass.SetBindGroup(uint32(uniformGroup), b.uniformBindGroup, nil)
	pass.SetBindGroup(uint32(textureGroup), textures, nil)
	pass.SetVertexBuffer(0, b.vertexBuffer, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(b.indexBuffer, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
	pass.DrawIndexed(indexCount, 1, 0, 0, 0)
	pass.End()
	pass.Release()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	defer commandBuffer.Release()

	b.queue.Submit(commandBuffer)
	b.surface.Present()

	return nil
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, bg := range b.bindGroups {
		bg.Release()
	}
	b.bindGroups = nil
	for _, v := range b.views {
		v.Release()
	}
	b.views = nil
	for _, t := range b.textures {
		t.Release()
	}
	b.textures = nil

	if b.uniformBindGroup != nil {
		b.uniformBindGroup.Release()
		b.uniformBindGroup = nil
	}
	for binding, buf := range b.uniformBuffers {
		buf.Release()
		delete(b.uniformBuffers, binding)
	}
	if b.sampler != nil {
		b.sampler.Release()
		b.sampler = nil
	}
	if b.vertexBuffer != nil {
		b.vertexBuffer.Release()
		b.vertexBuffer = nil
	}
	if b.indexBuffer != nil {
		b.indexBuffer.Release()
		b.indexBuffer = nil
	}
	if b.pipeline != nil {
		b.pipeline.Release()
		b.pipeline = nil
	}
	if b.pipelineLayout != nil {
		b.pipelineLayout.Release()
		b.pipelineLayout = nil
	}
	for _, l := range b.bindGroupLayouts {
		if l != nil {
			l.Release()
		}
	}
	b.bindGroupLayouts = nil
	for _, m := range b.modules {
		m.Release()
	}
	b.modules = nil

	b.releaseTargets()

	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}
