package gl

import (
	"github.com/gogpu/rhi"
)

// glGraphicsPipeline is a baked bundle of graphics state. Binding it
// replays the bundle through the state cache, so switching between
// pipelines that share most state costs few native calls.
type glGraphicsPipeline struct {
	dev  *glDevice
	desc rhi.GraphicsPipelineDescriptor

	program      uint32
	topologyEnum uint32
}

func (p *glGraphicsPipeline) ResourceType() rhi.ResourceType { return rhi.ResourceGraphicsPipeline }

func (p *glGraphicsPipeline) Descriptor() rhi.GraphicsPipelineDescriptor { return p.desc }

func (p *glGraphicsPipeline) Release() {}

// apply replays the pipeline state into the cache.
func (p *glGraphicsPipeline) apply(c *StateCache) {
	c.BindShaderProgram(p.program)

	// Depth.
	c.Set(CapDepthTest, p.desc.Depth.TestEnabled)
	if p.desc.Depth.TestEnabled {
		c.SetDepthFunc(p.desc.Depth.Func)
	}
	c.SetDepthMask(p.desc.Depth.WriteEnabled)

	// Stencil.
	c.Set(CapStencilTest, p.desc.Stencil.Enabled)
	if p.desc.Stencil.Enabled {
		c.SetStencilState(rhi.StencilFront, p.desc.Stencil.Front)
		c.SetStencilState(rhi.StencilBack, p.desc.Stencil.Back)
	}

	// Blend.
	c.Set(CapBlend, p.desc.Blend.Enabled)
	if len(p.desc.Blend.Targets) > 0 {
		c.SetBlendStates(p.desc.Blend.Targets, p.desc.Blend.Enabled)
	}

	// Raster.
	c.SetCullMode(p.desc.Rasterizer.Cull)
	c.SetFrontFace(p.desc.Rasterizer.FrontCCW)
	c.Set(CapScissorTest, p.desc.Rasterizer.ScissorEnabled)
	c.Set(CapMultisample, p.desc.Rasterizer.MultisampleEnabled)
	c.Set(CapDepthClamp, p.desc.Rasterizer.DepthClampEnabled)

	if p.desc.Topology == rhi.TopologyPatches {
		c.SetPatchVertices(p.desc.PatchVertices)
	}
}

// glComputePipeline is a baked compute dispatch configuration.
type glComputePipeline struct {
	dev  *glDevice
	desc rhi.ComputePipelineDescriptor

	program uint32
}

func (p *glComputePipeline) ResourceType() rhi.ResourceType { return rhi.ResourceComputePipeline }

func (p *glComputePipeline) Descriptor() rhi.ComputePipelineDescriptor { return p.desc }

func (p *glComputePipeline) Release() {}

func (p *glComputePipeline) apply(c *StateCache) {
	c.BindShaderProgram(p.program)
}
