package gl

import (
	"math"

	"github.com/gogpu/rhi"
)

// Features records which optional native entry points the driver
// offers. They are resolved once while the device is opened and carried
// here instead of being probed at call sites.
type Features struct {
	// HasViewportArrays enables the array forms of viewport, scissor,
	// and depth-range calls (GL 4.1).
	HasViewportArrays bool

	// HasDrawBuffersBlend enables per-drawbuffer blend and color-mask
	// calls (GL 4.0). Without it, multi-target blend state falls back
	// to selecting each draw buffer in turn.
	HasDrawBuffersBlend bool

	// HasClipControl enables native origin/clip-range selection
	// (GL 4.5). Without it, an upper-left origin is emulated by
	// flipping viewport and scissor rectangles.
	HasClipControl bool

	// HasBaseInstance enables the BaseInstance draw variants (GL 4.2).
	HasBaseInstance bool

	// HasComputeShaders enables compute dispatch (GL 4.3).
	HasComputeShaders bool
}

// DefaultTextureLayers is the number of per-layer texture binding
// tables a cache mirrors unless configured otherwise.
const DefaultTextureLayers = 32

// FramebufferTarget selects which framebuffer slot a binding addresses.
type FramebufferTarget uint8

const (
	// FramebufferDraw addresses the draw framebuffer slot.
	FramebufferDraw FramebufferTarget = iota

	// FramebufferRead addresses the read framebuffer slot.
	FramebufferRead

	// FramebufferCombined addresses both slots at once.
	FramebufferCombined
)

// capEntry is one pushed capability value.
type capEntry struct {
	cap   Capability
	value bool
}

// bufferEntry is one pushed buffer binding.
type bufferEntry struct {
	target BufferTarget
	buffer uint32
}

// textureEntry is one pushed texture binding at an explicit layer.
type textureEntry struct {
	layer   int
	target  TextureTarget
	texture uint32
}

// textureLayer is one texture unit's binding table.
type textureLayer struct {
	textures [numTextureTargets]uint32
	sampler  uint32
}

// stencilMirror is the mirrored stencil state of one face. Its three
// sub-fields map to three independent native calls and are compared
// independently.
type stencilMirror struct {
	stencilFail rhi.StencilOp
	depthFail   rhi.StencilOp
	depthPass   rhi.StencilOp

	fn       rhi.CompareFunc
	ref      int32
	readMask uint32

	writeMask uint32
}

// StateCache mirrors the driver state of one GL context and filters
// every state-changing call through the mirror, forwarding it only when
// the requested value differs. One cache is exclusively owned by one
// context; one goroutine drives it at a time.
//
// The mirrored values are trusted: they are never re-queried from the
// driver after construction (see Reset). Call sites that know external
// code may have touched the context use the Forced variants.
type StateCache struct {
	fns   Functions
	feats Features

	caps     [numCapabilities]bool
	capStack []capEntry

	buffers     [numBufferTargets]uint32
	bufferStack []bufferEntry

	framebuffers [2]uint32 // draw, read

	layers       []textureLayer
	activeLayer  int
	textureStack []textureEntry

	program      uint32
	programStack []uint32

	stencil [2]stencilMirror // front, back

	colorMask rhi.ColorMask
	depthFunc rhi.CompareFunc
	depthMask bool
	cullFace  rhi.CullMode
	frontCCW  bool

	patchVertices uint32

	// Origin emulation. targetHeight must be supplied via
	// NotifyRenderTargetHeight before any viewport or scissor call when
	// emulateOrigin is set.
	emulateOrigin bool
	targetHeight  int32
}

// StateCacheOption configures a StateCache during creation.
type StateCacheOption func(*StateCache)

// WithTextureLayers sets the number of texture layers the cache
// mirrors. The driver's own limit is the upper bound the caller must
// respect.
func WithTextureLayers(n int) StateCacheOption {
	return func(c *StateCache) {
		if n > 0 {
			c.layers = make([]textureLayer, n)
		}
	}
}

// WithFeatures supplies the resolved optional entry points.
func WithFeatures(feats Features) StateCacheOption {
	return func(c *StateCache) {
		c.feats = feats
	}
}

// NewStateCache creates a cache mirroring a freshly created context:
// all toggles off, nothing bound, default depth and color masks.
func NewStateCache(fns Functions, opts ...StateCacheOption) *StateCache {
	c := &StateCache{
		fns:       fns,
		colorMask: rhi.ColorMaskAll,
		depthFunc: rhi.CompareLess,
		depthMask: true,
		frontCCW:  true,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.layers == nil {
		c.layers = make([]textureLayer, DefaultTextureLayers)
	}
	if !c.feats.HasViewportArrays {
		rhi.Logger().Debug("gl: viewport arrays unavailable, multi-viewport requests will be skipped")
	}
	return c
}

// Reset re-queries every capability toggle from the driver. This is the
// only point where the cache reads driver state; it exists for contexts
// whose state predates the cache.
func (c *StateCache) Reset() {
	for i := range c.caps {
		c.caps[i] = c.fns.IsEnabled(capabilityEnums[i])
	}
}

// ----- Capability toggles -----

// Set changes a capability toggle. No native call is issued when the
// mirrored value already matches.
func (c *StateCache) Set(cap Capability, value bool) {
	if c.caps[cap] == value {
		return
	}
	c.caps[cap] = value
	if value {
		c.fns.Enable(capabilityEnums[cap])
	} else {
		c.fns.Disable(capabilityEnums[cap])
	}
}

// Enable is Set(cap, true).
func (c *StateCache) Enable(cap Capability) { c.Set(cap, true) }

// Disable is Set(cap, false).
func (c *StateCache) Disable(cap Capability) { c.Set(cap, false) }

// IsEnabled reads the mirror. It never queries the driver.
func (c *StateCache) IsEnabled(cap Capability) bool { return c.caps[cap] }

// PushState saves the current mirrored value of cap.
func (c *StateCache) PushState(cap Capability) {
	c.capStack = append(c.capStack, capEntry{cap: cap, value: c.caps[cap]})
}

// PopState restores the most recently pushed capability value. A
// redundant push/pop pair issues no native call. Popping an empty
// stack is a programming error and panics.
func (c *StateCache) PopState() {
	if len(c.capStack) == 0 {
		panic("gl: PopState on empty state stack")
	}
	top := c.capStack[len(c.capStack)-1]
	c.capStack = c.capStack[:len(c.capStack)-1]
	c.Set(top.cap, top.value)
}

// PopStates pops exactly count entries in LIFO order.
func (c *StateCache) PopStates(count int) {
	for ; count > 0; count-- {
		c.PopState()
	}
}

// ----- Buffer binding -----

// BindBuffer binds a buffer to target unless the mirror already holds
// it.
func (c *StateCache) BindBuffer(target BufferTarget, buffer uint32) {
	if c.buffers[target] == buffer {
		return
	}
	c.buffers[target] = buffer
	c.fns.BindBuffer(bufferTargetEnums[target], buffer)
}

// ForcedBindBuffer binds unconditionally, for call sites where external
// state may have diverged from the mirror.
func (c *StateCache) ForcedBindBuffer(target BufferTarget, buffer uint32) {
	c.buffers[target] = buffer
	c.fns.BindBuffer(bufferTargetEnums[target], buffer)
}

// BindBufferBase binds a buffer to an indexed binding point. The call
// is always issued: an indexed bind also rebinds the generic target as
// a side effect, which the mirror update reflects.
func (c *StateCache) BindBufferBase(target BufferTarget, index, buffer uint32) {
	c.buffers[target] = buffer
	c.fns.BindBufferBase(bufferTargetEnums[target], index, buffer)
}

// BindVertexArray switches the active vertex-array object. The call is
// always issued; switching implicitly unbinds the plain array and
// element-array bindings, so those two mirror slots are zeroed.
func (c *StateCache) BindVertexArray(array uint32) {
	c.fns.BindVertexArray(array)
	c.buffers[TargetArrayBuffer] = 0
	c.buffers[TargetElementArrayBuffer] = 0
}

// PushBoundBuffer saves the current mirrored binding of target.
func (c *StateCache) PushBoundBuffer(target BufferTarget) {
	c.bufferStack = append(c.bufferStack, bufferEntry{target: target, buffer: c.buffers[target]})
}

// PopBoundBuffer restores the most recently pushed buffer binding.
func (c *StateCache) PopBoundBuffer() {
	if len(c.bufferStack) == 0 {
		panic("gl: PopBoundBuffer on empty buffer stack")
	}
	top := c.bufferStack[len(c.bufferStack)-1]
	c.bufferStack = c.bufferStack[:len(c.bufferStack)-1]
	c.BindBuffer(top.target, top.buffer)
}

// BoundBuffer reads the mirrored binding of target.
func (c *StateCache) BoundBuffer(target BufferTarget) uint32 {
	return c.buffers[target]
}

// ----- Framebuffer binding -----

// BindFramebuffer binds a framebuffer to the given slot unless the
// mirror already holds it. The combined target updates both slots.
func (c *StateCache) BindFramebuffer(target FramebufferTarget, framebuffer uint32) {
	switch target {
	case FramebufferDraw:
		if c.framebuffers[0] == framebuffer {
			return
		}
		c.framebuffers[0] = framebuffer
		c.fns.BindFramebuffer(glDrawFramebuffer, framebuffer)
	case FramebufferRead:
		if c.framebuffers[1] == framebuffer {
			return
		}
		c.framebuffers[1] = framebuffer
		c.fns.BindFramebuffer(glReadFramebuffer, framebuffer)
	case FramebufferCombined:
		if c.framebuffers[0] == framebuffer && c.framebuffers[1] == framebuffer {
			return
		}
		c.framebuffers[0] = framebuffer
		c.framebuffers[1] = framebuffer
		c.fns.BindFramebuffer(glFramebuffer, framebuffer)
	default:
		panic("gl: invalid framebuffer target")
	}
}

// ----- Texture binding -----

// ActiveTexture switches which layer's binding table subsequent
// BindTexture calls address. No native call when already active.
func (c *StateCache) ActiveTexture(layer int) {
	if layer < 0 || layer >= len(c.layers) {
		panic("gl: texture layer out of range")
	}
	if c.activeLayer == layer {
		return
	}
	c.activeLayer = layer
	c.fns.ActiveTexture(glTexture0 + uint32(layer))
}

// BindTexture binds a texture to target on the active layer unless that
// layer's mirror already holds it.
func (c *StateCache) BindTexture(target TextureTarget, texture uint32) {
	layer := &c.layers[c.activeLayer]
	if layer.textures[target] == texture {
		return
	}
	layer.textures[target] = texture
	c.fns.BindTexture(textureTargetEnums[target], texture)
}

// ForcedBindTexture binds unconditionally.
func (c *StateCache) ForcedBindTexture(target TextureTarget, texture uint32) {
	c.layers[c.activeLayer].textures[target] = texture
	c.fns.BindTexture(textureTargetEnums[target], texture)
}

// BoundTexture reads the mirrored binding at an explicit (layer,
// target) pair, independent of which layer is active.
func (c *StateCache) BoundTexture(layer int, target TextureTarget) uint32 {
	return c.layers[layer].textures[target]
}

// PushBoundTexture saves the binding at an explicit (layer, target)
// pair, regardless of which layer is currently active.
func (c *StateCache) PushBoundTexture(layer int, target TextureTarget) {
	c.textureStack = append(c.textureStack, textureEntry{
		layer:   layer,
		target:  target,
		texture: c.layers[layer].textures[target],
	})
}

// PopBoundTexture restores the most recently pushed texture binding,
// re-activating its layer first.
func (c *StateCache) PopBoundTexture() {
	if len(c.textureStack) == 0 {
		panic("gl: PopBoundTexture on empty texture stack")
	}
	top := c.textureStack[len(c.textureStack)-1]
	c.textureStack = c.textureStack[:len(c.textureStack)-1]
	c.ActiveTexture(top.layer)
	c.BindTexture(top.target, top.texture)
}

// BindSampler binds a sampler to a layer unless that layer's mirror
// already holds it.
func (c *StateCache) BindSampler(layer int, sampler uint32) {
	if layer < 0 || layer >= len(c.layers) {
		panic("gl: texture layer out of range")
	}
	if c.layers[layer].sampler == sampler {
		return
	}
	c.layers[layer].sampler = sampler
	c.fns.BindSampler(uint32(layer), sampler)
}

// ----- Shader program binding -----

// BindShaderProgram makes program current unless it already is.
func (c *StateCache) BindShaderProgram(program uint32) {
	if c.program == program {
		return
	}
	c.program = program
	c.fns.UseProgram(program)
}

// PushShaderProgram saves the current mirrored program.
func (c *StateCache) PushShaderProgram() {
	c.programStack = append(c.programStack, c.program)
}

// PopShaderProgram restores the most recently pushed program.
func (c *StateCache) PopShaderProgram() {
	if len(c.programStack) == 0 {
		panic("gl: PopShaderProgram on empty program stack")
	}
	top := c.programStack[len(c.programStack)-1]
	c.programStack = c.programStack[:len(c.programStack)-1]
	c.BindShaderProgram(top)
}

// ----- Viewports, scissors, depth ranges -----

// NotifyRenderTargetHeight supplies the current render-target height
// for origin emulation. It must precede any viewport or scissor call in
// a frame when the logical origin is emulated.
func (c *StateCache) NotifyRenderTargetHeight(height int32) {
	c.targetHeight = height
}

// SetClipControl selects the logical screen origin and clip-space depth
// range. With native support the driver is reconfigured; without it, an
// upper-left origin is emulated by flipping viewport and scissor
// rectangles against the render-target height.
func (c *StateCache) SetClipControl(origin rhi.ScreenOrigin, clipRange rhi.ClippingRange) {
	if c.feats.HasClipControl {
		originEnum := uint32(glLowerLeft)
		if origin == rhi.OriginUpperLeft {
			originEnum = glUpperLeft
		}
		depthEnum := uint32(glNegativeOneToOne)
		if clipRange == rhi.ClipZeroToOne {
			depthEnum = glZeroToOne
		}
		c.fns.ClipControl(originEnum, depthEnum)
		c.emulateOrigin = false
		return
	}
	c.emulateOrigin = origin == rhi.OriginUpperLeft
}

// OriginEmulated reports whether viewport and scissor rectangles are
// being flipped.
func (c *StateCache) OriginEmulated() bool { return c.emulateOrigin }

func (c *StateCache) adjustViewport(vp *rhi.Viewport) {
	vp.Y = float32(c.targetHeight) - vp.Height - vp.Y
}

// roundToInt32 rounds to the nearest integer. The single-viewport
// entry point takes integers while the array form takes floats, so
// fractional rectangles must round rather than truncate toward zero.
func roundToInt32(v float32) int32 {
	return int32(math.Round(float64(v)))
}

func (c *StateCache) adjustScissor(sc *rhi.Scissor) {
	sc.Y = c.targetHeight - sc.Height - sc.Y
}

// SetViewports applies a viewport list. A single element uses the
// single-target native call. Multiple elements require the array entry
// point; without it the request is not expressible and is skipped (a
// documented limitation, not an error).
func (c *StateCache) SetViewports(viewports []rhi.Viewport) {
	switch {
	case len(viewports) == 1:
		vp := viewports[0]
		if c.emulateOrigin {
			c.adjustViewport(&vp)
		}
		c.fns.Viewport(roundToInt32(vp.X), roundToInt32(vp.Y), roundToInt32(vp.Width), roundToInt32(vp.Height))
	case len(viewports) > 1 && c.feats.HasViewportArrays:
		data := make([]float32, 0, len(viewports)*4)
		for _, vp := range viewports {
			if c.emulateOrigin {
				c.adjustViewport(&vp)
			}
			data = append(data, vp.X, vp.Y, vp.Width, vp.Height)
		}
		c.fns.ViewportArray(0, data)
	}
}

// SetDepthRanges applies a depth-range list with the same single/array
// dispatch as SetViewports.
func (c *StateCache) SetDepthRanges(ranges []rhi.DepthRange) {
	switch {
	case len(ranges) == 1:
		c.fns.DepthRange(ranges[0].Min, ranges[0].Max)
	case len(ranges) > 1 && c.feats.HasViewportArrays:
		data := make([]float64, 0, len(ranges)*2)
		for _, dr := range ranges {
			data = append(data, dr.Min, dr.Max)
		}
		c.fns.DepthRangeArray(0, data)
	}
}

// SetScissors applies a scissor list with the same single/array
// dispatch as SetViewports.
func (c *StateCache) SetScissors(scissors []rhi.Scissor) {
	switch {
	case len(scissors) == 1:
		sc := scissors[0]
		if c.emulateOrigin {
			c.adjustScissor(&sc)
		}
		c.fns.Scissor(sc.X, sc.Y, sc.Width, sc.Height)
	case len(scissors) > 1 && c.feats.HasViewportArrays:
		data := make([]int32, 0, len(scissors)*4)
		for _, sc := range scissors {
			if c.emulateOrigin {
				c.adjustScissor(&sc)
			}
			data = append(data, sc.X, sc.Y, sc.Width, sc.Height)
		}
		c.fns.ScissorArray(0, data)
	}
}

// ----- Blend state -----

// SetBlendStates applies blend and color-mask state. One state applies
// globally. Multiple states apply one per draw buffer: with the
// indexed entry points each buffer is addressed directly; without them
// the cache falls back to selecting each draw buffer as the current
// target in turn, which leaves the last buffer selected afterwards (the
// caller must restore the selection if it matters).
func (c *StateCache) SetBlendStates(states []rhi.BlendTargetState, enabled bool) {
	if len(states) == 1 {
		state := states[0]
		if c.colorMask != state.Mask {
			c.colorMask = state.Mask
			c.fns.ColorMask(maskBits(state.Mask))
		}
		if enabled {
			c.fns.BlendFuncSeparate(
				blendFactorEnums[state.SrcColor], blendFactorEnums[state.DstColor],
				blendFactorEnums[state.SrcAlpha], blendFactorEnums[state.DstAlpha],
			)
			c.fns.BlendEquationSeparate(blendOpEnums[state.ColorOp], blendOpEnums[state.AlphaOp])
		}
		return
	}
	if len(states) > 1 && !c.feats.HasDrawBuffersBlend {
		rhi.Logger().Warn("gl: per-drawbuffer blending emulated through draw-buffer selection")
	}
	for i, state := range states {
		c.setBlendState(uint32(i), state, enabled)
	}
}

func (c *StateCache) setBlendState(drawBuffer uint32, state rhi.BlendTargetState, enabled bool) {
	if c.feats.HasDrawBuffersBlend {
		r, g, b, a := maskBits(state.Mask)
		c.fns.ColorMaskIndexed(drawBuffer, r, g, b, a)
		if enabled {
			c.fns.BlendFuncSeparateIndexed(drawBuffer,
				blendFactorEnums[state.SrcColor], blendFactorEnums[state.DstColor],
				blendFactorEnums[state.SrcAlpha], blendFactorEnums[state.DstAlpha],
			)
			c.fns.BlendEquationSeparateIndexed(drawBuffer,
				blendOpEnums[state.ColorOp], blendOpEnums[state.AlphaOp])
		}
		return
	}
	// Fallback: make the buffer current and apply the global calls.
	c.fns.DrawBuffer(glColorAttachment0 + drawBuffer)
	c.fns.ColorMask(maskBits(state.Mask))
	if enabled {
		c.fns.BlendFuncSeparate(
			blendFactorEnums[state.SrcColor], blendFactorEnums[state.DstColor],
			blendFactorEnums[state.SrcAlpha], blendFactorEnums[state.DstAlpha],
		)
		c.fns.BlendEquationSeparate(blendOpEnums[state.ColorOp], blendOpEnums[state.AlphaOp])
	}
}

func maskBits(m rhi.ColorMask) (r, g, b, a bool) {
	return m&rhi.ColorMaskR != 0, m&rhi.ColorMaskG != 0, m&rhi.ColorMaskB != 0, m&rhi.ColorMaskA != 0
}

// ----- Stencil state -----

// SetStencilState applies one face's stencil configuration.
// StencilFrontAndBack expands to both faces, each compared against its
// own mirror. The three sub-fields (op triplet, func triplet, write
// mask) are checked independently so that changing only one issues
// only its native call.
func (c *StateCache) SetStencilState(face rhi.StencilFace, state rhi.StencilFaceState) {
	switch face {
	case rhi.StencilFront:
		c.setStencilState(glFront, &c.stencil[0], state)
	case rhi.StencilBack:
		c.setStencilState(glBack, &c.stencil[1], state)
	case rhi.StencilFrontAndBack:
		c.setStencilState(glFront, &c.stencil[0], state)
		c.setStencilState(glBack, &c.stencil[1], state)
	default:
		panic("gl: invalid stencil face")
	}
}

func (c *StateCache) setStencilState(face uint32, to *stencilMirror, from rhi.StencilFaceState) {
	if to.stencilFail != from.StencilFail || to.depthFail != from.DepthFail || to.depthPass != from.DepthPass {
		to.stencilFail = from.StencilFail
		to.depthFail = from.DepthFail
		to.depthPass = from.DepthPass
		c.fns.StencilOpSeparate(face,
			stencilOpEnums[from.StencilFail],
			stencilOpEnums[from.DepthFail],
			stencilOpEnums[from.DepthPass],
		)
	}
	if to.fn != from.Func || to.ref != from.Ref || to.readMask != from.ReadMask {
		to.fn = from.Func
		to.ref = from.Ref
		to.readMask = from.ReadMask
		c.fns.StencilFuncSeparate(face, compareFuncEnums[from.Func], from.Ref, from.ReadMask)
	}
	if to.writeMask != from.WriteMask {
		to.writeMask = from.WriteMask
		c.fns.StencilMaskSeparate(face, from.WriteMask)
	}
}

// ----- Depth and raster state -----

// SetDepthFunc changes the depth comparison unless mirrored already.
func (c *StateCache) SetDepthFunc(fn rhi.CompareFunc) {
	if c.depthFunc == fn {
		return
	}
	c.depthFunc = fn
	c.fns.DepthFunc(compareFuncEnums[fn])
}

// SetDepthMask changes depth writes unless mirrored already.
func (c *StateCache) SetDepthMask(enabled bool) {
	if c.depthMask == enabled {
		return
	}
	c.depthMask = enabled
	c.fns.DepthMask(enabled)
}

// SetCullMode changes face culling unless mirrored already. CullNone
// only disables the toggle; the cull face enum is left as is.
func (c *StateCache) SetCullMode(mode rhi.CullMode) {
	if mode == rhi.CullNone {
		c.Disable(CapCullFace)
		return
	}
	c.Enable(CapCullFace)
	if c.cullFace == mode {
		return
	}
	c.cullFace = mode
	if mode == rhi.CullFront {
		c.fns.CullFace(glFront)
	} else {
		c.fns.CullFace(glBack)
	}
}

// SetFrontFace changes the winding order unless mirrored already.
func (c *StateCache) SetFrontFace(counterClockwise bool) {
	if c.frontCCW == counterClockwise {
		return
	}
	c.frontCCW = counterClockwise
	if counterClockwise {
		c.fns.FrontFace(glCCW)
	} else {
		c.fns.FrontFace(glCW)
	}
}

// SetPatchVertices changes the patch control point count unless
// mirrored already.
func (c *StateCache) SetPatchVertices(count uint32) {
	if count == 0 || c.patchVertices == count {
		return
	}
	c.patchVertices = count
	c.fns.PatchParameteri(glPatchVertices, int32(count))
}
