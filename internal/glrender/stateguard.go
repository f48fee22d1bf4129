// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glrender

import "github.com/gogpu/imgl/glx"

// savedState is a snapshot of every piece of pipeline state the UI pass
// touches. After restore the context is observably identical to before
// the pass, except for the pixels actually drawn.
type savedState struct {
	activeTexture glx.TextureUnit
	program       glx.Program
	texture2D     glx.Texture
	sampler       glx.Sampler
	vertexArray   glx.VertexArray
	arrayBuffer   glx.Buffer

	blendEqRGB   glx.BlendEquation
	blendEqAlpha glx.BlendEquation
	blendSrcRGB  glx.BlendFactor
	blendDstRGB  glx.BlendFactor
	blendSrcA    glx.BlendFactor
	blendDstA    glx.BlendFactor

	blend   bool
	cull    bool
	depth   bool
	stencil bool
	scissor bool

	polygonMode glx.PolygonMode
	viewport    [4]int32
	scissorBox  [4]int32
}

// capture reads the current values of every state slot the renderer will
// mutate. It leaves texture unit 0 active so the texture/sampler
// snapshot and the subsequent render both refer to unit 0; the original
// active unit is restored with everything else.
func capture(api glx.API) savedState {
	var s savedState
	s.activeTexture = glx.TextureUnit(api.GetInteger(glx.ParamActiveTexture))
	api.ActiveTexture(glx.Texture0)

	s.program = glx.Program(api.GetInteger(glx.ParamCurrentProgram))
	s.texture2D = glx.Texture(api.GetInteger(glx.ParamTextureBinding2D))
	s.sampler = glx.Sampler(api.GetInteger(glx.ParamSamplerBinding))
	s.vertexArray = glx.VertexArray(api.GetInteger(glx.ParamVertexArrayBinding))
	s.arrayBuffer = glx.Buffer(api.GetInteger(glx.ParamArrayBufferBinding))

	s.blendEqRGB = glx.BlendEquation(api.GetInteger(glx.ParamBlendEquationRGB))
	s.blendEqAlpha = glx.BlendEquation(api.GetInteger(glx.ParamBlendEquationAlpha))
	s.blendSrcRGB = glx.BlendFactor(api.GetInteger(glx.ParamBlendSrcRGB))
	s.blendDstRGB = glx.BlendFactor(api.GetInteger(glx.ParamBlendDstRGB))
	s.blendSrcA = glx.BlendFactor(api.GetInteger(glx.ParamBlendSrcAlpha))
	s.blendDstA = glx.BlendFactor(api.GetInteger(glx.ParamBlendDstAlpha))

	s.blend = api.IsEnabled(glx.CapBlend)
	s.cull = api.IsEnabled(glx.CapCullFace)
	s.depth = api.IsEnabled(glx.CapDepthTest)
	s.stencil = api.IsEnabled(glx.CapStencilTest)
	s.scissor = api.IsEnabled(glx.CapScissorTest)

	s.polygonMode = glx.PolygonMode(api.GetInteger(glx.ParamPolygonMode))
	s.viewport = api.GetInteger4(glx.ParamViewport)
	s.scissorBox = api.GetInteger4(glx.ParamScissorBox)
	return s
}

// restore writes every captured value back, in reverse dependency order:
// program and unit-0 texture/sampler bindings first (they do not depend
// on the vertex array), then the vertex array, then the array buffer it
// may reference, then the fixed-function state. The element array
// binding is vertex-array state and travels with it.
func (s savedState) restore(api glx.API) {
	api.UseProgram(s.program)
	api.BindTexture(s.texture2D)
	api.BindSampler(0, s.sampler)
	api.ActiveTexture(s.activeTexture)

	api.BindVertexArray(s.vertexArray)
	api.BindBuffer(glx.ArrayBuffer, s.arrayBuffer)

	api.BlendEquationSeparate(s.blendEqRGB, s.blendEqAlpha)
	api.BlendFuncSeparate(s.blendSrcRGB, s.blendDstRGB, s.blendSrcA, s.blendDstA)

	setCap(api, glx.CapBlend, s.blend)
	setCap(api, glx.CapCullFace, s.cull)
	setCap(api, glx.CapDepthTest, s.depth)
	setCap(api, glx.CapStencilTest, s.stencil)
	setCap(api, glx.CapScissorTest, s.scissor)

	api.PolygonMode(glx.FrontAndBack, s.polygonMode)
	api.Viewport(s.viewport[0], s.viewport[1], s.viewport[2], s.viewport[3])
	api.Scissor(s.scissorBox[0], s.scissorBox[1], s.scissorBox[2], s.scissorBox[3])
}

// setCap applies a saved on/off toggle.
func setCap(api glx.API, cap glx.Capability, on bool) {
	if on {
		api.Enable(cap)
	} else {
		api.Disable(cap)
	}
}

// Guarded runs fn bracketed by a full pipeline state save and restore.
// The restore runs unconditionally, including when fn panics, so an
// aborted frame cannot leak UI pass state into the host's rendering.
func Guarded(api glx.API, fn func()) {
	s := capture(api)
	defer func() {
		s.restore(api)
		debugCheck(api, "Guarded.restore")
	}()
	fn()
}
