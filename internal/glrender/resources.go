// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package glrender issues the per-frame draw calls for a UI draw-data
// snapshot against the glx capability surface, without disturbing the
// host application's own pipeline state.
//
// Three pieces cooperate: Resources owns every GPU handle the bridge
// creates, Renderer consumes one snapshot per frame, and the state guard
// (Guarded) brackets the whole pass with an exact save/restore of the
// externally visible pipeline state.
package glrender

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/imgl/drawdata"
	"github.com/gogpu/imgl/fontatlas"
	"github.com/gogpu/imgl/glx"
)

// Resource lifecycle errors.
var (
	// ErrNotInitialized is returned when rendering is attempted before
	// Init or after Teardown.
	ErrNotInitialized = errors.New("glrender: resources not initialized")

	// ErrAlreadyInitialized is returned when Init is called twice
	// without an intervening Teardown.
	ErrAlreadyInitialized = errors.New("glrender: resources already initialized")

	// ErrNilAtlas is returned when Init is called without a built atlas.
	ErrNilAtlas = errors.New("glrender: font atlas is nil")
)

// Vertex attribute locations, matching the shader sources.
const (
	attribPos   = 0
	attribUV    = 1
	attribColor = 2
)

// Resources owns every GPU-side handle the bridge creates: the shader
// program, the vertex/index buffers, the vertex array carrying the
// attribute layout, and the font atlas texture.
//
// Lifecycle is bound to context initialization and teardown: Init and
// Teardown are each a singular, non-reentrant phase, with Teardown safe
// to call again as a no-op.
type Resources struct {
	api glx.API

	program glx.Program
	projLoc glx.UniformLocation
	texLoc  glx.UniformLocation

	vao glx.VertexArray
	vbo glx.Buffer
	ebo glx.Buffer

	fontTexture glx.Texture

	initialized bool
}

// NewResources creates an empty resource set bound to a backend.
func NewResources(api glx.API) *Resources {
	return &Resources{api: api}
}

// Init compiles and links the shader program, allocates the buffers and
// vertex array, and uploads the font atlas texture. On success the
// atlas's CPU pixel buffer is released immediately — it is never retained
// past the single upload — and the atlas carries the texture handle.
//
// A link failure is fatal to the bridge: the error carries the driver's
// diagnostic log and no resources are left allocated.
func (r *Resources) Init(atlas *fontatlas.Atlas) error {
	if r.initialized {
		return ErrAlreadyInitialized
	}
	if atlas == nil {
		return ErrNilAtlas
	}
	if atlas.Pixels == nil {
		return fontatlas.ErrPixelsReleased
	}

	program, err := r.api.NewProgram(vertexShaderSrc, fragmentShaderSrc)
	if err != nil {
		slogger().Error("glrender: shader program creation failed", "err", err)
		return fmt.Errorf("glrender: create program: %w", err)
	}
	r.program = program
	r.projLoc = r.api.UniformLocation(program, "uProjection")
	r.texLoc = r.api.UniformLocation(program, "uTexture")

	r.vbo = r.api.GenBuffer()
	r.ebo = r.api.GenBuffer()

	r.vao = r.api.GenVertexArray()
	r.api.BindVertexArray(r.vao)
	r.api.BindBuffer(glx.ArrayBuffer, r.vbo)
	r.api.BindBuffer(glx.ElementArrayBuffer, r.ebo)
	r.api.EnableVertexAttrib(attribPos)
	r.api.EnableVertexAttrib(attribUV)
	r.api.EnableVertexAttrib(attribColor)
	r.api.VertexAttribPointer(attribPos, 2, glx.AttribFloat, false, drawdata.VertexStride, 0)
	r.api.VertexAttribPointer(attribUV, 2, glx.AttribFloat, false, drawdata.VertexStride, 8)
	r.api.VertexAttribPointer(attribColor, 4, glx.AttribUnsignedByte, true, drawdata.VertexStride, 16)

	r.fontTexture = r.api.GenTexture()
	r.api.ActiveTexture(glx.Texture0)
	r.api.BindTexture(r.fontTexture)
	r.api.SetTextureFilter(glx.FilterLinear, glx.FilterLinear)
	if err := r.api.TexImage2D(int32(atlas.Width), int32(atlas.Height),
		gputypes.TextureFormatRGBA8Unorm, atlas.Pixels); err != nil {
		r.initialized = true // let Teardown release what exists
		r.Teardown()
		return fmt.Errorf("glrender: upload font atlas: %w", err)
	}
	atlas.Texture = r.fontTexture
	atlas.ReleasePixels()

	debugCheck(r.api, "Resources.Init")
	r.initialized = true
	slogger().Info("glrender: resources initialized",
		"atlas", fmt.Sprintf("%dx%d", atlas.Width, atlas.Height))
	return nil
}

// FontTexture returns the uploaded atlas texture handle.
func (r *Resources) FontTexture() glx.Texture { return r.fontTexture }

// bindForFrame installs the UI pass pipeline configuration for one
// render: program, projection, vertex array, buffers, premultiplied-style
// alpha blending, no cull/depth/stencil, scissor on, filled polygons and
// a full-framebuffer viewport.
//
// Everything mutated here is captured beforehand and restored afterwards
// by the state guard.
func (r *Resources) bindForFrame(fbWidth, fbHeight int32, projection *[16]float32) {
	r.api.Enable(glx.CapBlend)
	r.api.BlendEquationSeparate(glx.BlendEquationAdd, glx.BlendEquationAdd)
	r.api.BlendFuncSeparate(glx.BlendSrcAlpha, glx.BlendOneMinusSrcAlpha,
		glx.BlendOne, glx.BlendOneMinusSrcAlpha)
	r.api.Disable(glx.CapCullFace)
	r.api.Disable(glx.CapDepthTest)
	r.api.Disable(glx.CapStencilTest)
	r.api.Enable(glx.CapScissorTest)
	r.api.PolygonMode(glx.FrontAndBack, glx.PolygonFill)
	r.api.Viewport(0, 0, fbWidth, fbHeight)

	r.api.UseProgram(r.program)
	r.api.Uniform1i(r.texLoc, 0)
	r.api.UniformMatrix4(r.projLoc, projection)
	r.api.BindVertexArray(r.vao)
	r.api.BindBuffer(glx.ArrayBuffer, r.vbo)
	r.api.BindBuffer(glx.ElementArrayBuffer, r.ebo)
	r.api.ActiveTexture(glx.Texture0)
	r.api.BindSampler(0, 0)

	debugCheck(r.api, "Resources.bindForFrame")
}

// Teardown releases every owned handle. Destruction order matters: the
// vertex array goes before the buffers it references; the font texture
// and the shader program go last. Idempotent — calls after the first are
// no-ops.
func (r *Resources) Teardown() {
	if !r.initialized {
		return
	}
	r.initialized = false

	if r.vao != 0 {
		r.api.DeleteVertexArray(r.vao)
		r.vao = 0
	}
	if r.vbo != 0 {
		r.api.DeleteBuffer(r.vbo)
		r.vbo = 0
	}
	if r.ebo != 0 {
		r.api.DeleteBuffer(r.ebo)
		r.ebo = 0
	}
	if r.fontTexture != 0 {
		r.api.DeleteTexture(r.fontTexture)
		r.fontTexture = 0
	}
	if r.program != 0 {
		r.api.DeleteProgram(r.program)
		r.program = 0
	}
	slogger().Info("glrender: resources released")
}
