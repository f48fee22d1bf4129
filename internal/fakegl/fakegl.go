// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package fakegl is an in-memory implementation of glx.API for tests.
//
// The fake keeps real (if simplified) pipeline state so that the state
// save/restore round-trip can be verified, counts resource creation and
// destruction per handle category, and records every draw call with the
// scissor rectangle and texture binding in effect at the time.
package fakegl

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/imgl/glx"
)

// DrawCall records one DrawElementsBaseVertex with the state it sampled.
type DrawCall struct {
	Mode        glx.Primitive
	Count       int32
	IndexType   glx.IndexType
	IndexOffset uintptr
	BaseVertex  int32

	// Sampled state at the time of the call.
	Scissor   [4]int32
	Texture   glx.Texture
	Program   glx.Program
	Blend     bool
	ScissorOn bool
}

// Upload records one BufferData call.
type Upload struct {
	Target glx.BufferTarget
	Buffer glx.Buffer
	Bytes  int
	Usage  glx.BufferUsage
}

// TextureUpload records one TexImage2D call.
type TextureUpload struct {
	Texture glx.Texture
	Width   int32
	Height  int32
	Format  gputypes.TextureFormat
	Bytes   int
}

// API is the fake backend. The zero value is not usable; call New.
type API struct {
	// Pipeline toggles.
	caps map[glx.Capability]bool

	// Blend and rasterizer state.
	blendEqRGB, blendEqAlpha                       glx.BlendEquation
	blendSrcRGB, blendDstRGB, blendSrcA, blendDstA glx.BlendFactor
	polygonMode                                    glx.PolygonMode
	scissorBox                                     [4]int32
	viewport                                       [4]int32

	// Bindings.
	activeUnit   glx.TextureUnit
	program      glx.Program
	texture2D    map[glx.TextureUnit]glx.Texture
	samplers     map[uint32]glx.Sampler
	vertexArray  glx.VertexArray
	arrayBuffer  glx.Buffer
	elementArray glx.Buffer

	// Handle allocation. One counter per category so handle values are
	// stable and tests can assert create/delete parity.
	nextBuffer      uint32
	nextTexture     uint32
	nextVertexArray uint32
	nextProgram     uint32

	liveBuffers      map[glx.Buffer]bool
	liveTextures     map[glx.Texture]bool
	liveVertexArrays map[glx.VertexArray]bool
	livePrograms     map[glx.Program]bool

	// Counters.
	BuffersCreated      int
	BuffersDeleted      int
	TexturesCreated     int
	TexturesDeleted     int
	VertexArraysCreated int
	VertexArraysDeleted int
	ProgramsCreated     int
	ProgramsDeleted     int

	// Recorded activity.
	Draws          []DrawCall
	Uploads        []Upload
	TextureUploads []TextureUpload

	// FailProgram makes NewProgram return this error.
	FailProgram error

	// errQueue feeds Err. Empty queue reports NoError.
	errQueue []glx.ErrorCode
}

var _ glx.API = (*API)(nil)

// New creates a fake backend with GL-like default state.
func New() *API {
	return &API{
		caps:             make(map[glx.Capability]bool),
		blendEqRGB:       glx.BlendEquationAdd,
		blendEqAlpha:     glx.BlendEquationAdd,
		blendSrcRGB:      glx.BlendOne,
		blendDstRGB:      glx.BlendZero,
		blendSrcA:        glx.BlendOne,
		blendDstA:        glx.BlendZero,
		polygonMode:      glx.PolygonFill,
		activeUnit:       glx.Texture0,
		texture2D:        make(map[glx.TextureUnit]glx.Texture),
		samplers:         make(map[uint32]glx.Sampler),
		liveBuffers:      make(map[glx.Buffer]bool),
		liveTextures:     make(map[glx.Texture]bool),
		liveVertexArrays: make(map[glx.VertexArray]bool),
		livePrograms:     make(map[glx.Program]bool),
	}
}

// Enable implements glx.API.
func (a *API) Enable(cap glx.Capability) { a.caps[cap] = true }

// Disable implements glx.API.
func (a *API) Disable(cap glx.Capability) { a.caps[cap] = false }

// IsEnabled implements glx.API.
func (a *API) IsEnabled(cap glx.Capability) bool { return a.caps[cap] }

// BlendEquationSeparate implements glx.API.
func (a *API) BlendEquationSeparate(rgb, alpha glx.BlendEquation) {
	a.blendEqRGB, a.blendEqAlpha = rgb, alpha
}

// BlendFuncSeparate implements glx.API.
func (a *API) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha glx.BlendFactor) {
	a.blendSrcRGB, a.blendDstRGB = srcRGB, dstRGB
	a.blendSrcA, a.blendDstA = srcAlpha, dstAlpha
}

// PolygonMode implements glx.API.
func (a *API) PolygonMode(_ glx.PolygonFace, mode glx.PolygonMode) { a.polygonMode = mode }

// Viewport implements glx.API.
func (a *API) Viewport(x, y, width, height int32) { a.viewport = [4]int32{x, y, width, height} }

// Scissor implements glx.API.
func (a *API) Scissor(x, y, width, height int32) { a.scissorBox = [4]int32{x, y, width, height} }

// GenBuffer implements glx.API.
func (a *API) GenBuffer() glx.Buffer {
	a.nextBuffer++
	b := glx.Buffer(a.nextBuffer)
	a.liveBuffers[b] = true
	a.BuffersCreated++
	return b
}

// BindBuffer implements glx.API.
func (a *API) BindBuffer(target glx.BufferTarget, b glx.Buffer) {
	switch target {
	case glx.ArrayBuffer:
		a.arrayBuffer = b
	case glx.ElementArrayBuffer:
		a.elementArray = b
	}
}

// BufferData implements glx.API.
func (a *API) BufferData(target glx.BufferTarget, data []byte, usage glx.BufferUsage) {
	b := a.arrayBuffer
	if target == glx.ElementArrayBuffer {
		b = a.elementArray
	}
	a.Uploads = append(a.Uploads, Upload{Target: target, Buffer: b, Bytes: len(data), Usage: usage})
}

// DeleteBuffer implements glx.API.
func (a *API) DeleteBuffer(b glx.Buffer) {
	if a.liveBuffers[b] {
		delete(a.liveBuffers, b)
		a.BuffersDeleted++
	}
}

// GenTexture implements glx.API.
func (a *API) GenTexture() glx.Texture {
	a.nextTexture++
	t := glx.Texture(a.nextTexture)
	a.liveTextures[t] = true
	a.TexturesCreated++
	return t
}

// ActiveTexture implements glx.API.
func (a *API) ActiveTexture(unit glx.TextureUnit) { a.activeUnit = unit }

// BindTexture implements glx.API.
func (a *API) BindTexture(t glx.Texture) { a.texture2D[a.activeUnit] = t }

// TexImage2D implements glx.API.
func (a *API) TexImage2D(width, height int32, format gputypes.TextureFormat, pixels []byte) error {
	a.TextureUploads = append(a.TextureUploads, TextureUpload{
		Texture: a.texture2D[a.activeUnit],
		Width:   width,
		Height:  height,
		Format:  format,
		Bytes:   len(pixels),
	})
	return nil
}

// SetTextureFilter implements glx.API.
func (a *API) SetTextureFilter(_, _ glx.TextureFilter) {}

// DeleteTexture implements glx.API.
func (a *API) DeleteTexture(t glx.Texture) {
	if a.liveTextures[t] {
		delete(a.liveTextures, t)
		a.TexturesDeleted++
	}
}

// BindSampler implements glx.API.
func (a *API) BindSampler(unit uint32, s glx.Sampler) { a.samplers[unit] = s }

// GenVertexArray implements glx.API.
func (a *API) GenVertexArray() glx.VertexArray {
	a.nextVertexArray++
	va := glx.VertexArray(a.nextVertexArray)
	a.liveVertexArrays[va] = true
	a.VertexArraysCreated++
	return va
}

// BindVertexArray implements glx.API.
func (a *API) BindVertexArray(va glx.VertexArray) { a.vertexArray = va }

// DeleteVertexArray implements glx.API.
func (a *API) DeleteVertexArray(va glx.VertexArray) {
	if a.liveVertexArrays[va] {
		delete(a.liveVertexArrays, va)
		a.VertexArraysDeleted++
	}
}

// EnableVertexAttrib implements glx.API.
func (a *API) EnableVertexAttrib(uint32) {}

// VertexAttribPointer implements glx.API.
func (a *API) VertexAttribPointer(uint32, int32, glx.AttribType, bool, int32, uintptr) {}

// NewProgram implements glx.API.
func (a *API) NewProgram(_, _ string) (glx.Program, error) {
	if a.FailProgram != nil {
		return 0, a.FailProgram
	}
	a.nextProgram++
	p := glx.Program(a.nextProgram)
	a.livePrograms[p] = true
	a.ProgramsCreated++
	return p, nil
}

// UseProgram implements glx.API.
func (a *API) UseProgram(p glx.Program) { a.program = p }

// DeleteProgram implements glx.API.
func (a *API) DeleteProgram(p glx.Program) {
	if a.livePrograms[p] {
		delete(a.livePrograms, p)
		a.ProgramsDeleted++
	}
}

// UniformLocation implements glx.API.
func (a *API) UniformLocation(_ glx.Program, name string) glx.UniformLocation {
	// Stable nonzero locations derived from the name length keep the
	// renderer's bookkeeping observable without a real linker.
	return glx.UniformLocation(len(name))
}

// UniformMatrix4 implements glx.API.
func (a *API) UniformMatrix4(glx.UniformLocation, *[16]float32) {}

// Uniform1i implements glx.API.
func (a *API) Uniform1i(glx.UniformLocation, int32) {}

// DrawElementsBaseVertex implements glx.API.
func (a *API) DrawElementsBaseVertex(mode glx.Primitive, count int32, typ glx.IndexType, indexOffset uintptr, baseVertex int32) {
	a.Draws = append(a.Draws, DrawCall{
		Mode:        mode,
		Count:       count,
		IndexType:   typ,
		IndexOffset: indexOffset,
		BaseVertex:  baseVertex,
		Scissor:     a.scissorBox,
		Texture:     a.texture2D[a.activeUnit],
		Program:     a.program,
		Blend:       a.caps[glx.CapBlend],
		ScissorOn:   a.caps[glx.CapScissorTest],
	})
}

// GetInteger implements glx.API.
func (a *API) GetInteger(p glx.Param) int32 {
	switch p {
	case glx.ParamActiveTexture:
		return int32(a.activeUnit)
	case glx.ParamCurrentProgram:
		return int32(a.program)
	case glx.ParamTextureBinding2D:
		return int32(a.texture2D[a.activeUnit])
	case glx.ParamSamplerBinding:
		return int32(a.samplers[uint32(a.activeUnit.Index())])
	case glx.ParamVertexArrayBinding:
		return int32(a.vertexArray)
	case glx.ParamArrayBufferBinding:
		return int32(a.arrayBuffer)
	case glx.ParamBlendSrcRGB:
		return int32(a.blendSrcRGB)
	case glx.ParamBlendDstRGB:
		return int32(a.blendDstRGB)
	case glx.ParamBlendSrcAlpha:
		return int32(a.blendSrcA)
	case glx.ParamBlendDstAlpha:
		return int32(a.blendDstA)
	case glx.ParamBlendEquationRGB:
		return int32(a.blendEqRGB)
	case glx.ParamBlendEquationAlpha:
		return int32(a.blendEqAlpha)
	case glx.ParamPolygonMode:
		return int32(a.polygonMode)
	default:
		panic(fmt.Sprintf("fakegl: unsupported scalar query %v", uint32(p)))
	}
}

// GetInteger4 implements glx.API.
func (a *API) GetInteger4(p glx.Param) [4]int32 {
	switch p {
	case glx.ParamScissorBox:
		return a.scissorBox
	case glx.ParamViewport:
		return a.viewport
	default:
		panic(fmt.Sprintf("fakegl: unsupported vector query %v", uint32(p)))
	}
}

// QueueError arranges for the next Err calls to report the given codes in
// order.
func (a *API) QueueError(codes ...glx.ErrorCode) {
	a.errQueue = append(a.errQueue, codes...)
}

// Err implements glx.API.
func (a *API) Err() glx.ErrorCode {
	if len(a.errQueue) == 0 {
		return glx.NoError
	}
	code := a.errQueue[0]
	a.errQueue = a.errQueue[1:]
	return code
}

// LiveBuffers returns the number of undeleted buffers.
func (a *API) LiveBuffers() int { return len(a.liveBuffers) }

// LiveTextures returns the number of undeleted textures.
func (a *API) LiveTextures() int { return len(a.liveTextures) }

// LiveVertexArrays returns the number of undeleted vertex arrays.
func (a *API) LiveVertexArrays() int { return len(a.liveVertexArrays) }

// LivePrograms returns the number of undeleted programs.
func (a *API) LivePrograms() int { return len(a.livePrograms) }
