// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glx

import "github.com/gogpu/gputypes"

// API is the complete capability surface the bridge needs from a stateful
// rasterization backend.
//
// The interface is deliberately GL-shaped: handles are small integers,
// binding points are global, and most mutators return nothing because the
// underlying API reports failures through a sticky error flag (polled with
// [API.Err] by the debug checks). The two genuinely fallible operations —
// program linking and texture upload — return errors directly.
//
// Thread Safety: implementations are NOT safe for concurrent use. All calls
// must come from the single thread that owns the graphics context.
type API interface {
	// Enable turns a pipeline capability on.
	Enable(cap Capability)

	// Disable turns a pipeline capability off.
	Disable(cap Capability)

	// IsEnabled reports whether a pipeline capability is currently on.
	IsEnabled(cap Capability) bool

	// BlendEquationSeparate sets the blend equations for the RGB and alpha
	// channels.
	BlendEquationSeparate(rgb, alpha BlendEquation)

	// BlendFuncSeparate sets the four blend factors.
	BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha BlendFactor)

	// PolygonMode sets the polygon rasterization mode.
	PolygonMode(face PolygonFace, mode PolygonMode)

	// Viewport sets the viewport rectangle in framebuffer pixels.
	Viewport(x, y, width, height int32)

	// Scissor sets the scissor rectangle in framebuffer pixels.
	Scissor(x, y, width, height int32)

	// GenBuffer creates a new buffer object.
	GenBuffer() Buffer

	// BindBuffer binds a buffer to a binding point.
	BindBuffer(target BufferTarget, b Buffer)

	// BufferData replaces the entire data store of the buffer bound to
	// target. Partial updates are not part of this surface.
	BufferData(target BufferTarget, data []byte, usage BufferUsage)

	// DeleteBuffer destroys a buffer object.
	DeleteBuffer(b Buffer)

	// GenTexture creates a new texture object.
	GenTexture() Texture

	// ActiveTexture selects the active texture image unit.
	ActiveTexture(unit TextureUnit)

	// BindTexture binds a 2D texture on the active unit.
	BindTexture(t Texture)

	// TexImage2D uploads a full 2D image to the texture bound on the
	// active unit. The pixel slice length must be
	// width*height*bytes-per-pixel for the format.
	TexImage2D(width, height int32, format gputypes.TextureFormat, pixels []byte) error

	// SetTextureFilter sets the min/mag filters of the bound 2D texture.
	SetTextureFilter(min, mag TextureFilter)

	// DeleteTexture destroys a texture object.
	DeleteTexture(t Texture)

	// BindSampler binds a sampler object to a zero-based texture unit
	// index. Binding the zero sampler restores per-texture parameters.
	BindSampler(unit uint32, s Sampler)

	// GenVertexArray creates a new vertex array object.
	GenVertexArray() VertexArray

	// BindVertexArray binds a vertex array object.
	BindVertexArray(va VertexArray)

	// DeleteVertexArray destroys a vertex array object.
	DeleteVertexArray(va VertexArray)

	// EnableVertexAttrib enables a vertex attribute slot on the bound
	// vertex array.
	EnableVertexAttrib(index uint32)

	// VertexAttribPointer describes one attribute of the bound array
	// buffer: component count, component type, integer normalization,
	// byte stride and byte offset.
	VertexAttribPointer(index uint32, size int32, typ AttribType, normalized bool, stride int32, offset uintptr)

	// NewProgram compiles the two shader stages and links them into a
	// program. On compile or link failure the returned error carries the
	// driver's information log.
	NewProgram(vertexSrc, fragmentSrc string) (Program, error)

	// UseProgram makes a program current.
	UseProgram(p Program)

	// DeleteProgram destroys a program object.
	DeleteProgram(p Program)

	// UniformLocation resolves a uniform name within a linked program.
	UniformLocation(p Program, name string) UniformLocation

	// UniformMatrix4 uploads a 4x4 float32 matrix (column-major).
	UniformMatrix4(loc UniformLocation, m *[16]float32)

	// Uniform1i uploads a single int32 uniform (sampler bindings).
	Uniform1i(loc UniformLocation, v int32)

	// DrawElementsBaseVertex issues one indexed draw: count indices of
	// type typ starting at indexOffset bytes into the bound element
	// buffer, with baseVertex added to every index.
	DrawElementsBaseVertex(mode Primitive, count int32, typ IndexType, indexOffset uintptr, baseVertex int32)

	// GetInteger queries a scalar piece of pipeline state.
	GetInteger(p Param) int32

	// GetInteger4 queries a four-component piece of pipeline state
	// (scissor box, viewport).
	GetInteger4(p Param) [4]int32

	// Err polls and clears the sticky error flag.
	Err() ErrorCode
}
