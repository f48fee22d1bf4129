// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glx

import "fmt"

// Capability is a pipeline toggle controlled with Enable/Disable.
type Capability uint32

// Pipeline capabilities touched by the bridge.
const (
	CapBlend       Capability = 0x0BE2
	CapCullFace    Capability = 0x0B44
	CapDepthTest   Capability = 0x0B71
	CapStencilTest Capability = 0x0B90
	CapScissorTest Capability = 0x0C11
)

// String returns a human-readable name for the capability.
func (c Capability) String() string {
	switch c {
	case CapBlend:
		return "Blend"
	case CapCullFace:
		return "CullFace"
	case CapDepthTest:
		return "DepthTest"
	case CapStencilTest:
		return "StencilTest"
	case CapScissorTest:
		return "ScissorTest"
	default:
		return fmt.Sprintf("Capability(0x%04X)", uint32(c))
	}
}

// BlendEquation selects how source and destination colors are combined.
type BlendEquation uint32

// Blend equations.
const (
	BlendEquationAdd             BlendEquation = 0x8006
	BlendEquationSubtract        BlendEquation = 0x800A
	BlendEquationReverseSubtract BlendEquation = 0x800B
	BlendEquationMin             BlendEquation = 0x8007
	BlendEquationMax             BlendEquation = 0x8008
)

// BlendFactor scales a blend input.
type BlendFactor uint32

// Blend factors.
const (
	BlendZero             BlendFactor = 0
	BlendOne              BlendFactor = 1
	BlendSrcColor         BlendFactor = 0x0300
	BlendOneMinusSrcColor BlendFactor = 0x0301
	BlendSrcAlpha         BlendFactor = 0x0302
	BlendOneMinusSrcAlpha BlendFactor = 0x0303
	BlendDstAlpha         BlendFactor = 0x0304
	BlendOneMinusDstAlpha BlendFactor = 0x0305
	BlendDstColor         BlendFactor = 0x0306
	BlendOneMinusDstColor BlendFactor = 0x0307
)

// BufferTarget is a buffer binding point.
type BufferTarget uint32

// Buffer binding points.
const (
	ArrayBuffer        BufferTarget = 0x8892
	ElementArrayBuffer BufferTarget = 0x8893
)

// String returns a human-readable name for the target.
func (t BufferTarget) String() string {
	switch t {
	case ArrayBuffer:
		return "ArrayBuffer"
	case ElementArrayBuffer:
		return "ElementArrayBuffer"
	default:
		return fmt.Sprintf("BufferTarget(0x%04X)", uint32(t))
	}
}

// BufferUsage is the upload frequency hint passed with buffer data.
type BufferUsage uint32

// Buffer usage hints.
const (
	StreamDraw  BufferUsage = 0x88E0
	StaticDraw  BufferUsage = 0x88E4
	DynamicDraw BufferUsage = 0x88E8
)

// Primitive is the primitive topology of a draw call.
type Primitive uint32

// Primitive topologies.
const (
	Triangles Primitive = 0x0004
)

// IndexType is the element type of an index buffer.
type IndexType uint32

// Index element types.
const (
	IndexUnsignedShort IndexType = 0x1403
	IndexUnsignedInt   IndexType = 0x1405
)

// AttribType is the component type of a vertex attribute.
type AttribType uint32

// Vertex attribute component types.
const (
	AttribFloat        AttribType = 0x1406
	AttribUnsignedByte AttribType = 0x1401
)

// TextureFilter selects a texture minification/magnification filter.
type TextureFilter uint32

// Texture filters.
const (
	FilterNearest TextureFilter = 0x2600
	FilterLinear  TextureFilter = 0x2601
)

// TextureUnit identifies a texture image unit. Units are encoded the way
// the GL does: Texture0 plus an offset.
type TextureUnit uint32

// Texture0 is the first texture image unit.
const Texture0 TextureUnit = 0x84C0

// Index returns the zero-based index of the unit.
func (u TextureUnit) Index() int { return int(u - Texture0) }

// PolygonFace selects which faces a polygon mode applies to.
type PolygonFace uint32

// FrontAndBack is the only face selector core profiles accept.
const FrontAndBack PolygonFace = 0x0408

// PolygonMode selects how polygons are rasterized.
type PolygonMode uint32

// Polygon rasterization modes.
const (
	PolygonPoint PolygonMode = 0x1B00
	PolygonLine  PolygonMode = 0x1B01
	PolygonFill  PolygonMode = 0x1B02
)

// Param names a queryable piece of pipeline state.
type Param uint32

// Scalar state queries.
const (
	ParamActiveTexture      Param = 0x84E0
	ParamCurrentProgram     Param = 0x8B8D
	ParamTextureBinding2D   Param = 0x8069
	ParamSamplerBinding     Param = 0x8919
	ParamVertexArrayBinding Param = 0x85B5
	ParamArrayBufferBinding Param = 0x8894
	ParamBlendSrcRGB        Param = 0x80C9
	ParamBlendDstRGB        Param = 0x80C8
	ParamBlendSrcAlpha      Param = 0x80CB
	ParamBlendDstAlpha      Param = 0x80CA
	ParamBlendEquationRGB   Param = 0x8009
	ParamBlendEquationAlpha Param = 0x883D
	ParamPolygonMode        Param = 0x0B40
)

// Vector state queries (four components).
const (
	ParamScissorBox Param = 0x0C10
	ParamViewport   Param = 0x0BA2
)

// Handle types. The zero value of every handle means "none"; binding a zero
// handle unbinds the slot.
type (
	// Buffer is an opaque buffer object handle.
	Buffer uint32

	// Texture is an opaque texture object handle.
	Texture uint32

	// Program is an opaque linked shader program handle.
	Program uint32

	// VertexArray is an opaque vertex array object handle.
	VertexArray uint32

	// Sampler is an opaque sampler object handle.
	Sampler uint32
)

// UniformLocation addresses a uniform within a linked program.
// A negative location means the uniform was not found.
type UniformLocation int32

// ErrorCode is the sticky error flag reported by the rasterization API.
type ErrorCode uint32

// Error codes.
const (
	NoError                     ErrorCode = 0
	InvalidEnum                 ErrorCode = 0x0500
	InvalidValue                ErrorCode = 0x0501
	InvalidOperation            ErrorCode = 0x0502
	OutOfMemory                 ErrorCode = 0x0505
	InvalidFramebufferOperation ErrorCode = 0x0506
)

// String returns a human-readable name for the error code.
func (e ErrorCode) String() string {
	switch e {
	case NoError:
		return "NoError"
	case InvalidEnum:
		return "InvalidEnum"
	case InvalidValue:
		return "InvalidValue"
	case InvalidOperation:
		return "InvalidOperation"
	case OutOfMemory:
		return "OutOfMemory"
	case InvalidFramebufferOperation:
		return "InvalidFramebufferOperation"
	default:
		return fmt.Sprintf("ErrorCode(0x%04X)", uint32(e))
	}
}
