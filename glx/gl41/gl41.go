// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gl41 implements the glx capability surface on OpenGL 4.1 core
// using github.com/go-gl/gl.
//
// The host is responsible for making a 4.1 core context current on the
// calling thread and for calling gl.Init once before the backend is used
// (glfw hosts typically do both right after window creation).
package gl41

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/imgl/glx"
)

// Backend errors.
var (
	// ErrCompile is returned when a shader stage fails to compile.
	ErrCompile = errors.New("gl41: shader compilation failed")

	// ErrLink is returned when program linking fails.
	ErrLink = errors.New("gl41: program link failed")

	// ErrUnsupportedFormat is returned for texture formats the backend
	// cannot map to a GL internal format.
	ErrUnsupportedFormat = errors.New("gl41: unsupported texture format")
)

// API is the OpenGL 4.1 core implementation of glx.API.
//
// The type is stateless; every method translates directly to one or two GL
// calls against the context current on the calling thread.
type API struct{}

// New returns the OpenGL 4.1 backend.
func New() *API { return &API{} }

var _ glx.API = (*API)(nil)

// Enable implements glx.API.
func (*API) Enable(cap glx.Capability) { gl.Enable(uint32(cap)) }

// Disable implements glx.API.
func (*API) Disable(cap glx.Capability) { gl.Disable(uint32(cap)) }

// IsEnabled implements glx.API.
func (*API) IsEnabled(cap glx.Capability) bool { return gl.IsEnabled(uint32(cap)) }

// BlendEquationSeparate implements glx.API.
func (*API) BlendEquationSeparate(rgb, alpha glx.BlendEquation) {
	gl.BlendEquationSeparate(uint32(rgb), uint32(alpha))
}

// BlendFuncSeparate implements glx.API.
func (*API) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha glx.BlendFactor) {
	gl.BlendFuncSeparate(uint32(srcRGB), uint32(dstRGB), uint32(srcAlpha), uint32(dstAlpha))
}

// PolygonMode implements glx.API.
func (*API) PolygonMode(face glx.PolygonFace, mode glx.PolygonMode) {
	gl.PolygonMode(uint32(face), uint32(mode))
}

// Viewport implements glx.API.
func (*API) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

// Scissor implements glx.API.
func (*API) Scissor(x, y, width, height int32) { gl.Scissor(x, y, width, height) }

// GenBuffer implements glx.API.
func (*API) GenBuffer() glx.Buffer {
	var b uint32
	gl.GenBuffers(1, &b)
	return glx.Buffer(b)
}

// BindBuffer implements glx.API.
func (*API) BindBuffer(target glx.BufferTarget, b glx.Buffer) {
	gl.BindBuffer(uint32(target), uint32(b))
}

// BufferData implements glx.API.
func (*API) BufferData(target glx.BufferTarget, data []byte, usage glx.BufferUsage) {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = gl.Ptr(data)
	}
	gl.BufferData(uint32(target), len(data), ptr, uint32(usage))
}

// DeleteBuffer implements glx.API.
func (*API) DeleteBuffer(b glx.Buffer) {
	bb := uint32(b)
	gl.DeleteBuffers(1, &bb)
}

// GenTexture implements glx.API.
func (*API) GenTexture() glx.Texture {
	var t uint32
	gl.GenTextures(1, &t)
	return glx.Texture(t)
}

// ActiveTexture implements glx.API.
func (*API) ActiveTexture(unit glx.TextureUnit) { gl.ActiveTexture(uint32(unit)) }

// BindTexture implements glx.API.
func (*API) BindTexture(t glx.Texture) { gl.BindTexture(gl.TEXTURE_2D, uint32(t)) }

// TexImage2D implements glx.API.
func (*API) TexImage2D(width, height int32, format gputypes.TextureFormat, pixels []byte) error {
	internal, layout, err := glFormat(format)
	if err != nil {
		return err
	}
	var ptr unsafe.Pointer
	if len(pixels) > 0 {
		ptr = gl.Ptr(pixels)
	}
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, width, height, 0, layout, gl.UNSIGNED_BYTE, ptr)
	return nil
}

// glFormat maps the neutral texture format vocabulary to a GL internal
// format and pixel layout.
func glFormat(f gputypes.TextureFormat) (internal int32, layout uint32, err error) {
	switch f {
	case gputypes.TextureFormatRGBA8Unorm:
		return gl.RGBA8, gl.RGBA, nil
	case gputypes.TextureFormatBGRA8Unorm:
		return gl.RGBA8, gl.BGRA, nil
	case gputypes.TextureFormatR8Unorm:
		return gl.R8, gl.RED, nil
	default:
		return 0, 0, fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}
}

// SetTextureFilter implements glx.API.
func (*API) SetTextureFilter(min, mag glx.TextureFilter) {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, int32(min))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, int32(mag))
}

// DeleteTexture implements glx.API.
func (*API) DeleteTexture(t glx.Texture) {
	tt := uint32(t)
	gl.DeleteTextures(1, &tt)
}

// BindSampler implements glx.API.
func (*API) BindSampler(unit uint32, s glx.Sampler) { gl.BindSampler(unit, uint32(s)) }

// GenVertexArray implements glx.API.
func (*API) GenVertexArray() glx.VertexArray {
	var va uint32
	gl.GenVertexArrays(1, &va)
	return glx.VertexArray(va)
}

// BindVertexArray implements glx.API.
func (*API) BindVertexArray(va glx.VertexArray) { gl.BindVertexArray(uint32(va)) }

// DeleteVertexArray implements glx.API.
func (*API) DeleteVertexArray(va glx.VertexArray) {
	v := uint32(va)
	gl.DeleteVertexArrays(1, &v)
}

// EnableVertexAttrib implements glx.API.
func (*API) EnableVertexAttrib(index uint32) { gl.EnableVertexAttribArray(index) }

// VertexAttribPointer implements glx.API.
func (*API) VertexAttribPointer(index uint32, size int32, typ glx.AttribType, normalized bool, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(index, size, uint32(typ), normalized, stride, offset)
}

// NewProgram implements glx.API.
func (*API) NewProgram(vertexSrc, fragmentSrc string) (glx.Program, error) {
	vs, err := compileShader(gl.VERTEX_SHADER, vertexSrc)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vs)

	fs, err := compileShader(gl.FRAGMENT_SHADER, fragmentSrc)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fs)

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		log := programInfoLog(prog)
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("%w: %s", ErrLink, log)
	}
	return glx.Program(prog), nil
}

// compileShader compiles one shader stage, returning the info log on
// failure.
func compileShader(stage uint32, src string) (uint32, error) {
	shader := gl.CreateShader(stage)
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen)+1)
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%w (stage 0x%04X): %s", ErrCompile, stage, strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

// programInfoLog fetches the link-time information log of a program.
func programInfoLog(prog uint32) string {
	var logLen int32
	gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
	log := strings.Repeat("\x00", int(logLen)+1)
	gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

// UseProgram implements glx.API.
func (*API) UseProgram(p glx.Program) { gl.UseProgram(uint32(p)) }

// DeleteProgram implements glx.API.
func (*API) DeleteProgram(p glx.Program) { gl.DeleteProgram(uint32(p)) }

// UniformLocation implements glx.API.
func (*API) UniformLocation(p glx.Program, name string) glx.UniformLocation {
	return glx.UniformLocation(gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00")))
}

// UniformMatrix4 implements glx.API.
func (*API) UniformMatrix4(loc glx.UniformLocation, m *[16]float32) {
	gl.UniformMatrix4fv(int32(loc), 1, false, &m[0])
}

// Uniform1i implements glx.API.
func (*API) Uniform1i(loc glx.UniformLocation, v int32) { gl.Uniform1i(int32(loc), v) }

// DrawElementsBaseVertex implements glx.API.
func (*API) DrawElementsBaseVertex(mode glx.Primitive, count int32, typ glx.IndexType, indexOffset uintptr, baseVertex int32) {
	gl.DrawElementsBaseVertexWithOffset(uint32(mode), count, uint32(typ), indexOffset, baseVertex)
}

// GetInteger implements glx.API.
func (*API) GetInteger(p glx.Param) int32 {
	var v int32
	gl.GetIntegerv(uint32(p), &v)
	return v
}

// GetInteger4 implements glx.API.
func (*API) GetInteger4(p glx.Param) [4]int32 {
	var v [4]int32
	gl.GetIntegerv(uint32(p), &v[0])
	return v
}

// Err implements glx.API.
func (*API) Err() glx.ErrorCode { return glx.ErrorCode(gl.GetError()) }
