// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package drawdata models the per-frame output of an immediate-mode UI
// core: shared vertex/index buffers plus an ordered list of draw commands
// with clip rectangles and texture references.
//
// A DrawData value is a snapshot. It is built (or handed over) once per
// frame, consumed by exactly one render call, and discarded; nothing in
// this package retains it across frames.
package drawdata

import (
	"errors"
	"fmt"

	"github.com/gogpu/imgl/glx"
)

// Snapshot validation errors.
var (
	// ErrBadScale is returned when a framebuffer scale component is not
	// strictly positive.
	ErrBadScale = errors.New("drawdata: framebuffer scale must be positive")

	// ErrBadDisplaySize is returned when the display size is negative.
	ErrBadDisplaySize = errors.New("drawdata: display size must not be negative")

	// ErrCommandOutOfRange is returned when a command's index or vertex
	// range falls outside its list's buffers.
	ErrCommandOutOfRange = errors.New("drawdata: command range outside list buffers")
)

// VertexStride is the byte size of one Vertex as laid out in the shared
// vertex buffer: two float32 positions, two float32 UVs, four uint8 color
// components.
const VertexStride = 20

// Vertex is one element of the shared vertex buffer.
//
// The field order matches the attribute layout the renderer declares;
// the struct is uploaded to the GPU verbatim.
type Vertex struct {
	// Pos is the position in the snapshot's display space (logical units).
	Pos [2]float32

	// UV is the texture coordinate.
	UV [2]float32

	// Color is the non-premultiplied RGBA vertex color.
	Color [4]uint8
}

// DrawCommand is one draw call worth of state: a clip rectangle in display
// space, the texture to sample, and a sub-range of the owning list's
// buffers.
type DrawCommand struct {
	// ClipRect is the clip rectangle as (x1, y1, x2, y2) in the
	// snapshot's display space. It must be transformed into framebuffer
	// pixel space (scale and Y-flip) before use as a scissor rectangle.
	ClipRect [4]float32

	// Texture is the texture sampled by this command, typically the font
	// atlas.
	Texture glx.Texture

	// IndexCount is the number of indices consumed.
	IndexCount uint32

	// IndexOffset is the first index within the list's index buffer.
	IndexOffset uint32

	// VertexOffset is added to every index to locate vertices within the
	// list's vertex buffer.
	VertexOffset int32
}

// DrawList is an ordered run of commands with its own vertex/index
// sub-buffers. Each list's buffers are uploaded together in one buffer
// update; incremental updates are not supported.
type DrawList struct {
	// Vertices is the list's vertex data.
	Vertices []Vertex

	// Indices is the list's index data, relative to the commands'
	// VertexOffset.
	Indices []uint32

	// Commands is the ordered command run. Order is significant: UI
	// elements overlap back to front.
	Commands []DrawCommand
}

// DrawData is the complete draw-data snapshot for one frame.
type DrawData struct {
	// DisplayX, DisplayY are the origin of the display area in logical
	// units. Non-zero on hosts that place the UI away from the window
	// origin.
	DisplayX, DisplayY float32

	// DisplayWidth, DisplayHeight are the display size in logical units.
	DisplayWidth, DisplayHeight float32

	// FramebufferScale is the device-pixels-per-logical-unit factor for
	// each axis.
	FramebufferScale [2]float32

	// Lists is the ordered sequence of draw command lists.
	Lists []DrawList
}

// FramebufferSize returns the framebuffer size in device pixels implied by
// the display size and scale.
func (d *DrawData) FramebufferSize() (width, height int32) {
	return int32(d.DisplayWidth * d.FramebufferScale[0]),
		int32(d.DisplayHeight * d.FramebufferScale[1])
}

// TotalVertexCount returns the vertex count summed over all lists.
func (d *DrawData) TotalVertexCount() int {
	n := 0
	for i := range d.Lists {
		n += len(d.Lists[i].Vertices)
	}
	return n
}

// TotalIndexCount returns the index count summed over all lists.
func (d *DrawData) TotalIndexCount() int {
	n := 0
	for i := range d.Lists {
		n += len(d.Lists[i].Indices)
	}
	return n
}

// Validate checks the snapshot's internal consistency: positive scale,
// non-negative display size, and every command's index and vertex ranges
// inside its list's buffers.
func (d *DrawData) Validate() error {
	if d.FramebufferScale[0] <= 0 || d.FramebufferScale[1] <= 0 {
		return fmt.Errorf("%w: got (%g, %g)", ErrBadScale,
			d.FramebufferScale[0], d.FramebufferScale[1])
	}
	if d.DisplayWidth < 0 || d.DisplayHeight < 0 {
		return fmt.Errorf("%w: got %gx%g", ErrBadDisplaySize,
			d.DisplayWidth, d.DisplayHeight)
	}
	for li := range d.Lists {
		list := &d.Lists[li]
		for ci := range list.Commands {
			cmd := &list.Commands[ci]
			end := uint64(cmd.IndexOffset) + uint64(cmd.IndexCount)
			if end > uint64(len(list.Indices)) {
				return fmt.Errorf("%w: list %d command %d indices [%d, %d) of %d",
					ErrCommandOutOfRange, li, ci, cmd.IndexOffset, end, len(list.Indices))
			}
			if cmd.VertexOffset < 0 || int(cmd.VertexOffset) > len(list.Vertices) {
				return fmt.Errorf("%w: list %d command %d vertex offset %d of %d",
					ErrCommandOutOfRange, li, ci, cmd.VertexOffset, len(list.Vertices))
			}
		}
	}
	return nil
}
