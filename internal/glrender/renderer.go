// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glrender

import (
	"unsafe"

	"github.com/chewxy/math32"

	"github.com/gogpu/imgl/drawdata"
	"github.com/gogpu/imgl/glx"
)

// FrameStats summarizes one render call.
type FrameStats struct {
	// DrawCalls is the number of indexed draws issued.
	DrawCalls int

	// SkippedCommands counts commands dropped for degenerate or fully
	// off-screen clip rectangles.
	SkippedCommands int

	// Vertices and Indices are the totals uploaded this frame.
	Vertices int
	Indices  int
}

// Renderer consumes one draw-data snapshot per frame and turns it into
// buffer uploads and indexed draw calls.
//
// The renderer guarantees one draw call per non-degenerate command, in
// list order. Order is not negotiable: overlapping UI elements rely on
// painter's-algorithm ordering.
type Renderer struct {
	api glx.API
	res *Resources
}

// NewRenderer creates a renderer over an initialized resource set.
func NewRenderer(api glx.API, res *Resources) *Renderer {
	return &Renderer{api: api, res: res}
}

// Render draws one snapshot. The snapshot is owned by this call: nothing
// is retained once Render returns.
//
// Each draw list's vertex and index ranges are uploaded together in one
// buffer-update call each (stream usage, full replacement); partial
// buffer updates are not supported by design.
func (r *Renderer) Render(dd *drawdata.DrawData) (FrameStats, error) {
	var stats FrameStats
	if !r.res.initialized {
		return stats, ErrNotInitialized
	}

	fbWidth, fbHeight := dd.FramebufferSize()
	if fbWidth <= 0 || fbHeight <= 0 {
		// Minimized window: nothing to rasterize.
		return stats, nil
	}

	projection := ortho(dd)
	r.res.bindForFrame(fbWidth, fbHeight, &projection)

	for li := range dd.Lists {
		list := &dd.Lists[li]
		if len(list.Vertices) == 0 || len(list.Indices) == 0 {
			continue
		}
		r.api.BufferData(glx.ArrayBuffer, vertexBytes(list.Vertices), glx.StreamDraw)
		r.api.BufferData(glx.ElementArrayBuffer, indexBytes(list.Indices), glx.StreamDraw)
		stats.Vertices += len(list.Vertices)
		stats.Indices += len(list.Indices)
		debugCheck(r.api, "Renderer.Render/upload")

		for ci := range list.Commands {
			cmd := &list.Commands[ci]
			sc, ok := scissorRect(cmd.ClipRect, dd, fbWidth, fbHeight)
			if !ok {
				stats.SkippedCommands++
				continue
			}
			r.api.Scissor(sc[0], sc[1], sc[2], sc[3])
			r.api.BindTexture(cmd.Texture)
			r.api.DrawElementsBaseVertex(glx.Triangles, int32(cmd.IndexCount),
				glx.IndexUnsignedInt, uintptr(cmd.IndexOffset)*4, cmd.VertexOffset)
			stats.DrawCalls++
			debugCheck(r.api, "Renderer.Render/draw")
		}
	}

	slogger().Debug("glrender: frame",
		"drawCalls", stats.DrawCalls,
		"skipped", stats.SkippedCommands,
		"vertices", stats.Vertices)
	return stats, nil
}

// scissorRect transforms a display-space clip rectangle into a
// framebuffer-space scissor rectangle, applying the framebuffer scale and
// the Y-flip (GL scissor origin is the lower-left corner).
//
// Rounding is asymmetric on purpose: the position corners are floored
// while the extents are ceiled. UI element edges are scissored
// pixel-perfectly under this exact rule and it must not be "fixed" to a
// symmetric rounding.
//
// ok is false for commands whose rectangle is degenerate or does not
// intersect [0, fbWidth) x [0, fbHeight); such commands produce no draw
// call at all.
func scissorRect(clip [4]float32, dd *drawdata.DrawData, fbWidth, fbHeight int32) (rect [4]int32, ok bool) {
	sx, sy := dd.FramebufferScale[0], dd.FramebufferScale[1]
	x1 := (clip[0] - dd.DisplayX) * sx
	y1 := (clip[1] - dd.DisplayY) * sy
	x2 := (clip[2] - dd.DisplayX) * sx
	y2 := (clip[3] - dd.DisplayY) * sy

	if x2 <= x1 || y2 <= y1 {
		return rect, false
	}
	if x1 >= float32(fbWidth) || y1 >= float32(fbHeight) || x2 <= 0 || y2 <= 0 {
		return rect, false
	}

	rect[0] = int32(math32.Floor(x1))
	rect[1] = int32(math32.Floor(float32(fbHeight) - y2))
	rect[2] = int32(math32.Ceil(x2 - x1))
	rect[3] = int32(math32.Ceil(y2 - y1))
	if rect[2] < 0 {
		rect[2] = 0
	}
	if rect[3] < 0 {
		rect[3] = 0
	}
	return rect, true
}

// ortho builds the UI pass projection from the snapshot's display origin
// and size: display space to clip space, Y down.
//
// The matrix is computed in double precision and narrowed only for the
// uniform upload; at large display-position offsets single-precision
// accumulation visibly drifts.
func ortho(dd *drawdata.DrawData) [16]float32 {
	l := float64(dd.DisplayX)
	r := float64(dd.DisplayX) + float64(dd.DisplayWidth)
	t := float64(dd.DisplayY)
	b := float64(dd.DisplayY) + float64(dd.DisplayHeight)

	return [16]float32{
		float32(2.0 / (r - l)), 0, 0, 0,
		0, float32(2.0 / (t - b)), 0, 0,
		0, 0, -1, 0,
		float32((r + l) / (l - r)), float32((t + b) / (b - t)), 0, 1,
	}
}

// vertexBytes reinterprets the vertex slice as raw bytes for upload. The
// Vertex layout is exactly the wire layout; no copy is made.
func vertexBytes(v []drawdata.Vertex) []byte {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*drawdata.VertexStride)
}

// indexBytes reinterprets the index slice as raw bytes for upload.
func indexBytes(idx []uint32) []byte {
	if len(idx) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&idx[0])), len(idx)*4)
}
