// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glrender

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/imgl/drawdata"
	"github.com/gogpu/imgl/glx"
	"github.com/gogpu/imgl/internal/fakegl"
)

// newTestRenderer builds an initialized renderer over the fake backend.
func newTestRenderer(t *testing.T) (*fakegl.API, *Renderer) {
	t.Helper()
	api := fakegl.New()
	res := NewResources(api)
	if err := res.Init(testAtlas()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return api, NewRenderer(api, res)
}

// quadData builds a snapshot with one textured quad covering (x0,y0)-(x1,y1).
func quadData(w, h float32, tex glx.Texture) *drawdata.DrawData {
	col := [4]uint8{255, 255, 255, 255}
	return &drawdata.DrawData{
		DisplayWidth:     w,
		DisplayHeight:    h,
		FramebufferScale: [2]float32{1, 1},
		Lists: []drawdata.DrawList{{
			Vertices: []drawdata.Vertex{
				{Pos: [2]float32{10, 10}, Color: col},
				{Pos: [2]float32{90, 10}, Color: col},
				{Pos: [2]float32{90, 90}, Color: col},
				{Pos: [2]float32{10, 90}, Color: col},
			},
			Indices: []uint32{0, 1, 2, 0, 2, 3},
			Commands: []drawdata.DrawCommand{{
				ClipRect:   [4]float32{0, 0, w, h},
				Texture:    tex,
				IndexCount: 6,
			}},
		}},
	}
}

func TestRenderOneQuadOneDrawCall(t *testing.T) {
	api, r := newTestRenderer(t)
	tex := glx.Texture(7)
	dd := quadData(100, 100, tex)

	stats, err := r.Render(dd)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if stats.DrawCalls != 1 || stats.Vertices != 4 || stats.Indices != 6 {
		t.Fatalf("stats = %+v, want 1 draw / 4 vertices / 6 indices", stats)
	}
	if len(api.Draws) != 1 {
		t.Fatalf("recorded %d draw calls, want 1", len(api.Draws))
	}

	draw := api.Draws[0]
	if draw.Mode != glx.Triangles || draw.Count != 6 || draw.IndexType != glx.IndexUnsignedInt {
		t.Errorf("draw = %+v, want 6 triangles with uint indices", draw)
	}
	if draw.Texture != tex {
		t.Errorf("draw sampled texture %d, want %d", draw.Texture, tex)
	}
	if !draw.Blend || !draw.ScissorOn {
		t.Errorf("draw state blend=%v scissor=%v, want both enabled", draw.Blend, draw.ScissorOn)
	}
	if draw.Scissor != ([4]int32{0, 0, 100, 100}) {
		t.Errorf("scissor = %v, want full framebuffer", draw.Scissor)
	}

	// One stream upload per buffer.
	if len(api.Uploads) != 2 {
		t.Fatalf("recorded %d buffer uploads, want 2", len(api.Uploads))
	}
	if api.Uploads[0].Target != glx.ArrayBuffer || api.Uploads[0].Bytes != 4*drawdata.VertexStride {
		t.Errorf("vertex upload = %+v, want %d bytes to ArrayBuffer", api.Uploads[0], 4*drawdata.VertexStride)
	}
	if api.Uploads[1].Target != glx.ElementArrayBuffer || api.Uploads[1].Bytes != 6*4 {
		t.Errorf("index upload = %+v, want %d bytes to ElementArrayBuffer", api.Uploads[1], 6*4)
	}
	if api.Uploads[0].Usage != glx.StreamDraw {
		t.Errorf("upload usage = %v, want StreamDraw", api.Uploads[0].Usage)
	}
}

func TestRenderNotInitialized(t *testing.T) {
	api := fakegl.New()
	r := NewRenderer(api, NewResources(api))
	if _, err := r.Render(quadData(100, 100, 1)); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("Render = %v, want ErrNotInitialized", err)
	}
}

func TestRenderMinimizedWindow(t *testing.T) {
	api, r := newTestRenderer(t)
	dd := quadData(0, 0, 1)
	stats, err := r.Render(dd)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if stats.DrawCalls != 0 || len(api.Draws) != 0 {
		t.Errorf("minimized frame issued %d draws", len(api.Draws))
	}
}

func TestRenderCommandOrder(t *testing.T) {
	api, r := newTestRenderer(t)
	dd := quadData(100, 100, 1)
	list := &dd.Lists[0]
	list.Commands = []drawdata.DrawCommand{
		{ClipRect: [4]float32{0, 0, 100, 100}, Texture: 1, IndexCount: 3},
		{ClipRect: [4]float32{0, 0, 100, 100}, Texture: 2, IndexCount: 3, IndexOffset: 3},
	}

	if _, err := r.Render(dd); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(api.Draws) != 2 {
		t.Fatalf("recorded %d draws, want 2", len(api.Draws))
	}
	if api.Draws[0].Texture != 1 || api.Draws[1].Texture != 2 {
		t.Errorf("draw order broken: textures %d, %d", api.Draws[0].Texture, api.Draws[1].Texture)
	}
	if api.Draws[1].IndexOffset != 3*4 {
		t.Errorf("second draw index offset = %d bytes, want 12", api.Draws[1].IndexOffset)
	}
}

func TestRenderSkipsDegenerateClips(t *testing.T) {
	api, r := newTestRenderer(t)
	dd := quadData(100, 100, 1)
	dd.Lists[0].Commands = []drawdata.DrawCommand{
		{ClipRect: [4]float32{50, 50, 50, 80}, IndexCount: 3},     // zero width
		{ClipRect: [4]float32{80, 80, 20, 90}, IndexCount: 3},     // inverted
		{ClipRect: [4]float32{200, 0, 300, 50}, IndexCount: 3},    // right of fb
		{ClipRect: [4]float32{-50, -50, -10, -10}, IndexCount: 3}, // above-left of fb
		{ClipRect: [4]float32{0, 0, 100, 100}, IndexCount: 6},     // valid
	}

	stats, err := r.Render(dd)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if stats.SkippedCommands != 4 {
		t.Errorf("SkippedCommands = %d, want 4", stats.SkippedCommands)
	}
	if len(api.Draws) != 1 {
		t.Errorf("recorded %d draws, want 1", len(api.Draws))
	}
}

func TestScissorRect(t *testing.T) {
	tests := []struct {
		name     string
		clip     [4]float32
		origin   [2]float32
		scale    [2]float32
		fbW, fbH int32
		want     [4]int32
		wantOK   bool
	}{
		{
			name:  "exact pixels",
			clip:  [4]float32{10, 20, 30, 60},
			scale: [2]float32{1, 1}, fbW: 100, fbH: 100,
			want: [4]int32{10, 40, 20, 40}, wantOK: true,
		},
		{
			name:  "fractional edges floor position ceil extent",
			clip:  [4]float32{10.25, 10.5, 20.75, 30.5},
			scale: [2]float32{1, 1}, fbW: 100, fbH: 100,
			want: [4]int32{10, 69, 11, 20}, wantOK: true,
		},
		{
			name:  "hidpi scale",
			clip:  [4]float32{5, 5, 10, 10},
			scale: [2]float32{2, 2}, fbW: 200, fbH: 200,
			want: [4]int32{10, 180, 10, 10}, wantOK: true,
		},
		{
			name:   "display origin subtracted",
			clip:   [4]float32{110, 120, 130, 160},
			origin: [2]float32{100, 100},
			scale:  [2]float32{1, 1}, fbW: 100, fbH: 100,
			want: [4]int32{10, 40, 20, 40}, wantOK: true,
		},
		{
			name:  "zero area",
			clip:  [4]float32{50, 50, 50, 80},
			scale: [2]float32{1, 1}, fbW: 100, fbH: 100,
			wantOK: false,
		},
		{
			name:  "inverted",
			clip:  [4]float32{80, 10, 20, 40},
			scale: [2]float32{1, 1}, fbW: 100, fbH: 100,
			wantOK: false,
		},
		{
			name:  "entirely off screen",
			clip:  [4]float32{150, 150, 200, 200},
			scale: [2]float32{1, 1}, fbW: 100, fbH: 100,
			wantOK: false,
		},
		{
			name:  "entirely negative",
			clip:  [4]float32{-60, -60, -10, -10},
			scale: [2]float32{1, 1}, fbW: 100, fbH: 100,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dd := &drawdata.DrawData{
				DisplayX:         tt.origin[0],
				DisplayY:         tt.origin[1],
				FramebufferScale: tt.scale,
			}
			got, ok := scissorRect(tt.clip, dd, tt.fbW, tt.fbH)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("rect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOrtho(t *testing.T) {
	dd := &drawdata.DrawData{DisplayWidth: 800, DisplayHeight: 600}
	m := ortho(dd)

	checks := []struct {
		idx  int
		want float64
	}{
		{0, 2.0 / 800},
		{5, -2.0 / 600},
		{10, -1},
		{12, -1},
		{13, 1},
		{15, 1},
	}
	for _, c := range checks {
		if got := float64(m[c.idx]); math.Abs(got-c.want) > 1e-6 {
			t.Errorf("m[%d] = %g, want %g", c.idx, got, c.want)
		}
	}
}

func TestOrthoOffsetOrigin(t *testing.T) {
	dd := &drawdata.DrawData{DisplayX: 100, DisplayY: 50, DisplayWidth: 200, DisplayHeight: 100}
	m := ortho(dd)

	// The display origin must map to clip (-1, +1) and the far corner to
	// (+1, -1).
	mapPoint := func(x, y float64) (float64, float64) {
		cx := float64(m[0])*x + float64(m[12])
		cy := float64(m[5])*y + float64(m[13])
		return cx, cy
	}
	if cx, cy := mapPoint(100, 50); math.Abs(cx+1) > 1e-6 || math.Abs(cy-1) > 1e-6 {
		t.Errorf("origin maps to (%g, %g), want (-1, 1)", cx, cy)
	}
	if cx, cy := mapPoint(300, 150); math.Abs(cx-1) > 1e-6 || math.Abs(cy+1) > 1e-6 {
		t.Errorf("far corner maps to (%g, %g), want (1, -1)", cx, cy)
	}
}
