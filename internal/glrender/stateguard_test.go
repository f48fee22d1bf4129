// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glrender

import (
	"testing"

	"github.com/gogpu/imgl/glx"
	"github.com/gogpu/imgl/internal/fakegl"
)

// observableState reads every state slot the guard claims to preserve,
// through the same query surface real hosts would use.
type observableState struct {
	activeTexture int32
	program       int32
	texture2D     int32
	sampler       int32
	vertexArray   int32
	arrayBuffer   int32
	blend         [6]int32
	caps          [5]bool
	polygonMode   int32
	viewport      [4]int32
	scissorBox    [4]int32
}

func observe(api glx.API) observableState {
	var s observableState
	s.activeTexture = api.GetInteger(glx.ParamActiveTexture)
	s.program = api.GetInteger(glx.ParamCurrentProgram)
	s.texture2D = api.GetInteger(glx.ParamTextureBinding2D)
	s.sampler = api.GetInteger(glx.ParamSamplerBinding)
	s.vertexArray = api.GetInteger(glx.ParamVertexArrayBinding)
	s.arrayBuffer = api.GetInteger(glx.ParamArrayBufferBinding)
	s.blend = [6]int32{
		api.GetInteger(glx.ParamBlendEquationRGB),
		api.GetInteger(glx.ParamBlendEquationAlpha),
		api.GetInteger(glx.ParamBlendSrcRGB),
		api.GetInteger(glx.ParamBlendDstRGB),
		api.GetInteger(glx.ParamBlendSrcAlpha),
		api.GetInteger(glx.ParamBlendDstAlpha),
	}
	s.caps = [5]bool{
		api.IsEnabled(glx.CapBlend),
		api.IsEnabled(glx.CapCullFace),
		api.IsEnabled(glx.CapDepthTest),
		api.IsEnabled(glx.CapStencilTest),
		api.IsEnabled(glx.CapScissorTest),
	}
	s.polygonMode = api.GetInteger(glx.ParamPolygonMode)
	s.viewport = api.GetInteger4(glx.ParamViewport)
	s.scissorBox = api.GetInteger4(glx.ParamScissorBox)
	return s
}

// hostState puts the fake backend into a deliberately unusual
// configuration, the kind a 3D host would be running with.
func hostState(api *fakegl.API) {
	api.UseProgram(42)
	api.BindVertexArray(17)
	api.BindBuffer(glx.ArrayBuffer, 23)
	api.BindTexture(99)
	api.BindSampler(0, 5)
	api.ActiveTexture(glx.Texture0 + 3)

	api.Enable(glx.CapDepthTest)
	api.Enable(glx.CapCullFace)
	api.Enable(glx.CapStencilTest)
	api.Disable(glx.CapBlend)
	api.Disable(glx.CapScissorTest)

	api.BlendEquationSeparate(glx.BlendEquationMax, glx.BlendEquationSubtract)
	api.BlendFuncSeparate(glx.BlendDstColor, glx.BlendDstAlpha, glx.BlendZero, glx.BlendOne)
	api.PolygonMode(glx.FrontAndBack, glx.PolygonLine)
	api.Viewport(5, 6, 640, 480)
	api.Scissor(1, 2, 3, 4)
}

func TestGuardedRestoresHostState(t *testing.T) {
	api := fakegl.New()
	res := NewResources(api)
	if err := res.Init(testAtlas()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	r := NewRenderer(api, res)

	hostState(api)
	before := observe(api)

	Guarded(api, func() {
		if _, err := r.Render(quadData(100, 100, 7)); err != nil {
			t.Fatalf("Render failed: %v", err)
		}
	})

	after := observe(api)
	if before != after {
		t.Errorf("pipeline state changed across guarded render\nbefore: %+v\nafter:  %+v", before, after)
	}
	if len(api.Draws) != 1 {
		t.Fatalf("recorded %d draws, want 1", len(api.Draws))
	}
	// The draw itself must have seen the UI pass state, not the host's.
	if api.Draws[0].Program == 42 {
		t.Error("draw ran with the host's program")
	}
	if !api.Draws[0].Blend || !api.Draws[0].ScissorOn {
		t.Error("draw ran without the UI pass blend/scissor state")
	}
}

func TestGuardedRestoresOnPanic(t *testing.T) {
	api := fakegl.New()
	hostState(api)
	before := observe(api)

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic to propagate")
			}
		}()
		Guarded(api, func() {
			api.UseProgram(1)
			api.Viewport(0, 0, 10, 10)
			panic("frame aborted")
		})
	}()

	if after := observe(api); before != after {
		t.Errorf("state not restored after panic\nbefore: %+v\nafter:  %+v", before, after)
	}
}

func TestGuardedDefaultState(t *testing.T) {
	api := fakegl.New()
	before := observe(api)
	Guarded(api, func() {
		api.Enable(glx.CapBlend)
		api.BindTexture(3)
		api.Scissor(9, 9, 9, 9)
	})
	if after := observe(api); before != after {
		t.Errorf("default state not restored\nbefore: %+v\nafter:  %+v", before, after)
	}
}
