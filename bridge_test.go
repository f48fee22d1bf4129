package imgl

import (
	"errors"
	"testing"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/imgl/drawdata"
	"github.com/gogpu/imgl/fontatlas"
	"github.com/gogpu/imgl/glx"
	"github.com/gogpu/imgl/input"
	"github.com/gogpu/imgl/internal/fakegl"
	"github.com/gogpu/imgl/pacing"
)

// fakeSurface stands in for a window.
type fakeSurface struct {
	w, h int
}

func (s *fakeSurface) GetFramebufferSize() (int, int) { return s.w, s.h }

// newTestBridge creates an initialized bridge over the fake backend.
func newTestBridge(t *testing.T, opts ...Option) (*Bridge, *fakegl.API) {
	t.Helper()
	api := fakegl.New()
	b := New(opts...)
	if err := b.Initialize(api, &fakeSurface{w: 800, h: 600}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	return b, api
}

// whiteQuad builds a snapshot with one quad textured from the atlas.
func whiteQuad(atlas *fontatlas.Atlas) *drawdata.DrawData {
	col := [4]uint8{255, 0, 0, 255}
	uv := atlas.WhiteUV
	return &drawdata.DrawData{
		DisplayWidth:     800,
		DisplayHeight:    600,
		FramebufferScale: [2]float32{1, 1},
		Lists: []drawdata.DrawList{{
			Vertices: []drawdata.Vertex{
				{Pos: [2]float32{10, 10}, UV: uv, Color: col},
				{Pos: [2]float32{110, 10}, UV: uv, Color: col},
				{Pos: [2]float32{110, 110}, UV: uv, Color: col},
				{Pos: [2]float32{10, 110}, UV: uv, Color: col},
			},
			Indices: []uint32{0, 1, 2, 0, 2, 3},
			Commands: []drawdata.DrawCommand{{
				ClipRect:   [4]float32{0, 0, 800, 600},
				Texture:    atlas.Texture,
				IndexCount: 6,
			}},
		}},
	}
}

func TestBridgeInitialize(t *testing.T) {
	hookCalls := 0
	var hookAtlas *fontatlas.Atlas
	b, api := newTestBridge(t, WithAtlasBuiltHook(func(a *fontatlas.Atlas) {
		hookCalls++
		hookAtlas = a
	}))

	if hookCalls != 1 {
		t.Errorf("atlas hook called %d times, want exactly 1", hookCalls)
	}

	atlas := b.FontAtlas()
	if atlas == nil || atlas != hookAtlas {
		t.Fatal("FontAtlas does not match the atlas handed to the hook")
	}
	if atlas.Texture == 0 {
		t.Error("atlas texture not uploaded")
	}
	if atlas.Pixels != nil {
		t.Error("atlas CPU pixels retained after upload")
	}
	if len(api.TextureUploads) != 1 {
		t.Errorf("atlas uploaded %d times, want 1", len(api.TextureUploads))
	}

	if err := b.Initialize(api, &fakeSurface{w: 800, h: 600}); !errors.Is(err, ErrAlreadyInitialized) {
		t.Errorf("second Initialize = %v, want ErrAlreadyInitialized", err)
	}
}

func TestBridgeInitializeNilBackend(t *testing.T) {
	b := New()
	if err := b.Initialize(nil, &fakeSurface{}); !errors.Is(err, ErrNilBackend) {
		t.Errorf("Initialize(nil, surface) = %v, want ErrNilBackend", err)
	}
	if err := b.Initialize(fakegl.New(), nil); !errors.Is(err, ErrNilBackend) {
		t.Errorf("Initialize(api, nil) = %v, want ErrNilBackend", err)
	}
}

func TestBridgeRenderFrame(t *testing.T) {
	b, api := newTestBridge(t)

	if err := b.RenderFrame(whiteQuad(b.FontAtlas())); err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}
	if len(api.Draws) != 1 {
		t.Fatalf("recorded %d draws, want 1", len(api.Draws))
	}
	if api.Draws[0].Texture != b.FontAtlas().Texture {
		t.Errorf("draw sampled texture %d, want the atlas texture", api.Draws[0].Texture)
	}

	stats := b.Stats()
	if stats.DrawCalls != 1 || stats.Vertices != 4 || stats.Indices != 6 {
		t.Errorf("Stats = %+v, want 1 draw / 4 vertices / 6 indices", stats)
	}
}

func TestBridgeRenderFrameRestoresState(t *testing.T) {
	b, api := newTestBridge(t)

	// Host state the UI pass must not disturb.
	api.UseProgram(42)
	api.BindVertexArray(17)
	api.BindBuffer(glx.ArrayBuffer, 23)
	api.BindTexture(99)
	api.Enable(glx.CapDepthTest)
	api.Disable(glx.CapBlend)
	api.Viewport(5, 6, 640, 480)
	api.Scissor(1, 2, 3, 4)

	if err := b.RenderFrame(whiteQuad(b.FontAtlas())); err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}

	if got := glx.Program(api.GetInteger(glx.ParamCurrentProgram)); got != 42 {
		t.Errorf("program = %d after frame, want 42", got)
	}
	if got := glx.VertexArray(api.GetInteger(glx.ParamVertexArrayBinding)); got != 17 {
		t.Errorf("vertex array = %d after frame, want 17", got)
	}
	if got := glx.Buffer(api.GetInteger(glx.ParamArrayBufferBinding)); got != 23 {
		t.Errorf("array buffer = %d after frame, want 23", got)
	}
	if got := glx.Texture(api.GetInteger(glx.ParamTextureBinding2D)); got != 99 {
		t.Errorf("texture = %d after frame, want 99", got)
	}
	if !api.IsEnabled(glx.CapDepthTest) || api.IsEnabled(glx.CapBlend) {
		t.Error("capability toggles not restored")
	}
	if got := api.GetInteger4(glx.ParamViewport); got != ([4]int32{5, 6, 640, 480}) {
		t.Errorf("viewport = %v after frame, want host viewport", got)
	}
	if got := api.GetInteger4(glx.ParamScissorBox); got != ([4]int32{1, 2, 3, 4}) {
		t.Errorf("scissor = %v after frame, want host scissor", got)
	}
}

func TestBridgeRenderFrameDerivesScale(t *testing.T) {
	api := fakegl.New()
	b := New()
	if err := b.Initialize(api, &fakeSurface{w: 1600, h: 1200}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	dd := whiteQuad(b.FontAtlas())
	dd.FramebufferScale = [2]float32{}
	if err := b.RenderFrame(dd); err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}
	if dd.FramebufferScale != ([2]float32{2, 2}) {
		t.Errorf("derived scale = %v, want (2, 2)", dd.FramebufferScale)
	}
	if len(api.Draws) != 1 {
		t.Fatalf("recorded %d draws, want 1", len(api.Draws))
	}
	if got := api.Draws[0].Scissor; got != ([4]int32{0, 0, 1600, 1200}) {
		t.Errorf("scissor = %v, want framebuffer pixels", got)
	}
}

func TestBridgeRenderFrameInvalidData(t *testing.T) {
	b, api := newTestBridge(t)

	dd := whiteQuad(b.FontAtlas())
	dd.Lists[0].Commands[0].IndexCount = 99
	if err := b.RenderFrame(dd); !errors.Is(err, drawdata.ErrCommandOutOfRange) {
		t.Fatalf("RenderFrame = %v, want ErrCommandOutOfRange", err)
	}
	if len(api.Draws) != 0 {
		t.Errorf("invalid snapshot still issued %d draws", len(api.Draws))
	}
}

func TestBridgeRenderFrameNotInitialized(t *testing.T) {
	b := New()
	if err := b.RenderFrame(nil); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("RenderFrame = %v, want ErrNotInitialized", err)
	}
}

func TestBridgeCommitsAfterDraw(t *testing.T) {
	drawsAtApply := -1
	var api *fakegl.API

	b := New(WithRateSetter(func(pacing.Rates) error {
		drawsAtApply = len(api.Draws)
		return nil
	}))
	api = fakegl.New()
	if err := b.Initialize(api, &fakeSurface{w: 800, h: 600}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	b.ReportVisibility(false)
	if err := b.RenderFrame(whiteQuad(b.FontAtlas())); err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}

	if drawsAtApply != 1 {
		t.Errorf("cadence applied with %d draws issued, want after the frame's draw", drawsAtApply)
	}
	if b.Governor().State() != pacing.StateHidden {
		t.Errorf("governor state = %v, want Hidden", b.Governor().State())
	}
}

func TestBridgeFailedRateApplyDoesNotFailFrame(t *testing.T) {
	applyErr := errors.New("swap interval unavailable")
	b, api := newTestBridge(t, WithRateSetter(func(pacing.Rates) error {
		return applyErr
	}))

	b.ReportVisibility(false)
	if err := b.RenderFrame(whiteQuad(b.FontAtlas())); err != nil {
		t.Fatalf("RenderFrame failed on cadence error: %v", err)
	}
	if len(api.Draws) != 1 {
		t.Errorf("recorded %d draws, want 1", len(api.Draws))
	}
	if b.Governor().State() != pacing.StateFocused {
		t.Errorf("governor state moved despite failed apply: %v", b.Governor().State())
	}
}

func TestBridgeIdleViaClock(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b, _ := newTestBridge(t, WithClock(func() time.Time { return now }))

	now = now.Add(pacing.DefaultConfig().IdleTimeout + time.Second)
	if err := b.RenderFrame(nil); err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}
	if b.Governor().State() != pacing.StateIdle {
		t.Errorf("governor state = %v, want Idle after timeout", b.Governor().State())
	}
}

func TestBridgeShutdown(t *testing.T) {
	b, api := newTestBridge(t)
	b.Shutdown()

	if api.LiveBuffers()+api.LiveTextures()+api.LiveVertexArrays()+api.LivePrograms() != 0 {
		t.Error("GPU handles leaked after Shutdown")
	}
	deleted := api.BuffersDeleted + api.TexturesDeleted + api.VertexArraysDeleted + api.ProgramsDeleted

	b.Shutdown() // idempotent
	if got := api.BuffersDeleted + api.TexturesDeleted + api.VertexArraysDeleted + api.ProgramsDeleted; got != deleted {
		t.Errorf("repeated Shutdown deleted more handles: %d then %d", deleted, got)
	}

	if err := b.RenderFrame(nil); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("RenderFrame after Shutdown = %v, want ErrNotInitialized", err)
	}
}

func TestBridgeInputFlow(t *testing.T) {
	b, _ := newTestBridge(t)

	b.OnKey(nil, glfw.KeyLeftShift, 0, glfw.Press, 0)
	b.OnKey(nil, glfw.KeyA, 0, glfw.Press, 0)
	b.OnMouseButton(nil, glfw.MouseButtonLeft, glfw.Press, 0)
	b.OnCursorPos(nil, 100, 200)
	b.OnScroll(nil, 0, -1)
	b.OnChar(nil, 'a')

	var got []input.Event
	b.DrainEvents(func(ev input.Event) { got = append(got, ev) })

	want := []input.Event{
		{Kind: input.KindKeyDown, Key: input.KeyLeftShift},
		{Kind: input.KindKeyDown, Key: input.ModShift},
		{Kind: input.KindKeyDown, Key: input.KeyA},
		{Kind: input.KindMouseButtonDown, Button: input.MouseLeft},
		{Kind: input.KindMouseMove, X: 100, Y: 200},
		{Kind: input.KindScroll, ScrollY: -1},
		{Kind: input.KindChar, Char: 'a'},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	// Drained once, gone.
	got = got[:0]
	b.DrainEvents(func(ev input.Event) { got = append(got, ev) })
	if len(got) != 0 {
		t.Errorf("second drain re-delivered %d events", len(got))
	}
}

func TestBridgeInputResetsIdle(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b, _ := newTestBridge(t, WithClock(func() time.Time { return now }))

	now = now.Add(pacing.DefaultConfig().IdleTimeout + time.Second)
	b.OnCursorPos(nil, 10, 10)

	if err := b.RenderFrame(nil); err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}
	if b.Governor().State() != pacing.StateFocused {
		t.Errorf("governor state = %v, want Focused after fresh input", b.Governor().State())
	}
}

func TestBridgeCustomFonts(t *testing.T) {
	b, _ := newTestBridge(t, WithFonts(fontatlas.Source{
		Name: "broken on purpose",
		Data: []byte("not a font"),
	}))
	// Unusable source falls back to the builtin face; the bridge still
	// comes up with a usable atlas.
	if _, ok := b.FontAtlas().Glyphs['A']; !ok {
		t.Error("fallback atlas missing glyph A")
	}
}
