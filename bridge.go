package imgl

import (
	"errors"
	"fmt"
	"time"
	"unicode"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/imgl/drawdata"
	"github.com/gogpu/imgl/fontatlas"
	"github.com/gogpu/imgl/glx"
	"github.com/gogpu/imgl/input"
	"github.com/gogpu/imgl/internal/glrender"
	"github.com/gogpu/imgl/pacing"
)

// Bridge lifecycle errors.
var (
	// ErrNotInitialized is returned when the bridge is used before
	// Initialize or after Shutdown.
	ErrNotInitialized = errors.New("imgl: bridge not initialized")

	// ErrAlreadyInitialized is returned when Initialize is called twice
	// without an intervening Shutdown.
	ErrAlreadyInitialized = errors.New("imgl: bridge already initialized")

	// ErrNilBackend is returned when Initialize is given a nil backend or
	// surface.
	ErrNilBackend = errors.New("imgl: nil graphics backend or surface")
)

// Surface reports the drawable size of the window backing the GL context,
// in pixels. *glfw.Window satisfies it directly.
type Surface interface {
	GetFramebufferSize() (width, height int)
}

// FrameStats summarizes the most recently rendered frame.
type FrameStats struct {
	// DrawCalls is the number of indexed draws issued.
	DrawCalls int

	// SkippedCommands counts draw commands dropped for degenerate or
	// fully off-screen clip rectangles.
	SkippedCommands int

	// Vertices and Indices are the totals uploaded.
	Vertices int
	Indices  int
}

// Bridge connects an immediate-mode UI core to an OpenGL context: it owns
// the GPU resources, renders draw-data snapshots without disturbing the
// host's pipeline state, translates native input, and governs the
// render/update cadence.
//
// Thread Safety: the bridge is NOT safe for concurrent use. Initialize,
// RenderFrame, Shutdown, the input callbacks and the report methods must
// all be called from the thread that owns the GL context, which is the
// delivery model of the windowing layers this bridge targets.
type Bridge struct {
	fontSources []fontatlas.Source
	glyphRanges *unicode.RangeTable
	fontSizePx  float64
	pacingCfg   pacing.Config
	rateSetter  pacing.ApplyFunc
	atlasBuilt  func(*fontatlas.Atlas)
	clock       func() time.Time

	api      glx.API
	surface  Surface
	atlas    *fontatlas.Atlas
	res      *glrender.Resources
	renderer *glrender.Renderer
	governor *pacing.Governor

	queue      input.Queue
	translator *input.Translator

	stats       FrameStats
	initialized bool
}

// New creates an unconnected bridge. Nothing touches the GPU until
// Initialize.
func New(opts ...Option) *Bridge {
	b := &Bridge{
		pacingCfg: pacing.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Initialize builds the font atlas, creates every GPU resource on the
// given backend, and starts the pacing governor. The GL context must be
// current on the calling thread.
//
// The atlas-built hook, if registered, runs exactly once, after the atlas
// texture is uploaded. Initialize is a singular phase: a second call
// without an intervening Shutdown fails.
func (b *Bridge) Initialize(api glx.API, surface Surface) error {
	if b.initialized {
		return ErrAlreadyInitialized
	}
	if api == nil || surface == nil {
		return ErrNilBackend
	}

	atlas, err := fontatlas.NewBuilder().Build(b.resolveSources()...)
	if err != nil {
		return fmt.Errorf("imgl: build font atlas: %w", err)
	}

	res := glrender.NewResources(api)
	if err := res.Init(atlas); err != nil {
		return fmt.Errorf("imgl: init resources: %w", err)
	}

	b.api = api
	b.surface = surface
	b.atlas = atlas
	b.res = res
	b.renderer = glrender.NewRenderer(api, res)
	b.translator = input.NewTranslator()

	var gopts []pacing.Option
	if b.clock != nil {
		gopts = append(gopts, pacing.WithClock(b.clock))
	}
	b.governor = pacing.NewGovernor(b.pacingCfg, b.rateSetter, gopts...)

	b.initialized = true
	if b.atlasBuilt != nil {
		hook := b.atlasBuilt
		b.atlasBuilt = nil
		hook(atlas)
	}
	slogger().Info("imgl: bridge initialized",
		"atlas", fmt.Sprintf("%dx%d", atlas.Width, atlas.Height),
		"glyphs", len(atlas.Glyphs))
	return nil
}

// resolveSources applies the option-level font size and glyph ranges to
// every source that does not carry its own.
func (b *Bridge) resolveSources() []fontatlas.Source {
	sources := b.fontSources
	if len(sources) == 0 {
		sources = []fontatlas.Source{fontatlas.DefaultSource()}
	}
	for i := range sources {
		if sources[i].Ranges == nil && b.glyphRanges != nil {
			sources[i].Ranges = b.glyphRanges
		}
		if sources[i].SizePx <= 0 && b.fontSizePx > 0 {
			sources[i].SizePx = b.fontSizePx
		}
	}
	return sources
}

// RenderFrame draws one draw-data snapshot. The whole pass runs inside a
// pipeline state guard: after RenderFrame returns, the GL context is
// observably unchanged except for the pixels drawn.
//
// A snapshot without a framebuffer scale gets one derived from the
// surface's drawable size. RenderFrame also advances the pacing governor:
// signals are re-evaluated before the draw, and a queued cadence
// transition is committed after the draw has fully returned. A failed
// cadence apply is logged and does not fail the frame.
func (b *Bridge) RenderFrame(dd *drawdata.DrawData) error {
	if !b.initialized {
		return ErrNotInitialized
	}
	b.governor.Tick()

	if dd != nil {
		if dd.FramebufferScale == ([2]float32{}) {
			dd.FramebufferScale = b.deriveScale(dd)
		}
		if err := dd.Validate(); err != nil {
			return fmt.Errorf("imgl: draw data: %w", err)
		}

		var (
			stats glrender.FrameStats
			rerr  error
		)
		glrender.Guarded(b.api, func() {
			stats, rerr = b.renderer.Render(dd)
		})
		if rerr != nil {
			return fmt.Errorf("imgl: render: %w", rerr)
		}
		b.stats = FrameStats{
			DrawCalls:       stats.DrawCalls,
			SkippedCommands: stats.SkippedCommands,
			Vertices:        stats.Vertices,
			Indices:         stats.Indices,
		}
	}

	if err := b.governor.Commit(); err != nil {
		// Already logged by the governor; the frame itself succeeded.
		slogger().Warn("imgl: cadence transition failed", "err", err)
	}
	return nil
}

// deriveScale computes the framebuffer scale from the surface's drawable
// size when the snapshot does not carry one.
func (b *Bridge) deriveScale(dd *drawdata.DrawData) [2]float32 {
	if dd.DisplayWidth <= 0 || dd.DisplayHeight <= 0 {
		return [2]float32{1, 1}
	}
	fw, fh := b.surface.GetFramebufferSize()
	if fw <= 0 || fh <= 0 {
		return [2]float32{1, 1}
	}
	return [2]float32{
		float32(fw) / dd.DisplayWidth,
		float32(fh) / dd.DisplayHeight,
	}
}

// Shutdown releases every GPU resource the bridge created. Idempotent —
// calls after the first are no-ops. The GL context must still be current.
func (b *Bridge) Shutdown() {
	if !b.initialized {
		return
	}
	b.res.Teardown()
	b.initialized = false
	slogger().Info("imgl: bridge shut down")
}

// OnKey is the key callback. Install with window.SetKeyCallback(bridge.OnKey).
// Enqueue only; translation happens in DrainEvents.
func (b *Bridge) OnKey(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	var kind input.Kind
	switch action {
	case glfw.Press, glfw.Repeat:
		kind = input.KindKeyDown
	case glfw.Release:
		kind = input.KindKeyUp
	default:
		return
	}
	b.queue.Push(input.NativeEvent{Kind: kind, Key: key})
	b.ReportUserInput()
}

// OnMouseButton is the mouse button callback. Install with
// window.SetMouseButtonCallback(bridge.OnMouseButton).
func (b *Bridge) OnMouseButton(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	var kind input.Kind
	switch action {
	case glfw.Press:
		kind = input.KindMouseButtonDown
	case glfw.Release:
		kind = input.KindMouseButtonUp
	default:
		return
	}
	b.queue.Push(input.NativeEvent{Kind: kind, Button: button})
	b.ReportUserInput()
}

// OnCursorPos is the cursor position callback. Install with
// window.SetCursorPosCallback(bridge.OnCursorPos).
func (b *Bridge) OnCursorPos(_ *glfw.Window, x, y float64) {
	b.queue.Push(input.NativeEvent{Kind: input.KindMouseMove, X: x, Y: y})
	b.ReportUserInput()
}

// OnScroll is the scroll callback. Install with
// window.SetScrollCallback(bridge.OnScroll).
func (b *Bridge) OnScroll(_ *glfw.Window, xoff, yoff float64) {
	b.queue.Push(input.NativeEvent{Kind: input.KindScroll, X: xoff, Y: yoff})
	b.ReportUserInput()
}

// OnChar is the character callback. Install with
// window.SetCharCallback(bridge.OnChar).
func (b *Bridge) OnChar(_ *glfw.Window, char rune) {
	b.queue.Push(input.NativeEvent{Kind: input.KindChar, Char: char})
	b.ReportUserInput()
}

// DrainEvents translates every queued native event in arrival order and
// hands the results to sink, then clears the queue. Call once per frame,
// before the UI core builds its frame.
func (b *Bridge) DrainEvents(sink func(input.Event)) {
	if b.translator == nil {
		return
	}
	b.translator.Drain(&b.queue, sink)
}

// ReportVisibility records whether the window is currently visible.
// Forward iconify/occlusion callbacks here.
func (b *Bridge) ReportVisibility(visible bool) {
	if b.governor != nil {
		b.governor.ReportVisibility(visible)
	}
}

// ReportFocus records whether the window currently has input focus.
// Forward focus callbacks here.
func (b *Bridge) ReportFocus(focused bool) {
	if b.governor != nil {
		b.governor.ReportFocus(focused)
	}
}

// ReportUserInput resets the pacing governor's idle timer. The input
// callbacks call this automatically.
func (b *Bridge) ReportUserInput() {
	if b.governor != nil {
		b.governor.ReportUserInput()
	}
}

// FontAtlas returns the built atlas, carrying the glyph metrics and the
// uploaded texture handle. Nil before Initialize.
func (b *Bridge) FontAtlas() *fontatlas.Atlas { return b.atlas }

// Stats returns the statistics of the most recently rendered frame.
func (b *Bridge) Stats() FrameStats { return b.stats }

// Governor returns the pacing governor. Nil before Initialize.
func (b *Bridge) Governor() *pacing.Governor { return b.governor }
