// Package imgl bridges an immediate-mode UI core to OpenGL.
//
// # Overview
//
// imgl owns everything between a UI core's frame output and the GL
// context: GPU resource lifetime (shader program, vertex/index buffers,
// font atlas texture), per-frame rendering of draw-data snapshots,
// save/restore of every piece of pipeline state the UI pass touches,
// translation of native window-system input into UI events, and a
// frame-pacing governor that adapts the render/update cadence to window
// visibility, focus and input idleness.
//
// # Basic Use
//
//	bridge := imgl.New(
//	    imgl.WithFonts(fontatlas.Source{Name: "ui", Data: ttf, SizePx: 13}),
//	    imgl.WithRateSetter(func(r pacing.Rates) error {
//	        setSwapInterval(r)
//	        return nil
//	    }),
//	)
//	if err := bridge.Initialize(gl41.New(), window); err != nil {
//	    log.Fatal(err)
//	}
//	defer bridge.Shutdown()
//
//	for !window.ShouldClose() {
//	    glfw.PollEvents()
//	    bridge.DrainEvents(uiCore.HandleEvent)
//	    dd := uiCore.Frame()
//	    if err := bridge.RenderFrame(dd); err != nil {
//	        log.Fatal(err)
//	    }
//	    window.SwapBuffers()
//	}
//
// Window callbacks feed the bridge directly: install OnKey, OnMouseButton,
// OnCursorPos, OnScroll and OnChar as the GLFW callbacks, and forward
// focus/iconify changes to ReportFocus and ReportVisibility.
//
// # Architecture
//
// The library is organized into:
//   - Public API: Bridge, plus the drawdata, fontatlas, input and pacing packages
//   - Backend seam: glx (capability surface), glx/gl41 (OpenGL 4.1 core backend)
//   - Internal: glrender (resources, frame renderer, pipeline state guard)
//
// # Coordinate System
//
// Draw data uses display coordinates: origin at the top-left, X increases
// right, Y increases down. The renderer performs the Y-flip required by
// the GL scissor convention internally.
package imgl

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
