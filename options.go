package imgl

import (
	"time"
	"unicode"

	"github.com/gogpu/imgl/fontatlas"
	"github.com/gogpu/imgl/pacing"
)

// Option configures a Bridge during creation.
//
// Example:
//
//	// Defaults: builtin font, stock pacing policy.
//	bridge := imgl.New()
//
//	// Custom font and rate setter.
//	bridge := imgl.New(
//	    imgl.WithFonts(fontatlas.Source{Name: "ui", Data: ttf, SizePx: 14}),
//	    imgl.WithRateSetter(applyRates),
//	)
type Option func(*Bridge)

// WithFonts sets the font sources baked into the atlas, in priority
// order: the first source covering a rune wins. Without this option the
// built-in Go Regular face is used.
func WithFonts(sources ...fontatlas.Source) Option {
	return func(b *Bridge) {
		b.fontSources = append([]fontatlas.Source(nil), sources...)
	}
}

// WithGlyphRanges sets the glyph ranges for every font source that does
// not carry its own. Without this option the default Basic Latin plus
// Latin-1 Supplement set is baked.
func WithGlyphRanges(ranges ...*unicode.RangeTable) Option {
	return func(b *Bridge) {
		b.glyphRanges = fontatlas.MergeRanges(ranges...)
	}
}

// WithPacing replaces the frame-pacing policy. Without this option
// [pacing.DefaultConfig] applies.
func WithPacing(cfg pacing.Config) Option {
	return func(b *Bridge) { b.pacingCfg = cfg }
}

// WithRateSetter installs the callback that applies a promoted cadence
// pair to the host's timing subsystem. Without it cadence transitions are
// tracked but applied nowhere.
func WithRateSetter(apply pacing.ApplyFunc) Option {
	return func(b *Bridge) { b.rateSetter = apply }
}

// WithAtlasBuiltHook registers a callback invoked exactly once, after the
// atlas is built and uploaded during Initialize. UI cores use it to
// ingest glyph metrics and the white-pixel UV.
func WithAtlasBuiltHook(fn func(*fontatlas.Atlas)) Option {
	return func(b *Bridge) { b.atlasBuilt = fn }
}

// WithClock substitutes the governor's time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(b *Bridge) { b.clock = now }
}

// FromConfig applies a loaded configuration: the pacing policy and, when
// set, the default font size.
func FromConfig(cfg Config) Option {
	return func(b *Bridge) {
		b.pacingCfg = cfg.PacingConfig()
		b.fontSizePx = cfg.FontSizePx
	}
}
