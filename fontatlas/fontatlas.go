// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package fontatlas builds a single RGBA bitmap atlas from configured
// fonts and glyph ranges.
//
// The atlas is built at most once per font configuration, uploaded to the
// GPU as one texture, and the CPU-side bitmap is released immediately
// after the upload — it is never retained across frames. Individual font
// sources that cannot be parsed fall back to a built-in default face
// (logged, non-fatal); a build with no usable source at all fails.
package fontatlas

import (
	"errors"
	"unicode"

	"github.com/gogpu/imgl/glx"
)

// Atlas build errors.
var (
	// ErrNoUsableSource is returned when no font source, including the
	// built-in fallback, could be used.
	ErrNoUsableSource = errors.New("fontatlas: no usable font source")

	// ErrAtlasTooLarge is returned when the glyph set does not fit the
	// maximum atlas dimensions.
	ErrAtlasTooLarge = errors.New("fontatlas: glyph set exceeds maximum atlas size")

	// ErrPixelsReleased is returned when the CPU bitmap is accessed
	// after release.
	ErrPixelsReleased = errors.New("fontatlas: CPU pixel buffer already released")
)

// Source is one font configuration entry: raw font file data, a pixel
// size, and the glyph ranges to bake.
type Source struct {
	// Name identifies the source in logs.
	Name string

	// Data is the raw TTF/OTF file contents.
	Data []byte

	// SizePx is the rasterization size in pixels per em.
	SizePx float64

	// Ranges selects the runes to bake. Nil means DefaultRanges.
	Ranges *unicode.RangeTable
}

// Glyph is one baked glyph: its atlas region in UV space and the metrics
// the UI core needs to lay it out.
type Glyph struct {
	// Rune is the character this glyph renders.
	Rune rune

	// U0, V0, U1, V1 is the glyph's region in normalized atlas
	// coordinates.
	U0, V0, U1, V1 float32

	// Width, Height is the bitmap size in pixels.
	Width, Height int

	// OffsetX, OffsetY position the bitmap relative to the pen origin on
	// the baseline (OffsetY is negative above the baseline).
	OffsetX, OffsetY float32

	// Advance is the pen advance in pixels.
	Advance float32
}

// Atlas is the built font atlas. Pixels holds the CPU-side RGBA8 bitmap
// until ReleasePixels; Texture is filled in by the GPU resource layer
// after upload.
type Atlas struct {
	// Width, Height are the bitmap dimensions in pixels.
	Width, Height int

	// Pixels is the RGBA8 bitmap (white RGB, glyph coverage in alpha),
	// row-major, Width*Height*4 bytes. Nil once released.
	Pixels []byte

	// Glyphs maps runes to their baked glyphs.
	Glyphs map[rune]Glyph

	// WhiteUV is the center of a solid white region, for untextured
	// fills that want to reuse the atlas texture.
	WhiteUV [2]float32

	// Texture is the GPU handle, set after upload.
	Texture glx.Texture
}

// ReleasePixels drops the CPU-side bitmap. Called right after the single
// GPU upload; the atlas keeps only metrics and the texture handle from
// then on.
func (a *Atlas) ReleasePixels() { a.Pixels = nil }
