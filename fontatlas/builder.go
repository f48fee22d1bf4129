// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package fontatlas

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"

	tfont "github.com/go-text/typesetting/font"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Atlas layout constants.
const (
	// DefaultSizePx is the rasterization size used when a source does
	// not set one.
	DefaultSizePx = 13

	// glyphPadding is the gap between packed glyphs, in pixels.
	glyphPadding = 1

	// minAtlasDim and maxAtlasDim bound the square packing attempts.
	minAtlasDim = 256
	maxAtlasDim = 4096

	// whiteDim is the side of the solid white region reserved at the
	// atlas origin.
	whiteDim = 2
)

// DefaultSource returns the built-in fallback font configuration: the Go
// Regular face at the default size with the default glyph ranges.
func DefaultSource() Source {
	return Source{
		Name:   "goregular (builtin)",
		Data:   goregular.TTF,
		SizePx: DefaultSizePx,
		Ranges: DefaultRanges(),
	}
}

// Builder rasterizes configured font sources into one atlas bitmap.
//
// Build is deterministic: a fixed source configuration always produces a
// byte-identical bitmap and identical glyph metrics.
type Builder struct{}

// NewBuilder creates a Builder.
func NewBuilder() *Builder { return &Builder{} }

// bakedSource is a source with both parser views attached: the
// typesetting face for cmap coverage checks and the x/image face for
// rasterization.
type bakedSource struct {
	src      Source
	coverage *tfont.Face
	face     font.Face
}

// glyphBitmap is one rasterized glyph awaiting packing.
type glyphBitmap struct {
	r             rune
	width, height int
	alpha         []byte // width*height coverage bytes, row-major
}

// Build rasterizes the configured fonts and glyph ranges into one RGBA
// bitmap sized to fit all glyphs.
//
// Sources are consumed in order; the first source covering a rune wins.
// A source whose data cannot be parsed is logged and replaced by the
// built-in default face. Build fails only when no source at all is usable
// or the glyph set cannot fit the maximum atlas size.
//
// The returned atlas carries the CPU bitmap; the caller uploads it and
// then must call [Atlas.ReleasePixels].
func (b *Builder) Build(sources ...Source) (*Atlas, error) {
	if len(sources) == 0 {
		sources = []Source{DefaultSource()}
	}

	baked := make([]bakedSource, 0, len(sources))
	for _, src := range sources {
		bs, err := prepareSource(src)
		if err != nil {
			slogger().Warn("fontatlas: font source unusable, falling back to builtin",
				"source", src.Name, "err", err)
			bs, err = prepareSource(Source{
				Name:   DefaultSource().Name,
				Data:   goregular.TTF,
				SizePx: src.SizePx,
				Ranges: src.Ranges,
			})
			if err != nil {
				// The builtin face failed to parse; nothing to salvage
				// from this entry.
				continue
			}
		}
		baked = append(baked, bs)
	}
	if len(baked) == 0 {
		return nil, ErrNoUsableSource
	}

	bitmaps, glyphs, err := rasterizeAll(baked)
	if err != nil {
		return nil, err
	}

	atlas, err := pack(bitmaps, glyphs)
	if err != nil {
		return nil, err
	}
	slogger().Info("fontatlas: built",
		"width", atlas.Width, "height", atlas.Height, "glyphs", len(atlas.Glyphs))
	return atlas, nil
}

// prepareSource parses one source with both font stacks and normalizes
// its configuration.
func prepareSource(src Source) (bakedSource, error) {
	if len(src.Data) == 0 {
		return bakedSource{}, fmt.Errorf("fontatlas: source %q: empty font data", src.Name)
	}
	if src.SizePx <= 0 {
		src.SizePx = DefaultSizePx
	}
	if src.Ranges == nil {
		src.Ranges = DefaultRanges()
	}

	coverage, err := tfont.ParseTTF(bytes.NewReader(src.Data))
	if err != nil {
		return bakedSource{}, fmt.Errorf("fontatlas: source %q: parse: %w", src.Name, err)
	}

	sf, err := opentype.Parse(src.Data)
	if err != nil {
		return bakedSource{}, fmt.Errorf("fontatlas: source %q: parse outline data: %w", src.Name, err)
	}
	face, err := opentype.NewFace(sf, &opentype.FaceOptions{
		Size:    src.SizePx,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return bakedSource{}, fmt.Errorf("fontatlas: source %q: create face: %w", src.Name, err)
	}
	return bakedSource{src: src, coverage: coverage, face: face}, nil
}

// rasterizeAll renders every configured rune covered by its source into
// an alpha bitmap. Runes appear once: the first source covering a rune
// wins.
func rasterizeAll(baked []bakedSource) ([]glyphBitmap, map[rune]Glyph, error) {
	var bitmaps []glyphBitmap
	glyphs := make(map[rune]Glyph)

	for _, bs := range baked {
		skipped := 0
		for _, r := range runesIn(bs.src.Ranges) {
			if _, done := glyphs[r]; done {
				continue
			}
			if _, covered := bs.coverage.NominalGlyph(r); !covered {
				skipped++
				continue
			}

			dr, mask, maskp, advance, ok := bs.face.Glyph(fixed.Point26_6{}, r)
			if !ok {
				skipped++
				continue
			}

			g := Glyph{
				Rune:    r,
				Width:   dr.Dx(),
				Height:  dr.Dy(),
				OffsetX: float32(dr.Min.X),
				OffsetY: float32(dr.Min.Y),
				Advance: fixedToFloat32(advance),
			}
			glyphs[r] = g

			if g.Width <= 0 || g.Height <= 0 {
				// Whitespace: metrics only, no bitmap.
				continue
			}

			// The mask is only valid until the next Glyph call; copy it
			// out immediately.
			dst := image.NewAlpha(image.Rect(0, 0, g.Width, g.Height))
			draw.Draw(dst, dst.Bounds(), mask, maskp, draw.Src)
			bitmaps = append(bitmaps, glyphBitmap{
				r:      r,
				width:  g.Width,
				height: g.Height,
				alpha:  dst.Pix,
			})
		}
		if skipped > 0 {
			slogger().Debug("fontatlas: runes not covered by source",
				"source", bs.src.Name, "count", skipped)
		}
	}
	return bitmaps, glyphs, nil
}

// pack lays all glyph bitmaps out in the smallest square attempt that
// fits, then composites the RGBA atlas.
func pack(bitmaps []glyphBitmap, glyphs map[rune]Glyph) (*Atlas, error) {
	var (
		packer  *shelfPacker
		regions []region
		white   region
		dim     int
	)

attempt:
	for dim = minAtlasDim; dim <= maxAtlasDim; dim *= 2 {
		packer = newShelfPacker(dim, dim, glyphPadding)
		regions = regions[:0]

		white = packer.allocate(whiteDim, whiteDim)
		if !white.valid() {
			continue
		}
		for _, gb := range bitmaps {
			r := packer.allocate(gb.width, gb.height)
			if !r.valid() {
				continue attempt
			}
			regions = append(regions, r)
		}
		break
	}
	if dim > maxAtlasDim {
		return nil, fmt.Errorf("%w: %d glyphs", ErrAtlasTooLarge, len(bitmaps))
	}

	// Trim unused rows below the last shelf.
	height := 0
	for _, s := range packer.shelves {
		if bottom := s.y + s.height; bottom > height {
			height = bottom
		}
	}

	atlas := &Atlas{
		Width:  dim,
		Height: height,
		Pixels: make([]byte, dim*height*4),
		Glyphs: glyphs,
	}
	// White RGB everywhere, coverage in alpha.
	for i := 0; i < len(atlas.Pixels); i += 4 {
		atlas.Pixels[i+0] = 0xFF
		atlas.Pixels[i+1] = 0xFF
		atlas.Pixels[i+2] = 0xFF
	}

	fillRegion(atlas, white, nil)
	atlas.WhiteUV = [2]float32{
		(float32(white.x) + float32(white.width)/2) / float32(dim),
		(float32(white.y) + float32(white.height)/2) / float32(height),
	}

	for i, gb := range bitmaps {
		r := regions[i]
		fillRegion(atlas, r, gb.alpha)
		g := glyphs[gb.r]
		g.U0 = float32(r.x) / float32(dim)
		g.V0 = float32(r.y) / float32(height)
		g.U1 = float32(r.x+r.width) / float32(dim)
		g.V1 = float32(r.y+r.height) / float32(height)
		glyphs[gb.r] = g
	}
	return atlas, nil
}

// fillRegion writes coverage into the alpha channel of a region. A nil
// alpha slice fills the region fully opaque.
func fillRegion(a *Atlas, r region, alpha []byte) {
	for y := 0; y < r.height; y++ {
		row := ((r.y+y)*a.Width + r.x) * 4
		for x := 0; x < r.width; x++ {
			v := byte(0xFF)
			if alpha != nil {
				v = alpha[y*r.width+x]
			}
			a.Pixels[row+x*4+3] = v
		}
	}
}

// fixedToFloat32 converts a 26.6 fixed-point value to float32 pixels.
func fixedToFloat32(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
