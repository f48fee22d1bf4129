// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package fontatlas

// region is a rectangular area inside the atlas bitmap.
type region struct {
	x, y          int
	width, height int
}

// valid reports whether the region has positive area.
func (r region) valid() bool { return r.width > 0 && r.height > 0 }

// shelf is one horizontal row of the shelf-packing allocator.
type shelf struct {
	y      int // top Y of this shelf
	height int // height of the tallest glyph placed so far
	nextX  int // next free X on this shelf
}

// shelfPacker allocates glyph rectangles within a fixed-size area using
// shelf packing: glyphs fill the current shelf left to right, and a new
// shelf opens below when one does not fit.
//
// Only the most recent shelf accepts new glyphs, so packing order is the
// caller's iteration order and a fixed glyph set always produces the same
// layout.
type shelfPacker struct {
	width   int
	height  int
	padding int
	shelves []shelf
}

// newShelfPacker creates a packer for a width x height area with the given
// padding between glyphs.
func newShelfPacker(width, height, padding int) *shelfPacker {
	return &shelfPacker{width: width, height: height, padding: padding}
}

// allocate finds space for a w x h rectangle. The zero region is returned
// when the rectangle does not fit anywhere.
func (p *shelfPacker) allocate(w, h int) region {
	if w <= 0 || h <= 0 {
		return region{}
	}
	pw, ph := w+p.padding, h+p.padding
	if pw > p.width {
		return region{}
	}

	// Place on the current shelf when it has room. The shelf may grow
	// taller to fit as long as it stays inside the atlas; shelves above
	// are already sealed.
	if n := len(p.shelves); n > 0 {
		s := &p.shelves[n-1]
		if s.nextX+pw <= p.width && (ph <= s.height || s.y+ph <= p.height) {
			if ph > s.height {
				s.height = ph
			}
			r := region{x: s.nextX, y: s.y, width: w, height: h}
			s.nextX += pw
			return r
		}
	}

	// Open a new shelf below the last one.
	y := 0
	if n := len(p.shelves); n > 0 {
		last := p.shelves[n-1]
		y = last.y + last.height
	}
	if y+ph > p.height {
		return region{}
	}
	p.shelves = append(p.shelves, shelf{y: y, height: ph, nextX: pw})
	return region{x: 0, y: y, width: w, height: h}
}
