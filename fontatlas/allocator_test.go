// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package fontatlas

import "testing"

func TestShelfPackerFillsShelvesLeftToRight(t *testing.T) {
	p := newShelfPacker(64, 64, 1)

	a := p.allocate(10, 10)
	b := p.allocate(10, 10)
	if !a.valid() || !b.valid() {
		t.Fatalf("allocations failed: %+v %+v", a, b)
	}
	if a.y != b.y {
		t.Errorf("same-height glyphs split across shelves: y %d vs %d", a.y, b.y)
	}
	if b.x != a.x+10+1 {
		t.Errorf("second region at x=%d, want %d (padding applied)", b.x, a.x+11)
	}
}

func TestShelfPackerOpensNewShelf(t *testing.T) {
	p := newShelfPacker(32, 64, 1)

	first := p.allocate(30, 10)
	second := p.allocate(30, 10) // does not fit beside the first
	if !first.valid() || !second.valid() {
		t.Fatalf("allocations failed: %+v %+v", first, second)
	}
	if second.y <= first.y {
		t.Errorf("second region at y=%d, want below the first shelf", second.y)
	}
}

func TestShelfPackerGrowsCurrentShelf(t *testing.T) {
	p := newShelfPacker(64, 64, 0)

	short := p.allocate(10, 5)
	tall := p.allocate(10, 12)
	if !short.valid() || !tall.valid() {
		t.Fatalf("allocations failed: %+v %+v", short, tall)
	}
	if tall.y != short.y {
		t.Errorf("taller glyph opened a new shelf at y=%d, want %d", tall.y, short.y)
	}
}

func TestShelfPackerRejectsOversized(t *testing.T) {
	p := newShelfPacker(32, 32, 1)

	if r := p.allocate(40, 10); r.valid() {
		t.Errorf("allocated region wider than the atlas: %+v", r)
	}
	if r := p.allocate(10, 40); r.valid() {
		t.Errorf("allocated region taller than the atlas: %+v", r)
	}
	if r := p.allocate(0, 10); r.valid() {
		t.Errorf("allocated zero-width region: %+v", r)
	}
}

func TestShelfPackerReportsFull(t *testing.T) {
	p := newShelfPacker(16, 16, 0)

	if r := p.allocate(16, 16); !r.valid() {
		t.Fatalf("exact-fit allocation failed: %+v", r)
	}
	if r := p.allocate(1, 1); r.valid() {
		t.Errorf("allocation succeeded in a full atlas: %+v", r)
	}
}

func TestShelfPackerDeterministic(t *testing.T) {
	sizes := [][2]int{{8, 12}, {20, 7}, {3, 3}, {15, 15}, {30, 4}}

	run := func() []region {
		p := newShelfPacker(64, 64, 1)
		var out []region
		for _, s := range sizes {
			out = append(out, p.allocate(s[0], s[1]))
		}
		return out
	}

	first, second := run(), run()
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("allocation %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}
