// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package fontatlas

import (
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// basicLatin covers the printable ASCII range.
var basicLatin = &unicode.RangeTable{
	R16:         []unicode.Range16{{Lo: 0x0020, Hi: 0x007E, Stride: 1}},
	LatinOffset: 1,
}

// latin1Supplement covers the printable Latin-1 supplement range.
var latin1Supplement = &unicode.RangeTable{
	R16:         []unicode.Range16{{Lo: 0x00A0, Hi: 0x00FF, Stride: 1}},
	LatinOffset: 1,
}

// DefaultRanges returns the glyph ranges baked when a source does not
// configure its own: printable ASCII plus the Latin-1 supplement.
func DefaultRanges() *unicode.RangeTable {
	return rangetable.Merge(basicLatin, latin1Supplement)
}

// MergeRanges combines several range tables into one. Convenience wrapper
// for hosts assembling a custom glyph set.
func MergeRanges(tables ...*unicode.RangeTable) *unicode.RangeTable {
	return rangetable.Merge(tables...)
}

// runesIn returns every rune of a range table in ascending order.
func runesIn(rt *unicode.RangeTable) []rune {
	var runes []rune
	for _, r := range rt.R16 {
		for c := rune(r.Lo); c <= rune(r.Hi); c += rune(r.Stride) {
			runes = append(runes, c)
		}
	}
	for _, r := range rt.R32 {
		for c := rune(r.Lo); c <= rune(r.Hi); c += rune(r.Stride) {
			runes = append(runes, c)
		}
	}
	return runes
}
