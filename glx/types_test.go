// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glx

import "testing"

func TestTextureUnitIndex(t *testing.T) {
	if got := Texture0.Index(); got != 0 {
		t.Errorf("Texture0.Index() = %d, want 0", got)
	}
	if got := (Texture0 + 5).Index(); got != 5 {
		t.Errorf("(Texture0+5).Index() = %d, want 5", got)
	}
}

func TestEnumsRoundTripThroughStateQueries(t *testing.T) {
	// State queries report raw integers; every enum the state guard
	// captures must survive a cast through int32 unchanged.
	if BlendEquation(int32(BlendEquationAdd)) != BlendEquationAdd {
		t.Error("BlendEquationAdd does not survive an int32 round-trip")
	}
	if BlendFactor(int32(BlendOneMinusSrcAlpha)) != BlendOneMinusSrcAlpha {
		t.Error("BlendOneMinusSrcAlpha does not survive an int32 round-trip")
	}
	if PolygonMode(int32(PolygonFill)) != PolygonFill {
		t.Error("PolygonFill does not survive an int32 round-trip")
	}
	if TextureUnit(int32(Texture0+7)) != Texture0+7 {
		t.Error("texture unit does not survive an int32 round-trip")
	}
}

func TestStringers(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{CapBlend.String(), "Blend"},
		{CapScissorTest.String(), "ScissorTest"},
		{Capability(0xFFFF).String(), "Capability(0xFFFF)"},
		{ArrayBuffer.String(), "ArrayBuffer"},
		{ElementArrayBuffer.String(), "ElementArrayBuffer"},
		{NoError.String(), "NoError"},
		{InvalidOperation.String(), "InvalidOperation"},
		{ErrorCode(0x9999).String(), "ErrorCode(0x9999)"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("String() = %q, want %q", tt.got, tt.want)
		}
	}
}
