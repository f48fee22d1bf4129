// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package glx defines the capability surface the rendering bridge calls
// into: a narrow, typed view of a stateful rasterization API.
//
// The bridge never calls the graphics driver directly. Everything it needs
// from the GPU — buffer and texture lifecycle, shader programs, blend and
// scissor state, indexed draws, and the state queries used to save and
// restore the host's pipeline configuration — goes through the [API]
// interface. Production code uses the OpenGL 4.1 core implementation in
// glx/gl41; tests substitute an in-memory fake.
//
// Numeric encoding: the enum constants in this package deliberately use the
// OpenGL numeric values. State queried through [API.GetInteger] can
// therefore be fed back into the typed setters without a translation table,
// which is what the state save/restore protocol relies on.
package glx
