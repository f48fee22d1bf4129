// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package input collects native window events and translates them into the
// UI core's event vocabulary.
//
// The flow is two-stage. OS callbacks append [NativeEvent]s to a [Queue]
// in arrival order — enqueue only, never processed in the callback. Once
// per frame the [Translator] drains the queue, emits translated [Event]s
// in the same order, and clears it; no event is ever delivered twice or
// reordered relative to its siblings.
package input

import "fmt"

// Kind tags the variant of an event.
type Kind int

// Event kinds.
const (
	// KindKeyDown is a key press (repeats included).
	KindKeyDown Kind = iota

	// KindKeyUp is a key release.
	KindKeyUp

	// KindMouseButtonDown is a mouse button press.
	KindMouseButtonDown

	// KindMouseButtonUp is a mouse button release.
	KindMouseButtonUp

	// KindMouseMove is a cursor position change.
	KindMouseMove

	// KindScroll is a scroll wheel or trackpad delta.
	KindScroll

	// KindChar is a translated text character.
	KindChar
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindKeyDown:
		return "KeyDown"
	case KindKeyUp:
		return "KeyUp"
	case KindMouseButtonDown:
		return "MouseButtonDown"
	case KindMouseButtonUp:
		return "MouseButtonUp"
	case KindMouseMove:
		return "MouseMove"
	case KindScroll:
		return "Scroll"
	case KindChar:
		return "Char"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MouseButton is a mouse button in the UI core's vocabulary. Only the
// three primary buttons exist here; extra buttons are dropped by policy
// during translation.
type MouseButton int

// Mouse buttons.
const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// String returns a human-readable name for the button.
func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "Left"
	case MouseRight:
		return "Right"
	case MouseMiddle:
		return "Middle"
	default:
		return fmt.Sprintf("MouseButton(%d)", int(b))
	}
}

// Event is a translated event in the UI core's vocabulary. Kind selects
// which fields are meaningful.
type Event struct {
	// Kind is the event variant.
	Kind Kind

	// Key is set for KindKeyDown/KindKeyUp, including synthesized
	// modifier pseudo-key events.
	Key Key

	// Button is set for mouse button events.
	Button MouseButton

	// X, Y is the cursor position for KindMouseMove.
	X, Y float32

	// ScrollX, ScrollY is the scroll delta for KindScroll.
	ScrollX, ScrollY float32

	// Char is the character for KindChar.
	Char rune
}

// Queue buffers native events between OS callbacks and the per-frame
// drain.
//
// Thread Safety: the queue is NOT safe for concurrent use. It relies on
// the process's event callbacks being invoked synchronously on the thread
// that also drives the render loop, which is the delivery model of the
// windowing layers this bridge targets.
type Queue struct {
	events []NativeEvent
}

// Push appends a native event. Called from OS callbacks; enqueue only.
func (q *Queue) Push(ev NativeEvent) {
	q.events = append(q.events, ev)
}

// Len returns the number of queued events.
func (q *Queue) Len() int { return len(q.events) }

// Drain calls fn for every queued event in arrival order, then clears the
// queue. The queue has exactly one consumer; after Drain returns the
// events are gone.
func (q *Queue) Drain(fn func(NativeEvent)) {
	for i := range q.events {
		fn(q.events[i])
	}
	q.events = q.events[:0]
}
