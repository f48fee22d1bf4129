// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package input

import "github.com/go-gl/glfw/v3.3/glfw"

// NativeEvent is an untranslated window event as delivered by the OS
// layer. Kind selects which fields are meaningful.
type NativeEvent struct {
	// Kind is the event variant.
	Kind Kind

	// Key is the native key code for key events.
	Key glfw.Key

	// Button is the native mouse button for button events.
	Button glfw.MouseButton

	// X, Y carries the cursor position (KindMouseMove) or scroll delta
	// (KindScroll).
	X, Y float64

	// Char is the character for KindChar.
	Char rune
}

// keyTable maps native key codes into the UI core's key space. Static:
// translation is a pure lookup, no dynamic dispatch.
var keyTable = map[glfw.Key]Key{
	glfw.KeyA: KeyA, glfw.KeyB: KeyB, glfw.KeyC: KeyC, glfw.KeyD: KeyD,
	glfw.KeyE: KeyE, glfw.KeyF: KeyF, glfw.KeyG: KeyG, glfw.KeyH: KeyH,
	glfw.KeyI: KeyI, glfw.KeyJ: KeyJ, glfw.KeyK: KeyK, glfw.KeyL: KeyL,
	glfw.KeyM: KeyM, glfw.KeyN: KeyN, glfw.KeyO: KeyO, glfw.KeyP: KeyP,
	glfw.KeyQ: KeyQ, glfw.KeyR: KeyR, glfw.KeyS: KeyS, glfw.KeyT: KeyT,
	glfw.KeyU: KeyU, glfw.KeyV: KeyV, glfw.KeyW: KeyW, glfw.KeyX: KeyX,
	glfw.KeyY: KeyY, glfw.KeyZ: KeyZ,

	glfw.Key0: Key0, glfw.Key1: Key1, glfw.Key2: Key2, glfw.Key3: Key3,
	glfw.Key4: Key4, glfw.Key5: Key5, glfw.Key6: Key6, glfw.Key7: Key7,
	glfw.Key8: Key8, glfw.Key9: Key9,

	glfw.KeyF1: KeyF1, glfw.KeyF2: KeyF2, glfw.KeyF3: KeyF3,
	glfw.KeyF4: KeyF4, glfw.KeyF5: KeyF5, glfw.KeyF6: KeyF6,
	glfw.KeyF7: KeyF7, glfw.KeyF8: KeyF8, glfw.KeyF9: KeyF9,
	glfw.KeyF10: KeyF10, glfw.KeyF11: KeyF11, glfw.KeyF12: KeyF12,

	glfw.KeySpace:        KeySpace,
	glfw.KeyApostrophe:   KeyApostrophe,
	glfw.KeyComma:        KeyComma,
	glfw.KeyMinus:        KeyMinus,
	glfw.KeyPeriod:       KeyPeriod,
	glfw.KeySlash:        KeySlash,
	glfw.KeySemicolon:    KeySemicolon,
	glfw.KeyEqual:        KeyEqual,
	glfw.KeyLeftBracket:  KeyLeftBracket,
	glfw.KeyBackslash:    KeyBackslash,
	glfw.KeyRightBracket: KeyRightBracket,
	glfw.KeyGraveAccent:  KeyGraveAccent,

	glfw.KeyEscape:    KeyEscape,
	glfw.KeyEnter:     KeyEnter,
	glfw.KeyTab:       KeyTab,
	glfw.KeyBackspace: KeyBackspace,
	glfw.KeyInsert:    KeyInsert,
	glfw.KeyDelete:    KeyDelete,
	glfw.KeyRight:     KeyRight,
	glfw.KeyLeft:      KeyLeft,
	glfw.KeyDown:      KeyDown,
	glfw.KeyUp:        KeyUp,
	glfw.KeyPageUp:    KeyPageUp,
	glfw.KeyPageDown:  KeyPageDown,
	glfw.KeyHome:      KeyHome,
	glfw.KeyEnd:       KeyEnd,

	glfw.KeyCapsLock:    KeyCapsLock,
	glfw.KeyScrollLock:  KeyScrollLock,
	glfw.KeyNumLock:     KeyNumLock,
	glfw.KeyPrintScreen: KeyPrintScreen,
	glfw.KeyPause:       KeyPause,

	glfw.KeyKP0: KeyKP0, glfw.KeyKP1: KeyKP1, glfw.KeyKP2: KeyKP2,
	glfw.KeyKP3: KeyKP3, glfw.KeyKP4: KeyKP4, glfw.KeyKP5: KeyKP5,
	glfw.KeyKP6: KeyKP6, glfw.KeyKP7: KeyKP7, glfw.KeyKP8: KeyKP8,
	glfw.KeyKP9: KeyKP9,
	glfw.KeyKPDecimal:  KeyKPDecimal,
	glfw.KeyKPDivide:   KeyKPDivide,
	glfw.KeyKPMultiply: KeyKPMultiply,
	glfw.KeyKPSubtract: KeyKPSubtract,
	glfw.KeyKPAdd:      KeyKPAdd,
	glfw.KeyKPEnter:    KeyKPEnter,
	glfw.KeyKPEqual:    KeyKPEqual,

	glfw.KeyLeftShift:    KeyLeftShift,
	glfw.KeyLeftControl:  KeyLeftControl,
	glfw.KeyLeftAlt:      KeyLeftAlt,
	glfw.KeyLeftSuper:    KeyLeftSuper,
	glfw.KeyRightShift:   KeyRightShift,
	glfw.KeyRightControl: KeyRightControl,
	glfw.KeyRightAlt:     KeyRightAlt,
	glfw.KeyRightSuper:   KeyRightSuper,
	glfw.KeyMenu:         KeyMenu,
}

// Translator turns native events into UI-core events.
//
// Translation is stateless per event except for unsupported-key
// bookkeeping: each unmapped native code is logged once, then counted
// silently, so a stuck F13 cannot flood the log.
type Translator struct {
	warned map[glfw.Key]struct{}

	// Unsupported counts key events whose native code had no mapping.
	// Those events are reported here and logged, not guessed at.
	Unsupported int
}

// NewTranslator creates a Translator.
func NewTranslator() *Translator {
	return &Translator{warned: make(map[glfw.Key]struct{})}
}

// TranslateKey maps a native key code into the UI key space. The second
// result is false for codes with no mapping (F13–F25, OEM keys); such
// keys are an explicit unsupported outcome, never a guess.
func (t *Translator) TranslateKey(k glfw.Key) (Key, bool) {
	key, ok := keyTable[k]
	return key, ok
}

// translateButton maps the three primary mouse buttons. Buttons beyond
// left/right/middle are intentionally not translated: the UI core has no
// vocabulary for them and guessing a primary button would misfire
// interactions.
func translateButton(b glfw.MouseButton) (MouseButton, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return MouseLeft, true
	case glfw.MouseButtonRight:
		return MouseRight, true
	case glfw.MouseButtonMiddle:
		return MouseMiddle, true
	default:
		return 0, false
	}
}

// Drain translates every queued event in arrival order and hands the
// results to emit, then clears the queue.
//
// For each key press/release whose key is itself a modifier, a second
// event for the matching Mod* pseudo-key is emitted immediately after the
// physical key event, so modifier-state queries in the UI core stay
// consistent with the physical key stream.
func (t *Translator) Drain(q *Queue, emit func(Event)) {
	q.Drain(func(nev NativeEvent) {
		switch nev.Kind {
		case KindKeyDown, KindKeyUp:
			key, ok := t.TranslateKey(nev.Key)
			if !ok {
				t.Unsupported++
				if _, seen := t.warned[nev.Key]; !seen {
					t.warned[nev.Key] = struct{}{}
					slogger().Warn("input: unsupported native key",
						"native", int(nev.Key))
				}
				return
			}
			emit(Event{Kind: nev.Kind, Key: key})
			if mod, isMod := key.Modifier(); isMod {
				emit(Event{Kind: nev.Kind, Key: mod})
			}

		case KindMouseButtonDown, KindMouseButtonUp:
			button, ok := translateButton(nev.Button)
			if !ok {
				slogger().Debug("input: extra mouse button ignored",
					"native", int(nev.Button))
				return
			}
			emit(Event{Kind: nev.Kind, Button: button})

		case KindMouseMove:
			emit(Event{Kind: KindMouseMove, X: float32(nev.X), Y: float32(nev.Y)})

		case KindScroll:
			emit(Event{Kind: KindScroll, ScrollX: float32(nev.X), ScrollY: float32(nev.Y)})

		case KindChar:
			emit(Event{Kind: KindChar, Char: nev.Char})
		}
	})
}
