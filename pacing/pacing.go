// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package pacing decides how fast the render/update loop should run based
// on window visibility, focus and input-idle signals, and applies cadence
// changes only at a designated safe point between frames.
//
// Changing the drive rate while a frame is in flight desynchronizes the UI
// core's timers from the renderer's and corrupts in-flight frame state, so
// the governor never mutates the live rate directly. Signal changes queue a
// pending transition; only [Governor.Commit], called after the frame's draw
// call has fully returned, promotes it. Both target rates always change
// together.
package pacing

import (
	"fmt"
	"time"
)

// Rates is a render/update cadence pair. The two rates are applied
// atomically: there is no way to change one without the other.
type Rates struct {
	// FramesPerSecond is the target render rate in Hz.
	FramesPerSecond float64

	// UpdatesPerSecond is the target update rate in Hz.
	UpdatesPerSecond float64
}

// String returns a compact "render/update" representation.
func (r Rates) String() string {
	return fmt.Sprintf("%g/%g Hz", r.FramesPerSecond, r.UpdatesPerSecond)
}

// State is the window condition driving the cadence.
type State int

// Window conditions, lowest priority first.
const (
	// StateFocused: window visible and focused.
	StateFocused State = iota

	// StateUnfocused: window visible but not focused.
	StateUnfocused

	// StateIdle: no user input for the configured timeout.
	// Overrides focus.
	StateIdle

	// StateHidden: window not visible. Overrides everything; a hidden
	// window wastes the most resources if left at a higher rate.
	StateHidden
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateFocused:
		return "Focused"
	case StateUnfocused:
		return "Unfocused"
	case StateIdle:
		return "Idle"
	case StateHidden:
		return "Hidden"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Config maps each window condition to a cadence pair.
type Config struct {
	// Focused is the cadence while visible and focused.
	Focused Rates

	// Unfocused is the cadence while visible but unfocused.
	Unfocused Rates

	// Idle is the cadence after IdleTimeout without user input.
	Idle Rates

	// Hidden is the cadence while the window is not visible.
	Hidden Rates

	// IdleTimeout is how long without user input counts as idle.
	IdleTimeout time.Duration
}

// DefaultConfig returns the stock cadence policy: 60 Hz focused, 30 Hz
// unfocused, 10 Hz idle, 1 Hz hidden, 30 second idle timeout.
func DefaultConfig() Config {
	return Config{
		Focused:     Rates{FramesPerSecond: 60, UpdatesPerSecond: 60},
		Unfocused:   Rates{FramesPerSecond: 30, UpdatesPerSecond: 30},
		Idle:        Rates{FramesPerSecond: 10, UpdatesPerSecond: 10},
		Hidden:      Rates{FramesPerSecond: 1, UpdatesPerSecond: 1},
		IdleTimeout: 30 * time.Second,
	}
}

// Rates returns the cadence pair configured for a state.
func (c Config) Rates(s State) Rates {
	switch s {
	case StateHidden:
		return c.Hidden
	case StateIdle:
		return c.Idle
	case StateUnfocused:
		return c.Unfocused
	default:
		return c.Focused
	}
}

// ApplyFunc installs a cadence pair in the host's timing subsystem
// (timer reconfiguration, swap interval, etc.). It is only ever called
// from [Governor.Commit], between frames.
type ApplyFunc func(Rates) error

// phase is the governor's two-state machine: either the cadence is steady,
// or exactly one complete transition is queued.
type phase int

const (
	phaseSteady phase = iota
	phasePending
)

// Governor computes the required cadence from window signals and defers
// every change to the frame boundary.
//
// Thread Safety: the governor is NOT safe for concurrent use. Signals,
// Tick and Commit must all come from the thread driving the render loop.
type Governor struct {
	cfg   Config
	apply ApplyFunc
	now   func() time.Time

	visible   bool
	focused   bool
	lastInput time.Time

	state   State
	current Rates

	phase        phase
	pending      Rates
	pendingState State
}

// Option configures a Governor during creation.
type Option func(*Governor)

// WithClock substitutes the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(g *Governor) {
		if now != nil {
			g.now = now
		}
	}
}

// NewGovernor creates a governor for the given policy. The apply callback
// installs a promoted cadence in the host's timing subsystem; a nil apply
// makes Commit a pure bookkeeping operation.
//
// The governor starts in the Focused state with the Focused cadence
// considered current; it does not call apply until the first promoted
// transition.
func NewGovernor(cfg Config, apply ApplyFunc, opts ...Option) *Governor {
	g := &Governor{
		cfg:     cfg,
		apply:   apply,
		now:     time.Now,
		visible: true,
		focused: true,
		state:   StateFocused,
		current: cfg.Focused,
	}
	g.lastInput = g.now()
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ReportVisibility records whether the window is currently visible.
// The live cadence is not touched; the change takes effect through
// Tick/Commit.
func (g *Governor) ReportVisibility(visible bool) { g.visible = visible }

// ReportFocus records whether the window currently has input focus.
func (g *Governor) ReportFocus(focused bool) { g.focused = focused }

// ReportUserInput resets the idle timer.
func (g *Governor) ReportUserInput() { g.lastInput = g.now() }

// requiredState resolves the window signals in strict priority order:
// hidden over idle over focus.
func (g *Governor) requiredState() State {
	if !g.visible {
		return StateHidden
	}
	if g.now().Sub(g.lastInput) >= g.cfg.IdleTimeout {
		return StateIdle
	}
	if g.focused {
		return StateFocused
	}
	return StateUnfocused
}

// Tick re-evaluates the window signals. If the required cadence differs
// from the current one, the transition is queued; the live cadence is
// never mutated here. If the signals have returned to the current cadence
// before a queued transition was committed, the queue is dropped.
//
// Call once per frame, at any point.
func (g *Governor) Tick() {
	required := g.requiredState()
	rates := g.cfg.Rates(required)

	if rates == g.current {
		if g.phase == phasePending {
			slogger().Debug("pacing: pending transition dropped, signals reverted",
				"state", g.state)
			g.phase = phaseSteady
		}
		return
	}

	if g.phase == phasePending && g.pending == rates {
		return
	}
	g.phase = phasePending
	g.pending = rates
	g.pendingState = required
	slogger().Debug("pacing: transition queued",
		"from", g.state, "to", required, "rates", rates)
}

// Commit promotes a queued transition, if any. This is the designated
// synchronization point: it must only be called between frames, after the
// current frame's draw call has fully returned.
//
// At most one transition is promoted per call, and both target rates
// change together. If the apply callback fails, the failure is logged,
// the queued transition is discarded so the governor does not retry a
// stale request forever, and the current cadence remains whatever was
// last successfully applied.
func (g *Governor) Commit() error {
	if g.phase != phasePending {
		return nil
	}
	g.phase = phaseSteady

	if g.apply != nil {
		if err := g.apply(g.pending); err != nil {
			slogger().Warn("pacing: applying pending rates failed",
				"state", g.pendingState, "rates", g.pending, "err", err)
			return fmt.Errorf("pacing: apply %v rates: %w", g.pendingState, err)
		}
	}
	slogger().Debug("pacing: transition committed",
		"from", g.state, "to", g.pendingState, "rates", g.pending)
	g.state = g.pendingState
	g.current = g.pending
	return nil
}

// State returns the window condition whose cadence is currently in effect.
func (g *Governor) State() State { return g.state }

// Current returns the cadence currently in effect.
func (g *Governor) Current() Rates { return g.current }

// Pending returns the queued cadence and whether one is queued.
func (g *Governor) Pending() (Rates, bool) {
	if g.phase != phasePending {
		return Rates{}, false
	}
	return g.pending, true
}
