// Package memory provides complete in-memory fakes of the engine
// transport and host text adapters, operating on plain Go string
// slices. They exist so the reducer and driver can be exercised
// end-to-end — in tests and in cmd/bufcored's demo — without a real
// engine subprocess or host accessibility API.
package memory

import (
	"context"
	"sync"

	"github.com/fluxwatch/bufcore/internal/coreevent"
	"github.com/fluxwatch/bufcore/internal/position"
)

// Engine is an in-memory stand-in for the engine's message-oriented
// transport. It keeps a line buffer, a cursor, and a small undo stack,
// and lets a test drive "external" engine changes via its Notify*
// methods.
type Engine struct {
	mu sync.Mutex

	lines  []string
	cursor position.Engine
	visual position.Engine
	mode   string

	undoStack [][]string
	redoStack [][]string

	lineSubs   []func(coreevent.LineDelta)
	cursorSubs []func(mode string, cursor, visual position.Engine)
	flushSubs  []func()
}

// NewEngine builds a fake engine transport seeded with lines.
func NewEngine(lines []string) *Engine {
	return &Engine{
		lines:  append([]string(nil), lines...),
		cursor: position.Engine{Line: 1, Column: 1},
		visual: position.Engine{Line: 1, Column: 1},
		mode:   "normal",
	}
}

func (e *Engine) ReplaceLines(_ context.Context, lines []string) error {
	e.mu.Lock()
	e.pushUndoLocked()
	e.lines = append([]string(nil), lines...)
	e.mu.Unlock()
	return nil
}

func (e *Engine) SetLines(_ context.Context, delta coreevent.LineDelta) error {
	e.mu.Lock()
	e.pushUndoLocked()
	e.lines = delta.Apply(e.lines)
	e.mu.Unlock()
	return nil
}

func (e *Engine) MoveCursor(_ context.Context, pos position.Engine) error {
	e.mu.Lock()
	e.cursor = pos
	e.visual = pos
	e.mu.Unlock()
	return nil
}

func (e *Engine) StartVisual(_ context.Context, start, end position.Engine) error {
	e.mu.Lock()
	e.mode = "visual"
	e.cursor = end
	e.visual = start
	e.mu.Unlock()
	return nil
}

func (e *Engine) StopVisual(_ context.Context) error {
	e.mu.Lock()
	e.mode = "normal"
	e.visual = e.cursor
	e.mu.Unlock()
	return nil
}

func (e *Engine) Undo(_ context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.undoStack) == 0 {
		return nil
	}
	n := len(e.undoStack) - 1
	e.redoStack = append(e.redoStack, append([]string(nil), e.lines...))
	e.lines = e.undoStack[n]
	e.undoStack = e.undoStack[:n]
	return nil
}

func (e *Engine) Redo(_ context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.redoStack) == 0 {
		return nil
	}
	n := len(e.redoStack) - 1
	e.undoStack = append(e.undoStack, append([]string(nil), e.lines...))
	e.lines = e.redoStack[n]
	e.redoStack = e.redoStack[:n]
	return nil
}

func (e *Engine) Paste(_ context.Context) error {
	// The fake has no OS clipboard to read from; pasting is a no-op
	// beyond recording an undo point, matching the real transport's
	// "paste is just another content mutation" contract.
	e.mu.Lock()
	e.pushUndoLocked()
	e.mu.Unlock()
	return nil
}

func (e *Engine) Input(_ context.Context, keys string) error {
	// The fake does not parse key notation or run a modal command set;
	// it accepts and discards the keys, which is sufficient for
	// exercising the reducer/driver plumbing around EngineInput.
	_ = keys
	return nil
}

func (e *Engine) SubscribeLines(fn func(coreevent.LineDelta)) {
	e.mu.Lock()
	e.lineSubs = append(e.lineSubs, fn)
	e.mu.Unlock()
}

func (e *Engine) SubscribeCursor(fn func(mode string, cursor, visual position.Engine)) {
	e.mu.Lock()
	e.cursorSubs = append(e.cursorSubs, fn)
	e.mu.Unlock()
}

func (e *Engine) SubscribeFlush(fn func()) {
	e.mu.Lock()
	e.flushSubs = append(e.flushSubs, fn)
	e.mu.Unlock()
}

// NotifyLines simulates the engine pushing a line-change delta,
// fanning it out to every SubscribeLines callback.
func (e *Engine) NotifyLines(delta coreevent.LineDelta) {
	e.mu.Lock()
	e.lines = delta.Apply(e.lines)
	subs := append([]func(coreevent.LineDelta)(nil), e.lineSubs...)
	e.mu.Unlock()
	for _, fn := range subs {
		fn(delta)
	}
}

// NotifyCursor simulates the engine reporting a cursor/mode change.
func (e *Engine) NotifyCursor(mode string, cursor, visual position.Engine) {
	e.mu.Lock()
	e.mode = mode
	e.cursor = cursor
	e.visual = visual
	subs := append([]func(string, position.Engine, position.Engine)(nil), e.cursorSubs...)
	e.mu.Unlock()
	for _, fn := range subs {
		fn(mode, cursor, visual)
	}
}

// NotifyFlush simulates the engine's end-of-batch signal.
func (e *Engine) NotifyFlush() {
	e.mu.Lock()
	subs := append([]func()(nil), e.flushSubs...)
	e.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

// Lines returns a snapshot of the fake engine's current buffer, for
// assertions in tests.
func (e *Engine) Lines() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.lines...)
}

func (e *Engine) pushUndoLocked() {
	e.undoStack = append(e.undoStack, append([]string(nil), e.lines...))
	e.redoStack = nil
}
