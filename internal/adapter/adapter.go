// Package adapter defines the external interfaces the driver consumes:
// the engine transport, the host text widget, timers, and the
// user-facing alerter. Concrete implementations (a real engine
// subprocess, a real host accessibility API, an in-memory fake for
// tests) live outside this package; adapter only names the surface.
package adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fluxwatch/bufcore/internal/coreevent"
	"github.com/fluxwatch/bufcore/internal/position"
)

// SessionID uniquely identifies one live driver/buffer attachment, for
// logging and telemetry correlation across the engine and host sides.
type SessionID string

// NewSessionID mints a fresh SessionID.
func NewSessionID() SessionID {
	return SessionID(uuid.NewString())
}

// Sentinel errors surfaced by adapter implementations. The driver
// forwards these back through the reducer as Failed events (transport
// failures) or handles them directly without involving the reducer
// (host-stale).
var (
	// ErrTransportClosed indicates the engine transport connection
	// broke or the engine process exited unexpectedly.
	ErrTransportClosed = errors.New("adapter: engine transport closed")

	// ErrHostStale indicates a write to the host widget failed because
	// the widget handle no longer refers to a live element. The driver
	// logs it and drops that write; the reducer is never notified.
	ErrHostStale = errors.New("adapter: host widget handle is stale")
)

// ProtocolError wraps a malformed notification from an adapter — e.g. a
// line-change delta referencing a nonexistent buffer. It is logged and
// the offending event is dropped; it never reaches the reducer.
type ProtocolError struct {
	Delta coreevent.LineDelta
	Err   error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("adapter: protocol error on delta [%d,%d): %v", e.Delta.FirstLine, e.Delta.LastLine, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// EngineTransport is the message-oriented, asynchronous connection to
// the engine process. All methods may be called from the driver's
// single-threaded main context; implementations marshal any background
// I/O back onto notifications delivered through the Subscribe* methods.
type EngineTransport interface {
	// ReplaceLines overwrites the whole buffer wholesale.
	ReplaceLines(ctx context.Context, lines []string) error
	// SetLines replaces [delta.FirstLine, delta.LastLine) with
	// delta.LineData; delta.LastLine == -1 means "through end of buffer".
	SetLines(ctx context.Context, delta coreevent.LineDelta) error
	// MoveCursor places the cursor at pos, silently clamping an
	// out-of-range position to the closest valid one rather than erroring.
	MoveCursor(ctx context.Context, pos position.Engine) error
	// StartVisual enters charwise Visual over the inclusive [start, end] range.
	StartVisual(ctx context.Context, start, end position.Engine) error
	// StopVisual leaves any visual/select mode.
	StopVisual(ctx context.Context) error
	Undo(ctx context.Context) error
	Redo(ctx context.Context) error
	Paste(ctx context.Context) error
	// Input feeds a key-notation string (e.g. "<Esc>", "a") to the engine.
	Input(ctx context.Context, keys string) error

	// SubscribeLines registers a callback for line-change notifications.
	SubscribeLines(func(coreevent.LineDelta))
	// SubscribeCursor registers a callback for cursor/mode notifications.
	SubscribeCursor(func(mode string, cursor position.Engine, visual position.Engine))
	// SubscribeFlush registers a callback for the end-of-batch signal.
	SubscribeFlush(func())
}

// HostText is the connection to the host's text widget.
type HostText interface {
	// FullText reads the widget's complete text content.
	FullText(ctx context.Context) (string, error)
	// SelectedRange reads the current selection as a character range.
	SelectedRange(ctx context.Context) (start, end int, err error)
	// LineForIndex converts a character offset to a zero-indexed line number.
	LineForIndex(ctx context.Context, index int) (line int, err error)
	// RangeForLine converts a zero-indexed line number to its
	// [start, end) character range, excluding the line terminator.
	RangeForLine(ctx context.Context, line int) (start, end int, err error)
	// WriteRange replaces the character range [start, end) with text.
	WriteRange(ctx context.Context, start, end int, text string) error
	// WriteSelectedText replaces the currently selected text.
	WriteSelectedText(ctx context.Context, text string) error
	// WriteFullValue replaces the widget's entire content.
	WriteFullValue(ctx context.Context, text string) error
	// SelectRange moves the widget's selection handle to [start, end)
	// without altering its text content.
	SelectRange(ctx context.Context, start, end int) error
	// ScrollRangeToVisible ensures the character range is in view.
	ScrollRangeToVisible(ctx context.Context, start, end int) error

	// SubscribeValueChanged registers a callback for full-content changes.
	SubscribeValueChanged(func(lines []string))
	// SubscribeSelectionChanged registers a callback for selection changes.
	SubscribeSelectionChanged(func(start, end int))
}

// Timer starts and implicitly restarts named timers for the driver, and
// reports firings back through the callback registered with OnFire. At
// most one pending firing per id exists at a time.
type Timer interface {
	// Start (re)schedules the named timer, cancelling any in-flight
	// firing with the same id.
	Start(id coreevent.TimerID, seconds float64)
	// OnFire registers the callback invoked when a scheduled timer
	// elapses. The driver uses it to push a TimerFired event onto its
	// own mailbox.
	OnFire(func(coreevent.TimerID))
}

// Alerter surfaces user-visible feedback: an audible bell or a
// descriptive alert for a reported error.
type Alerter interface {
	Bell()
	Alert(err error)
}
