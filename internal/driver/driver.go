// Package driver owns the single-threaded event loop that ties the pure
// reducer to live adapters. One Driver exists per attached buffer: it
// holds that buffer's corestate.State, is the only goroutine that ever
// touches it, and is the sole place in this module where I/O happens.
//
// Every adapter notification — an engine change, a host edit, a fired
// timer — arrives as a coreevent.Event pushed onto one ordered mailbox.
// The loop goroutine drains the mailbox one Event at a time, feeds it to
// reducer.On, and dispatches the resulting Actions to the adapters in
// order before taking the next Event, so the driver never reenters the
// reducer while a previous call's actions are still being applied.
package driver

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fluxwatch/bufcore/internal/adapter"
	"github.com/fluxwatch/bufcore/internal/config"
	"github.com/fluxwatch/bufcore/internal/coreaction"
	"github.com/fluxwatch/bufcore/internal/corelog"
	"github.com/fluxwatch/bufcore/internal/coreevent"
	"github.com/fluxwatch/bufcore/internal/corestate"
	"github.com/fluxwatch/bufcore/internal/position"
	"github.com/fluxwatch/bufcore/internal/reducer"
	"github.com/fluxwatch/bufcore/internal/selection"
	"github.com/fluxwatch/bufcore/internal/telemetry"
)

// defaultMailboxCapacity bounds the driver's event queue when cfg leaves
// it unset. Post blocks once the mailbox fills rather than dropping an
// event or reordering around a full queue.
const defaultMailboxCapacity = 256

// defaultIdleTimerSeconds is the idle backstop duration used when cfg
// leaves it unset.
const defaultIdleTimerSeconds = 2.0

// mailboxItem is either a coreevent.Event to run through the reducer, or
// a Sync barrier (ack set, event zero). Routing both through the same
// channel keeps Sync's wait strictly FIFO with respect to prior Posts —
// a separate barrier channel selected alongside the mailbox would let
// Sync race ahead of still-pending events.
type mailboxItem struct {
	event coreevent.Event
	ack   chan struct{}
}

// Driver owns one buffer's corestate.State and its adapter wiring.
type Driver struct {
	session adapter.SessionID
	log     *corelog.Logger

	engine  adapter.EngineTransport
	host    adapter.HostText
	timer   adapter.Timer
	alerter adapter.Alerter

	state       *corestate.State
	tel         *telemetry.Stats
	idleSeconds float64

	mailbox  chan mailboxItem
	running  atomic.Bool
	done     chan struct{}
	stopOnce sync.Once
}

// New builds a Driver over an initial buffer's lines, wired to the given
// adapters and configured with cfg's timer durations and mailbox
// capacity. Call Start to begin processing events. A nil log uses
// corelog.Null.
func New(lines []string, engine adapter.EngineTransport, host adapter.HostText, timer adapter.Timer, alerter adapter.Alerter, log *corelog.Logger, cfg config.Config) *Driver {
	if log == nil {
		log = corelog.Null
	}

	state := corestate.New(lines)
	if cfg.TokenTimerSeconds > 0 {
		state.TokenTimerSeconds = cfg.TokenTimerSeconds
	}

	idleSeconds := cfg.IdleTimerSeconds
	if idleSeconds <= 0 {
		idleSeconds = defaultIdleTimerSeconds
	}

	capacity := cfg.MailboxCapacity
	if capacity <= 0 {
		capacity = defaultMailboxCapacity
	}

	return &Driver{
		session:     adapter.NewSessionID(),
		log:         log.WithComponent("driver"),
		engine:      engine,
		host:        host,
		timer:       timer,
		alerter:     alerter,
		state:       state,
		tel:         telemetry.New(),
		idleSeconds: idleSeconds,
		mailbox:     make(chan mailboxItem, capacity),
		done:        make(chan struct{}),
	}
}

// Session returns the driver's session identifier, for log/telemetry
// correlation.
func (d *Driver) Session() adapter.SessionID { return d.session }

// Telemetry returns the driver's invariant counters.
func (d *Driver) Telemetry() *telemetry.Stats { return d.tel }

// Start wires the driver's mailbox to every adapter's notifications and
// launches the single consumer goroutine. Calling Start more than once
// on the same Driver is a no-op.
func (d *Driver) Start() {
	if !d.running.CompareAndSwap(false, true) {
		return
	}
	d.wireAdapters()
	go d.loop()
}

// Stop releases the consumer goroutine. Safe to call from any goroutine
// and more than once.
func (d *Driver) Stop() {
	d.stopOnce.Do(func() { close(d.done) })
}

// Post enqueues ev for processing by the driver's single consumer
// goroutine. Safe to call from any goroutine, including adapter
// notification callbacks; blocks if the mailbox is full.
func (d *Driver) Post(ev coreevent.Event) {
	select {
	case d.mailbox <- mailboxItem{event: ev}:
	case <-d.done:
	}
}

func (d *Driver) wireAdapters() {
	d.engine.SubscribeLines(func(delta coreevent.LineDelta) {
		if delta.FirstLine < 0 {
			d.log.Warn("dropping malformed line delta: FirstLine %d < 0", delta.FirstLine)
			d.tel.RecordProtocolErrorDropped()
			return
		}
		d.Post(coreevent.Event{Kind: coreevent.EngineLinesChanged, LinesDelta: delta})
	})
	d.engine.SubscribeCursor(func(mode string, cursor, visual position.Engine) {
		m := modeFromString(mode)
		d.Post(coreevent.Event{Kind: coreevent.EngineModeChanged, Mode: m})
		d.Post(coreevent.Event{Kind: coreevent.EngineCursorChanged, Cursor: selection.Cursor{Mode: m, Position: cursor, Visual: visual}})
	})
	d.engine.SubscribeFlush(func() {
		d.Post(coreevent.Event{Kind: coreevent.EngineFlushed})
	})

	d.host.SubscribeValueChanged(func(lines []string) {
		d.Post(coreevent.Event{Kind: coreevent.HostLinesChanged, HostLines: lines})
	})
	d.host.SubscribeSelectionChanged(func(start, end int) {
		sel, err := d.hostSelectionForRange(context.Background(), start, end)
		if err != nil {
			d.log.Warn("dropping unreadable host selection [%d,%d): %v", start, end, err)
			d.tel.RecordProtocolErrorDropped()
			return
		}
		d.Post(coreevent.Event{Kind: coreevent.HostSelectionChanged, HostSelection: sel})
	})

	d.timer.OnFire(func(id coreevent.TimerID) {
		d.Post(coreevent.Event{Kind: coreevent.TimerFired, TimerID: id})
	})
}

func (d *Driver) loop() {
	ctx := context.Background()
	for {
		select {
		case <-d.done:
			return
		case item := <-d.mailbox:
			if item.ack != nil {
				close(item.ack)
				continue
			}
			d.handle(ctx, item.event)
		}
	}
}

// Sync blocks until every Event enqueued before this call has been
// processed by the consumer goroutine, including all of its dispatched
// Actions. Intended for tests and other callers that trigger an adapter
// notification and then need to observe its effects deterministically.
// The ack travels through the same mailbox as ordinary Events, so it is
// guaranteed to be drained after everything Posted before this call.
func (d *Driver) Sync() {
	ack := make(chan struct{})
	select {
	case d.mailbox <- mailboxItem{ack: ack}:
	case <-d.done:
		return
	}
	<-ack
}

func (d *Driver) handle(ctx context.Context, ev coreevent.Event) {
	if ev.Kind == coreevent.TimerFired && ev.TimerID == coreevent.IdleTimer {
		d.handleIdleTimer(ctx)
		return
	}

	statusBefore := d.state.Token.Status
	actions := reducer.On(d.state, ev)

	if ev.Kind == coreevent.RequestRefresh && len(actions) == 1 && actions[0].Kind == coreaction.Bell {
		d.tel.RecordRefreshRejected()
	}
	if statusBefore != corestate.Acquired && d.state.Token.Status == corestate.Acquired {
		d.tel.RecordTokenAcquired(d.state.Token.Owner.String())
		d.timer.Start(coreevent.IdleTimer, d.idleSeconds)
	}

	for _, a := range actions {
		d.dispatch(ctx, a)
	}
}

// handleIdleTimer runs when the driver's own idle backstop elapses. It
// never touches the reducer's timer-name vocabulary directly; instead it
// runs a synthesized TokenTimer firing straight through handle (without
// going back through the mailbox) so a token left Acquired past the idle
// floor resynchronizes through the reducer's existing timeout path,
// rather than staying held indefinitely by a side that stopped emitting
// traffic.
func (d *Driver) handleIdleTimer(ctx context.Context) {
	if d.state.Token.Status != corestate.Acquired {
		return
	}
	d.handle(ctx, coreevent.Event{Kind: coreevent.TimerFired, TimerID: coreevent.TokenTimer})
}

func (d *Driver) dispatch(ctx context.Context, a coreaction.Action) {
	switch a.Kind {
	case coreaction.EngineUpdateLines:
		d.engineCall(func() error { return d.engine.ReplaceLines(ctx, a.Lines) })
	case coreaction.EngineMoveCursor:
		d.engineCall(func() error { return d.engine.MoveCursor(ctx, a.MoveTo) })
	case coreaction.EngineStartVisual:
		d.engineCall(func() error { return d.engine.StartVisual(ctx, a.VisualStart, a.VisualEnd) })
	case coreaction.EngineStopVisual:
		d.engineCall(func() error { return d.engine.StopVisual(ctx) })
	case coreaction.EngineUndo:
		d.engineCall(func() error { return d.engine.Undo(ctx) })
	case coreaction.EngineRedo:
		d.engineCall(func() error { return d.engine.Redo(ctx) })
	case coreaction.EnginePaste:
		d.engineCall(func() error { return d.engine.Paste(ctx) })
	case coreaction.EngineInput:
		d.engineCall(func() error { return d.engine.Input(ctx, a.InputKeys) })

	case coreaction.HostUpdateLines:
		d.hostCall(func() error { return d.host.WriteFullValue(ctx, strings.Join(a.HostLines, "\n")) })
	case coreaction.HostUpdateSelections:
		d.dispatchHostSelections(ctx, a.Selections)
	case coreaction.HostScroll:
		d.dispatchHostScroll(ctx, a.ScrollTarget)

	case coreaction.StartTimer:
		d.timer.Start(a.TimerID, a.TimerSeconds)
	case coreaction.Bell:
		d.alerter.Bell()
	case coreaction.Alert:
		d.tel.RecordAlertRaised()
		d.alerter.Alert(a.Err)

	default:
		panic("driver: dispatch: unreachable action kind " + a.Kind.String())
	}
}

// engineCall runs fn and, on failure, logs the error and feeds it back
// to the reducer as a Failed event.
func (d *Driver) engineCall(fn func() error) {
	if err := fn(); err != nil {
		d.log.Error("engine transport call failed: %v", err)
		d.Post(coreevent.Event{Kind: coreevent.Failed, Err: err})
	}
}

// hostCall runs fn. A stale-widget error is swallowed here rather than
// reaching the reducer: the driver logs it and drops that one write
// instead of alerting the user. It keeps the same HostText for later
// writes; it does not release the widget or hold writes back until the
// next focus event.
func (d *Driver) hostCall(fn func() error) {
	err := fn()
	if err == nil {
		return
	}
	if errors.Is(err, adapter.ErrHostStale) {
		d.log.Warn("host widget handle stale, dropping write: %v", err)
		return
	}
	d.log.Error("host text call failed: %v", err)
	d.Post(coreevent.Event{Kind: coreevent.Failed, Err: err})
}

func (d *Driver) dispatchHostSelections(ctx context.Context, sels []selection.Selection) {
	joined, ok := selection.Join(sels)
	if !ok {
		return
	}
	start, end, err := d.hostRangeForSelection(ctx, joined)
	if err != nil {
		d.log.Error("converting selection to host range failed: %v", err)
		d.Post(coreevent.Event{Kind: coreevent.Failed, Err: err})
		return
	}
	d.hostCall(func() error { return d.host.SelectRange(ctx, start, end) })
}

func (d *Driver) dispatchHostScroll(ctx context.Context, target selection.Selection) {
	start, end, err := d.hostRangeForSelection(ctx, target)
	if err != nil {
		d.log.Error("converting scroll target to host range failed: %v", err)
		d.Post(coreevent.Event{Kind: coreevent.Failed, Err: err})
		return
	}
	d.hostCall(func() error { return d.host.ScrollRangeToVisible(ctx, start, end) })
}

func (d *Driver) offsetForHostPosition(ctx context.Context, p position.Host) (int, error) {
	lineStart, _, err := d.host.RangeForLine(ctx, int(p.Line))
	if err != nil {
		return 0, err
	}
	return lineStart + int(p.Column), nil
}

func (d *Driver) hostRangeForSelection(ctx context.Context, sel selection.Selection) (start, end int, err error) {
	start, err = d.offsetForHostPosition(ctx, sel.Start)
	if err != nil {
		return 0, 0, err
	}
	end, err = d.offsetForHostPosition(ctx, sel.End)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func (d *Driver) hostPositionForOffset(ctx context.Context, offset int) (position.Host, error) {
	line, err := d.host.LineForIndex(ctx, offset)
	if err != nil {
		return position.Host{}, err
	}
	lineStart, _, err := d.host.RangeForLine(ctx, line)
	if err != nil {
		return position.Host{}, err
	}
	return position.Host{Line: uint32(line), Column: uint32(offset - lineStart)}, nil
}

func (d *Driver) hostSelectionForRange(ctx context.Context, start, end int) (selection.Selection, error) {
	s, err := d.hostPositionForOffset(ctx, start)
	if err != nil {
		return selection.Selection{}, err
	}
	e, err := d.hostPositionForOffset(ctx, end)
	if err != nil {
		return selection.Selection{}, err
	}
	return selection.NewSelection(s, e), nil
}

// NotifyHostFocused posts a host-focused event carrying the widget's
// current content and selection, converted from character offsets.
func (d *Driver) NotifyHostFocused(ctx context.Context, lines []string, selStart, selEnd int) error {
	sel, err := d.hostSelectionForRange(ctx, selStart, selEnd)
	if err != nil {
		return err
	}
	d.Post(coreevent.Event{Kind: coreevent.HostFocused, HostLines: lines, HostSelection: sel})
	return nil
}

// RequestRefresh posts a manual resynchronization request sourced from
// source (engine or host).
func (d *Driver) RequestRefresh(source corestate.Owner) {
	d.Post(coreevent.Event{Kind: coreevent.RequestRefresh, RefreshSource: source})
}

// SubmitKey posts a host key-press event.
func (d *Driver) SubmitKey(combo coreevent.KeyCombo, char rune, hasChar bool) {
	d.Post(coreevent.Event{Kind: coreevent.HostKey, KeyCombo: combo, KeyChar: char, HasChar: hasChar})
}

// SubmitMouse posts a host mouse event. point is only meaningful when
// hasPoint is true.
func (d *Driver) SubmitMouse(kind coreevent.MouseKind, point selection.Selection, hasPoint bool) {
	d.Post(coreevent.Event{Kind: coreevent.HostMouse, MouseEventKind: kind, MousePoint: point, HasMousePoint: hasPoint})
}

// SetPassthrough posts a keys_passthrough toggle.
func (d *Driver) SetPassthrough(enabled bool) {
	d.Post(coreevent.Event{Kind: coreevent.TogglePassthrough, PassthroughEnabled: enabled})
}
