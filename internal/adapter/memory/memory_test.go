package memory

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/fluxwatch/bufcore/internal/coreevent"
)

var errTest = errors.New("boom")

func TestEngineSetLinesAndUndo(t *testing.T) {
	e := NewEngine([]string{"abc", "def"})
	ctx := context.Background()

	if err := e.SetLines(ctx, coreevent.LineDelta{FirstLine: 0, LastLine: 1, LineData: []string{"xyz"}}); err != nil {
		t.Fatalf("SetLines: %v", err)
	}
	if got := e.Lines(); !reflect.DeepEqual(got, []string{"xyz", "def"}) {
		t.Errorf("got %v", got)
	}

	if err := e.Undo(ctx); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := e.Lines(); !reflect.DeepEqual(got, []string{"abc", "def"}) {
		t.Errorf("expected undo to restore original lines, got %v", got)
	}

	if err := e.Redo(ctx); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if got := e.Lines(); !reflect.DeepEqual(got, []string{"xyz", "def"}) {
		t.Errorf("expected redo to reapply the change, got %v", got)
	}
}

func TestEngineNotifyLinesFansOutToSubscribers(t *testing.T) {
	e := NewEngine([]string{"abc"})
	var got coreevent.LineDelta
	calls := 0
	e.SubscribeLines(func(d coreevent.LineDelta) {
		got = d
		calls++
	})

	delta := coreevent.LineDelta{FirstLine: 0, LastLine: 1, LineData: []string{"aXbc"}}
	e.NotifyLines(delta)

	if calls != 1 {
		t.Fatalf("expected exactly one callback invocation, got %d", calls)
	}
	if !reflect.DeepEqual(got, delta) {
		t.Errorf("got %v, want %v", got, delta)
	}
	if lines := e.Lines(); !reflect.DeepEqual(lines, []string{"aXbc"}) {
		t.Errorf("expected the fake engine's own lines to reflect the notified delta, got %v", lines)
	}
}

func TestHostWriteRangeAndSelection(t *testing.T) {
	h := NewHost([]string{"abc", "def"})
	ctx := context.Background()

	if err := h.WriteRange(ctx, 0, 3, "xyz"); err != nil {
		t.Fatalf("WriteRange: %v", err)
	}
	full, err := h.FullText(ctx)
	if err != nil {
		t.Fatalf("FullText: %v", err)
	}
	if full != "xyz\ndef" {
		t.Errorf("got %q", full)
	}

	var gotStart, gotEnd int
	h.SubscribeSelectionChanged(func(s, e int) { gotStart, gotEnd = s, e })
	h.SetSelection(1, 2)
	if gotStart != 1 || gotEnd != 2 {
		t.Errorf("got (%d,%d), want (1,2)", gotStart, gotEnd)
	}
}

func TestHostRangeForLine(t *testing.T) {
	h := NewHost([]string{"abc", "de"})
	start, end, err := h.RangeForLine(context.Background(), 1)
	if err != nil {
		t.Fatalf("RangeForLine: %v", err)
	}
	if start != 4 || end != 6 {
		t.Errorf("got (%d,%d), want (4,6)", start, end)
	}
}

func TestClockFireInvokesCallback(t *testing.T) {
	c := NewClock()
	var fired coreevent.TimerID
	var calls int
	c.OnFire(func(id coreevent.TimerID) {
		fired = id
		calls++
	})

	c.Start(coreevent.TokenTimer, 0.2)
	if !c.Pending(coreevent.TokenTimer) {
		t.Fatal("expected token timer to be pending")
	}
	c.Fire(coreevent.TokenTimer)

	if calls != 1 || fired != coreevent.TokenTimer {
		t.Errorf("got calls=%d fired=%v", calls, fired)
	}
	if c.Pending(coreevent.TokenTimer) {
		t.Errorf("expected pending flag to clear after firing")
	}
}

func TestRecorderTracksBellsAndAlerts(t *testing.T) {
	r := NewRecorder()
	r.Bell()
	r.Bell()
	r.Alert(errTest)

	if r.Bells() != 2 {
		t.Errorf("got %d bells, want 2", r.Bells())
	}
	if alerts := r.Alerts(); len(alerts) != 1 || alerts[0] != errTest {
		t.Errorf("got %v", alerts)
	}
}
