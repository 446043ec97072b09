package corestate

import (
	"testing"

	"github.com/fluxwatch/bufcore/internal/position"
	"github.com/fluxwatch/bufcore/internal/selection"
)

func TestNewInitialState(t *testing.T) {
	s := New([]string{"abc", "def"})
	if s.Token.Status != Free {
		t.Errorf("expected initial token Free, got %v", s.Token.Status)
	}
	if s.Engine.Cursor.Mode != selection.Normal {
		t.Errorf("expected initial mode normal, got %v", s.Engine.Cursor.Mode)
	}
	if s.Host.Selection.Start.Line != 0 || s.Host.Selection.Start.Column != 0 {
		t.Errorf("expected initial selection to start at (0,0), got %v", s.Host.Selection)
	}
}

func TestTokenCanAcquire(t *testing.T) {
	var tok Token
	if !tok.CanAcquire(OwnerEngine) {
		t.Errorf("free token should be acquirable by anyone")
	}
	tok.Acquire(OwnerEngine)
	if !tok.CanAcquire(OwnerEngine) {
		t.Errorf("token held by engine should be re-acquirable by engine")
	}
	if tok.CanAcquire(OwnerHost) {
		t.Errorf("token held by engine should not be acquirable by host")
	}
	tok.Release()
	if tok.Status != Free || tok.Owner != OwnerNone {
		t.Errorf("expected released token to be Free/None, got %v/%v", tok.Status, tok.Owner)
	}
}

func TestEngineStateAdoptPending(t *testing.T) {
	e := EngineState{Lines: []string{"a"}}
	e.PendingLines = []string{"a", "b"}
	e.HasPendingLines = true

	linesChanged, cursorChanged := e.AdoptPending()
	if !linesChanged || cursorChanged {
		t.Errorf("expected linesChanged=true cursorChanged=false, got %v/%v", linesChanged, cursorChanged)
	}
	if len(e.Lines) != 2 || e.HasPendingLines {
		t.Errorf("expected pending lines adopted and cleared, got %v pending=%v", e.Lines, e.HasPendingLines)
	}
}

func TestEngineStateAdoptPendingNoOpWhenNothingPending(t *testing.T) {
	e := EngineState{Lines: []string{"a"}}
	linesChanged, cursorChanged := e.AdoptPending()
	if linesChanged || cursorChanged {
		t.Errorf("expected no-op, got %v/%v", linesChanged, cursorChanged)
	}
	if len(e.Lines) != 1 || e.Lines[0] != "a" {
		t.Errorf("expected lines retained, got %v", e.Lines)
	}
}

func TestHostStatePendingSelectionSuppressesOneEcho(t *testing.T) {
	h := HostState{}
	s := selection.Collapsed(position.Host{Line: 1, Column: 2})
	h.ArmPendingSelection(s)

	if !h.ConsumePendingSelection(s) {
		t.Fatal("expected first echo to be suppressed")
	}
	if h.ConsumePendingSelection(s) {
		t.Fatal("expected pending selection to be consumed only once")
	}
}

func TestLinesEqualTrailingEmptyLine(t *testing.T) {
	a := []string{"abc", "def"}
	b := []string{"abc", "def", ""}
	if !LinesEqual(a, b) {
		t.Errorf("expected a trailing blank line to be treated as equal")
	}
	if !LinesEqual(b, a) {
		t.Errorf("expected LinesEqual to be symmetric")
	}
}

func TestLinesEqualDiffers(t *testing.T) {
	if LinesEqual([]string{"abc"}, []string{"abd"}) {
		t.Errorf("expected mismatched content to compare unequal")
	}
}

func TestShadowsAgree(t *testing.T) {
	s := New([]string{"abc", "def"})
	if !s.ShadowsAgree() {
		t.Errorf("expected freshly constructed state to have agreeing shadows")
	}
	s.Host.Lines = []string{"xyz", "def"}
	if s.ShadowsAgree() {
		t.Errorf("expected divergent host lines to disagree")
	}
}
