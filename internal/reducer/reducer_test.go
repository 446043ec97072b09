package reducer

import (
	"reflect"
	"testing"

	"github.com/fluxwatch/bufcore/internal/coreaction"
	"github.com/fluxwatch/bufcore/internal/coreevent"
	"github.com/fluxwatch/bufcore/internal/corestate"
	"github.com/fluxwatch/bufcore/internal/position"
	"github.com/fluxwatch/bufcore/internal/selection"
)

func freshState() *corestate.State {
	return corestate.New([]string{"abc", "def"})
}

func assertActions(t *testing.T, got, want []coreaction.Action) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

// Scenario 1: engine moves cursor.
func TestScenarioEngineMovesCursor(t *testing.T) {
	s := freshState()

	got1 := On(s, coreevent.Event{
		Kind: coreevent.EngineCursorChanged,
		Cursor: selection.Cursor{
			Mode:     selection.Normal,
			Position: position.Engine{Line: 2, Column: 2},
			Visual:   position.Engine{Line: 2, Column: 2},
		},
	})
	if got1 != nil {
		t.Errorf("expected no actions from the staged cursor event, got %+v", got1)
	}

	got2 := On(s, coreevent.Event{Kind: coreevent.EngineFlushed})
	want := []coreaction.Action{
		coreaction.StartTimerAction(coreevent.TokenTimer, s.TokenTimerSeconds),
		coreaction.HostUpdateSelectionsAction([]selection.Selection{
			{Start: position.Host{Line: 1, Column: 1}, End: position.Host{Line: 1, Column: 2}},
		}),
	}
	assertActions(t, got2, want)

	if !s.Token.IsAcquiredBy(corestate.OwnerEngine) {
		t.Errorf("expected token Acquired(Engine), got %v/%v", s.Token.Status, s.Token.Owner)
	}
}

// Scenario 2: host types a character.
func TestScenarioHostTypesCharacter(t *testing.T) {
	s := freshState()

	got := On(s, coreevent.Event{Kind: coreevent.HostLinesChanged, HostLines: []string{"aXbc", "def"}})
	want := []coreaction.Action{
		coreaction.StartTimerAction(coreevent.TokenTimer, s.TokenTimerSeconds),
		coreaction.EngineUpdateLinesAction([]string{"aXbc", "def"}),
	}
	assertActions(t, got, want)

	if !s.Token.IsAcquiredBy(corestate.OwnerHost) {
		t.Errorf("expected token Acquired(Host), got %v/%v", s.Token.Status, s.Token.Owner)
	}
}

// Scenario 3: token timeout while shadows are already equal.
func TestScenarioTokenTimeoutShadowsEqual(t *testing.T) {
	s := freshState()
	On(s, coreevent.Event{
		Kind: coreevent.EngineCursorChanged,
		Cursor: selection.Cursor{
			Position: position.Engine{Line: 2, Column: 2},
			Visual:   position.Engine{Line: 2, Column: 2},
		},
	})
	On(s, coreevent.Event{Kind: coreevent.EngineFlushed})

	got := On(s, coreevent.Event{Kind: coreevent.TimerFired, TimerID: coreevent.TokenTimer})
	if got != nil {
		t.Errorf("expected no actions, got %+v", got)
	}
	if s.Token.Status != corestate.Free {
		t.Errorf("expected token Free, got %v", s.Token.Status)
	}
}

// Scenario 4: refresh rejected while the token is busy.
func TestScenarioRefreshRejectedWhileBusy(t *testing.T) {
	s := freshState()
	On(s, coreevent.Event{Kind: coreevent.HostLinesChanged, HostLines: []string{"aXbc", "def"}})

	got := On(s, coreevent.Event{Kind: coreevent.RequestRefresh, RefreshSource: corestate.OwnerHost})
	want := []coreaction.Action{coreaction.BellAction()}
	assertActions(t, got, want)

	if !s.Token.IsAcquiredBy(corestate.OwnerHost) {
		t.Errorf("expected token to remain Acquired(Host), got %v/%v", s.Token.Status, s.Token.Owner)
	}
}

// Scenario 5: mouse drag selection creates Visual.
func TestScenarioMouseDragCreatesVisual(t *testing.T) {
	s := freshState()
	point := selection.Collapsed(position.Host{Line: 0, Column: 0})

	gotDown := On(s, coreevent.Event{
		Kind: coreevent.HostMouse, MouseEventKind: coreevent.MouseDownLeft,
		MousePoint: point, HasMousePoint: true,
	})
	wantDown := []coreaction.Action{
		coreaction.StartTimerAction(coreevent.TokenTimer, s.TokenTimerSeconds),
		coreaction.EngineStopVisualAction(),
	}
	assertActions(t, gotDown, wantDown)

	dragSel := selection.Selection{Start: position.Host{Line: 0, Column: 0}, End: position.Host{Line: 1, Column: 2}}
	gotDrag := On(s, coreevent.Event{Kind: coreevent.HostSelectionChanged, HostSelection: dragSel})
	if gotDrag != nil {
		t.Errorf("expected no actions mid-drag, got %+v", gotDrag)
	}
	if !s.Flags.IsSelecting {
		t.Errorf("expected is_selecting to be set mid-drag")
	}

	gotUp := On(s, coreevent.Event{
		Kind: coreevent.HostMouse, MouseEventKind: coreevent.MouseUpLeft,
		MousePoint: point, HasMousePoint: true,
	})
	wantUp := []coreaction.Action{
		coreaction.StartTimerAction(coreevent.TokenTimer, s.TokenTimerSeconds),
		coreaction.EngineStartVisualAction(position.Engine{Line: 1, Column: 1}, position.Engine{Line: 2, Column: 2}),
	}
	assertActions(t, gotUp, wantUp)
}

// Scenario 6: passthrough toggle.
func TestScenarioPassthroughToggle(t *testing.T) {
	s := freshState()
	s.Host.Selection = selection.Selection{Start: position.Host{Line: 0, Column: 5}, End: position.Host{Line: 0, Column: 6}}

	got := On(s, coreevent.Event{Kind: coreevent.TogglePassthrough, PassthroughEnabled: true})
	want := []coreaction.Action{
		coreaction.EngineStopVisualAction(),
		coreaction.HostUpdateSelectionsAction([]selection.Selection{
			{Start: position.Host{Line: 0, Column: 5}, End: position.Host{Line: 0, Column: 5}},
		}),
	}
	assertActions(t, got, want)
	if !s.Flags.KeysPassthrough {
		t.Errorf("expected keys_passthrough to be set")
	}
}
