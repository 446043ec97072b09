// Package reducer implements the pure buffer-synchronization state
// machine: On(state, event) mutates state in place and returns the
// ordered list of actions the driver must dispatch to its adapters. The
// reducer never performs I/O, never spawns work, and never reads
// wall-clock time; every Event it can receive has a defined handling, so
// it never panics on a value a well-formed caller can construct — the
// panics in this package only guard against an unrecognized Kind, which
// would mean the Event/Action alphabet grew without updating the switch
// that dispatches over it.
package reducer

import (
	"github.com/fluxwatch/bufcore/internal/coreaction"
	"github.com/fluxwatch/bufcore/internal/coreevent"
	"github.com/fluxwatch/bufcore/internal/corestate"
)

// On is the reducer entry point: `(State, Event) -> []Action`.
func On(state *corestate.State, event coreevent.Event) []coreaction.Action {
	switch event.Kind {
	case coreevent.TimerFired:
		return handleTimerFired(state, event.TimerID)
	case coreevent.RequestRefresh:
		return handleRequestRefresh(state, event.RefreshSource)
	case coreevent.EngineLinesChanged:
		return handleEngineLinesChanged(state, event.LinesDelta)
	case coreevent.EngineModeChanged:
		return handleEngineModeChanged(state, event.Mode)
	case coreevent.EngineCursorChanged:
		return handleEngineCursorChanged(state, event.Cursor)
	case coreevent.EngineFlushed:
		return handleEngineFlushed(state)
	case coreevent.HostFocused:
		return handleHostFocused(state, event.HostLines, event.HostSelection)
	case coreevent.HostLinesChanged:
		return handleHostLinesChanged(state, event.HostLines)
	case coreevent.HostSelectionChanged:
		return handleHostSelectionChanged(state, event.HostSelection)
	case coreevent.HostKey:
		return handleHostKey(state, event.KeyCombo, event.KeyChar, event.HasChar)
	case coreevent.HostMouse:
		return handleHostMouse(state, event.MouseEventKind, event.MousePoint, event.HasMousePoint)
	case coreevent.TogglePassthrough:
		return handleTogglePassthrough(state, event.PassthroughEnabled)
	case coreevent.Failed:
		return handleFailed(event.Err)
	default:
		panic("reducer: On: unreachable event kind " + event.Kind.String())
	}
}

func handleFailed(err error) []coreaction.Action {
	return []coreaction.Action{coreaction.AlertAction(err)}
}
