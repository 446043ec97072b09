package reducer

import (
	"github.com/fluxwatch/bufcore/internal/coreaction"
	"github.com/fluxwatch/bufcore/internal/coreevent"
	"github.com/fluxwatch/bufcore/internal/corestate"
	"github.com/fluxwatch/bufcore/internal/selection"
)

// pendingCursorBase returns the cursor a staged EngineModeChanged/
// EngineCursorChanged event should be merged into: the already-pending
// cursor if one is staged, otherwise the currently adopted cursor.
func pendingCursorBase(e *corestate.EngineState) selection.Cursor {
	if e.HasPendingCursor {
		return e.PendingCursor
	}
	return e.Cursor
}

func handleEngineLinesChanged(state *corestate.State, delta coreevent.LineDelta) []coreaction.Action {
	base := state.Engine.Lines
	if state.Engine.HasPendingLines {
		base = state.Engine.PendingLines
	}
	state.Engine.PendingLines = delta.Apply(base)
	state.Engine.HasPendingLines = true
	return nil
}

func handleEngineModeChanged(state *corestate.State, mode selection.Mode) []coreaction.Action {
	cursor := pendingCursorBase(&state.Engine)
	cursor.Mode = mode
	state.Engine.PendingCursor = cursor
	state.Engine.HasPendingCursor = true
	return nil
}

func handleEngineCursorChanged(state *corestate.State, cursor selection.Cursor) []coreaction.Action {
	merged := pendingCursorBase(&state.Engine)
	merged.Position = cursor.Position
	merged.Visual = cursor.Visual
	state.Engine.PendingCursor = merged
	state.Engine.HasPendingCursor = true
	return nil
}

func handleEngineFlushed(state *corestate.State) []coreaction.Action {
	linesChanged, cursorChanged := state.Engine.AdoptPending()

	if !state.Token.CanAcquire(corestate.OwnerEngine) {
		return nil
	}
	state.Token.Acquire(corestate.OwnerEngine)
	actions := []coreaction.Action{coreaction.StartTimerAction(coreevent.TokenTimer, state.TokenTimerSeconds)}

	if linesChanged {
		actions = append(actions, coreaction.HostUpdateLinesAction(state.Engine.Lines))
		state.Host.Lines = state.Engine.Lines
	}

	if cursorChanged {
		cursor := state.Engine.Cursor
		sels := selection.SelectionsFrom(cursor)
		actions = append(actions, coreaction.HostUpdateSelectionsAction(sels))
		if joined, ok := selection.Join(sels); ok {
			state.Host.Selection = joined
			state.Host.ArmPendingSelection(joined)
		}
		if cursor.Position.Line != cursor.Visual.Line {
			collapsed := selection.Collapsed(cursor.Position.ToHost())
			actions = append(actions, coreaction.HostScrollAction(collapsed))
		}
	}

	return actions
}
