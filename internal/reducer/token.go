package reducer

import (
	"github.com/fluxwatch/bufcore/internal/coreaction"
	"github.com/fluxwatch/bufcore/internal/coreevent"
	"github.com/fluxwatch/bufcore/internal/corestate"
	"github.com/fluxwatch/bufcore/internal/selection"
)

func handleTimerFired(state *corestate.State, id coreevent.TimerID) []coreaction.Action {
	if id != coreevent.TokenTimer {
		// The idle timer is armed and re-fed back in as a TokenTimer
		// firing by the driver, never by name here; the reducer must
		// still be total over the Event alphabet.
		return nil
	}

	switch state.Token.Status {
	case corestate.Synchronizing:
		state.Token.Release()
		return nil

	case corestate.Acquired:
		owner := state.Token.Owner
		if state.ShadowsAgree() {
			state.Token.Release()
			return nil
		}
		actions := syncWholeBufferFrom(state, owner)
		state.Token.Status = corestate.Synchronizing
		return actions

	default: // Free
		return nil
	}
}

func handleRequestRefresh(state *corestate.State, source corestate.Owner) []coreaction.Action {
	if !state.Token.IsFree() {
		return []coreaction.Action{coreaction.BellAction()}
	}
	if state.ShadowsAgree() {
		state.Token.Release()
		return nil
	}
	state.Token.Acquire(source)
	actions := []coreaction.Action{coreaction.StartTimerAction(coreevent.TokenTimer, state.TokenTimerSeconds)}
	actions = append(actions, syncWholeBufferFrom(state, source)...)
	return actions
}

// syncWholeBufferFrom pushes owner's shadow to the other side wholesale,
// recording the resulting state into both shadows so the two stay
// consistent from the driver's point of view.
func syncWholeBufferFrom(state *corestate.State, owner corestate.Owner) []coreaction.Action {
	switch owner {
	case corestate.OwnerEngine:
		lines := state.Engine.Lines
		sels := selection.SelectionsFrom(state.Engine.Cursor)
		joined, ok := selection.Join(sels)
		actions := []coreaction.Action{coreaction.HostUpdateLinesAction(lines)}
		state.Host.Lines = lines
		if ok {
			actions = append(actions, coreaction.HostUpdateSelectionsAction(sels))
			state.Host.Selection = joined
			state.Host.ArmPendingSelection(joined)
		}
		return actions

	case corestate.OwnerHost:
		lines := state.Host.Lines
		state.Engine.Lines = lines
		cursorPos := state.Host.Selection.Start.ToEngine()
		state.Engine.Cursor.Position = cursorPos
		state.Engine.Cursor.Visual = cursorPos
		return []coreaction.Action{
			coreaction.EngineUpdateLinesAction(lines),
			coreaction.EngineMoveCursorAction(cursorPos),
		}

	default:
		return nil
	}
}
