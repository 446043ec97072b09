package reducer

import (
	"github.com/fluxwatch/bufcore/internal/coreaction"
	"github.com/fluxwatch/bufcore/internal/coreevent"
	"github.com/fluxwatch/bufcore/internal/corestate"
	"github.com/fluxwatch/bufcore/internal/selection"
)

func handleHostMouse(state *corestate.State, kind coreevent.MouseKind, point selection.Selection, hasPoint bool) []coreaction.Action {
	switch kind {
	case coreevent.MouseDownLeft:
		if !hasPoint {
			return nil
		}
		state.Flags.LeftMouseDown = true
		if !state.Token.CanAcquire(corestate.OwnerHost) {
			return nil
		}
		state.Token.Acquire(corestate.OwnerHost)
		return []coreaction.Action{
			coreaction.StartTimerAction(coreevent.TokenTimer, state.TokenTimerSeconds),
			coreaction.EngineStopVisualAction(),
		}

	case coreevent.MouseUpLeft:
		state.Flags.LeftMouseDown = false
		if !state.Flags.IsSelecting {
			return nil
		}
		state.Flags.IsSelecting = false
		if !state.Token.CanAcquire(corestate.OwnerHost) {
			return nil
		}
		state.Token.Acquire(corestate.OwnerHost)
		timer := coreaction.StartTimerAction(coreevent.TokenTimer, state.TokenTimerSeconds)

		sel := state.Host.Selection
		if sel.IsCollapsed() {
			adjusted := selection.Adjust(sel, state.Engine.Cursor.Mode, state.Host.Lines)
			return []coreaction.Action{timer, coreaction.EngineMoveCursorAction(adjusted.Start.ToEngine())}
		}
		end := sel.End.PlusCol(-1)
		return []coreaction.Action{timer, coreaction.EngineStartVisualAction(sel.Start.ToEngine(), end.ToEngine())}

	default:
		return nil
	}
}
