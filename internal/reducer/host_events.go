package reducer

import (
	"github.com/fluxwatch/bufcore/internal/coreaction"
	"github.com/fluxwatch/bufcore/internal/coreevent"
	"github.com/fluxwatch/bufcore/internal/corestate"
	"github.com/fluxwatch/bufcore/internal/selection"
)

func handleHostFocused(state *corestate.State, lines []string, hostSelection selection.Selection) []coreaction.Action {
	adjusted := selection.Adjust(hostSelection, state.Engine.Cursor.Mode, lines)
	state.Host.Selection = adjusted

	if corestate.LinesEqual(state.Host.Lines, lines) {
		state.Host.Lines = lines
		return nil
	}
	state.Host.Lines = lines
	state.Token.Acquire(corestate.OwnerHost)
	return []coreaction.Action{
		coreaction.StartTimerAction(coreevent.TokenTimer, state.TokenTimerSeconds),
		coreaction.EngineUpdateLinesAction(lines),
	}
}

func handleHostLinesChanged(state *corestate.State, lines []string) []coreaction.Action {
	if corestate.LinesEqual(state.Host.Lines, lines) {
		return nil
	}
	state.Host.Lines = lines

	if !state.Token.CanAcquire(corestate.OwnerHost) {
		return nil
	}
	state.Token.Acquire(corestate.OwnerHost)
	return []coreaction.Action{
		coreaction.StartTimerAction(coreevent.TokenTimer, state.TokenTimerSeconds),
		coreaction.EngineUpdateLinesAction(lines),
	}
}

func handleHostSelectionChanged(state *corestate.State, sel selection.Selection) []coreaction.Action {
	if state.Host.ConsumePendingSelection(sel) {
		return nil
	}
	if sel == state.Host.Selection {
		return nil
	}
	state.Host.Selection = sel

	if state.Flags.LeftMouseDown {
		state.Flags.IsSelecting = true
		return nil
	}

	if !state.Token.CanAcquire(corestate.OwnerHost) {
		return nil
	}
	state.Token.Acquire(corestate.OwnerHost)
	actions := []coreaction.Action{coreaction.StartTimerAction(coreevent.TokenTimer, state.TokenTimerSeconds)}

	adjusted := selection.Adjust(sel, state.Engine.Cursor.Mode, state.Host.Lines)
	if adjusted != sel {
		state.Host.Selection = adjusted
		state.Host.ArmPendingSelection(adjusted)
		actions = append(actions, coreaction.HostUpdateSelectionsAction([]selection.Selection{adjusted}))
	}

	if wantCursor := adjusted.Start.ToEngine(); state.Engine.Cursor.Position != wantCursor {
		actions = append(actions, coreaction.EngineMoveCursorAction(wantCursor))
	}

	return actions
}
