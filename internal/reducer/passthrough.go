package reducer

import (
	"github.com/fluxwatch/bufcore/internal/coreaction"
	"github.com/fluxwatch/bufcore/internal/corestate"
	"github.com/fluxwatch/bufcore/internal/selection"
)

func handleTogglePassthrough(state *corestate.State, enabled bool) []coreaction.Action {
	state.Flags.KeysPassthrough = enabled

	if enabled {
		actions := []coreaction.Action{coreaction.EngineStopVisualAction()}
		collapsed := selection.Collapsed(state.Host.Selection.Start)
		if collapsed != state.Host.Selection {
			state.Host.Selection = collapsed
			state.Host.ArmPendingSelection(collapsed)
			actions = append(actions, coreaction.HostUpdateSelectionsAction([]selection.Selection{collapsed}))
		}
		return actions
	}

	adjusted := selection.Adjust(state.Host.Selection, state.Engine.Cursor.Mode, state.Host.Lines)
	if adjusted == state.Host.Selection {
		return nil
	}
	state.Host.Selection = adjusted
	state.Host.ArmPendingSelection(adjusted)
	return []coreaction.Action{coreaction.HostUpdateSelectionsAction([]selection.Selection{adjusted})}
}
