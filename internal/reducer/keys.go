package reducer

import (
	"unicode"

	"github.com/fluxwatch/bufcore/internal/coreaction"
	"github.com/fluxwatch/bufcore/internal/coreevent"
	"github.com/fluxwatch/bufcore/internal/corestate"
	"github.com/fluxwatch/bufcore/internal/keynotation"
)

func handleHostKey(state *corestate.State, combo coreevent.KeyCombo, char rune, hasChar bool) []coreaction.Action {
	if state.Flags.KeysPassthrough {
		return nil
	}

	if combo.Key == "Escape" {
		return []coreaction.Action{coreaction.EngineInputAction("<Esc>")}
	}

	if combo.Command {
		switch {
		case combo.Key == "z" && !combo.Shift:
			return []coreaction.Action{coreaction.EngineUndoAction()}
		case combo.Key == "z" && combo.Shift:
			return []coreaction.Action{coreaction.EngineRedoAction()}
		case combo.Key == "v":
			return []coreaction.Action{coreaction.EnginePasteAction()}
		default:
			return nil
		}
	}

	if combo.Control {
		if notation, ok := keynotation.Translate(combo); ok {
			return []coreaction.Action{coreaction.EngineInputAction(notation)}
		}
		return nil
	}

	if hasChar && unicode.IsPrint(char) {
		return []coreaction.Action{coreaction.EngineInputAction(string(char))}
	}

	if notation, ok := keynotation.Translate(combo); ok {
		return []coreaction.Action{coreaction.EngineInputAction(notation)}
	}
	return nil
}
