// Package coreaction defines the closed set of outputs the reducer
// returns, as a Kind-tagged flat struct mirroring the coreevent
// package's pattern.
package coreaction

import (
	"github.com/fluxwatch/bufcore/internal/coreevent"
	"github.com/fluxwatch/bufcore/internal/position"
	"github.com/fluxwatch/bufcore/internal/selection"
)

// Kind discriminates the Action variants.
type Kind int

const (
	EngineUpdateLines Kind = iota
	EngineMoveCursor
	EngineStartVisual
	EngineStopVisual
	EngineUndo
	EngineRedo
	EnginePaste
	EngineInput
	HostUpdateLines
	HostUpdateSelections
	HostScroll
	StartTimer
	Bell
	Alert
)

func (k Kind) String() string {
	switch k {
	case EngineUpdateLines:
		return "engine_update_lines"
	case EngineMoveCursor:
		return "engine_move_cursor"
	case EngineStartVisual:
		return "engine_start_visual"
	case EngineStopVisual:
		return "engine_stop_visual"
	case EngineUndo:
		return "engine_undo"
	case EngineRedo:
		return "engine_redo"
	case EnginePaste:
		return "engine_paste"
	case EngineInput:
		return "engine_input"
	case HostUpdateLines:
		return "host_update_lines"
	case HostUpdateSelections:
		return "host_update_selections"
	case HostScroll:
		return "host_scroll"
	case StartTimer:
		return "start_timer"
	case Bell:
		return "bell"
	case Alert:
		return "alert"
	default:
		return "unknown"
	}
}

// Action is the flat, Kind-tagged union of every output the reducer
// produces. Only the fields relevant to Kind are meaningful.
type Action struct {
	Kind Kind

	// EngineUpdateLines
	Lines []string

	// EngineMoveCursor
	MoveTo position.Engine

	// EngineStartVisual
	VisualStart position.Engine
	VisualEnd   position.Engine

	// EngineInput
	InputKeys string

	// HostUpdateLines
	HostLines []string

	// HostUpdateSelections
	Selections []selection.Selection

	// HostScroll
	ScrollTarget selection.Selection

	// StartTimer
	TimerID      coreevent.TimerID
	TimerSeconds float64

	// Alert
	Err error
}

// EngineUpdateLinesAction builds an EngineUpdateLines action.
func EngineUpdateLinesAction(lines []string) Action {
	return Action{Kind: EngineUpdateLines, Lines: lines}
}

// EngineMoveCursorAction builds an EngineMoveCursor action.
func EngineMoveCursorAction(pos position.Engine) Action {
	return Action{Kind: EngineMoveCursor, MoveTo: pos}
}

// EngineStartVisualAction builds an EngineStartVisual action.
func EngineStartVisualAction(start, end position.Engine) Action {
	return Action{Kind: EngineStartVisual, VisualStart: start, VisualEnd: end}
}

// EngineStopVisualAction builds an EngineStopVisual action.
func EngineStopVisualAction() Action {
	return Action{Kind: EngineStopVisual}
}

// EngineUndoAction builds an EngineUndo action.
func EngineUndoAction() Action { return Action{Kind: EngineUndo} }

// EngineRedoAction builds an EngineRedo action.
func EngineRedoAction() Action { return Action{Kind: EngineRedo} }

// EnginePasteAction builds an EnginePaste action.
func EnginePasteAction() Action { return Action{Kind: EnginePaste} }

// EngineInputAction builds an EngineInput action carrying a key notation
// string.
func EngineInputAction(keys string) Action {
	return Action{Kind: EngineInput, InputKeys: keys}
}

// HostUpdateLinesAction builds a HostUpdateLines action.
func HostUpdateLinesAction(lines []string) Action {
	return Action{Kind: HostUpdateLines, HostLines: lines}
}

// HostUpdateSelectionsAction builds a HostUpdateSelections action.
func HostUpdateSelectionsAction(sels []selection.Selection) Action {
	return Action{Kind: HostUpdateSelections, Selections: sels}
}

// HostScrollAction builds a HostScroll action.
func HostScrollAction(target selection.Selection) Action {
	return Action{Kind: HostScroll, ScrollTarget: target}
}

// StartTimerAction builds a StartTimer action.
func StartTimerAction(id coreevent.TimerID, seconds float64) Action {
	return Action{Kind: StartTimer, TimerID: id, TimerSeconds: seconds}
}

// BellAction builds a Bell action.
func BellAction() Action { return Action{Kind: Bell} }

// AlertAction builds an Alert action carrying the triggering error.
func AlertAction(err error) Action { return Action{Kind: Alert, Err: err} }
