package driver

import "github.com/fluxwatch/bufcore/internal/selection"

// modeFromString is the inverse of selection.Mode.String(), translating
// the wire vocabulary an EngineTransport's cursor notifications use back
// into the closed Mode set. An unrecognized name falls back to Normal
// rather than panicking, since it arrives from outside this module's
// control (a future engine version could add a mode this build doesn't
// know about yet).
func modeFromString(s string) selection.Mode {
	switch s {
	case "normal":
		return selection.Normal
	case "operator_pending":
		return selection.OperatorPending
	case "insert":
		return selection.Insert
	case "replace":
		return selection.Replace
	case "visual":
		return selection.Visual
	case "visual_line":
		return selection.VisualLine
	case "visual_block":
		return selection.VisualBlock
	case "select":
		return selection.Select
	case "select_line":
		return selection.SelectLine
	case "select_block":
		return selection.SelectBlock
	case "cmdline":
		return selection.Cmdline
	case "hit_enter_prompt":
		return selection.HitEnterPrompt
	case "shell":
		return selection.Shell
	case "terminal":
		return selection.Terminal
	default:
		return selection.Normal
	}
}
