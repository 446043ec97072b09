package selection

import "github.com/fluxwatch/bufcore/internal/position"

// SelectionsFrom converts an engine cursor into the list of host
// selections the engine's current mode implies. Modes that carry no
// visible host selection (HitEnterPrompt, Shell, Terminal) yield an empty
// list. All returned positions are host coordinates.
func SelectionsFrom(c Cursor) []Selection {
	switch {
	case c.Mode.IsPromptLike():
		return nil

	case c.Mode == Normal || c.Mode == OperatorPending || c.Mode == Cmdline:
		start := c.Position.ToHost()
		return []Selection{{Start: start, End: start.PlusCol(1)}}

	case c.Mode.IsInsertLike():
		start := c.Position.ToHost()
		return []Selection{Collapsed(start)}

	case c.Mode.IsLineVisual():
		min, max := c.orderedBounds()
		minH, maxH := min.ToHost(), max.ToHost()
		return []Selection{{
			Start: position.Host{Line: minH.Line, Column: 0},
			End:   position.Host{Line: maxH.Line + 1, Column: 0},
		}}

	case c.Mode.IsVisualFamily():
		min, max := c.orderedBounds()
		minH, maxH := min.ToHost(), max.ToHost()
		return []Selection{{Start: minH, End: maxH.PlusCol(1)}}

	default:
		panic("selection: SelectionsFrom: unreachable mode " + c.Mode.String())
	}
}

// Adjust normalizes a host-reported selection to match what the engine's
// current mode expects. Host widgets report character selections that
// don't know about the engine's block-cursor-in-Normal-mode convention;
// Adjust fixes that up before the core compares/forwards it.
//
// lines is the host's current line sequence, used to clamp the column
// against line length and to detect an out-of-range or empty line.
func Adjust(s Selection, mode Mode, lines []string) Selection {
	if !s.IsSingleLine() {
		return s
	}
	colLen := s.ColumnLen()
	if colLen != 0 && colLen != 1 {
		return s
	}
	line := int(s.Start.Line)
	if line < 0 || line >= len(lines) {
		return s
	}

	if mode.IsInsertLike() {
		return Collapsed(s.Start)
	}

	if mode.IsVisualFamily() || mode.IsLineVisual() {
		if colLen == 1 {
			return s
		}
		// Collapsed in visual mode: fall through to normal-family clamping.
	}

	lineText := lines[line]
	if len(lineText) == 0 {
		start := s.Start.WithColumn(0)
		return Selection{Start: start, End: start.PlusCol(1)}
	}
	maxCol := uint32(len(lineText) - 1)
	start := s.Start
	if start.Column > maxCol {
		start = start.WithColumn(maxCol)
	}
	return Selection{Start: start, End: start.PlusCol(1)}
}

// Join returns the bounding box (min start, max end) across sels, and
// false if sels is empty.
func Join(sels []Selection) (Selection, bool) {
	if len(sels) == 0 {
		return Selection{}, false
	}
	result := sels[0]
	for _, s := range sels[1:] {
		result.Start = result.Start.Min(s.Start)
		result.End = result.End.Max(s.End)
	}
	return result, true
}
