package selection

import "github.com/fluxwatch/bufcore/internal/position"

// Selection is an ordered pair of host positions, Start <= End. A
// collapsed selection (Start == End) represents a caret.
type Selection struct {
	Start position.Host
	End   position.Host
}

// NewSelection orders a and b so Start <= End.
func NewSelection(a, b position.Host) Selection {
	if a.Compare(b) <= 0 {
		return Selection{Start: a, End: b}
	}
	return Selection{Start: b, End: a}
}

// Collapsed returns a zero-length selection at p.
func Collapsed(p position.Host) Selection {
	return Selection{Start: p, End: p}
}

// IsCollapsed reports whether s represents a caret rather than a range.
func (s Selection) IsCollapsed() bool {
	return s.Start == s.End
}

// IsSingleLine reports whether s.Start and s.End are on the same line.
func (s Selection) IsSingleLine() bool {
	return s.Start.Line == s.End.Line
}

// ColumnLen returns End.Column - Start.Column. Only meaningful when
// IsSingleLine is true.
func (s Selection) ColumnLen() int {
	return int(s.End.Column) - int(s.Start.Column)
}

// Cursor is the engine's (mode, position, visual-anchor) triple.
// Position and Visual are both engine coordinates.
type Cursor struct {
	Mode     Mode
	Position position.Engine
	Visual   position.Engine
}

// orderedBounds returns (min, max) of Position and Visual, engine coords.
func (c Cursor) orderedBounds() (min, max position.Engine) {
	if c.Position.Compare(c.Visual) <= 0 {
		return c.Position, c.Visual
	}
	return c.Visual, c.Position
}
