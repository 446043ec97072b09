// Package corestate holds the data model shared by the reducer and the
// driver: the engine's shadow buffer, the host's shadow buffer, the
// edition token that arbitrates which side is the transient source of
// truth, and the miscellaneous flags that track mouse/passthrough state.
//
// Nothing in this package performs I/O or reads wall-clock time; it is a
// plain data container, mutated only by the reducer.
package corestate

import (
	"github.com/fluxwatch/bufcore/internal/position"
	"github.com/fluxwatch/bufcore/internal/selection"
)

// Owner identifies which side currently holds the edition token.
type Owner int

const (
	OwnerNone Owner = iota
	OwnerEngine
	OwnerHost
)

func (o Owner) String() string {
	switch o {
	case OwnerNone:
		return "none"
	case OwnerEngine:
		return "engine"
	case OwnerHost:
		return "host"
	default:
		return "unknown"
	}
}

// TokenStatus is the edition token's three-state coordinator: Free,
// Acquired(owner), or Synchronizing.
type TokenStatus int

const (
	Free TokenStatus = iota
	Acquired
	Synchronizing
)

func (s TokenStatus) String() string {
	switch s {
	case Free:
		return "free"
	case Acquired:
		return "acquired"
	case Synchronizing:
		return "synchronizing"
	default:
		return "unknown"
	}
}

// Token is the edition-token coordinator. Owner is only meaningful when
// Status == Acquired.
//
// IdleArmed is reserved for a cooperative-reducer extension that adds a
// floor idle-timeout re-synchronization on top of the token timer; the
// legacy/base reducer in this module never sets it.
type Token struct {
	Status    TokenStatus
	Owner     Owner
	IdleArmed bool
}

// IsFree reports whether the token can be acquired by anyone.
func (t Token) IsFree() bool { return t.Status == Free }

// IsAcquiredBy reports whether the token is held by owner.
func (t Token) IsAcquiredBy(owner Owner) bool {
	return t.Status == Acquired && t.Owner == owner
}

// CanAcquire reports whether owner may take the token: it is already
// free, or already held by owner (re-acquisition restarts the timer but
// does not change ownership).
func (t Token) CanAcquire(owner Owner) bool {
	return t.Status == Free || t.IsAcquiredBy(owner)
}

// Acquire sets the token to Acquired(owner).
func (t *Token) Acquire(owner Owner) {
	t.Status = Acquired
	t.Owner = owner
}

// Release sets the token back to Free.
func (t *Token) Release() {
	t.Status = Free
	t.Owner = OwnerNone
}

// EngineState is the shadow of the engine's buffer and cursor.
type EngineState struct {
	Lines  []string
	Cursor selection.Cursor

	// PendingLines and PendingCursor stage changes received since the
	// last engine-flush signal. "Not pending" is distinguished only via
	// HasPendingLines/HasPendingCursor, since Cursor's zero value (Normal)
	// is a legitimate mode.
	PendingLines    []string
	HasPendingLines bool

	PendingCursor    selection.Cursor
	HasPendingCursor bool
}

// AdoptPending atomically adopts staged values and clears the pending
// flags: lines/cursor adopt pending values when present, retain prior
// values otherwise.
func (e *EngineState) AdoptPending() (linesChanged, cursorChanged bool) {
	if e.HasPendingLines {
		e.Lines = e.PendingLines
		e.PendingLines = nil
		e.HasPendingLines = false
		linesChanged = true
	}
	if e.HasPendingCursor {
		e.Cursor = e.PendingCursor
		e.PendingCursor = selection.Cursor{}
		e.HasPendingCursor = false
		cursorChanged = true
	}
	return linesChanged, cursorChanged
}

// HostState is the shadow of the host's text widget.
type HostState struct {
	Lines     []string
	Selection selection.Selection

	// PendingSelection is a selection the core has just written to the
	// host, used to suppress the one echoed HostSelectionChanged event
	// it will produce. HasPendingSelection distinguishes "armed" from
	// "not armed" (the zero Selection is a legitimate value).
	PendingSelection    selection.Selection
	HasPendingSelection bool
}

// ArmPendingSelection records a selection the core just wrote to the
// host, to be consumed once by ConsumePendingSelection.
func (h *HostState) ArmPendingSelection(s selection.Selection) {
	h.PendingSelection = s
	h.HasPendingSelection = true
}

// ConsumePendingSelection reports whether s matches the armed pending
// selection and, if so, clears it. Used to swallow exactly one echo.
func (h *HostState) ConsumePendingSelection(s selection.Selection) bool {
	if h.HasPendingSelection && h.PendingSelection == s {
		h.HasPendingSelection = false
		h.PendingSelection = selection.Selection{}
		return true
	}
	return false
}

// Flags holds the miscellaneous boolean state the reducer tracks outside
// the two shadow buffers: keys_passthrough, left_mouse_down, is_selecting.
type Flags struct {
	KeysPassthrough bool
	LeftMouseDown   bool
	IsSelecting     bool
}

// State is the full per-buffer state instance owned by the driver. One
// instance exists per live host text widget; it is never shared across
// buffers.
type State struct {
	Engine EngineState
	Host   HostState
	Token  Token
	Flags  Flags

	// TokenTimerSeconds is the quiet-period duration the reducer names in
	// every StartTimer{token, _} action it emits. The driver overrides it
	// from its own configuration after New returns; it is carried on
	// State rather than hardcoded so the reducer's output reflects
	// whatever duration the outer driver was configured with.
	TokenTimerSeconds float64
}

// DefaultTokenTimerSeconds is the quiet-period duration New seeds State
// with when nothing overrides it.
const DefaultTokenTimerSeconds = 0.2

// New builds the initial State for a freshly attached buffer: both
// shadows populated with lines, cursor at (1,1) in normal mode, the
// corresponding host selection, and a free token.
func New(lines []string) *State {
	cursor := selection.Cursor{
		Mode:     selection.Normal,
		Position: position.Engine{Line: 1, Column: 1},
		Visual:   position.Engine{Line: 1, Column: 1},
	}
	sels := selection.SelectionsFrom(cursor)
	var sel selection.Selection
	if len(sels) > 0 {
		sel = sels[0]
	}
	return &State{
		Engine:            EngineState{Lines: lines, Cursor: cursor},
		Host:              HostState{Lines: append([]string(nil), lines...), Selection: sel},
		Token:             Token{Status: Free},
		TokenTimerSeconds: DefaultTokenTimerSeconds,
	}
}

// LinesEqual compares two line sequences for the trailing-empty-line
// equality rule: a host buffer that ends in an extra blank line (the
// universal "file ends with a newline" convention) is considered equal
// to an engine buffer that does not record that trailing blank line.
func LinesEqual(a, b []string) bool {
	a = trimTrailingEmpty(a)
	b = trimTrailingEmpty(b)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func trimTrailingEmpty(lines []string) []string {
	if n := len(lines); n > 0 && lines[n-1] == "" {
		return lines[:n-1]
	}
	return lines
}

// ShadowsAgree reports whether the engine and host shadows currently
// describe the same buffer content and selection/cursor, per the
// trailing-empty-line equality rule for lines.
func (s *State) ShadowsAgree() bool {
	if !LinesEqual(s.Engine.Lines, s.Host.Lines) {
		return false
	}
	sels := selection.SelectionsFrom(s.Engine.Cursor)
	if len(sels) == 0 {
		return s.Host.Selection.IsCollapsed()
	}
	joined, _ := selection.Join(sels)
	return joined == s.Host.Selection
}
