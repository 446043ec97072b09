// Package keynotation translates host key combos into the engine's key
// notation strings (the `<Esc>`, `<C-w>`, `<CR>` family a modal editor's
// input parser expects).
package keynotation

import (
	"strings"

	"github.com/fluxwatch/bufcore/internal/coreevent"
)

// namedKeys maps the host's named-key identifiers (non-printable keys)
// to their engine notation body, i.e. without the surrounding angle
// brackets.
var namedKeys = map[string]string{
	"Escape":    "Esc",
	"Return":    "CR",
	"Enter":     "CR",
	"Tab":       "Tab",
	"Backspace": "BS",
	"Delete":    "Del",
	"Space":     "Space",
	"Up":        "Up",
	"Down":      "Down",
	"Left":      "Left",
	"Right":     "Right",
	"Home":      "Home",
	"End":       "End",
	"PageUp":    "PageUp",
	"PageDown":  "PageDown",
	"F1":        "F1",
	"F2":        "F2",
	"F3":        "F3",
	"F4":        "F4",
	"F5":        "F5",
	"F6":        "F6",
	"F7":        "F7",
	"F8":        "F8",
	"F9":        "F9",
	"F10":       "F10",
	"F11":       "F11",
	"F12":       "F12",
}

// Translate converts a key combo into engine key notation, e.g.
// "<Esc>", "<C-w>", "<S-Tab>". ok is false when the combo carries no
// notation the engine understands (reducer callers should fall back to
// plain character input in that case).
func Translate(combo coreevent.KeyCombo) (notation string, ok bool) {
	body, hasBody := namedKeys[combo.Key]
	if !hasBody {
		if len(combo.Key) != 1 {
			return "", false
		}
		body = combo.Key
	}

	var mods []string
	if combo.Control {
		mods = append(mods, "C")
	}
	if combo.Option {
		mods = append(mods, "A")
	}
	if combo.Shift && hasBody {
		mods = append(mods, "S")
	}

	if len(mods) == 0 {
		if hasBody {
			return "<" + body + ">", true
		}
		return body, true
	}
	return "<" + strings.Join(mods, "-") + "-" + body + ">", true
}

// IsCommandChord reports whether combo carries the host's command
// (⌘) modifier — the reducer treats most such chords as passthrough.
func IsCommandChord(combo coreevent.KeyCombo) bool { return combo.Command }
