package keynotation

import (
	"testing"

	"github.com/fluxwatch/bufcore/internal/coreevent"
)

func TestTranslateNamedKey(t *testing.T) {
	got, ok := Translate(coreevent.KeyCombo{Key: "Escape"})
	if !ok || got != "<Esc>" {
		t.Errorf("got %q, %v", got, ok)
	}
}

func TestTranslateControlChar(t *testing.T) {
	got, ok := Translate(coreevent.KeyCombo{Key: "w", Control: true})
	if !ok || got != "<C-w>" {
		t.Errorf("got %q, %v", got, ok)
	}
}

func TestTranslatePlainChar(t *testing.T) {
	got, ok := Translate(coreevent.KeyCombo{Key: "a"})
	if !ok || got != "a" {
		t.Errorf("got %q, %v", got, ok)
	}
}

func TestTranslateShiftedNamedKey(t *testing.T) {
	got, ok := Translate(coreevent.KeyCombo{Key: "Tab", Shift: true})
	if !ok || got != "<S-Tab>" {
		t.Errorf("got %q, %v", got, ok)
	}
}

func TestTranslateUnknownMultiCharKey(t *testing.T) {
	if _, ok := Translate(coreevent.KeyCombo{Key: "VolumeUp"}); ok {
		t.Errorf("expected unknown key to fail translation")
	}
}

func TestIsCommandChord(t *testing.T) {
	if !IsCommandChord(coreevent.KeyCombo{Command: true}) {
		t.Errorf("expected command chord to be detected")
	}
}
