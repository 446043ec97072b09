package adapter

import (
	"errors"
	"testing"

	"github.com/fluxwatch/bufcore/internal/coreevent"
)

func TestNewSessionIDIsUnique(t *testing.T) {
	a := NewSessionID()
	b := NewSessionID()
	if a == "" || b == "" {
		t.Fatal("expected non-empty session ids")
	}
	if a == b {
		t.Errorf("expected distinct session ids, got %q twice", a)
	}
}

func TestProtocolErrorUnwrap(t *testing.T) {
	inner := errors.New("no such buffer")
	pe := &ProtocolError{Delta: coreevent.LineDelta{FirstLine: 3, LastLine: 5}, Err: inner}

	if !errors.Is(pe, inner) {
		t.Errorf("expected errors.Is to unwrap to the inner error")
	}
	if pe.Error() == "" {
		t.Errorf("expected a non-empty error message")
	}
}
