package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.LogLevel != "info" {
		t.Errorf("got LogLevel %q, want default info", c.LogLevel)
	}
}

func TestLoadParsesAndAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bufcore.toml")
	writeFile(t, path, `
token_timer_seconds = 0.3
engine_target = "/tmp/engine.sock"
`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.TokenTimerSeconds != 0.3 {
		t.Errorf("got TokenTimerSeconds %v, want 0.3", c.TokenTimerSeconds)
	}
	if c.EngineTarget != "/tmp/engine.sock" {
		t.Errorf("got EngineTarget %q", c.EngineTarget)
	}
	if c.IdleTimerSeconds != 2.0 {
		t.Errorf("expected unset IdleTimerSeconds to fall back to default, got %v", c.IdleTimerSeconds)
	}
}

func TestParseMalformedTOMLReturnsParseError(t *testing.T) {
	_, err := Parse("<test>", []byte("not = [valid toml"))
	if err == nil {
		t.Fatal("expected a parse error")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Path != "<test>" {
		t.Errorf("got Path %q", pe.Path)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing test fixture %s: %v", path, err)
	}
}
