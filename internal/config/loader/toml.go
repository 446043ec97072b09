// Package loader reads a config.Config from a TOML file using
// pelletier/go-toml/v2.
package loader

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/fluxwatch/bufcore/internal/config"
)

// ParseError reports a malformed config file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load reads and parses the TOML file at path, applying defaults for
// every field it leaves zero-valued. A missing file is not an error:
// Load returns config.Default().
func Load(path string) (config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config.Default(), nil
		}
		return config.Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse parses raw TOML bytes into a config.Config. source names the
// origin for error messages (a file path, or "<reader>" equivalent).
func Parse(source string, data []byte) (config.Config, error) {
	var c config.Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return config.Config{}, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	return c.WithDefaults(), nil
}
