package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bmatsuo/rkt/lisp"
	"github.com/bmatsuo/rkt/lisp/lisplib"
	"github.com/bmatsuo/rkt/parser/rdparser"
	"gopkg.in/yaml.v3"
)

// Settings are the user configurable parameters of an interpreter session.
type Settings struct {
	// MaxDepth limits the nesting of declared function calls.
	MaxDepth int `yaml:"max-depth"`
	// Prompt is the primary REPL prompt.
	Prompt string `yaml:"prompt"`
	// Print causes run to print the value of each top-level form.
	Print bool `yaml:"print"`
}

// DefaultSettings returns the settings used when no settings file exists.
func DefaultSettings() Settings {
	return Settings{
		MaxDepth: lisp.DefaultMaxDepth,
		Prompt:   "> ",
	}
}

// LoadSettings reads settings from the YAML file at path.  Fields missing
// from the file keep their default values.  If required is false a missing
// file is not an error.
func LoadSettings(path string, required bool) (Settings, error) {
	s := DefaultSettings()
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) && !required {
		return s, nil
	}
	if err != nil {
		return s, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	err = dec.Decode(&s)
	if err != nil && err != io.EOF {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	if s.MaxDepth <= 0 {
		return s, fmt.Errorf("%s: max-depth must be positive", path)
	}
	return s, nil
}

func defaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".rkt.yaml"
	}
	return filepath.Join(home, ".rkt.yaml")
}

// Configs returns the interpreter configuration described by s.  The
// standard library is always loaded.
func (s Settings) Configs() []lisp.Config {
	return []lisp.Config{
		lisp.WithMaxDepth(s.MaxDepth),
		lisp.WithReader(rdparser.NewReader()),
		lisplib.WithLibrary(),
	}
}
