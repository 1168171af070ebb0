package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bmatsuo/rkt/lisp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, text string) string {
	path := filepath.Join(t.TempDir(), "rkt.yaml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0600))
	return path
}

func TestLoadSettings(t *testing.T) {
	path := writeSettings(t, "max-depth: 100\nprompt: \"rkt> \"\n")
	s, err := LoadSettings(path, true)
	require.NoError(t, err)
	assert.Equal(t, Settings{MaxDepth: 100, Prompt: "rkt> "}, s)

	path = writeSettings(t, "print: true\n")
	s, err = LoadSettings(path, true)
	require.NoError(t, err)
	assert.Equal(t, Settings{MaxDepth: DefaultSettings().MaxDepth, Prompt: "> ", Print: true}, s)

	path = writeSettings(t, "")
	s, err = LoadSettings(path, true)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestLoadSettingsMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")
	s, err := LoadSettings(path, false)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)

	_, err = LoadSettings(path, true)
	assert.Error(t, err)
}

func TestLoadSettingsInvalid(t *testing.T) {
	for _, text := range []string{
		"max-depth: 0\n",
		"max-depth: many\n",
		"unknown-field: 1\n",
	} {
		_, err := LoadSettings(writeSettings(t, text), true)
		assert.Error(t, err, "settings %q", text)
	}
}

func TestSettingsConfigs(t *testing.T) {
	s := DefaultSettings()
	s.MaxDepth = 5
	in, err := lisp.New(s.Configs()...)
	require.NoError(t, err)
	_, err = in.LoadString("test", "(define (f) (f)) (f)")
	assert.EqualError(t, err, "maximum recursion depth exceeded: 5")

	// the standard library is loaded
	v, err := in.LoadString("test", "(sqrt 9)")
	require.NoError(t, err)
	assert.Equal(t, "3", v.String())
}
