package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConfigDefaults(t *testing.T) {
	c := NewConfig()
	assert.Equal(t, "latex", c.Format)
	assert.Empty(t, c.DictionaryDirs)
}

func TestLoadFromInitializationOptions(t *testing.T) {
	c := NewConfig()
	c.WorkspaceRoot = "/ws"
	c.LoadFromInitializationOptions(map[string]any{
		"format":          "context",
		"dictionary_dirs": []any{"dicts", "/abs/dicts"},
		"search_paths":    []any{"src"},
		"registry_max":    float64(50),
	})

	assert.Equal(t, "context", c.Format)
	assert.Equal(t, []string{"/ws/dicts", "/abs/dicts"}, c.DictionaryDirs)
	assert.Equal(t, []string{"/ws/src"}, c.SearchPaths)
	assert.Equal(t, 50, c.RegistryMax)
}

func TestLoadFromInitializationOptionsIgnoresGarbage(t *testing.T) {
	c := NewConfig()
	c.LoadFromInitializationOptions("not a map")
	assert.Equal(t, "latex", c.Format)

	c.LoadFromInitializationOptions(nil)
	assert.Equal(t, "latex", c.Format)
}
