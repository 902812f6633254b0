// Package config holds the process-wide configuration read from the
// LSP InitializeParams, mirroring the way the teacher splits a plain
// struct from its InitializationOptions-derived fields.
package config

import (
	"path/filepath"

	"github.com/tliron/commonlog"
)

// Config is the process-wide configuration for one server instance.
type Config struct {
	WorkspaceRoot string

	// Format names the dictionary module applied to every opened file
	// that doesn't otherwise declare one via languageId mapping.
	Format string

	// DictionaryDirs is the loader's search path for "<module>.yaml"
	// files (§4.3); always falls back to the compiled-in builtin
	// modules when empty or when a name isn't found on disk.
	DictionaryDirs []string

	// SearchPaths configures filename completion for input-like
	// arguments (SPEC_FULL.md domain-stack wiring: doublestar globbing).
	SearchPaths []string

	// RegistryMax bounds how many root Manuscripts are memoized at once
	// (0 selects core.Registry's own default).
	RegistryMax int
}

// NewConfig returns a Config with sensible defaults; WorkspaceRoot is
// filled in during Initialize once the client's root is known.
func NewConfig() *Config {
	return &Config{
		Format: "latex",
	}
}

// LoadFromInitializationOptions extracts texls's recognized keys from the
// opaque InitializationOptions value the client handed over, the same
// best-effort style the teacher used for its own "roots" /
// "container_xml_path" keys: absent or malformed keys are left at their
// defaults rather than treated as errors.
func (c *Config) LoadFromInitializationOptions(opts any) {
	m, ok := opts.(map[string]any)
	if !ok {
		return
	}
	logger := commonlog.GetLoggerf("texls.config")

	if format, ok := stringValue(m["format"]); ok {
		c.Format = format
	}
	if dirs, ok := stringSliceValue(m["dictionary_dirs"]); ok {
		c.DictionaryDirs = c.resolveAll(dirs)
	}
	if paths, ok := stringSliceValue(m["search_paths"]); ok {
		c.SearchPaths = c.resolveAll(paths)
	}
	if max, ok := intValue(m["registry_max"]); ok {
		c.RegistryMax = max
	}

	logger.Infof("configured: format=%q dictionary_dirs=%d search_paths=%d registry_max=%d",
		c.Format, len(c.DictionaryDirs), len(c.SearchPaths), c.RegistryMax)
}

func (c *Config) resolveAll(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		if !filepath.IsAbs(p) {
			p = filepath.Join(c.WorkspaceRoot, p)
		}
		out = append(out, p)
	}
	return out
}

func stringValue(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok && s != ""
}

func stringSliceValue(v any) ([]string, bool) {
	arr, ok := v.([]any)
	if !ok {
		return nil, false
	}
	var out []string
	for _, e := range arr {
		if s, ok := e.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out, len(out) > 0
}

func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
