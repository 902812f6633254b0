package dict

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/shinyvision/texls/internal/texparse"
	"github.com/tliron/commonlog"
	"gopkg.in/yaml.v3"
)

// Loader loads module dictionaries by name from a configured search path
// of directories, each expected to hold "<name>.yaml" files. Modules are
// cached process-wide (§4.3 "loading is idempotent"); a module missing
// from every directory falls back to the built-in registry (builtin.go).
type Loader struct {
	mu      sync.Mutex
	dirs    []string
	cache   map[string]*Module
	loading map[string]bool // cycle guard for Dependencies chains
}

// NewLoader constructs a Loader that searches dirs, in order, for module
// files, in addition to the built-in modules compiled into this binary.
func NewLoader(dirs ...string) *Loader {
	return &Loader{
		dirs:    dirs,
		cache:   make(map[string]*Module),
		loading: make(map[string]bool),
	}
}

// LoadModule returns the named module, loading (and caching) it and its
// transitive dependencies if necessary. ok is false if the module could
// not be found anywhere.
func (l *Loader) LoadModule(name string) (mod *Module, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadLocked(name)
}

func (l *Loader) loadLocked(name string) (*Module, bool) {
	if m, ok := l.cache[name]; ok {
		return m, true
	}
	if l.loading[name] {
		// Dependency cycle: treat as already-resolved-empty to avoid
		// infinite recursion, matching the include-depth cap's spirit.
		return nil, false
	}
	l.loading[name] = true
	defer delete(l.loading, name)

	raw, found := l.readRaw(name)
	if !found {
		raw, found = builtinModules[name]
		if !found {
			return nil, false
		}
	}

	mod := raw.toModule(name)
	for _, dep := range mod.Dependencies {
		depMod, ok := l.loadLocked(dep)
		if !ok {
			commonlog.GetLoggerf("texls.dict").Warningf("module %q depends on unknown module %q", name, dep)
			continue
		}
		mergeModule(mod, depMod)
	}

	l.cache[name] = mod
	return mod, true
}

func mergeModule(into, from *Module) {
	for k, v := range from.Commands {
		if _, exists := into.Commands[k]; !exists {
			into.Commands[k] = v
		}
	}
	for k, v := range from.Environments {
		if _, exists := into.Environments[k]; !exists {
			into.Environments[k] = v
		}
	}
}

func (l *Loader) readRaw(name string) (rawModule, bool) {
	for _, dir := range l.dirs {
		path := filepath.Join(dir, name+".yaml")
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				commonlog.GetLoggerf("texls.dict").Warningf("reading module %q: %v", path, errors.WithStack(err))
			}
			continue
		}
		var raw rawModule
		if err := yaml.Unmarshal(data, &raw); err != nil {
			commonlog.GetLoggerf("texls.dict").Warningf("parsing module %q: %v", path, err)
			continue
		}
		return raw, true
	}
	return rawModule{}, false
}

// --- on-disk schema -------------------------------------------------------

type rawModule struct {
	Dependencies []string             `yaml:"dependencies"`
	Commands     map[string]rawCmd    `yaml:"commands"`
	Environments map[string]rawEnv    `yaml:"environments"`
}

type rawArg struct {
	Kind      string         `yaml:"kind"`
	Name      string         `yaml:"name"`
	Doc       string         `yaml:"doc"`
	Delimiter string         `yaml:"delimiter"`
	Keys      []rawKeySchema `yaml:"keys"`
}

type rawKeySchema struct {
	Name   string   `yaml:"name"`
	Doc    string   `yaml:"doc"`
	Values []string `yaml:"values"`
}

type rawCmd struct {
	Action           string   `yaml:"action"`
	Args             []rawArg `yaml:"args"`
	Doc              string   `yaml:"doc"`
	HeadingLevel     int      `yaml:"heading_level"`
	FilenameTemplate string   `yaml:"filename_template"`
}

type rawEnv struct {
	Action string   `yaml:"action"`
	Args   []rawArg `yaml:"args"`
	Doc    string   `yaml:"doc"`
}

func (r rawModule) toModule(name string) *Module {
	mod := &Module{
		Name:         name,
		Commands:     make(map[string]*Command, len(r.Commands)),
		Environments: make(map[string]*Environment, len(r.Environments)),
		Dependencies: r.Dependencies,
	}
	for cname, c := range r.Commands {
		mod.Commands[cname] = &Command{
			Name:             cname,
			Action:           Action(c.Action),
			Args:             toSignature(c.Args),
			Documentation:    c.Doc,
			HeadingLevel:     c.HeadingLevel,
			FilenameTemplate: c.FilenameTemplate,
		}
	}
	for ename, e := range r.Environments {
		mod.Environments[ename] = &Environment{
			Name:          ename,
			Action:        Action(e.Action),
			Args:          toSignature(e.Args),
			Documentation: e.Doc,
		}
	}
	return mod
}

func toSignature(args []rawArg) texparse.Signature {
	sig := make(texparse.Signature, 0, len(args))
	for _, a := range args {
		kind, err := parseArgKind(a.Kind)
		if err != nil {
			continue
		}
		keys := make([]texparse.KeySchema, 0, len(a.Keys))
		for _, k := range a.Keys {
			keys = append(keys, texparse.KeySchema{Name: k.Name, Documentation: k.Doc, Values: k.Values})
		}
		sig = append(sig, texparse.Arg{
			Kind:          kind,
			DisplayName:   a.Name,
			Documentation: a.Doc,
			Delimiter:     a.Delimiter,
			Keys:          keys,
		})
	}
	return sig
}

func parseArgKind(s string) (texparse.ArgKind, error) {
	switch s {
	case "mandatory", "":
		return texparse.ArgMandatory, nil
	case "optional":
		return texparse.ArgOptional, nil
	case "star":
		return texparse.ArgStar, nil
	case "keyval":
		return texparse.ArgKeyVal, nil
	case "literal":
		return texparse.ArgLiteral, nil
	default:
		return 0, fmt.Errorf("unknown arg kind %q", s)
	}
}
