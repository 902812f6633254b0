package core

import "github.com/shinyvision/texls/internal/dict"

// Scope is a command/environment/module mapping with parent-chain
// fallback for lookup (§9 design notes: "model as an explicit Scope{own,
// parent} with a lookup method that chases the chain. Avoid copying the
// parent's entries down. Mutations apply to own only.").
type Scope struct {
	parent       *Scope
	commands     map[string]*dict.Command
	environments map[string]*dict.Environment
	modules      map[string]*dict.Module
}

// NewScope creates a root scope with no parent.
func NewScope() *Scope {
	return &Scope{
		commands:     make(map[string]*dict.Command),
		environments: make(map[string]*dict.Environment),
		modules:      make(map[string]*dict.Module),
	}
}

// NewChildScope creates a scope whose lookups fall back to parent when a
// name is absent locally.
func NewChildScope(parent *Scope) *Scope {
	s := NewScope()
	s.parent = parent
	return s
}

// Command looks up a command by name, chasing the parent chain.
func (s *Scope) Command(name string) (*dict.Command, bool) {
	if s == nil {
		return nil, false
	}
	if c, ok := s.commands[name]; ok {
		return c, true
	}
	return s.parent.Command(name)
}

// Environment looks up an environment by name, chasing the parent chain.
func (s *Scope) Environment(name string) (*dict.Environment, bool) {
	if s == nil {
		return nil, false
	}
	if e, ok := s.environments[name]; ok {
		return e, true
	}
	return s.parent.Environment(name)
}

// Module looks up a loaded module by name, chasing the parent chain.
func (s *Scope) Module(name string) (*dict.Module, bool) {
	if s == nil {
		return nil, false
	}
	if m, ok := s.modules[name]; ok {
		return m, true
	}
	return s.parent.Module(name)
}

// MergeModule adds every command and environment in mod to this scope's
// own maps (not the parent's), and records mod itself under its name.
// Existing local entries of the same name are not overwritten, so a
// module loaded earlier wins ties — matching the dictionary's
// dependency-merge order in dict.Loader.
func (s *Scope) MergeModule(mod *dict.Module) {
	s.modules[mod.Name] = mod
	for name, c := range mod.Commands {
		if _, exists := s.commands[name]; !exists {
			s.commands[name] = c
		}
	}
	for name, e := range mod.Environments {
		if _, exists := s.environments[name]; !exists {
			s.environments[name] = e
		}
	}
}

// DefineCommand adds or shadows a single command in this scope's own map,
// without touching the parent.
func (s *Scope) DefineCommand(name string, c *dict.Command) {
	s.commands[name] = c
}

// DefineEnvironment adds or shadows a single environment in this scope's
// own map, without touching the parent.
func (s *Scope) DefineEnvironment(name string, e *dict.Environment) {
	s.environments[name] = e
}

// AllCommands returns every command visible from this scope, own entries
// shadowing same-named parent entries (used by completion, §4.6).
func (s *Scope) AllCommands() map[string]*dict.Command {
	out := make(map[string]*dict.Command)
	s.collectCommands(out)
	return out
}

func (s *Scope) collectCommands(out map[string]*dict.Command) {
	if s == nil {
		return
	}
	s.parent.collectCommands(out)
	for name, c := range s.commands {
		out[name] = c
	}
}

// AllEnvironments returns every environment visible from this scope, own
// entries shadowing same-named parent entries (used by completion, §4.6).
func (s *Scope) AllEnvironments() map[string]*dict.Environment {
	out := make(map[string]*dict.Environment)
	s.collectEnvironments(out)
	return out
}

func (s *Scope) collectEnvironments(out map[string]*dict.Environment) {
	if s == nil {
		return
	}
	s.parent.collectEnvironments(out)
	for name, e := range s.environments {
		out[name] = e
	}
}
