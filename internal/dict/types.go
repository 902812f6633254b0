// Package dict loads the command/environment/module dictionaries that
// describe a TeX format's vocabulary. The dictionary content itself is an
// external collaborator (packaged data files, §1); this package is only
// the loader and the in-memory descriptor shapes it produces.
package dict

import "github.com/shinyvision/texls/internal/texparse"

// Action tags a command or environment with the semantic role the global
// and local scanners dispatch on (§3 "Command / Environment descriptor").
// Values beyond the ones named in the spec are permitted — dictionaries
// may declare bespoke extension actions (e.g. "tikzpath", §4.4) that a
// scan-engine client registers its own callback for.
type Action string

const (
	ActionInput   Action = "input"
	ActionBegin   Action = "begin"
	ActionEnd     Action = "end"
	ActionHeading Action = "heading"
	ActionLabel   Action = "label"
	ActionRef     Action = "ref"
	ActionCite    Action = "cite"
	ActionBibitem Action = "bibitem"
	ActionMath    Action = "math"
	ActionEndMath Action = "endmath"
)

// Command describes one control sequence known to a module.
type Command struct {
	Name          string
	Action        Action
	Args          texparse.Signature
	Documentation string
	// HeadingLevel applies only to ActionHeading commands.
	HeadingLevel int
	// FilenameTemplate applies only to ActionInput commands, e.g. "%s.tex".
	FilenameTemplate string
}

// Environment describes one \begin{name}...\end{name} environment.
type Environment struct {
	Name          string
	Action        Action
	Args          texparse.Signature
	Documentation string
}

// Module is a named bundle of commands, environments, and the other
// modules it depends on (loaded transitively before this one takes
// effect, per §4.3).
type Module struct {
	Name         string
	Commands     map[string]*Command
	Environments map[string]*Environment
	Dependencies []string
}
