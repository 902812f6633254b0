package query

import (
	"strings"

	"github.com/shinyvision/texls/internal/core"
	"github.com/shinyvision/texls/internal/dict"
	"github.com/shinyvision/texls/internal/texparse"
)

// Parameter is one formal argument rendered for signature help.
type Parameter struct {
	Label         string
	Documentation string
}

// Signature is a single signature candidate. TeX commands never
// overload, so SignatureHelpResult.Signatures always has length 1 when
// present — the slice shape matches §6's EXTERNAL INTERFACES contract
// even though this core never populates more than one entry.
type Signature struct {
	Label         string
	Documentation string
	Parameters    []Parameter
}

// SignatureHelpResult is the query-layer answer to signature_help.
type SignatureHelpResult struct {
	Signatures      []Signature
	ActiveParameter *int
}

// SignatureHelpAt returns the signature for the command or environment
// enclosing pos, with ActiveParameter set when the caret sits inside one
// of its argument slots. Returns false when pos isn't inside a known
// command/environment invocation.
func SignatureHelpAt(m *core.Manuscript, pos int) (SignatureHelpResult, bool) {
	frame := m.LocalScan(pos)

	var active *int
	owner := frame
	for owner != nil {
		if owner.Kind == core.FrameArgument {
			idx := owner.ArgIndex - 1
			active = &idx
		}
		if owner.Kind == core.FrameCommand || owner.Kind == core.FrameEnvironment {
			break
		}
		owner = owner.Parent
	}
	if owner == nil {
		return SignatureHelpResult{}, false
	}

	switch owner.Kind {
	case core.FrameCommand:
		cmd, ok := owner.Data.(*dict.Command)
		if !ok || cmd == nil {
			return SignatureHelpResult{}, false
		}
		return SignatureHelpResult{
			Signatures:      []Signature{renderCommandSignature(cmd)},
			ActiveParameter: active,
		}, true

	case core.FrameEnvironment:
		env, ok := owner.Data.(*dict.Environment)
		if !ok || env == nil {
			return SignatureHelpResult{}, false
		}
		return SignatureHelpResult{
			Signatures:      []Signature{renderEnvironmentSignature(env)},
			ActiveParameter: active,
		}, true

	default:
		return SignatureHelpResult{}, false
	}
}

func renderCommandSignature(cmd *dict.Command) Signature {
	return Signature{
		Label:         `\` + cmd.Name + renderArgList(cmd.Args),
		Documentation: cmd.Documentation,
		Parameters:    renderParameters(cmd.Args),
	}
}

func renderEnvironmentSignature(env *dict.Environment) Signature {
	return Signature{
		Label:         `\begin{` + env.Name + `}` + renderArgList(env.Args),
		Documentation: env.Documentation,
		Parameters:    renderParameters(env.Args),
	}
}

func renderParameters(sig texparse.Signature) []Parameter {
	params := make([]Parameter, len(sig))
	for i, a := range sig {
		params[i] = Parameter{Label: renderArg(a), Documentation: a.Documentation}
	}
	return params
}

func renderArgList(sig texparse.Signature) string {
	var b strings.Builder
	for _, a := range sig {
		b.WriteString(renderArg(a))
	}
	return b.String()
}

func renderArg(a texparse.Arg) string {
	name := a.DisplayName
	switch a.Kind {
	case texparse.ArgMandatory:
		return "{" + name + "}"
	case texparse.ArgOptional:
		return "[" + name + "]"
	case texparse.ArgStar:
		return "*"
	case texparse.ArgLiteral:
		return a.Delimiter
	case texparse.ArgKeyVal:
		open, close := "{", "}"
		if a.Delimiter == "[" {
			open, close = "[", "]"
		}
		return open + name + close
	default:
		return name
	}
}
