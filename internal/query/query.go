// Package query answers caret-position questions — hover, signature
// help, and completion — against a Manuscript's LocalScan context stack
// and the dictionary descriptors it resolves to (§4.6).
package query

import (
	"github.com/shinyvision/texls/internal/core"
	"github.com/shinyvision/texls/internal/dict"
	"github.com/shinyvision/texls/internal/texparse"
)

// Help is the result of GetHelp: the innermost renderable frame of the
// context stack, flattened for display.
type Help struct {
	Text   string
	Detail string
	Data   any
	// Arg is the 1-based active argument index, or 0 when not applicable.
	Arg int
}

// GetHelp runs LocalScan(pos) and walks the context stack outward until
// it finds a frame carrying a non-nil descriptor, per §4.6. root is the
// top of the include graph m belongs to, consulted to resolve label/
// bibitem references that may be defined in a different file (§8 S3:
// "hover on y yields text y"). Returns false when nothing in the stack
// (besides the root sentinel) is renderable.
func GetHelp(m *core.Manuscript, root *core.Manuscript, pos int) (Help, bool) {
	frame := m.LocalScan(pos)
	for f := frame; f != nil; f = f.Parent {
		if help, ok := helpForFrame(m, root, f); ok {
			return help, true
		}
	}
	return Help{}, false
}

func helpForFrame(m, root *core.Manuscript, f *core.Frame) (Help, bool) {
	switch f.Kind {
	case core.FrameCommand:
		cmd, ok := f.Data.(*dict.Command)
		if !ok || cmd == nil {
			return Help{}, false
		}
		return Help{Text: `\` + cmd.Name, Detail: detailFor(string(cmd.Action), "command"), Data: cmd}, true

	case core.FrameEnvironment:
		env, ok := f.Data.(*dict.Environment)
		if !ok || env == nil {
			return Help{}, false
		}
		return Help{Text: env.Name, Detail: detailFor(string(env.Action), "environment"), Data: env}, true

	case core.FrameArgument:
		spec, _ := f.Data.(texparse.Arg)
		if text, detail, ok := referenceHelp(m, root, f); ok {
			return Help{Text: text, Detail: detail, Data: spec, Arg: f.ArgIndex}, true
		}
		if spec.DisplayName == "" {
			return Help{}, false
		}
		return Help{Text: spec.DisplayName, Detail: "argument", Data: spec, Arg: f.ArgIndex}, true

	case core.FrameKeyInList:
		schema, ok := f.Data.(*texparse.KeySchema)
		if !ok || schema == nil {
			return Help{}, false
		}
		return Help{Text: schema.Name, Detail: "key", Data: schema}, true

	case core.FrameValueInKey:
		schema, ok := f.Data.(*texparse.KeySchema)
		if !ok || schema == nil {
			return Help{}, false
		}
		return Help{Text: f.Name, Detail: "value", Data: schema}, true

	default:
		return Help{}, false
	}
}

// referenceHelp special-cases label/ref/cite/bibitem arguments (§8 S3):
// the useful hover text is the literal referenced name, not the
// dictionary's generic argument display name, and for ref/cite it's
// resolved against root's label/bibitem index the same way complete.go's
// ownerAction-driven dispatch builds labelCandidates/bibitemCandidates.
func referenceHelp(m, root *core.Manuscript, f *core.Frame) (text, detail string, ok bool) {
	action := ownerAction(f.Parent)
	var entries []core.Entry
	switch action {
	case dict.ActionLabel:
		detail = "label"
	case dict.ActionRef:
		detail = "label"
		entries = collectLabels(root)
	case dict.ActionBibitem:
		detail = "bibitem"
	case dict.ActionCite:
		detail = "bibitem"
		entries = collectBibitems(root)
	default:
		return "", "", false
	}

	name := texparse.Trim(texparse.StripComments(safeSlice(m.Src, f.Pos, f.End())))
	if name == "" {
		return "", "", false
	}
	if entries != nil && !containsEntry(entries, name) {
		detail = "unresolved " + detail
	}
	return name, detail, true
}

func containsEntry(entries []core.Entry, name string) bool {
	for _, e := range entries {
		if e.Name == name {
			return true
		}
	}
	return false
}

func detailFor(action, fallback string) string {
	if action == "" {
		return fallback
	}
	return action
}
