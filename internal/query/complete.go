package query

import (
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/shinyvision/texls/internal/core"
	"github.com/shinyvision/texls/internal/dict"
	"github.com/shinyvision/texls/internal/texparse"
)

// Candidate is one completion suggestion (§4.6).
type Candidate struct {
	Text       string
	FilterText string
	Summary    string
	Detail     string
	// Snippet is a templated insertion form (e.g. "ref{$1}"); empty when
	// Text should be inserted as-is.
	Snippet string
}

// CompletionResult is the query-layer answer to complete(pos).
type CompletionResult struct {
	Prefix     string
	Pos        int
	Candidates []Candidate
}

// Complete derives a prefix from the innermost context-stack frame at pos
// and enumerates candidates appropriate to that frame's kind (§4.6). root
// is the top of the include graph m belongs to, consulted for
// domain-specific completions (label, cite) that range over the whole
// document tree rather than just m. searchPaths configures filename
// completion for input-like arguments.
func Complete(m *core.Manuscript, root *core.Manuscript, pos int, searchPaths []string) (CompletionResult, bool) {
	frame := m.LocalScan(pos)
	src := m.Src

	switch frame.Kind {
	case core.FrameCommand:
		prefix := safeSlice(src, frame.Pos+1, pos)
		return CompletionResult{Prefix: prefix, Pos: pos, Candidates: commandCandidates(m, prefix)}, true

	case core.FrameEnvironment:
		if !withinRange(pos, frame.NamePos, frame.NameLen) {
			return CompletionResult{}, false
		}
		prefix := safeSlice(src, frame.NamePos, pos)
		return CompletionResult{Prefix: prefix, Pos: pos, Candidates: environmentCandidates(m, prefix)}, true

	case core.FrameKeyInList:
		prefix := safeSlice(src, frame.Pos, pos)
		keys := keysFromParent(frame.Parent)
		return CompletionResult{Prefix: prefix, Pos: pos, Candidates: keyCandidates(keys, prefix)}, true

	case core.FrameValueInKey:
		prefix := safeSlice(src, frame.Pos, pos)
		schema, _ := frame.Data.(*texparse.KeySchema)
		return CompletionResult{Prefix: prefix, Pos: pos, Candidates: valueCandidates(schema, prefix)}, true

	case core.FrameArgument:
		prefix := safeSlice(src, frame.Pos, pos)
		action := ownerAction(frame.Parent)
		switch action {
		case dict.ActionLabel, dict.ActionRef:
			return CompletionResult{Prefix: prefix, Pos: pos, Candidates: labelCandidates(root, prefix)}, true
		case dict.ActionCite, dict.ActionBibitem:
			return CompletionResult{Prefix: prefix, Pos: pos, Candidates: bibitemCandidates(root, prefix)}, true
		case dict.ActionInput:
			return CompletionResult{Prefix: prefix, Pos: pos, Candidates: filenameCandidates(searchPaths, prefix)}, true
		default:
			return CompletionResult{}, false
		}

	default:
		return CompletionResult{}, false
	}
}

func safeSlice(text string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(text) {
		end = len(text)
	}
	if start > end {
		return ""
	}
	return text[start:end]
}

func withinRange(pos, start, length int) bool {
	return pos >= start && pos <= start+length
}

func ownerAction(owner *core.Frame) dict.Action {
	if owner == nil {
		return ""
	}
	switch d := owner.Data.(type) {
	case *dict.Command:
		if d != nil {
			return d.Action
		}
	case *dict.Environment:
		if d != nil {
			return d.Action
		}
	}
	return ""
}

func keysFromParent(owner *core.Frame) []texparse.KeySchema {
	if owner == nil {
		return nil
	}
	if spec, ok := owner.Data.(texparse.Arg); ok {
		return spec.Keys
	}
	return nil
}

func commandCandidates(m *core.Manuscript, prefix string) []Candidate {
	var out []Candidate
	for name, cmd := range m.Scope.AllCommands() {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		snippet := snippetForArgs(cmd.Args)
		if snippet != "" {
			snippet = name + snippet
		}
		out = append(out, Candidate{
			Text:       name,
			FilterText: name,
			Summary:    cmd.Documentation,
			Detail:     string(cmd.Action),
			Snippet:    snippet,
		})
	}
	return orderCandidates(out, prefix)
}

func environmentCandidates(m *core.Manuscript, prefix string) []Candidate {
	var out []Candidate
	for name, env := range m.Scope.AllEnvironments() {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		out = append(out, Candidate{
			Text:       name,
			FilterText: name,
			Summary:    env.Documentation,
			Detail:     "environment",
		})
	}
	return orderCandidates(out, prefix)
}

func keyCandidates(keys []texparse.KeySchema, prefix string) []Candidate {
	var out []Candidate
	for _, k := range keys {
		if !strings.HasPrefix(k.Name, prefix) {
			continue
		}
		out = append(out, Candidate{Text: k.Name, FilterText: k.Name, Summary: k.Documentation, Detail: "key"})
	}
	return orderCandidates(out, prefix)
}

func valueCandidates(schema *texparse.KeySchema, prefix string) []Candidate {
	if schema == nil {
		return nil
	}
	var out []Candidate
	for _, v := range schema.Values {
		if !strings.HasPrefix(v, prefix) {
			continue
		}
		out = append(out, Candidate{Text: v, FilterText: v, Detail: "value"})
	}
	return orderCandidates(out, prefix)
}

func labelCandidates(root *core.Manuscript, prefix string) []Candidate {
	var out []Candidate
	for _, e := range collectLabels(root) {
		if !strings.HasPrefix(e.Name, prefix) {
			continue
		}
		out = append(out, Candidate{Text: e.Name, FilterText: e.Name, Detail: "label"})
	}
	return orderCandidates(out, prefix)
}

func bibitemCandidates(root *core.Manuscript, prefix string) []Candidate {
	var out []Candidate
	for _, e := range collectBibitems(root) {
		if !strings.HasPrefix(e.Name, prefix) {
			continue
		}
		out = append(out, Candidate{Text: e.Name, FilterText: e.Name, Detail: "bibitem"})
	}
	return orderCandidates(out, prefix)
}

func collectLabels(m *core.Manuscript) []core.Entry {
	if m == nil {
		return nil
	}
	out := append([]core.Entry(nil), m.Labels...)
	for _, child := range m.Children {
		out = append(out, collectLabels(child)...)
	}
	return out
}

func collectBibitems(m *core.Manuscript) []core.Entry {
	if m == nil {
		return nil
	}
	out := append([]core.Entry(nil), m.Bibitems...)
	for _, child := range m.Children {
		out = append(out, collectBibitems(child)...)
	}
	return out
}

// filenameCandidates matches prefix against ".tex" files under
// searchPaths using doublestar glob semantics (SPEC_FULL.md domain-stack
// wiring), offering the path with its extension stripped, matching the
// conventional \input{name} form.
func filenameCandidates(searchPaths []string, prefix string) []Candidate {
	var out []Candidate
	seen := make(map[string]bool)
	for _, dir := range searchPaths {
		matches, err := doublestar.Glob(os.DirFS(dir), "**/*.tex")
		if err != nil {
			continue
		}
		for _, match := range matches {
			name := strings.TrimSuffix(match, ".tex")
			if !strings.HasPrefix(name, prefix) || seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, Candidate{Text: name, FilterText: name, Detail: "file"})
		}
	}
	return orderCandidates(out, prefix)
}

func snippetForArgs(sig texparse.Signature) string {
	var b strings.Builder
	tabstop := 1
	for _, a := range sig {
		switch a.Kind {
		case texparse.ArgMandatory:
			b.WriteString("{$")
			b.WriteString(strconv.Itoa(tabstop))
			b.WriteString("}")
			tabstop++
		case texparse.ArgOptional:
			b.WriteString("[$")
			b.WriteString(strconv.Itoa(tabstop))
			b.WriteString("]")
			tabstop++
		}
	}
	return b.String()
}

// orderCandidates sorts alphabetically, putting an exact prefix match
// first when one exists, per §4.6 ("stable, alphabetical within kind;
// exact-match-first when present").
func orderCandidates(cands []Candidate, prefix string) []Candidate {
	sort.SliceStable(cands, func(i, j int) bool {
		iExact := cands[i].Text == prefix
		jExact := cands[j].Text == prefix
		if iExact != jExact {
			return iExact
		}
		return cands[i].Text < cands[j].Text
	})
	return cands
}
