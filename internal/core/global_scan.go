package core

import (
	"fmt"
	"path/filepath"

	"github.com/shinyvision/texls/internal/dict"
	"github.com/shinyvision/texls/internal/scan"
	"github.com/shinyvision/texls/internal/texparse"
)

type globalScanState struct {
	m          *Manuscript
	outlineTop []*OutlineNode // stack of ancestors, index 0 = shallowest
	envStack   []string
}

// GlobalScan clears the extracted indices and traverses the entire source,
// populating Labels, Bibitems, Outline, InputIndex, LabelIndex, and
// SectionIndex (§4.4). Children are constructed after the traversal
// completes, one per unique resolved input reference.
func (m *Manuscript) GlobalScan() {
	m.Labels = nil
	m.Bibitems = nil
	m.Outline = nil
	m.InputIndex = nil
	m.LabelIndex = nil
	m.SectionIndex = nil
	m.Children = make(map[string]*Manuscript)

	state := &globalScanState{m: m}
	classify := func(tok texparse.Token) string {
		if tok.Kind != texparse.KindCS {
			return ""
		}
		cmd, ok := m.Scope.Command(tok.Detail)
		if !ok || cmd.Action == "" {
			return ""
		}
		return string(cmd.Action)
	}

	scan.Run(m.Src, 1, classify, globalCallbacks, state)

	m.buildChildren()
}

var globalCallbacks = map[string]scan.Callback{
	string(dict.ActionInput):   globalInputCallback,
	string(dict.ActionHeading): globalHeadingCallback,
	string(dict.ActionLabel):   globalLabelCallback,
	string(dict.ActionBibitem): globalBibitemCallback,
	string(dict.ActionBegin):   globalBeginCallback,
	string(dict.ActionEnd):     globalEndCallback,
}

func globalInputCallback(pos1 int, detail string, stateAny any) (int, any, bool) {
	st := stateAny.(*globalScanState)
	m := st.m
	cmd, _ := m.Scope.Command(detail)

	nameEnd := pos1 + 1 + len(detail)
	list := texparse.ParseArgs(m.Src, nameEnd, cmd.Args)
	fileArg := mandatoryArg(cmd.Args, list)
	if fileArg == nil || fileArg.Empty() {
		return list.Next, st, true
	}
	raw := fileArg.Text(m.Src)
	tmpl := "%s.tex"
	if cmd.FilenameTemplate != "" {
		tmpl = cmd.FilenameTemplate
	}
	resolved := resolveInputPath(filepath.Dir(m.Filename), raw, tmpl)
	m.InputIndex = append(m.InputIndex, Entry{Pos: pos1, Name: resolved, Raw: raw})

	return list.Next, st, true
}

func globalHeadingCallback(pos1 int, detail string, stateAny any) (int, any, bool) {
	st := stateAny.(*globalScanState)
	m := st.m
	cmd, _ := m.Scope.Command(detail)

	nameEnd := pos1 + 1 + len(detail)
	list := texparse.ParseArgs(m.Src, nameEnd, cmd.Args)
	title := lastNonEmptyText(m.Src, list)

	node := &OutlineNode{Pos: pos1, Level: cmd.HeadingLevel, Title: title}
	m.SectionIndex = append(m.SectionIndex, Entry{Pos: pos1, Name: title})

	for len(st.outlineTop) > 0 && st.outlineTop[len(st.outlineTop)-1].Level >= node.Level {
		st.outlineTop = st.outlineTop[:len(st.outlineTop)-1]
	}
	if len(st.outlineTop) == 0 {
		m.Outline = append(m.Outline, node)
	} else {
		parent := st.outlineTop[len(st.outlineTop)-1]
		parent.Children = append(parent.Children, node)
	}
	st.outlineTop = append(st.outlineTop, node)

	return list.Next, st, true
}

func globalLabelCallback(pos1 int, detail string, stateAny any) (int, any, bool) {
	st := stateAny.(*globalScanState)
	m := st.m
	cmd, _ := m.Scope.Command(detail)

	nameEnd := pos1 + 1 + len(detail)
	list := texparse.ParseArgs(m.Src, nameEnd, cmd.Args)
	name := mandatoryText(m.Src, cmd.Args, list)
	if name != "" {
		entry := Entry{Pos: pos1, Name: name}
		m.Labels = append(m.Labels, entry)
		m.LabelIndex = append(m.LabelIndex, entry)
	}
	return list.Next, st, true
}

func globalBibitemCallback(pos1 int, detail string, stateAny any) (int, any, bool) {
	st := stateAny.(*globalScanState)
	m := st.m
	cmd, _ := m.Scope.Command(detail)

	nameEnd := pos1 + 1 + len(detail)
	list := texparse.ParseArgs(m.Src, nameEnd, cmd.Args)
	name := lastNonEmptyText(m.Src, list)
	if name != "" {
		m.Bibitems = append(m.Bibitems, Entry{Pos: pos1, Name: name})
	}
	return list.Next, st, true
}

func globalBeginCallback(pos1 int, detail string, stateAny any) (int, any, bool) {
	st := stateAny.(*globalScanState)
	m := st.m
	cmd, _ := m.Scope.Command(detail)

	nameEnd := pos1 + 1 + len(detail)
	list := texparse.ParseArgs(m.Src, nameEnd, cmd.Args)
	envName := mandatoryText(m.Src, cmd.Args, list)
	st.envStack = append(st.envStack, envName)

	if env, ok := m.Scope.Environment(envName); ok && env.Action != "" && env.Action != dict.ActionBegin {
		if cb, ok := globalCallbacks[string(env.Action)]; ok {
			return cb(pos1, envName, stateAny)
		}
	}
	return list.Next, st, true
}

func globalEndCallback(pos1 int, detail string, stateAny any) (int, any, bool) {
	st := stateAny.(*globalScanState)
	m := st.m
	cmd, _ := m.Scope.Command(detail)

	nameEnd := pos1 + 1 + len(detail)
	list := texparse.ParseArgs(m.Src, nameEnd, cmd.Args)
	if len(st.envStack) > 0 {
		st.envStack = st.envStack[:len(st.envStack)-1]
	}
	return list.Next, st, true
}

// mandatoryArg returns the first ArgMandatory slot's Range, or nil if the
// signature has none.
func mandatoryArg(sig texparse.Signature, list texparse.ArgList) *texparse.Range {
	for i, a := range sig {
		if a.Kind == texparse.ArgMandatory {
			r := list.Args[i]
			return &r
		}
	}
	return nil
}

func mandatoryText(src string, sig texparse.Signature, list texparse.ArgList) string {
	r := mandatoryArg(sig, list)
	if r == nil {
		return ""
	}
	return r.Text(src)
}

// lastNonEmptyText returns the text of the last non-empty argument, which
// for heading/bibitem commands is conventionally the "real" payload
// (title text, or citation key) regardless of how many leading optional
// arguments precede it.
func lastNonEmptyText(src string, list texparse.ArgList) string {
	for i := len(list.Args) - 1; i >= 0; i-- {
		if !list.Args[i].Empty() {
			return list.Args[i].Text(src)
		}
	}
	return ""
}

const maxIncludeDepth = 15

// buildChildren constructs one child Manuscript per unique resolved input
// path recorded in InputIndex during the traversal that just completed.
func (m *Manuscript) buildChildren() {
	if m.Depth >= maxIncludeDepth {
		if len(m.InputIndex) > 0 {
			logCycleDepth(m.Filename)
		}
		return
	}

	seen := make(map[string]bool)
	for _, e := range m.InputIndex {
		path := e.Name
		if seen[path] {
			continue
		}
		seen[path] = true

		if _, ok := m.cache.Get(path); !ok {
			continue // referenced file absent: no child, per §8 property 3
		}

		child := newManuscript(m.cache, m.loader, path, m.Format, m)
		m.Children[path] = child
		m.cache.PutRootname(path, m.RootFilename())
	}
}

// resolveInputPath applies tmpl (e.g. "%s.tex") to name unless name
// already carries that extension, then resolves the result relative to
// dir into an absolute path.
func resolveInputPath(dir, name, tmpl string) string {
	ext := filepath.Ext(fmt.Sprintf(tmpl, ""))
	candidate := name
	if ext == "" || filepath.Ext(name) != ext {
		candidate = fmt.Sprintf(tmpl, name)
	}
	if filepath.IsAbs(candidate) {
		return filepath.Clean(candidate)
	}
	return filepath.Clean(filepath.Join(dir, candidate))
}
