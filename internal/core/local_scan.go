package core

import (
	"github.com/shinyvision/texls/internal/dict"
	"github.com/shinyvision/texls/internal/scan"
	"github.com/shinyvision/texls/internal/texparse"
)

type localScanState struct {
	text   string
	scope  *Scope
	caret  int
	root   *Frame
	result *Frame
}

// LocalScan returns the context stack at caret (a byte offset): a chain
// from innermost to outermost frame describing what control sequence or
// argument slot the caret sits inside (§4.4). It always returns at least
// the FrameRoot sentinel.
func (m *Manuscript) LocalScan(caret int) *Frame {
	root := &Frame{Kind: FrameRoot, Pos: 0, Len: len(m.Src)}
	start := findParagraphStart(m.Src, caret)

	st := &localScanState{text: m.Src, scope: m.Scope, caret: caret, root: root, result: root}

	classify := func(tok texparse.Token) string {
		if tok.Kind == texparse.KindCS {
			return "cs"
		}
		return ""
	}
	scan.Run(m.Src, start, classify, map[string]scan.Callback{"cs": localCSCallback}, st)

	return st.result
}

// findParagraphStart walks forward from the start of the document,
// tracking the most recent paragraph break at or before caret, in a
// single linear pass — the §9 design note flags a naive restart-from-
// scratch implementation as a quadratic pitfall to avoid.
func findParagraphStart(text string, caret int) int {
	lastBreak := 0
	pos := 0
	for {
		tok, ok := texparse.NextThing(text, pos)
		if !ok || tok.Pos1 > caret {
			break
		}
		if tok.Kind == texparse.KindPar {
			lastBreak = tok.Pos2
		}
		pos = tok.Pos2
	}
	return lastBreak
}

func localCSCallback(pos1 int, name string, stateAny any) (int, any, bool) {
	st := stateAny.(*localScanState)
	if pos1 > st.caret {
		return 0, st, false // no later token can contain the caret
	}

	nameEnd := pos1 + 1 + len(name)
	cmd, known := st.scope.Command(name)

	if st.caret <= nameEnd {
		st.result = &Frame{Kind: FrameCommand, Pos: pos1, Len: nameEnd - pos1, Parent: st.root, Name: name, Data: cmd}
		return 0, st, false
	}
	if !known {
		return nameEnd, st, true
	}

	if cmd.Action == dict.ActionBegin && len(cmd.Args) >= 1 {
		return localBeginCallback(pos1, nameEnd, cmd, st)
	}

	list := texparse.ParseArgs(st.text, nameEnd, cmd.Args)
	cmdFrame := &Frame{Kind: FrameCommand, Pos: pos1, Len: list.Next - pos1, Parent: st.root, Name: name, Data: cmd}

	for i, r := range list.Args {
		if r.Contains(st.caret) {
			st.result = argumentFrame(st.text, st.caret, cmd.Args[i], r, i+1, cmdFrame)
			return 0, st, false
		}
	}
	if st.caret <= list.Next {
		st.result = cmdFrame
		return 0, st, false
	}
	return list.Next, st, true
}

// localBeginCallback implements the §4.4 "\begin handling" note: the
// environment name's own signature is parsed too, so caret positions
// inside environment-specific arguments (e.g. \begin{tabular}{ccc}) are
// recognized as FrameArgument within a FrameEnvironment, not left
// unresolved.
func localBeginCallback(pos1, nameEnd int, cmd *dict.Command, st *localScanState) (int, any, bool) {
	envList := texparse.ParseArgs(st.text, nameEnd, cmd.Args)
	envRange := envList.Args[0]
	envName := envRange.Text(st.text)
	env, envKnown := st.scope.Environment(envName)

	var envData any
	if envKnown {
		envData = env
	}

	fullEnd := envList.Next
	var extra texparse.ArgList
	if envKnown {
		extra = texparse.ParseArgs(st.text, envList.Next, env.Args)
		if extra.Len > 0 {
			fullEnd = extra.Next
		}
	}

	envFrame := &Frame{
		Kind: FrameEnvironment, Pos: pos1, Len: fullEnd - pos1, Parent: st.root, Name: envName, Data: envData,
		NamePos: envRange.Pos, NameLen: envRange.Len,
	}

	if envRange.Contains(st.caret) {
		st.result = envFrame
		return 0, st, false
	}
	if envKnown {
		for i, r := range extra.Args {
			if r.Contains(st.caret) {
				st.result = argumentFrame(st.text, st.caret, env.Args[i], r, i+1, envFrame)
				return 0, st, false
			}
		}
	}
	if st.caret <= fullEnd {
		st.result = envFrame
		return 0, st, false
	}
	return fullEnd, st, true
}

// argumentFrame builds the FrameArgument layer for argument r, descending
// further into key/value layers when spec.Kind is ArgKeyVal and the caret
// sits inside one of its entries.
func argumentFrame(text string, caret int, spec texparse.Arg, r texparse.Range, index int, parent *Frame) *Frame {
	argFrame := &Frame{
		Kind: FrameArgument, Pos: r.Pos, Len: r.Len, Parent: parent,
		Name: spec.DisplayName, ArgIndex: index, Data: spec,
	}
	if spec.Kind != texparse.ArgKeyVal {
		return argFrame
	}

	for _, kv := range texparse.ParseKeys(text, r.Pos, r.Len) {
		keyName := kv.Key.Text(text)
		if kv.Value != nil && kv.Value.Contains(caret) {
			keyFrame := &Frame{
				Kind: FrameKeyInList, Pos: kv.Key.Pos, Len: kv.Key.Len, Parent: argFrame,
				Name: keyName, Data: findKeySchema(spec.Keys, keyName),
			}
			return &Frame{
				Kind: FrameValueInKey, Pos: kv.Value.Pos, Len: kv.Value.Len, Parent: keyFrame,
				Name: keyName, Data: findKeySchema(spec.Keys, keyName),
			}
		}
		if kv.Key.Contains(caret) {
			return &Frame{
				Kind: FrameKeyInList, Pos: kv.Key.Pos, Len: kv.Key.Len, Parent: argFrame,
				Name: keyName, Data: findKeySchema(spec.Keys, keyName),
			}
		}
	}
	return argFrame
}

func findKeySchema(keys []texparse.KeySchema, name string) *texparse.KeySchema {
	for i := range keys {
		if keys[i].Name == name {
			return &keys[i]
		}
	}
	return nil
}
