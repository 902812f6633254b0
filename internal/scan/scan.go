// Package scan implements the generic callback-driven traversal reused,
// verbatim, by both the global and local scan modes (spec.md §4.4-4.5,
// §9 "Callback-driven scan with tail-chained state"). The package itself
// knows nothing about TeX semantics — it only drives texparse.NextThing
// forward and dispatches to whichever callback is registered for the
// classification the caller assigns each token.
package scan

import "github.com/shinyvision/texls/internal/texparse"

// Callback is invoked when a token's classification has a registered
// handler. It receives the token's start position, its control-sequence
// detail (empty for non-cs tokens), and the running state, and returns the
// position to resume scanning from plus the updated state. Returning
// ok=false stops the scan; its returned state becomes Run's result —
// this is the "explicit loop carrying a small state tuple" called for in
// §9, since Go has no guaranteed tail-call elimination to lean on.
type Callback func(pos1 int, detail string, state any) (nextPos int, newState any, ok bool)

// Classify maps a token to a dispatch key. An empty key means "no
// registered callback could apply"; Run then simply resumes from the
// token's Pos2, exactly as spec.md describes for an absent callback.
type Classify func(tok texparse.Token) (key string)

// Run drives the traversal: at each step it calls texparse.NextThing,
// classifies the token, and if a callback is registered for that
// classification, invokes it. Scanning stops when NextThing reaches
// end-of-text or a callback returns ok=false.
func Run(text string, startPos int, classify Classify, callbacks map[string]Callback, state any) any {
	pos := startPos
	for {
		tok, ok := texparse.NextThing(text, pos)
		if !ok {
			return state
		}

		key := classify(tok)
		cb, hasCallback := callbacks[key]
		if key == "" || !hasCallback {
			pos = tok.Pos2
			continue
		}

		nextPos, newState, cont := cb(tok.Pos1, tok.Detail, state)
		state = newState
		if !cont {
			return state
		}
		pos = nextPos
	}
}
