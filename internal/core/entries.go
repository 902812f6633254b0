package core

// Entry is one position-ordered record produced by the global scan:
// labels, bibitems, input references, and section headings are all
// represented this way (§3 "each an ordered list of {pos, name, …}
// records ordered by pos").
type Entry struct {
	Pos  int
	Name string
	// Raw is the un-resolved text as written in the source (e.g. the
	// literal \input{…} argument before template/extension resolution).
	Raw string
}

// OutlineNode is one heading in the nested outline tree (§3 glossary).
// Invariant: every descendant's Level is strictly greater than its
// ancestor's (§3 "Outline nesting invariant").
type OutlineNode struct {
	Pos      int
	Level    int
	Title    string
	Children []*OutlineNode
}
