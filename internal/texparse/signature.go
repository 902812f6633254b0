package texparse

// ArgKind identifies the shape of one formal argument in a Signature.
type ArgKind int

const (
	// ArgMandatory is a brace group: {...}.
	ArgMandatory ArgKind = iota
	// ArgOptional is a bracket group: [...], which may be entirely absent.
	ArgOptional
	// ArgStar is an optional literal "*" immediately following the name.
	ArgStar
	// ArgKeyVal is a key=value list, itself inside a brace or bracket
	// group per Delimiter.
	ArgKeyVal
	// ArgLiteral is a fixed delimiter string that must match verbatim
	// (e.g. the "to" in \newcommand's rarely-used friends). Its slot's
	// Range covers the matched literal, or is zero-length when absent.
	ArgLiteral
)

// KeySchema describes one recognized key in a key=value argument, enabling
// the query layer to offer key and value completions (§4.6).
type KeySchema struct {
	Name          string
	Documentation string
	// Values, if non-empty, enumerates the completions offered for this
	// key's value position.
	Values []string
}

// Arg is one formal argument declared by a Signature.
type Arg struct {
	Kind ArgKind
	// DisplayName names the argument for hover/signature-help rendering.
	DisplayName string
	Documentation string
	// Delimiter is the fixed text ArgLiteral must match, or the bracket
	// used to wrap an ArgKeyVal group ("{" or "[").
	Delimiter string
	// Keys is the nested schema for ArgKeyVal arguments.
	Keys []KeySchema
}

// Signature is the ordered list of formal arguments a command or
// environment-open declares.
type Signature []Arg

// ArgList is the result of ParseArgs: one Range per signature entry, plus
// the span of the whole argument list for convenience.
type ArgList struct {
	Args []Range
	// Pos and Len describe the span from the first present argument's
	// start to the last present argument's end (content only, excluding
	// delimiters). When the signature is empty or nothing was found, Len
	// is zero and Pos equals Next.
	Pos int
	Len int
	// Next is the true resume cursor: the byte offset just past the last
	// consumed delimiter (e.g. past a mandatory argument's closing "}"),
	// unlike End() which stops at the content's own end. Callers that
	// need to keep parsing immediately after this argument list — a
	// nested environment signature, the next callback in a scan — must
	// resume from Next, not End().
	Next int
}

func (a ArgList) End() int { return a.Pos + a.Len }
