package texparse

// ParseArgs consumes the argument list for a control sequence whose name
// has already been scanned; pos is the position immediately following the
// name (and any absorbed trailing whitespace). The returned ArgList always
// has len(Args) == len(signature); an absent optional is a zero-length
// Range positioned where it would have started.
func ParseArgs(text string, pos int, signature Signature) ArgList {
	args := make([]Range, len(signature))
	firstStart := -1
	lastEnd := pos

	for i, spec := range signature {
		pos = skipHorizontalSpace(text, pos)
		var r Range

		switch spec.Kind {
		case ArgMandatory:
			r, pos = parseGroup(text, pos, '{', '}')
		case ArgOptional:
			if pos < len(text) && text[pos] == '[' {
				r, pos = parseGroup(text, pos, '[', ']')
			} else {
				r = Range{Pos: pos, Len: 0}
			}
		case ArgStar:
			if pos < len(text) && text[pos] == '*' {
				r = Range{Pos: pos, Len: 1}
				pos++
			} else {
				r = Range{Pos: pos, Len: 0}
			}
		case ArgLiteral:
			lit := spec.Delimiter
			if hasPrefixAt(text, pos, lit) {
				r = Range{Pos: pos, Len: len(lit)}
				pos += len(lit)
			} else {
				r = Range{Pos: pos, Len: 0}
			}
		case ArgKeyVal:
			open, close := byte('{'), byte('}')
			if spec.Delimiter == "[" {
				open, close = '[', ']'
			}
			if pos < len(text) && text[pos] == open {
				r, pos = parseGroup(text, pos, open, close)
			} else {
				r = Range{Pos: pos, Len: 0}
			}
		default:
			r = Range{Pos: pos, Len: 0}
		}

		args[i] = r
		if !r.Empty() {
			if firstStart == -1 {
				firstStart = r.Pos
			}
			lastEnd = r.End()
		}
	}

	if firstStart == -1 {
		return ArgList{Args: args, Pos: pos, Len: 0, Next: pos}
	}
	return ArgList{Args: args, Pos: firstStart, Len: lastEnd - firstStart, Next: pos}
}

func hasPrefixAt(text string, pos int, prefix string) bool {
	if pos+len(prefix) > len(text) {
		return false
	}
	return text[pos:pos+len(prefix)] == prefix
}

func skipHorizontalSpace(text string, pos int) int {
	for pos < len(text) && isHorizontalSpace(text[pos]) {
		pos++
	}
	return pos
}

// parseGroup consumes a balanced {open...close} group starting at pos
// (text[pos] == open), honoring nested groups of the same delimiter pair
// and backslash-escaped delimiter characters. It returns a Range over the
// group's interior (excluding the delimiters) and the position just past
// the closing delimiter. An unterminated group is closed at end-of-text
// and marked Truncated, per the malformed-input policy in §4.2.
func parseGroup(text string, pos int, open, close byte) (Range, int) {
	n := len(text)
	if pos >= n || text[pos] != open {
		return Range{Pos: pos, Len: 0}, pos
	}
	depth := 1
	i := pos + 1
	innerStart := i
	for i < n {
		c := text[i]
		switch {
		case c == '\\' && i+1 < n:
			i += 2
			continue
		case c == open && open != close:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return Range{Pos: innerStart, Len: i - innerStart}, i + 1
			}
		}
		i++
	}
	return Range{Pos: innerStart, Len: n - innerStart, Truncated: true}, n
}
