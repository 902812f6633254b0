package texparse

// KeyValue is one parsed entry from a key=value list: Value is nil when
// the key was given without "=value" (a boolean-style flag key).
type KeyValue struct {
	Key   Range
	Value *Range
}

// ParseKeys parses a comma-separated key[=value] list within
// text[pos : pos+len]. Whitespace around keys, '=', and ',' is ignored.
// Braces nested inside a value are honored so that commas and '=' inside
// them do not split the value early.
func ParseKeys(text string, pos, length int) []KeyValue {
	end := pos + length
	if end > len(text) {
		end = len(text)
	}
	var out []KeyValue
	i := pos

	for i < end {
		i = skipKeyValSpace(text, i, end)
		if i >= end {
			break
		}
		keyStart := i
		for i < end && text[i] != '=' && text[i] != ',' {
			i++
		}
		keyEnd := trimEnd(text, keyStart, i)
		if keyEnd == keyStart {
			// Nothing but a stray comma; skip it.
			if i < end && text[i] == ',' {
				i++
			}
			continue
		}
		key := Range{Pos: keyStart, Len: keyEnd - keyStart}

		if i < end && text[i] == '=' {
			i++
			i = skipKeyValSpace(text, i, end)
			valStart := i
			depth := 0
			for i < end {
				c := text[i]
				if c == '\\' && i+1 < end {
					i += 2
					continue
				}
				if c == '{' {
					depth++
				} else if c == '}' && depth > 0 {
					depth--
				} else if c == ',' && depth == 0 {
					break
				}
				i++
			}
			valEnd := trimEnd(text, valStart, i)
			v := Range{Pos: valStart, Len: valEnd - valStart}
			out = append(out, KeyValue{Key: key, Value: &v})
		} else {
			out = append(out, KeyValue{Key: key})
		}

		if i < end && text[i] == ',' {
			i++
		}
	}

	return out
}

func skipKeyValSpace(text string, pos, end int) int {
	for pos < end && isSpace(text[pos]) {
		pos++
	}
	return pos
}

func trimEnd(text string, start, end int) int {
	for end > start && isSpace(text[end-1]) {
		end--
	}
	return end
}
