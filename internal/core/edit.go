package core

// Change is one incremental edit as received at the protocol boundary
// (§6): a byte range, expressed as 1-based line/codepoint-column start and
// end, the editor's declared byte length of that range (zero when the
// editor did not declare one), and the replacement text.
type Change struct {
	StartLine, StartCol int
	EndLine, EndCol     int
	RangeLength         int
	Text                string
}

// ApplyChange validates and applies a single incremental edit against
// filename's current text, returning the new full text. It does not
// mutate the cache; the caller Puts the result. A zero RangeLength is
// taken as undeclared and is not checked against the computed length.
func (c *FileCache) ApplyChange(filename string, ch Change) (string, error) {
	c.mu.Lock()
	text, ok := c.getLocked(filename)
	c.mu.Unlock()
	if !ok {
		return "", ErrUnknownFile
	}

	start, err := c.GetPosition(filename, ch.StartLine, ch.StartCol)
	if err != nil {
		return "", err
	}
	end, err := c.GetPosition(filename, ch.EndLine, ch.EndCol)
	if err != nil {
		return "", err
	}
	if end < start {
		start, end = end, start
	}
	if ch.RangeLength != 0 && end-start != ch.RangeLength {
		return "", ErrRangeMismatch
	}

	return text[:start] + ch.Text + text[end:], nil
}

// ApplyChanges applies a batch of incremental edits in order against
// filename's current text. Each validated edit is Put into the cache so
// the next edit's positions are resolved against the updated text. On the
// first error the original text is Put back, so a RangeMismatch partway
// through a batch leaves the document unchanged (§6, §8 property 2).
func (c *FileCache) ApplyChanges(filename string, changes []Change) error {
	text, ok := c.Get(filename)
	if !ok {
		return ErrUnknownFile
	}
	c.Put(filename, text) // ensure entry exists for intermediate GetPosition calls

	for _, ch := range changes {
		next, err := c.ApplyChange(filename, ch)
		if err != nil {
			c.Put(filename, text) // restore original on failure
			return err
		}
		text = next
		c.Put(filename, text)
	}
	return nil
}
