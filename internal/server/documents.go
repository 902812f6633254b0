package server

import (
	"errors"

	"github.com/shinyvision/texls/internal/core"
	"github.com/shinyvision/texls/internal/utils"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func (s *Server) didOpen(_ *glsp.Context, p *protocol.DidOpenTextDocumentParams) error {
	filename := utils.UriToPath(string(p.TextDocument.URI))
	format := s.formatFor(p.TextDocument.LanguageID)

	s.cache.Put(filename, p.TextDocument.Text)
	s.cache.PutProperty(filename, "format", format)
	s.registry.GetManuscript(filename, format)
	s.registry.MarkOpen(filename, format)
	return nil
}

func (s *Server) didChange(_ *glsp.Context, p *protocol.DidChangeTextDocumentParams) error {
	filename := utils.UriToPath(string(p.TextDocument.URI))
	format := s.storedFormat(filename)

	changes := make([]core.Change, 0, len(p.ContentChanges))
	for _, c := range p.ContentChanges {
		switch ch := c.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			s.cache.Put(filename, ch.Text)
			changes = nil
		case protocol.TextDocumentContentChangeEvent:
			rangeLength := 0
			if ch.RangeLength != nil {
				rangeLength = int(*ch.RangeLength)
			}
			changes = append(changes, core.Change{
				StartLine:   int(ch.Range.Start.Line) + 1,
				StartCol:    int(ch.Range.Start.Character) + 1,
				EndLine:     int(ch.Range.End.Line) + 1,
				EndCol:      int(ch.Range.End.Character) + 1,
				RangeLength: rangeLength,
				Text:        ch.Text,
			})
		}
	}

	if len(changes) > 0 {
		if err := s.cache.ApplyChanges(filename, changes); err != nil {
			if errors.Is(err, core.ErrRangeMismatch) {
				commonlog.GetLoggerf("texls.server").Warningf(
					"rangeMismatch applying change to %q: resync required", filename)
			}
			return err
		}
	}

	if root, ok := s.cache.GetRootname(filename); ok {
		s.registry.GetManuscript(root, format).Refresh()
		return nil
	}
	s.registry.GetManuscript(filename, format).Refresh()
	return nil
}

func (s *Server) didClose(_ *glsp.Context, p *protocol.DidCloseTextDocumentParams) error {
	filename := utils.UriToPath(string(p.TextDocument.URI))
	s.cache.Forget(filename)
	s.registry.Invalidate(filename)
	return nil
}

func (s *Server) formatFor(languageID string) string {
	if languageID != "" {
		return languageID
	}
	return s.config.Format
}

// storedFormat returns the format recorded for filename at did_open time,
// falling back to the server's configured default.
func (s *Server) storedFormat(filename string) string {
	if f, ok := s.cache.GetProperty(filename, "format"); ok {
		if str, ok := f.(string); ok {
			return str
		}
	}
	return s.config.Format
}

// resolveManuscript returns the root Manuscript of filename's include
// graph and the specific node representing filename within it. A file
// never recorded as someone else's child (§4.4, Children) is treated as
// its own root.
func (s *Server) resolveManuscript(filename string) (root, node *core.Manuscript) {
	format := s.storedFormat(filename)

	rootName, ok := s.cache.GetRootname(filename)
	if !ok {
		rootName = filename
	}
	root = s.registry.GetManuscript(rootName, format)
	node = root.Find(filename)
	if node == nil {
		node = root
	}
	return root, node
}
