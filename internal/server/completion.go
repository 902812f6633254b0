package server

import (
	"github.com/shinyvision/texls/internal/query"
	"github.com/shinyvision/texls/internal/utils"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func (s *Server) onCompletion(_ *glsp.Context, p *protocol.CompletionParams) (any, error) {
	filename := utils.UriToPath(string(p.TextDocument.URI))
	pos, err := s.toOffset(filename, p.Position)
	if err != nil {
		return nil, nil
	}

	root, node := s.resolveManuscript(filename)
	result, ok := query.Complete(node, root, pos, s.config.SearchPaths)
	if !ok || len(result.Candidates) == 0 {
		return nil, nil
	}

	start, err := s.toPosition(filename, result.Pos-len(result.Prefix))
	if err != nil {
		return nil, nil
	}
	end, err := s.toPosition(filename, result.Pos)
	if err != nil {
		return nil, nil
	}
	editRange := protocol.Range{Start: start, End: end}

	items := make([]protocol.CompletionItem, len(result.Candidates))
	for i, c := range result.Candidates {
		kind := completionKind(c.Detail)
		detail := c.Detail
		newText := c.Text
		format := protocol.InsertTextFormatPlainText
		if c.Snippet != "" {
			newText = c.Snippet
			format = protocol.InsertTextFormatSnippet
		}
		item := protocol.CompletionItem{
			Label:            c.Text,
			Kind:             &kind,
			Detail:           &detail,
			FilterText:       &c.FilterText,
			InsertTextFormat: &format,
			TextEdit: &protocol.TextEdit{
				Range:   editRange,
				NewText: newText,
			},
		}
		if c.Summary != "" {
			item.Documentation = protocol.MarkupContent{
				Kind:  protocol.MarkupKindMarkdown,
				Value: c.Summary,
			}
		}
		items[i] = item
	}
	return items, nil
}

func completionKind(detail string) protocol.CompletionItemKind {
	switch detail {
	case "environment":
		return protocol.CompletionItemKindModule
	case "key":
		return protocol.CompletionItemKindProperty
	case "value":
		return protocol.CompletionItemKindEnumMember
	case "label", "bibitem":
		return protocol.CompletionItemKindReference
	case "file":
		return protocol.CompletionItemKindFile
	default:
		return protocol.CompletionItemKindFunction
	}
}
