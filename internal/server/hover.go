package server

import (
	"github.com/shinyvision/texls/internal/query"
	"github.com/shinyvision/texls/internal/utils"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func (s *Server) onHover(_ *glsp.Context, p *protocol.HoverParams) (*protocol.Hover, error) {
	filename := utils.UriToPath(string(p.TextDocument.URI))
	pos, err := s.toOffset(filename, p.Position)
	if err != nil {
		return nil, nil
	}

	root, node := s.resolveManuscript(filename)
	help, ok := query.GetHelp(node, root, pos)
	if !ok {
		return nil, nil
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: renderHover(help),
		},
	}, nil
}

func renderHover(h query.Help) string {
	text := "**" + h.Text + "**"
	if h.Detail == "" {
		return text
	}
	return text + "\n\n" + h.Detail
}
