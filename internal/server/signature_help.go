package server

import (
	"github.com/shinyvision/texls/internal/query"
	"github.com/shinyvision/texls/internal/utils"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func (s *Server) onSignatureHelp(_ *glsp.Context, p *protocol.SignatureHelpParams) (*protocol.SignatureHelp, error) {
	filename := utils.UriToPath(string(p.TextDocument.URI))
	pos, err := s.toOffset(filename, p.Position)
	if err != nil {
		return nil, nil
	}

	_, node := s.resolveManuscript(filename)
	result, ok := query.SignatureHelpAt(node, pos)
	if !ok {
		return nil, nil
	}

	signatures := make([]protocol.SignatureInformation, len(result.Signatures))
	for i, sig := range result.Signatures {
		params := make([]protocol.ParameterInformation, len(sig.Parameters))
		for j, param := range sig.Parameters {
			params[j] = protocol.ParameterInformation{Label: param.Label}
			if param.Documentation != "" {
				params[j].Documentation = param.Documentation
			}
		}
		signatures[i] = protocol.SignatureInformation{
			Label:      sig.Label,
			Parameters: params,
		}
		if sig.Documentation != "" {
			signatures[i].Documentation = sig.Documentation
		}
	}

	active := uint32(0)
	help := &protocol.SignatureHelp{
		Signatures:      signatures,
		ActiveSignature: &active,
	}
	if result.ActiveParameter != nil {
		activeParam := uint32(*result.ActiveParameter)
		help.ActiveParameter = &activeParam
	}
	return help, nil
}
