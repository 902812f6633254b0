package server

import protocol "github.com/tliron/glsp/protocol_3_16"

// toOffset converts an LSP position (0-based line, 0-based UTF-8
// codepoint character per §6) into a byte offset into filename's cached
// text via the FileCache's 1-based line/column convention.
func (s *Server) toOffset(filename string, pos protocol.Position) (int, error) {
	return s.cache.GetPosition(filename, int(pos.Line)+1, int(pos.Character)+1)
}

// toPosition is the inverse of toOffset, used to place a completion
// textEdit's range back at the wire boundary.
func (s *Server) toPosition(filename string, offset int) (protocol.Position, error) {
	line, col, err := s.cache.GetLineCol(filename, offset)
	if err != nil {
		return protocol.Position{}, err
	}
	return protocol.Position{Line: uint32(line - 1), Character: uint32(col - 1)}, nil
}
