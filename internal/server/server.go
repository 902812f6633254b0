// Package server is the protocol shell: it wires LSP lifecycle and
// document-sync notifications, plus hover/signatureHelp/completion
// requests, onto the core (Manuscript scanning) and query (completion,
// hover, signature help) packages.
package server

import (
	"github.com/shinyvision/texls/internal/config"
	"github.com/shinyvision/texls/internal/core"
	"github.com/shinyvision/texls/internal/dict"
	"github.com/shinyvision/texls/internal/utils"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"
)

const lsName = "texls"

var version = "0.1.0"

type Server struct {
	config   *config.Config
	cache    *core.FileCache
	loader   *dict.Loader
	registry *core.Registry
	h        protocol.Handler
}

func NewServer() *Server {
	cfg := config.NewConfig()
	cache := core.NewFileCache()
	s := &Server{
		config: cfg,
		cache:  cache,
	}
	s.h = protocol.Handler{
		Initialize:                s.initialize,
		Initialized:               s.initialized,
		Shutdown:                  s.shutdown,
		SetTrace:                  s.setTrace,
		TextDocumentDidOpen:       s.didOpen,
		TextDocumentDidChange:     s.didChange,
		TextDocumentDidClose:      s.didClose,
		TextDocumentHover:         s.onHover,
		TextDocumentSignatureHelp: s.onSignatureHelp,
		TextDocumentCompletion:    s.onCompletion,
	}
	return s
}

func (s *Server) Run() {
	server := glspserver.NewServer(&s.h, lsName, false)
	server.RunStdio()
}

func (s *Server) initialize(_ *glsp.Context, params *protocol.InitializeParams) (any, error) {
	caps := s.h.CreateServerCapabilities()
	openClose := true
	change := protocol.TextDocumentSyncKindIncremental
	caps.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &openClose,
		Change:    &change,
	}
	caps.HoverProvider = true
	caps.SignatureHelpProvider = &protocol.SignatureHelpOptions{
		TriggerCharacters: []string{"{", "["},
	}
	caps.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{"\\", "{", "[", "="},
	}

	if params.RootURI != nil {
		s.config.WorkspaceRoot = utils.UriToPath(*params.RootURI)
	} else if len(params.WorkspaceFolders) > 0 {
		s.config.WorkspaceRoot = utils.UriToPath(params.WorkspaceFolders[0].URI)
	} else {
		s.config.WorkspaceRoot = "."
	}

	if params.InitializationOptions != nil {
		s.config.LoadFromInitializationOptions(params.InitializationOptions)
	}

	s.loader = dict.NewLoader(s.config.DictionaryDirs...)
	s.registry = core.NewRegistry(s.cache, s.loader, s.config.RegistryMax)

	commonlog.GetLoggerf("texls.server").Infof(
		"initialized: root=%q format=%q", s.config.WorkspaceRoot, s.config.Format)

	return protocol.InitializeResult{
		Capabilities: caps,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &version,
		},
	}, nil
}

func (s *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error { return nil }
func (s *Server) shutdown(_ *glsp.Context) error                                   { return nil }
func (s *Server) setTrace(_ *glsp.Context, p *protocol.SetTraceParams) error {
	protocol.SetTraceValue(p.Value)
	return nil
}
