// Package server exposes the workspace over the Language Server Protocol.
package server

import (
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"hxlsp/internal/workspace"
)

const lsName = "hxlsp"

var version = "0.1.0"

type Server struct {
	root      string
	handler   *protocol.Handler
	workspace *workspace.Workspace
	configErr error
}

func NewServer() (*server.Server, error) {
	ws, err := workspace.New()
	if err != nil {
		return nil, err
	}

	ls := &Server{workspace: ws}
	ls.handler = &protocol.Handler{
		Initialize:             ls.initialize,
		Initialized:            ls.initialized,
		Shutdown:               ls.shutdown,
		SetTrace:               ls.setTrace,
		TextDocumentDidOpen:    ls.textDocumentDidOpen,
		TextDocumentDidChange:  ls.textDocumentDidChange,
		TextDocumentDidSave:    ls.textDocumentDidSave,
		TextDocumentDidClose:   ls.textDocumentDidClose,
		TextDocumentCompletion: ls.textDocumentCompletion,
		TextDocumentHover:      ls.textDocumentHover,
		TextDocumentDefinition: ls.textDocumentDefinition,
	}

	return server.NewServer(ls.handler, lsName, false), nil
}
