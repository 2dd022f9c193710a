package server

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"hxlsp/internal/config"
	"hxlsp/internal/htmx"
	"hxlsp/internal/position"
	"hxlsp/internal/store"
	"hxlsp/internal/workspace"
)

func (s *Server) initialize(
	context *glsp.Context,
	params *protocol.InitializeParams,
) (any, error) {
	if params.RootPath != nil {
		s.root = workspace.URIToPath(*params.RootPath)
	}

	cfg, err := config.Load(params.InitializationOptions)
	if err == nil {
		err = s.workspace.Configure(cfg)
	}
	if err != nil {
		// Degraded mode: hover and completion keep working, the tag
		// registry stays empty. Reported once, in initialized.
		s.configErr = err
	}

	capabilities := s.handler.CreateServerCapabilities()

	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &protocol.True,
		Change:    &syncKind,
		Save:      &protocol.SaveOptions{IncludeText: &protocol.True},
	}
	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{"-", "\"", " "},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &version,
		},
	}, nil
}

func (s *Server) initialized(
	context *glsp.Context,
	params *protocol.InitializedParams,
) error {
	if s.configErr != nil {
		logMessage(context, protocol.MessageTypeWarning, "hxlsp: "+s.configErr.Error())
		return nil
	}

	s.openStore()

	conflicts, err := s.workspace.Scan()
	if err != nil {
		logMessage(context, protocol.MessageTypeError, "hxlsp: "+err.Error())
	}
	s.publishConflicts(context, conflicts, "")
	log.Printf("initial scan done, %d duplicate tags", len(conflicts))
	return nil
}

// openStore attaches the persistent tag index under the project root. The
// server works without it; failures only cost warm restarts.
func (s *Server) openStore() {
	if s.root == "" {
		return
	}
	dir := filepath.Join(s.root, ".hxlsp")
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Println("failed to create state directory:", err)
		return
	}
	st, err := store.Open(filepath.Join(dir, "index.db"))
	if err != nil {
		log.Println("failed to open tag store:", err)
		return
	}
	s.workspace.SetStore(st)
}

func (s *Server) shutdown(context *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(context *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(
	context *glsp.Context,
	params *protocol.DidOpenTextDocumentParams,
) error {
	uri := params.TextDocument.URI
	conflicts := s.workspace.OnEdit(uri, []byte(params.TextDocument.Text))
	s.publishConflicts(context, conflicts, uri)
	return nil
}

func (s *Server) textDocumentDidChange(
	context *glsp.Context,
	params *protocol.DidChangeTextDocumentParams,
) error {
	uri := params.TextDocument.URI
	for _, change := range params.ContentChanges {
		switch contentChange := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			conflicts := s.workspace.OnEdit(uri, []byte(contentChange.Text))
			s.publishConflicts(context, conflicts, uri)
		case protocol.TextDocumentContentChangeEvent:
			// We advertise full sync, so ranged events are unexpected.
			log.Println("ignoring incremental change for", uri)
		}
	}
	return nil
}

func (s *Server) textDocumentDidSave(
	context *glsp.Context,
	params *protocol.DidSaveTextDocumentParams,
) error {
	uri := params.TextDocument.URI
	if params.Text != nil {
		s.workspace.OnEdit(uri, []byte(*params.Text))
	}
	conflicts := s.workspace.OnSave(uri)
	s.publishConflicts(context, conflicts, uri)
	return nil
}

func (s *Server) textDocumentDidClose(
	context *glsp.Context,
	params *protocol.DidCloseTextDocumentParams,
) error {
	return nil
}

func (s *Server) textDocumentCompletion(
	context *glsp.Context,
	params *protocol.CompletionParams,
) (any, error) {
	uri := params.TextDocument.URI
	point := toPoint(params.Position)

	result := s.workspace.Resolve(uri, point, position.Completion)
	switch pos := result.(type) {
	case position.AttributeName:
		if strings.HasPrefix(pos.Name, "hx-") || pos.Name == position.FreshName {
			return attributeCompletions(), nil
		}
	case position.AttributeValue:
		if entries, ok := htmx.Values[pos.Name]; ok {
			return valueCompletions(entries), nil
		}
	}
	return nil, nil
}

func (s *Server) textDocumentHover(
	context *glsp.Context,
	params *protocol.HoverParams,
) (*protocol.Hover, error) {
	uri := params.TextDocument.URI
	point := toPoint(params.Position)

	result := s.workspace.Resolve(uri, point, position.Hover)
	switch pos := result.(type) {
	case position.AttributeName:
		if entry, ok := htmx.Attribute(pos.Name); ok {
			return markdownHover(entry.Desc), nil
		}
	case position.AttributeValue:
		if entry, ok := htmx.Value(pos.Name, pos.Value); ok {
			return markdownHover(entry.Desc), nil
		}
	}
	return nil, nil
}

func (s *Server) textDocumentDefinition(
	context *glsp.Context,
	params *protocol.DefinitionParams,
) (any, error) {
	uri := params.TextDocument.URI
	point := toPoint(params.Position)

	loc, ok := s.workspace.Definition(uri, point)
	if !ok {
		return nil, nil
	}
	return protocol.Location{
		URI: loc.URI,
		Range: protocol.Range{
			Start: protocol.Position{Line: loc.Tag.Line, Character: loc.Tag.Start},
			End:   protocol.Position{Line: loc.Tag.Line, Character: loc.Tag.End},
		},
	}, nil
}

func toPoint(pos protocol.Position) sitter.Point {
	return sitter.Point{Row: pos.Line, Column: pos.Character}
}

func markdownHover(desc string) *protocol.Hover {
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: desc,
		},
	}
}

func attributeCompletions() []protocol.CompletionItem {
	kind := protocol.CompletionItemKindText
	items := make([]protocol.CompletionItem, 0, len(htmx.Attributes))
	for _, entry := range htmx.Attributes {
		desc := entry.Desc
		items = append(items, protocol.CompletionItem{
			Label:  entry.Name,
			Detail: &desc,
			Kind:   &kind,
		})
	}
	return items
}

func valueCompletions(entries []htmx.Entry) []protocol.CompletionItem {
	kind := protocol.CompletionItemKindText
	items := make([]protocol.CompletionItem, 0, len(entries))
	for _, entry := range entries {
		desc := entry.Desc
		items = append(items, protocol.CompletionItem{
			Label:  entry.Name,
			Detail: &desc,
			Kind:   &kind,
		})
	}
	return items
}

func logMessage(context *glsp.Context, kind protocol.MessageType, message string) {
	context.Notify("window/logMessage", protocol.LogMessageParams{
		Type:    kind,
		Message: message,
	})
	log.Println(message)
}
