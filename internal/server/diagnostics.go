package server

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"hxlsp/internal/tags"
)

// publishConflicts turns duplicate-tag conflicts into warning diagnostics at
// each duplicate's own span and publishes them grouped per document. When
// uri is non-empty a (possibly empty) set is always published for it, so a
// fixed duplicate clears its stale warning.
func (s *Server) publishConflicts(context *glsp.Context, conflicts []tags.Tag, uri string) {
	grouped := make(map[string][]protocol.Diagnostic)
	if uri != "" {
		grouped[uri] = []protocol.Diagnostic{}
	}

	severity := protocol.DiagnosticSeverityWarning
	source := lsName
	for _, tag := range conflicts {
		target, ok := s.workspace.URI(tag.File)
		if !ok {
			continue
		}
		grouped[target] = append(grouped[target], protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: tag.Line, Character: tag.Start},
				End:   protocol.Position{Line: tag.Line, Character: tag.End},
			},
			Severity: &severity,
			Source:   &source,
			Message:  "tag " + tag.Name + " already exists",
		})
	}

	for target, diagnostics := range grouped {
		context.Notify("textDocument/publishDiagnostics", protocol.PublishDiagnosticsParams{
			URI:         target,
			Diagnostics: diagnostics,
		})
	}
}
