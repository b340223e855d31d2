package convert

import (
	"github.com/dshills/dataprotocol/internal/host"
	"github.com/dshills/dataprotocol/internal/optional"
	"github.com/dshills/dataprotocol/internal/protocol"
	"go.lsp.dev/uri"
)

// URIEncoder renders a host URI for the wire.
type URIEncoder func(uri.URI) string

// CodeConverter converts host values to protocol values.
type CodeConverter struct {
	uri URIEncoder
}

// NewCodeConverter returns a converter using enc for URIs. A nil enc uses
// the URI's string form.
func NewCodeConverter(enc URIEncoder) *CodeConverter {
	if enc == nil {
		enc = func(u uri.URI) string { return string(u) }
	}
	return &CodeConverter{uri: enc}
}

// AsURI encodes u.
func (c *CodeConverter) AsURI(u uri.URI) string {
	return c.uri(u)
}

// AsTextDocumentIdentifier identifies doc.
func (c *CodeConverter) AsTextDocumentIdentifier(doc host.TextDocument) protocol.TextDocumentIdentifier {
	return protocol.TextDocumentIdentifier{URI: protocol.DocumentURI(c.uri(doc.URI()))}
}

// AsOpenTextDocumentParams builds textDocument/didOpen parameters.
func (c *CodeConverter) AsOpenTextDocumentParams(doc host.TextDocument) protocol.DidOpenTextDocumentParams {
	return protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        protocol.DocumentURI(c.uri(doc.URI())),
			LanguageID: doc.LanguageID(),
			Version:    doc.Version(),
			Text:       doc.Text(),
		},
	}
}

// AsChangeTextDocumentParams builds incremental textDocument/didChange
// parameters from a change event.
func (c *CodeConverter) AsChangeTextDocumentParams(ev host.TextDocumentChangeEvent) protocol.DidChangeTextDocumentParams {
	changes := make([]protocol.TextDocumentContentChangeEvent, 0, len(ev.ContentChanges))
	for _, ch := range ev.ContentChanges {
		rng := c.asRange(ch.Range)
		length := ch.RangeLength
		changes = append(changes, protocol.TextDocumentContentChangeEvent{
			Range:       &rng,
			RangeLength: &length,
			Text:        ch.Text,
		})
	}
	return protocol.DidChangeTextDocumentParams{
		TextDocument:   c.asVersionedIdentifier(ev.Document),
		ContentChanges: changes,
	}
}

// AsFullChangeTextDocumentParams builds textDocument/didChange parameters
// carrying the whole document text.
func (c *CodeConverter) AsFullChangeTextDocumentParams(doc host.TextDocument) protocol.DidChangeTextDocumentParams {
	return protocol.DidChangeTextDocumentParams{
		TextDocument:   c.asVersionedIdentifier(doc),
		ContentChanges: []protocol.TextDocumentContentChangeEvent{{Text: doc.Text()}},
	}
}

func (c *CodeConverter) asVersionedIdentifier(doc host.TextDocument) protocol.VersionedTextDocumentIdentifier {
	return protocol.VersionedTextDocumentIdentifier{
		TextDocumentIdentifier: c.AsTextDocumentIdentifier(doc),
		Version:                doc.Version(),
	}
}

// AsCloseTextDocumentParams builds textDocument/didClose parameters.
func (c *CodeConverter) AsCloseTextDocumentParams(doc host.TextDocument) protocol.DidCloseTextDocumentParams {
	return protocol.DidCloseTextDocumentParams{TextDocument: c.AsTextDocumentIdentifier(doc)}
}

// AsSaveTextDocumentParams builds textDocument/didSave parameters.
func (c *CodeConverter) AsSaveTextDocumentParams(doc host.TextDocument) protocol.DidSaveTextDocumentParams {
	return protocol.DidSaveTextDocumentParams{TextDocument: c.AsTextDocumentIdentifier(doc)}
}

// AsTextDocumentPositionParams pairs doc with pos.
func (c *CodeConverter) AsTextDocumentPositionParams(doc host.TextDocument, pos host.Position) protocol.TextDocumentPositionParams {
	return protocol.TextDocumentPositionParams{
		TextDocument: c.AsTextDocumentIdentifier(doc),
		Position:     c.AsWorkerPosition(pos),
	}
}

// AsWorkerPosition converts a position that is always present.
func (c *CodeConverter) AsWorkerPosition(pos host.Position) protocol.Position {
	return protocol.Position{Line: pos.Line, Character: pos.Character}
}

// AsPosition converts an optional position, keeping absent and null.
func (c *CodeConverter) AsPosition(v optional.Value[host.Position]) optional.Value[protocol.Position] {
	return optional.Map(v, c.AsWorkerPosition)
}

// AsRange converts an optional range, keeping absent and null.
func (c *CodeConverter) AsRange(v optional.Value[host.Range]) optional.Value[protocol.Range] {
	return optional.Map(v, c.asRange)
}

func (c *CodeConverter) asRange(r host.Range) protocol.Range {
	return protocol.Range{Start: c.AsWorkerPosition(r.Start), End: c.AsWorkerPosition(r.End)}
}

// AsDiagnosticSeverity maps the zero-based host severity to the wire.
// Unknown values map to 0, which is omitted on the wire.
func (c *CodeConverter) AsDiagnosticSeverity(s host.DiagnosticSeverity) protocol.DiagnosticSeverity {
	switch s {
	case host.SeverityError:
		return protocol.DiagnosticSeverityError
	case host.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	case host.SeverityInformation:
		return protocol.DiagnosticSeverityInformation
	case host.SeverityHint:
		return protocol.DiagnosticSeverityHint
	}
	return 0
}

// AsDiagnostic converts a diagnostic.
func (c *CodeConverter) AsDiagnostic(d host.Diagnostic) protocol.Diagnostic {
	return protocol.Diagnostic{
		Range:    c.asRange(d.Range),
		Message:  d.Message,
		Severity: c.AsDiagnosticSeverity(d.Severity),
		Code:     d.Code,
		Source:   d.Source,
	}
}

// AsDiagnostics converts a list; nil stays nil.
func (c *CodeConverter) AsDiagnostics(items []host.Diagnostic) []protocol.Diagnostic {
	if items == nil {
		return nil
	}
	out := make([]protocol.Diagnostic, len(items))
	for i, d := range items {
		out[i] = c.AsDiagnostic(d)
	}
	return out
}

// AsCompletionItem converts a completion item. Server data attached to the
// item is passed back unchanged.
func (c *CodeConverter) AsCompletionItem(item host.CompletionItem) protocol.CompletionItem {
	out := protocol.CompletionItem{
		Label:         item.Label,
		Detail:        item.Detail,
		Documentation: item.Documentation,
		FilterText:    item.FilterText,
		InsertText:    item.InsertText,
		SortText:      item.SortText,
		Data:          item.ProtocolData,
	}
	if item.Kind != nil {
		out.Kind = protocol.CompletionItemKind(*item.Kind + 1)
	}
	if item.TextEdit != nil {
		te := c.AsTextEdit(*item.TextEdit)
		out.TextEdit = &te
	}
	if item.AdditionalTextEdits != nil {
		out.AdditionalTextEdits = c.AsTextEdits(item.AdditionalTextEdits)
	}
	if item.Command != nil {
		cmd := c.AsCommand(*item.Command)
		out.Command = &cmd
	}
	return out
}

// AsTextEdit converts an edit.
func (c *CodeConverter) AsTextEdit(edit host.TextEdit) protocol.TextEdit {
	return protocol.TextEdit{Range: c.asRange(edit.Range), NewText: edit.NewText}
}

// AsTextEdits converts a list; nil stays nil.
func (c *CodeConverter) AsTextEdits(edits []host.TextEdit) []protocol.TextEdit {
	if edits == nil {
		return nil
	}
	out := make([]protocol.TextEdit, len(edits))
	for i, e := range edits {
		out[i] = c.AsTextEdit(e)
	}
	return out
}

// AsReferenceParams builds textDocument/references parameters.
func (c *CodeConverter) AsReferenceParams(doc host.TextDocument, pos host.Position, includeDeclaration bool) protocol.ReferenceParams {
	return protocol.ReferenceParams{
		TextDocumentPositionParams: c.AsTextDocumentPositionParams(doc, pos),
		Context:                    protocol.ReferenceContext{IncludeDeclaration: includeDeclaration},
	}
}

// AsCodeActionContext wraps the diagnostics of a code action request.
func (c *CodeConverter) AsCodeActionContext(diagnostics []host.Diagnostic) protocol.CodeActionContext {
	ds := c.AsDiagnostics(diagnostics)
	if ds == nil {
		ds = []protocol.Diagnostic{}
	}
	return protocol.CodeActionContext{Diagnostics: ds}
}

// AsCommand converts a command.
func (c *CodeConverter) AsCommand(cmd host.Command) protocol.Command {
	return protocol.Command{Title: cmd.Title, Command: cmd.Command, Arguments: cmd.Arguments}
}

// AsCodeLens converts a code lens, keeping the server's data.
func (c *CodeConverter) AsCodeLens(lens host.CodeLens) protocol.CodeLens {
	out := protocol.CodeLens{Range: c.asRange(lens.Range), Data: lens.ProtocolData}
	if lens.Command != nil {
		cmd := c.AsCommand(*lens.Command)
		out.Command = &cmd
	}
	return out
}

// AsFormattingOptions converts formatting options.
func (c *CodeConverter) AsFormattingOptions(opts host.FormattingOptions) protocol.FormattingOptions {
	return protocol.FormattingOptions{TabSize: opts.TabSize, InsertSpaces: opts.InsertSpaces}
}

// AsDocumentSymbolParams builds textDocument/documentSymbol parameters.
func (c *CodeConverter) AsDocumentSymbolParams(doc host.TextDocument) protocol.DocumentSymbolParams {
	return protocol.DocumentSymbolParams{TextDocument: c.AsTextDocumentIdentifier(doc)}
}

// AsCodeLensParams builds textDocument/codeLens parameters.
func (c *CodeConverter) AsCodeLensParams(doc host.TextDocument) protocol.CodeLensParams {
	return protocol.CodeLensParams{TextDocument: c.AsTextDocumentIdentifier(doc)}
}

// AsDocumentLink converts a link. An empty target is omitted.
func (c *CodeConverter) AsDocumentLink(link host.DocumentLink) protocol.DocumentLink {
	out := protocol.DocumentLink{Range: c.asRange(link.Range)}
	if link.Target != "" {
		out.Target = c.uri(link.Target)
	}
	return out
}

// AsDocumentLinkParams builds textDocument/documentLink parameters.
func (c *CodeConverter) AsDocumentLinkParams(doc host.TextDocument) protocol.DocumentLinkParams {
	return protocol.DocumentLinkParams{TextDocument: c.AsTextDocumentIdentifier(doc)}
}
