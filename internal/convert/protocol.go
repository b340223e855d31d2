package convert

import (
	"encoding/json"

	"github.com/dshills/dataprotocol/internal/host"
	"github.com/dshills/dataprotocol/internal/optional"
	"github.com/dshills/dataprotocol/internal/protocol"
	"go.lsp.dev/uri"
)

// URIDecoder parses a wire URI into a host URI.
type URIDecoder func(string) (uri.URI, error)

// ProtocolConverter converts protocol values to host values.
type ProtocolConverter struct {
	uri URIDecoder
}

// NewProtocolConverter returns a converter using dec for URIs. A nil dec
// parses with uri.Parse.
func NewProtocolConverter(dec URIDecoder) *ProtocolConverter {
	if dec == nil {
		dec = uri.Parse
	}
	return &ProtocolConverter{uri: dec}
}

// AsURI decodes s.
func (p *ProtocolConverter) AsURI(s string) (uri.URI, error) {
	return p.uri(s)
}

// asURI decodes s, keeping the raw string when it does not parse.
func (p *ProtocolConverter) asURI(s string) uri.URI {
	u, err := p.uri(s)
	if err != nil {
		return uri.URI(s)
	}
	return u
}

// AsPosition converts an optional position, keeping absent and null.
func (p *ProtocolConverter) AsPosition(v optional.Value[protocol.Position]) optional.Value[host.Position] {
	return optional.Map(v, p.asPosition)
}

func (p *ProtocolConverter) asPosition(pos protocol.Position) host.Position {
	return host.Position{Line: pos.Line, Character: pos.Character}
}

// AsRange converts an optional range, keeping absent and null.
func (p *ProtocolConverter) AsRange(v optional.Value[protocol.Range]) optional.Value[host.Range] {
	return optional.Map(v, p.asRange)
}

func (p *ProtocolConverter) asRange(r protocol.Range) host.Range {
	return host.Range{Start: p.asPosition(r.Start), End: p.asPosition(r.End)}
}

// AsDiagnosticSeverity maps the wire severity to the host. Missing or
// unknown values become an error.
func (p *ProtocolConverter) AsDiagnosticSeverity(s protocol.DiagnosticSeverity) host.DiagnosticSeverity {
	switch s {
	case protocol.DiagnosticSeverityWarning:
		return host.SeverityWarning
	case protocol.DiagnosticSeverityInformation:
		return host.SeverityInformation
	case protocol.DiagnosticSeverityHint:
		return host.SeverityHint
	}
	return host.SeverityError
}

// AsDiagnostic converts a diagnostic.
func (p *ProtocolConverter) AsDiagnostic(d protocol.Diagnostic) host.Diagnostic {
	return host.Diagnostic{
		Range:    p.asRange(d.Range),
		Message:  d.Message,
		Severity: p.AsDiagnosticSeverity(d.Severity),
		Code:     d.Code,
		Source:   d.Source,
	}
}

// AsDiagnostics converts a list. A nil list becomes empty so publishing it
// clears the document.
func (p *ProtocolConverter) AsDiagnostics(items []protocol.Diagnostic) []host.Diagnostic {
	out := make([]host.Diagnostic, len(items))
	for i, d := range items {
		out[i] = p.AsDiagnostic(d)
	}
	return out
}

// AsHover converts a hover. A hover without contents becomes nil.
func (p *ProtocolConverter) AsHover(h *protocol.Hover) *host.Hover {
	if h == nil || len(h.Contents) == 0 {
		return nil
	}
	out := &host.Hover{Contents: make([]host.MarkedString, len(h.Contents))}
	for i, m := range h.Contents {
		out.Contents[i] = host.MarkedString{Language: m.Language, Value: m.Value}
	}
	if h.Range != nil {
		r := p.asRange(*h.Range)
		out.Range = &r
	}
	return out
}

// AsCompletionResult converts either a bare item array or a completion
// list. A null result yields nil.
func (p *ProtocolConverter) AsCompletionResult(raw json.RawMessage) (*host.CompletionList, error) {
	list, err := protocol.ParseCompletionResult(raw)
	if err != nil || list == nil {
		return nil, err
	}
	out := &host.CompletionList{
		IsIncomplete: list.IsIncomplete,
		Items:        make([]host.CompletionItem, len(list.Items)),
	}
	for i, item := range list.Items {
		out.Items[i] = p.AsCompletionItem(item)
	}
	return out, nil
}

// AsCompletionItem converts a completion item and keeps its data for
// resolve.
func (p *ProtocolConverter) AsCompletionItem(item protocol.CompletionItem) host.CompletionItem {
	out := host.CompletionItem{
		Label:         item.Label,
		Detail:        item.Detail,
		Documentation: item.Documentation,
		FilterText:    item.FilterText,
		InsertText:    item.InsertText,
		SortText:      item.SortText,
		ProtocolData:  item.Data,
	}
	if item.Kind > 0 {
		k := host.CompletionItemKind(item.Kind - 1)
		out.Kind = &k
	}
	if item.TextEdit != nil {
		te := p.AsTextEdit(*item.TextEdit)
		out.TextEdit = &te
	}
	if item.AdditionalTextEdits != nil {
		out.AdditionalTextEdits = p.AsTextEdits(item.AdditionalTextEdits)
	}
	if item.Command != nil {
		cmd := p.AsCommand(*item.Command)
		out.Command = &cmd
	}
	return out
}

// AsTextEdit converts an edit.
func (p *ProtocolConverter) AsTextEdit(edit protocol.TextEdit) host.TextEdit {
	return host.TextEdit{Range: p.asRange(edit.Range), NewText: edit.NewText}
}

// AsTextEdits converts a list; nil stays nil.
func (p *ProtocolConverter) AsTextEdits(edits []protocol.TextEdit) []host.TextEdit {
	if edits == nil {
		return nil
	}
	out := make([]host.TextEdit, len(edits))
	for i, e := range edits {
		out[i] = p.AsTextEdit(e)
	}
	return out
}

// AsSignatureHelp converts signature help. Missing active indexes are 0.
func (p *ProtocolConverter) AsSignatureHelp(sh *protocol.SignatureHelp) *host.SignatureHelp {
	if sh == nil {
		return nil
	}
	out := &host.SignatureHelp{Signatures: p.AsSignatureInformations(sh.Signatures)}
	if sh.ActiveSignature != nil {
		out.ActiveSignature = *sh.ActiveSignature
	}
	if sh.ActiveParameter != nil {
		out.ActiveParameter = *sh.ActiveParameter
	}
	return out
}

// AsSignatureInformations converts a list; nil stays nil.
func (p *ProtocolConverter) AsSignatureInformations(items []protocol.SignatureInformation) []host.SignatureInformation {
	if items == nil {
		return nil
	}
	out := make([]host.SignatureInformation, len(items))
	for i, s := range items {
		out[i] = p.AsSignatureInformation(s)
	}
	return out
}

// AsSignatureInformation converts one signature.
func (p *ProtocolConverter) AsSignatureInformation(s protocol.SignatureInformation) host.SignatureInformation {
	return host.SignatureInformation{
		Label:         s.Label,
		Documentation: s.Documentation,
		Parameters:    p.AsParameterInformations(s.Parameters),
	}
}

// AsParameterInformations converts a list; nil stays nil.
func (p *ProtocolConverter) AsParameterInformations(items []protocol.ParameterInformation) []host.ParameterInformation {
	if items == nil {
		return nil
	}
	out := make([]host.ParameterInformation, len(items))
	for i, pi := range items {
		out[i] = p.AsParameterInformation(pi)
	}
	return out
}

// AsParameterInformation converts one parameter.
func (p *ProtocolConverter) AsParameterInformation(pi protocol.ParameterInformation) host.ParameterInformation {
	return host.ParameterInformation{Label: pi.Label, Documentation: pi.Documentation}
}

// AsDefinitionResult converts a single location or a location array.
func (p *ProtocolConverter) AsDefinitionResult(raw json.RawMessage) ([]host.Location, error) {
	locs, err := protocol.ParseLocationResult(raw)
	if err != nil || locs == nil {
		return nil, err
	}
	return p.AsReferences(locs), nil
}

// AsLocation converts a location.
func (p *ProtocolConverter) AsLocation(loc protocol.Location) host.Location {
	return host.Location{URI: p.asURI(string(loc.URI)), Range: p.asRange(loc.Range)}
}

// AsReferences converts a location list; nil stays nil.
func (p *ProtocolConverter) AsReferences(locs []protocol.Location) []host.Location {
	if locs == nil {
		return nil
	}
	out := make([]host.Location, len(locs))
	for i, l := range locs {
		out[i] = p.AsLocation(l)
	}
	return out
}

// AsDocumentHighlights converts a list; nil stays nil.
func (p *ProtocolConverter) AsDocumentHighlights(items []protocol.DocumentHighlight) []host.DocumentHighlight {
	if items == nil {
		return nil
	}
	out := make([]host.DocumentHighlight, len(items))
	for i, h := range items {
		out[i] = p.AsDocumentHighlight(h)
	}
	return out
}

// AsDocumentHighlight converts one highlight.
func (p *ProtocolConverter) AsDocumentHighlight(h protocol.DocumentHighlight) host.DocumentHighlight {
	return host.DocumentHighlight{Range: p.asRange(h.Range), Kind: p.AsDocumentHighlightKind(h.Kind)}
}

// AsDocumentHighlightKind maps the wire kind; unknown kinds are Text.
func (p *ProtocolConverter) AsDocumentHighlightKind(k protocol.DocumentHighlightKind) host.DocumentHighlightKind {
	switch k {
	case protocol.DocumentHighlightKindRead:
		return host.HighlightRead
	case protocol.DocumentHighlightKindWrite:
		return host.HighlightWrite
	}
	return host.HighlightText
}

// AsSymbolInformations converts a list. Symbols without a location URI
// are placed in fallback.
func (p *ProtocolConverter) AsSymbolInformations(items []protocol.SymbolInformation, fallback uri.URI) []host.SymbolInformation {
	if items == nil {
		return nil
	}
	out := make([]host.SymbolInformation, len(items))
	for i, s := range items {
		out[i] = p.AsSymbolInformation(s, fallback)
	}
	return out
}

// AsSymbolInformation converts one symbol.
func (p *ProtocolConverter) AsSymbolInformation(s protocol.SymbolInformation, fallback uri.URI) host.SymbolInformation {
	u := fallback
	if s.Location.URI != "" {
		u = p.asURI(string(s.Location.URI))
	}
	return host.SymbolInformation{
		Name:          s.Name,
		ContainerName: s.ContainerName,
		Kind:          host.SymbolKind(s.Kind - 1),
		Location:      host.Location{URI: u, Range: p.asRange(s.Location.Range)},
	}
}

// AsCommand converts a command.
func (p *ProtocolConverter) AsCommand(cmd protocol.Command) host.Command {
	return host.Command{Title: cmd.Title, Command: cmd.Command, Arguments: cmd.Arguments}
}

// AsCommands converts a list; nil stays nil.
func (p *ProtocolConverter) AsCommands(items []protocol.Command) []host.Command {
	if items == nil {
		return nil
	}
	out := make([]host.Command, len(items))
	for i, c := range items {
		out[i] = p.AsCommand(c)
	}
	return out
}

// AsCodeLens converts a code lens and keeps its data for resolve.
func (p *ProtocolConverter) AsCodeLens(lens protocol.CodeLens) host.CodeLens {
	out := host.CodeLens{Range: p.asRange(lens.Range), ProtocolData: lens.Data}
	if lens.Command != nil {
		cmd := p.AsCommand(*lens.Command)
		out.Command = &cmd
	}
	return out
}

// AsCodeLenses converts a list; nil stays nil.
func (p *ProtocolConverter) AsCodeLenses(items []protocol.CodeLens) []host.CodeLens {
	if items == nil {
		return nil
	}
	out := make([]host.CodeLens, len(items))
	for i, l := range items {
		out[i] = p.AsCodeLens(l)
	}
	return out
}

// AsWorkspaceEdit converts a workspace edit.
func (p *ProtocolConverter) AsWorkspaceEdit(edit *protocol.WorkspaceEdit) *host.WorkspaceEdit {
	if edit == nil {
		return nil
	}
	out := &host.WorkspaceEdit{Changes: make(map[uri.URI][]host.TextEdit, len(edit.Changes))}
	for u, edits := range edit.Changes {
		out.Changes[p.asURI(string(u))] = p.AsTextEdits(edits)
	}
	return out
}

// AsDocumentLink converts a link. An empty target stays empty.
func (p *ProtocolConverter) AsDocumentLink(link protocol.DocumentLink) host.DocumentLink {
	out := host.DocumentLink{Range: p.asRange(link.Range)}
	if link.Target != "" {
		out.Target = p.asURI(link.Target)
	}
	return out
}

// AsDocumentLinks converts a list; nil stays nil.
func (p *ProtocolConverter) AsDocumentLinks(items []protocol.DocumentLink) []host.DocumentLink {
	if items == nil {
		return nil
	}
	out := make([]host.DocumentLink, len(items))
	for i, l := range items {
		out[i] = p.AsDocumentLink(l)
	}
	return out
}
