package client

import (
	"strings"

	"github.com/dshills/dataprotocol/internal/protocol"
)

// Capability is a feature the server may advertise at initialize.
type Capability uint32

const (
	CapCompletion Capability = 1 << iota
	CapCompletionResolve
	CapHover
	CapSignatureHelp
	CapDefinition
	CapReferences
	CapDocumentHighlight
	CapDocumentSymbol
	CapWorkspaceSymbol
	CapCodeAction
	CapCodeLens
	CapCodeLensResolve
	CapFormatting
	CapRangeFormatting
	CapOnTypeFormatting
	CapRename
	CapDocumentLink
	CapDocumentLinkResolve
	CapConnection
)

var capabilityNames = []struct {
	cap  Capability
	name string
}{
	{CapCompletion, "completion"},
	{CapCompletionResolve, "completionResolve"},
	{CapHover, "hover"},
	{CapSignatureHelp, "signatureHelp"},
	{CapDefinition, "definition"},
	{CapReferences, "references"},
	{CapDocumentHighlight, "documentHighlight"},
	{CapDocumentSymbol, "documentSymbol"},
	{CapWorkspaceSymbol, "workspaceSymbol"},
	{CapCodeAction, "codeAction"},
	{CapCodeLens, "codeLens"},
	{CapCodeLensResolve, "codeLensResolve"},
	{CapFormatting, "formatting"},
	{CapRangeFormatting, "rangeFormatting"},
	{CapOnTypeFormatting, "onTypeFormatting"},
	{CapRename, "rename"},
	{CapDocumentLink, "documentLink"},
	{CapDocumentLinkResolve, "documentLinkResolve"},
	{CapConnection, "connection"},
}

// String returns the capability name, or "unknown".
func (c Capability) String() string {
	for _, n := range capabilityNames {
		if n.cap == c {
			return n.name
		}
	}
	return "unknown"
}

// CapabilitySet is the set of capabilities negotiated with one server.
type CapabilitySet struct {
	bits     Capability
	syncKind protocol.TextDocumentSyncKind
}

// NewCapabilitySet computes the set from an initialize result.
func NewCapabilitySet(caps protocol.ServerCapabilities) CapabilitySet {
	var bits Capability
	set := func(ok bool, c Capability) {
		if ok {
			bits |= c
		}
	}

	set(caps.CompletionProvider != nil, CapCompletion)
	set(caps.CompletionProvider != nil && caps.CompletionProvider.ResolveProvider, CapCompletionResolve)
	set(caps.HoverProvider, CapHover)
	set(caps.SignatureHelpProvider != nil, CapSignatureHelp)
	set(caps.DefinitionProvider, CapDefinition)
	set(caps.ReferencesProvider, CapReferences)
	set(caps.DocumentHighlightProvider, CapDocumentHighlight)
	set(caps.DocumentSymbolProvider, CapDocumentSymbol)
	set(caps.WorkspaceSymbolProvider, CapWorkspaceSymbol)
	set(caps.CodeActionProvider, CapCodeAction)
	set(caps.CodeLensProvider != nil, CapCodeLens)
	set(caps.CodeLensProvider != nil && caps.CodeLensProvider.ResolveProvider, CapCodeLensResolve)
	set(caps.DocumentFormattingProvider, CapFormatting)
	set(caps.DocumentRangeFormattingProvider, CapRangeFormatting)
	set(caps.DocumentOnTypeFormattingProvider != nil, CapOnTypeFormatting)
	set(caps.RenameProvider, CapRename)
	set(caps.DocumentLinkProvider != nil, CapDocumentLink)
	set(caps.DocumentLinkProvider != nil && caps.DocumentLinkProvider.ResolveProvider, CapDocumentLinkResolve)
	set(caps.ConnectionProvider, CapConnection)

	return CapabilitySet{bits: bits, syncKind: caps.SyncKind()}
}

// Has reports whether every capability in c is present.
func (s CapabilitySet) Has(c Capability) bool {
	return c != 0 && s.bits&c == c
}

// SyncKind returns the negotiated document sync kind.
func (s CapabilitySet) SyncKind() protocol.TextDocumentSyncKind {
	return s.syncKind
}

// Tags lists the names of the present capabilities in declaration order.
func (s CapabilitySet) Tags() []string {
	var out []string
	for _, n := range capabilityNames {
		if s.bits&n.cap != 0 {
			out = append(out, n.name)
		}
	}
	return out
}

// String returns the tags joined by commas.
func (s CapabilitySet) String() string {
	return strings.Join(s.Tags(), ",")
}
