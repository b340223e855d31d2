package client

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/dshills/dataprotocol/internal/host"
	"github.com/dshills/dataprotocol/internal/optional"
	"github.com/dshills/dataprotocol/internal/protocol"
	"github.com/dshills/dataprotocol/internal/rpc"
)

// logFailedRequest reports a request that failed for a reason other than
// the caller giving up.
func (c *Client) logFailedRequest(method string, err error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		c.logger.Debug("request abandoned", slog.String("method", method))
		return
	}
	c.error(fmt.Sprintf("Request %s failed.", method), err)
}

// call sends a typed request through the client and logs a failure.
func call[P, R any](ctx context.Context, c *Client, t protocol.RequestType[P, R], params P) (R, error) {
	res, err := t.Send(ctx, c, params)
	if err != nil {
		c.logFailedRequest(t.Method, err)
	}
	return res, err
}

func (c *Client) wireRange(r host.Range) protocol.Range {
	v, _ := c.c2p.AsRange(optional.Of(r)).Get()
	return v
}

// hookLanguageFeatures registers a host provider for every language
// feature the server advertised.
func (c *Client) hookLanguageFeatures(s *session) {
	langs := c.host.Languages
	sel := c.opts.DocumentSelector
	if langs == nil || len(sel) == 0 {
		return
	}
	caps := s.caps
	sc := s.serverCaps
	add := s.providers.Add

	if caps.Has(CapCompletion) {
		p := host.CompletionProvider{
			Provide:           c.provideCompletion,
			TriggerCharacters: sc.CompletionProvider.TriggerCharacters,
		}
		if caps.Has(CapCompletionResolve) {
			p.Resolve = c.resolveCompletion
		}
		add(langs.RegisterCompletionProvider(sel, p))
	}
	if caps.Has(CapHover) {
		add(langs.RegisterHoverProvider(sel, c.provideHover))
	}
	if caps.Has(CapSignatureHelp) {
		add(langs.RegisterSignatureHelpProvider(sel, c.provideSignatureHelp, sc.SignatureHelpProvider.TriggerCharacters...))
	}
	if caps.Has(CapDefinition) {
		add(langs.RegisterDefinitionProvider(sel, c.provideDefinition))
	}
	if caps.Has(CapReferences) {
		add(langs.RegisterReferenceProvider(sel, c.provideReferences))
	}
	if caps.Has(CapDocumentHighlight) {
		add(langs.RegisterDocumentHighlightProvider(sel, c.provideDocumentHighlights))
	}
	if caps.Has(CapDocumentSymbol) {
		add(langs.RegisterDocumentSymbolProvider(sel, c.provideDocumentSymbols))
	}
	if caps.Has(CapWorkspaceSymbol) {
		add(langs.RegisterWorkspaceSymbolProvider(c.provideWorkspaceSymbols))
	}
	if caps.Has(CapCodeAction) {
		add(langs.RegisterCodeActionsProvider(sel, c.provideCodeActions))
	}
	if caps.Has(CapCodeLens) {
		p := host.CodeLensProvider{Provide: c.provideCodeLenses}
		if caps.Has(CapCodeLensResolve) {
			p.Resolve = c.resolveCodeLens
		}
		add(langs.RegisterCodeLensProvider(sel, p))
	}
	if caps.Has(CapFormatting) {
		add(langs.RegisterDocumentFormattingProvider(sel, c.provideFormatting))
	}
	if caps.Has(CapRangeFormatting) {
		add(langs.RegisterDocumentRangeFormattingProvider(sel, c.provideRangeFormatting))
	}
	if caps.Has(CapOnTypeFormatting) {
		opts := sc.DocumentOnTypeFormattingProvider
		add(langs.RegisterOnTypeFormattingProvider(sel, host.OnTypeFormattingProvider{
			Provide:               c.provideOnTypeFormatting,
			FirstTriggerCharacter: opts.FirstTriggerCharacter,
			MoreTriggerCharacters: opts.MoreTriggerCharacter,
		}))
	}
	if caps.Has(CapRename) {
		add(langs.RegisterRenameProvider(sel, c.provideRename))
	}
	if caps.Has(CapDocumentLink) {
		p := host.DocumentLinkProvider{Provide: c.provideDocumentLinks}
		if caps.Has(CapDocumentLinkResolve) {
			p.Resolve = c.resolveDocumentLink
		}
		add(langs.RegisterDocumentLinkProvider(sel, p))
	}

	c.logger.Debug("language features registered", slog.Int("count", s.providers.Len()))
}

func (c *Client) provideCompletion(ctx context.Context, doc host.TextDocument, pos host.Position) (*host.CompletionList, error) {
	raw, err := call(ctx, c, protocol.CompletionRequest, c.c2p.AsTextDocumentPositionParams(doc, pos))
	if err != nil {
		return nil, nil
	}
	list, err := c.p2c.AsCompletionResult(raw)
	if err != nil {
		c.logFailedRequest(protocol.CompletionRequest.Method, err)
		return nil, nil
	}
	return list, nil
}

func (c *Client) resolveCompletion(ctx context.Context, item host.CompletionItem) (host.CompletionItem, error) {
	res, err := call(ctx, c, protocol.CompletionResolveRequest, c.c2p.AsCompletionItem(item))
	if err != nil {
		return item, nil
	}
	return c.p2c.AsCompletionItem(res), nil
}

func (c *Client) provideHover(ctx context.Context, doc host.TextDocument, pos host.Position) (*host.Hover, error) {
	res, err := call(ctx, c, protocol.HoverRequest, c.c2p.AsTextDocumentPositionParams(doc, pos))
	if err != nil {
		return nil, nil
	}
	return c.p2c.AsHover(res), nil
}

func (c *Client) provideSignatureHelp(ctx context.Context, doc host.TextDocument, pos host.Position) (*host.SignatureHelp, error) {
	res, err := call(ctx, c, protocol.SignatureHelpRequest, c.c2p.AsTextDocumentPositionParams(doc, pos))
	if err != nil {
		return nil, nil
	}
	return c.p2c.AsSignatureHelp(res), nil
}

func (c *Client) provideDefinition(ctx context.Context, doc host.TextDocument, pos host.Position) ([]host.Location, error) {
	raw, err := call(ctx, c, protocol.DefinitionRequest, c.c2p.AsTextDocumentPositionParams(doc, pos))
	if err != nil {
		return nil, nil
	}
	locs, err := c.p2c.AsDefinitionResult(raw)
	if err != nil {
		c.logFailedRequest(protocol.DefinitionRequest.Method, err)
		return nil, nil
	}
	return locs, nil
}

func (c *Client) provideReferences(ctx context.Context, doc host.TextDocument, pos host.Position, includeDeclaration bool) ([]host.Location, error) {
	res, err := call(ctx, c, protocol.ReferencesRequest, c.c2p.AsReferenceParams(doc, pos, includeDeclaration))
	if err != nil {
		return nil, nil
	}
	return c.p2c.AsReferences(res), nil
}

func (c *Client) provideDocumentHighlights(ctx context.Context, doc host.TextDocument, pos host.Position) ([]host.DocumentHighlight, error) {
	res, err := call(ctx, c, protocol.DocumentHighlightRequest, c.c2p.AsTextDocumentPositionParams(doc, pos))
	if err != nil {
		return nil, nil
	}
	return c.p2c.AsDocumentHighlights(res), nil
}

func (c *Client) provideDocumentSymbols(ctx context.Context, doc host.TextDocument) ([]host.SymbolInformation, error) {
	res, err := call(ctx, c, protocol.DocumentSymbolRequest, c.c2p.AsDocumentSymbolParams(doc))
	if err != nil {
		return nil, nil
	}
	return c.p2c.AsSymbolInformations(res, doc.URI()), nil
}

func (c *Client) provideWorkspaceSymbols(ctx context.Context, query string) ([]host.SymbolInformation, error) {
	res, err := call(ctx, c, protocol.WorkspaceSymbolRequest, protocol.WorkspaceSymbolParams{Query: query})
	if err != nil {
		return nil, nil
	}
	return c.p2c.AsSymbolInformations(res, ""), nil
}

func (c *Client) provideCodeActions(ctx context.Context, doc host.TextDocument, rng host.Range, diagnostics []host.Diagnostic) ([]host.Command, error) {
	params := protocol.CodeActionParams{
		TextDocument: c.c2p.AsTextDocumentIdentifier(doc),
		Range:        c.wireRange(rng),
		Context:      c.c2p.AsCodeActionContext(diagnostics),
	}
	res, err := call(ctx, c, protocol.CodeActionRequest, params)
	if err != nil {
		return nil, nil
	}
	return c.p2c.AsCommands(res), nil
}

func (c *Client) provideCodeLenses(ctx context.Context, doc host.TextDocument) ([]host.CodeLens, error) {
	res, err := call(ctx, c, protocol.CodeLensRequest, c.c2p.AsCodeLensParams(doc))
	if err != nil {
		return nil, nil
	}
	return c.p2c.AsCodeLenses(res), nil
}

func (c *Client) resolveCodeLens(ctx context.Context, lens host.CodeLens) (host.CodeLens, error) {
	res, err := call(ctx, c, protocol.CodeLensResolveRequest, c.c2p.AsCodeLens(lens))
	if err != nil {
		return lens, nil
	}
	return c.p2c.AsCodeLens(res), nil
}

func (c *Client) provideFormatting(ctx context.Context, doc host.TextDocument, opts host.FormattingOptions) ([]host.TextEdit, error) {
	params := protocol.DocumentFormattingParams{
		TextDocument: c.c2p.AsTextDocumentIdentifier(doc),
		Options:      c.c2p.AsFormattingOptions(opts),
	}
	res, err := call(ctx, c, protocol.DocumentFormattingRequest, params)
	if err != nil {
		return nil, nil
	}
	return c.p2c.AsTextEdits(res), nil
}

func (c *Client) provideRangeFormatting(ctx context.Context, doc host.TextDocument, rng host.Range, opts host.FormattingOptions) ([]host.TextEdit, error) {
	params := protocol.DocumentRangeFormattingParams{
		TextDocument: c.c2p.AsTextDocumentIdentifier(doc),
		Range:        c.wireRange(rng),
		Options:      c.c2p.AsFormattingOptions(opts),
	}
	res, err := call(ctx, c, protocol.DocumentRangeFormattingRequest, params)
	if err != nil {
		return nil, nil
	}
	return c.p2c.AsTextEdits(res), nil
}

func (c *Client) provideOnTypeFormatting(ctx context.Context, doc host.TextDocument, pos host.Position, ch string, opts host.FormattingOptions) ([]host.TextEdit, error) {
	params := protocol.DocumentOnTypeFormattingParams{
		TextDocument: c.c2p.AsTextDocumentIdentifier(doc),
		Position:     c.c2p.AsWorkerPosition(pos),
		Ch:           ch,
		Options:      c.c2p.AsFormattingOptions(opts),
	}
	res, err := call(ctx, c, protocol.DocumentOnTypeFormattingRequest, params)
	if err != nil {
		return nil, nil
	}
	return c.p2c.AsTextEdits(res), nil
}

// provideRename is the one language feature whose failure reaches the
// caller, carrying the server's message.
func (c *Client) provideRename(ctx context.Context, doc host.TextDocument, pos host.Position, newName string) (*host.WorkspaceEdit, error) {
	params := protocol.RenameParams{
		TextDocument: c.c2p.AsTextDocumentIdentifier(doc),
		Position:     c.c2p.AsWorkerPosition(pos),
		NewName:      newName,
	}
	res, err := call(ctx, c, protocol.RenameRequest, params)
	if err != nil {
		if re, ok := rpc.AsResponseError(err); ok {
			return nil, errors.New(re.Message)
		}
		return nil, err
	}
	return c.p2c.AsWorkspaceEdit(res), nil
}

func (c *Client) provideDocumentLinks(ctx context.Context, doc host.TextDocument) ([]host.DocumentLink, error) {
	res, err := call(ctx, c, protocol.DocumentLinkRequest, c.c2p.AsDocumentLinkParams(doc))
	if err != nil {
		return nil, nil
	}
	return c.p2c.AsDocumentLinks(res), nil
}

func (c *Client) resolveDocumentLink(ctx context.Context, link host.DocumentLink) (host.DocumentLink, error) {
	res, err := call(ctx, c, protocol.DocumentLinkResolveRequest, c.c2p.AsDocumentLink(link))
	if err != nil {
		return link, nil
	}
	return c.p2c.AsDocumentLink(res), nil
}
