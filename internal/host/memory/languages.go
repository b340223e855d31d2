package memory

import (
	"sort"
	"sync"

	"github.com/dshills/dataprotocol/internal/host"
	"go.lsp.dev/uri"
)

type registration[T any] struct {
	id       uint64
	selector host.DocumentSelector
	provider T
}

// registry keeps providers of one feature. The most recent registration
// whose selector matches wins.
type registry[T any] struct {
	mu     sync.Mutex
	nextID uint64
	items  []registration[T]
}

func (r *registry[T]) add(sel host.DocumentSelector, p T) host.Disposable {
	r.mu.Lock()
	r.nextID++
	id := r.nextID
	r.items = append(r.items, registration[T]{id: id, selector: sel, provider: p})
	r.mu.Unlock()

	return host.DisposableFunc(func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, item := range r.items {
			if item.id == id {
				r.items = append(r.items[:i:i], r.items[i+1:]...)
				return
			}
		}
	})
}

func (r *registry[T]) lookup(doc host.TextDocument) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.items) - 1; i >= 0; i-- {
		if doc == nil || r.items[i].selector.Match(doc) {
			return r.items[i].provider, true
		}
	}
	var zero T
	return zero, false
}

func (r *registry[T]) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// SignatureHelpProvider is a registered signature help function with its
// trigger characters.
type SignatureHelpProvider struct {
	Provide           host.SignatureHelpFunc
	TriggerCharacters []string
}

// Languages is an in-memory host.Languages. Lookup methods return the
// provider that would serve a document.
type Languages struct {
	onDiagnostics func(collection string, u uri.URI, diagnostics []host.Diagnostic)

	mu          sync.Mutex
	collections map[string]*DiagnosticCollection

	completion        registry[host.CompletionProvider]
	hover             registry[host.HoverFunc]
	signatureHelp     registry[SignatureHelpProvider]
	definition        registry[host.DefinitionFunc]
	references        registry[host.ReferencesFunc]
	documentHighlight registry[host.DocumentHighlightFunc]
	documentSymbol    registry[host.DocumentSymbolFunc]
	workspaceSymbol   registry[host.WorkspaceSymbolFunc]
	codeActions       registry[host.CodeActionFunc]
	codeLens          registry[host.CodeLensProvider]
	formatting        registry[host.FormattingFunc]
	rangeFormatting   registry[host.RangeFormattingFunc]
	onTypeFormatting  registry[host.OnTypeFormattingProvider]
	rename            registry[host.RenameFunc]
	documentLink      registry[host.DocumentLinkProvider]
}

var _ host.Languages = (*Languages)(nil)

// NewLanguages creates an empty registry. onDiagnostics, when not nil, is
// called whenever any collection changes.
func NewLanguages(onDiagnostics func(collection string, u uri.URI, diagnostics []host.Diagnostic)) *Languages {
	return &Languages{
		onDiagnostics: onDiagnostics,
		collections:   make(map[string]*DiagnosticCollection),
	}
}

// CreateDiagnosticCollection implements host.Languages.
func (l *Languages) CreateDiagnosticCollection(name string) host.DiagnosticCollection {
	var onChange func(uri.URI, []host.Diagnostic)
	if l.onDiagnostics != nil {
		onChange = func(u uri.URI, d []host.Diagnostic) { l.onDiagnostics(name, u, d) }
	}
	c := NewDiagnosticCollection(name, onChange)
	c.onClose = func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.collections[name] == c {
			delete(l.collections, name)
		}
	}

	l.mu.Lock()
	l.collections[name] = c
	l.mu.Unlock()
	return c
}

// DiagnosticCollection returns the live collection with the given name.
func (l *Languages) DiagnosticCollection(name string) (*DiagnosticCollection, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	c, ok := l.collections[name]
	return c, ok
}

func (l *Languages) RegisterCompletionProvider(sel host.DocumentSelector, p host.CompletionProvider) host.Disposable {
	return l.completion.add(sel, p)
}

func (l *Languages) RegisterHoverProvider(sel host.DocumentSelector, fn host.HoverFunc) host.Disposable {
	return l.hover.add(sel, fn)
}

func (l *Languages) RegisterSignatureHelpProvider(sel host.DocumentSelector, fn host.SignatureHelpFunc, triggerCharacters ...string) host.Disposable {
	return l.signatureHelp.add(sel, SignatureHelpProvider{Provide: fn, TriggerCharacters: triggerCharacters})
}

func (l *Languages) RegisterDefinitionProvider(sel host.DocumentSelector, fn host.DefinitionFunc) host.Disposable {
	return l.definition.add(sel, fn)
}

func (l *Languages) RegisterReferenceProvider(sel host.DocumentSelector, fn host.ReferencesFunc) host.Disposable {
	return l.references.add(sel, fn)
}

func (l *Languages) RegisterDocumentHighlightProvider(sel host.DocumentSelector, fn host.DocumentHighlightFunc) host.Disposable {
	return l.documentHighlight.add(sel, fn)
}

func (l *Languages) RegisterDocumentSymbolProvider(sel host.DocumentSelector, fn host.DocumentSymbolFunc) host.Disposable {
	return l.documentSymbol.add(sel, fn)
}

func (l *Languages) RegisterWorkspaceSymbolProvider(fn host.WorkspaceSymbolFunc) host.Disposable {
	return l.workspaceSymbol.add(nil, fn)
}

func (l *Languages) RegisterCodeActionsProvider(sel host.DocumentSelector, fn host.CodeActionFunc) host.Disposable {
	return l.codeActions.add(sel, fn)
}

func (l *Languages) RegisterCodeLensProvider(sel host.DocumentSelector, p host.CodeLensProvider) host.Disposable {
	return l.codeLens.add(sel, p)
}

func (l *Languages) RegisterDocumentFormattingProvider(sel host.DocumentSelector, fn host.FormattingFunc) host.Disposable {
	return l.formatting.add(sel, fn)
}

func (l *Languages) RegisterDocumentRangeFormattingProvider(sel host.DocumentSelector, fn host.RangeFormattingFunc) host.Disposable {
	return l.rangeFormatting.add(sel, fn)
}

func (l *Languages) RegisterOnTypeFormattingProvider(sel host.DocumentSelector, p host.OnTypeFormattingProvider) host.Disposable {
	return l.onTypeFormatting.add(sel, p)
}

func (l *Languages) RegisterRenameProvider(sel host.DocumentSelector, fn host.RenameFunc) host.Disposable {
	return l.rename.add(sel, fn)
}

func (l *Languages) RegisterDocumentLinkProvider(sel host.DocumentSelector, p host.DocumentLinkProvider) host.Disposable {
	return l.documentLink.add(sel, p)
}

// Lookups.

func (l *Languages) Completion(doc host.TextDocument) (host.CompletionProvider, bool) {
	return l.completion.lookup(doc)
}

func (l *Languages) Hover(doc host.TextDocument) (host.HoverFunc, bool) {
	return l.hover.lookup(doc)
}

func (l *Languages) SignatureHelp(doc host.TextDocument) (SignatureHelpProvider, bool) {
	return l.signatureHelp.lookup(doc)
}

func (l *Languages) Definition(doc host.TextDocument) (host.DefinitionFunc, bool) {
	return l.definition.lookup(doc)
}

func (l *Languages) References(doc host.TextDocument) (host.ReferencesFunc, bool) {
	return l.references.lookup(doc)
}

func (l *Languages) DocumentHighlight(doc host.TextDocument) (host.DocumentHighlightFunc, bool) {
	return l.documentHighlight.lookup(doc)
}

func (l *Languages) DocumentSymbol(doc host.TextDocument) (host.DocumentSymbolFunc, bool) {
	return l.documentSymbol.lookup(doc)
}

func (l *Languages) WorkspaceSymbol() (host.WorkspaceSymbolFunc, bool) {
	return l.workspaceSymbol.lookup(nil)
}

func (l *Languages) CodeActions(doc host.TextDocument) (host.CodeActionFunc, bool) {
	return l.codeActions.lookup(doc)
}

func (l *Languages) CodeLens(doc host.TextDocument) (host.CodeLensProvider, bool) {
	return l.codeLens.lookup(doc)
}

func (l *Languages) Formatting(doc host.TextDocument) (host.FormattingFunc, bool) {
	return l.formatting.lookup(doc)
}

func (l *Languages) RangeFormatting(doc host.TextDocument) (host.RangeFormattingFunc, bool) {
	return l.rangeFormatting.lookup(doc)
}

func (l *Languages) OnTypeFormatting(doc host.TextDocument) (host.OnTypeFormattingProvider, bool) {
	return l.onTypeFormatting.lookup(doc)
}

func (l *Languages) Rename(doc host.TextDocument) (host.RenameFunc, bool) {
	return l.rename.lookup(doc)
}

func (l *Languages) DocumentLink(doc host.TextDocument) (host.DocumentLinkProvider, bool) {
	return l.documentLink.lookup(doc)
}

// Registered returns the names of features with at least one provider,
// sorted.
func (l *Languages) Registered() []string {
	counts := map[string]int{
		"completion":        l.completion.len(),
		"hover":             l.hover.len(),
		"signatureHelp":     l.signatureHelp.len(),
		"definition":        l.definition.len(),
		"references":        l.references.len(),
		"documentHighlight": l.documentHighlight.len(),
		"documentSymbol":    l.documentSymbol.len(),
		"workspaceSymbol":   l.workspaceSymbol.len(),
		"codeAction":        l.codeActions.len(),
		"codeLens":          l.codeLens.len(),
		"formatting":        l.formatting.len(),
		"rangeFormatting":   l.rangeFormatting.len(),
		"onTypeFormatting":  l.onTypeFormatting.len(),
		"rename":            l.rename.len(),
		"documentLink":      l.documentLink.len(),
	}
	var out []string
	for name, n := range counts {
		if n > 0 {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
