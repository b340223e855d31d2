package memory

import (
	"sort"
	"sync"

	"github.com/dshills/dataprotocol/internal/host"
)

// DataProtocol is an in-memory provider registry keyed by provider id.
type DataProtocol struct {
	mu        sync.Mutex
	providers map[string]*host.DataProtocolProvider

	flavor host.Emitter[host.LanguageFlavorChange]
}

var _ host.DataProtocol = (*DataProtocol)(nil)

// NewDataProtocol creates an empty registry.
func NewDataProtocol() *DataProtocol {
	return &DataProtocol{providers: make(map[string]*host.DataProtocolProvider)}
}

// RegisterProvider implements host.DataProtocol. A later registration with
// the same id replaces the earlier one; disposing the earlier registration
// then leaves the replacement in place.
func (d *DataProtocol) RegisterProvider(p *host.DataProtocolProvider) host.Disposable {
	d.mu.Lock()
	d.providers[p.ProviderID] = p
	d.mu.Unlock()

	return host.DisposableFunc(func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.providers[p.ProviderID] == p {
			delete(d.providers, p.ProviderID)
		}
	})
}

// Provider returns the registered provider with id.
func (d *DataProtocol) Provider(id string) (*host.DataProtocolProvider, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.providers[id]
	return p, ok
}

// ProviderIDs returns the registered ids, sorted.
func (d *DataProtocol) ProviderIDs() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	ids := make([]string, 0, len(d.providers))
	for id := range d.providers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// OnDidChangeLanguageFlavor implements host.DataProtocol.
func (d *DataProtocol) OnDidChangeLanguageFlavor(fn func(host.LanguageFlavorChange)) host.Disposable {
	return d.flavor.Event(fn)
}

// ChangeLanguageFlavor fires a flavor change.
func (d *DataProtocol) ChangeLanguageFlavor(change host.LanguageFlavorChange) {
	d.flavor.Fire(change)
}

// Host bundles the in-memory collaborators.
type Host struct {
	Workspace    *Workspace
	Window       *Window
	Languages    *Languages
	DataProtocol *DataProtocol
}

// New creates a host rooted at root that writes window output to the
// window's writer.
func New(root string, window *Window, opts ...WorkspaceOption) *Host {
	if window == nil {
		window = NewWindow(nil)
	}
	return &Host{
		Workspace:    NewWorkspace(root, opts...),
		Window:       window,
		Languages:    NewLanguages(nil),
		DataProtocol: NewDataProtocol(),
	}
}
