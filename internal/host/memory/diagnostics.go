package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/dshills/dataprotocol/internal/host"
	"go.lsp.dev/uri"
)

// FileDiagnostics holds the diagnostics of one resource with counts by
// severity.
type FileDiagnostics struct {
	URI          uri.URI
	Diagnostics  []host.Diagnostic
	UpdatedAt    time.Time
	ErrorCount   int
	WarningCount int
	InfoCount    int
	HintCount    int
}

// DiagnosticCollection is an in-memory host.DiagnosticCollection.
type DiagnosticCollection struct {
	name     string
	onChange func(u uri.URI, diagnostics []host.Diagnostic)
	onClose  func()

	mu       sync.RWMutex
	files    map[uri.URI]*FileDiagnostics
	disposed bool
}

var _ host.DiagnosticCollection = (*DiagnosticCollection)(nil)

// NewDiagnosticCollection creates an empty collection. onChange, when not
// nil, is called after every Set or Delete.
func NewDiagnosticCollection(name string, onChange func(u uri.URI, diagnostics []host.Diagnostic)) *DiagnosticCollection {
	return &DiagnosticCollection{
		name:     name,
		onChange: onChange,
		files:    make(map[uri.URI]*FileDiagnostics),
	}
}

// Name implements host.DiagnosticCollection.
func (c *DiagnosticCollection) Name() string { return c.name }

// Set replaces the diagnostics of u. An empty list removes the entry.
func (c *DiagnosticCollection) Set(u uri.URI, diagnostics []host.Diagnostic) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	if len(diagnostics) == 0 {
		delete(c.files, u)
		c.mu.Unlock()
		c.notify(u, nil)
		return
	}

	sorted := make([]host.Diagnostic, len(diagnostics))
	copy(sorted, diagnostics)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Range.Start, sorted[j].Range.Start
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Character < b.Character
	})

	fd := &FileDiagnostics{URI: u, Diagnostics: sorted, UpdatedAt: time.Now()}
	for _, d := range sorted {
		switch d.Severity {
		case host.SeverityError:
			fd.ErrorCount++
		case host.SeverityWarning:
			fd.WarningCount++
		case host.SeverityInformation:
			fd.InfoCount++
		case host.SeverityHint:
			fd.HintCount++
		}
	}
	c.files[u] = fd
	c.mu.Unlock()

	c.notify(u, sorted)
}

// Delete implements host.DiagnosticCollection.
func (c *DiagnosticCollection) Delete(u uri.URI) {
	c.mu.Lock()
	_, ok := c.files[u]
	delete(c.files, u)
	c.mu.Unlock()
	if ok {
		c.notify(u, nil)
	}
}

// Clear implements host.DiagnosticCollection.
func (c *DiagnosticCollection) Clear() {
	c.mu.Lock()
	uris := make([]uri.URI, 0, len(c.files))
	for u := range c.files {
		uris = append(uris, u)
	}
	c.files = make(map[uri.URI]*FileDiagnostics)
	c.mu.Unlock()

	for _, u := range uris {
		c.notify(u, nil)
	}
}

// Dispose implements host.DiagnosticCollection.
func (c *DiagnosticCollection) Dispose() {
	c.Clear()
	c.mu.Lock()
	c.disposed = true
	onClose := c.onClose
	c.mu.Unlock()
	if onClose != nil {
		onClose()
	}
}

// Get returns the diagnostics of u.
func (c *DiagnosticCollection) Get(u uri.URI) []host.Diagnostic {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fd, ok := c.files[u]
	if !ok {
		return nil
	}
	out := make([]host.Diagnostic, len(fd.Diagnostics))
	copy(out, fd.Diagnostics)
	return out
}

// File returns the per-resource summary of u.
func (c *DiagnosticCollection) File(u uri.URI) (FileDiagnostics, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fd, ok := c.files[u]
	if !ok {
		return FileDiagnostics{}, false
	}
	return *fd, true
}

// URIs returns the resources that have diagnostics, sorted.
func (c *DiagnosticCollection) URIs() []uri.URI {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]uri.URI, 0, len(c.files))
	for u := range c.files {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Totals returns error and warning counts across all resources.
func (c *DiagnosticCollection) Totals() (errors, warnings int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, fd := range c.files {
		errors += fd.ErrorCount
		warnings += fd.WarningCount
	}
	return errors, warnings
}

func (c *DiagnosticCollection) notify(u uri.URI, diagnostics []host.Diagnostic) {
	if c.onChange != nil {
		c.onChange(u, diagnostics)
	}
}
