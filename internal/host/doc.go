// Package host defines the editor-side model the client works against.
//
// The host owns documents, configuration, windows, language feature
// registries and the data protocol provider registry. The client consumes
// these collaborators through the interfaces in this package and converts
// between this model and the wire model in package protocol.
//
// Host positions and ranges are zero-based like the wire, but several enums
// are offset: diagnostic severity, completion kind, symbol kind and document
// highlight kind all start at zero here and at one on the wire.
//
// Package host/memory provides an in-memory implementation used by the
// command-line client and by tests.
package host
