package memory

import (
	"strings"
	"sync"

	"github.com/dshills/dataprotocol/internal/host"
	"go.lsp.dev/uri"
)

// Document is an open text document. Character offsets are UTF-16 code
// units, as on the wire.
type Document struct {
	mu         sync.RWMutex
	uri        uri.URI
	languageID string
	version    int
	text       string
}

var _ host.TextDocument = (*Document)(nil)

func newDocument(u uri.URI, languageID, text string) *Document {
	return &Document{uri: u, languageID: languageID, version: 1, text: text}
}

// URI implements host.TextDocument.
func (d *Document) URI() uri.URI { return d.uri }

// LanguageID implements host.TextDocument.
func (d *Document) LanguageID() string { return d.languageID }

// Version implements host.TextDocument.
func (d *Document) Version() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.version
}

// Text implements host.TextDocument.
func (d *Document) Text() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.text
}

// apply applies the changes in order and bumps the version once.
func (d *Document) apply(changes []host.TextDocumentContentChange) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, ch := range changes {
		start := offsetAt(d.text, ch.Range.Start)
		end := offsetAt(d.text, ch.Range.End)
		if end < start {
			start, end = end, start
		}
		d.text = d.text[:start] + ch.Text + d.text[end:]
	}
	d.version++
}

// fullRange returns the range that spans the whole text.
func (d *Document) fullRange() host.Range {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return host.Range{End: endPosition(d.text)}
}

// offsetAt converts a position to a byte offset, clamping to the text.
func offsetAt(text string, pos host.Position) int {
	if pos.Line < 0 {
		return 0
	}
	lineStart := 0
	for i := 0; i < pos.Line; i++ {
		nl := strings.IndexByte(text[lineStart:], '\n')
		if nl < 0 {
			return len(text)
		}
		lineStart += nl + 1
	}
	line := text[lineStart:]
	if nl := strings.IndexByte(line, '\n'); nl >= 0 {
		line = line[:nl]
	}
	return lineStart + utf16ToByteOffset(line, pos.Character)
}

func endPosition(text string) host.Position {
	line := strings.Count(text, "\n")
	last := text[strings.LastIndexByte(text, '\n')+1:]
	return host.Position{Line: line, Character: utf16Len(last)}
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

func utf16ToByteOffset(s string, utf16Off int) int {
	if utf16Off <= 0 {
		return 0
	}
	count := 0
	for i, r := range s {
		if count >= utf16Off {
			return i
		}
		if r >= 0x10000 {
			count += 2
		} else {
			count++
		}
	}
	return len(s)
}
