package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"go.lsp.dev/uri"

	"github.com/dshills/dataprotocol/internal/host"
	"github.com/dshills/dataprotocol/internal/protocol"
)

// notify sends a notification straight on the session's connection. The
// document and file hooks use it because they run only while the session
// is live and must not wait for the ready future.
func notify[P any](c *Client, s *session, t protocol.NotificationType[P], params P) {
	if s.conn == nil {
		return
	}
	if err := t.Send(context.Background(), s.conn, params); err != nil {
		c.logger.Warn("notification failed",
			slog.String("method", t.Method),
			slog.String("err", err.Error()))
	}
}

func (c *Client) hookDocumentSync(s *session) {
	if s.caps.SyncKind() == protocol.TextDocumentSyncKindNone {
		return
	}
	ws := c.host.Workspace
	s.listeners.Add(
		ws.OnDidOpenTextDocument(func(doc host.TextDocument) { c.didOpen(s, doc) }),
		ws.OnDidChangeTextDocument(func(ev host.TextDocumentChangeEvent) { c.didChange(s, ev) }),
		ws.OnDidCloseTextDocument(func(doc host.TextDocument) { c.didClose(s, doc) }),
		ws.OnDidSaveTextDocument(func(doc host.TextDocument) { c.didSave(s, doc) }),
	)
}

// replayOpenDocuments announces the documents that were already open when
// the server came up.
func (c *Client) replayOpenDocuments(s *session) {
	if s.caps.SyncKind() == protocol.TextDocumentSyncKindNone {
		return
	}
	for _, doc := range c.host.Workspace.TextDocuments() {
		c.didOpen(s, doc)
	}
}

func (c *Client) syncs(s *session, doc host.TextDocument) bool {
	return c.syncExpr.Evaluate(doc) && c.current(s)
}

func (s *session) isDelivered(u uri.URI) bool {
	s.docMu.Lock()
	defer s.docMu.Unlock()
	return s.delivered[u]
}

func (c *Client) didOpen(s *session, doc host.TextDocument) {
	if !c.syncs(s, doc) {
		return
	}
	s.docMu.Lock()
	defer s.docMu.Unlock()
	if s.delivered[doc.URI()] {
		return
	}
	s.delivered[doc.URI()] = true
	notify(c, s, protocol.DidOpenTextDocumentNotification, c.c2p.AsOpenTextDocumentParams(doc))
}

func (c *Client) didChange(s *session, ev host.TextDocumentChangeEvent) {
	doc := ev.Document
	if !c.syncs(s, doc) || !s.isDelivered(doc.URI()) {
		return
	}

	if s.caps.SyncKind() == protocol.TextDocumentSyncKindIncremental {
		s.docMu.Lock()
		notify(c, s, protocol.DidChangeTextDocumentNotification, c.c2p.AsChangeTextDocumentParams(ev))
		s.docMu.Unlock()
		return
	}

	// Full sync coalesces per document; a change to another document
	// flushes the pending one first.
	s.docMu.Lock()
	other := s.pendingDoc != "" && s.pendingDoc != doc.URI()
	s.docMu.Unlock()
	if other {
		s.docDelayer.ForceDelivery()
	}

	s.docMu.Lock()
	s.pendingDoc = doc.URI()
	s.docMu.Unlock()
	s.docDelayer.Trigger(func() {
		s.docMu.Lock()
		if s.pendingDoc == doc.URI() {
			s.pendingDoc = ""
		}
		s.docMu.Unlock()
		notify(c, s, protocol.DidChangeTextDocumentNotification, c.c2p.AsFullChangeTextDocumentParams(doc))
	})
}

func (c *Client) didClose(s *session, doc host.TextDocument) {
	if !c.syncs(s, doc) {
		return
	}
	c.forceDocumentSync(s)

	s.docMu.Lock()
	defer s.docMu.Unlock()
	if !s.delivered[doc.URI()] {
		return
	}
	delete(s.delivered, doc.URI())
	notify(c, s, protocol.DidCloseTextDocumentNotification, c.c2p.AsCloseTextDocumentParams(doc))
}

func (c *Client) didSave(s *session, doc host.TextDocument) {
	if !c.syncs(s, doc) || !s.isDelivered(doc.URI()) {
		return
	}
	c.forceDocumentSync(s)
	notify(c, s, protocol.DidSaveTextDocumentNotification, c.c2p.AsSaveTextDocumentParams(doc))
}

// forceDocumentSync delivers a pending full document change now.
func (c *Client) forceDocumentSync(s *session) {
	if s.docDelayer != nil {
		s.docDelayer.ForceDelivery()
	}
}

func (c *Client) hookFileEvents(s *session) {
	for _, pattern := range c.opts.Synchronize.FileEvents {
		w, err := c.host.Workspace.CreateFileSystemWatcher(pattern)
		if err != nil {
			c.error(fmt.Sprintf("Creating file system watcher for %s failed.", pattern), err)
			continue
		}
		s.watchers = append(s.watchers, w)
		c.watch(s, w)
	}
	for _, w := range c.opts.Synchronize.FileWatchers {
		c.watch(s, w)
	}
}

func (c *Client) watch(s *session, w host.FileSystemWatcher) {
	fn := func(ev host.FileEvent) { c.notifyFileEvent(s, ev) }
	s.listeners.Add(w.OnDidCreate(fn), w.OnDidChange(fn), w.OnDidDelete(fn))
}

// notifyFileEvent queues ev and schedules a batched
// workspace/didChangeWatchedFiles.
func (c *Client) notifyFileEvent(s *session, ev host.FileEvent) {
	c.fileMu.Lock()
	c.fileEvents = append(c.fileEvents, protocol.FileEvent{
		URI:  protocol.DocumentURI(c.c2p.AsURI(ev.URI)),
		Type: protocol.FileChangeType(ev.Type),
	})
	c.fileMu.Unlock()
	c.fileDelayer.Trigger(func() { c.flushFileEvents(s) })
}

// flushFileEvents sends the queued events. The queue is cleared whether
// or not they could be sent.
func (c *Client) flushFileEvents(s *session) {
	c.fileMu.Lock()
	events := c.fileEvents
	c.fileEvents = nil
	c.fileMu.Unlock()

	if len(events) == 0 {
		return
	}
	if _, ok := c.running(); !ok || !c.current(s) {
		c.logger.Debug("file events dropped", slog.Int("count", len(events)))
		return
	}
	notify(c, s, protocol.DidChangeWatchedFilesNotification, protocol.DidChangeWatchedFilesParams{Changes: events})
}

func (c *Client) ensureDiagnostics() {
	if c.host.Languages == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.diagnostics != nil {
		return
	}
	name := c.opts.DiagnosticCollectionName
	if name == "" {
		name = c.id
	}
	c.diagnostics = c.host.Languages.CreateDiagnosticCollection(name)
}

// Diagnostics returns the diagnostic collection, or nil when the client
// has no Languages host or is stopped.
func (c *Client) Diagnostics() host.DiagnosticCollection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.diagnostics
}

func (c *Client) handleDiagnostics(method string, raw json.RawMessage) {
	p, err := protocol.PublishDiagnosticsNotification.DecodeParams(raw)
	if err != nil {
		c.logger.Warn("bad notification", slog.String("method", method), slog.String("err", err.Error()))
		return
	}
	u, err := c.p2c.AsURI(string(p.URI))
	if err != nil {
		c.logger.Warn("bad diagnostics uri", slog.String("uri", string(p.URI)), slog.String("err", err.Error()))
		return
	}
	if d := c.Diagnostics(); d != nil {
		d.Set(u, c.p2c.AsDiagnostics(p.Diagnostics))
	}
}
