package client

import "github.com/dshills/dataprotocol/internal/host"

// SyncExpression decides whether a document is synchronized with the
// server.
type SyncExpression interface {
	Evaluate(doc host.TextDocument) bool
}

// FalseSyncExpression selects nothing.
type FalseSyncExpression struct{}

// Evaluate implements SyncExpression.
func (FalseSyncExpression) Evaluate(host.TextDocument) bool { return false }

// LanguageIDExpression selects documents of one language.
type LanguageIDExpression struct {
	ID string
}

// Evaluate implements SyncExpression.
func (e LanguageIDExpression) Evaluate(doc host.TextDocument) bool {
	return doc != nil && doc.LanguageID() == e.ID
}

// FunctionSyncExpression selects documents accepted by Fn.
type FunctionSyncExpression struct {
	Fn func(host.TextDocument) bool
}

// Evaluate implements SyncExpression.
func (e FunctionSyncExpression) Evaluate(doc host.TextDocument) bool {
	return doc != nil && e.Fn != nil && e.Fn(doc)
}

// CompositeSyncExpression selects documents selected by any of its
// expressions.
type CompositeSyncExpression struct {
	Expressions []SyncExpression
}

// Evaluate implements SyncExpression.
func (e CompositeSyncExpression) Evaluate(doc host.TextDocument) bool {
	for _, exp := range e.Expressions {
		if exp.Evaluate(doc) {
			return true
		}
	}
	return false
}

// NewSyncExpression builds the expression for a selector and an optional
// filter. It is computed once per client.
func NewSyncExpression(selector host.DocumentSelector, filter func(host.TextDocument) bool) SyncExpression {
	switch {
	case len(selector) == 0 && filter == nil:
		return FalseSyncExpression{}
	case len(selector) == 0:
		return FunctionSyncExpression{Fn: filter}
	case len(selector) == 1 && filter == nil:
		return LanguageIDExpression{ID: selector[0]}
	}

	exps := make([]SyncExpression, 0, len(selector)+1)
	for _, id := range selector {
		exps = append(exps, LanguageIDExpression{ID: id})
	}
	if filter != nil {
		exps = append(exps, FunctionSyncExpression{Fn: filter})
	}
	return CompositeSyncExpression{Expressions: exps}
}
