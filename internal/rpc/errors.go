package rpc

import (
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/sourcegraph/jsonrpc2"
)

// Errors returned by Conn.
var (
	// ErrConnectionDisposed is returned by sends after Dispose.
	ErrConnectionDisposed = errors.New("connection is disposed")

	// ErrConnectionClosed is returned when the channel closed before a reply
	// arrived.
	ErrConnectionClosed = errors.New("connection closed")
)

// JSON-RPC error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603

	CodeServerNotInitialized = -32002
	CodeUnknownErrorCode     = -32001
	CodeRequestCancelled     = -32800
)

// ResponseError is a JSON-RPC error object.
type ResponseError struct {
	Code    int64           `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// NewResponseError creates an error with optional data.
func NewResponseError(code int64, message string, data any) *ResponseError {
	e := &ResponseError{Code: code, Message: message}
	if data != nil {
		if raw, err := json.Marshal(data); err == nil {
			e.Data = raw
		}
	}
	return e
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	if len(e.Data) > 0 {
		return fmt.Sprintf("rpc error %d: %s (data: %s)", e.Code, e.Message, e.Data)
	}
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// DecodeData decodes the error data into v.
func (e *ResponseError) DecodeData(v any) error {
	if len(e.Data) == 0 {
		return errors.New("response error carries no data")
	}
	return json.Unmarshal(e.Data, v)
}

func (e *ResponseError) wire() *jsonrpc2.Error {
	out := &jsonrpc2.Error{Code: e.Code, Message: e.Message}
	if len(e.Data) > 0 {
		raw := json.RawMessage(e.Data)
		out.Data = &raw
	}
	return out
}

func fromWire(e *jsonrpc2.Error) *ResponseError {
	out := &ResponseError{Code: e.Code, Message: e.Message}
	if e.Data != nil {
		out.Data = *e.Data
	}
	return out
}

// AsResponseError reports whether err carries a JSON-RPC error object.
func AsResponseError(err error) (*ResponseError, bool) {
	var re *ResponseError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// Framing selects how messages are delimited on the stream.
type Framing int

const (
	// HeaderFraming prefixes each message with a Content-Length header.
	HeaderFraming Framing = iota
	// LineFraming writes bare JSON values back to back.
	LineFraming
)

// String returns the framing name.
func (f Framing) String() string {
	switch f {
	case HeaderFraming:
		return "header"
	case LineFraming:
		return "line"
	default:
		return "unknown"
	}
}

func (f Framing) codec() jsonrpc2.ObjectCodec {
	if f == LineFraming {
		return &jsonrpc2.PlainObjectCodec{}
	}
	return jsonrpc2.VSCodeObjectCodec{}
}
