package rpc

import (
	"encoding/json"
	"io"
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/sourcegraph/jsonrpc2"
	"go.uber.org/multierr"
)

// faultStream wraps a jsonrpc2 object stream. It holds reads until the
// connection listens and counts consecutive faults. Messages that are not
// valid JSON are skipped when the framing delimits them; messages that are
// valid JSON but not JSON-RPC are always skipped.
type faultStream struct {
	inner       jsonrpc2.ObjectStream
	recoverable bool
	onFault     func(err error, msg any, count int)

	listening chan struct{}
	listen    sync.Once
	closed    chan struct{}
	close     sync.Once

	faults atomic.Int32
}

func newFaultStream(inner jsonrpc2.ObjectStream, framing Framing, onFault func(error, any, int)) *faultStream {
	return &faultStream{
		inner:       inner,
		recoverable: framing == HeaderFraming,
		onFault:     onFault,
		listening:   make(chan struct{}),
		closed:      make(chan struct{}),
	}
}

func (s *faultStream) start() {
	s.listen.Do(func() { close(s.listening) })
}

func (s *faultStream) WriteObject(obj any) error {
	if err := s.inner.WriteObject(obj); err != nil {
		s.fault(errors.Wrap(err, "write message"), obj)
		return err
	}
	return nil
}

func (s *faultStream) ReadObject(v any) error {
	select {
	case <-s.listening:
	case <-s.closed:
		return io.EOF
	}

	for {
		select {
		case <-s.closed:
			return io.EOF
		default:
		}

		var raw json.RawMessage
		if err := s.inner.ReadObject(&raw); err != nil {
			var syntax *json.SyntaxError
			if !s.recoverable || !errors.As(err, &syntax) {
				return err
			}
			s.fault(errors.Wrap(err, "read message"), nil)
			continue
		}
		if err := json.Unmarshal(raw, v); err != nil {
			s.fault(errors.Wrap(err, "parse message"), raw)
			continue
		}
		s.faults.Store(0)
		return nil
	}
}

func (s *faultStream) Close() error {
	s.close.Do(func() { close(s.closed) })
	return s.inner.Close()
}

func (s *faultStream) fault(err error, msg any) {
	count := int(s.faults.Add(1))
	if s.onFault != nil {
		s.onFault(err, msg, count)
	}
}

// pairCloser joins a reader and writer into one io.ReadWriteCloser.
type pairCloser struct {
	io.Reader
	io.Writer
	closers []io.Closer
}

func (p *pairCloser) Close() error {
	var err error
	for _, c := range p.closers {
		err = multierr.Append(err, c.Close())
	}
	return err
}
